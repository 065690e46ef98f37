package session_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"pogo/internal/auth"
	"pogo/internal/crypto"
	"pogo/internal/domain"
	"pogo/internal/location"
	"pogo/internal/protocol/payload"
	"pogo/internal/services/session"
	"pogo/internal/util/rpcid"
)

type call struct {
	url string
	env domain.RequestEnvelope
}

// scripted answers RoundTrip calls from a queue.
type scripted struct {
	t       *testing.T
	calls   []call
	answers []func(domain.RequestEnvelope) (domain.ResponseEnvelope, error)
}

func (s *scripted) RoundTrip(_ context.Context, url string, env domain.RequestEnvelope) (domain.ResponseEnvelope, error) {
	s.calls = append(s.calls, call{url: url, env: env})
	if len(s.answers) == 0 {
		s.t.Fatalf("unexpected round trip %d to %s", len(s.calls), url)
	}
	next := s.answers[0]
	s.answers = s.answers[1:]
	return next(env)
}

func (s *scripted) then(res domain.ResponseEnvelope) *scripted {
	s.answers = append(s.answers, func(env domain.RequestEnvelope) (domain.ResponseEnvelope, error) {
		res.RequestID = env.RequestID
		return res, nil
	})
	return s
}

func (s *scripted) thenErr(err error) *scripted {
	s.answers = append(s.answers, func(domain.RequestEnvelope) (domain.ResponseEnvelope, error) {
		return domain.ResponseEnvelope{}, err
	})
	return s
}

var testTicket = domain.AuthTicket{Start: []byte("ticket-start"), ExpireTimestampMs: 1_900_000_000_000, End: []byte("ticket-end")}

func testSigner(t *testing.T) *crypto.AEADSigner {
	t.Helper()
	s, err := crypto.NewAEADSigner(bytes.Repeat([]byte{0x42}, 32))
	require.NoError(t, err)
	return s
}

func testAuth(t *testing.T, signer domain.Signer) *auth.StaticSession {
	t.Helper()
	a, err := auth.NewStaticSession(domain.ProviderGoogle, "access-token", signer)
	require.NoError(t, err)
	return a
}

func noSleep(context.Context, time.Duration) error { return nil }

func newSession(t *testing.T, tr domain.Transport, opts ...session.Option) *session.Session {
	t.Helper()
	base := []session.Option{
		session.WithTransport(tr),
		session.WithLogger(zerolog.Nop()),
		session.WithIDs(rpcid.New(1000)),
		session.WithSleep(noSleep),
	}
	s, err := session.New(testAuth(t, testSigner(t)), location.NewFixed(40.7, -74.0, 10), append(base, opts...)...)
	require.NoError(t, err)
	return s
}

func redirect(host string, ticket *domain.AuthTicket) domain.ResponseEnvelope {
	return domain.ResponseEnvelope{StatusCode: domain.StatusRedirect, APIURL: host, AuthTicket: ticket}
}

func profileReturn(name string) []byte {
	return payload.EncodeProfile(domain.Profile{Success: true, Username: name})
}

func defaultReturns(items int) [][]byte {
	delta := domain.InventoryDelta{Success: true, NewTimestampMs: 77}
	for i := 0; i < items; i++ {
		delta.Items = append(delta.Items, domain.InventoryItem{ModifiedTimestampMs: uint64(i + 1), Data: []byte{byte(i)}})
	}
	return [][]byte{
		payload.EncodeHatchedEggs(domain.HatchedEggs{Success: true, PokemonIDs: []uint64{11, 12}, StardustAwarded: []int32{100, 200}}),
		payload.EncodeInventory(delta),
		payload.EncodeBadges(domain.AwardedBadges{Success: true, Badges: []int32{3}, Levels: []int32{1}}),
		payload.EncodeSettings(domain.Settings{Hash: "settings-hash"}),
	}
}

func okWithDefaults(primary []byte, items int) domain.ResponseEnvelope {
	return domain.ResponseEnvelope{
		StatusCode: domain.StatusOK,
		Returns:    append([][]byte{primary}, defaultReturns(items)...),
	}
}

// bootstrapped returns a session that went through the usual bootstrap: a
// redirect carrying ticket and endpoint, then the profile.
func bootstrapped(t *testing.T, opts ...session.Option) (*session.Session, *scripted) {
	t.Helper()
	tr := &scripted{t: t}
	tr.then(redirect("api.example", &testTicket)).
		then(domain.ResponseEnvelope{StatusCode: domain.StatusOK, Returns: [][]byte{profileReturn("ash")}})
	s := newSession(t, tr, opts...)
	_, err := s.Bootstrap(context.Background())
	require.NoError(t, err)
	tr.calls = nil
	return s, tr
}
