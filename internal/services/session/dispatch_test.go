package session_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"pogo/internal/domain"
	"pogo/internal/location"
	"pogo/internal/observability"
	"pogo/internal/services/session"
)

var playerBatch = domain.RequestBatch{{Type: domain.RequestTypeGetPlayer}}

func TestSend_RedirectRetriesOnceAgainstNewEndpoint(t *testing.T) {
	s, tr := bootstrapped(t)
	tr.then(redirect("fresh.example", nil)).
		then(domain.ResponseEnvelope{StatusCode: domain.StatusOK, Returns: [][]byte{profileReturn("ash")}})

	res, err := s.Send(context.Background(), playerBatch, false)
	require.NoError(t, err)
	require.Equal(t, domain.StatusOK, res.StatusCode)
	require.Len(t, tr.calls, 2)
	require.Equal(t, "https://api.example/rpc", tr.calls[0].url)
	require.Equal(t, "https://fresh.example/rpc", tr.calls[1].url)
	require.Equal(t, tr.calls[0].env.RequestID+1, tr.calls[1].env.RequestID, "retry rebuilds the envelope")
}

func TestSend_RedirectCapFailsWithServerError(t *testing.T) {
	var delays []time.Duration
	s, tr := bootstrapped(t,
		session.WithMaxRetries(3),
		session.WithBackoff(session.BackoffConfig{InitialDelay: 10 * time.Millisecond, Multiplier: 2}),
		session.WithSleep(func(_ context.Context, d time.Duration) error {
			delays = append(delays, d)
			return nil
		}),
	)
	delays = nil
	for i := 0; i < 4; i++ {
		tr.then(redirect("", nil))
	}

	_, err := s.Send(context.Background(), playerBatch, false)
	require.ErrorIs(t, err, domain.ErrServer)
	require.Len(t, tr.calls, 4, "one attempt plus three retries")
	require.Equal(t, []time.Duration{10 * time.Millisecond, 20 * time.Millisecond, 40 * time.Millisecond}, delays)
}

func TestSend_RedirectWithReturnsIsSuccess(t *testing.T) {
	s, tr := bootstrapped(t)
	tr.then(domain.ResponseEnvelope{StatusCode: domain.StatusRedirect, Returns: [][]byte{profileReturn("ash")}})

	res, err := s.Send(context.Background(), playerBatch, false)
	require.NoError(t, err)
	require.Len(t, res.Returns, 1)
	require.Len(t, tr.calls, 1)
}

func TestSend_RetryWaitHonoursContext(t *testing.T) {
	s, tr := bootstrapped(t, session.WithSleep(func(ctx context.Context, _ time.Duration) error {
		return context.Canceled
	}))
	tr.then(redirect("", nil))

	_, err := s.Send(context.Background(), playerBatch, false)
	require.ErrorIs(t, err, domain.ErrConnect)
	require.ErrorIs(t, err, context.Canceled)
}

func TestSend_RateLimitedRegardlessOfReturns(t *testing.T) {
	s, tr := bootstrapped(t)
	tr.then(domain.ResponseEnvelope{StatusCode: domain.StatusRateLimited}).
		then(okWithDefaults(profileReturn("ash"), 1)).
		then(domain.ResponseEnvelope{StatusCode: domain.StatusRateLimited, Returns: defaultReturns(2)})

	_, err := s.Send(context.Background(), playerBatch, false)
	require.ErrorIs(t, err, domain.ErrRateLimited)

	_, err = s.Send(context.Background(), playerBatch, true)
	require.NoError(t, err)

	_, err = s.Send(context.Background(), playerBatch, true)
	require.ErrorIs(t, err, domain.ErrRateLimited)
	require.Len(t, tr.calls, 3, "rate limits are not retried")
	require.NotEqual(t, domain.PhaseDegraded, s.Phase())
}

func TestSend_BanLeavesTicketAndEndpointAlone(t *testing.T) {
	s, tr := bootstrapped(t)
	other := domain.AuthTicket{Start: []byte("other")}
	tr.then(domain.ResponseEnvelope{
		StatusCode: domain.StatusBadRequest,
		APIURL:     "elsewhere.example",
		AuthTicket: &other,
		Returns:    [][]byte{profileReturn("ash")},
	})

	_, err := s.Send(context.Background(), playerBatch, false)
	require.ErrorIs(t, err, domain.ErrBanSuspected)
	require.Equal(t, domain.PhaseDegraded, s.Phase())

	endpoint, err := s.Endpoint()
	require.NoError(t, err)
	require.Equal(t, "https://api.example/rpc", endpoint)
	ticket, err := s.AuthTicket()
	require.NoError(t, err)
	require.Equal(t, testTicket, ticket)

	_, err = s.Send(context.Background(), playerBatch, false)
	require.ErrorIs(t, err, domain.ErrBanSuspected)
	require.Len(t, tr.calls, 1, "degraded session does no I/O")
}

func TestSend_DefaultsPopulateState(t *testing.T) {
	s, tr := bootstrapped(t)

	_, err := s.Eggs()
	require.ErrorIs(t, err, domain.ErrInventoryUninitialized)
	_, err = s.Badges()
	require.ErrorIs(t, err, domain.ErrInventoryUninitialized)
	_, err = s.Settings()
	require.ErrorIs(t, err, domain.ErrInventoryUninitialized)
	_, err = s.Inventory()
	require.ErrorIs(t, err, domain.ErrInventoryUninitialized)
	_, err = s.InventoryDelta()
	require.ErrorIs(t, err, domain.ErrInventoryUninitialized)

	tr.then(okWithDefaults(profileReturn("ash"), 3))
	res, err := s.Send(context.Background(), playerBatch, true)
	require.NoError(t, err)
	require.Len(t, res.Returns, 5)
	require.Len(t, tr.calls[0].env.Requests, 5)

	eggs, err := s.Eggs()
	require.NoError(t, err)
	require.Equal(t, []uint64{11, 12}, eggs.PokemonIDs)
	require.Equal(t, []int32{100, 200}, eggs.StardustAwarded)

	inv, err := s.Inventory()
	require.NoError(t, err)
	require.Equal(t, 3, inv.Len())

	badges, err := s.Badges()
	require.NoError(t, err)
	require.Equal(t, []int32{3}, badges.Badges)

	settings, err := s.Settings()
	require.NoError(t, err)
	require.Equal(t, "settings-hash", settings.Hash)
}

func TestSend_ShortDefaultsKeepPreviousValues(t *testing.T) {
	s, tr := bootstrapped(t)
	tr.then(okWithDefaults(profileReturn("ash"), 2)).
		then(domain.ResponseEnvelope{StatusCode: domain.StatusOK, Returns: [][]byte{profileReturn("ash"), {}}})

	_, err := s.Send(context.Background(), playerBatch, true)
	require.NoError(t, err)

	res, err := s.Send(context.Background(), playerBatch, true)
	require.ErrorIs(t, err, domain.ErrProtocolMismatch)
	require.Len(t, res.Returns, 2, "primary response stays usable")

	inv, err := s.Inventory()
	require.NoError(t, err)
	require.Equal(t, 2, inv.Len())
}

func TestSend_UndecodableDefaultCommitsNothing(t *testing.T) {
	s, tr := bootstrapped(t)
	first := okWithDefaults(profileReturn("ash"), 1)
	broken := okWithDefaults(profileReturn("ash"), 4)
	broken.Returns[3] = []byte{0x12, 0xff, 0xff} // badges: truncated length
	tr.then(first).then(broken)

	_, err := s.Send(context.Background(), playerBatch, true)
	require.NoError(t, err)
	_, err = s.Send(context.Background(), playerBatch, true)
	require.ErrorIs(t, err, domain.ErrResponseParse)

	inv, err := s.Inventory()
	require.NoError(t, err)
	require.Equal(t, 1, inv.Len(), "inventory from the failed cycle is discarded")
}

func TestSend_TransportFailuresAreClassifiedAndNotRetried(t *testing.T) {
	cases := map[string]struct {
		err  error
		want error
	}{
		"connect":    {fmt.Errorf("%w: dial", domain.ErrConnect), domain.ErrConnect},
		"decode":     {fmt.Errorf("%w: junk", domain.ErrResponseDecode), domain.ErrResponseDecode},
		"unexpected": {errors.New("boom"), domain.ErrServer},
		"deadline":   {context.DeadlineExceeded, domain.ErrConnect},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			s, tr := bootstrapped(t)
			tr.thenErr(tc.err)
			_, err := s.Send(context.Background(), playerBatch, false)
			require.ErrorIs(t, err, tc.want)
			require.Len(t, tr.calls, 1)
		})
	}
}

func TestSend_UnknownStatusIsSuccess(t *testing.T) {
	s, tr := bootstrapped(t)
	tr.then(domain.ResponseEnvelope{StatusCode: 102, Returns: [][]byte{{}}})

	res, err := s.Send(context.Background(), playerBatch, false)
	require.NoError(t, err)
	require.Equal(t, domain.StatusCode(102), res.StatusCode)
}

func TestSendTo_FirstAttemptUsesExplicitURL(t *testing.T) {
	s, tr := bootstrapped(t)
	tr.then(domain.ResponseEnvelope{StatusCode: domain.StatusOK})

	_, err := s.SendTo(context.Background(), "https://override.example/rpc", playerBatch, false)
	require.NoError(t, err)
	require.Equal(t, "https://override.example/rpc", tr.calls[0].url)
}

func TestSend_RecordsMetrics(t *testing.T) {
	m := observability.NewMetrics(prometheus.NewRegistry())
	s, tr := bootstrapped(t, session.WithMetrics(m))
	tr.then(redirect("", nil)).then(domain.ResponseEnvelope{StatusCode: domain.StatusRateLimited})

	_, err := s.Send(context.Background(), playerBatch, false)
	require.ErrorIs(t, err, domain.ErrRateLimited)
	require.Equal(t, 2.0, testutil.ToFloat64(m.Retries()), "one during bootstrap, one here")
	require.Equal(t, 1.0, testutil.ToFloat64(m.Errors("rate_limited")))
}

func TestSend_MalformedAPIURLKeepsEndpoint(t *testing.T) {
	s, tr := bootstrapped(t)
	tr.then(domain.ResponseEnvelope{
		StatusCode: domain.StatusOK,
		APIURL:     "bad host\x7f/x",
		Returns:    [][]byte{profileReturn("ash")},
	})

	_, err := s.Send(context.Background(), playerBatch, false)
	require.ErrorIs(t, err, domain.ErrProtocolMismatch)

	endpoint, err := s.Endpoint()
	require.NoError(t, err)
	require.Equal(t, "https://api.example/rpc", endpoint)

	tr.then(domain.ResponseEnvelope{StatusCode: domain.StatusOK, Returns: [][]byte{profileReturn("ash")}})
	_, err = s.Send(context.Background(), playerBatch, false)
	require.NoError(t, err)
	require.Equal(t, "https://api.example/rpc", tr.calls[len(tr.calls)-1].url)
}

type failingSigner struct{}

func (failingSigner) Sign([]byte) ([]byte, error) { return nil, errors.New("signer offline") }

func TestSend_SignerFailureNeverReachesTransport(t *testing.T) {
	tr := &scripted{t: t}
	tr.then(redirect("api.example", &testTicket))
	s, err := session.New(testAuth(t, failingSigner{}), location.NewFixed(40.7, -74.0, 10),
		session.WithTransport(tr),
		session.WithLogger(zerolog.Nop()),
		session.WithSleep(noSleep),
	)
	require.NoError(t, err)

	_, err = s.Bootstrap(context.Background())
	require.ErrorIs(t, err, domain.ErrServer)
	require.Len(t, tr.calls, 1, "only the unsigned bootstrap call went out")

	tr.calls = nil
	_, err = s.Send(context.Background(), playerBatch, false)
	require.ErrorIs(t, err, domain.ErrServer)
	require.ErrorContains(t, err, "signer offline")
	require.Empty(t, tr.calls)
}
