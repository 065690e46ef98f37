package session_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"pogo/internal/domain"
	"pogo/internal/location"
	"pogo/internal/services/session"
	"pogo/internal/util/rpcid"
)

func TestBuildEnvelope_FirstCallCarriesAuthInfoOnly(t *testing.T) {
	s := newSession(t, &scripted{t: t})

	env, err := s.BuildEnvelope(domain.RequestBatch{{Type: domain.RequestTypeGetPlayer}}, false)
	require.NoError(t, err)

	cred, ok := env.Auth.(domain.Unauthenticated)
	require.True(t, ok, "want Unauthenticated, got %T", env.Auth)
	require.Equal(t, domain.ProviderGoogle, cred.Info.Provider)
	require.Equal(t, "access-token", cred.Info.Token)
	require.Equal(t, int32(session.TokenTag), cred.Info.TokenTag)
	require.Nil(t, env.Signature)
	require.Equal(t, domain.StatusOKWithEndpoint, env.StatusCode)
	require.Equal(t, int64(session.ClientBuild), env.ClientBuild)
	require.Equal(t, domain.Coordinates{Latitude: 40.7, Longitude: -74.0, Altitude: 10}, env.Location)
}

func TestBuildEnvelope_RequestIDsIncreaseByOne(t *testing.T) {
	s := newSession(t, &scripted{t: t}, session.WithIDs(rpcid.New(41)))
	var prev uint64
	for i := 0; i < 5; i++ {
		env, err := s.BuildEnvelope(nil, i%2 == 0)
		require.NoError(t, err)
		if i == 0 {
			require.Equal(t, uint64(42), env.RequestID)
		} else {
			require.Equal(t, prev+1, env.RequestID)
		}
		prev = env.RequestID
	}
}

func TestBuildEnvelope_DefaultsFollowCallerRequests(t *testing.T) {
	s := newSession(t, &scripted{t: t})
	batch := domain.RequestBatch{{Type: domain.RequestTypeGetMapObjects, Payload: []byte{1}}}

	env, err := s.BuildEnvelope(batch, true)
	require.NoError(t, err)
	require.Len(t, batch, 1, "caller batch must not grow")
	require.Len(t, env.Requests, 5)
	require.Equal(t, domain.RequestTypeGetMapObjects, env.Requests[0].Type)

	want := []domain.RequestType{
		domain.RequestTypeGetHatchedEggs,
		domain.RequestTypeGetInventory,
		domain.RequestTypeCheckAwardedBadges,
		domain.RequestTypeDownloadSettings,
	}
	for i, typ := range want {
		require.Equal(t, typ, env.Requests[i+1].Type)
	}
	require.NotEmpty(t, env.Requests[4].Payload)
}

func TestBuildEnvelope_SignedOnceTicketHeld(t *testing.T) {
	s, _ := bootstrapped(t)
	batch := domain.RequestBatch{{Type: domain.RequestTypeGetPlayer}}

	a, err := s.BuildEnvelope(batch, true)
	require.NoError(t, err)
	b, err := s.BuildEnvelope(batch, true)
	require.NoError(t, err)

	for _, env := range []domain.RequestEnvelope{a, b} {
		cred, ok := env.Auth.(domain.Authenticated)
		require.True(t, ok, "want Authenticated, got %T", env.Auth)
		require.Equal(t, testTicket, cred.Ticket)
		require.NotEmpty(t, env.Signature)
	}
	require.NotEqual(t, a.Signature, b.Signature)
}

func TestBuildEnvelope_UnsignedWithoutLocationOrSigner(t *testing.T) {
	tr := &scripted{t: t}
	tr.then(redirect("api.example", &testTicket)).
		then(domain.ResponseEnvelope{StatusCode: domain.StatusOK, Returns: [][]byte{profileReturn("ash")}})

	s, err := session.New(testAuth(t, nil), location.NewNoop(),
		session.WithTransport(tr), session.WithSleep(noSleep))
	require.NoError(t, err)
	_, err = s.Bootstrap(t.Context())
	require.NoError(t, err)

	env, err := s.BuildEnvelope(nil, false)
	require.NoError(t, err)
	require.IsType(t, domain.Authenticated{}, env.Auth)
	require.Nil(t, env.Signature)
}
