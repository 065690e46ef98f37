package app_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"pogo/internal/app"
	"pogo/internal/config"
	"pogo/internal/domain"
	"pogo/internal/rpcstub"
	"pogo/internal/store"
)

const passphrase = "Sup3r-Secret-Phrase!"

func newWire(t *testing.T, srv *httptest.Server, loc *domain.Coordinates) *app.Wire {
	t.Helper()
	rt := config.Default()
	rt.Home = t.TempDir()
	rt.BootstrapURL = srv.URL + "/plfe/rpc"
	rt.Backoff.Initial = time.Millisecond
	rt.Backoff.Max = time.Millisecond
	rt.Location = loc

	w, err := app.NewWire(app.Config{
		Runtime:    rt,
		HTTP:       srv.Client(),
		Logger:     zerolog.Nop(),
		Registerer: prometheus.NewRegistry(),
	})
	require.NoError(t, err)
	return w
}

func startStub(t *testing.T) *httptest.Server {
	t.Helper()
	stub := rpcstub.New(rpcstub.DefaultConfig(), zerolog.Nop())
	srv := httptest.NewTLSServer(stub.Handler())
	t.Cleanup(srv.Close)
	return srv
}

func TestOpenSession_RecordsSnapshot(t *testing.T) {
	srv := startStub(t)
	w := newWire(t, srv, &domain.Coordinates{Latitude: 40.7, Longitude: -74, Altitude: 10})

	_, err := w.Identity.Login(passphrase, "google", "access-token", true)
	require.NoError(t, err)

	s, err := w.OpenSession(context.Background(), passphrase)
	require.NoError(t, err)
	require.Equal(t, domain.PhaseAuthenticated, s.Phase())

	snap, ok, err := w.Snapshots.LoadSnapshot()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, srv.URL+"/rpc", snap.Endpoint)
	require.Equal(t, "stubtrainer", snap.Username)
	require.NotZero(t, snap.TicketExpiresMs)
}

func TestOpenSession_WithoutLocationStillBootstraps(t *testing.T) {
	srv := startStub(t)
	w := newWire(t, srv, nil)
	require.True(t, w.Location().IsNoop())

	_, err := w.Identity.Login(passphrase, "ptc", "access-token", false)
	require.NoError(t, err)

	s, err := w.OpenSession(context.Background(), passphrase)
	require.NoError(t, err)
	endpoint, err := s.Endpoint()
	require.NoError(t, err)
	require.Equal(t, srv.URL+"/rpc", endpoint)
}

func TestOpenSession_NoCredentials(t *testing.T) {
	srv := startStub(t)
	w := newWire(t, srv, nil)

	_, err := w.OpenSession(context.Background(), passphrase)
	require.ErrorIs(t, err, store.ErrNoCredentials)
}
