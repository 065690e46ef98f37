package observability_test

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"pogo/internal/domain"
	"pogo/internal/observability"
)

func TestParseLevel(t *testing.T) {
	require.Equal(t, zerolog.DebugLevel, observability.ParseLevel(" DEBUG "))
	require.Equal(t, zerolog.WarnLevel, observability.ParseLevel("warning"))
	require.Equal(t, zerolog.Disabled, observability.ParseLevel("off"))
	require.Equal(t, zerolog.InfoLevel, observability.ParseLevel("chatty"))
}

func TestInitLoggerTo_TagsApp(t *testing.T) {
	t.Setenv(observability.EnvLogLevel, "")
	var buf bytes.Buffer
	logger := observability.InitLoggerTo(&buf, "pogo-test", "info")
	logger.Info().Msg("hello")
	logger.Debug().Msg("hidden")
	require.Contains(t, buf.String(), "hello")
	require.Contains(t, buf.String(), "pogo-test")
	require.NotContains(t, buf.String(), "hidden")
}

func TestInitLoggerTo_EnvOverridesLevel(t *testing.T) {
	t.Setenv(observability.EnvLogLevel, "error")
	var buf bytes.Buffer
	logger := observability.InitLoggerTo(&buf, "pogo-test", "debug")
	logger.Warn().Msg("quiet")
	require.Empty(t, buf.String())
}

func TestMetrics_Record(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)

	m.RecordRoundTrip(domain.StatusRedirect, 10*time.Millisecond)
	m.RecordRoundTrip(domain.StatusOKWithEndpoint, 5*time.Millisecond)
	m.RecordRetry()
	m.RecordError(fmt.Errorf("wrapped: %w", domain.ErrRateLimited))

	require.Equal(t, 1.0, testutil.ToFloat64(m.Calls(domain.StatusRedirect)))
	require.Equal(t, 1.0, testutil.ToFloat64(m.Retries()))
	require.Equal(t, 1.0, testutil.ToFloat64(m.Errors("rate_limited")))

	var nilMetrics *observability.Metrics
	nilMetrics.RecordRetry()
	nilMetrics.RecordError(domain.ErrServer)
	nilMetrics.RecordRoundTrip(domain.StatusOK, time.Millisecond)
	require.Zero(t, testutil.ToFloat64(nilMetrics.Calls(domain.StatusOK)))
	require.Zero(t, testutil.ToFloat64(nilMetrics.Retries()))
	require.Zero(t, testutil.ToFloat64(nilMetrics.Errors("server")))
}

func TestRequestLogger_CountsStubRequests(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)
	h := observability.RequestLogger(zerolog.Nop(), m, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/rpc", nil))
	require.Equal(t, http.StatusTeapot, rec.Code)

	metrics := httptest.NewRecorder()
	observability.HandlerFor(reg).ServeHTTP(metrics, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Contains(t, metrics.Body.String(), `pogo_stub_requests_total{code="418",path="/rpc"} 1`)
}
