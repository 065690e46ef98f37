package observability

import (
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pogo/internal/domain"
)

// Metrics records dispatcher activity. A nil *Metrics records nothing.
type Metrics struct {
	calls    *prometheus.CounterVec
	retries  prometheus.Counter
	failures *prometheus.CounterVec
	duration *prometheus.HistogramVec
	stubHTTP *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		calls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "pogo",
				Subsystem: "rpc",
				Name:      "calls_total",
				Help:      "Envelope round trips by response status.",
			},
			[]string{"status"},
		),
		retries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pogo",
			Subsystem: "rpc",
			Name:      "retries_total",
			Help:      "Envelopes re-sent after an endpoint redirect.",
		}),
		failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "pogo",
				Subsystem: "rpc",
				Name:      "errors_total",
				Help:      "Classified call failures.",
			},
			[]string{"kind"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "pogo",
				Subsystem: "rpc",
				Name:      "round_trip_seconds",
				Help:      "Transport round-trip latency in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"status"},
		),
		stubHTTP: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "pogo",
				Subsystem: "stub",
				Name:      "requests_total",
				Help:      "Requests served by the stub RPC server.",
			},
			[]string{"path", "code"},
		),
	}
	reg.MustRegister(m.calls, m.retries, m.failures, m.duration, m.stubHTTP)
	return m
}

var (
	registerOnce   sync.Once
	defaultMetrics *Metrics
)

// Default returns metrics registered with the default Prometheus registry.
func Default() *Metrics {
	registerOnce.Do(func() {
		defaultMetrics = NewMetrics(prometheus.DefaultRegisterer)
	})
	return defaultMetrics
}

// Handler serves the default registry.
func Handler() http.Handler { return promhttp.Handler() }

// HandlerFor serves a specific registry.
func HandlerFor(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// RecordRoundTrip counts one decoded response.
func (m *Metrics) RecordRoundTrip(status domain.StatusCode, d time.Duration) {
	if m == nil {
		return
	}
	label := status.String()
	m.calls.WithLabelValues(label).Inc()
	m.duration.WithLabelValues(label).Observe(d.Seconds())
}

// RecordRetry counts one redirect retry.
func (m *Metrics) RecordRetry() {
	if m == nil {
		return
	}
	m.retries.Inc()
}

// RecordError counts a classified failure.
func (m *Metrics) RecordError(err error) {
	if m == nil || err == nil {
		return
	}
	m.failures.WithLabelValues(ErrorKind(err)).Inc()
}

// RecordStubRequest counts one stub server request.
func (m *Metrics) RecordStubRequest(path string, code int) {
	if m == nil {
		return
	}
	m.stubHTTP.WithLabelValues(path, strconv.Itoa(code)).Inc()
}

// ErrorKind returns a short label for a session error.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrConnect):
		return "connect"
	case errors.Is(err, domain.ErrResponseDecode):
		return "decode"
	case errors.Is(err, domain.ErrServer):
		return "server"
	case errors.Is(err, domain.ErrProtocolMismatch):
		return "protocol_mismatch"
	case errors.Is(err, domain.ErrResponseParse):
		return "parse"
	case errors.Is(err, domain.ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, domain.ErrBanSuspected):
		return "ban_suspected"
	default:
		return "other"
	}
}

// Calls exposes the call counter for one status. On a nil *Metrics it returns
// an unregistered counter that stays at zero.
func (m *Metrics) Calls(status domain.StatusCode) prometheus.Counter {
	if m == nil {
		return detached()
	}
	return m.calls.WithLabelValues(status.String())
}

// Retries exposes the retry counter.
func (m *Metrics) Retries() prometheus.Counter {
	if m == nil {
		return detached()
	}
	return m.retries
}

// Errors exposes the failure counter for one kind.
func (m *Metrics) Errors(kind string) prometheus.Counter {
	if m == nil {
		return detached()
	}
	return m.failures.WithLabelValues(kind)
}

func detached() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{Namespace: "pogo", Name: "detached_total", Help: "Unregistered."})
}
