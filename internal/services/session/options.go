package session

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"pogo/internal/domain"
	"pogo/internal/observability"
	"pogo/internal/protocol/signature"
	"pogo/internal/util/rpcid"
)

// Option customises a Session.
type Option func(*Session)

// WithTransport replaces the default HTTPS transport.
func WithTransport(t domain.Transport) Option { return func(s *Session) { s.transport = t } }

// WithLogger sets the logger. Events get a session field added.
func WithLogger(l zerolog.Logger) Option { return func(s *Session) { s.log = l } }

// WithIDs gives the session its own request id allocator instead of the
// process-wide one.
func WithIDs(a *rpcid.Allocator) Option { return func(s *Session) { s.ids = a } }

// WithMaxRetries caps redirect retries. Negative values are treated as zero.
func WithMaxRetries(n int) Option {
	return func(s *Session) {
		if n < 0 {
			n = 0
		}
		s.maxRetries = n
	}
}

// WithBackoff sets the delay schedule between redirect retries.
func WithBackoff(cfg BackoffConfig) Option { return func(s *Session) { s.backoff = cfg } }

// WithSleep replaces the wait between retries.
func WithSleep(fn func(context.Context, time.Duration) error) Option {
	return func(s *Session) { s.sleep = fn }
}

// WithBootstrapURL overrides the well-known bootstrap endpoint.
func WithBootstrapURL(url string) Option { return func(s *Session) { s.bootstrapURL = url } }

// WithPrevious inherits the decoded state of an earlier session for the same
// identity. Ticket and endpoint are not inherited.
func WithPrevious(prev *Session) Option {
	return func(s *Session) {
		if prev != nil {
			st := *prev.state
			s.state = &st
		}
	}
}

// WithInventoryView sets the constructor for the derived inventory view.
func WithInventoryView(fn domain.InventoryViewFunc) Option {
	return func(s *Session) { s.newView = fn }
}

// WithMetrics records dispatcher activity.
func WithMetrics(m *observability.Metrics) Option { return func(s *Session) { s.metrics = m } }

// WithSignatureOptions customises the signature engine built from the auth
// session's signer.
func WithSignatureOptions(opts ...signature.Option) Option {
	return func(s *Session) { s.sigOpts = append(s.sigOpts, opts...) }
}
