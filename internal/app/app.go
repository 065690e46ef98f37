package app

import (
	"context"

	"pogo/internal/domain"
	"pogo/internal/location"
	"pogo/internal/services/session"
)

// Location returns the configured position, or a no-op location when the
// config names none.
func (w *Wire) Location() domain.Location {
	if c := w.runtime.Location; c != nil {
		return location.FromCoordinates(*c)
	}
	return location.NewNoop()
}

// SessionOptions translates the runtime config into session options.
func (w *Wire) SessionOptions() []session.Option {
	b := w.runtime.Backoff
	return []session.Option{
		session.WithTransport(w.Transport),
		session.WithLogger(w.Log),
		session.WithMetrics(w.Metrics),
		session.WithBootstrapURL(w.runtime.BootstrapURL),
		session.WithMaxRetries(w.runtime.MaxRetries),
		session.WithBackoff(session.BackoffConfig{
			InitialDelay: b.Initial,
			Multiplier:   b.Multiplier,
			MaxDelay:     b.Max,
			Jitter:       b.Jitter,
		}),
	}
}

// OpenSession decrypts the stored login and bootstraps a session with it.
// The session summary is saved whether or not bootstrap succeeds.
func (w *Wire) OpenSession(ctx context.Context, passphrase string, opts ...session.Option) (*session.Session, error) {
	auth, err := w.Identity.Open(passphrase)
	if err != nil {
		return nil, err
	}
	s, err := session.New(auth, w.Location(), append(w.SessionOptions(), opts...)...)
	if err != nil {
		return nil, err
	}
	_, err = s.Bootstrap(ctx)
	w.Record(s)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Record persists the session summary. Failures are logged, not returned.
func (w *Wire) Record(s *session.Session) {
	if err := w.Snapshots.SaveSnapshot(s.Snapshot()); err != nil {
		w.Log.Warn().Err(err).Msg("save session snapshot")
	}
}
