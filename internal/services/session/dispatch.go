package session

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"pogo/internal/crypto"
	"pogo/internal/domain"
)

// Send posts batch to the current endpoint and classifies the answer. When
// includeDefaults is set, the default sub-requests are appended and their
// answers decoded into the session; a failure there is returned together with
// the otherwise valid response.
func (s *Session) Send(ctx context.Context, batch domain.RequestBatch, includeDefaults bool) (domain.ResponseEnvelope, error) {
	return s.send(ctx, "", batch, includeDefaults)
}

// SendTo is Send against an explicit URL for the first attempt. Redirect
// retries still go to the session endpoint.
func (s *Session) SendTo(ctx context.Context, dest string, batch domain.RequestBatch, includeDefaults bool) (domain.ResponseEnvelope, error) {
	return s.send(ctx, dest, batch, includeDefaults)
}

func (s *Session) send(ctx context.Context, dest string, batch domain.RequestBatch, includeDefaults bool) (domain.ResponseEnvelope, error) {
	if s.phase == domain.PhaseDegraded {
		return domain.ResponseEnvelope{}, s.fail(fmt.Errorf("%w: session degraded by an earlier response", domain.ErrBanSuspected))
	}
	if dest == "" {
		dest = s.target()
	}

	for attempt := 0; ; attempt++ {
		res, err := s.exchange(ctx, dest, batch, includeDefaults)
		if err != nil {
			return domain.ResponseEnvelope{}, s.fail(err)
		}

		switch {
		case res.StatusCode == domain.StatusRedirect && len(res.Returns) == 0:
			if attempt >= s.maxRetries {
				return domain.ResponseEnvelope{}, s.fail(fmt.Errorf("%w: endpoint not ready after %d retries", domain.ErrServer, s.maxRetries))
			}
			dest = s.target()
			delay := NextBackoffDelay(s.backoff, attempt+1, s.rng)
			s.log.Info().
				Int("attempt", attempt+1).
				Str("endpoint", dest).
				Dur("delay", delay).
				Msg("endpoint not ready, retrying")
			s.metrics.RecordRetry()
			if err := s.sleep(ctx, delay); err != nil {
				return domain.ResponseEnvelope{}, s.fail(fmt.Errorf("%w: waiting to retry: %w", domain.ErrConnect, err))
			}
			continue

		case res.StatusCode == domain.StatusRateLimited:
			return domain.ResponseEnvelope{}, s.fail(fmt.Errorf("%w (request %d)", domain.ErrRateLimited, res.RequestID))

		case res.StatusCode == domain.StatusBadRequest:
			s.phase = domain.PhaseDegraded
			s.log.Warn().Msg(banNotice)
			return domain.ResponseEnvelope{}, s.fail(fmt.Errorf("%w (request %d)", domain.ErrBanSuspected, res.RequestID))
		}

		if !res.StatusCode.Known() {
			s.log.Warn().
				Int32("status", int32(res.StatusCode)).
				Uint64("request_id", res.RequestID).
				Msg("unclassified status code, treating as success")
		}
		if includeDefaults {
			if err := s.parseDefaults(res); err != nil {
				return res, s.fail(err)
			}
		}
		return res, nil
	}
}

// target is where a call goes when no URL is given.
func (s *Session) target() string {
	if s.endpoint != "" {
		return s.endpoint
	}
	return s.bootstrapURL
}

// exchange performs one round trip and applies endpoint and ticket updates.
// A status 3 response leaves the session untouched.
func (s *Session) exchange(ctx context.Context, dest string, batch domain.RequestBatch, includeDefaults bool) (domain.ResponseEnvelope, error) {
	env, err := s.BuildEnvelope(batch, includeDefaults)
	if err != nil {
		return domain.ResponseEnvelope{}, fmt.Errorf("%w: %w", domain.ErrServer, err)
	}

	start := time.Now()
	res, err := s.transport.RoundTrip(ctx, dest, env)
	if err != nil {
		return domain.ResponseEnvelope{}, classifyTransport(err)
	}
	s.metrics.RecordRoundTrip(res.StatusCode, time.Since(start))
	s.log.Debug().
		Uint64("request_id", env.RequestID).
		Stringer("status", res.StatusCode).
		Int("returns", len(res.Returns)).
		Bool("signed", len(env.Signature) > 0).
		Msg("round trip")

	if res.StatusCode != domain.StatusBadRequest {
		if err := s.apply(res); err != nil {
			return domain.ResponseEnvelope{}, err
		}
	}
	return res, nil
}

// apply takes endpoint and ticket updates from res. An api_url that does not
// form an https URL is rejected and nothing is applied.
func (s *Session) apply(res domain.ResponseEnvelope) error {
	if res.APIURL != "" {
		next, err := checkEndpoint(FormatEndpoint(res.APIURL))
		if err != nil {
			return fmt.Errorf("%w: api_url %q: %w", domain.ErrProtocolMismatch, res.APIURL, err)
		}
		if next != s.endpoint {
			prev := s.endpoint
			s.endpoint = next
			if prev != "" && s.ticket != nil {
				s.phase = domain.PhaseEndpointMigrated
			}
			s.log.Info().Str("endpoint", next).Str("previous", prev).Msg("endpoint updated")
		}
	}
	if res.AuthTicket != nil && !res.AuthTicket.Empty() {
		t := *res.AuthTicket
		s.ticket = &t
		if s.phase == domain.PhaseFresh || s.phase == domain.PhaseBootstrapping {
			s.phase = domain.PhaseAuthenticated
		}
		s.log.Debug().
			Str("ticket", crypto.TicketFingerprint(t)).
			Uint64("expires_ms", t.ExpireTimestampMs).
			Msg("auth ticket replaced")
	}
	return nil
}

func checkEndpoint(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme != "https" || u.Host == "" {
		return "", errors.New("not an https endpoint")
	}
	return raw, nil
}

// classifyTransport makes sure every transport failure carries a session
// error kind, whatever Transport implementation produced it.
func classifyTransport(err error) error {
	switch {
	case errors.Is(err, domain.ErrConnect),
		errors.Is(err, domain.ErrResponseDecode),
		errors.Is(err, domain.ErrServer):
		return err
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %w", domain.ErrConnect, err)
	default:
		return fmt.Errorf("%w: %w", domain.ErrServer, err)
	}
}

// fail logs and counts err before it is returned.
func (s *Session) fail(err error) error {
	s.log.Error().Err(err).Stringer("phase", s.phase).Msg("session call failed")
	s.metrics.RecordError(err)
	return err
}
