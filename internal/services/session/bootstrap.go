package session

import (
	"context"
	"errors"
	"fmt"

	"pogo/internal/domain"
	"pogo/internal/protocol/payload"
)

func profileBatch() domain.RequestBatch {
	return domain.RequestBatch{{Type: domain.RequestTypeGetPlayer}}
}

// Bootstrap performs the first profile fetch against the bootstrap endpoint.
// The service answers with a ticket and the endpoint to use from then on.
func (s *Session) Bootstrap(ctx context.Context) (domain.Profile, error) {
	if s.ticket != nil {
		return domain.Profile{}, ErrAlreadyBootstrapped
	}
	if s.phase == domain.PhaseFresh {
		s.phase = domain.PhaseBootstrapping
	}
	s.log.Info().Str("url", s.bootstrapURL).Msg("bootstrapping session")

	res, err := s.send(ctx, s.bootstrapURL, profileBatch(), false)
	if err != nil {
		if s.phase == domain.PhaseBootstrapping {
			s.phase = domain.PhaseFresh
		}
		return domain.Profile{}, err
	}
	if s.ticket == nil {
		s.phase = domain.PhaseFresh
		s.log.Warn().Msg("bootstrap response carried no auth ticket")
	}
	return s.decodeProfile(res)
}

// GetProfile fetches the player profile along with the default batch.
func (s *Session) GetProfile(ctx context.Context) (domain.Profile, error) {
	res, err := s.Send(ctx, profileBatch(), true)
	if err != nil && !isDefaultsError(err) {
		return domain.Profile{}, err
	}
	p, perr := s.decodeProfile(res)
	if perr != nil {
		return domain.Profile{}, perr
	}
	return p, err
}

func (s *Session) decodeProfile(res domain.ResponseEnvelope) (domain.Profile, error) {
	if len(res.Returns) == 0 {
		return domain.Profile{}, s.fail(fmt.Errorf("%w: no profile in response", domain.ErrProtocolMismatch))
	}
	p, err := payload.DecodeProfile(res.Returns[0])
	if err != nil {
		return domain.Profile{}, s.fail(fmt.Errorf("%w: %w", domain.ErrResponseParse, err))
	}
	s.state.profile.set(p)
	return p, nil
}

func isDefaultsError(err error) bool {
	return errors.Is(err, domain.ErrProtocolMismatch) || errors.Is(err, domain.ErrResponseParse)
}
