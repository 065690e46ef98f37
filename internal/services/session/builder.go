package session

import (
	"fmt"

	"pogo/internal/domain"
	"pogo/internal/protocol/payload"
)

// Defaults returns the four auxiliary sub-requests, in the order their
// answers are decoded.
func Defaults() domain.RequestBatch {
	return domain.RequestBatch{
		{Type: domain.RequestTypeGetHatchedEggs},
		{Type: domain.RequestTypeGetInventory, Payload: payload.GetInventoryRequest(0)},
		{Type: domain.RequestTypeCheckAwardedBadges},
		{Type: domain.RequestTypeDownloadSettings, Payload: payload.DownloadSettingsRequest(payload.DefaultSettingsHash)},
	}
}

// BuildEnvelope wraps batch for sending. Without a ticket it carries the auth
// info and no signature; with one it carries the ticket and, when the
// signature engine agrees, a signature. Every call consumes a request id.
// batch itself is never modified.
func (s *Session) BuildEnvelope(batch domain.RequestBatch, includeDefaults bool) (domain.RequestEnvelope, error) {
	reqs := make(domain.RequestBatch, 0, len(batch)+4)
	reqs = append(reqs, batch...)
	if includeDefaults {
		reqs = append(reqs, Defaults()...)
	}

	env := domain.RequestEnvelope{
		StatusCode:  domain.StatusOKWithEndpoint,
		RequestID:   s.ids.Next(),
		Requests:    reqs,
		Location:    s.loc.Coordinates(),
		ClientBuild: ClientBuild,
	}

	if s.ticket == nil {
		env.Auth = domain.Unauthenticated{Info: domain.AuthInfo{
			Provider: s.auth.Provider(),
			Token:    s.auth.AccessToken(),
			TokenTag: TokenTag,
		}}
		return env, nil
	}

	env.Auth = domain.Authenticated{Ticket: *s.ticket}
	sig, err := s.engine.Sign(s.ticket, s.loc, reqs, s.startMs)
	if err != nil {
		return domain.RequestEnvelope{}, fmt.Errorf("sign envelope %d: %w", env.RequestID, err)
	}
	env.Signature = sig
	return env, nil
}
