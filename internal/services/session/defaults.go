package session

import (
	"fmt"

	"pogo/internal/domain"
	"pogo/internal/protocol/payload"
)

// minDefaultReturns is the primary answer plus the four defaults.
const minDefaultReturns = 5

// parseDefaults decodes the last four returns as eggs, inventory, badges and
// settings. Nothing is stored unless all four decode.
func (s *Session) parseDefaults(res domain.ResponseEnvelope) error {
	n := len(res.Returns)
	if n < minDefaultReturns {
		return fmt.Errorf("%w: %d returns, want at least %d", domain.ErrProtocolMismatch, n, minDefaultReturns)
	}
	tail := res.Returns[n-4:]

	eggs, err := payload.DecodeHatchedEggs(tail[0])
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrResponseParse, err)
	}
	delta, err := payload.DecodeInventory(tail[1])
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrResponseParse, err)
	}
	badges, err := payload.DecodeBadges(tail[2])
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrResponseParse, err)
	}
	settings, err := payload.DecodeSettings(tail[3])
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrResponseParse, err)
	}

	s.state.eggs.set(eggs)
	s.state.delta.set(delta)
	s.state.badges.set(badges)
	s.state.settings.set(settings)
	s.state.inventory.set(s.newView(delta.Items))
	s.log.Debug().Int("inventory_items", len(delta.Items)).Msg("defaults decoded")
	return nil
}
