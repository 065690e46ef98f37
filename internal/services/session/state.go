package session

import (
	"fmt"

	"pogo/internal/domain"
)

// cached is a value that may not have been fetched yet.
type cached[T any] struct {
	v  T
	ok bool
}

func (c *cached[T]) set(v T) { c.v, c.ok = v, true }

func (c cached[T]) get(what string) (T, error) {
	if !c.ok {
		var zero T
		return zero, fmt.Errorf("%s: %w", what, domain.ErrInventoryUninitialized)
	}
	return c.v, nil
}

// state is the decoded data a session accumulates. It outlives the ticket:
// a replacement session may inherit it.
type state struct {
	profile   cached[domain.Profile]
	eggs      cached[domain.HatchedEggs]
	delta     cached[domain.InventoryDelta]
	badges    cached[domain.AwardedBadges]
	settings  cached[domain.Settings]
	inventory cached[domain.InventoryView]
}

// Profile returns the player profile from the last profile call.
func (s *Session) Profile() (domain.Profile, error) { return s.state.profile.get("profile") }

// Eggs returns the hatched eggs from the last default batch.
func (s *Session) Eggs() (domain.HatchedEggs, error) { return s.state.eggs.get("eggs") }

// InventoryDelta returns the raw inventory delta from the last default batch.
func (s *Session) InventoryDelta() (domain.InventoryDelta, error) {
	return s.state.delta.get("inventory delta")
}

// Badges returns the awarded badges from the last default batch.
func (s *Session) Badges() (domain.AwardedBadges, error) { return s.state.badges.get("badges") }

// Settings returns the downloaded settings from the last default batch.
func (s *Session) Settings() (domain.Settings, error) { return s.state.settings.get("settings") }

// Inventory returns the inventory view built from the last default batch.
func (s *Session) Inventory() (domain.InventoryView, error) {
	return s.state.inventory.get("inventory")
}

// Endpoint returns the api endpoint the service assigned.
func (s *Session) Endpoint() (string, error) {
	if s.endpoint == "" {
		return "", fmt.Errorf("endpoint: %w", domain.ErrInventoryUninitialized)
	}
	return s.endpoint, nil
}

// AuthTicket returns a copy of the current auth ticket.
func (s *Session) AuthTicket() (domain.AuthTicket, error) {
	if s.ticket == nil {
		return domain.AuthTicket{}, fmt.Errorf("auth ticket: %w", domain.ErrInventoryUninitialized)
	}
	return *s.ticket, nil
}

// Phase returns the lifecycle phase.
func (s *Session) Phase() domain.Phase { return s.phase }
