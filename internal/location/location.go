package location

import (
	"sync"

	"pogo/internal/domain"
)

// Fixed reports whatever coordinates were last set. Safe for concurrent use.
type Fixed struct {
	mu   sync.RWMutex
	at   domain.Coordinates
	noop bool
}

// NewFixed returns a source positioned at the given point.
func NewFixed(latitude, longitude, altitude float64) *Fixed {
	return &Fixed{at: domain.Coordinates{Latitude: latitude, Longitude: longitude, Altitude: altitude}}
}

// FromCoordinates returns a source positioned at c.
func FromCoordinates(c domain.Coordinates) *Fixed { return &Fixed{at: c} }

// NewNoop returns a source with no known position. It reports zero coordinates
// until SetCoordinates is called.
func NewNoop() *Fixed { return &Fixed{noop: true} }

// Coordinates returns the current position.
func (f *Fixed) Coordinates() domain.Coordinates {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.at
}

// SetCoordinates moves the source and clears the no-op flag. Altitude is kept.
func (f *Fixed) SetCoordinates(latitude, longitude float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.at.Latitude = latitude
	f.at.Longitude = longitude
	f.noop = false
}

// IsNoop reports whether no position has been set.
func (f *Fixed) IsNoop() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.noop
}

var _ domain.Location = (*Fixed)(nil)
