// Package rpcid allocates envelope request identifiers.
//
// Identifiers are 64-bit unsigned and increase by exactly one per envelope. The
// process-wide allocator is seeded pseudo-randomly in [0, 10^12) so ids are not
// predictable across runs; at one id per request the counter cannot wrap within
// any realistic process lifetime, so wraparound is not handled.
package rpcid

import (
	"math/rand/v2"
	"sync/atomic"
)

// seedBound is the exclusive upper bound of the startup seed.
const seedBound = 1_000_000_000_000

// Allocator hands out strictly increasing identifiers. Safe for concurrent use.
type Allocator struct {
	last atomic.Uint64
}

// New returns an allocator whose first Next returns seed+1.
func New(seed uint64) *Allocator {
	a := &Allocator{}
	a.last.Store(seed)
	return a
}

// NewRandom returns an allocator seeded pseudo-randomly.
func NewRandom() *Allocator { return New(rand.Uint64N(seedBound)) }

// Next returns the next identifier.
func (a *Allocator) Next() uint64 { return a.last.Add(1) }

var global = NewRandom()

// Global returns the process-wide allocator shared by all sessions.
func Global() *Allocator { return global }
