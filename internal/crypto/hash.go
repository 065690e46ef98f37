package crypto

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"

	"pogo/internal/domain"
)

// hashSeed seeds the ticket digest and the unbound location digest.
const hashSeed uint64 = 0x1B845238

func seededSum(seed uint64, b []byte) uint64 {
	d := xxhash.NewWithSeed(seed)
	_, _ = d.Write(b)
	return d.Sum64()
}

// locationBytes packs the triple as three big-endian IEEE 754 doubles.
func locationBytes(c domain.Coordinates) []byte {
	b := make([]byte, 24)
	binary.BigEndian.PutUint64(b[0:8], math.Float64bits(c.Latitude))
	binary.BigEndian.PutUint64(b[8:16], math.Float64bits(c.Longitude))
	binary.BigEndian.PutUint64(b[16:24], math.Float64bits(c.Altitude))
	return b
}

// HashLocation returns the ticket-bound and the unbound location digests.
func HashLocation(ticket []byte, c domain.Coordinates) (bound, unbound uint64) {
	loc := locationBytes(c)
	return seededSum(seededSum(hashSeed, ticket), loc), seededSum(hashSeed, loc)
}

// HashRequests digests every encoded sub-request, seeded by the ticket, in
// batch order.
func HashRequests(ticket []byte, requests [][]byte) []uint64 {
	seed := seededSum(hashSeed, ticket)
	out := make([]uint64, len(requests))
	for i, r := range requests {
		out[i] = seededSum(seed, r)
	}
	return out
}
