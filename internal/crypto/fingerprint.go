package crypto

import (
	"crypto/sha256"
	"encoding/hex"

	"pogo/internal/domain"
)

// Fingerprint returns a short hex fingerprint of secret material, safe to log.
//
// It hashes with SHA-256 and truncates to 10 bytes (20 hex chars).
func Fingerprint(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:10])
}

// TicketFingerprint fingerprints the start field of an auth ticket.
func TicketFingerprint(t domain.AuthTicket) string { return Fingerprint(t.Start) }
