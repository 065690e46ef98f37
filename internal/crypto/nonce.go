package crypto

import "crypto/rand"

// SessionHashBytes is the size of the per-signature random nonce.
const SessionHashBytes = 32

// SessionHash returns fresh random bytes for a signature record.
func SessionHash() ([]byte, error) {
	b := make([]byte, SessionHashBytes)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	return b, nil
}
