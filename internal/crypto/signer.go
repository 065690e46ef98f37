package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"

	"pogo/internal/domain"
	"pogo/internal/util/memzero"
)

const signerInfo = "pogo-signature-v1"

var (
	// ErrShortSignerKey is returned for signer secrets under 32 bytes.
	ErrShortSignerKey = errors.New("signer key must be at least 32 bytes")
	// ErrBadSignature is returned by Open when the blob does not authenticate.
	ErrBadSignature = errors.New("signature does not authenticate")
)

// AEADSigner seals signature records with XChaCha20-Poly1305. The output is
// nonce || ciphertext, so two signatures of the same record never match.
type AEADSigner struct {
	key [chacha20poly1305.KeySize]byte
}

// NewAEADSigner derives the sealing key from secret with HKDF-SHA256.
func NewAEADSigner(secret []byte) (*AEADSigner, error) {
	if len(secret) < 32 {
		return nil, ErrShortSignerKey
	}
	s := &AEADSigner{}
	kdf := hkdf.New(sha256.New, secret, nil, []byte(signerInfo))
	if _, err := io.ReadFull(kdf, s.key[:]); err != nil {
		return nil, err
	}
	return s, nil
}

// Sign seals record.
func (s *AEADSigner) Sign(record []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(s.key[:])
	if err != nil {
		return nil, err
	}
	out := make([]byte, aead.NonceSize(), aead.NonceSize()+len(record)+aead.Overhead())
	if _, err := rand.Read(out); err != nil {
		return nil, err
	}
	return aead.Seal(out, out[:aead.NonceSize()], record, nil), nil
}

// Open recovers the record from a signature produced by Sign.
func (s *AEADSigner) Open(sig []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(s.key[:])
	if err != nil {
		return nil, err
	}
	if len(sig) < aead.NonceSize()+aead.Overhead() {
		return nil, ErrBadSignature
	}
	nonce, ct := sig[:aead.NonceSize()], sig[aead.NonceSize():]
	pt, err := aead.Open(nil, nonce, ct, nil)
	if err != nil {
		return nil, ErrBadSignature
	}
	return pt, nil
}

// Close wipes the sealing key.
func (s *AEADSigner) Close() { memzero.Zero(s.key[:]) }

var _ domain.Signer = (*AEADSigner)(nil)
