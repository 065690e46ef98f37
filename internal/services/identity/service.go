package identity

import (
	"crypto/rand"
	"fmt"
	"unicode"

	"pogo/internal/auth"
	"pogo/internal/crypto"
	"pogo/internal/domain"
)

const (
	// minPassphraseLength defines the minimum number of characters required for a passphrase.
	minPassphraseLength = 12
	// signerKeyBytes is the size of generated signer keys.
	signerKeyBytes = 32
)

var (
	// ErrWeakPassphrase is returned when the passphrase fails the strength policy.
	ErrWeakPassphrase = fmt.Errorf(
		"passphrase is too weak (must be at least %d characters and include upper, lower, "+
			"number, and symbol)",
		minPassphraseLength,
	)
)

// Service stores and opens credentials using a backing store.
type Service struct {
	store domain.CredentialStore
}

// New returns an identity service backed by the given store.
func New(s domain.CredentialStore) *Service { return &Service{store: s} }

// Login validates and saves the credentials, generating a signer key when
// withSigner is set. It returns a fingerprint of the stored token.
func (s *Service) Login(
	passphrase string,
	provider string,
	token string,
	withSigner bool,
) (string, error) {
	if !isSecurePassphrase(passphrase) {
		return "", ErrWeakPassphrase
	}
	// Validate through the same constructor sessions use.
	sess, err := auth.NewStaticSession(domain.Provider(provider), token, nil)
	if err != nil {
		return "", err
	}

	creds := domain.Credentials{Provider: sess.Provider(), Token: sess.AccessToken()}
	if withSigner {
		creds.SignerKey = make([]byte, signerKeyBytes)
		if _, err := rand.Read(creds.SignerKey); err != nil {
			return "", err
		}
	}
	if err := s.store.SaveCredentials(passphrase, creds); err != nil {
		return "", err
	}
	return crypto.Fingerprint([]byte(creds.Token)), nil
}

// Open decrypts the credentials and returns the auth session they describe.
func (s *Service) Open(passphrase string) (*auth.StaticSession, error) {
	creds, err := s.store.LoadCredentials(passphrase)
	if err != nil {
		return nil, err
	}
	var signer domain.Signer
	if len(creds.SignerKey) > 0 {
		aead, err := crypto.NewAEADSigner(creds.SignerKey)
		if err != nil {
			return nil, fmt.Errorf("stored signer key: %w", err)
		}
		signer = aead
	}
	return auth.NewStaticSession(creds.Provider, creds.Token, signer)
}

// Fingerprint returns a short fingerprint of the stored access token.
func (s *Service) Fingerprint(passphrase string) (string, error) {
	creds, err := s.store.LoadCredentials(passphrase)
	if err != nil {
		return "", err
	}
	return crypto.Fingerprint([]byte(creds.Token)), nil
}

// isSecurePassphrase enforces a basic strength policy.
func isSecurePassphrase(passphrase string) bool {
	var hasUpper, hasLower, hasDigit, hasSymbol bool
	if len(passphrase) < minPassphraseLength {
		return false
	}
	for _, r := range passphrase {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r), unicode.IsSymbol(r):
			hasSymbol = true
		}
	}
	return hasUpper && hasLower && hasDigit && hasSymbol
}
