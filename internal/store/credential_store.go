package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"pogo/internal/domain"
	"pogo/internal/util/memzero"
)

const (
	credentialsFile    = "credentials.json.enc"
	credentialsPurpose = "pogo-credentials"
)

// ErrNoCredentials is returned by LoadCredentials before anything was saved.
var ErrNoCredentials = errors.New("no stored credentials; run login first")

// CredentialFileStore keeps the access token and signer key encrypted under a
// passphrase.
type CredentialFileStore struct {
	dir    string
	params scryptParams
	mu     sync.Mutex
}

// NewCredentialFileStore returns a store rooted at dir.
func NewCredentialFileStore(dir string) *CredentialFileStore {
	return &CredentialFileStore{dir: dir, params: scryptParamsDefault()}
}

// SaveCredentials encrypts and writes creds, replacing earlier ones.
func (s *CredentialFileStore) SaveCredentials(passphrase string, creds domain.Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(creds)
	if err != nil {
		return err
	}
	defer memzero.Zero(raw)
	ct, err := seal(credentialsPurpose, passphrase, raw, s.params)
	if err != nil {
		return fmt.Errorf("encrypt credentials: %w", err)
	}
	return writeFile(filepath.Join(s.dir, credentialsFile), ct, 0o600)
}

// LoadCredentials reads and decrypts the stored credentials.
func (s *CredentialFileStore) LoadCredentials(passphrase string) (domain.Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := readFile(filepath.Join(s.dir, credentialsFile))
	if err != nil {
		return domain.Credentials{}, err
	}
	if b == nil {
		return domain.Credentials{}, ErrNoCredentials
	}
	pt, err := open(credentialsPurpose, passphrase, b)
	if err != nil {
		return domain.Credentials{}, err
	}
	defer memzero.Zero(pt)
	var creds domain.Credentials
	if err := json.Unmarshal(pt, &creds); err != nil {
		return domain.Credentials{}, err
	}
	return creds, nil
}

// Compile-time assertion that CredentialFileStore implements domain.CredentialStore.
var _ domain.CredentialStore = (*CredentialFileStore)(nil)
