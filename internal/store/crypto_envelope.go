package store

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"

	"pogo/internal/util/memzero"
)

// blobFormatVersion is the sealed-blob layout written by this package.
const blobFormatVersion = 1

// ErrWrongPassphrase is returned when the passphrase is incorrect or the
// ciphertext has been modified or corrupted.
var ErrWrongPassphrase = errors.New("wrong passphrase or corrupted credentials")

// sealed is the on-disk JSON form of a passphrase-protected secret. Purpose
// names the file it belongs to and is bound into the ciphertext.
type sealed struct {
	V       int    `json:"v"`
	Purpose string `json:"purpose"`
	KDF     kdf    `json:"kdf"`
	Nonce   []byte `json:"nonce"`
	Cipher  []byte `json:"cipher"`
}

type kdf struct {
	Salt []byte `json:"salt"`
	N    int    `json:"n"`
	R    int    `json:"r"`
	P    int    `json:"p"`
}

type scryptParams struct{ N, R, P int }

// scryptParamsDefault is the work factor for newly sealed blobs.
func scryptParamsDefault() scryptParams { return scryptParams{N: 1 << 15, R: 8, P: 1} }

func (k kdf) key(passphrase string) ([]byte, error) {
	return scrypt.Key([]byte(passphrase), k.Salt, k.N, k.R, k.P, chacha20poly1305.KeySize)
}

// seal encrypts raw under passphrase for purpose.
func seal(purpose, passphrase string, raw []byte, params scryptParams) ([]byte, error) {
	s := sealed{
		V:       blobFormatVersion,
		Purpose: purpose,
		KDF:     kdf{Salt: make([]byte, 16), N: params.N, R: params.R, P: params.P},
		Nonce:   make([]byte, chacha20poly1305.NonceSizeX),
	}
	if _, err := rand.Read(s.KDF.Salt); err != nil {
		return nil, err
	}
	if _, err := rand.Read(s.Nonce); err != nil {
		return nil, err
	}

	key, err := s.KDF.key(passphrase)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(key)
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	s.Cipher = aead.Seal(nil, s.Nonce, raw, []byte(purpose))
	return json.Marshal(s)
}

// open decrypts a blob written by seal. A blob sealed for another purpose
// fails like a wrong passphrase.
func open(purpose, passphrase string, b []byte) ([]byte, error) {
	var s sealed
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("decode %s blob: %w", purpose, err)
	}
	if s.V > blobFormatVersion {
		return nil, fmt.Errorf("unsupported %s blob version %d", purpose, s.V)
	}
	if len(s.Nonce) != chacha20poly1305.NonceSizeX {
		return nil, ErrWrongPassphrase
	}

	key, err := s.KDF.key(passphrase)
	if err != nil {
		return nil, fmt.Errorf("derive %s key: %w", purpose, err)
	}
	defer memzero.Zero(key)
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	pt, err := aead.Open(nil, s.Nonce, s.Cipher, []byte(purpose))
	if err != nil {
		return nil, ErrWrongPassphrase
	}
	return pt, nil
}
