// Package store provides file-based persistence for the pogo CLI.
//
// Credentials (provider, access token, signer key) are sealed with
// ChaCha20-Poly1305 under a key derived from a passphrase with scrypt. The
// last session summary is kept as plain JSON; it holds no secrets. Writes go
// through a temp file and rename. All methods are safe for concurrent use.
package store
