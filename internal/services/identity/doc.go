// Package identity manages the stored login: the provider access token and
// the optional request-signing key.
//
// It enforces the passphrase policy, generates signer keys, persists
// credentials via a domain.CredentialStore and turns them back into an
// auth session for the session engine.
package identity
