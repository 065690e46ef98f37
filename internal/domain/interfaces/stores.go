package interfaces

import domaintypes "pogo/internal/domain/types"

// CredentialStore persists the provider token and signer key, encrypted.
type CredentialStore interface {
	SaveCredentials(passphrase string, creds domaintypes.Credentials) error
	LoadCredentials(passphrase string) (domaintypes.Credentials, error)
}

// SnapshotStore keeps a plain summary of the last session.
type SnapshotStore interface {
	SaveSnapshot(snapshot domaintypes.Snapshot) error
	LoadSnapshot() (domaintypes.Snapshot, bool, error)
}
