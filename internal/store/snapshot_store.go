package store

import (
	"path/filepath"
	"sync"

	"pogo/internal/domain"
)

const snapshotFile = "session.json"

// SnapshotFileStore keeps the summary of the last session in plain JSON.
type SnapshotFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewSnapshotFileStore returns a store rooted at dir.
func NewSnapshotFileStore(dir string) *SnapshotFileStore { return &SnapshotFileStore{dir: dir} }

// SaveSnapshot replaces the stored snapshot.
func (s *SnapshotFileStore) SaveSnapshot(snap domain.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return writeJSON(filepath.Join(s.dir, snapshotFile), snap, 0o600)
}

// LoadSnapshot returns the stored snapshot; ok is false when there is none.
func (s *SnapshotFileStore) LoadSnapshot() (domain.Snapshot, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var snap domain.Snapshot
	ok, err := readJSON(filepath.Join(s.dir, snapshotFile), &snap)
	if err != nil || !ok {
		return domain.Snapshot{}, false, err
	}
	return snap, true, nil
}

var _ domain.SnapshotStore = (*SnapshotFileStore)(nil)
