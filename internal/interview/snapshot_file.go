package interview

import (
	"errors"
	"fmt"
	"time"

	"github.com/crucible-hq/crucible/internal/domain"
	"github.com/crucible-hq/crucible/internal/storage/local"
)

const (
	snapshotCollection = "interview"
	snapshotID         = "current"
)

// FileSnapshotStore persists the interview snapshot as a JSON file.
type FileSnapshotStore struct {
	store *local.Store
}

// NewFileSnapshotStore creates a snapshot store backed by a local JSON store.
func NewFileSnapshotStore(store *local.Store) *FileSnapshotStore {
	return &FileSnapshotStore{store: store}
}

// Save writes the snapshot, stamping LastSaved.
func (s *FileSnapshotStore) Save(snap *Snapshot) error {
	snap.LastSaved = time.Now()
	if err := s.store.Save(snapshotCollection, snapshotID, snap); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Load reads the current snapshot. A corrupt snapshot file is deleted and
// reported as absent.
func (s *FileSnapshotStore) Load() (*Snapshot, error) {
	var snap Snapshot
	err := s.store.Load(snapshotCollection, snapshotID, &snap)
	if err != nil {
		if errors.Is(err, local.ErrNotFound) {
			return nil, domain.ErrSnapshotNotFound
		}
		if errors.Is(err, local.ErrCorrupt) {
			s.store.Delete(snapshotCollection, snapshotID)
			return nil, domain.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	return &snap, nil
}

// Clear removes the snapshot. Clearing an absent snapshot is not an error.
func (s *FileSnapshotStore) Clear() error {
	err := s.store.Delete(snapshotCollection, snapshotID)
	if err != nil && !errors.Is(err, local.ErrNotFound) {
		return fmt.Errorf("clear snapshot: %w", err)
	}
	return nil
}
