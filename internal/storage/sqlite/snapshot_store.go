package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/crucible-hq/crucible/internal/domain"
	"github.com/crucible-hq/crucible/internal/interview"
)

// SnapshotStore implements interview snapshot persistence backed by SQLite.
// The interview_snapshot table holds at most one row.
type SnapshotStore struct {
	db *DB
}

// NewSnapshotStore creates a new SQLite-backed snapshot store.
func NewSnapshotStore(db *DB) *SnapshotStore {
	return &SnapshotStore{db: db}
}

// Save persists the snapshot, replacing any prior one.
func (s *SnapshotStore) Save(snap *interview.Snapshot) error {
	snap.LastSaved = time.Now()
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO interview_snapshot (slot, data, saved_at) VALUES (1, ?, ?)
		ON CONFLICT(slot) DO UPDATE SET data=excluded.data, saved_at=excluded.saved_at`,
		string(data), snap.LastSaved,
	)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Load reads the current snapshot. A row that fails to decode is deleted
// and reported as absent.
func (s *SnapshotStore) Load() (*interview.Snapshot, error) {
	var data string
	err := s.db.QueryRow("SELECT data FROM interview_snapshot WHERE slot = 1").Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	var snap interview.Snapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		s.db.Exec("DELETE FROM interview_snapshot WHERE slot = 1")
		return nil, domain.ErrSnapshotNotFound
	}
	return &snap, nil
}

// Clear removes the snapshot. Clearing an absent snapshot is not an error.
func (s *SnapshotStore) Clear() error {
	if _, err := s.db.Exec("DELETE FROM interview_snapshot WHERE slot = 1"); err != nil {
		return fmt.Errorf("clear snapshot: %w", err)
	}
	return nil
}
