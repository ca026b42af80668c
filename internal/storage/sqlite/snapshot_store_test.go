package sqlite

import (
	"errors"
	"testing"
	"time"

	"github.com/crucible-hq/crucible/internal/domain"
	"github.com/crucible-hq/crucible/internal/interview"
)

func testSnapshot() *interview.Snapshot {
	return &interview.Snapshot{
		Candidate:        testCandidate("Ada Lovelace", "ada@example.com"),
		InProgress:       true,
		QuestionIndex:    2,
		Difficulty:       domain.DifficultyMedium,
		SessionStartTime: time.Now().Add(-5 * time.Minute),
		SessionID:        "session-1",
		TimeRemaining:    42,
	}
}

func TestSnapshotStore_SaveLoad(t *testing.T) {
	db := openTestDB(t)
	store := NewSnapshotStore(db)

	snap := testSnapshot()
	if err := store.Save(snap); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if snap.LastSaved.IsZero() {
		t.Error("Save() did not stamp LastSaved")
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.SessionID != "session-1" {
		t.Errorf("SessionID = %q; want %q", got.SessionID, "session-1")
	}
	if got.QuestionIndex != 2 {
		t.Errorf("QuestionIndex = %d; want 2", got.QuestionIndex)
	}
	if got.TimeRemaining != 42 {
		t.Errorf("TimeRemaining = %d; want 42", got.TimeRemaining)
	}
	if got.Candidate == nil || got.Candidate.Name != "Ada Lovelace" {
		t.Errorf("Candidate = %+v; want Ada Lovelace", got.Candidate)
	}
}

func TestSnapshotStore_SaveReplaces(t *testing.T) {
	db := openTestDB(t)
	store := NewSnapshotStore(db)

	first := testSnapshot()
	if err := store.Save(first); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	second := testSnapshot()
	second.SessionID = "session-2"
	second.QuestionIndex = 4
	if err := store.Save(second); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.SessionID != "session-2" {
		t.Errorf("SessionID = %q; want %q", got.SessionID, "session-2")
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM interview_snapshot").Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("snapshot rows = %d; want 1", count)
	}
}

func TestSnapshotStore_LoadMissing(t *testing.T) {
	db := openTestDB(t)
	store := NewSnapshotStore(db)

	if _, err := store.Load(); !errors.Is(err, domain.ErrSnapshotNotFound) {
		t.Errorf("Load() error = %v; want ErrSnapshotNotFound", err)
	}
}

func TestSnapshotStore_LoadCorrupt(t *testing.T) {
	db := openTestDB(t)
	store := NewSnapshotStore(db)

	_, err := db.Exec(
		"INSERT INTO interview_snapshot (slot, data, saved_at) VALUES (1, ?, ?)",
		"{broken", time.Now(),
	)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := store.Load(); !errors.Is(err, domain.ErrSnapshotNotFound) {
		t.Errorf("Load() error = %v; want ErrSnapshotNotFound", err)
	}

	// The corrupt row is dropped so later saves start clean.
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM interview_snapshot").Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("snapshot rows = %d after corrupt load; want 0", count)
	}
}

func TestSnapshotStore_Clear(t *testing.T) {
	db := openTestDB(t)
	store := NewSnapshotStore(db)

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() on empty store error = %v", err)
	}

	if err := store.Save(testSnapshot()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if _, err := store.Load(); !errors.Is(err, domain.ErrSnapshotNotFound) {
		t.Errorf("Load() after Clear error = %v; want ErrSnapshotNotFound", err)
	}
}
