package interview

import (
	"time"

	"github.com/crucible-hq/crucible/internal/domain"
)

// Snapshot is the persisted image of an interview in progress. It carries
// everything needed to restore the session after a daemon restart: the
// candidate, position in the question sequence, collected answers, and the
// remaining time on the paused clock.
type Snapshot struct {
	Candidate        *domain.Candidate `json:"candidate"`
	InProgress       bool              `json:"inProgress"`
	QuestionIndex    int               `json:"questionIndex"`
	CurrentQuestion  *domain.Question  `json:"currentQuestion"`
	Difficulty       domain.Difficulty `json:"difficulty"`
	Answers          []domain.Answer   `json:"answers"`
	SessionStartTime time.Time         `json:"sessionStartTime"`
	SessionID        string            `json:"sessionId"`
	TimeRemaining    int               `json:"timeRemaining"`
	LastSaved        time.Time         `json:"lastSaved"`
}

// Usable reports whether the snapshot describes a session that can be
// resumed. A snapshot without a candidate identity, or pointing past the
// end of the question sequence, is stale and should be discarded.
func (s *Snapshot) Usable() bool {
	if s == nil || s.Candidate == nil || !s.Candidate.HasIdentity() {
		return false
	}
	if s.QuestionIndex < 0 || s.QuestionIndex >= domain.TotalQuestions {
		return false
	}
	return s.InProgress
}

// SnapshotStore persists at most one interview snapshot at a time.
// Load returns domain.ErrSnapshotNotFound when no snapshot exists; a
// snapshot that exists but cannot be decoded is treated the same way and
// removed, so a corrupt record never blocks a fresh interview.
type SnapshotStore interface {
	Save(snap *Snapshot) error
	Load() (*Snapshot, error)
	Clear() error
}
