// Package interview runs the mock interview: a fixed sequence of six timed
// questions drawn from the question bank, answers collected as the clock
// runs, and a scoring pass at the end that writes the result back to the
// roster.
package interview

import (
	"time"

	"github.com/crucible-hq/crucible/internal/domain"
	"github.com/google/uuid"
)

// State is the lifecycle phase of an interview session.
type State string

const (
	// StateActive means a question is on screen and the clock may run.
	StateActive State = "active"
	// StateScoring means all answers are in and scoring is underway.
	StateScoring State = "scoring"
	// StateCompleted means the final score has been written to the roster.
	StateCompleted State = "completed"
	// StateAbandoned means the session was discarded before completion.
	StateAbandoned State = "abandoned"
)

// Session is a single interview run for one candidate.
type Session struct {
	ID            string
	Candidate     *domain.Candidate
	State         State
	QuestionIndex int
	Current       *domain.Question
	Answers       []domain.Answer
	StartedAt     time.Time
}

// newSession creates an active session positioned before the first question.
func newSession(c *domain.Candidate) *Session {
	return &Session{
		ID:            uuid.New().String(),
		Candidate:     c,
		State:         StateActive,
		QuestionIndex: 0,
		Answers:       []domain.Answer{},
		StartedAt:     time.Now(),
	}
}

// Answered reports whether the question at the given index already has a
// recorded answer. Duplicate submissions for the same question are rejected
// by the service using this check.
func (s *Session) Answered(index int) bool {
	return len(s.Answers) > index
}

// Difficulty returns the difficulty tier of the current question index.
func (s *Session) Difficulty() domain.Difficulty {
	return domain.DifficultyForIndex(s.QuestionIndex)
}

// snapshot captures the session for persistence. The remaining time is
// supplied by the caller since the clock lives outside the session.
func (s *Session) snapshot(remaining int) *Snapshot {
	return &Snapshot{
		Candidate:        s.Candidate,
		InProgress:       s.State == StateActive || s.State == StateScoring,
		QuestionIndex:    s.QuestionIndex,
		CurrentQuestion:  s.Current,
		Difficulty:       s.Difficulty(),
		Answers:          s.Answers,
		SessionStartTime: s.StartedAt,
		SessionID:        s.ID,
		TimeRemaining:    remaining,
	}
}

// restoreSession rebuilds a session from a snapshot. A snapshot holding a
// full set of answers was taken during the scoring phase, so the session
// re-enters scoring; otherwise it resumes on the saved question. The clock
// is left to the service, which restores it paused at the snapshot's
// remaining time.
func restoreSession(snap *Snapshot) *Session {
	state := StateActive
	current := snap.CurrentQuestion
	if len(snap.Answers) >= domain.TotalQuestions {
		state = StateScoring
		current = nil
	}
	return &Session{
		ID:            snap.SessionID,
		Candidate:     snap.Candidate,
		State:         state,
		QuestionIndex: snap.QuestionIndex,
		Current:       current,
		Answers:       snap.Answers,
		StartedAt:     snap.SessionStartTime,
	}
}
