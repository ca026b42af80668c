package domain

import (
	"testing"
	"time"
)

func TestNewCandidate(t *testing.T) {
	c := NewCandidate("Ada Lovelace", "ada@example.com", "+1 555 000 0000")

	if c.ID == "" {
		t.Error("ID empty; want generated")
	}
	if c.Status != StatusPending {
		t.Errorf("Status = %q; want %q", c.Status, StatusPending)
	}
	if c.CreatedAt.IsZero() || c.UpdatedAt.IsZero() {
		t.Error("timestamps not set")
	}
}

func TestHasIdentity(t *testing.T) {
	full := NewCandidate("Ada", "ada@example.com", "")
	if !full.HasIdentity() {
		t.Error("HasIdentity() = false with name and email")
	}

	noName := NewCandidate("", "ada@example.com", "")
	if noName.HasIdentity() {
		t.Error("HasIdentity() = true without name")
	}

	noEmail := NewCandidate("Ada", "", "")
	if noEmail.HasIdentity() {
		t.Error("HasIdentity() = true without email")
	}

	var nilC *Candidate
	if nilC.HasIdentity() {
		t.Error("HasIdentity() = true for nil candidate")
	}
}

func TestStartInterview(t *testing.T) {
	c := NewCandidate("Ada", "ada@example.com", "")
	before := c.UpdatedAt

	time.Sleep(time.Millisecond)
	c.StartInterview()

	if c.Status != StatusInProgress {
		t.Errorf("Status = %q; want %q", c.Status, StatusInProgress)
	}
	if !c.UpdatedAt.After(before) {
		t.Error("UpdatedAt not advanced")
	}
}

func TestCompleteInterview(t *testing.T) {
	c := NewCandidate("Ada", "ada@example.com", "")
	c.StartInterview()

	completedAt := time.Now()
	answers := []Answer{{QuestionIndex: 0, Answer: "state"}}
	c.CompleteInterview(77, "good grasp of fundamentals", answers, completedAt)

	if c.Status != StatusCompleted {
		t.Errorf("Status = %q; want %q", c.Status, StatusCompleted)
	}
	if c.FinalScore != 77 {
		t.Errorf("FinalScore = %d; want 77", c.FinalScore)
	}
	if c.FinalSummary == "" {
		t.Error("FinalSummary empty")
	}
	if c.CompletedAt == nil || !c.CompletedAt.Equal(completedAt) {
		t.Errorf("CompletedAt = %v; want %v", c.CompletedAt, completedAt)
	}
	if len(c.Answers) != 1 {
		t.Errorf("len(Answers) = %d; want 1", len(c.Answers))
	}
}
