package domain

import (
	"time"

	"github.com/google/uuid"
)

// CandidateStatus tracks where a candidate is in the interview pipeline.
type CandidateStatus string

const (
	StatusPending    CandidateStatus = "pending"
	StatusInProgress CandidateStatus = "in-progress"
	StatusCompleted  CandidateStatus = "completed"
)

// Candidate represents one person taking (or having taken) the interview.
// JSON field names match the persisted record format consumed by the UI.
type Candidate struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Email  string   `json:"email"`
	Phone  string   `json:"phone"`
	Skills []string `json:"skills,omitempty"`

	// Intake metadata from the resume upload
	Filename    string     `json:"filename,omitempty"`
	FileSize    int64      `json:"fileSize,omitempty"`
	ExtractedAt *time.Time `json:"extractedAt,omitempty"`

	Status    CandidateStatus `json:"status"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`

	// Populated once the interview completes
	FinalScore   int        `json:"finalScore"`
	FinalSummary string     `json:"finalSummary,omitempty"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
	Answers      []Answer   `json:"answers,omitempty"`
}

// NewCandidate creates a candidate in the pending state.
func NewCandidate(name, email, phone string) *Candidate {
	now := time.Now()
	return &Candidate{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		Phone:     phone,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// HasIdentity reports whether the required identity fields are present.
// A session cannot begin for a candidate without them.
func (c *Candidate) HasIdentity() bool {
	return c != nil && c.ID != "" && c.Name != "" && c.Email != ""
}

// StartInterview marks the candidate as mid-interview.
func (c *Candidate) StartInterview() {
	c.Status = StatusInProgress
	c.UpdatedAt = time.Now()
}

// CompleteInterview records the scored outcome on the candidate.
func (c *Candidate) CompleteInterview(score int, summary string, answers []Answer, completedAt time.Time) {
	c.Status = StatusCompleted
	c.FinalScore = score
	c.FinalSummary = summary
	c.Answers = answers
	c.CompletedAt = &completedAt
	c.UpdatedAt = time.Now()
}
