package domain

import "errors"

// -----------------------------------------------------------------------------
// Domain Errors
// These errors represent domain-level failures and are used by stores and
// services to communicate domain-specific error conditions.
// -----------------------------------------------------------------------------

// Candidate errors
var (
	ErrCandidateNotFound = errors.New("candidate not found")
	ErrMissingIdentity   = errors.New("candidate is missing required identity fields")
)

// Interview session errors
var (
	ErrNoActiveSession   = errors.New("no active interview session")
	ErrSessionActive     = errors.New("an interview session is already active")
	ErrSessionNotActive  = errors.New("interview session is not active")
	ErrAlreadyAnswered   = errors.New("question already answered")
	ErrInterviewFinished = errors.New("interview already finished")
	ErrSnapshotNotFound  = errors.New("no resumable session snapshot")
	ErrSnapshotNotUsable = errors.New("session snapshot is not resumable")
)

// Question bank errors
var (
	ErrQuestionNotFound = errors.New("question not found")
	ErrEmptyTier        = errors.New("question bank tier is empty")
)

// General errors
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)
