package domain

import "time"

// Answer records one submitted (or auto-submitted) response. Created exactly
// once per question index, in order, and immutable afterwards.
type Answer struct {
	QuestionIndex int        `json:"questionIndex"`
	Question      string     `json:"question"`
	Answer        string     `json:"answer"`
	Difficulty    Difficulty `json:"difficulty"`
	TimeUsed      int        `json:"timeUsed"`  // seconds
	TimeLimit     int        `json:"timeLimit"` // seconds
	SubmittedAt   time.Time  `json:"submittedAt"`
}
