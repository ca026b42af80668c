package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/crucible-hq/crucible/internal/domain"
)

// RosterStore implements candidate persistence backed by SQLite.
type RosterStore struct {
	db *DB
}

// NewRosterStore creates a new SQLite-backed roster store.
func NewRosterStore(db *DB) *RosterStore {
	return &RosterStore{db: db}
}

// Save persists a candidate (insert or update).
func (s *RosterStore) Save(ctx context.Context, c *domain.Candidate) error {
	skills, err := json.Marshal(c.Skills)
	if err != nil {
		return fmt.Errorf("marshal skills: %w", err)
	}
	answers, err := json.Marshal(c.Answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO candidates (id, name, email, phone, skills, filename, file_size,
			extracted_at, status, final_score, final_summary, completed_at, answers,
			created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name=excluded.name, email=excluded.email, phone=excluded.phone,
			skills=excluded.skills, filename=excluded.filename, file_size=excluded.file_size,
			extracted_at=excluded.extracted_at, status=excluded.status,
			final_score=excluded.final_score, final_summary=excluded.final_summary,
			completed_at=excluded.completed_at, answers=excluded.answers,
			updated_at=excluded.updated_at`,
		c.ID, c.Name, c.Email, c.Phone, string(skills), c.Filename, c.FileSize,
		nullTime(c.ExtractedAt), string(c.Status), c.FinalScore, c.FinalSummary,
		nullTime(c.CompletedAt), string(answers), c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save candidate: %w", err)
	}
	return nil
}

// Get retrieves a candidate by ID.
func (s *RosterStore) Get(ctx context.Context, id string) (*domain.Candidate, error) {
	row := s.db.QueryRowContext(ctx, selectCandidate+" WHERE id = ?", id)
	c, err := scanCandidate(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCandidateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get candidate: %w", err)
	}
	return c, nil
}

// List returns all candidates ordered by creation time, newest first.
func (s *RosterStore) List(ctx context.Context) ([]*domain.Candidate, error) {
	rows, err := s.db.QueryContext(ctx, selectCandidate+" ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	defer rows.Close()

	var out []*domain.Candidate
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Delete removes a candidate by ID.
func (s *RosterStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM candidates WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete candidate: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete candidate: %w", err)
	}
	if n == 0 {
		return domain.ErrCandidateNotFound
	}
	return nil
}

const selectCandidate = `
	SELECT id, name, email, phone, skills, filename, file_size, extracted_at,
		status, final_score, final_summary, completed_at, answers,
		created_at, updated_at
	FROM candidates`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCandidate(row rowScanner) (*domain.Candidate, error) {
	var (
		c           domain.Candidate
		skills      string
		answers     string
		status      string
		extractedAt sql.NullTime
		completedAt sql.NullTime
	)
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &skills, &c.Filename,
		&c.FileSize, &extractedAt, &status, &c.FinalScore, &c.FinalSummary,
		&completedAt, &answers, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(skills), &c.Skills); err != nil {
		return nil, fmt.Errorf("unmarshal skills: %w", err)
	}
	if err := json.Unmarshal([]byte(answers), &c.Answers); err != nil {
		return nil, fmt.Errorf("unmarshal answers: %w", err)
	}
	c.Status = domain.CandidateStatus(status)
	c.ExtractedAt = timePtr(extractedAt)
	c.CompletedAt = timePtr(completedAt)
	return &c, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
