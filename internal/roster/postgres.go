package roster

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/crucible-hq/crucible/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore implements Store using PostgreSQL. It is used when the
// daemon runs against a shared database instead of local files.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL candidate store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// EnsureSchema creates the candidates table if it does not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS candidates (
			id            TEXT PRIMARY KEY,
			name          TEXT NOT NULL,
			email         TEXT NOT NULL,
			phone         TEXT NOT NULL DEFAULT '',
			skills        JSONB NOT NULL DEFAULT '[]',
			filename      TEXT NOT NULL DEFAULT '',
			file_size     BIGINT NOT NULL DEFAULT 0,
			extracted_at  TIMESTAMPTZ,
			status        TEXT NOT NULL DEFAULT 'pending',
			final_score   INTEGER NOT NULL DEFAULT 0,
			final_summary TEXT NOT NULL DEFAULT '',
			completed_at  TIMESTAMPTZ,
			answers       JSONB NOT NULL DEFAULT '[]',
			created_at    TIMESTAMPTZ NOT NULL,
			updated_at    TIMESTAMPTZ NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("ensure candidates schema: %w", err)
	}
	return nil
}

// Save persists a candidate (insert or update).
func (s *PostgresStore) Save(ctx context.Context, c *domain.Candidate) error {
	skills, err := json.Marshal(c.Skills)
	if err != nil {
		return fmt.Errorf("marshal skills: %w", err)
	}
	answers, err := json.Marshal(c.Answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}

	query := `
		INSERT INTO candidates (id, name, email, phone, skills, filename, file_size,
			extracted_at, status, final_score, final_summary, completed_at, answers,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name, email = EXCLUDED.email, phone = EXCLUDED.phone,
			skills = EXCLUDED.skills, filename = EXCLUDED.filename,
			file_size = EXCLUDED.file_size, extracted_at = EXCLUDED.extracted_at,
			status = EXCLUDED.status, final_score = EXCLUDED.final_score,
			final_summary = EXCLUDED.final_summary, completed_at = EXCLUDED.completed_at,
			answers = EXCLUDED.answers, updated_at = EXCLUDED.updated_at
	`
	_, err = s.pool.Exec(ctx, query,
		c.ID, c.Name, c.Email, c.Phone, skills, c.Filename, c.FileSize,
		c.ExtractedAt, string(c.Status), c.FinalScore, c.FinalSummary,
		c.CompletedAt, answers, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save candidate: %w", err)
	}
	return nil
}

// Get retrieves a candidate by ID.
func (s *PostgresStore) Get(ctx context.Context, id string) (*domain.Candidate, error) {
	query := pgSelectCandidate + " WHERE id = $1"
	c, err := scanPgCandidate(s.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCandidateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get candidate: %w", err)
	}
	return c, nil
}

// List returns all candidates ordered by creation time, newest first.
func (s *PostgresStore) List(ctx context.Context) ([]*domain.Candidate, error) {
	rows, err := s.pool.Query(ctx, pgSelectCandidate+" ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	defer rows.Close()

	var out []*domain.Candidate
	for rows.Next() {
		c, err := scanPgCandidate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Delete removes a candidate by ID.
func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	result, err := s.pool.Exec(ctx, "DELETE FROM candidates WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete candidate: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrCandidateNotFound
	}
	return nil
}

const pgSelectCandidate = `
	SELECT id, name, email, phone, skills, filename, file_size, extracted_at,
		status, final_score, final_summary, completed_at, answers,
		created_at, updated_at
	FROM candidates`

func scanPgCandidate(row pgx.Row) (*domain.Candidate, error) {
	var (
		c       domain.Candidate
		skills  []byte
		answers []byte
		status  string
	)
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &skills, &c.Filename,
		&c.FileSize, &c.ExtractedAt, &status, &c.FinalScore, &c.FinalSummary,
		&c.CompletedAt, &answers, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(skills, &c.Skills); err != nil {
		return nil, fmt.Errorf("unmarshal skills: %w", err)
	}
	if err := json.Unmarshal(answers, &c.Answers); err != nil {
		return nil, fmt.Errorf("unmarshal answers: %w", err)
	}
	c.Status = domain.CandidateStatus(status)
	return &c, nil
}
