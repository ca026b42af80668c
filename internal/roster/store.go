// Package roster manages the candidate list: persistence, search, sorting,
// status filtering, and bulk removal.
package roster

import (
	"context"

	"github.com/crucible-hq/crucible/internal/domain"
)

// Store persists candidates.
type Store interface {
	Save(ctx context.Context, c *domain.Candidate) error
	Get(ctx context.Context, id string) (*domain.Candidate, error)
	List(ctx context.Context) ([]*domain.Candidate, error)
	Delete(ctx context.Context, id string) error
}
