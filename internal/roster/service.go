package roster

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/crucible-hq/crucible/internal/domain"
)

// SortField selects the roster ordering key.
type SortField string

const (
	SortByScore SortField = "score"
	SortByName  SortField = "name"
	SortByDate  SortField = "date"
)

// Query filters and orders a roster listing. Zero values mean no search
// text, all statuses, and the default date ordering.
type Query struct {
	Search     string
	Status     domain.CandidateStatus
	SortBy     SortField
	Descending bool
}

// Service manages the candidate roster.
type Service struct {
	store  Store
	logger *slog.Logger
}

// NewService creates a roster service.
func NewService(store Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, logger: logger}
}

// Add stores a new candidate.
func (s *Service) Add(ctx context.Context, c *domain.Candidate) error {
	if c.Name == "" || c.Email == "" {
		return fmt.Errorf("%w: name and email are required", domain.ErrInvalidInput)
	}
	if err := s.store.Save(ctx, c); err != nil {
		return err
	}
	s.logger.Info("candidate added", "id", c.ID, "name", c.Name)
	return nil
}

// Get retrieves a candidate by ID.
func (s *Service) Get(ctx context.Context, id string) (*domain.Candidate, error) {
	return s.store.Get(ctx, id)
}

// Save persists candidate changes.
func (s *Service) Save(ctx context.Context, c *domain.Candidate) error {
	c.UpdatedAt = time.Now()
	return s.store.Save(ctx, c)
}

// List returns candidates matching the query, ordered by its sort field.
func (s *Service) List(ctx context.Context, q Query) ([]*domain.Candidate, error) {
	all, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]*domain.Candidate, 0, len(all))
	for _, c := range all {
		if q.Status != "" && c.Status != q.Status {
			continue
		}
		if q.Search != "" && !matches(c, q.Search) {
			continue
		}
		filtered = append(filtered, c)
	}

	sortCandidates(filtered, q.SortBy, q.Descending)
	return filtered, nil
}

// Delete removes a candidate by ID.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("candidate deleted", "id", id)
	return nil
}

// DeleteMany removes the named candidates and returns how many were
// actually deleted. Unknown IDs are skipped, not errors.
func (s *Service) DeleteMany(ctx context.Context, ids []string) (int, error) {
	deleted := 0
	for _, id := range ids {
		err := s.store.Delete(ctx, id)
		if err == nil {
			deleted++
			continue
		}
		if !errors.Is(err, domain.ErrCandidateNotFound) {
			return deleted, err
		}
	}
	s.logger.Info("candidates deleted", "requested", len(ids), "deleted", deleted)
	return deleted, nil
}

// Stats summarizes the roster by status.
type Stats struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	InProgress int `json:"inProgress"`
	Completed  int `json:"completed"`
}

// Stats returns roster counts by status.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	all, err := s.store.List(ctx)
	if err != nil {
		return Stats{}, err
	}
	st := Stats{Total: len(all)}
	for _, c := range all {
		switch c.Status {
		case domain.StatusPending:
			st.Pending++
		case domain.StatusInProgress:
			st.InProgress++
		case domain.StatusCompleted:
			st.Completed++
		}
	}
	return st, nil
}

// matches reports whether the search text appears in the candidate's
// name, email, or phone, case-insensitively.
func matches(c *domain.Candidate, search string) bool {
	needle := strings.ToLower(search)
	return strings.Contains(strings.ToLower(c.Name), needle) ||
		strings.Contains(strings.ToLower(c.Email), needle) ||
		strings.Contains(strings.ToLower(c.Phone), needle)
}

func sortCandidates(cs []*domain.Candidate, field SortField, desc bool) {
	less := func(a, b *domain.Candidate) bool {
		switch field {
		case SortByScore:
			if a.FinalScore != b.FinalScore {
				return a.FinalScore < b.FinalScore
			}
			return a.Name < b.Name
		case SortByName:
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	}
	sort.SliceStable(cs, func(i, j int) bool {
		if desc {
			return less(cs[j], cs[i])
		}
		return less(cs[i], cs[j])
	})
}
