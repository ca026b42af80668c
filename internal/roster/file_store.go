package roster

import (
	"context"
	"errors"
	"fmt"

	"github.com/crucible-hq/crucible/internal/domain"
	"github.com/crucible-hq/crucible/internal/storage/local"
)

const candidateCollection = "candidates"

// FileStore persists candidates as JSON files.
type FileStore struct {
	store *local.Store
}

// NewFileStore creates a candidate store backed by a local JSON store.
func NewFileStore(store *local.Store) *FileStore {
	return &FileStore{store: store}
}

// Save persists a candidate.
func (s *FileStore) Save(_ context.Context, c *domain.Candidate) error {
	if err := s.store.Save(candidateCollection, c.ID, c); err != nil {
		return fmt.Errorf("save candidate: %w", err)
	}
	return nil
}

// Get retrieves a candidate by ID.
func (s *FileStore) Get(_ context.Context, id string) (*domain.Candidate, error) {
	var c domain.Candidate
	if err := s.store.Load(candidateCollection, id, &c); err != nil {
		if errors.Is(err, local.ErrNotFound) {
			return nil, domain.ErrCandidateNotFound
		}
		return nil, fmt.Errorf("load candidate: %w", err)
	}
	return &c, nil
}

// List returns all candidates. Records that fail to decode are skipped.
func (s *FileStore) List(_ context.Context) ([]*domain.Candidate, error) {
	ids, err := s.store.List(candidateCollection)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}

	var out []*domain.Candidate
	for _, id := range ids {
		var c domain.Candidate
		if err := s.store.Load(candidateCollection, id, &c); err != nil {
			continue
		}
		out = append(out, &c)
	}
	return out, nil
}

// Delete removes a candidate by ID.
func (s *FileStore) Delete(_ context.Context, id string) error {
	if err := s.store.Delete(candidateCollection, id); err != nil {
		if errors.Is(err, local.ErrNotFound) {
			return domain.ErrCandidateNotFound
		}
		return fmt.Errorf("delete candidate: %w", err)
	}
	return nil
}
