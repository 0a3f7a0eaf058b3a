package services

import (
	"context"
	"sync"

	"github.com/vytor/deckflash/internal/progress"
	"github.com/vytor/deckflash/internal/repository"
)

// ProgressStore serializes read-modify-write cycles on the progress record.
// The record is stored wholesale, so concurrent answers would otherwise
// overwrite each other.
type ProgressStore struct {
	mu    sync.Mutex
	repo  repository.ProgressRepository
	limit int
}

func NewProgressStore(repo repository.ProgressRepository, limit int) *ProgressStore {
	if limit <= 0 {
		limit = progress.MaxHistory
	}
	return &ProgressStore{repo: repo, limit: limit}
}

// Limit is the number of answers kept in the history.
func (s *ProgressStore) Limit() int {
	return s.limit
}

// Load returns the stored progress, or an empty record when nothing is stored.
func (s *ProgressStore) Load(ctx context.Context) (*progress.Progress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *ProgressStore) load(ctx context.Context) (*progress.Progress, error) {
	p, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	if p == nil {
		p = progress.New(s.limit)
	}
	return p, nil
}

// Update loads the record, applies fn and saves the result. Nothing is saved
// when fn fails.
func (s *ProgressStore) Update(ctx context.Context, fn func(*progress.Progress) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.load(ctx)
	if err != nil {
		return err
	}
	if err := fn(p); err != nil {
		return err
	}
	return s.repo.Save(ctx, p)
}
