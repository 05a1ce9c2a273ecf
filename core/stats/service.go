package stats

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("stats not found")

type (
	Repository interface {
		GetStats(ctx context.Context, userID string) (Stats, error)
		// EnsureStats returns the user's Stats row, creating it with the
		// defaults of NewStats if it does not exist yet.
		EnsureStats(ctx context.Context, userID string) (Stats, error)
		// UpdateStats overwrites the progression fields of the user's row and
		// returns the persisted result.
		UpdateStats(ctx context.Context, userID string, s Stats) (Stats, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get returns the user's stats, lazily creating the row on first access.
func (svc *Service) Get(ctx context.Context, userID string) (Stats, error) {
	return svc.repo.EnsureStats(ctx, userID)
}
