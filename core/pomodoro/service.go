package pomodoro

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/mkabeya/grove/core/stats"
)

type (
	Repository interface {
		LogSession(ctx context.Context, s Session) (Session, error)
		// GetHistory returns all of the user's sessions, most recent first.
		GetHistory(ctx context.Context, userID string) ([]Session, error)
	}

	Service struct {
		repo      Repository
		statsRepo stats.Repository
	}
)

func NewService(repo Repository, statsRepo stats.Repository) *Service {
	return &Service{repo: repo, statsRepo: statsRepo}
}

// Log records the session and applies the progression to the user's stats row.
// The two writes are separate statements, not one transaction: a stats failure
// after the session insert leaves the session recorded without its XP award.
// Under concurrent submissions for the same user, last write wins on the stats
// row.
func (svc *Service) Log(ctx context.Context, userID string, ls LogSession) (Session, stats.Stats, error) {
	now := time.Now().UTC()

	session, err := svc.repo.LogSession(ctx, Session{
		UserID:      userID,
		Duration:    ls.Duration,
		Completed:   ls.Completed,
		CompletedAt: now,
	})
	if err != nil {
		return Session{}, stats.Stats{}, errors.Wrap(err, "logging session")
	}

	current, err := svc.statsRepo.EnsureStats(ctx, userID)
	if err != nil {
		return Session{}, stats.Stats{}, errors.Wrap(err, "ensuring stats")
	}

	updated, err := svc.statsRepo.UpdateStats(ctx, userID, stats.Progress(current, ls.Duration, ls.Completed, now))
	if err != nil {
		return Session{}, stats.Stats{}, errors.Wrap(err, "updating stats")
	}

	return session, updated, nil
}

func (svc *Service) History(ctx context.Context, userID string) ([]Session, error) {
	return svc.repo.GetHistory(ctx, userID)
}
