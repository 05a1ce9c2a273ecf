package inmemdb

import (
	"context"

	"github.com/mkabeya/grove/core/stats"
)

type statsRepository struct {
	tbl *statsTable
}

var _ stats.Repository = (*statsRepository)(nil)

func NewStatsRepository(db *DB) *statsRepository {
	return &statsRepository{tbl: db.stats}
}

func (r *statsRepository) GetStats(ctx context.Context, userID string) (stats.Stats, error) {
	r.tbl.mutex.RLock()
	defer r.tbl.mutex.RUnlock()

	if s, ok := r.tbl.t[userID]; ok {
		return *s, nil
	}
	return stats.Stats{}, stats.ErrNotFound
}

func (r *statsRepository) EnsureStats(ctx context.Context, userID string) (stats.Stats, error) {
	r.tbl.mutex.Lock()
	defer r.tbl.mutex.Unlock()

	if s, ok := r.tbl.t[userID]; ok {
		return *s, nil
	}
	s := stats.NewStats(userID)
	r.tbl.pkCount++
	s.ID = r.tbl.pkCount
	r.tbl.t[userID] = &s
	return s, nil
}

func (r *statsRepository) UpdateStats(ctx context.Context, userID string, up stats.Stats) (stats.Stats, error) {
	if _, err := r.EnsureStats(ctx, userID); err != nil {
		return stats.Stats{}, err
	}

	r.tbl.mutex.Lock()
	defer r.tbl.mutex.Unlock()

	s := r.tbl.t[userID]
	s.Level = up.Level
	s.Experience = up.Experience
	s.TotalStudyMinutes = up.TotalStudyMinutes
	s.TreeStage = up.TreeStage
	s.LastStudyDate = up.LastStudyDate
	// CurrentStreak is deliberately not written here; it only changes if a
	// caller sets it explicitly, which none does today.
	return *s, nil
}
