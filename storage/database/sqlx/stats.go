package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/mkabeya/grove/core/stats"
)

type statsRow struct {
	ID                int          `db:"id"`
	UserID            string       `db:"user_id"`
	Level             int          `db:"level"`
	Experience        int          `db:"experience"`
	TotalStudyMinutes int          `db:"total_study_minutes"`
	CurrentStreak     int          `db:"current_streak"`
	LastStudyDate     sql.NullTime `db:"last_study_date"`
	TreeStage         string       `db:"tree_stage"`
}

func (r statsRow) toStats() stats.Stats {
	s := stats.Stats{
		ID:                r.ID,
		UserID:            r.UserID,
		Level:             r.Level,
		Experience:        r.Experience,
		TotalStudyMinutes: r.TotalStudyMinutes,
		CurrentStreak:     r.CurrentStreak,
		TreeStage:         r.TreeStage,
	}
	if r.LastStudyDate.Valid {
		s.LastStudyDate = r.LastStudyDate.Time
	}
	return s
}

type statsRepository struct {
	db *sqlx.DB
}

var _ stats.Repository = (*statsRepository)(nil) // interface compliance check

func NewStatsRepository(db *sqlx.DB) *statsRepository {
	return &statsRepository{db: db}
}

func (repo statsRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return stats.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo statsRepository) GetStats(ctx context.Context, userID string) (stats.Stats, error) {
	var r statsRow
	err := repo.db.GetContext(ctx, &r,
		`SELECT id, user_id, level, experience, total_study_minutes, current_streak, last_study_date, tree_stage
		 FROM user_stats WHERE user_id = $1`, userID)
	if err != nil {
		return stats.Stats{}, repo.trapNoRowsErr(err, "selecting stats")
	}
	return r.toStats(), nil
}

func (repo statsRepository) EnsureStats(ctx context.Context, userID string) (stats.Stats, error) {
	s, err := repo.GetStats(ctx, userID)
	if err == nil {
		return s, nil
	}
	if errors.Cause(err) != stats.ErrNotFound {
		return stats.Stats{}, err
	}

	// ON CONFLICT guards the race of two first-time requests for the same user.
	var r statsRow
	err = repo.db.GetContext(ctx, &r,
		`INSERT INTO user_stats (user_id) VALUES ($1)
		 ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		 RETURNING id, user_id, level, experience, total_study_minutes, current_streak, last_study_date, tree_stage`,
		userID)
	if err != nil {
		return stats.Stats{}, errors.Wrap(err, "inserting stats")
	}
	return r.toStats(), nil
}

func (repo statsRepository) UpdateStats(ctx context.Context, userID string, s stats.Stats) (stats.Stats, error) {
	if _, err := repo.EnsureStats(ctx, userID); err != nil {
		return stats.Stats{}, err
	}

	var r statsRow
	err := repo.db.GetContext(ctx, &r,
		`UPDATE user_stats SET
		   level = $2,
		   experience = $3,
		   total_study_minutes = $4,
		   tree_stage = $5,
		   last_study_date = $6
		 WHERE user_id = $1
		 RETURNING id, user_id, level, experience, total_study_minutes, current_streak, last_study_date, tree_stage`,
		userID, s.Level, s.Experience, s.TotalStudyMinutes, s.TreeStage, s.LastStudyDate)
	if err != nil {
		return stats.Stats{}, repo.trapNoRowsErr(err, "updating stats")
	}
	return r.toStats(), nil
}
