package sqlxrepos

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/mkabeya/grove/core/pomodoro"
)

type sessionRow struct {
	ID          int       `db:"id"`
	UserID      string    `db:"user_id"`
	Duration    int       `db:"duration"`
	Completed   bool      `db:"completed"`
	CompletedAt time.Time `db:"completed_at"`
}

func (r sessionRow) toSession() pomodoro.Session {
	return pomodoro.Session{
		ID:          r.ID,
		UserID:      r.UserID,
		Duration:    r.Duration,
		Completed:   r.Completed,
		CompletedAt: r.CompletedAt,
	}
}

type sessionRepository struct {
	db *sqlx.DB
}

var _ pomodoro.Repository = (*sessionRepository)(nil) // interface compliance check

func NewSessionRepository(db *sqlx.DB) *sessionRepository {
	return &sessionRepository{db: db}
}

func (repo sessionRepository) LogSession(ctx context.Context, s pomodoro.Session) (pomodoro.Session, error) {
	var r sessionRow
	err := repo.db.GetContext(ctx, &r,
		`INSERT INTO pomodoro_sessions (user_id, duration, completed, completed_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, user_id, duration, completed, completed_at`,
		s.UserID, s.Duration, s.Completed, s.CompletedAt)
	if err != nil {
		return pomodoro.Session{}, errors.Wrap(err, "inserting session")
	}
	return r.toSession(), nil
}

func (repo sessionRepository) GetHistory(ctx context.Context, userID string) ([]pomodoro.Session, error) {
	var rows []sessionRow
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT id, user_id, duration, completed, completed_at
		 FROM pomodoro_sessions WHERE user_id = $1 ORDER BY completed_at DESC`, userID)
	if err != nil {
		return nil, errors.Wrap(err, "selecting sessions")
	}

	sessions := make([]pomodoro.Session, 0, len(rows))
	for _, r := range rows {
		sessions = append(sessions, r.toSession())
	}
	return sessions, nil
}
