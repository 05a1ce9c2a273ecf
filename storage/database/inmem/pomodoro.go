package inmemdb

import (
	"context"
	"sort"

	"github.com/mkabeya/grove/core/pomodoro"
)

type sessionRepository struct {
	tbl *sessionTable
}

var _ pomodoro.Repository = (*sessionRepository)(nil)

func NewSessionRepository(db *DB) *sessionRepository {
	return &sessionRepository{tbl: db.session}
}

func (r *sessionRepository) LogSession(ctx context.Context, s pomodoro.Session) (pomodoro.Session, error) {
	r.tbl.mutex.Lock()
	defer r.tbl.mutex.Unlock()

	r.tbl.pkCount++
	s.ID = r.tbl.pkCount
	r.tbl.t[s.ID] = &s
	return s, nil
}

func (r *sessionRepository) GetHistory(ctx context.Context, userID string) ([]pomodoro.Session, error) {
	r.tbl.mutex.RLock()
	defer r.tbl.mutex.RUnlock()

	res := make([]pomodoro.Session, 0)
	for _, s := range r.tbl.t {
		if s.UserID == userID {
			res = append(res, *s)
		}
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].CompletedAt.Equal(res[j].CompletedAt) {
			return res[i].ID > res[j].ID
		}
		return res[i].CompletedAt.After(res[j].CompletedAt)
	})
	return res, nil
}
