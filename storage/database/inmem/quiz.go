package inmemdb

import (
	"context"
	"sort"

	"github.com/mkabeya/grove/core/quiz"
)

type quizRepository struct {
	tbl *quizTable
}

var _ quiz.Repository = (*quizRepository)(nil)

func NewQuizRepository(db *DB) *quizRepository {
	return &quizRepository{tbl: db.quiz}
}

func (r *quizRepository) GetQuizzes(ctx context.Context, userID string) ([]quiz.Quiz, error) {
	r.tbl.mutex.RLock()
	defer r.tbl.mutex.RUnlock()

	res := make([]quiz.Quiz, 0)
	for _, q := range r.tbl.t {
		if q.UserID == userID {
			res = append(res, *q)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].CreatedAt.After(res[j].CreatedAt) })
	return res, nil
}

func (r *quizRepository) GetQuiz(ctx context.Context, id int) (quiz.Quiz, error) {
	r.tbl.mutex.RLock()
	defer r.tbl.mutex.RUnlock()

	if q, ok := r.tbl.t[id]; ok {
		return *q, nil
	}
	return quiz.Quiz{}, quiz.ErrNotFound
}

func (r *quizRepository) CreateQuiz(ctx context.Context, q quiz.Quiz) (quiz.Quiz, error) {
	r.tbl.mutex.Lock()
	defer r.tbl.mutex.Unlock()

	r.tbl.pkCount++
	q.ID = r.tbl.pkCount
	r.tbl.t[q.ID] = &q
	return q, nil
}

func (r *quizRepository) DeleteQuiz(ctx context.Context, id int) error {
	r.tbl.mutex.Lock()
	defer r.tbl.mutex.Unlock()

	delete(r.tbl.t, id)
	return nil
}
