package sqlxrepos

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/mkabeya/grove/core/quiz"
)

// quizRow is the persistence shape of a quiz; questions live in a single jsonb
// column since the pairs have no lifecycle of their own.
type quizRow struct {
	ID          int       `db:"id"`
	UserID      string    `db:"user_id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Questions   []byte    `db:"questions"`
	HighScore   int       `db:"high_score"`
	CreatedAt   time.Time `db:"created_at"`
}

func (r quizRow) toQuiz() (quiz.Quiz, error) {
	var questions []quiz.QA
	if err := json.Unmarshal(r.Questions, &questions); err != nil {
		return quiz.Quiz{}, errors.Wrap(err, "decoding quiz questions")
	}
	return quiz.Quiz{
		ID:          r.ID,
		UserID:      r.UserID,
		Title:       r.Title,
		Description: r.Description,
		Questions:   questions,
		HighScore:   r.HighScore,
		CreatedAt:   r.CreatedAt,
	}, nil
}

type quizRepository struct {
	db *sqlx.DB
}

var _ quiz.Repository = (*quizRepository)(nil) // interface compliance check

func NewQuizRepository(db *sqlx.DB) *quizRepository {
	return &quizRepository{db: db}
}

func (repo quizRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return quiz.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo quizRepository) GetQuizzes(ctx context.Context, userID string) ([]quiz.Quiz, error) {
	var rows []quizRow
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT id, user_id, title, description, questions, high_score, created_at
		 FROM quizzes WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, errors.Wrap(err, "selecting quizzes")
	}

	quizzes := make([]quiz.Quiz, 0, len(rows))
	for _, r := range rows {
		q, err := r.toQuiz()
		if err != nil {
			return nil, err
		}
		quizzes = append(quizzes, q)
	}
	return quizzes, nil
}

func (repo quizRepository) GetQuiz(ctx context.Context, id int) (quiz.Quiz, error) {
	var r quizRow
	err := repo.db.GetContext(ctx, &r,
		`SELECT id, user_id, title, description, questions, high_score, created_at
		 FROM quizzes WHERE id = $1`, id)
	if err != nil {
		return quiz.Quiz{}, repo.trapNoRowsErr(err, "selecting quiz")
	}
	return r.toQuiz()
}

func (repo quizRepository) CreateQuiz(ctx context.Context, q quiz.Quiz) (quiz.Quiz, error) {
	questions, err := json.Marshal(q.Questions)
	if err != nil {
		return quiz.Quiz{}, errors.Wrap(err, "encoding quiz questions")
	}

	var r quizRow
	err = repo.db.GetContext(ctx, &r,
		`INSERT INTO quizzes (user_id, title, description, questions, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, user_id, title, description, questions, high_score, created_at`,
		q.UserID, q.Title, q.Description, questions, q.CreatedAt)
	if err != nil {
		return quiz.Quiz{}, errors.Wrap(err, "inserting quiz")
	}
	return r.toQuiz()
}

func (repo quizRepository) DeleteQuiz(ctx context.Context, id int) error {
	if _, err := repo.db.ExecContext(ctx, `DELETE FROM quizzes WHERE id = $1`, id); err != nil {
		return errors.Wrap(err, "deleting quiz")
	}
	return nil
}
