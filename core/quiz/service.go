package quiz

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("quiz not found")

type (
	Repository interface {
		// GetQuizzes returns all quizzes owned by userID, most recently created first.
		GetQuizzes(ctx context.Context, userID string) ([]Quiz, error)
		GetQuiz(ctx context.Context, id int) (Quiz, error)
		CreateQuiz(ctx context.Context, q Quiz) (Quiz, error)
		DeleteQuiz(ctx context.Context, id int) error
	}

	// GradeResult is the outcome of grading a single answer.
	GradeResult struct {
		Correct  bool   `json:"correct"`
		Feedback string `json:"feedback"`
	}

	// Grader grades a user's free-text answer against the expected answer.
	// Implementations delegate to an external text-generation service; tests
	// substitute a canned one.
	Grader interface {
		Check(ctx context.Context, question, userAnswer, correctAnswer string) (GradeResult, error)
	}

	Service struct {
		repo   Repository
		grader Grader
	}
)

func NewService(repo Repository, grader Grader) *Service {
	return &Service{repo: repo, grader: grader}
}

func (svc *Service) Query(ctx context.Context, userID string) ([]Quiz, error) {
	return svc.repo.GetQuizzes(ctx, userID)
}

func (svc *Service) GetByID(ctx context.Context, id int) (Quiz, error) {
	return svc.repo.GetQuiz(ctx, id)
}

func (svc *Service) Create(ctx context.Context, userID string, nq NewQuiz) (Quiz, error) {
	q := Quiz{
		UserID:      userID,
		Title:       nq.Title,
		Description: nq.Description,
		Questions:   nq.Questions,
		CreatedAt:   time.Now().UTC(),
	}
	return svc.repo.CreateQuiz(ctx, q)
}

func (svc *Service) Delete(ctx context.Context, id int) error {
	return svc.repo.DeleteQuiz(ctx, id)
}

// CheckAnswer grades the user's answer via the configured Grader. Grading is
// fully delegated; no local comparison happens here.
func (svc *Service) CheckAnswer(ctx context.Context, ca CheckAnswer) (GradeResult, error) {
	return svc.grader.Check(ctx, ca.Question, ca.UserAnswer, ca.CorrectAnswer)
}
