package quiz

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/mkabeya/grove/core"
)

type (
	// QA is a single flashcard: a question and its expected answer. Pairs only
	// exist embedded in a Quiz, in order; they have no lifecycle of their own.
	QA struct {
		Question string `json:"question"`
		Answer   string `json:"answer"`
	}

	// Quiz is an ordered deck of flashcards owned by a single user.
	// HighScore is stored and returned but no endpoint updates it.
	Quiz struct {
		ID          int       `json:"id"`
		UserID      string    `json:"userId"`
		Title       string    `json:"title"`
		Description string    `json:"description,omitempty"`
		Questions   []QA      `json:"questions"`
		HighScore   int       `json:"highScore"`
		CreatedAt   time.Time `json:"createdAt"` // UTC
	}
)

// NewQuiz contains information needed to create a new Quiz.
// Only the presence of the questions list is enforced; blank question or answer
// text within a pair is accepted (the client filters those before submission).
type NewQuiz struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Questions   []QA   `json:"questions" validate:"required,min=1"`
}

func (nq *NewQuiz) Validate(validate *validator.Validate) error {
	nq.Title = core.CleanString(nq.Title)
	return validate.Struct(nq)
}

// CheckAnswer is a request to grade a user's free-text answer to a flashcard.
type CheckAnswer struct {
	Question      string `json:"question" validate:"required"`
	UserAnswer    string `json:"userAnswer" validate:"required"`
	CorrectAnswer string `json:"correctAnswer" validate:"required"`
}

func (ca *CheckAnswer) Validate(validate *validator.Validate) error {
	return validate.Struct(ca)
}
