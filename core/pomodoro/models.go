package pomodoro

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Session is a single logged Pomodoro interval. Sessions are append-only:
// written once when a timer elapses or is abandoned, never updated or deleted.
type Session struct {
	ID          int       `json:"id"`
	UserID      string    `json:"userId"`
	Duration    int       `json:"duration"` // minutes
	Completed   bool      `json:"completed"`
	CompletedAt time.Time `json:"completedAt"` // UTC
}

// LogSession is a request to record a finished or abandoned interval.
// An absent `completed` key counts as an abandoned (partial) session.
type LogSession struct {
	Duration  int  `json:"duration" validate:"required,gt=0"`
	Completed bool `json:"completed"`
}

func (ls *LogSession) Validate(validate *validator.Validate) error {
	return validate.Struct(ls)
}
