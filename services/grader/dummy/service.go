// Package dummygrader is a scriptable Grader for tests.
package dummygrader

import (
	"context"
	"sync"

	"github.com/mkabeya/grove/core/quiz"
)

type (
	// Call records one grading request.
	Call struct {
		Question      string
		UserAnswer    string
		CorrectAnswer string
	}

	Service struct {
		Result quiz.GradeResult
		Err    error

		mutex sync.Mutex
		calls []Call
	}
)

var _ quiz.Grader = (*Service)(nil)

func NewService() *Service {
	return &Service{Result: quiz.GradeResult{Correct: true, Feedback: "Correct."}}
}

func (svc *Service) Check(ctx context.Context, question, userAnswer, correctAnswer string) (quiz.GradeResult, error) {
	svc.mutex.Lock()
	svc.calls = append(svc.calls, Call{Question: question, UserAnswer: userAnswer, CorrectAnswer: correctAnswer})
	svc.mutex.Unlock()

	if svc.Err != nil {
		return quiz.GradeResult{}, svc.Err
	}
	return svc.Result, nil
}

func (svc *Service) Calls() []Call {
	svc.mutex.Lock()
	defer svc.mutex.Unlock()
	out := make([]Call, len(svc.calls))
	copy(out, svc.calls)
	return out
}
