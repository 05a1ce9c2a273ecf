package tests

import (
	"encoding/json"
	"net/http"
	"reflect"
	"strconv"
	"testing"
	"time"

	"github.com/pkg/errors"

	"github.com/mkabeya/grove/core/quiz"
)

func Test_quizApi_query(t *testing.T) {
	resetDB(t)

	now := time.Now().UTC().Truncate(time.Microsecond)
	qas := []quiz.QA{{Question: "Capital of DRC?", Answer: "Kinshasa"}}
	q1 := createQuiz(t, "user-1", "Geography", qas, now)
	q2 := createQuiz(t, "user-1", "History", []quiz.QA{{Question: "WW2 ended?", Answer: "1945"}}, now.Add(time.Hour))
	createQuiz(t, "user-2", "Chemistry", qas, now)

	tests := []httpTest{
		{name: "Auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "Empty list for a new user", token: getToken(t, "user-3", "three@test.cd"),
			wantCode: http.StatusOK, wantData: marchallList(t),
		},
		{
			name: "Owner's quizzes only, newest first", token: getToken(t, "user-1", "one@test.cd"),
			wantCode: http.StatusOK, wantData: marchallList(t, q2, q1),
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodGet
		tt.path = "/api/quizzes"

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_quizApi_create(t *testing.T) {
	resetDB(t)

	token := getToken(t, "user-1", "one@test.cd")
	qas := []quiz.QA{
		{Question: "Capital of DRC?", Answer: "Kinshasa"},
		{Question: "Longest river in Africa?", Answer: "The Nile"},
	}

	tests := []httpTest{
		{name: "Auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "Title required", token: token, wantCode: http.StatusBadRequest,
			body:     marchallObj(t, quiz.NewQuiz{Questions: qas}),
			wantData: marchallObj(t, httpErr{Message: "this field is required"}),
		},
		{
			name: "Questions required", token: token, wantCode: http.StatusBadRequest,
			body:     marchallObj(t, quiz.NewQuiz{Title: "Geography"}),
			wantData: marchallObj(t, httpErr{Message: "this field is required"}),
		},
		{
			name: "At least one question", token: token, wantCode: http.StatusBadRequest,
			body:     marchallObj(t, quiz.NewQuiz{Title: "Geography", Questions: []quiz.QA{}}),
			wantData: marchallObj(t, httpErr{Message: "questions must contain at least 1 item"}),
		},
		{
			name: "Quiz created", token: token, wantCode: http.StatusCreated,
			body: marchallObj(t, quiz.NewQuiz{Title: "Geography", Description: "Africa focus", Questions: qas}),
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodPost
		tt.path = "/api/quizzes"

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)

			// cannot guess ID & CreatedAt on success.. check the fields instead
			if tt.wantCode == http.StatusCreated {
				if rec.Code != tt.wantCode {
					t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
				}
				var q quiz.Quiz
				if err := json.Unmarshal(rec.Body.Bytes(), &q); err != nil {
					t.Fatalf("json.Unmarshal() failed! err %v", err)
				}
				if q.ID == 0 {
					t.Error("failed! quiz has no ID")
				}
				if q.UserID != "user-1" {
					t.Errorf("failed! UserID = %v; want user-1", q.UserID)
				}
				if !reflect.DeepEqual(q.Questions, qas) {
					t.Errorf("failed! Questions = %v; want %v", q.Questions, qas)
				}
				if q.HighScore != 0 {
					t.Errorf("failed! HighScore = %v; want 0", q.HighScore)
				}
				return
			}
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_quizApi_detail(t *testing.T) {
	resetDB(t)

	now := time.Now().UTC().Truncate(time.Microsecond)
	qas := []quiz.QA{{Question: "Capital of DRC?", Answer: "Kinshasa"}}
	owned := createQuiz(t, "user-1", "Geography", qas, now)
	foreign := createQuiz(t, "user-2", "Chemistry", qas, now)

	token := getToken(t, "user-1", "one@test.cd")
	notFound := marchallObj(t, httpErr{Message: "Quiz not found"})

	tests := []httpTest{
		{name: "Auth required", method: http.MethodGet, path: "/api/quizzes/1", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{name: "Unknown ID", method: http.MethodGet, path: "/api/quizzes/999", token: token, wantCode: http.StatusNotFound, wantData: notFound},
		{name: "Non-numeric ID", method: http.MethodGet, path: "/api/quizzes/lol", token: token, wantCode: http.StatusNotFound, wantData: notFound},
		{
			name: "Someone else's quiz stays hidden", method: http.MethodGet, path: pathForQuiz(foreign.ID),
			token: token, wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden),
		},
		{
			name: "Retrieve", method: http.MethodGet, path: pathForQuiz(owned.ID),
			token: token, wantCode: http.StatusOK, wantData: marchallObj(t, owned),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	// delete, then it is really gone
	req, rec := newAuthRequest(http.MethodDelete, pathForQuiz(owned.ID), token)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("failed! code = %v; wantCode %v", rec.Code, http.StatusNoContent)
	}
	req, rec = newAuthRequest(http.MethodGet, pathForQuiz(owned.ID), token)
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusNotFound, wantData: notFound}, rec)
}

func Test_quizApi_check(t *testing.T) {
	resetDB(t)

	token := getToken(t, "user-1", "one@test.cd")
	payload := quiz.CheckAnswer{
		Question:      "Capital of DRC?",
		UserAnswer:    "kinshasa",
		CorrectAnswer: "Kinshasa",
	}

	tests := []httpTest{
		{name: "Auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "All fields required", token: token, wantCode: http.StatusBadRequest,
			body:     marchallObj(t, quiz.CheckAnswer{Question: "Capital of DRC?"}),
			wantData: marchallObj(t, httpErr{Message: "this field is required"}),
		},
		{
			name: "Answer graded", token: token, wantCode: http.StatusOK,
			body:     marchallObj(t, payload),
			wantData: marchallObj(t, quiz.GradeResult{Correct: true, Feedback: "Correct."}),
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodPost
		tt.path = "/api/quizzes/check"

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	// the grading request reaches the grader untouched
	calls := graderMock.Calls()
	if len(calls) == 0 {
		t.Fatal("failed! grader was never called")
	}
	call := calls[len(calls)-1]
	if call.Question != payload.Question || call.UserAnswer != payload.UserAnswer || call.CorrectAnswer != payload.CorrectAnswer {
		t.Errorf("failed! grader call = %+v; want %+v", call, payload)
	}
}

func Test_quizApi_check_graderDown(t *testing.T) {
	resetDB(t)
	graderMock.Err = errors.New("upstream timeout")

	req, rec := newAuthRequest(http.MethodPost, "/api/quizzes/check", getToken(t, "user-1", "one@test.cd"),
		marchallObj(t, quiz.CheckAnswer{Question: "Q", UserAnswer: "A", CorrectAnswer: "A"}))
	app.ServeHTTP(rec, req)

	tt := httpTest{wantCode: http.StatusInternalServerError, wantData: marchallObj(t, httpErr{Message: "Failed to check answer"})}
	checkCodeAndData(t, tt, rec)
}

func pathForQuiz(id int) string {
	return "/api/quizzes/" + strconv.Itoa(id)
}
