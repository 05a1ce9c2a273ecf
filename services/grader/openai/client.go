// Package openaigrader grades flashcard answers by delegating to an
// OpenAI-compatible chat-completions endpoint. No grading logic lives locally;
// the service supplies the prompt and parses the JSON-shaped reply.
package openaigrader

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/avast/retry-go"
	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"

	"github.com/mkabeya/grove/core"
	"github.com/mkabeya/grove/core/quiz"
)

const systemPrompt = "You are a teacher grading a student's answer. " +
	"Compare the user's answer to the correct answer. " +
	"Be lenient with phrasing but strict with facts. " +
	"Return a JSON object with 'correct' (boolean) and 'feedback' (string)."

type (
	chatCompletionRequest struct {
		Model          string          `json:"model"`
		Messages       []message       `json:"messages"`
		Temperature    float64         `json:"temperature,omitempty"`
		ResponseFormat *responseFormat `json:"response_format,omitempty"`
	}

	message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}

	responseFormat struct {
		Type string `json:"type"`
	}

	chatCompletionResponse struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
		Error *struct {
			Message string `json:"message"`
		} `json:"error,omitempty"`
	}

	// gradePayload is the JSON object the model is instructed to return.
	gradePayload struct {
		Correct  bool   `json:"correct"`
		Feedback string `json:"feedback"`
	}

	Client struct {
		httpClient  *resty.Client
		model       string
		temperature float64
		maxRetries  uint
	}
)

var _ quiz.Grader = (*Client)(nil)

func NewClient(conf core.GraderConfig) *Client {
	httpClient := resty.New().
		SetHostURL(conf.BaseURL).
		SetAuthToken(conf.APIKey).
		SetHeader("Content-Type", "application/json").
		SetTimeout(conf.Timeout)

	return &Client{
		httpClient:  httpClient,
		model:       conf.Model,
		temperature: conf.Temperature,
		maxRetries:  conf.MaxRetries,
	}
}

// Check grades userAnswer against correctAnswer. Transient upstream failures
// (429, 5xx) are retried a few times within the client timeout; anything that
// still fails, including a malformed or non-JSON reply, surfaces as an error
// for the API layer to map to a 500.
func (c *Client) Check(ctx context.Context, question, userAnswer, correctAnswer string) (quiz.GradeResult, error) {
	var result quiz.GradeResult
	err := retry.Do(
		func() error {
			res, err := c.check(ctx, question, userAnswer, correctAnswer)
			if err != nil {
				if !isRetryable(err) {
					return retry.Unrecoverable(err)
				}
				return err
			}
			result = res
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(c.maxRetries+1),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return quiz.GradeResult{}, err
	}
	return result, nil
}

func (c *Client) check(ctx context.Context, question, userAnswer, correctAnswer string) (quiz.GradeResult, error) {
	reqBody := chatCompletionRequest{
		Model: c.model,
		Messages: []message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: fmt.Sprintf(
				"Question: %s\nCorrect Answer: %s\nUser Answer: %s",
				question, correctAnswer, userAnswer,
			)},
		},
		Temperature:    c.temperature,
		ResponseFormat: &responseFormat{Type: "json_object"},
	}

	var resBody chatCompletionResponse
	res, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(reqBody).
		SetResult(&resBody).
		Post("/chat/completions")
	if err != nil {
		return quiz.GradeResult{}, errors.Wrap(err, "calling grading service")
	}
	if res.IsError() {
		return quiz.GradeResult{}, &upstreamError{status: res.StatusCode(), body: res.String()}
	}
	if len(resBody.Choices) == 0 {
		return quiz.GradeResult{}, errors.New("grading service returned no choices")
	}

	var payload gradePayload
	if err := json.Unmarshal([]byte(resBody.Choices[0].Message.Content), &payload); err != nil {
		return quiz.GradeResult{}, errors.Wrap(err, "decoding grading payload")
	}

	feedback := payload.Feedback
	if feedback == "" {
		feedback = "No feedback provided."
	}
	return quiz.GradeResult{Correct: payload.Correct, Feedback: feedback}, nil
}

type upstreamError struct {
	status int
	body   string
}

func (e *upstreamError) Error() string {
	return fmt.Sprintf("grading service responded %d: %s", e.status, e.body)
}

func isRetryable(err error) bool {
	if uerr, ok := err.(*upstreamError); ok {
		return uerr.status == 429 || uerr.status >= 500
	}
	return false
}
