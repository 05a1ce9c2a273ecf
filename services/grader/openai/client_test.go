package openaigrader

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkabeya/grove/core"
	"github.com/mkabeya/grove/core/quiz"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(core.GraderConfig{
		BaseURL:     srv.URL,
		APIKey:      "test-key",
		Model:       "gpt-test",
		Temperature: 0.2,
		Timeout:     2 * time.Second,
		MaxRetries:  1,
	})
}

func completionJSON(t *testing.T, content string) []byte {
	body, err := json.Marshal(map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"role": "assistant", "content": content}},
		},
	})
	require.NoError(t, err)
	return body
}

func TestClient_Check(t *testing.T) {
	tests := []struct {
		name    string
		handler func(t *testing.T, w http.ResponseWriter, r *http.Request)
		want    quiz.GradeResult
		wantErr bool
	}{
		{
			name: "correct answer",
			handler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/chat/completions", r.URL.Path)
				assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

				var req chatCompletionRequest
				require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				assert.Equal(t, "gpt-test", req.Model)
				require.Len(t, req.Messages, 2)
				assert.Equal(t, "system", req.Messages[0].Role)
				assert.Contains(t, req.Messages[1].Content, "Question: What is 2+2?")
				assert.Contains(t, req.Messages[1].Content, "Correct Answer: 4")
				assert.Contains(t, req.Messages[1].Content, "User Answer: four")
				require.NotNil(t, req.ResponseFormat)
				assert.Equal(t, "json_object", req.ResponseFormat.Type)

				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write(completionJSON(t, `{"correct": true, "feedback": "Well done."}`))
			},
			want: quiz.GradeResult{Correct: true, Feedback: "Well done."},
		},
		{
			name: "missing feedback falls back",
			handler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write(completionJSON(t, `{"correct": false}`))
			},
			want: quiz.GradeResult{Correct: false, Feedback: "No feedback provided."},
		},
		{
			name: "non-JSON payload is an error",
			handler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write(completionJSON(t, `the answer looks fine to me`))
			},
			wantErr: true,
		},
		{
			name: "upstream 400 is not retried",
			handler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				http.Error(w, `{"error": {"message": "bad request"}}`, http.StatusBadRequest)
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				tt.handler(t, w, r)
			})

			got, err := client.Check(context.Background(), "What is 2+2?", "four", "4")
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClient_Check_retriesServerErrors(t *testing.T) {
	var calls int
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			http.Error(w, "upstream unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(completionJSON(t, `{"correct": true, "feedback": "Close enough."}`))
	})

	got, err := client.Check(context.Background(), "Capital of France?", "paris", "Paris")
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.True(t, got.Correct)
}

func TestClient_Check_exhaustedRetriesFail(t *testing.T) {
	var calls int
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "upstream unavailable", http.StatusServiceUnavailable)
	})

	_, err := client.Check(context.Background(), "q", "a", "b")
	require.Error(t, err)
	assert.Equal(t, 2, calls) // initial attempt + one retry
}
