package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"resty.dev/v3"

	"hr-assistant-api/internal/domain/dialog"
	"hr-assistant-api/internal/infrastructure/observability"
	"hr-assistant-api/internal/utils/platformerrors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *CompletionClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := resty.New().SetTimeout(5 * time.Second)
	t.Cleanup(func() { _ = client.Close() })
	return New(client, Options{
		BaseURL: srv.URL + "/v1/",
		APIKey:  "sk-test",
		Model:   "gpt-3.5-turbo",
	}, zerolog.Nop())
}

func writeCompletion(t *testing.T, w http.ResponseWriter, content string) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Role: "assistant", Content: content}}},
		Usage:   openai.Usage{PromptTokens: 12, CompletionTokens: 5, TotalTokens: 17},
	}))
}

func TestComplete(t *testing.T) {
	var got openai.ChatCompletionRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeCompletion(t, w, "  You have 25 vacation days.\n")
	})

	reply, err := client.Complete(context.Background(), []dialog.CompletionMessage{
		{Role: dialog.RoleSystem, Content: "You are an HR assistant."},
		{Role: dialog.RoleAssistant, Content: "How can I help you today?"},
		{Role: dialog.RoleUser, Content: "How many vacation days do I have?"},
	}, 500)
	require.NoError(t, err)
	assert.Equal(t, "You have 25 vacation days.", reply)

	assert.Equal(t, "gpt-3.5-turbo", got.Model)
	assert.Equal(t, 500, got.MaxTokens)
	assert.Equal(t, 1, got.N)
	assert.Equal(t, float32(1), got.Temperature)
	require.Len(t, got.Messages, 3)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "user", got.Messages[2].Role)
}

func TestSubject(t *testing.T) {
	var got openai.ChatCompletionRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeCompletion(t, w, `"Vacation days"`)
	})

	subject, err := client.Subject(context.Background(), "Summarize the question in a few words.", "How many vacation days do I have?")
	require.NoError(t, err)
	assert.Equal(t, `"Vacation days"`, subject)

	assert.Equal(t, 20, got.MaxTokens)
	assert.InDelta(t, 0.6, got.Temperature, 0.0001)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, got.Messages[0].Role)
	assert.Equal(t, "How many vacation days do I have?", got.Messages[1].Content)
}

func TestComplete_UpstreamErrors(t *testing.T) {
	cases := []struct {
		name     string
		handler  http.HandlerFunc
		contains string
	}{
		{
			name: "provider error body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error":{"message":"Rate limit reached","type":"requests"}}`))
			},
			contains: "status 429: Rate limit reached",
		},
		{
			name: "plain text error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "bad gateway", http.StatusBadGateway)
			},
			contains: "status 502",
		},
		{
			name: "no choices",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"choices":[]}`))
			},
			contains: "no choices",
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`not json`))
			},
			contains: "decode completion response",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, tc.handler)
			_, err := client.Complete(context.Background(), []dialog.CompletionMessage{{Role: dialog.RoleUser, Content: "hi"}}, 10)
			require.Error(t, err)
			assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeExternal))
			assert.Contains(t, err.Error(), tc.contains)
		})
	}
}

func TestComplete_ContextCancelled(t *testing.T) {
	done := make(chan struct{})
	cancelled := make(chan struct{}, 1)
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		// The server only notices a dropped connection once the body is consumed.
		_, _ = io.Copy(io.Discard, r.Body)
		select {
		case <-r.Context().Done():
			cancelled <- struct{}{}
		case <-done:
		}
	})
	// Registered after the server, so it runs before srv.Close.
	t.Cleanup(func() { close(done) })

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := client.Complete(ctx, []dialog.CompletionMessage{{Role: dialog.RoleUser, Content: "hi"}}, 10)
	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeExternal))
	assert.Less(t, time.Since(start), 2*time.Second)

	select {
	case <-cancelled:
	case <-time.After(5 * time.Second):
		t.Fatal("upstream request was not cancelled with the caller's context")
	}
}

func TestSubject_DebugLogIsSanitized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeCompletion(t, w, "Payroll question")
	}))
	t.Cleanup(srv.Close)

	var buf bytes.Buffer
	log := zerolog.New(&buf).Level(zerolog.DebugLevel)
	client := resty.New().SetTimeout(5 * time.Second)
	t.Cleanup(func() { _ = client.Close() })
	c := New(client, Options{
		BaseURL:   srv.URL,
		Model:     "gpt-3.5-turbo",
		Sanitizer: observability.NewSanitizer(observability.PIILevelHashed, "salt"),
	}, log)

	_, err := c.Subject(context.Background(), "Summarize:", "My payslip went to jane@corp.com, why?")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "completion requested")
	assert.Contains(t, buf.String(), "[EMAIL:")
	assert.NotContains(t, buf.String(), "jane@corp.com")
}
