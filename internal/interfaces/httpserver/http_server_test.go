package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"hr-assistant-api/internal/config"
	"hr-assistant-api/internal/domain"
	"hr-assistant-api/internal/domain/dialog"
	"hr-assistant-api/internal/domain/user"
	"hr-assistant-api/internal/infrastructure/auth"
	"hr-assistant-api/internal/interfaces/httpserver/handlers/authhandler"
	"hr-assistant-api/internal/interfaces/httpserver/handlers/dialoghandler"
	"hr-assistant-api/internal/interfaces/httpserver/handlers/prompthandler"
	authroute "hr-assistant-api/internal/interfaces/httpserver/routes/auth"
	dialogroute "hr-assistant-api/internal/interfaces/httpserver/routes/dialog"
	promptroute "hr-assistant-api/internal/interfaces/httpserver/routes/prompt"
	"hr-assistant-api/internal/interfaces/httpserver/responses"
	"hr-assistant-api/internal/utils/platformerrors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	handler   http.Handler
	dialogs   *memoryDialogs
	completer *fakeCompleter
	tokens    *auth.JWTIssuer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	cfg := &config.Config{
		ServiceName:     "hr-assistant-api",
		Environment:     "test",
		MaxAnswerLength: 2000,
		JWTTTL:          300 * time.Minute,
	}
	catalog, err := config.LoadPromptCatalog("")
	require.NoError(t, err)
	log := zerolog.Nop()

	users := &memoryUsers{byID: map[string]user.User{}}
	dialogs := &memoryDialogs{byID: map[string]dialog.Session{}}
	prompts := &memoryPrompts{}
	completer := &fakeCompleter{}
	tokens := auth.NewJWTIssuer("test-secret", cfg.JWTTTL)

	userService := user.NewService(users, auth.NewBcryptHasher(bcrypt.MinCost), tokens, log)
	dialogService := domain.ProvideDialogService(cfg, dialogs, completer, domain.ProvideDialogPrompts(catalog), log)
	promptService := domain.ProvidePromptService(catalog, prompts, log)
	require.NoError(t, promptService.Seed(context.Background()))

	server := newHTTPServer(cfg, log, stubReadiness{}, userService,
		authroute.NewAuthRoute(authhandler.NewAuthHandler(userService)),
		dialogroute.NewDialogRoute(dialoghandler.NewDialogHandler(dialogService)),
		promptroute.NewPromptRoute(prompthandler.NewPromptHandler(promptService)),
	)
	return &testEnv{handler: server.Handler(), dialogs: dialogs, completer: completer, tokens: tokens}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.handler.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func (e *testEnv) login(t *testing.T, username, password string) string {
	t.Helper()
	w := e.do(t, http.MethodPost, "/register", "", map[string]string{"name": username, "username": username, "password": password})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = e.do(t, http.MethodPost, "/login", "", map[string]string{"username": username, "password": password})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decode[responses.LoginResponse](t, w).Token
}

func TestServer_Hello(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"msg":"Hello"}`, w.Body.String())
}

func TestServer_RegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/register", "", map[string]string{"name": "Alice", "username": "alice", "password": "secret1"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Register successfully", decode[responses.MessageResponse](t, w).Msg)

	w = env.do(t, http.MethodPost, "/register", "", map[string]string{"name": "Alice", "username": "alice", "password": "secret2"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "username already in use", decode[responses.ErrorResponse](t, w).Message)

	w = env.do(t, http.MethodPost, "/register", "", map[string]string{"name": "Bob", "username": "bob", "password": "12345"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPost, "/login", "", map[string]string{"username": "alice", "password": "secret1"})
	require.Equal(t, http.StatusOK, w.Code)
	login := decode[responses.LoginResponse](t, w)
	assert.NotEmpty(t, login.Token)
	assert.Equal(t, "alice", login.User.Username)
	assert.NotContains(t, w.Body.String(), "password")

	w = env.do(t, http.MethodPost, "/login", "", map[string]string{"username": "alice", "password": "wrong-pass"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, http.MethodPost, "/login", "", map[string]string{"username": "alice"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodGet, "/user-by-id", login.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, login.User.ID, decode[responses.UserResponse](t, w).User.ID)
}

func TestServer_ProtectedRoutesRequireToken(t *testing.T) {
	env := newTestEnv(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/user-by-id"},
		{http.MethodPost, "/chat"},
		{http.MethodPut, "/chat"},
		{http.MethodGet, "/dialog?dialog_id=x"},
		{http.MethodGet, "/dialogs"},
		{http.MethodDelete, "/dialogs-delete"},
		{http.MethodGet, "/prompts"},
	} {
		w := env.do(t, tc.method, tc.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, tc.path)
	}

	w := env.do(t, http.MethodGet, "/dialogs", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Valid signature, but the user does not exist.
	ghost, err := env.tokens.Issue("user-404")
	require.NoError(t, err)
	w = env.do(t, http.MethodGet, "/dialogs", ghost, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestServer_DialogLifecycle(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "alice", "secret1")

	w := env.do(t, http.MethodGet, "/dialogs", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"dialogs":[]}`, w.Body.String())

	w = env.do(t, http.MethodPost, "/chat", token, map[string]any{"question": "How many vacation days do I have?", "answer_length": 100})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	started := decode[responses.DialogResponse](t, w).Dialog
	assert.Equal(t, "Vacation days", started.Title)
	assert.Equal(t, "#333", started.ChatColor)
	require.Len(t, started.Chat, 4)
	assert.Equal(t, "system", started.Chat[0].Role)
	assert.Equal(t, "How can I help you today?", started.Chat[1].Content)
	assert.Equal(t, "How many vacation days do I have?", started.Chat[2].Content)
	assert.Equal(t, "Answer to: How many vacation days do I have?", started.Chat[3].Content)

	w = env.do(t, http.MethodPut, "/chat", token, map[string]any{"question": "And sick days?", "dialog": started.ID, "answer_length": 50})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	continued := decode[responses.DialogResponse](t, w).Dialog
	require.Len(t, continued.Chat, 6)
	assert.Equal(t, "Answer to: And sick days?", continued.Chat[5].Content)
	assert.False(t, continued.LastMsg.Before(started.LastMsg))

	w = env.do(t, http.MethodGet, "/dialog?dialog_id="+started.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[responses.DialogResponse](t, w).Dialog.Chat, 6)

	w = env.do(t, http.MethodGet, "/dialogs", token, nil)
	list := decode[responses.DialogListResponse](t, w).Dialogs
	require.Len(t, list, 1)
	assert.Equal(t, started.ID, list[0].ID)
	assert.Equal(t, "Vacation days", list[0].Title)

	w = env.do(t, http.MethodDelete, "/dialogs-delete", token, map[string]any{"dialogs_ids": []string{started.ID}})
	require.Equal(t, http.StatusOK, w.Code)
	deleted := decode[responses.DeleteDialogsResponse](t, w)
	assert.Equal(t, "Deleted successfully", deleted.Msg)
	assert.Equal(t, int64(1), deleted.Deleted)

	w = env.do(t, http.MethodGet, "/dialog?dialog_id="+started.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServer_DialogValidation(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "alice", "secret1")

	cases := []struct {
		name   string
		method string
		path   string
		body   any
	}{
		{"empty question", http.MethodPost, "/chat", map[string]any{"question": "  ", "answer_length": 10}},
		{"zero answer length", http.MethodPost, "/chat", map[string]any{"question": "hi", "answer_length": 0}},
		{"answer length above max", http.MethodPost, "/chat", map[string]any{"question": "hi", "answer_length": 2001}},
		{"answer length not a number", http.MethodPost, "/chat", map[string]any{"question": "hi", "answer_length": "ten"}},
		{"continue without dialog", http.MethodPut, "/chat", map[string]any{"question": "hi", "answer_length": 10}},
		{"missing dialog_id", http.MethodGet, "/dialog", nil},
		{"delete without ids", http.MethodDelete, "/dialogs-delete", map[string]any{"dialogs_ids": []string{}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := env.do(t, tc.method, tc.path, token, tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		})
	}
	assert.Empty(t, env.dialogs.byID)
}

func TestServer_CompletionFailures(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "alice", "secret1")

	env.completer.subjectFn = func(ctx context.Context, instruction, question string) (string, error) {
		return "  ", nil
	}
	w := env.do(t, http.MethodPost, "/chat", token, map[string]any{"question": "hi", "answer_length": 10})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "could not generate a title", decode[responses.ErrorResponse](t, w).Message)

	env.completer.subjectFn = nil
	env.completer.completeFn = func(ctx context.Context, messages []dialog.CompletionMessage, maxTokens int) (string, error) {
		return "", platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal, "completion API returned status 503", errors.New("unavailable"), "test")
	}
	w = env.do(t, http.MethodPost, "/chat", token, map[string]any{"question": "hi", "answer_length": 10})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, env.dialogs.byID)
}

func TestServer_DialogsAreOwnerScoped(t *testing.T) {
	env := newTestEnv(t)
	alice := env.login(t, "alice", "secret1")
	bob := env.login(t, "bob", "secret2")

	w := env.do(t, http.MethodPost, "/chat", alice, map[string]any{"question": "Parental leave?", "answer_length": 10})
	require.Equal(t, http.StatusOK, w.Code)
	dialogID := decode[responses.DialogResponse](t, w).Dialog.ID

	w = env.do(t, http.MethodGet, "/dialog?dialog_id="+dialogID, bob, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodPut, "/chat", bob, map[string]any{"question": "hi", "dialog": dialogID, "answer_length": 10})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodDelete, "/dialogs-delete", bob, map[string]any{"dialogs_ids": []string{dialogID}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(0), decode[responses.DeleteDialogsResponse](t, w).Deleted)

	w = env.do(t, http.MethodGet, "/dialogs", bob, nil)
	assert.JSONEq(t, `{"dialogs":[]}`, w.Body.String())
}

func TestServer_Prompts(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "alice", "secret1")

	w := env.do(t, http.MethodGet, "/prompts", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	prompts := decode[responses.PromptListResponse](t, w).Prompts
	require.NotEmpty(t, prompts)
	assert.Equal(t, "hr_assistant", prompts[0].Key)
}

func TestServer_Readiness(t *testing.T) {
	cfg := &config.Config{ServiceName: "hr-assistant-api", MaxAnswerLength: 10}
	build := func(ready ReadinessChecker) http.Handler {
		return newHTTPServer(cfg, zerolog.Nop(), ready, nil,
			authroute.NewAuthRoute(nil), dialogroute.NewDialogRoute(nil), promptroute.NewPromptRoute(nil)).Handler()
	}

	w := httptest.NewRecorder()
	build(stubReadiness{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	build(stubReadiness{err: errors.New("no primary")}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = httptest.NewRecorder()
	build(nil).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
