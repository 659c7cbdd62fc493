package httpserver

import (
	"context"
	"slices"
	"strconv"
	"sync"
	"time"

	"hr-assistant-api/internal/domain/dialog"
	"hr-assistant-api/internal/domain/prompt"
	"hr-assistant-api/internal/domain/user"
	"hr-assistant-api/internal/utils/platformerrors"
)

type memoryUsers struct {
	mu     sync.Mutex
	byID   map[string]user.User
	nextID int
}

func (m *memoryUsers) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, "user not found", nil, "test")
}

func (m *memoryUsers) FindByID(ctx context.Context, id string) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, "user not found", nil, "test")
	}
	return &u, nil
}

func (m *memoryUsers) Insert(ctx context.Context, u user.User) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	u.ID = "user-" + strconv.Itoa(m.nextID)
	m.byID[u.ID] = u
	return u.ID, nil
}

type memoryDialogs struct {
	mu     sync.Mutex
	byID   map[string]dialog.Session
	order  []string
	nextID int
}

func (m *memoryDialogs) Insert(ctx context.Context, record dialog.Session) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	record.ID = "dialog-" + strconv.Itoa(m.nextID)
	m.byID[record.ID] = record
	m.order = append(m.order, record.ID)
	return record.ID, nil
}

func (m *memoryDialogs) FindByID(ctx context.Context, id, ownerID string) (*dialog.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	record, ok := m.byID[id]
	if !ok || record.UserID != ownerID {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, "dialog not found", nil, "test")
	}
	copied := record.Record()
	return &copied, nil
}

func (m *memoryDialogs) UpdateChat(ctx context.Context, id, ownerID string, chat []dialog.Message, lastMsg time.Time, expectedVersion int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	record, ok := m.byID[id]
	if !ok || record.UserID != ownerID {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, "dialog not found", nil, "test")
	}
	if record.Version != expectedVersion {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeConflict, "dialog was modified concurrently", nil, "test")
	}
	record.Chat = slices.Clone(chat)
	record.LastMsg = lastMsg
	record.Version++
	m.byID[id] = record
	return nil
}

func (m *memoryDialogs) DeleteMany(ctx context.Context, ids []string, ownerID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var deleted int64
	for _, id := range ids {
		if record, ok := m.byID[id]; ok && record.UserID == ownerID {
			delete(m.byID, id)
			m.order = slices.DeleteFunc(m.order, func(o string) bool { return o == id })
			deleted++
		}
	}
	return deleted, nil
}

func (m *memoryDialogs) ListByOwner(ctx context.Context, ownerID string) ([]dialog.Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []dialog.Summary
	for _, id := range m.order {
		record := m.byID[id]
		if record.UserID == ownerID {
			out = append(out, dialog.Summary{ID: id, Title: record.Title, LastMsg: record.LastMsg, ChatColor: record.ChatColor})
		}
	}
	return out, nil
}

type memoryPrompts struct {
	stored []prompt.Prompt
}

func (m *memoryPrompts) List(ctx context.Context) ([]prompt.Prompt, error) {
	return m.stored, nil
}

func (m *memoryPrompts) SeedIfEmpty(ctx context.Context, prompts []prompt.Prompt) (int, error) {
	if len(m.stored) > 0 {
		return 0, nil
	}
	m.stored = prompts
	return len(prompts), nil
}

type fakeCompleter struct {
	completeFn func(ctx context.Context, messages []dialog.CompletionMessage, maxTokens int) (string, error)
	subjectFn  func(ctx context.Context, instruction, question string) (string, error)
}

func (f *fakeCompleter) Complete(ctx context.Context, messages []dialog.CompletionMessage, maxTokens int) (string, error) {
	if f.completeFn != nil {
		return f.completeFn(ctx, messages, maxTokens)
	}
	return "Answer to: " + messages[len(messages)-1].Content, nil
}

func (f *fakeCompleter) Subject(ctx context.Context, instruction, question string) (string, error) {
	if f.subjectFn != nil {
		return f.subjectFn(ctx, instruction, question)
	}
	return `"Vacation days"`, nil
}

type stubReadiness struct {
	err error
}

func (s stubReadiness) Ping(ctx context.Context) error {
	return s.err
}
