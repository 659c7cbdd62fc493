package dialog

import (
	"context"
	"fmt"
	"iter"
	"strings"
	"time"

	"hr-assistant-api/internal/utils/platformerrors"
)

// DefaultChatColor is the display hint assigned to every new dialog.
const DefaultChatColor = "#333"

// Clock returns the current time. Sessions truncate it to millisecond precision,
// the resolution dates are stored with.
type Clock func() time.Time

// Session is one conversation between a user and the assistant.
// It lives for a single request: loaded or created, mutated, persisted once.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Chat      []Message `json:"chat"`
	CreatedAt time.Time `json:"created_at"`
	LastMsg   time.Time `json:"last_msg"`
	ChatColor string    `json:"chat_color"`
	Version   int64     `json:"version"`

	clock Clock
}

// NewSession starts an empty conversation owned by ownerID.
func NewSession(title, ownerID string, clock Clock) (*Session, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, platformerrors.NewError(context.Background(), platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "dialog title is required", nil, "4f1b0c7e-2d4a-4c61-9a8e-7b3f5d2e1a90")
	}
	if strings.TrimSpace(ownerID) == "" {
		return nil, platformerrors.NewError(context.Background(), platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "dialog owner is required", nil, "a3c9e2d1-7b54-4f08-8c6d-1e2f3a4b5c6d")
	}

	s := &Session{
		UserID:    ownerID,
		Title:     title,
		Chat:      []Message{},
		ChatColor: DefaultChatColor,
		clock:     clock,
	}
	now := s.now()
	s.CreatedAt = now
	s.LastMsg = now
	return s, nil
}

// SetClock replaces the time source, used for sessions rebuilt from storage.
func (s *Session) SetClock(clock Clock) {
	s.clock = clock
}

// Seed appends the system prompt and the assistant greeting every dialog opens with.
func (s *Session) Seed(systemPrompt, greeting string) error {
	if err := s.AppendMessage(RoleSystem, systemPrompt); err != nil {
		return err
	}
	return s.AppendMessage(RoleAssistant, greeting)
}

// AppendMessage adds a message stamped with the current time and moves LastMsg to it.
func (s *Session) AppendMessage(role Role, content string) error {
	if !role.Valid() {
		return platformerrors.NewError(context.Background(), platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, fmt.Sprintf("unknown message role %q", role), nil, "0d6e4b2a-93f1-4c7e-b5a8-2f1d0c9e8b7a")
	}

	createdAt := s.now()
	if createdAt.Before(s.LastMsg) {
		createdAt = s.LastMsg
	}

	s.Chat = append(s.Chat, Message{
		Role:      role,
		Content:   content,
		CreatedAt: createdAt,
	})
	s.LastMsg = createdAt
	return nil
}

// CompletionInput yields the chat history as role/content pairs in order.
// The sequence can be ranged over any number of times.
func (s *Session) CompletionInput() iter.Seq[CompletionMessage] {
	return func(yield func(CompletionMessage) bool) {
		for _, msg := range s.Chat {
			if !yield(CompletionMessage{Role: msg.Role, Content: msg.Content}) {
				return
			}
		}
	}
}

// Record returns a copy of the full entity ready for storage.
func (s *Session) Record() Session {
	record := *s
	record.Chat = make([]Message, len(s.Chat))
	copy(record.Chat, s.Chat)
	record.clock = nil
	return record
}

// LastMessage returns the most recently appended message.
func (s *Session) LastMessage() (Message, bool) {
	if len(s.Chat) == 0 {
		return Message{}, false
	}
	return s.Chat[len(s.Chat)-1], true
}

func (s *Session) now() time.Time {
	clock := s.clock
	if clock == nil {
		clock = time.Now
	}
	return clock().UTC().Truncate(time.Millisecond)
}
