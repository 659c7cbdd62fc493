package dialog

import (
	"context"
	"time"
)

// Summary is the list-view projection of a dialog.
type Summary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	LastMsg   time.Time `json:"last_msg"`
	ChatColor string    `json:"chat_color"`
}

// Repository persists dialogs. Every read, update and delete is scoped by owner.
type Repository interface {
	// Insert stores a new dialog and returns its id.
	Insert(ctx context.Context, record Session) (string, error)
	// FindByID returns the dialog with id owned by ownerID, or a NOT_FOUND error.
	FindByID(ctx context.Context, id, ownerID string) (*Session, error)
	// UpdateChat replaces the chat history when the stored version still equals expectedVersion.
	// A mismatch is reported as a CONFLICT error.
	UpdateChat(ctx context.Context, id, ownerID string, chat []Message, lastMsg time.Time, expectedVersion int64) error
	// DeleteMany removes the dialogs among ids that belong to ownerID.
	DeleteMany(ctx context.Context, ids []string, ownerID string) (int64, error)
	// ListByOwner returns the owner's dialogs sorted by creation time, oldest first.
	ListByOwner(ctx context.Context, ownerID string) ([]Summary, error)
}

// Completer generates assistant replies.
type Completer interface {
	// Complete returns the next assistant reply for the given history.
	Complete(ctx context.Context, messages []CompletionMessage, maxTokens int) (string, error)
	// Subject returns a short label for question following instruction.
	Subject(ctx context.Context, instruction, question string) (string, error)
}
