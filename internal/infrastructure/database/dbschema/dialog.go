package dbschema

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"hr-assistant-api/internal/domain/dialog"
)

// Message is one chat entry as stored inside a dialog document.
type Message struct {
	Role      string    `bson:"role"`
	Content   string    `bson:"content"`
	CreatedAt time.Time `bson:"created_at"`
}

// Dialog is the stored shape of a conversation.
type Dialog struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	UserID    string        `bson:"user_id"`
	Title     string        `bson:"title"`
	Chat      []Message     `bson:"chat"`
	CreatedAt time.Time     `bson:"created_at"`
	LastMsg   time.Time     `bson:"last_msg"`
	ChatColor string        `bson:"chat_color"`
	Version   int64         `bson:"version"`
}

// DialogSummary is the projection returned by the listing pipeline.
type DialogSummary struct {
	ID        string    `bson:"id"`
	Title     string    `bson:"title"`
	LastMsg   time.Time `bson:"last_msg"`
	ChatColor string    `bson:"chat_color"`
}

// NewSchemaDialog converts a domain session into a document. The id is left
// empty so the server assigns one.
func NewSchemaDialog(s dialog.Session) *Dialog {
	return &Dialog{
		UserID:    s.UserID,
		Title:     s.Title,
		Chat:      NewSchemaMessages(s.Chat),
		CreatedAt: s.CreatedAt,
		LastMsg:   s.LastMsg,
		ChatColor: s.ChatColor,
		Version:   s.Version,
	}
}

// NewSchemaMessages converts domain messages; never returns nil.
func NewSchemaMessages(chat []dialog.Message) []Message {
	out := make([]Message, 0, len(chat))
	for _, m := range chat {
		out = append(out, Message{Role: string(m.Role), Content: m.Content, CreatedAt: m.CreatedAt})
	}
	return out
}

// EtoD converts the document back to a domain session.
func (d *Dialog) EtoD() *dialog.Session {
	if d == nil {
		return nil
	}
	chat := make([]dialog.Message, 0, len(d.Chat))
	for _, m := range d.Chat {
		chat = append(chat, dialog.Message{Role: dialog.Role(m.Role), Content: m.Content, CreatedAt: m.CreatedAt.UTC()})
	}
	return &dialog.Session{
		ID:        d.ID.Hex(),
		UserID:    d.UserID,
		Title:     d.Title,
		Chat:      chat,
		CreatedAt: d.CreatedAt.UTC(),
		LastMsg:   d.LastMsg.UTC(),
		ChatColor: d.ChatColor,
		Version:   d.Version,
	}
}

// EtoD converts the projection to the domain summary.
func (s *DialogSummary) EtoD() dialog.Summary {
	return dialog.Summary{
		ID:        s.ID,
		Title:     s.Title,
		LastMsg:   s.LastMsg.UTC(),
		ChatColor: s.ChatColor,
	}
}
