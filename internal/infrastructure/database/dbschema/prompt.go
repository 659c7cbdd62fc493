package dbschema

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"hr-assistant-api/internal/domain/prompt"
)

// Prompt is a stored catalogue entry.
type Prompt struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Key       string        `bson:"key"`
	Title     string        `bson:"title"`
	Content   string        `bson:"content"`
	CreatedAt time.Time     `bson:"created_at"`
}

func NewSchemaPrompt(p prompt.Prompt) *Prompt {
	return &Prompt{
		Key:       p.Key,
		Title:     p.Title,
		Content:   p.Content,
		CreatedAt: p.CreatedAt,
	}
}

func (p *Prompt) EtoD() prompt.Prompt {
	return prompt.Prompt{
		ID:        p.ID.Hex(),
		Key:       p.Key,
		Title:     p.Title,
		Content:   p.Content,
		CreatedAt: p.CreatedAt.UTC(),
	}
}
