// Package prompt exposes the assistant's prompt catalogue.
package prompt

import (
	"context"
	"time"
)

// Prompt is a stored catalogue entry.
type Prompt struct {
	ID        string    `json:"id"`
	Key       string    `json:"key"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Repository persists prompts.
type Repository interface {
	List(ctx context.Context) ([]Prompt, error)
	// SeedIfEmpty stores prompts only when the collection holds none and reports how many were written.
	SeedIfEmpty(ctx context.Context, prompts []Prompt) (int, error)
}
