package domain

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hr-assistant-api/internal/config"
	"hr-assistant-api/internal/domain/prompt"
)

type stubPromptRepository struct {
	stored []prompt.Prompt
}

func (s *stubPromptRepository) List(ctx context.Context) ([]prompt.Prompt, error) {
	return s.stored, nil
}

func (s *stubPromptRepository) SeedIfEmpty(ctx context.Context, prompts []prompt.Prompt) (int, error) {
	s.stored = prompts
	return len(prompts), nil
}

func TestProvideDialogPrompts(t *testing.T) {
	catalog, err := config.LoadPromptCatalog("")
	require.NoError(t, err)

	prompts := ProvideDialogPrompts(catalog)
	assert.Equal(t, catalog.System.Content, prompts.System)
	assert.Equal(t, "How can I help you today?", prompts.Greeting)
	assert.NotEmpty(t, prompts.Subject)
}

func TestProvidePromptService_SeedsWholeCatalog(t *testing.T) {
	catalog, err := config.LoadPromptCatalog("")
	require.NoError(t, err)
	repo := &stubPromptRepository{}

	svc := ProvidePromptService(catalog, repo, zerolog.Nop())
	require.NoError(t, svc.Seed(context.Background()))

	listed, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, listed, len(catalog.All()))
	assert.Equal(t, "hr_assistant", listed[0].Key)
	assert.Equal(t, "dialog_subject", listed[1].Key)
}
