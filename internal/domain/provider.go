package domain

import (
	"github.com/google/wire"
	"github.com/rs/zerolog"

	"hr-assistant-api/internal/config"
	"hr-assistant-api/internal/domain/dialog"
	"hr-assistant-api/internal/domain/prompt"
	"hr-assistant-api/internal/domain/user"
)

// ServiceProvider provides all domain services
var ServiceProvider = wire.NewSet(
	// Dialog domain
	ProvideDialogPrompts,
	ProvideDialogService,

	// User domain
	user.NewService,

	// Prompt catalogue
	ProvidePromptService,
)

// ProvideDialogPrompts picks the texts every dialog is built from out of the catalogue.
func ProvideDialogPrompts(catalog *config.PromptCatalog) dialog.Prompts {
	return dialog.Prompts{
		System:   catalog.System.Content,
		Greeting: catalog.Greeting,
		Subject:  catalog.Subject.Content,
	}
}

func ProvideDialogService(cfg *config.Config, repo dialog.Repository, completer dialog.Completer, prompts dialog.Prompts, log zerolog.Logger) *dialog.Service {
	return dialog.NewService(repo, completer, prompts, cfg.MaxAnswerLength, log)
}

func ProvidePromptService(catalog *config.PromptCatalog, repo prompt.Repository, log zerolog.Logger) *prompt.Service {
	entries := catalog.All()
	defaults := make([]prompt.Prompt, 0, len(entries))
	for _, e := range entries {
		defaults = append(defaults, prompt.Prompt{Key: e.Key, Title: e.Title, Content: e.Content})
	}
	return prompt.NewService(repo, defaults, log)
}
