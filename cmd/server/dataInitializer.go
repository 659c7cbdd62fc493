package main

import (
	"context"

	"hr-assistant-api/internal/domain/prompt"
	"hr-assistant-api/internal/utils/platformerrors"
)

type DataInitializer struct {
	promptService *prompt.Service
}

// Install seeds the prompt catalogue into an empty store.
func (d *DataInitializer) Install(ctx context.Context) error {
	if err := d.promptService.Seed(ctx); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to seed prompts")
	}
	return nil
}
