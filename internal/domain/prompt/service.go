package prompt

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"hr-assistant-api/internal/utils/platformerrors"
)

// Service lists the prompt catalogue and seeds storage from it.
type Service struct {
	repo     Repository
	defaults []Prompt
	log      zerolog.Logger
}

// NewService creates a prompt service that seeds defaults into an empty store.
func NewService(repo Repository, defaults []Prompt, log zerolog.Logger) *Service {
	return &Service{
		repo:     repo,
		defaults: defaults,
		log:      log.With().Str("component", "prompt-service").Logger(),
	}
}

// List returns every stored prompt; never nil.
func (s *Service) List(ctx context.Context) ([]Prompt, error) {
	prompts, err := s.repo.List(ctx)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "list prompts")
	}
	if prompts == nil {
		prompts = []Prompt{}
	}
	return prompts, nil
}

// Seed writes the default catalogue when the store is empty.
func (s *Service) Seed(ctx context.Context) error {
	now := time.Now().UTC().Truncate(time.Millisecond)
	seed := make([]Prompt, 0, len(s.defaults))
	for _, p := range s.defaults {
		if strings.TrimSpace(p.Key) == "" {
			continue
		}
		p.CreatedAt = now
		seed = append(seed, p)
	}
	if len(seed) == 0 {
		return nil
	}

	written, err := s.repo.SeedIfEmpty(ctx, seed)
	if err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "seed prompts")
	}
	if written > 0 {
		s.log.Info().Int("count", written).Msg("seeded prompt catalogue")
	}
	return nil
}
