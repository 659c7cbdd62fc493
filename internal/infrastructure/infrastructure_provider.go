package infrastructure

import (
	"context"

	"github.com/google/wire"
	"github.com/rs/zerolog"

	"hr-assistant-api/internal/config"
	"hr-assistant-api/internal/domain/dialog"
	"hr-assistant-api/internal/domain/user"
	"hr-assistant-api/internal/infrastructure/auth"
	"hr-assistant-api/internal/infrastructure/database"
	"hr-assistant-api/internal/infrastructure/database/repository"
	"hr-assistant-api/internal/infrastructure/inference"
	"hr-assistant-api/internal/infrastructure/logger"
)

// ProvideConfig loads and provides the application configuration
func ProvideConfig() (*config.Config, error) {
	return config.Load()
}

// ProvidePromptCatalog loads the prompt catalogue, from PROMPTS_FILE when set.
func ProvidePromptCatalog(cfg *config.Config) (*config.PromptCatalog, error) {
	return config.LoadPromptCatalog(cfg.PromptsFile)
}

// ProvideDatabase connects to MongoDB and makes sure the indexes exist.
// The cleanup function disconnects the client.
func ProvideDatabase(cfg *config.Config, log zerolog.Logger) (*database.Database, func(), error) {
	ctx := context.Background()
	db, err := database.Connect(ctx, database.Config{
		URI:      cfg.MongoURI,
		Database: cfg.MongoDatabase,
		Timeout:  cfg.MongoTimeout,
	}, log)
	if err != nil {
		return nil, nil, err
	}

	indexCtx, cancel := context.WithTimeout(ctx, cfg.MongoTimeout)
	defer cancel()
	if err := db.EnsureIndexes(indexCtx); err != nil {
		_ = db.Close(context.Background())
		return nil, nil, err
	}

	cleanup := func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), cfg.MongoTimeout)
		defer cancel()
		if err := db.Close(closeCtx); err != nil {
			log.Error().Err(err).Msg("failed to disconnect from MongoDB")
		}
	}
	return db, cleanup, nil
}

func ProvideTokenIssuer(cfg *config.Config) user.TokenIssuer {
	return auth.NewJWTIssuer(cfg.JWTSecretKey, cfg.JWTTTL)
}

func ProvidePasswordHasher() user.PasswordHasher {
	return auth.NewBcryptHasher(0)
}

func ProvideCompleter(cfg *config.Config, log zerolog.Logger) dialog.Completer {
	return inference.NewCompletionClient(cfg, log)
}

// InfrastructureProvider provides all infrastructure dependencies
var InfrastructureProvider = wire.NewSet(
	// Config
	ProvideConfig,
	ProvidePromptCatalog,

	// Logger
	logger.ProvideLogger,

	// Database
	ProvideDatabase,

	// Repositories
	repository.RepositoryProvider,

	// Auth
	ProvideTokenIssuer,
	ProvidePasswordHasher,

	// Completion API
	ProvideCompleter,
)
