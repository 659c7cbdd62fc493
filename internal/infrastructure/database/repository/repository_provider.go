package repository

import (
	"github.com/google/wire"

	"hr-assistant-api/internal/config"
	"hr-assistant-api/internal/domain/user"
	"hr-assistant-api/internal/infrastructure/database/repository/dialogrepo"
	"hr-assistant-api/internal/infrastructure/database/repository/promptrepo"
	"hr-assistant-api/internal/infrastructure/database/repository/userrepo"
)

// ProvideUserRepository decorates the Mongo user repository with an LRU cache.
func ProvideUserRepository(cfg *config.Config, base *userrepo.UserMongoRepository) (user.Repository, error) {
	return userrepo.NewCachedRepository(base, cfg.UserCacheSize, cfg.JWTTTL)
}

var RepositoryProvider = wire.NewSet(
	dialogrepo.NewDialogMongoRepository,
	promptrepo.NewPromptMongoRepository,
	userrepo.NewUserMongoRepository,
	ProvideUserRepository,
)
