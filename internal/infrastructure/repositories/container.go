package repositories

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/gitbridge/internal/domain/entities"
	giteaRepo "github.com/rios0rios0/gitbridge/internal/infrastructure/repositories/gitea"
	ghRepo "github.com/rios0rios0/gitbridge/internal/infrastructure/repositories/github"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register provider registry with all provider factories
	return container.Provide(func() *ProviderRegistry {
		reg := NewProviderRegistry()
		reg.Register(entities.BackendTypeGitHub, ghRepo.NewProviderRepository)
		reg.Register(entities.BackendTypeGitea, giteaRepo.NewProviderRepository)
		return reg
	})
}
