//go:build wireinject
// +build wireinject

package main

import (
	"net/http"

	"github.com/google/wire"
	"github.com/ueberboese/ueberboese-api/internal/config"
	"github.com/ueberboese/ueberboese-api/internal/handler"
	"github.com/ueberboese/ueberboese-api/internal/repository"
	"github.com/ueberboese/ueberboese-api/internal/server"
	"github.com/ueberboese/ueberboese-api/internal/service"
)

type Application struct {
	Server  *http.Server
	Startup *service.StartupTasks
}

func initializeApplication(cfg *config.Config) (*Application, func(), error) {
	wire.Build(
		repository.ProviderSet,
		service.ProviderSet,
		handler.ProviderSet,
		server.ProviderSet,
		wire.Struct(new(Application), "*"),
	)
	return nil, nil, nil
}

func initializeMigration(cfg *config.Config) (*service.SpotifyAccountMigrationService, func(), error) {
	wire.Build(
		repository.ProvideDB,
		repository.NewSpotifyAccountRepository,
		service.NewSpotifyAccountMigrationService,
	)
	return nil, nil, nil
}
