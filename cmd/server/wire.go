//go:build wireinject

package main

import (
	"github.com/google/wire"

	"hr-assistant-api/internal/domain"
	"hr-assistant-api/internal/infrastructure"
	"hr-assistant-api/internal/interfaces"
	"hr-assistant-api/internal/interfaces/httpserver/routes"
)

func CreateApplication() (*Application, func(), error) {
	wire.Build(
		domain.ServiceProvider,
		infrastructure.InfrastructureProvider,
		routes.RouteProvider,
		interfaces.InterfacesProvider,
		wire.Struct(new(DataInitializer), "*"),
		wire.Struct(new(Application), "*"),
	)
	return nil, nil, nil
}
