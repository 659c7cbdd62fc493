package interfaces

import (
	"github.com/google/wire"

	"hr-assistant-api/internal/interfaces/httpserver"
)

var InterfacesProvider = wire.NewSet(
	httpserver.NewHttpServer,
)
