package routes

import (
	"github.com/google/wire"

	"hr-assistant-api/internal/interfaces/httpserver/handlers/authhandler"
	"hr-assistant-api/internal/interfaces/httpserver/handlers/dialoghandler"
	"hr-assistant-api/internal/interfaces/httpserver/handlers/prompthandler"
	"hr-assistant-api/internal/interfaces/httpserver/routes/auth"
	"hr-assistant-api/internal/interfaces/httpserver/routes/dialog"
	"hr-assistant-api/internal/interfaces/httpserver/routes/prompt"
)

var RouteProvider = wire.NewSet(
	// Handlers
	authhandler.NewAuthHandler,
	dialoghandler.NewDialogHandler,
	prompthandler.NewPromptHandler,

	// Routes
	auth.NewAuthRoute,
	dialog.NewDialogRoute,
	prompt.NewPromptRoute,
)
