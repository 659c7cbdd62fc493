package prompthandler

import (
	"context"

	"hr-assistant-api/internal/domain/prompt"
	"hr-assistant-api/internal/interfaces/httpserver/responses"
)

type PromptHandler struct {
	promptService *prompt.Service
}

func NewPromptHandler(promptService *prompt.Service) *PromptHandler {
	return &PromptHandler{promptService: promptService}
}

func (h *PromptHandler) List(ctx context.Context) (*responses.PromptListResponse, error) {
	prompts, err := h.promptService.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := responses.NewPromptListResponse(prompts)
	return &resp, nil
}
