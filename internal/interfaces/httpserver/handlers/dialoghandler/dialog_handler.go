package dialoghandler

import (
	"context"

	"hr-assistant-api/internal/domain/dialog"
	"hr-assistant-api/internal/infrastructure/metrics"
	"hr-assistant-api/internal/interfaces/httpserver/requests"
	"hr-assistant-api/internal/interfaces/httpserver/responses"
)

type DialogHandler struct {
	dialogService *dialog.Service
}

func NewDialogHandler(dialogService *dialog.Service) *DialogHandler {
	return &DialogHandler{dialogService: dialogService}
}

// Start opens a dialog with its first question answered.
func (h *DialogHandler) Start(ctx context.Context, ownerID string, req requests.StartChatRequest) (*responses.DialogResponse, error) {
	session, err := h.dialogService.StartDialog(ctx, ownerID, dialog.ChatInput{
		Question:     req.Question,
		AnswerLength: req.AnswerLength,
	})
	if err != nil {
		return nil, err
	}
	metrics.RecordDialogCreated()
	return &responses.DialogResponse{Dialog: responses.NewDialogPayload(session)}, nil
}

func (h *DialogHandler) Continue(ctx context.Context, ownerID string, req requests.ContinueChatRequest) (*responses.DialogResponse, error) {
	session, err := h.dialogService.ContinueDialog(ctx, ownerID, req.Dialog, dialog.ChatInput{
		Question:     req.Question,
		AnswerLength: req.AnswerLength,
	})
	if err != nil {
		return nil, err
	}
	return &responses.DialogResponse{Dialog: responses.NewDialogPayload(session)}, nil
}

func (h *DialogHandler) Get(ctx context.Context, ownerID, dialogID string) (*responses.DialogResponse, error) {
	session, err := h.dialogService.GetDialog(ctx, ownerID, dialogID)
	if err != nil {
		return nil, err
	}
	return &responses.DialogResponse{Dialog: responses.NewDialogPayload(session)}, nil
}

func (h *DialogHandler) List(ctx context.Context, ownerID string) (*responses.DialogListResponse, error) {
	summaries, err := h.dialogService.ListDialogs(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	resp := responses.NewDialogListResponse(summaries)
	return &resp, nil
}

func (h *DialogHandler) Delete(ctx context.Context, ownerID string, req requests.DeleteDialogsRequest) (*responses.DeleteDialogsResponse, error) {
	deleted, err := h.dialogService.DeleteDialogs(ctx, ownerID, req.DialogsIDs)
	if err != nil {
		return nil, err
	}
	return &responses.DeleteDialogsResponse{Msg: "Deleted successfully", Deleted: deleted}, nil
}
