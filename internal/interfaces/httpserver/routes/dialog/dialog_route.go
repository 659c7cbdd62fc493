package dialog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hr-assistant-api/internal/interfaces/httpserver/handlers/dialoghandler"
	"hr-assistant-api/internal/interfaces/httpserver/middlewares"
	"hr-assistant-api/internal/interfaces/httpserver/requests"
	"hr-assistant-api/internal/interfaces/httpserver/responses"
	"hr-assistant-api/internal/utils/platformerrors"
)

type DialogRoute struct {
	handler *dialoghandler.DialogHandler
}

func NewDialogRoute(handler *dialoghandler.DialogHandler) *DialogRoute {
	return &DialogRoute{handler: handler}
}

// RegisterRouter registers dialog routes; router must already require authentication.
func (route *DialogRoute) RegisterRouter(router gin.IRouter) {
	router.POST("/chat", route.startChat)
	router.PUT("/chat", route.continueChat)
	router.GET("/dialog", route.getDialog)
	router.GET("/dialogs", route.listDialogs)
	router.DELETE("/dialogs-delete", route.deleteDialogs)
}

// startChat godoc
// @Summary Start a dialog
// @Description Derives a title from the question, seeds the dialog with the assistant persona and answers the question. Nothing is stored if either completion fails.
// @Tags Dialog API
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body requests.StartChatRequest true "First question"
// @Success 200 {object} responses.DialogResponse
// @Failure 400 {object} responses.ErrorResponse "Empty question or answer_length out of range"
// @Failure 401 {object} responses.ErrorResponse
// @Failure 500 {object} responses.ErrorResponse "Title or answer could not be generated"
// @Router /chat [post]
func (route *DialogRoute) startChat(reqCtx *gin.Context) {
	ownerID, ok := ownerFromContext(reqCtx)
	if !ok {
		return
	}

	var req requests.StartChatRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "invalid request body", "2b4d6f8a-0c2e-4b4d-8f8a-0c2e4b6d8f0a")
		return
	}
	if err := requests.Validate(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, err.Error(), "4d6f8a0c-2e4b-4d6f-9a0c-2e4b6d8f0a2c")
		return
	}

	resp, err := route.handler.Start(reqCtx.Request.Context(), ownerID, req)
	if err != nil {
		responses.HandleError(reqCtx, err, "failed to start dialog")
		return
	}
	reqCtx.JSON(http.StatusOK, resp)
}

// continueChat godoc
// @Summary Continue a dialog
// @Description Appends the question and the assistant's answer to one of the caller's dialogs.
// @Tags Dialog API
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body requests.ContinueChatRequest true "Next question"
// @Success 200 {object} responses.DialogResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 401 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse "Dialog not found"
// @Failure 409 {object} responses.ErrorResponse "Dialog was updated concurrently"
// @Failure 500 {object} responses.ErrorResponse "No answer available"
// @Router /chat [put]
func (route *DialogRoute) continueChat(reqCtx *gin.Context) {
	ownerID, ok := ownerFromContext(reqCtx)
	if !ok {
		return
	}

	var req requests.ContinueChatRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "invalid request body", "6f8a0c2e-4b6d-4f8a-a0c2-e4b6d8f0a2c4")
		return
	}
	if err := requests.Validate(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, err.Error(), "8a0c2e4b-6d8f-4a0c-b2e4-b6d8f0a2c4e6")
		return
	}

	resp, err := route.handler.Continue(reqCtx.Request.Context(), ownerID, req)
	if err != nil {
		responses.HandleError(reqCtx, err, "failed to continue dialog")
		return
	}
	reqCtx.JSON(http.StatusOK, resp)
}

// getDialog godoc
// @Summary Get a dialog
// @Description Returns one of the caller's dialogs with its full chat history.
// @Tags Dialog API
// @Security BearerAuth
// @Produce json
// @Param dialog_id query string true "Dialog ID"
// @Success 200 {object} responses.DialogResponse
// @Failure 400 {object} responses.ErrorResponse "dialog_id missing"
// @Failure 404 {object} responses.ErrorResponse "Dialog not found"
// @Router /dialog [get]
func (route *DialogRoute) getDialog(reqCtx *gin.Context) {
	ownerID, ok := ownerFromContext(reqCtx)
	if !ok {
		return
	}

	dialogID := reqCtx.Query("dialog_id")
	if dialogID == "" {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "no dialog_id provided", "0c2e4b6d-8f0a-4c2e-84b6-d8f0a2c4e6b8")
		return
	}

	resp, err := route.handler.Get(reqCtx.Request.Context(), ownerID, dialogID)
	if err != nil {
		responses.HandleError(reqCtx, err, "failed to get dialog")
		return
	}
	reqCtx.JSON(http.StatusOK, resp)
}

// listDialogs godoc
// @Summary List dialogs
// @Description Returns summaries of the caller's dialogs, oldest first.
// @Tags Dialog API
// @Security BearerAuth
// @Produce json
// @Success 200 {object} responses.DialogListResponse
// @Failure 401 {object} responses.ErrorResponse
// @Router /dialogs [get]
func (route *DialogRoute) listDialogs(reqCtx *gin.Context) {
	ownerID, ok := ownerFromContext(reqCtx)
	if !ok {
		return
	}

	resp, err := route.handler.List(reqCtx.Request.Context(), ownerID)
	if err != nil {
		responses.HandleError(reqCtx, err, "failed to list dialogs")
		return
	}
	reqCtx.JSON(http.StatusOK, resp)
}

// deleteDialogs godoc
// @Summary Delete dialogs
// @Description Deletes the caller's dialogs among the given ids. Ids of other users' dialogs are ignored.
// @Tags Dialog API
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body requests.DeleteDialogsRequest true "Dialog ids"
// @Success 200 {object} responses.DeleteDialogsResponse
// @Failure 400 {object} responses.ErrorResponse "No ids or malformed id"
// @Router /dialogs-delete [delete]
func (route *DialogRoute) deleteDialogs(reqCtx *gin.Context) {
	ownerID, ok := ownerFromContext(reqCtx)
	if !ok {
		return
	}

	var req requests.DeleteDialogsRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "invalid request body", "2e4b6d8f-0a2c-4e4b-96d8-f0a2c4e6b8d0")
		return
	}
	if err := requests.Validate(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "no ids provided", "4b6d8f0a-2c4e-4b6d-a8f0-a2c4e6b8d0f2")
		return
	}

	resp, err := route.handler.Delete(reqCtx.Request.Context(), ownerID, req)
	if err != nil {
		responses.HandleError(reqCtx, err, "failed to delete dialogs")
		return
	}
	reqCtx.JSON(http.StatusOK, resp)
}

func ownerFromContext(reqCtx *gin.Context) (string, bool) {
	u, ok := middlewares.UserFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized, "user not found in context", "6d8f0a2c-4e6b-4d8f-b0a2-c4e6b8d0f2a4")
		return "", false
	}
	return u.ID, true
}
