package prompt

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hr-assistant-api/internal/interfaces/httpserver/handlers/prompthandler"
	"hr-assistant-api/internal/interfaces/httpserver/responses"
)

type PromptRoute struct {
	handler *prompthandler.PromptHandler
}

func NewPromptRoute(handler *prompthandler.PromptHandler) *PromptRoute {
	return &PromptRoute{handler: handler}
}

func (route *PromptRoute) RegisterRouter(router gin.IRouter) {
	router.GET("/prompts", route.listPrompts)
}

// listPrompts godoc
// @Summary List prompts
// @Description Returns the prompt catalogue.
// @Tags Prompt API
// @Security BearerAuth
// @Produce json
// @Success 200 {object} responses.PromptListResponse
// @Failure 401 {object} responses.ErrorResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /prompts [get]
func (route *PromptRoute) listPrompts(reqCtx *gin.Context) {
	resp, err := route.handler.List(reqCtx.Request.Context())
	if err != nil {
		responses.HandleError(reqCtx, err, "failed to list prompts")
		return
	}
	reqCtx.JSON(http.StatusOK, resp)
}
