package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hr-assistant-api/internal/interfaces/httpserver/handlers/authhandler"
	"hr-assistant-api/internal/interfaces/httpserver/middlewares"
	"hr-assistant-api/internal/interfaces/httpserver/requests"
	"hr-assistant-api/internal/interfaces/httpserver/responses"
	"hr-assistant-api/internal/utils/platformerrors"
)

// AuthRoute handles registration, login and the current user.
type AuthRoute struct {
	handler *authhandler.AuthHandler
}

func NewAuthRoute(handler *authhandler.AuthHandler) *AuthRoute {
	return &AuthRoute{handler: handler}
}

// RegisterRouter registers auth routes
func (route *AuthRoute) RegisterRouter(router gin.IRouter, protectedRouter gin.IRouter) {
	router.POST("/register", route.register)
	router.POST("/login", route.login)

	protectedRouter.GET("/user-by-id", route.me)
}

// register godoc
// @Summary Register a user
// @Description Creates an account. The password must be at least 6 characters and the username unused.
// @Tags Authentication API
// @Accept json
// @Produce json
// @Param request body requests.RegisterRequest true "Registration form"
// @Success 200 {object} responses.MessageResponse
// @Failure 400 {object} responses.ErrorResponse "Missing field, short password or username in use"
// @Failure 500 {object} responses.ErrorResponse
// @Router /register [post]
func (route *AuthRoute) register(reqCtx *gin.Context) {
	var req requests.RegisterRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "invalid request body", "1a3c5e7a-9c1e-4a3c-8e7a-9c1e3a5c7e9a")
		return
	}
	if err := requests.Validate(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, err.Error(), "3c5e7a9c-1e3a-4c5e-9a9c-1e3a5c7e9a1c")
		return
	}

	resp, err := route.handler.Register(reqCtx.Request.Context(), req)
	if err != nil {
		responses.HandleError(reqCtx, err, "registration failed")
		return
	}
	reqCtx.JSON(http.StatusOK, resp)
}

// login godoc
// @Summary Log in
// @Description Verifies credentials and returns an access token valid for JWT_TTL.
// @Tags Authentication API
// @Accept json
// @Produce json
// @Param request body requests.LoginRequest true "Credentials"
// @Success 200 {object} responses.LoginResponse
// @Failure 400 {object} responses.ErrorResponse "Missing username or password"
// @Failure 401 {object} responses.ErrorResponse "Invalid username or password"
// @Router /login [post]
func (route *AuthRoute) login(reqCtx *gin.Context) {
	var req requests.LoginRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "invalid request body", "5e7a9c1e-3a5c-4e7a-a1e3-a5c7e9a1c3e5")
		return
	}
	if err := requests.Validate(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "username and password are required", "7a9c1e3a-5c7e-4a9c-b3a5-c7e9a1c3e5a7")
		return
	}

	resp, err := route.handler.Login(reqCtx.Request.Context(), req)
	if err != nil {
		responses.HandleError(reqCtx, err, "login failed")
		return
	}
	reqCtx.JSON(http.StatusOK, resp)
}

// me godoc
// @Summary Current user
// @Description Returns the account the bearer token belongs to.
// @Tags Authentication API
// @Security BearerAuth
// @Produce json
// @Success 200 {object} responses.UserResponse
// @Failure 401 {object} responses.ErrorResponse
// @Router /user-by-id [get]
func (route *AuthRoute) me(reqCtx *gin.Context) {
	u, ok := middlewares.UserFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized, "user not found in context", "9c1e3a5c-7e9a-4c1e-85c7-e9a1c3e5a7c9")
		return
	}
	reqCtx.JSON(http.StatusOK, route.handler.Me(u))
}
