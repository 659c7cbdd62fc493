package authhandler

import (
	"context"

	"hr-assistant-api/internal/domain/user"
	"hr-assistant-api/internal/infrastructure/metrics"
	"hr-assistant-api/internal/interfaces/httpserver/requests"
	"hr-assistant-api/internal/interfaces/httpserver/responses"
	"hr-assistant-api/internal/utils/platformerrors"
)

type AuthHandler struct {
	userService *user.Service
}

func NewAuthHandler(userService *user.Service) *AuthHandler {
	return &AuthHandler{userService: userService}
}

func (h *AuthHandler) Register(ctx context.Context, req requests.RegisterRequest) (*responses.MessageResponse, error) {
	_, err := h.userService.Register(ctx, user.RegisterInput{
		Name:     req.Name,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		metrics.RecordAuth("register", outcome(err))
		return nil, err
	}
	metrics.RecordAuth("register", "success")
	return &responses.MessageResponse{Msg: "Register successfully"}, nil
}

func (h *AuthHandler) Login(ctx context.Context, req requests.LoginRequest) (*responses.LoginResponse, error) {
	session, err := h.userService.Login(ctx, req.Username, req.Password)
	if err != nil {
		metrics.RecordAuth("login", outcome(err))
		return nil, err
	}
	metrics.RecordAuth("login", "success")
	return &responses.LoginResponse{
		Token: session.Token,
		User:  responses.NewUserPayload(session.User),
	}, nil
}

func (h *AuthHandler) Me(u *user.User) responses.UserResponse {
	return responses.UserResponse{User: responses.NewUserPayload(u)}
}

func outcome(err error) string {
	switch {
	case platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation):
		return "invalid"
	case platformerrors.IsErrorType(err, platformerrors.ErrorTypeUnauthorized):
		return "denied"
	default:
		return "error"
	}
}
