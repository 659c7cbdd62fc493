package middlewares

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"hr-assistant-api/internal/domain/user"
	"hr-assistant-api/internal/infrastructure/metrics"
	"hr-assistant-api/internal/interfaces/httpserver/responses"
	"hr-assistant-api/internal/utils/platformerrors"
)

const (
	userContextKey = "user"
	userIDKey      = "user_id"
)

// Authenticator resolves the user a bearer token belongs to.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*user.User, error)
}

// AuthMiddleware requires "Authorization: Bearer <token>" and stores the
// resolved user in the gin context.
func AuthMiddleware(authenticator Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			metrics.RecordAuth("token", "missing")
			responses.HandleNewError(c, platformerrors.ErrorTypeUnauthorized, "token is missing", "5e7a9c1e-3b5d-4f7a-9c1e-3b5d7f9a1c3e")
			return
		}

		u, err := authenticator.Authenticate(c.Request.Context(), token)
		if err != nil {
			metrics.RecordAuth("token", "invalid")
			responses.HandleError(c, err, "invalid token")
			return
		}

		metrics.RecordAuth("token", "success")
		c.Set(userContextKey, u)
		c.Set(userIDKey, u.ID)
		c.Next()
	}
}

// UserFromContext returns the authenticated user, if any.
func UserFromContext(c *gin.Context) (*user.User, bool) {
	val, ok := c.Get(userContextKey)
	if !ok {
		return nil, false
	}
	u, ok := val.(*user.User)
	return u, ok && u != nil
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
