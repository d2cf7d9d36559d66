package middleware

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/gameroom/gameroom-api/internal/api/handler/v1/response"
	"github.com/gameroom/gameroom-api/internal/domain"
)

type UserLoader interface {
	GetUser(ctx context.Context, id uint) (domain.User, error)
}

// RequireRoles gates a route group on the authenticated user's role. Admin
// passes every gate. Must be mounted after VerifyJWT.
func RequireRoles(users UserLoader, required ...domain.Role) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userID, ok := ctx.Value(ContextKeyUserID).(uint)
		if !ok {
			response.RenderErr(ctx, response.ErrUnauthorized(errors.New("missing user id in context")))
			return
		}

		user, err := users.GetUser(ctx.Request.Context(), userID)
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized(fmt.Errorf("users.GetUser -> %w", err)))
			return
		}

		if !user.Role.HasPermission(required...) {
			response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("user %v role %v lacks permission", user.ID, user.Role)))
			return
		}

		ctx.Next()
	}
}
