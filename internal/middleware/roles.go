package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/caisse_manager/internal/apperrors"
	"github.com/SscSPs/caisse_manager/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// RoleResolver returns the role of a user; services.UserSvcFacade satisfies it.
type RoleResolver interface {
	GetUserRole(ctx context.Context, userID string) (domain.UserRole, error)
}

// RequireRole aborts with 403 unless the authenticated user holds role.
// It must run after AuthMiddleware.
func RequireRole(resolver RoleResolver, role domain.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())
		userID, ok := GetUserIDFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		actual, err := resolver.GetUserRole(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				logger.Warn("Role check for unknown user")
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
				return
			}
			logger.Error("Failed to resolve user role", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to check permissions"})
			return
		}
		if actual != role {
			logger.Warn("Forbidden: missing role", slog.String("required_role", string(role)), slog.String("role", string(actual)))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		c.Next()
	}
}
