package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/caisse_manager/internal/core/domain"
)

// UserRoleCache caches user roles so authorization checks skip the database.
type UserRoleCache interface {
	// GetUserRole returns apperrors.ErrNotFound on a cache miss.
	GetUserRole(ctx context.Context, userID string) (domain.UserRole, error)
	SetUserRole(ctx context.Context, userID string, role domain.UserRole, ttl time.Duration) error
	DeleteUserRole(ctx context.Context, userID string) error
}
