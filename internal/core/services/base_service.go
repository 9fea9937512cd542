package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/SscSPs/caisse_manager/internal/apperrors"
	"github.com/SscSPs/caisse_manager/internal/core/domain"
	portssvc "github.com/SscSPs/caisse_manager/internal/core/ports/services"
	"github.com/SscSPs/caisse_manager/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Roles portssvc.UserRoleProvider
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// LogWarn logs a warning with consistent formatting
func (s *BaseService) LogWarn(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Warn(msg, keyvals...)
}

// IsAdmin reports whether userID holds the admin role.
func (s *BaseService) IsAdmin(ctx context.Context, userID string) (bool, error) {
	if s.Roles == nil {
		return false, apperrors.NewAppError(http.StatusInternalServerError, "role provider not configured", nil)
	}
	role, err := s.Roles.GetUserRole(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, apperrors.NewForbiddenError("unknown user")
		}
		return false, err
	}
	return role == domain.UserRoleAdmin, nil
}

// AuthorizeAdmin returns apperrors.ErrForbidden unless userID is an administrator.
func (s *BaseService) AuthorizeAdmin(ctx context.Context, userID string) error {
	ok, err := s.IsAdmin(ctx, userID)
	if err != nil {
		return err
	}
	if !ok {
		s.LogWarn(ctx, "Admin action refused", slog.String("user_id", userID))
		return apperrors.NewForbiddenError("administrator role required")
	}
	return nil
}

// AuthorizeLocationManager allows the manager of the location and administrators.
func (s *BaseService) AuthorizeLocationManager(ctx context.Context, userID string, location domain.Location) error {
	if location.IsManagedBy(userID) {
		return nil
	}
	ok, err := s.IsAdmin(ctx, userID)
	if err != nil {
		return err
	}
	if !ok {
		s.LogWarn(ctx, "Location action refused",
			slog.String("user_id", userID),
			slog.String("location_id", location.LocationID))
		return apperrors.NewForbiddenError(fmt.Sprintf("user is not allowed to manage location %s", location.LocationID))
	}
	return nil
}
