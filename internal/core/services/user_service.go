package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/SscSPs/caisse_manager/internal/apperrors"
	"github.com/SscSPs/caisse_manager/internal/core/domain"
	portsrepo "github.com/SscSPs/caisse_manager/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/caisse_manager/internal/core/ports/services"
	"github.com/SscSPs/caisse_manager/internal/dto"
	"github.com/SscSPs/caisse_manager/internal/utils"
	"github.com/google/uuid"
)

const defaultRoleCacheTTL = 10 * time.Minute

type userService struct {
	BaseService
	userRepo     portsrepo.UserRepositoryFacade
	roleCache    portsrepo.UserRoleCache
	roleCacheTTL time.Duration
}

// UserServiceOption configures the user service.
type UserServiceOption func(*userService)

// WithRoleCache caches role lookups for ttl.
func WithRoleCache(cache portsrepo.UserRoleCache, ttl time.Duration) UserServiceOption {
	return func(s *userService) {
		s.roleCache = cache
		if ttl > 0 {
			s.roleCacheTTL = ttl
		}
	}
}

// NewUserService creates a new UserService.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, opts ...UserServiceOption) portssvc.UserSvcFacade {
	s := &userService{
		userRepo:     userRepo,
		roleCacheTTL: defaultRoleCacheTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	// the service answers its own role lookups
	s.Roles = s
	return s
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error) {
	email := normalizeEmail(req.Email)

	existing, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check for existing user", slog.String("email", email))
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, apperrors.NewDuplicateError(fmt.Sprintf("user with email %s already exists", email))
	}

	role := req.Role
	if role == "" {
		role = domain.UserRoleUser
	}
	if !role.Valid() {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("invalid role %q", role))
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.NewValidationFailedError(err.Error())
	}

	userID := uuid.NewString()
	if creatorUserID == "" {
		creatorUserID = userID
	}
	now := time.Now()
	user := domain.User{
		UserID:       userID,
		Email:        email,
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: hash,
		Role:         role,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		s.LogError(ctx, err, "Failed to save user", slog.String("email", email))
		return nil, fmt.Errorf("failed to create user in service: %w", err)
	}

	s.LogInfo(ctx, "User created", slog.String("user_id", user.UserID), slog.String("role", string(role)))
	return &user, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.userRepo.FindUserByEmail(ctx, normalizeEmail(email))
}

func (s *userService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	users, err := s.userRepo.FindUsers(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list users")
		return nil, fmt.Errorf("failed to list users in service: %w", err)
	}
	if users == nil {
		return []domain.User{}, nil
	}
	return users, nil
}

func (s *userService) CountUsers(ctx context.Context) (int, error) {
	return s.userRepo.CountUsers(ctx)
}

func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error) {
	if err := s.AuthorizeAdmin(ctx, requestingUserID); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil && strings.TrimSpace(*req.Name) != "" && *req.Name != user.Name {
		user.Name = strings.TrimSpace(*req.Name)
		updated = true
	}
	roleChanged := false
	if req.Role != nil && *req.Role != user.Role {
		if !req.Role.Valid() {
			return nil, apperrors.NewValidationFailedError(fmt.Sprintf("invalid role %q", *req.Role))
		}
		if userID == requestingUserID && *req.Role != domain.UserRoleAdmin {
			return nil, apperrors.NewConflictError("administrators cannot revoke their own role")
		}
		user.Role = *req.Role
		updated = true
		roleChanged = true
	}
	if !updated {
		return user, nil
	}

	user.LastUpdatedAt = time.Now()
	user.LastUpdatedBy = requestingUserID
	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to update user", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to update user in service: %w", err)
	}
	if roleChanged {
		s.forgetRole(ctx, userID)
	}

	s.LogInfo(ctx, "User updated", slog.String("user_id", userID), slog.String("updated_by", requestingUserID))
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, userID string, requestingUserID string) error {
	if err := s.AuthorizeAdmin(ctx, requestingUserID); err != nil {
		return err
	}
	if userID == requestingUserID {
		return apperrors.NewConflictError("administrators cannot delete themselves")
	}
	if _, err := s.userRepo.FindUserByID(ctx, userID); err != nil {
		return err
	}
	if err := s.userRepo.MarkUserDeleted(ctx, userID, time.Now(), requestingUserID); err != nil {
		s.LogError(ctx, err, "Failed to delete user", slog.String("user_id", userID))
		return fmt.Errorf("failed to delete user in service: %w", err)
	}
	s.forgetRole(ctx, userID)
	s.LogInfo(ctx, "User deleted", slog.String("user_id", userID), slog.String("deleted_by", requestingUserID))
	return nil
}

// AuthenticateUser returns apperrors.ErrUnauthorized for unknown emails and wrong passwords alike.
func (s *userService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewAppError(http.StatusUnauthorized, "invalid email or password", apperrors.ErrUnauthorized)
		}
		return nil, err
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		s.LogDebug(ctx, "Password mismatch", slog.String("user_id", user.UserID))
		return nil, apperrors.NewAppError(http.StatusUnauthorized, "invalid email or password", apperrors.ErrUnauthorized)
	}
	return user, nil
}

// GetUserRole reads through the role cache when one is configured. Cache
// failures are logged and fall back to the repository.
func (s *userService) GetUserRole(ctx context.Context, userID string) (domain.UserRole, error) {
	if s.roleCache != nil {
		role, err := s.roleCache.GetUserRole(ctx, userID)
		if err == nil {
			return role, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogWarn(ctx, "Role cache read failed", slog.String("user_id", userID), slog.String("error", err.Error()))
		}
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return "", err
	}

	if s.roleCache != nil {
		if err := s.roleCache.SetUserRole(ctx, userID, user.Role, s.roleCacheTTL); err != nil {
			s.LogWarn(ctx, "Role cache write failed", slog.String("user_id", userID), slog.String("error", err.Error()))
		}
	}
	return user.Role, nil
}

func (s *userService) forgetRole(ctx context.Context, userID string) {
	if s.roleCache == nil {
		return
	}
	if err := s.roleCache.DeleteUserRole(ctx, userID); err != nil {
		s.LogWarn(ctx, "Role cache invalidation failed", slog.String("user_id", userID), slog.String("error", err.Error()))
	}
}
