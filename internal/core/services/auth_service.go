package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/SscSPs/caisse_manager/internal/core/domain"
	portssvc "github.com/SscSPs/caisse_manager/internal/core/ports/services"
	"github.com/SscSPs/caisse_manager/internal/dto"
	"github.com/SscSPs/caisse_manager/internal/platform/config"
	"github.com/SscSPs/caisse_manager/internal/utils"
)

// authService issues HS256 access tokens for local accounts.
type authService struct {
	BaseService
	cfg         *config.Config
	userService portssvc.UserSvcFacade

	// serializes the first-user check with the insert that follows it
	registerMu sync.Mutex
}

// NewAuthService creates a new instance of authService.
func NewAuthService(cfg *config.Config, userService portssvc.UserSvcFacade) portssvc.AuthSvc {
	return &authService{
		cfg:         cfg,
		userService: userService,
	}
}

var _ portssvc.AuthSvc = (*authService)(nil)

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	s.registerMu.Lock()
	count, err := s.userService.CountUsers(ctx)
	if err != nil {
		s.registerMu.Unlock()
		s.LogError(ctx, err, "Failed to count users during registration")
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	role := domain.UserRoleUser
	if count == 0 {
		role = domain.UserRoleAdmin
	}
	user, err := s.userService.CreateUser(ctx, dto.CreateUserRequest{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Role:     role,
	}, "")
	s.registerMu.Unlock()
	if err != nil {
		return nil, err
	}

	if role == domain.UserRoleAdmin {
		s.LogInfo(ctx, "First user registered as administrator", slog.String("user_id", user.UserID))
	}
	return s.issue(ctx, user)
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userService.AuthenticateUser(ctx, req.Email, req.Password)
	if err != nil {
		s.LogDebug(ctx, "Login failed", slog.String("email", req.Email))
		return nil, err
	}
	return s.issue(ctx, user)
}

func (s *authService) issue(ctx context.Context, user *domain.User) (*dto.AuthResponse, error) {
	token, expiresAt, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate access token", slog.String("user_id", user.UserID))
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	return &dto.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      dto.ToUserResponse(user),
	}, nil
}
