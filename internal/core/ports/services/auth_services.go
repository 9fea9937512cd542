package services

import (
	"context"

	"github.com/SscSPs/caisse_manager/internal/dto"
)

// AuthSvc issues access tokens.
type AuthSvc interface {
	// Register creates a user with the default role and logs them in.
	// The first user ever registered becomes administrator.
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error)

	// Login exchanges valid credentials for a token; bad credentials yield apperrors.ErrUnauthorized.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)
}
