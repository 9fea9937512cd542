package services

import (
	"context"

	"github.com/SscSPs/caisse_manager/internal/core/domain"
	"github.com/SscSPs/caisse_manager/internal/dto"
)

// SettingsSvcFacade reads and writes the company settings.
type SettingsSvcFacade interface {
	// GetSettings falls back to domain.DefaultSettings when nothing is stored.
	GetSettings(ctx context.Context) (*domain.Settings, error)

	// UpdateSettings requires an administrator.
	UpdateSettings(ctx context.Context, req dto.UpdateSettingsRequest, requestingUserID string) (*domain.Settings, error)
}
