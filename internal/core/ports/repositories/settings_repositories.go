package repositories

import (
	"context"

	"github.com/SscSPs/caisse_manager/internal/core/domain"
)

// SettingsRepositoryFacade stores the single row of company settings.
type SettingsRepositoryFacade interface {
	// FindSettings returns apperrors.ErrNotFound until settings are saved once.
	FindSettings(ctx context.Context) (*domain.Settings, error)

	// SaveSettings inserts or replaces the settings row.
	SaveSettings(ctx context.Context, settings domain.Settings) error
}
