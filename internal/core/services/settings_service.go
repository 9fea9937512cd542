package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/SscSPs/caisse_manager/internal/apperrors"
	"github.com/SscSPs/caisse_manager/internal/core/domain"
	portsrepo "github.com/SscSPs/caisse_manager/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/caisse_manager/internal/core/ports/services"
	"github.com/SscSPs/caisse_manager/internal/dto"
)

type settingsService struct {
	BaseService
	settingsRepo portsrepo.SettingsRepositoryFacade
}

// NewSettingsService creates the company settings service.
func NewSettingsService(settingsRepo portsrepo.SettingsRepositoryFacade, roles portssvc.UserRoleProvider) portssvc.SettingsSvcFacade {
	return &settingsService{
		BaseService:  BaseService{Roles: roles},
		settingsRepo: settingsRepo,
	}
}

var _ portssvc.SettingsSvcFacade = (*settingsService)(nil)

func (s *settingsService) GetSettings(ctx context.Context) (*domain.Settings, error) {
	settings, err := s.settingsRepo.FindSettings(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			defaults := domain.DefaultSettings()
			return &defaults, nil
		}
		s.LogError(ctx, err, "Failed to load settings")
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return settings, nil
}

func (s *settingsService) UpdateSettings(ctx context.Context, req dto.UpdateSettingsRequest, requestingUserID string) (*domain.Settings, error) {
	if err := s.AuthorizeAdmin(ctx, requestingUserID); err != nil {
		return nil, err
	}
	if !slices.Contains(domain.SupportedCurrencies, req.DefaultCurrency) {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("unsupported currency %q", req.DefaultCurrency))
	}

	current, err := s.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	settings := *current
	settings.CompanyName = req.CompanyName
	settings.CompanyAddress = req.CompanyAddress
	settings.DefaultCurrency = req.DefaultCurrency
	settings.ReceiptHeader = req.ReceiptHeader
	settings.ReceiptFooter = req.ReceiptFooter
	if req.EnableNotifications != nil {
		settings.EnableNotifications = *req.EnableNotifications
	}
	if req.Language != "" {
		settings.Language = req.Language
	}
	if req.DateFormat != "" {
		settings.DateFormat = req.DateFormat
	}
	if req.TimeFormat != "" {
		settings.TimeFormat = req.TimeFormat
	}
	settings.LastUpdatedAt = time.Now()
	settings.LastUpdatedBy = requestingUserID

	if err := s.settingsRepo.SaveSettings(ctx, settings); err != nil {
		s.LogError(ctx, err, "Failed to save settings")
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}
	s.LogInfo(ctx, "Settings updated", slog.String("updated_by", requestingUserID), slog.String("currency", settings.DefaultCurrency))
	return &settings, nil
}

// goDateLayout converts the settings date format to a time layout.
func goDateLayout(format string) string {
	switch format {
	case "MM/DD/YYYY":
		return "01/02/2006"
	case "YYYY-MM-DD":
		return "2006-01-02"
	default:
		return "02/01/2006"
	}
}

func goTimeLayout(format string) string {
	if format == "12h" {
		return "03:04 PM"
	}
	return "15:04"
}
