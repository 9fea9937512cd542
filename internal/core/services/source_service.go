package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/caisse_manager/internal/apperrors"
	"github.com/SscSPs/caisse_manager/internal/core/domain"
	portsrepo "github.com/SscSPs/caisse_manager/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/caisse_manager/internal/core/ports/services"
	"github.com/SscSPs/caisse_manager/internal/dto"
	"github.com/google/uuid"
)

type sourceService struct {
	BaseService
	sourceRepo portsrepo.SourceRepositoryFacade
}

// NewSourceService creates the service managing fund source labels.
func NewSourceService(sourceRepo portsrepo.SourceRepositoryFacade, roles portssvc.UserRoleProvider) portssvc.SourceSvcFacade {
	return &sourceService{
		BaseService: BaseService{Roles: roles},
		sourceRepo:  sourceRepo,
	}
}

var _ portssvc.SourceSvcFacade = (*sourceService)(nil)

func (s *sourceService) CreateSource(ctx context.Context, req dto.CreateSourceRequest, creatorUserID string) (*domain.Source, error) {
	if err := s.AuthorizeAdmin(ctx, creatorUserID); err != nil {
		return nil, err
	}
	if !req.Type.Valid() {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("invalid source type %q", req.Type))
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationFailedError("source name is required")
	}

	now := time.Now()
	source := domain.Source{
		SourceID:    uuid.NewString(),
		Name:        name,
		Type:        req.Type,
		Description: req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.sourceRepo.SaveSource(ctx, source); err != nil {
		s.LogError(ctx, err, "Failed to save source", slog.String("name", name))
		return nil, fmt.Errorf("failed to create source in service: %w", err)
	}
	return &source, nil
}

func (s *sourceService) GetSource(ctx context.Context, sourceID string) (*domain.Source, error) {
	return s.sourceRepo.FindSourceByID(ctx, sourceID)
}

func (s *sourceService) ListSources(ctx context.Context, sourceType *domain.SourceType) ([]domain.Source, error) {
	if sourceType != nil && !sourceType.Valid() {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("invalid source type %q", *sourceType))
	}
	sources, err := s.sourceRepo.FindSources(ctx, sourceType)
	if err != nil {
		s.LogError(ctx, err, "Failed to list sources")
		return nil, fmt.Errorf("failed to list sources in service: %w", err)
	}
	if sources == nil {
		return []domain.Source{}, nil
	}
	return sources, nil
}

func (s *sourceService) editable(ctx context.Context, sourceID, requestingUserID string) (*domain.Source, error) {
	if err := s.AuthorizeAdmin(ctx, requestingUserID); err != nil {
		return nil, err
	}
	source, err := s.sourceRepo.FindSourceByID(ctx, sourceID)
	if err != nil {
		return nil, err
	}
	if source.IsFixed {
		return nil, apperrors.NewForbiddenError(fmt.Sprintf("source %s is fixed", source.Name))
	}
	return source, nil
}

func (s *sourceService) UpdateSource(ctx context.Context, sourceID string, req dto.UpdateSourceRequest, requestingUserID string) (*domain.Source, error) {
	source, err := s.editable(ctx, sourceID, requestingUserID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperrors.NewValidationFailedError("source name cannot be empty")
		}
		source.Name = name
	}
	if req.Description != nil {
		source.Description = *req.Description
	}
	source.LastUpdatedAt = time.Now()
	source.LastUpdatedBy = requestingUserID

	if err := s.sourceRepo.UpdateSource(ctx, *source); err != nil {
		s.LogError(ctx, err, "Failed to update source", slog.String("source_id", sourceID))
		return nil, fmt.Errorf("failed to update source in service: %w", err)
	}
	return source, nil
}

func (s *sourceService) DeleteSource(ctx context.Context, sourceID string, requestingUserID string) error {
	if _, err := s.editable(ctx, sourceID, requestingUserID); err != nil {
		return err
	}
	if err := s.sourceRepo.DeleteSource(ctx, sourceID); err != nil {
		s.LogError(ctx, err, "Failed to delete source", slog.String("source_id", sourceID))
		return fmt.Errorf("failed to delete source in service: %w", err)
	}
	s.LogInfo(ctx, "Source deleted", slog.String("source_id", sourceID), slog.String("deleted_by", requestingUserID))
	return nil
}
