package services

import (
	"context"

	"github.com/SscSPs/caisse_manager/internal/core/domain"
	"github.com/SscSPs/caisse_manager/internal/dto"
)

// SourceSvcFacade manages the labels used for the source of an operation.
type SourceSvcFacade interface {
	CreateSource(ctx context.Context, req dto.CreateSourceRequest, creatorUserID string) (*domain.Source, error)
	GetSource(ctx context.Context, sourceID string) (*domain.Source, error)
	ListSources(ctx context.Context, sourceType *domain.SourceType) ([]domain.Source, error)

	// UpdateSource and DeleteSource refuse fixed sources with apperrors.ErrForbidden.
	UpdateSource(ctx context.Context, sourceID string, req dto.UpdateSourceRequest, requestingUserID string) (*domain.Source, error)
	DeleteSource(ctx context.Context, sourceID string, requestingUserID string) error
}
