package repositories

import (
	"context"

	"github.com/SscSPs/caisse_manager/internal/core/domain"
)

// SourceReader defines read operations for fund sources
type SourceReader interface {
	FindSourceByID(ctx context.Context, sourceID string) (*domain.Source, error)

	// FindSources lists sources ordered by type then name; a nil sourceType returns all.
	FindSources(ctx context.Context, sourceType *domain.SourceType) ([]domain.Source, error)
}

// SourceWriter defines write operations for fund sources
type SourceWriter interface {
	SaveSource(ctx context.Context, source domain.Source) error
	UpdateSource(ctx context.Context, source domain.Source) error
	DeleteSource(ctx context.Context, sourceID string) error
}

// SourceRepositoryFacade combines all source-related repository interfaces
type SourceRepositoryFacade interface {
	SourceReader
	SourceWriter
}
