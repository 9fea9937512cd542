package services

import (
	"context"

	"github.com/SscSPs/caisse_manager/internal/core/domain"
	"github.com/SscSPs/caisse_manager/internal/dto"
)

// LocationReaderSvc defines read operations for cash locations
type LocationReaderSvc interface {
	GetLocation(ctx context.Context, locationID string) (*domain.Location, error)
	ListLocations(ctx context.Context, activeOnly bool) ([]domain.Location, error)
}

// LocationWriterSvc defines write operations for cash locations
type LocationWriterSvc interface {
	// CreateLocation requires an administrator.
	CreateLocation(ctx context.Context, req dto.CreateLocationRequest, creatorUserID string) (*domain.Location, error)

	// UpdateLocation requires the manager of the location or an administrator.
	UpdateLocation(ctx context.Context, locationID string, req dto.UpdateLocationRequest, requestingUserID string) (*domain.Location, error)

	// DeactivateLocation soft deletes a location; its history and balance are kept.
	DeactivateLocation(ctx context.Context, locationID string, requestingUserID string) error
}

// LocationSvcFacade combines all location-related service interfaces
type LocationSvcFacade interface {
	LocationReaderSvc
	LocationWriterSvc
}
