package repositories

import (
	"context"

	"github.com/SscSPs/caisse_manager/internal/core/domain"
)

// LocationReader defines read operations for cash locations
type LocationReader interface {
	// FindLocationByID retrieves a location, active or not.
	FindLocationByID(ctx context.Context, locationID string) (*domain.Location, error)

	// FindLocations lists locations ordered by name.
	FindLocations(ctx context.Context, activeOnly bool) ([]domain.Location, error)
}

// LocationWriter defines write operations for cash locations
type LocationWriter interface {
	SaveLocation(ctx context.Context, location domain.Location) error
	UpdateLocation(ctx context.Context, location domain.Location) error
}

// LocationRepositoryFacade combines all location-related repository interfaces
type LocationRepositoryFacade interface {
	LocationReader
	LocationWriter
}
