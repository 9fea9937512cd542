package dto

import (
	"time"

	"github.com/SscSPs/caisse_manager/internal/core/domain"
)

// CreateLocationRequest defines data for creating a new cash location.
type CreateLocationRequest struct {
	Name      string  `json:"name" binding:"required"`
	Address   string  `json:"address"`
	Phone     string  `json:"phone"`
	ManagerID *string `json:"managerID"`
}

// UpdateLocationRequest holds the optional fields of a location update.
type UpdateLocationRequest struct {
	Name      *string `json:"name" binding:"omitempty,min=1"`
	Address   *string `json:"address"`
	Phone     *string `json:"phone"`
	ManagerID *string `json:"managerID"`
	IsActive  *bool   `json:"isActive"`
}

// ListLocationsParams filters the location list.
type ListLocationsParams struct {
	ActiveOnly bool `form:"activeOnly"`
}

// LocationResponse defines data returned for a location.
type LocationResponse struct {
	LocationID    string    `json:"locationID"`
	Name          string    `json:"name"`
	Address       string    `json:"address"`
	Phone         string    `json:"phone"`
	ManagerID     *string   `json:"managerID,omitempty"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// ToLocationResponse converts domain.Location to DTO.
func ToLocationResponse(l *domain.Location) LocationResponse {
	return LocationResponse{
		LocationID:    l.LocationID,
		Name:          l.Name,
		Address:       l.Address,
		Phone:         l.Phone,
		ManagerID:     l.ManagerID,
		IsActive:      l.IsActive,
		CreatedAt:     l.CreatedAt,
		CreatedBy:     l.CreatedBy,
		LastUpdatedAt: l.LastUpdatedAt,
		LastUpdatedBy: l.LastUpdatedBy,
	}
}

// ListLocationsResponse wraps a list of locations.
type ListLocationsResponse struct {
	Locations []LocationResponse `json:"locations"`
}

// ToListLocationsResponse converts a slice of domain.Location to DTO.
func ToListLocationsResponse(ls []domain.Location) ListLocationsResponse {
	list := make([]LocationResponse, len(ls))
	for i := range ls {
		list[i] = ToLocationResponse(&ls[i])
	}
	return ListLocationsResponse{Locations: list}
}
