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

type locationService struct {
	BaseService
	locationRepo portsrepo.LocationRepositoryFacade
}

// NewLocationService creates a location service; roles decides who may create and edit locations.
func NewLocationService(locationRepo portsrepo.LocationRepositoryFacade, roles portssvc.UserRoleProvider) portssvc.LocationSvcFacade {
	return &locationService{
		BaseService:  BaseService{Roles: roles},
		locationRepo: locationRepo,
	}
}

var _ portssvc.LocationSvcFacade = (*locationService)(nil)

func (s *locationService) CreateLocation(ctx context.Context, req dto.CreateLocationRequest, creatorUserID string) (*domain.Location, error) {
	if err := s.AuthorizeAdmin(ctx, creatorUserID); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationFailedError("location name is required")
	}

	now := time.Now()
	location := domain.Location{
		LocationID: uuid.NewString(),
		Name:       name,
		Address:    req.Address,
		Phone:      req.Phone,
		ManagerID:  req.ManagerID,
		IsActive:   true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.locationRepo.SaveLocation(ctx, location); err != nil {
		s.LogError(ctx, err, "Failed to save location", slog.String("name", name))
		return nil, fmt.Errorf("failed to create location in service: %w", err)
	}

	s.LogInfo(ctx, "Location created", slog.String("location_id", location.LocationID), slog.String("created_by", creatorUserID))
	return &location, nil
}

func (s *locationService) GetLocation(ctx context.Context, locationID string) (*domain.Location, error) {
	return s.locationRepo.FindLocationByID(ctx, locationID)
}

func (s *locationService) ListLocations(ctx context.Context, activeOnly bool) ([]domain.Location, error) {
	locations, err := s.locationRepo.FindLocations(ctx, activeOnly)
	if err != nil {
		s.LogError(ctx, err, "Failed to list locations")
		return nil, fmt.Errorf("failed to list locations in service: %w", err)
	}
	if locations == nil {
		return []domain.Location{}, nil
	}
	return locations, nil
}

func (s *locationService) UpdateLocation(ctx context.Context, locationID string, req dto.UpdateLocationRequest, requestingUserID string) (*domain.Location, error) {
	location, err := s.locationRepo.FindLocationByID(ctx, locationID)
	if err != nil {
		return nil, err
	}
	if err := s.AuthorizeLocationManager(ctx, requestingUserID, *location); err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperrors.NewValidationFailedError("location name cannot be empty")
		}
		location.Name = name
	}
	if req.Address != nil {
		location.Address = *req.Address
	}
	if req.Phone != nil {
		location.Phone = *req.Phone
	}
	if req.ManagerID != nil {
		// only administrators hand a location over to someone else
		if err := s.AuthorizeAdmin(ctx, requestingUserID); err != nil {
			return nil, err
		}
		if *req.ManagerID == "" {
			location.ManagerID = nil
		} else {
			managerID := *req.ManagerID
			location.ManagerID = &managerID
		}
	}
	if req.IsActive != nil {
		location.IsActive = *req.IsActive
	}
	location.LastUpdatedAt = time.Now()
	location.LastUpdatedBy = requestingUserID

	if err := s.locationRepo.UpdateLocation(ctx, *location); err != nil {
		s.LogError(ctx, err, "Failed to update location", slog.String("location_id", locationID))
		return nil, fmt.Errorf("failed to update location in service: %w", err)
	}
	return location, nil
}

func (s *locationService) DeactivateLocation(ctx context.Context, locationID string, requestingUserID string) error {
	location, err := s.locationRepo.FindLocationByID(ctx, locationID)
	if err != nil {
		return err
	}
	if err := s.AuthorizeLocationManager(ctx, requestingUserID, *location); err != nil {
		return err
	}
	if !location.IsActive {
		return nil
	}

	location.IsActive = false
	location.LastUpdatedAt = time.Now()
	location.LastUpdatedBy = requestingUserID
	if err := s.locationRepo.UpdateLocation(ctx, *location); err != nil {
		s.LogError(ctx, err, "Failed to deactivate location", slog.String("location_id", locationID))
		return fmt.Errorf("failed to deactivate location in service: %w", err)
	}
	s.LogInfo(ctx, "Location deactivated", slog.String("location_id", locationID), slog.String("deactivated_by", requestingUserID))
	return nil
}
