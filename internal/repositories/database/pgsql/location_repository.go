package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/caisse_manager/internal/apperrors"
	"github.com/SscSPs/caisse_manager/internal/core/domain"
	portsrepo "github.com/SscSPs/caisse_manager/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const locationColumns = `location_id, name, address, phone, manager_id, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxLocationRepository struct {
	BaseRepository
}

func newPgxLocationRepository(db *pgxpool.Pool) portsrepo.LocationRepositoryFacade {
	return &PgxLocationRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.LocationRepositoryFacade = (*PgxLocationRepository)(nil)

func mapLocationWriteError(err error) error {
	switch code, _ := pgErrorCode(err); code {
	case pgForeignKeyViolation:
		return apperrors.NewValidationFailedError("manager does not exist")
	case pgUniqueViolation:
		return apperrors.NewDuplicateError("a location with this name already exists")
	}
	return err
}

func (r *PgxLocationRepository) SaveLocation(ctx context.Context, location domain.Location) error {
	query := `
		INSERT INTO locations (` + locationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		location.LocationID,
		location.Name,
		location.Address,
		location.Phone,
		location.ManagerID,
		location.IsActive,
		location.CreatedAt,
		location.CreatedBy,
		location.LastUpdatedAt,
		location.LastUpdatedBy,
	)
	if err != nil {
		if mapped := mapLocationWriteError(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("failed to save location: %w", err)
	}
	return nil
}

func (r *PgxLocationRepository) FindLocationByID(ctx context.Context, locationID string) (*domain.Location, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+locationColumns+` FROM locations WHERE location_id = $1;`, locationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query location: %w", err)
	}
	location, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[domain.Location])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("location %s", locationID))
		}
		return nil, fmt.Errorf("failed to scan location: %w", err)
	}
	return &location, nil
}

func (r *PgxLocationRepository) FindLocations(ctx context.Context, activeOnly bool) ([]domain.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations WHERE ($1 = false OR is_active) ORDER BY name;`
	rows, err := r.Pool.Query(ctx, query, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to query locations: %w", err)
	}
	locations, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Location])
	if err != nil {
		return nil, fmt.Errorf("failed to scan location rows: %w", err)
	}
	return locations, nil
}

func (r *PgxLocationRepository) UpdateLocation(ctx context.Context, location domain.Location) error {
	query := `
		UPDATE locations
		SET name = $1, address = $2, phone = $3, manager_id = $4, is_active = $5,
		    last_updated_at = $6, last_updated_by = $7
		WHERE location_id = $8;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		location.Name,
		location.Address,
		location.Phone,
		location.ManagerID,
		location.IsActive,
		location.LastUpdatedAt,
		location.LastUpdatedBy,
		location.LocationID,
	)
	if err != nil {
		if mapped := mapLocationWriteError(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("failed to update location: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("location %s", location.LocationID))
	}
	return nil
}
