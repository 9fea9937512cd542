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

const sourceColumns = `source_id, name, type, description, is_fixed, created_at, created_by, last_updated_at, last_updated_by`

type PgxSourceRepository struct {
	BaseRepository
}

func newPgxSourceRepository(db *pgxpool.Pool) portsrepo.SourceRepositoryFacade {
	return &PgxSourceRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.SourceRepositoryFacade = (*PgxSourceRepository)(nil)

func (r *PgxSourceRepository) SaveSource(ctx context.Context, source domain.Source) error {
	query := `
		INSERT INTO sources (` + sourceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		source.SourceID,
		source.Name,
		source.Type,
		source.Description,
		source.IsFixed,
		source.CreatedAt,
		source.CreatedBy,
		source.LastUpdatedAt,
		source.LastUpdatedBy,
	)
	if err != nil {
		if code, _ := pgErrorCode(err); code == pgUniqueViolation {
			return apperrors.NewDuplicateError(fmt.Sprintf("source %s already exists for type %s", source.Name, source.Type))
		}
		return fmt.Errorf("failed to save source: %w", err)
	}
	return nil
}

func (r *PgxSourceRepository) FindSourceByID(ctx context.Context, sourceID string) (*domain.Source, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+sourceColumns+` FROM sources WHERE source_id = $1;`, sourceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query source: %w", err)
	}
	source, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[domain.Source])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("source %s", sourceID))
		}
		return nil, fmt.Errorf("failed to scan source: %w", err)
	}
	return &source, nil
}

func (r *PgxSourceRepository) FindSources(ctx context.Context, sourceType *domain.SourceType) ([]domain.Source, error) {
	query := `SELECT ` + sourceColumns + ` FROM sources WHERE ($1::text IS NULL OR type = $1) ORDER BY type, name;`
	var typeArg *string
	if sourceType != nil {
		t := string(*sourceType)
		typeArg = &t
	}
	rows, err := r.Pool.Query(ctx, query, typeArg)
	if err != nil {
		return nil, fmt.Errorf("failed to query sources: %w", err)
	}
	sources, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Source])
	if err != nil {
		return nil, fmt.Errorf("failed to scan source rows: %w", err)
	}
	return sources, nil
}

func (r *PgxSourceRepository) UpdateSource(ctx context.Context, source domain.Source) error {
	query := `
		UPDATE sources
		SET name = $1, description = $2, last_updated_at = $3, last_updated_by = $4
		WHERE source_id = $5 AND is_fixed = false;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, source.Name, source.Description, source.LastUpdatedAt, source.LastUpdatedBy, source.SourceID)
	if err != nil {
		if code, _ := pgErrorCode(err); code == pgUniqueViolation {
			return apperrors.NewDuplicateError(fmt.Sprintf("source %s already exists for type %s", source.Name, source.Type))
		}
		return fmt.Errorf("failed to update source: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("source %s", source.SourceID))
	}
	return nil
}

func (r *PgxSourceRepository) DeleteSource(ctx context.Context, sourceID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM sources WHERE source_id = $1 AND is_fixed = false;`, sourceID)
	if err != nil {
		return fmt.Errorf("failed to delete source: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("source %s", sourceID))
	}
	return nil
}
