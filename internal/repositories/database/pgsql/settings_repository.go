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

const settingsColumns = `company_name, company_address, default_currency, receipt_header, receipt_footer,
	enable_notifications, language, date_format, time_format, last_updated_at, last_updated_by`

// settings live in a single row with id 1
type PgxSettingsRepository struct {
	BaseRepository
}

func newPgxSettingsRepository(db *pgxpool.Pool) portsrepo.SettingsRepositoryFacade {
	return &PgxSettingsRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.SettingsRepositoryFacade = (*PgxSettingsRepository)(nil)

func (r *PgxSettingsRepository) FindSettings(ctx context.Context) (*domain.Settings, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+settingsColumns+` FROM settings WHERE id = 1;`)
	if err != nil {
		return nil, fmt.Errorf("failed to query settings: %w", err)
	}
	settings, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[domain.Settings])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("settings")
		}
		return nil, fmt.Errorf("failed to scan settings: %w", err)
	}
	return &settings, nil
}

func (r *PgxSettingsRepository) SaveSettings(ctx context.Context, s domain.Settings) error {
	query := `
		INSERT INTO settings (id, ` + settingsColumns + `)
		VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			company_name = EXCLUDED.company_name,
			company_address = EXCLUDED.company_address,
			default_currency = EXCLUDED.default_currency,
			receipt_header = EXCLUDED.receipt_header,
			receipt_footer = EXCLUDED.receipt_footer,
			enable_notifications = EXCLUDED.enable_notifications,
			language = EXCLUDED.language,
			date_format = EXCLUDED.date_format,
			time_format = EXCLUDED.time_format,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.Pool.Exec(ctx, query,
		s.CompanyName,
		s.CompanyAddress,
		s.DefaultCurrency,
		s.ReceiptHeader,
		s.ReceiptFooter,
		s.EnableNotifications,
		s.Language,
		s.DateFormat,
		s.TimeFormat,
		s.LastUpdatedAt,
		s.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
