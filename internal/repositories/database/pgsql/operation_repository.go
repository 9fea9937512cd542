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
	"github.com/shopspring/decimal"
)

const operationColumns = `operation_id, type, amount, source, person_in_charge, date, observation, created_by,
	location_id, voucher_number, is_signed, attachment_url, related_operation_id, created_at`

// PgxOperationRepository stores the append-only operation log. Rows are
// inserted once; only the signature columns are ever updated.
type PgxOperationRepository struct {
	BaseRepository
}

func newPgxOperationRepository(db *pgxpool.Pool) portsrepo.OperationRepositoryFacade {
	return &PgxOperationRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.OperationRepositoryFacade = (*PgxOperationRepository)(nil)

func (r *PgxOperationRepository) FindAllOperations(ctx context.Context) ([]domain.Operation, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+operationColumns+` FROM operations ORDER BY operation_id;`)
	if err != nil {
		return nil, fmt.Errorf("failed to query operations: %w", err)
	}
	ops, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Operation])
	if err != nil {
		return nil, fmt.Errorf("failed to scan operation rows: %w", err)
	}
	return ops, nil
}

// SaveOperation inserts op. For a return, the related cash-out row is locked
// and the outstanding amount is checked again so concurrent instances cannot
// over-return the same cash-out.
func (r *PgxOperationRepository) SaveOperation(ctx context.Context, op domain.Operation) error {
	return r.WithTx(ctx, func(tx pgx.Tx) error {
		if op.RelatedOperationID != nil {
			if err := checkReturnable(ctx, tx, *op.RelatedOperationID, op.Amount); err != nil {
				return err
			}
		}

		query := `
			INSERT INTO operations (` + operationColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
		`
		_, err := tx.Exec(ctx, query,
			op.OperationID,
			op.Type,
			op.Amount,
			op.Source,
			op.PersonInCharge,
			op.Date,
			op.Observation,
			op.CreatedBy,
			op.LocationID,
			op.VoucherNumber,
			op.IsSigned,
			op.AttachmentURL,
			op.RelatedOperationID,
			op.CreatedAt,
		)
		if err != nil {
			switch code, constraint := pgErrorCode(err); code {
			case pgUniqueViolation:
				return apperrors.NewConflictError(fmt.Sprintf("operation %d or voucher %s already recorded (%s)", op.OperationID, op.VoucherNumber, constraint))
			case pgForeignKeyViolation:
				return apperrors.NewValidationFailedError(fmt.Sprintf("operation references a missing row (%s)", constraint))
			}
			return fmt.Errorf("failed to insert operation: %w", err)
		}
		return nil
	})
}

func checkReturnable(ctx context.Context, tx pgx.Tx, outID int64, amount decimal.Decimal) error {
	var (
		opType domain.OperationType
		total  decimal.Decimal
	)
	err := tx.QueryRow(ctx, `SELECT type, amount FROM operations WHERE operation_id = $1 FOR UPDATE;`, outID).Scan(&opType, &total)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewValidationFailedError(fmt.Sprintf("related operation %d does not exist", outID))
		}
		return fmt.Errorf("failed to lock related operation: %w", err)
	}
	if opType != domain.OperationTypeOut {
		return apperrors.NewValidationFailedError(fmt.Sprintf("related operation %d is not a cash-out", outID))
	}

	var returned decimal.Decimal
	err = tx.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM operations WHERE related_operation_id = $1 AND type = 'return';`,
		outID).Scan(&returned)
	if err != nil {
		return fmt.Errorf("failed to sum returns: %w", err)
	}
	return checkOutstanding(outID, total, returned, amount)
}

// checkOutstanding rejects a return larger than what is still outstanding on
// the cash-out, with the same validation class the ledger uses.
func checkOutstanding(outID int64, total, returned, amount decimal.Decimal) error {
	remaining := total.Sub(returned)
	if amount.GreaterThan(remaining) {
		return apperrors.NewValidationFailedError(fmt.Sprintf("return of %s exceeds the %s still outstanding on operation %d",
			amount.StringFixed(2), remaining.StringFixed(2), outID))
	}
	return nil
}

func (r *PgxOperationRepository) UpdateOperationSignature(ctx context.Context, op domain.Operation) error {
	query := `
		UPDATE operations
		SET is_signed = $1, attachment_url = COALESCE(attachment_url, $2)
		WHERE operation_id = $3;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, op.IsSigned, op.AttachmentURL, op.OperationID)
	if err != nil {
		return fmt.Errorf("failed to update operation signature: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("operation %d", op.OperationID))
	}
	return nil
}
