package repositories

import (
	"context"

	"github.com/SscSPs/caisse_manager/internal/core/domain"
)

// OperationReader loads persisted ledger history.
type OperationReader interface {
	// FindAllOperations returns every operation ordered by id, used to replay the ledger on startup.
	FindAllOperations(ctx context.Context) ([]domain.Operation, error)
}

// OperationWriter persists ledger changes. Operations are append-only; only
// the signature fields may be updated.
type OperationWriter interface {
	// SaveOperation inserts a new operation. A (type, voucher_number) or id
	// collision is reported as a conflict.
	SaveOperation(ctx context.Context, op domain.Operation) error

	// UpdateOperationSignature persists is_signed and attachment_url.
	UpdateOperationSignature(ctx context.Context, op domain.Operation) error
}

// OperationRepositoryFacade combines all operation-related repository interfaces
type OperationRepositoryFacade interface {
	OperationReader
	OperationWriter
}
