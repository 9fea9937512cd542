package services

import (
	"context"

	"github.com/SscSPs/caisse_manager/internal/core/domain"
	"github.com/SscSPs/caisse_manager/internal/dto"
)

// OperationReaderSvc exposes the read side of the cash ledger.
type OperationReaderSvc interface {
	GetOperation(ctx context.Context, operationID int64) (*domain.Operation, error)

	// ListOperations is the filtered query view, newest date first.
	ListOperations(ctx context.Context, params dto.ListOperationsParams) (*dto.ListOperationsResponse, error)

	GetBalance(ctx context.Context, locationID string) (*domain.LocationBalance, error)
	ListBalances(ctx context.Context) ([]domain.LocationBalance, error)

	// GetVoucher assembles the printable voucher of an operation.
	GetVoucher(ctx context.Context, operationID int64) (*dto.VoucherResponse, error)
}

// OperationWriterSvc records operations and their signatures.
type OperationWriterSvc interface {
	RecordOperation(ctx context.Context, req dto.CreateOperationRequest, creatorUserID string) (*domain.Operation, error)
	MarkSigned(ctx context.Context, operationID int64, requestingUserID string) (*domain.Operation, error)

	// AttachScan validates and stores a signed voucher scan, then attaches it to the operation.
	AttachScan(ctx context.Context, operationID int64, upload dto.AttachmentUpload, requestingUserID string) (*domain.Operation, error)
}

// OperationSvcFacade combines all operation-related service interfaces
type OperationSvcFacade interface {
	OperationReaderSvc
	OperationWriterSvc
}
