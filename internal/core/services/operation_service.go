package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/SscSPs/caisse_manager/internal/apperrors"
	"github.com/SscSPs/caisse_manager/internal/core/domain"
	"github.com/SscSPs/caisse_manager/internal/core/ledger"
	portsrepo "github.com/SscSPs/caisse_manager/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/caisse_manager/internal/core/ports/services"
	"github.com/SscSPs/caisse_manager/internal/dto"
	"github.com/SscSPs/caisse_manager/internal/platform/metrics"
	"github.com/SscSPs/caisse_manager/internal/utils"
	"github.com/SscSPs/caisse_manager/internal/utils/pagination"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

const defaultMaxUploadBytes int64 = 5 * 1024 * 1024

// allowedScanTypes are the media types accepted for signed voucher scans.
var allowedScanTypes = []string{"image/jpeg", "image/png", "image/gif", "application/pdf"}

type operationService struct {
	BaseService
	ledger         *ledger.Ledger
	locationRepo   portsrepo.LocationReader
	settings       portssvc.SettingsSvcFacade
	attachments    portsrepo.AttachmentStore
	maxUploadBytes int64
}

// OperationServiceOption configures the operation service.
type OperationServiceOption func(*operationService)

// WithAttachmentStore enables voucher scan uploads up to maxBytes.
func WithAttachmentStore(store portsrepo.AttachmentStore, maxBytes int64) OperationServiceOption {
	return func(s *operationService) {
		s.attachments = store
		if maxBytes > 0 {
			s.maxUploadBytes = maxBytes
		}
	}
}

// NewOperationService creates the service in front of the cash ledger.
func NewOperationService(
	l *ledger.Ledger,
	locationRepo portsrepo.LocationReader,
	settings portssvc.SettingsSvcFacade,
	opts ...OperationServiceOption,
) portssvc.OperationSvcFacade {
	s := &operationService{
		ledger:         l,
		locationRepo:   locationRepo,
		settings:       settings,
		maxUploadBytes: defaultMaxUploadBytes,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.OperationSvcFacade = (*operationService)(nil)

func (s *operationService) RecordOperation(ctx context.Context, req dto.CreateOperationRequest, creatorUserID string) (*domain.Operation, error) {
	location, err := s.locationRepo.FindLocationByID(ctx, req.LocationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			metrics.OperationsRejected.WithLabelValues("unknown_location").Inc()
			return nil, apperrors.NewValidationFailedError(fmt.Sprintf("location %s does not exist", req.LocationID))
		}
		return nil, err
	}
	if !location.IsActive {
		metrics.OperationsRejected.WithLabelValues("inactive_location").Inc()
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("location %s is inactive", location.Name))
	}

	details := ledger.Details{
		Amount:         req.Amount,
		Source:         req.Source,
		PersonInCharge: req.PersonInCharge,
		Observation:    req.Observation,
		CreatedBy:      creatorUserID,
		LocationID:     req.LocationID,
	}
	if req.Date != nil {
		details.Date = *req.Date
	}
	draft, err := ledger.DraftFor(req.Type, req.RelatedOperationID, details)
	if err != nil {
		metrics.OperationsRejected.WithLabelValues("validation").Inc()
		return nil, err
	}

	op, err := s.ledger.RecordOperation(ctx, draft)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			metrics.OperationsRejected.WithLabelValues("validation").Inc()
			s.LogDebug(ctx, "Operation rejected", slog.String("reason", err.Error()))
			return nil, err
		}
		metrics.OperationsRejected.WithLabelValues("commit").Inc()
		s.LogError(ctx, err, "Failed to record operation",
			slog.String("type", string(req.Type)),
			slog.String("location_id", req.LocationID))
		return nil, err
	}

	metrics.ObserveOperation(string(op.Type), op.Amount)
	s.LogInfo(ctx, "Operation recorded",
		slog.Int64("operation_id", op.OperationID),
		slog.String("voucher", op.VoucherNumber),
		slog.String("type", string(op.Type)),
		slog.String("amount", op.Amount.StringFixed(2)),
		slog.String("location_id", op.LocationID))
	return &op, nil
}

func (s *operationService) GetOperation(ctx context.Context, operationID int64) (*domain.Operation, error) {
	op, err := s.ledger.Get(operationID)
	if err != nil {
		return nil, err
	}
	return &op, nil
}

func (s *operationService) ListOperations(ctx context.Context, params dto.ListOperationsParams) (*dto.ListOperationsResponse, error) {
	filter, err := newOperationFilter(params.LocationID, params.Type, params.Source, params.StartDate, params.EndDate, params.IsSigned)
	if err != nil {
		return nil, err
	}
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	ops := filter.apply(s.ledger.AllOperations())
	sortNewestFirst(ops)

	if params.NextToken != nil && *params.NextToken != "" {
		cursorDate, cursorID, err := pagination.DecodeToken(*params.NextToken)
		if err != nil {
			return nil, apperrors.NewValidationFailedError(err.Error())
		}
		start := len(ops)
		for i, op := range ops {
			if pagination.After(op.Date, op.OperationID, cursorDate, cursorID) {
				start = i
				break
			}
		}
		ops = ops[start:]
	}

	resp := &dto.ListOperationsResponse{Operations: []dto.OperationResponse{}}
	page := ops
	if len(ops) > limit {
		page = ops[:limit]
		last := page[len(page)-1]
		token := pagination.EncodeToken(last.Date, last.OperationID)
		resp.NextToken = &token
	}
	for i := range page {
		resp.Operations = append(resp.Operations, dto.ToOperationResponse(&page[i]))
	}
	return resp, nil
}

func (s *operationService) MarkSigned(ctx context.Context, operationID int64, requestingUserID string) (*domain.Operation, error) {
	op, err := s.ledger.MarkSigned(ctx, operationID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to mark operation signed", slog.Int64("operation_id", operationID))
		}
		return nil, err
	}
	s.LogInfo(ctx, "Operation signed",
		slog.Int64("operation_id", operationID),
		slog.String("voucher", op.VoucherNumber),
		slog.String("signed_by", requestingUserID))
	return &op, nil
}

func (s *operationService) AttachScan(ctx context.Context, operationID int64, upload dto.AttachmentUpload, requestingUserID string) (*domain.Operation, error) {
	if s.attachments == nil {
		return nil, apperrors.NewAppError(http.StatusServiceUnavailable, "attachment storage is not configured", nil)
	}
	if upload.Content == nil {
		return nil, apperrors.NewValidationFailedError("file is required")
	}
	if upload.Size > s.maxUploadBytes {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("file exceeds the %d bytes limit", s.maxUploadBytes))
	}

	// concurrent attaches are caught by AttachFile below
	current, err := s.ledger.Get(operationID)
	if err != nil {
		return nil, err
	}
	if current.AttachmentURL != nil {
		return nil, apperrors.NewConflictError(fmt.Sprintf("operation %s already has an attachment", current.VoucherNumber))
	}

	content, err := io.ReadAll(io.LimitReader(upload.Content, s.maxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(content)) > s.maxUploadBytes {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("file exceeds the %d bytes limit", s.maxUploadBytes))
	}
	if len(content) == 0 {
		return nil, apperrors.NewValidationFailedError("file is empty")
	}

	mtype := mimetype.Detect(content)
	if !mimetype.EqualsAny(mtype.String(), allowedScanTypes...) {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("unsupported file type %s", mtype.String()))
	}

	name := fmt.Sprintf("%s-%s%s", current.VoucherNumber, uuid.NewString()[:8], mtype.Extension())
	url, err := s.attachments.Save(ctx, name, bytes.NewReader(content))
	if err != nil {
		s.LogError(ctx, err, "Failed to store attachment", slog.Int64("operation_id", operationID))
		return nil, fmt.Errorf("failed to store attachment: %w", err)
	}

	op, err := s.ledger.AttachFile(ctx, operationID, url)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			s.LogDebug(ctx, "Attachment lost the race", slog.Int64("operation_id", operationID))
		} else {
			s.LogError(ctx, err, "Failed to attach file", slog.Int64("operation_id", operationID), slog.String("url", url))
		}
		if delErr := s.attachments.Delete(ctx, name); delErr != nil {
			s.LogError(ctx, delErr, "Failed to remove unattached scan", slog.String("name", name))
		}
		return nil, err
	}
	metrics.AttachmentsStored.Inc()
	s.LogInfo(ctx, "Voucher scan attached",
		slog.Int64("operation_id", operationID),
		slog.String("voucher", op.VoucherNumber),
		slog.String("content_type", mtype.String()),
		slog.String("uploaded_by", requestingUserID))
	return &op, nil
}

func (s *operationService) GetBalance(ctx context.Context, locationID string) (*domain.LocationBalance, error) {
	if _, err := s.locationRepo.FindLocationByID(ctx, locationID); err != nil {
		return nil, err
	}
	balance, ok := s.ledger.Balance(locationID)
	if !ok {
		balance = domain.LocationBalance{LocationID: locationID, Balance: s.ledger.BalanceOf(locationID)}
	}
	return &balance, nil
}

func (s *operationService) ListBalances(ctx context.Context) ([]domain.LocationBalance, error) {
	return s.ledger.Balances(), nil
}

func (s *operationService) GetVoucher(ctx context.Context, operationID int64) (*dto.VoucherResponse, error) {
	op, err := s.ledger.Get(operationID)
	if err != nil {
		return nil, err
	}
	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	voucher := &dto.VoucherResponse{
		Operation:       dto.ToOperationResponse(&op),
		TypeLabel:       op.Type.Label(),
		Currency:        settings.DefaultCurrency,
		FormattedAmount: utils.FormatAmount(op.Amount, settings.DefaultCurrency),
		AmountInWords:   utils.AmountInWords(op.Amount, settings.DefaultCurrency),
		FormattedDate:   op.Date.Format(goDateLayout(settings.DateFormat) + " " + goTimeLayout(settings.TimeFormat)),
		CompanyName:     settings.CompanyName,
		CompanyAddress:  settings.CompanyAddress,
		ReceiptHeader:   settings.ReceiptHeader,
		ReceiptFooter:   settings.ReceiptFooter,
	}

	location, err := s.locationRepo.FindLocationByID(ctx, op.LocationID)
	switch {
	case err == nil:
		resp := dto.ToLocationResponse(location)
		voucher.Location = &resp
	case errors.Is(err, apperrors.ErrNotFound):
		s.LogWarn(ctx, "Voucher location missing", slog.String("location_id", op.LocationID))
	default:
		return nil, err
	}

	if op.RelatedOperationID != nil {
		related, err := s.ledger.Get(*op.RelatedOperationID)
		if err == nil {
			resp := dto.ToOperationResponse(&related)
			voucher.RelatedOperation = &resp
		}
	}
	return voucher, nil
}
