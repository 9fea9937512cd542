package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/caisse_manager/internal/apperrors"
	"github.com/SscSPs/caisse_manager/internal/core/domain"
	"github.com/SscSPs/caisse_manager/internal/core/ledger"
	portsrepo "github.com/SscSPs/caisse_manager/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/caisse_manager/internal/core/ports/services"
	"github.com/SscSPs/caisse_manager/internal/dto"
	"github.com/SscSPs/caisse_manager/internal/export"
	"github.com/SscSPs/caisse_manager/internal/utils"
	"github.com/shopspring/decimal"
)

// reportingService aggregates the ledger log into totals and export files.
type reportingService struct {
	BaseService
	ledger       *ledger.Ledger
	locationRepo portsrepo.LocationReader
	settings     portssvc.SettingsSvcFacade
	now          func() time.Time
}

// NewReportingService creates a new reporting service
func NewReportingService(l *ledger.Ledger, locationRepo portsrepo.LocationReader, settings portssvc.SettingsSvcFacade) portssvc.ReportingSvc {
	return &reportingService{
		ledger:       l,
		locationRepo: locationRepo,
		settings:     settings,
		now:          time.Now,
	}
}

// Ensure reportingService implements the ReportingSvc interface
var _ portssvc.ReportingSvc = (*reportingService)(nil)

func (s *reportingService) filtered(ctx context.Context, params dto.ReportFilterParams, opType string) ([]domain.Operation, error) {
	if params.LocationID != "" {
		if _, err := s.locationRepo.FindLocationByID(ctx, params.LocationID); err != nil {
			return nil, err
		}
	}
	filter, err := newOperationFilter(params.LocationID, opType, "", params.StartDate, params.EndDate, nil)
	if err != nil {
		return nil, err
	}
	return filter.apply(s.ledger.AllOperations()), nil
}

// Summary totals the operations of each type. Net is the balance movement over the window.
func (s *reportingService) Summary(ctx context.Context, params dto.ReportFilterParams) (*dto.SummaryResponse, error) {
	ops, err := s.filtered(ctx, params, "")
	if err != nil {
		return nil, err
	}

	totals := make(map[domain.OperationType]*dto.TypeTotal, len(domain.OperationTypes))
	for _, t := range domain.OperationTypes {
		totals[t] = &dto.TypeTotal{Type: t, Total: decimal.Zero}
	}
	resp := &dto.SummaryResponse{
		LocationID: params.LocationID,
		StartDate:  params.StartDate,
		EndDate:    params.EndDate,
		Net:        decimal.Zero,
	}
	for _, op := range ops {
		tt := totals[op.Type]
		tt.Total = tt.Total.Add(op.Amount)
		tt.Count++
		resp.Net = resp.Net.Add(op.Type.Delta(op.Amount))
		resp.OperationCount++
		if !op.IsSigned {
			resp.UnsignedCount++
		}
	}
	for _, t := range domain.OperationTypes {
		resp.Totals = append(resp.Totals, *totals[t])
	}

	s.LogDebug(ctx, "Summary report generated",
		slog.String("location_id", params.LocationID),
		slog.Int("operation_count", resp.OperationCount))
	return resp, nil
}

// Export renders the selected operations in chronological order.
func (s *reportingService) Export(ctx context.Context, params dto.ExportParams) (*dto.ExportFile, error) {
	encoder, err := export.EncoderFor(params.Format)
	if err != nil {
		return nil, apperrors.NewValidationFailedError(err.Error())
	}
	ops, err := s.filtered(ctx, params.ReportFilterParams, params.Type)
	if err != nil {
		return nil, err
	}
	sortChronological(ops)

	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	locations, err := s.locationRepo.FindLocations(ctx, false)
	if err != nil {
		s.LogError(ctx, err, "Failed to load locations for export")
		return nil, fmt.Errorf("failed to load locations: %w", err)
	}
	names := make(map[string]string, len(locations))
	for _, l := range locations {
		names[l.LocationID] = l.Name
	}

	rows := make([]export.Row, 0, len(ops))
	for _, op := range ops {
		rows = append(rows, export.NewRow(op, names[op.LocationID], utils.FormatAmount(op.Amount, settings.DefaultCurrency)))
	}

	var buf bytes.Buffer
	if err := encoder.Encode(&buf, rows); err != nil {
		s.LogError(ctx, err, "Failed to encode export", slog.String("format", params.Format))
		return nil, fmt.Errorf("failed to encode export: %w", err)
	}

	s.LogInfo(ctx, "Operations exported",
		slog.String("format", encoder.Extension()),
		slog.Int("rows", len(rows)))
	return &dto.ExportFile{
		FileName:    fmt.Sprintf("operations-%s.%s", s.now().Format("20060102-150405"), encoder.Extension()),
		ContentType: encoder.ContentType(),
		Content:     buf.Bytes(),
	}, nil
}
