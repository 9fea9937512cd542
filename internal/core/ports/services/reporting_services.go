package services

import (
	"context"

	"github.com/SscSPs/caisse_manager/internal/dto"
)

// ReportingSvc aggregates and exports ledger operations.
type ReportingSvc interface {
	Summary(ctx context.Context, params dto.ReportFilterParams) (*dto.SummaryResponse, error)
	Export(ctx context.Context, params dto.ExportParams) (*dto.ExportFile, error)
}
