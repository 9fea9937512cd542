package dto

import (
	"time"

	"github.com/SscSPs/caisse_manager/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportFilterParams narrows reports to a location and a date window (inclusive).
type ReportFilterParams struct {
	LocationID string     `form:"locationId"`
	StartDate  *time.Time `form:"startDate" time_format:"2006-01-02"`
	EndDate    *time.Time `form:"endDate" time_format:"2006-01-02"`
}

// TypeTotal aggregates the operations of one type.
type TypeTotal struct {
	Type  domain.OperationType `json:"type"`
	Total decimal.Decimal      `json:"total"`
	Count int                  `json:"count"`
}

// SummaryResponse is the totals report shown on the dashboard.
type SummaryResponse struct {
	LocationID     string          `json:"locationId,omitempty"`
	StartDate      *time.Time      `json:"startDate,omitempty"`
	EndDate        *time.Time      `json:"endDate,omitempty"`
	Totals         []TypeTotal     `json:"totals"`
	Net            decimal.Decimal `json:"net"`
	OperationCount int             `json:"operationCount"`
	UnsignedCount  int             `json:"unsignedCount"`
}

// ExportParams selects the operations to export and the file format.
type ExportParams struct {
	ReportFilterParams
	Type   string `form:"type" binding:"omitempty,oneof=in out return"`
	Format string `form:"format,default=csv" binding:"oneof=csv yaml xlsx"`
}

// ExportFile is a rendered export ready to be sent as a download.
type ExportFile struct {
	FileName    string
	ContentType string
	Content     []byte
}
