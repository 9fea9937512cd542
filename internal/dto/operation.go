package dto

import (
	"io"
	"time"

	"github.com/SscSPs/caisse_manager/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateOperationRequest records a cash-in, cash-out or return.
// The ledger checks the amount again when the operation is recorded.
type CreateOperationRequest struct {
	Type               domain.OperationType `json:"type" binding:"required,optype"`
	Amount             decimal.Decimal      `json:"amount" binding:"required,money"`
	Source             string               `json:"source" binding:"required"`
	PersonInCharge     string               `json:"personInCharge" binding:"required"`
	Date               *time.Time           `json:"date"`
	Observation        string               `json:"observation"`
	LocationID         string               `json:"locationId" binding:"required"`
	RelatedOperationID *int64               `json:"relatedOperationId"`
}

// ListOperationsParams defines the filters and pagination of the operation query view.
type ListOperationsParams struct {
	LocationID string     `form:"locationId"`
	Type       string     `form:"type" binding:"omitempty,oneof=in out return"`
	Source     string     `form:"source"`
	StartDate  *time.Time `form:"startDate" time_format:"2006-01-02"`
	EndDate    *time.Time `form:"endDate" time_format:"2006-01-02"`
	IsSigned   *bool      `form:"isSigned"`
	Limit      int        `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken  *string    `form:"nextToken"`
}

// OperationResponse is the wire view of a ledger operation.
type OperationResponse struct {
	ID                 int64                `json:"id"`
	Type               domain.OperationType `json:"type"`
	Amount             decimal.Decimal      `json:"amount"`
	Source             string               `json:"source"`
	PersonInCharge     string               `json:"personInCharge"`
	Date               time.Time            `json:"date"`
	Observation        string               `json:"observation,omitempty"`
	CreatedBy          string               `json:"createdBy"`
	LocationID         string               `json:"locationId"`
	VoucherNumber      string               `json:"voucherNumber"`
	IsSigned           bool                 `json:"isSigned"`
	AttachmentURL      *string              `json:"attachmentUrl,omitempty"`
	RelatedOperationID *int64               `json:"relatedOperationId,omitempty"`
	CreatedAt          time.Time            `json:"createdAt"`
}

// ToOperationResponse converts domain.Operation to DTO.
func ToOperationResponse(op *domain.Operation) OperationResponse {
	return OperationResponse{
		ID:                 op.OperationID,
		Type:               op.Type,
		Amount:             op.Amount,
		Source:             op.Source,
		PersonInCharge:     op.PersonInCharge,
		Date:               op.Date,
		Observation:        op.Observation,
		CreatedBy:          op.CreatedBy,
		LocationID:         op.LocationID,
		VoucherNumber:      op.VoucherNumber,
		IsSigned:           op.IsSigned,
		AttachmentURL:      op.AttachmentURL,
		RelatedOperationID: op.RelatedOperationID,
		CreatedAt:          op.CreatedAt,
	}
}

// ListOperationsResponse is one page of the operation query view.
type ListOperationsResponse struct {
	Operations []OperationResponse `json:"operations"`
	NextToken  *string             `json:"nextToken,omitempty"`
}

// BalanceResponse is the running balance of one location.
type BalanceResponse struct {
	LocationID  string          `json:"locationId"`
	Balance     decimal.Decimal `json:"balance"`
	LastUpdated *time.Time      `json:"lastUpdated,omitempty"`
}

// ToBalanceResponse converts domain.LocationBalance to DTO; a never used location has no lastUpdated.
func ToBalanceResponse(b domain.LocationBalance) BalanceResponse {
	resp := BalanceResponse{LocationID: b.LocationID, Balance: b.Balance}
	if !b.LastUpdated.IsZero() {
		at := b.LastUpdated
		resp.LastUpdated = &at
	}
	return resp
}

// ListBalancesResponse wraps every location balance.
type ListBalancesResponse struct {
	Balances []BalanceResponse `json:"balances"`
}

// VoucherResponse carries everything needed to print a voucher.
type VoucherResponse struct {
	Operation        OperationResponse  `json:"operation"`
	TypeLabel        string             `json:"typeLabel"`
	Currency         string             `json:"currency"`
	FormattedAmount  string             `json:"formattedAmount"`
	AmountInWords    string             `json:"amountInWords"`
	FormattedDate    string             `json:"formattedDate"`
	Location         *LocationResponse  `json:"location,omitempty"`
	RelatedOperation *OperationResponse `json:"relatedOperation,omitempty"`
	CompanyName      string             `json:"companyName"`
	CompanyAddress   string             `json:"companyAddress"`
	ReceiptHeader    string             `json:"receiptHeader"`
	ReceiptFooter    string             `json:"receiptFooter"`
}

// AttachmentUpload is a voucher scan received from a client.
type AttachmentUpload struct {
	FileName string
	Size     int64
	Content  io.Reader
}
