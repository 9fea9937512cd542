package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OperationType is the closed set of cash operation categories.
type OperationType string

const (
	OperationTypeIn     OperationType = "in"
	OperationTypeOut    OperationType = "out"
	OperationTypeReturn OperationType = "return"
)

// OperationTypes lists every operation type in display order.
var OperationTypes = []OperationType{OperationTypeIn, OperationTypeOut, OperationTypeReturn}

// Valid reports whether t is one of the three known operation types.
func (t OperationType) Valid() bool {
	switch t {
	case OperationTypeIn, OperationTypeOut, OperationTypeReturn:
		return true
	}
	return false
}

// Label is the key used by vouchers to name the operation category.
func (t OperationType) Label() string {
	switch t {
	case OperationTypeIn:
		return "cashIn"
	case OperationTypeOut:
		return "cashOut"
	case OperationTypeReturn:
		return "cashReturn"
	}
	return string(t)
}

// Delta returns the signed contribution of amount to a location balance.
// Returns add back to the drawer.
func (t OperationType) Delta(amount decimal.Decimal) decimal.Decimal {
	if t == OperationTypeOut {
		return amount.Neg()
	}
	return amount
}

// Operation is one entry of the append-only cash ledger. Only IsSigned and
// AttachmentURL may change after creation.
type Operation struct {
	OperationID        int64           `json:"id" db:"operation_id"`
	Type               OperationType   `json:"type" db:"type"`
	Amount             decimal.Decimal `json:"amount" db:"amount"`
	Source             string          `json:"source" db:"source"`
	PersonInCharge     string          `json:"personInCharge" db:"person_in_charge"`
	Date               time.Time       `json:"date" db:"date"`
	Observation        string          `json:"observation,omitempty" db:"observation"`
	CreatedBy          string          `json:"createdBy" db:"created_by"`
	LocationID         string          `json:"locationId" db:"location_id"`
	VoucherNumber      string          `json:"voucherNumber" db:"voucher_number"`
	IsSigned           bool            `json:"isSigned" db:"is_signed"`
	AttachmentURL      *string         `json:"attachmentUrl,omitempty" db:"attachment_url"`
	RelatedOperationID *int64          `json:"relatedOperationId,omitempty" db:"related_operation_id"`
	CreatedAt          time.Time       `json:"createdAt" db:"created_at"`
}

// LocationBalance is the running cash total of one location.
type LocationBalance struct {
	LocationID  string          `json:"locationId"`
	Balance     decimal.Decimal `json:"balance"`
	LastUpdated time.Time       `json:"lastUpdated"`
}
