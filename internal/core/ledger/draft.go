package ledger

import (
	"fmt"
	"time"

	"github.com/SscSPs/caisse_manager/internal/apperrors"
	"github.com/SscSPs/caisse_manager/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Details are the caller supplied fields shared by every kind of operation.
type Details struct {
	Amount         decimal.Decimal
	Source         string
	PersonInCharge string
	Date           time.Time
	Observation    string
	CreatedBy      string
	LocationID     string
}

// Draft is an operation not yet recorded. Build it with NewCashIn, NewCashOut
// or NewReturn; only a return carries a related operation.
type Draft struct {
	Details
	kind      domain.OperationType
	relatedID int64
}

// NewCashIn drafts money entering the drawer.
func NewCashIn(d Details) Draft {
	return Draft{Details: d, kind: domain.OperationTypeIn}
}

// NewCashOut drafts money leaving the drawer.
func NewCashOut(d Details) Draft {
	return Draft{Details: d, kind: domain.OperationTypeOut}
}

// NewReturn drafts money coming back against the cash-out relatedOperationID.
func NewReturn(relatedOperationID int64, d Details) Draft {
	return Draft{Details: d, kind: domain.OperationTypeReturn, relatedID: relatedOperationID}
}

// DraftFor builds the right variant from loosely typed input such as a request body.
func DraftFor(t domain.OperationType, relatedOperationID *int64, d Details) (Draft, error) {
	switch t {
	case domain.OperationTypeIn, domain.OperationTypeOut:
		if relatedOperationID != nil {
			return Draft{}, apperrors.NewValidationFailedError("relatedOperationId is only allowed on return operations")
		}
		if t == domain.OperationTypeIn {
			return NewCashIn(d), nil
		}
		return NewCashOut(d), nil
	case domain.OperationTypeReturn:
		if relatedOperationID == nil {
			return Draft{}, apperrors.NewValidationFailedError("return operations require relatedOperationId")
		}
		return NewReturn(*relatedOperationID, d), nil
	}
	return Draft{}, fmt.Errorf("%w: %w", apperrors.ErrValidation, fmt.Errorf("%w: %q", ErrUnknownOperationType, t))
}

// Type returns the operation type of the draft.
func (d Draft) Type() domain.OperationType {
	return d.kind
}

// RelatedOperationID returns the offset cash-out for a return draft.
func (d Draft) RelatedOperationID() (int64, bool) {
	return d.relatedID, d.kind == domain.OperationTypeReturn
}
