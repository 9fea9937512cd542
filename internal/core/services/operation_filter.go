package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/caisse_manager/internal/apperrors"
	"github.com/SscSPs/caisse_manager/internal/core/domain"
)

// operationFilter selects operations of the ledger log. Zero fields match everything.
// Dates are whole days: EndDate includes the entire day.
type operationFilter struct {
	LocationID string
	Type       domain.OperationType
	Source     string
	StartDate  *time.Time
	EndDate    *time.Time
	IsSigned   *bool
}

func newOperationFilter(locationID, opType, source string, start, end *time.Time, signed *bool) (operationFilter, error) {
	f := operationFilter{
		LocationID: locationID,
		Source:     source,
		StartDate:  start,
		EndDate:    end,
		IsSigned:   signed,
	}
	if opType != "" {
		f.Type = domain.OperationType(opType)
		if !f.Type.Valid() {
			return operationFilter{}, apperrors.NewValidationFailedError(fmt.Sprintf("invalid operation type %q", opType))
		}
	}
	if start != nil && end != nil && end.Before(*start) {
		return operationFilter{}, apperrors.NewValidationFailedError("endDate must not be before startDate")
	}
	return f, nil
}

func (f operationFilter) matches(op domain.Operation) bool {
	if f.LocationID != "" && op.LocationID != f.LocationID {
		return false
	}
	if f.Type != "" && op.Type != f.Type {
		return false
	}
	if f.Source != "" && op.Source != f.Source {
		return false
	}
	if f.IsSigned != nil && op.IsSigned != *f.IsSigned {
		return false
	}
	if f.StartDate != nil && op.Date.Before(startOfDay(*f.StartDate)) {
		return false
	}
	if f.EndDate != nil && !op.Date.Before(startOfDay(*f.EndDate).AddDate(0, 0, 1)) {
		return false
	}
	return true
}

func (f operationFilter) apply(ops []domain.Operation) []domain.Operation {
	out := make([]domain.Operation, 0, len(ops))
	for _, op := range ops {
		if f.matches(op) {
			out = append(out, op)
		}
	}
	return out
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// sortNewestFirst orders by date descending, then id descending.
func sortNewestFirst(ops []domain.Operation) {
	sort.SliceStable(ops, func(i, j int) bool {
		if ops[i].Date.Equal(ops[j].Date) {
			return ops[i].OperationID > ops[j].OperationID
		}
		return ops[i].Date.After(ops[j].Date)
	})
}

// sortChronological orders by date ascending, then id ascending.
func sortChronological(ops []domain.Operation) {
	sort.SliceStable(ops, func(i, j int) bool {
		if ops[i].Date.Equal(ops[j].Date) {
			return ops[i].OperationID < ops[j].OperationID
		}
		return ops[i].Date.Before(ops[j].Date)
	})
}
