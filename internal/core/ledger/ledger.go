package ledger

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/caisse_manager/internal/apperrors"
	"github.com/SscSPs/caisse_manager/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Committer persists ledger changes. It is called while the ledger lock is
// held and before in-memory state moves, so a failed commit changes nothing.
type Committer interface {
	CommitOperation(ctx context.Context, op domain.Operation) error
	CommitSignature(ctx context.Context, op domain.Operation) error
}

// NopCommitter keeps the ledger purely in memory.
type NopCommitter struct{}

func (NopCommitter) CommitOperation(context.Context, domain.Operation) error { return nil }
func (NopCommitter) CommitSignature(context.Context, domain.Operation) error { return nil }

// Option configures a Ledger.
type Option func(*Ledger)

// WithCommitter sets the persistence boundary of the ledger.
func WithCommitter(c Committer) Option {
	return func(l *Ledger) {
		if c != nil {
			l.committer = c
		}
	}
}

// WithClock overrides time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		if now != nil {
			l.now = now
		}
	}
}

// BalanceObserver receives the balance of a location right after an operation
// changes it. It runs under the ledger lock and must not call back into the ledger.
type BalanceObserver func(locationID string, balance decimal.Decimal)

// WithBalanceObserver registers obs for every recorded operation.
func WithBalanceObserver(obs BalanceObserver) Option {
	return func(l *Ledger) {
		l.observer = obs
	}
}

// Ledger is the append-only history of cash operations. It owns the voucher
// counters and the per-location balances; every mutation runs under one mutex
// so ids, vouchers, log and balances always move together.
type Ledger struct {
	mu        sync.Mutex
	nextID    int64
	ops       []domain.Operation
	index     map[int64]int
	returned  map[int64]decimal.Decimal
	vouchers  *VoucherAllocator
	balances  *BalanceProjector
	committer Committer
	observer  BalanceObserver
	now       func() time.Time
}

// New returns an empty ledger.
func New(opts ...Option) *Ledger {
	l := &Ledger{
		nextID:    1,
		index:     make(map[int64]int),
		returned:  make(map[int64]decimal.Decimal),
		vouchers:  NewVoucherAllocator(),
		balances:  NewBalanceProjector(),
		committer: NopCommitter{},
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// RecordOperation finalizes a draft: it assigns the next id and voucher
// number, persists the operation, appends it and projects its balance delta.
func (l *Ledger) RecordOperation(ctx context.Context, d Draft) (domain.Operation, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.validateLocked(d); err != nil {
		return domain.Operation{}, err
	}

	voucher, err := l.vouchers.Peek(d.kind)
	if err != nil {
		return domain.Operation{}, err
	}

	now := l.now()
	date := d.Date
	if date.IsZero() {
		date = now
	}
	op := domain.Operation{
		OperationID:    l.nextID,
		Type:           d.kind,
		Amount:         d.Amount,
		Source:         d.Source,
		PersonInCharge: d.PersonInCharge,
		Date:           date,
		Observation:    d.Observation,
		CreatedBy:      d.CreatedBy,
		LocationID:     d.LocationID,
		VoucherNumber:  voucher,
		IsSigned:       false,
		CreatedAt:      now,
	}
	if related, ok := d.RelatedOperationID(); ok {
		op.RelatedOperationID = &related
	}

	if err := l.committer.CommitOperation(ctx, op); err != nil {
		return domain.Operation{}, fmt.Errorf("failed to commit operation %s: %w", voucher, err)
	}

	if _, err := l.vouchers.Next(d.kind); err != nil {
		return domain.Operation{}, err
	}
	l.appendLocked(op)
	if l.observer != nil {
		l.observer(op.LocationID, l.balances.BalanceOf(op.LocationID))
	}
	return cloneOperation(op), nil
}

func (l *Ledger) validateLocked(d Draft) error {
	if !d.kind.Valid() {
		return fmt.Errorf("%w: %w", apperrors.ErrValidation, fmt.Errorf("%w: %q", ErrUnknownOperationType, d.kind))
	}
	if !d.Amount.IsPositive() {
		return apperrors.NewValidationFailedError("amount must be greater than zero")
	}
	if !d.Amount.Equal(d.Amount.Round(2)) {
		return apperrors.NewValidationFailedError("amount must have at most two decimal places")
	}
	if d.LocationID == "" {
		return apperrors.NewValidationFailedError("locationId is required")
	}

	relatedID, isReturn := d.RelatedOperationID()
	if !isReturn {
		return nil
	}
	i, ok := l.index[relatedID]
	if !ok {
		return apperrors.NewValidationFailedError(fmt.Sprintf("related operation %d does not exist", relatedID))
	}
	related := l.ops[i]
	if related.Type != domain.OperationTypeOut {
		return apperrors.NewValidationFailedError(fmt.Sprintf("related operation %d is not a cash-out", relatedID))
	}
	if related.LocationID != d.LocationID {
		return apperrors.NewValidationFailedError(fmt.Sprintf("related operation %d belongs to another location", relatedID))
	}
	remaining := related.Amount.Sub(l.returned[relatedID])
	if d.Amount.GreaterThan(remaining) {
		return apperrors.NewValidationFailedError(fmt.Sprintf("return of %s exceeds the %s still outstanding on %s",
			d.Amount.StringFixed(2), remaining.StringFixed(2), related.VoucherNumber))
	}
	return nil
}

func (l *Ledger) appendLocked(op domain.Operation) {
	l.index[op.OperationID] = len(l.ops)
	l.ops = append(l.ops, op)
	if op.OperationID >= l.nextID {
		l.nextID = op.OperationID + 1
	}
	if op.Type == domain.OperationTypeReturn && op.RelatedOperationID != nil {
		l.returned[*op.RelatedOperationID] = l.returned[*op.RelatedOperationID].Add(op.Amount)
	}
	// type was validated before reaching here
	_ = l.balances.Apply(op.LocationID, op.Type, op.Amount, op.CreatedAt)
}

// MarkSigned flags the operation as signed. Signing is terminal, so a second
// call returns the operation unchanged without committing again.
func (l *Ledger) MarkSigned(ctx context.Context, operationID int64) (domain.Operation, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	i, ok := l.index[operationID]
	if !ok {
		return domain.Operation{}, apperrors.NewNotFoundError(fmt.Sprintf("operation %d", operationID))
	}
	current := l.ops[i]
	if current.IsSigned {
		return cloneOperation(current), nil
	}

	updated := current
	updated.IsSigned = true
	if err := l.committer.CommitSignature(ctx, updated); err != nil {
		return domain.Operation{}, fmt.Errorf("failed to commit signature of %s: %w", current.VoucherNumber, err)
	}
	l.ops[i] = updated
	return cloneOperation(updated), nil
}

// AttachFile records the scan of the signed voucher and marks the operation signed.
// An operation accepts a single attachment.
func (l *Ledger) AttachFile(ctx context.Context, operationID int64, url string) (domain.Operation, error) {
	if url == "" {
		return domain.Operation{}, apperrors.NewValidationFailedError("attachment url is required")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	i, ok := l.index[operationID]
	if !ok {
		return domain.Operation{}, apperrors.NewNotFoundError(fmt.Sprintf("operation %d", operationID))
	}
	current := l.ops[i]
	if current.AttachmentURL != nil {
		return domain.Operation{}, apperrors.NewConflictError(fmt.Sprintf("operation %s already has an attachment", current.VoucherNumber))
	}

	updated := current
	updated.AttachmentURL = &url
	updated.IsSigned = true
	if err := l.committer.CommitSignature(ctx, updated); err != nil {
		return domain.Operation{}, fmt.Errorf("failed to commit attachment of %s: %w", current.VoucherNumber, err)
	}
	l.ops[i] = updated
	return cloneOperation(updated), nil
}

// Get returns a copy of one operation.
func (l *Ledger) Get(operationID int64) (domain.Operation, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	i, ok := l.index[operationID]
	if !ok {
		return domain.Operation{}, apperrors.NewNotFoundError(fmt.Sprintf("operation %d", operationID))
	}
	return cloneOperation(l.ops[i]), nil
}

// AllOperations returns the full log in insertion order.
func (l *Ledger) AllOperations() []domain.Operation {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]domain.Operation, len(l.ops))
	for i, op := range l.ops {
		out[i] = cloneOperation(op)
	}
	return out
}

// Len returns the number of recorded operations.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.ops)
}

// BalanceOf returns the running balance of a location, zero if it has no operations.
func (l *Ledger) BalanceOf(locationID string) decimal.Decimal {
	return l.balances.BalanceOf(locationID)
}

// Balance returns the balance entry of a location and whether it has any operations.
func (l *Ledger) Balance(locationID string) (domain.LocationBalance, bool) {
	return l.balances.Snapshot(locationID)
}

// Balances returns every location balance ordered by location id.
func (l *Ledger) Balances() []domain.LocationBalance {
	return l.balances.All()
}

// ReturnedAmount is the total already returned against a cash-out.
func (l *Ledger) ReturnedAmount(outOperationID int64) decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.returned[outOperationID]
}

// Replay rebuilds the ledger from persisted history, replacing its current
// state. Operations are applied in id order; the committer is not called.
func (l *Ledger) Replay(ops []domain.Operation) error {
	sorted := make([]domain.Operation, len(ops))
	copy(sorted, ops)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].OperationID < sorted[j].OperationID })

	vouchers := NewVoucherAllocator()
	seen := make(map[int64]bool, len(sorted))
	for _, op := range sorted {
		if seen[op.OperationID] {
			return fmt.Errorf("duplicate operation id %d in history", op.OperationID)
		}
		seen[op.OperationID] = true
		t, seq, err := ParseVoucherNumber(op.VoucherNumber)
		if err != nil {
			return fmt.Errorf("operation %d: %w", op.OperationID, err)
		}
		if t != op.Type {
			return fmt.Errorf("operation %d: voucher %s does not match type %q", op.OperationID, op.VoucherNumber, op.Type)
		}
		if err := vouchers.Restore(t, seq); err != nil {
			return err
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.nextID = 1
	l.ops = make([]domain.Operation, 0, len(sorted))
	l.index = make(map[int64]int, len(sorted))
	l.returned = make(map[int64]decimal.Decimal)
	l.vouchers = vouchers
	l.balances.reset()
	for _, op := range sorted {
		l.appendLocked(cloneOperation(op))
	}
	return nil
}

func cloneOperation(op domain.Operation) domain.Operation {
	if op.AttachmentURL != nil {
		url := *op.AttachmentURL
		op.AttachmentURL = &url
	}
	if op.RelatedOperationID != nil {
		id := *op.RelatedOperationID
		op.RelatedOperationID = &id
	}
	return op
}
