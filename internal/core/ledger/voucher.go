package ledger

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/SscSPs/caisse_manager/internal/core/domain"
)

// ErrUnknownOperationType is returned when a type outside in/out/return reaches the ledger.
var ErrUnknownOperationType = errors.New("unknown operation type")

var voucherPrefixes = map[domain.OperationType]string{
	domain.OperationTypeIn:     "ENTREE",
	domain.OperationTypeOut:    "SORTIE",
	domain.OperationTypeReturn: "RETOUR",
}

// FormatVoucherNumber renders seq as PREFIX-NNNN for the given type.
func FormatVoucherNumber(t domain.OperationType, seq int64) (string, error) {
	prefix, ok := voucherPrefixes[t]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownOperationType, t)
	}
	return fmt.Sprintf("%s-%04d", prefix, seq), nil
}

// ParseVoucherNumber is the inverse of FormatVoucherNumber.
func ParseVoucherNumber(voucher string) (domain.OperationType, int64, error) {
	prefix, digits, found := strings.Cut(voucher, "-")
	if !found {
		return "", 0, fmt.Errorf("malformed voucher number %q", voucher)
	}
	seq, err := strconv.ParseInt(digits, 10, 64)
	if err != nil || seq < 1 {
		return "", 0, fmt.Errorf("malformed voucher sequence in %q", voucher)
	}
	for t, p := range voucherPrefixes {
		if p == prefix {
			return t, seq, nil
		}
	}
	return "", 0, fmt.Errorf("%w: voucher prefix %q", ErrUnknownOperationType, prefix)
}

// VoucherAllocator hands out sequential voucher numbers, one independent
// counter per operation type. Counters start at 1 and never go backwards.
type VoucherAllocator struct {
	mu       sync.Mutex
	counters map[domain.OperationType]int64
}

// NewVoucherAllocator returns an allocator with every counter at 1.
func NewVoucherAllocator() *VoucherAllocator {
	counters := make(map[domain.OperationType]int64, len(voucherPrefixes))
	for t := range voucherPrefixes {
		counters[t] = 1
	}
	return &VoucherAllocator{counters: counters}
}

// Next returns the next voucher number for t and advances its counter.
func (a *VoucherAllocator) Next(t domain.OperationType) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	voucher, err := FormatVoucherNumber(t, a.counters[t])
	if err != nil {
		return "", err
	}
	a.counters[t]++
	return voucher, nil
}

// Peek returns the voucher number Next would return without consuming it.
func (a *VoucherAllocator) Peek(t domain.OperationType) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return FormatVoucherNumber(t, a.counters[t])
}

// Restore makes sure the counter for t continues after seq. It never lowers a counter.
func (a *VoucherAllocator) Restore(t domain.OperationType, seq int64) error {
	if _, ok := voucherPrefixes[t]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownOperationType, t)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if seq+1 > a.counters[t] {
		a.counters[t] = seq + 1
	}
	return nil
}
