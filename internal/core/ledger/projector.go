package ledger

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/caisse_manager/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceProjector keeps one running balance per location, derived
// incrementally from the operations applied to it.
type BalanceProjector struct {
	mu       sync.RWMutex
	balances map[string]*domain.LocationBalance
}

// NewBalanceProjector returns an empty projector.
func NewBalanceProjector() *BalanceProjector {
	return &BalanceProjector{balances: make(map[string]*domain.LocationBalance)}
}

// Apply adds the signed delta of an operation to the balance of locationID,
// creating a zero balance first when the location is new.
func (p *BalanceProjector) Apply(locationID string, t domain.OperationType, amount decimal.Decimal, at time.Time) error {
	if !t.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownOperationType, t)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	b, ok := p.balances[locationID]
	if !ok {
		b = &domain.LocationBalance{LocationID: locationID, Balance: decimal.Zero}
		p.balances[locationID] = b
	}
	b.Balance = b.Balance.Add(t.Delta(amount))
	b.LastUpdated = at
	return nil
}

// BalanceOf returns the current balance, zero for a location without operations.
func (p *BalanceProjector) BalanceOf(locationID string) decimal.Decimal {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if b, ok := p.balances[locationID]; ok {
		return b.Balance
	}
	return decimal.Zero
}

// Snapshot returns a copy of the balance entry for locationID.
func (p *BalanceProjector) Snapshot(locationID string) (domain.LocationBalance, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	b, ok := p.balances[locationID]
	if !ok {
		return domain.LocationBalance{LocationID: locationID, Balance: decimal.Zero}, false
	}
	return *b, true
}

// All returns every balance entry ordered by location id.
func (p *BalanceProjector) All() []domain.LocationBalance {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]domain.LocationBalance, 0, len(p.balances))
	for _, b := range p.balances {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LocationID < out[j].LocationID })
	return out
}

func (p *BalanceProjector) reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.balances = make(map[string]*domain.LocationBalance)
}
