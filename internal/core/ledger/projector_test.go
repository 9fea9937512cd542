package ledger

import (
	"testing"
	"time"

	"github.com/SscSPs/caisse_manager/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBalanceProjector_Deltas(t *testing.T) {
	p := NewBalanceProjector()
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, p.Apply("L1", domain.OperationTypeIn, decimal.NewFromInt(100), at))
	assert.True(t, p.BalanceOf("L1").Equal(decimal.NewFromInt(100)))

	require.NoError(t, p.Apply("L1", domain.OperationTypeOut, decimal.NewFromInt(30), at.Add(time.Minute)))
	assert.True(t, p.BalanceOf("L1").Equal(decimal.NewFromInt(70)))

	require.NoError(t, p.Apply("L1", domain.OperationTypeReturn, decimal.NewFromInt(30), at.Add(2*time.Minute)))
	assert.True(t, p.BalanceOf("L1").Equal(decimal.NewFromInt(100)))

	snap, ok := p.Snapshot("L1")
	require.True(t, ok)
	assert.Equal(t, at.Add(2*time.Minute), snap.LastUpdated)
}

func TestBalanceProjector_UnknownLocationIsZero(t *testing.T) {
	p := NewBalanceProjector()
	assert.True(t, p.BalanceOf("nowhere").IsZero())
	_, ok := p.Snapshot("nowhere")
	assert.False(t, ok)
	assert.Empty(t, p.All())
}

func TestBalanceProjector_CanGoNegative(t *testing.T) {
	p := NewBalanceProjector()
	require.NoError(t, p.Apply("L1", domain.OperationTypeOut, decimal.RequireFromString("12.50"), time.Now()))
	assert.Equal(t, "-12.50", p.BalanceOf("L1").StringFixed(2))
}

func TestBalanceProjector_RejectsUnknownType(t *testing.T) {
	p := NewBalanceProjector()
	err := p.Apply("L1", domain.OperationType("gift"), decimal.NewFromInt(1), time.Now())
	assert.ErrorIs(t, err, ErrUnknownOperationType)
	assert.Empty(t, p.All())
}

func TestBalanceProjector_AllSorted(t *testing.T) {
	p := NewBalanceProjector()
	now := time.Now()
	require.NoError(t, p.Apply("L2", domain.OperationTypeIn, decimal.NewFromInt(75), now))
	require.NoError(t, p.Apply("L1", domain.OperationTypeIn, decimal.NewFromInt(50), now))

	all := p.All()
	require.Len(t, all, 2)
	assert.Equal(t, "L1", all[0].LocationID)
	assert.Equal(t, "L2", all[1].LocationID)
}
