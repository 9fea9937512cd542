package ledger_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/caisse_manager/internal/apperrors"
	"github.com/SscSPs/caisse_manager/internal/core/domain"
	"github.com/SscSPs/caisse_manager/internal/core/ledger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock Committer ---
type MockCommitter struct {
	mock.Mock
}

func (m *MockCommitter) CommitOperation(ctx context.Context, op domain.Operation) error {
	args := m.Called(ctx, op)
	return args.Error(0)
}

func (m *MockCommitter) CommitSignature(ctx context.Context, op domain.Operation) error {
	args := m.Called(ctx, op)
	return args.Error(0)
}

var _ ledger.Committer = (*MockCommitter)(nil)

// --- Test Suite ---
type LedgerTestSuite struct {
	suite.Suite
	ctx    context.Context
	now    time.Time
	ledger *ledger.Ledger
}

func (suite *LedgerTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.now = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)
	suite.ledger = ledger.New(ledger.WithClock(func() time.Time { return suite.now }))
}

func details(location string, amount int64) ledger.Details {
	return ledger.Details{
		Amount:         decimal.NewFromInt(amount),
		Source:         "Vente",
		PersonInCharge: "Awa",
		CreatedBy:      "user-1",
		LocationID:     location,
	}
}

func (suite *LedgerTestSuite) record(d ledger.Draft) domain.Operation {
	op, err := suite.ledger.RecordOperation(suite.ctx, d)
	suite.Require().NoError(err)
	return op
}

// sumDeltas recomputes a location balance straight from the log.
func (suite *LedgerTestSuite) sumDeltas(location string) decimal.Decimal {
	total := decimal.Zero
	for _, op := range suite.ledger.AllOperations() {
		if op.LocationID == location {
			total = total.Add(op.Type.Delta(op.Amount))
		}
	}
	return total
}

func (suite *LedgerTestSuite) TestRecordOperation_AssignsIdentity() {
	op := suite.record(ledger.NewCashIn(details("L1", 100)))

	suite.EqualValues(1, op.OperationID)
	suite.Equal("ENTREE-0001", op.VoucherNumber)
	suite.Equal(domain.OperationTypeIn, op.Type)
	suite.False(op.IsSigned)
	suite.Nil(op.AttachmentURL)
	suite.Nil(op.RelatedOperationID)
	suite.Equal(suite.now, op.Date, "missing date defaults to record time")
	suite.Equal(suite.now, op.CreatedAt)
}

func (suite *LedgerTestSuite) TestRecordOperation_KeepsBackdatedDate() {
	backdated := suite.now.AddDate(0, 0, -3)
	d := details("L1", 10)
	d.Date = backdated

	op := suite.record(ledger.NewCashOut(d))
	suite.Equal(backdated, op.Date)
	suite.Equal(suite.now, op.CreatedAt)
}

func (suite *LedgerTestSuite) TestVoucherFormatPerType() {
	in := suite.record(ledger.NewCashIn(details("L1", 100)))
	out := suite.record(ledger.NewCashOut(details("L1", 10)))
	ret := suite.record(ledger.NewReturn(out.OperationID, details("L1", 5)))

	suite.Equal("ENTREE-0001", in.VoucherNumber)
	suite.Equal("SORTIE-0001", out.VoucherNumber)
	suite.Equal("RETOUR-0001", ret.VoucherNumber)

	var eleventh domain.Operation
	for i := 0; i < 10; i++ {
		eleventh = suite.record(ledger.NewCashIn(details("L1", 1)))
	}
	suite.Equal("ENTREE-0011", eleventh.VoucherNumber)
}

func (suite *LedgerTestSuite) TestIDsAreLedgerWide() {
	a := suite.record(ledger.NewCashIn(details("L1", 1)))
	b := suite.record(ledger.NewCashOut(details("L2", 1)))
	c := suite.record(ledger.NewCashIn(details("L1", 1)))
	suite.EqualValues(1, a.OperationID)
	suite.EqualValues(2, b.OperationID)
	suite.EqualValues(3, c.OperationID)
}

func (suite *LedgerTestSuite) TestBalanceScenario_InOutReturn() {
	suite.record(ledger.NewCashIn(details("L1", 100)))
	suite.True(suite.ledger.BalanceOf("L1").Equal(decimal.NewFromInt(100)))

	out := suite.record(ledger.NewCashOut(details("L1", 30)))
	suite.True(suite.ledger.BalanceOf("L1").Equal(decimal.NewFromInt(70)))

	ret := suite.record(ledger.NewReturn(out.OperationID, details("L1", 30)))
	suite.True(suite.ledger.BalanceOf("L1").Equal(decimal.NewFromInt(100)))
	suite.Require().NotNil(ret.RelatedOperationID)
	suite.Equal(out.OperationID, *ret.RelatedOperationID)
}

func (suite *LedgerTestSuite) TestBalanceScenario_IndependentLocations() {
	suite.record(ledger.NewCashIn(details("L1", 50)))
	suite.record(ledger.NewCashIn(details("L2", 75)))

	suite.True(suite.ledger.BalanceOf("L1").Equal(decimal.NewFromInt(50)))
	suite.True(suite.ledger.BalanceOf("L2").Equal(decimal.NewFromInt(75)))
	suite.True(suite.ledger.BalanceOf("L3").IsZero())
	suite.Len(suite.ledger.Balances(), 2)
}

func (suite *LedgerTestSuite) TestBalanceReconcilesAfterEveryRecord() {
	amounts := []int64{40, 15, 60, 5, 25}
	var lastOut int64
	for i, amt := range amounts {
		loc := fmt.Sprintf("L%d", i%2)
		var d ledger.Draft
		switch {
		case i%3 == 0:
			d = ledger.NewCashIn(details(loc, amt))
		case lastOut != 0 && i%3 == 2:
			out, _ := suite.ledger.Get(lastOut)
			d = ledger.NewReturn(lastOut, details(out.LocationID, 1))
		default:
			d = ledger.NewCashOut(details(loc, amt))
		}
		op := suite.record(d)
		if op.Type == domain.OperationTypeOut {
			lastOut = op.OperationID
		}
		for _, l := range []string{"L0", "L1"} {
			suite.True(suite.sumDeltas(l).Equal(suite.ledger.BalanceOf(l)), "after op %d at %s", op.OperationID, l)
		}
	}
}

func (suite *LedgerTestSuite) TestRecordOperation_RejectsNonPositiveAmount() {
	for _, amt := range []int64{0, -5} {
		_, err := suite.ledger.RecordOperation(suite.ctx, ledger.NewCashIn(details("L1", amt)))
		suite.ErrorIs(err, apperrors.ErrValidation)
	}
	suite.Zero(suite.ledger.Len())
	next := suite.record(ledger.NewCashIn(details("L1", 1)))
	suite.Equal("ENTREE-0001", next.VoucherNumber, "rejected drafts must not consume vouchers")
}

func (suite *LedgerTestSuite) TestRecordOperation_RejectsSubCentAmount() {
	d := details("L1", 0)
	d.Amount = decimal.RequireFromString("10.005")
	_, err := suite.ledger.RecordOperation(suite.ctx, ledger.NewCashIn(d))
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerTestSuite) TestRecordOperation_RequiresLocation() {
	_, err := suite.ledger.RecordOperation(suite.ctx, ledger.NewCashIn(details("", 10)))
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerTestSuite) TestRecordOperation_RejectsZeroDraft() {
	_, err := suite.ledger.RecordOperation(suite.ctx, ledger.Draft{})
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorIs(err, ledger.ErrUnknownOperationType)
}

func (suite *LedgerTestSuite) TestReturn_MustReferenceExistingOut() {
	in := suite.record(ledger.NewCashIn(details("L1", 100)))

	_, err := suite.ledger.RecordOperation(suite.ctx, ledger.NewReturn(999, details("L1", 10)))
	suite.ErrorIs(err, apperrors.ErrValidation, "missing related operation")

	_, err = suite.ledger.RecordOperation(suite.ctx, ledger.NewReturn(in.OperationID, details("L1", 10)))
	suite.ErrorIs(err, apperrors.ErrValidation, "related operation is a cash-in")
}

func (suite *LedgerTestSuite) TestReturn_MustStayAtSameLocation() {
	out := suite.record(ledger.NewCashOut(details("L1", 40)))
	_, err := suite.ledger.RecordOperation(suite.ctx, ledger.NewReturn(out.OperationID, details("L2", 10)))
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerTestSuite) TestReturn_CannotExceedOutstandingAmount() {
	out := suite.record(ledger.NewCashOut(details("L1", 40)))

	suite.record(ledger.NewReturn(out.OperationID, details("L1", 25)))
	suite.True(suite.ledger.ReturnedAmount(out.OperationID).Equal(decimal.NewFromInt(25)))

	_, err := suite.ledger.RecordOperation(suite.ctx, ledger.NewReturn(out.OperationID, details("L1", 16)))
	suite.ErrorIs(err, apperrors.ErrValidation)

	last := suite.record(ledger.NewReturn(out.OperationID, details("L1", 15)))
	suite.Equal("RETOUR-0002", last.VoucherNumber)
	suite.True(suite.ledger.BalanceOf("L1").IsZero())
}

func (suite *LedgerTestSuite) TestMarkSigned_IsIdempotent() {
	committer := new(MockCommitter)
	committer.On("CommitOperation", mock.Anything, mock.Anything).Return(nil)
	committer.On("CommitSignature", mock.Anything, mock.MatchedBy(func(op domain.Operation) bool {
		return op.IsSigned
	})).Return(nil).Once()
	l := ledger.New(ledger.WithCommitter(committer))

	op, err := l.RecordOperation(suite.ctx, ledger.NewCashIn(details("L1", 10)))
	suite.Require().NoError(err)

	first, err := l.MarkSigned(suite.ctx, op.OperationID)
	suite.Require().NoError(err)
	suite.True(first.IsSigned)

	second, err := l.MarkSigned(suite.ctx, op.OperationID)
	suite.Require().NoError(err)
	suite.True(second.IsSigned)

	committer.AssertNumberOfCalls(suite.T(), "CommitSignature", 1)
	committer.AssertExpectations(suite.T())
}

// Unknown ids are reported as not found instead of being silently ignored.
func (suite *LedgerTestSuite) TestMarkSigned_UnknownIDIsNotFound() {
	_, err := suite.ledger.MarkSigned(suite.ctx, 42)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *LedgerTestSuite) TestAttachFile_SetsURLAndSigns() {
	op := suite.record(ledger.NewCashOut(details("L1", 10)))

	updated, err := suite.ledger.AttachFile(suite.ctx, op.OperationID, "http://x/scan.png")
	suite.Require().NoError(err)
	suite.True(updated.IsSigned)
	suite.Require().NotNil(updated.AttachmentURL)
	suite.Equal("http://x/scan.png", *updated.AttachmentURL)

	stored, err := suite.ledger.Get(op.OperationID)
	suite.Require().NoError(err)
	suite.True(stored.IsSigned)
	suite.Equal("http://x/scan.png", *stored.AttachmentURL)
}

func (suite *LedgerTestSuite) TestAttachFile_OnSignedOperation() {
	op := suite.record(ledger.NewCashIn(details("L1", 10)))
	_, err := suite.ledger.MarkSigned(suite.ctx, op.OperationID)
	suite.Require().NoError(err)

	updated, err := suite.ledger.AttachFile(suite.ctx, op.OperationID, "/uploads/a.pdf")
	suite.Require().NoError(err)
	suite.True(updated.IsSigned)
}

func (suite *LedgerTestSuite) TestAttachFile_OnlyOnce() {
	op := suite.record(ledger.NewCashIn(details("L1", 10)))
	_, err := suite.ledger.AttachFile(suite.ctx, op.OperationID, "/uploads/a.png")
	suite.Require().NoError(err)

	_, err = suite.ledger.AttachFile(suite.ctx, op.OperationID, "/uploads/b.png")
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *LedgerTestSuite) TestAttachFile_Errors() {
	_, err := suite.ledger.AttachFile(suite.ctx, 7, "/uploads/a.png")
	suite.ErrorIs(err, apperrors.ErrNotFound)

	op := suite.record(ledger.NewCashIn(details("L1", 10)))
	_, err = suite.ledger.AttachFile(suite.ctx, op.OperationID, "")
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerTestSuite) TestAllOperations_InsertionOrderAndCopies() {
	d := details("L1", 10)
	d.Date = suite.now.AddDate(0, -1, 0)
	suite.record(ledger.NewCashIn(details("L1", 10)))
	suite.record(ledger.NewCashIn(d))

	ops := suite.ledger.AllOperations()
	suite.Require().Len(ops, 2)
	suite.EqualValues(1, ops[0].OperationID)
	suite.EqualValues(2, ops[1].OperationID)

	ops[0].IsSigned = true
	again, _ := suite.ledger.Get(1)
	suite.False(again.IsSigned, "callers must not be able to mutate the log")
}

func (suite *LedgerTestSuite) TestCommitFailureLeavesStateUntouched() {
	committer := new(MockCommitter)
	committer.On("CommitOperation", mock.Anything, mock.Anything).Return(errors.New("db down")).Once()
	committer.On("CommitOperation", mock.Anything, mock.Anything).Return(nil)
	l := ledger.New(ledger.WithCommitter(committer))

	_, err := l.RecordOperation(suite.ctx, ledger.NewCashIn(details("L1", 10)))
	suite.Require().Error(err)
	suite.Zero(l.Len())
	suite.True(l.BalanceOf("L1").IsZero())

	op, err := l.RecordOperation(suite.ctx, ledger.NewCashIn(details("L1", 10)))
	suite.Require().NoError(err)
	suite.EqualValues(1, op.OperationID)
	suite.Equal("ENTREE-0001", op.VoucherNumber)
}

func (suite *LedgerTestSuite) TestSignatureCommitFailureKeepsUnsigned() {
	committer := new(MockCommitter)
	committer.On("CommitOperation", mock.Anything, mock.Anything).Return(nil)
	committer.On("CommitSignature", mock.Anything, mock.Anything).Return(errors.New("db down"))
	l := ledger.New(ledger.WithCommitter(committer))

	op, err := l.RecordOperation(suite.ctx, ledger.NewCashIn(details("L1", 10)))
	suite.Require().NoError(err)

	_, err = l.AttachFile(suite.ctx, op.OperationID, "/uploads/a.png")
	suite.Require().Error(err)
	stored, _ := l.Get(op.OperationID)
	suite.False(stored.IsSigned)
	suite.Nil(stored.AttachmentURL)
}

func (suite *LedgerTestSuite) TestConcurrentRecordKeepsVouchersUnique() {
	const workers = 100
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			d := details(fmt.Sprintf("L%d", i%3), int64(i%7+1))
			var err error
			if i%2 == 0 {
				_, err = suite.ledger.RecordOperation(suite.ctx, ledger.NewCashIn(d))
			} else {
				_, err = suite.ledger.RecordOperation(suite.ctx, ledger.NewCashOut(d))
			}
			suite.NoError(err)
		}(i)
	}
	wg.Wait()

	ops := suite.ledger.AllOperations()
	suite.Len(ops, workers)
	seen := map[domain.OperationType]map[string]bool{}
	ids := map[int64]bool{}
	for _, op := range ops {
		if seen[op.Type] == nil {
			seen[op.Type] = map[string]bool{}
		}
		suite.False(seen[op.Type][op.VoucherNumber], "duplicate voucher %s", op.VoucherNumber)
		seen[op.Type][op.VoucherNumber] = true
		suite.False(ids[op.OperationID])
		ids[op.OperationID] = true
	}
	for _, loc := range []string{"L0", "L1", "L2"} {
		suite.True(suite.sumDeltas(loc).Equal(suite.ledger.BalanceOf(loc)), loc)
	}
}

func (suite *LedgerTestSuite) TestBalanceObserverSeesBalancesInRecordOrder() {
	var (
		mu   sync.Mutex
		last = map[string]decimal.Decimal{}
		seen int
	)
	l := ledger.New(ledger.WithBalanceObserver(func(locationID string, balance decimal.Decimal) {
		mu.Lock()
		defer mu.Unlock()
		last[locationID] = balance
		seen++
	}))

	const workers = 60
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			d := details(fmt.Sprintf("L%d", i%2), int64(i%5+1))
			var err error
			if i%3 == 0 {
				_, err = l.RecordOperation(suite.ctx, ledger.NewCashOut(d))
			} else {
				_, err = l.RecordOperation(suite.ctx, ledger.NewCashIn(d))
			}
			suite.NoError(err)
		}(i)
	}
	wg.Wait()

	suite.Equal(workers, seen)
	for _, loc := range []string{"L0", "L1"} {
		suite.True(last[loc].Equal(l.BalanceOf(loc)), loc)
	}

	_, err := l.RecordOperation(suite.ctx, ledger.NewCashIn(ledger.Details{LocationID: "L0"}))
	suite.Error(err)
	suite.Equal(workers, seen, "rejected drafts are not observed")
}

func (suite *LedgerTestSuite) TestReplayRestoresCountersAndBalances() {
	related := int64(2)
	history := []domain.Operation{
		{OperationID: 3, Type: domain.OperationTypeReturn, Amount: decimal.NewFromInt(5), LocationID: "L1", VoucherNumber: "RETOUR-0001", RelatedOperationID: &related},
		{OperationID: 1, Type: domain.OperationTypeIn, Amount: decimal.NewFromInt(100), LocationID: "L1", VoucherNumber: "ENTREE-0007"},
		{OperationID: 2, Type: domain.OperationTypeOut, Amount: decimal.NewFromInt(20), LocationID: "L1", VoucherNumber: "SORTIE-0001", IsSigned: true},
	}
	suite.Require().NoError(suite.ledger.Replay(history))

	suite.Equal(3, suite.ledger.Len())
	suite.True(suite.ledger.BalanceOf("L1").Equal(decimal.NewFromInt(85)))
	suite.True(suite.ledger.ReturnedAmount(2).Equal(decimal.NewFromInt(5)))

	next := suite.record(ledger.NewCashIn(details("L1", 1)))
	suite.EqualValues(4, next.OperationID)
	suite.Equal("ENTREE-0008", next.VoucherNumber)

	_, err := suite.ledger.RecordOperation(suite.ctx, ledger.NewReturn(2, details("L1", 16)))
	suite.ErrorIs(err, apperrors.ErrValidation, "only 15 remains outstanding after replay")
}

func (suite *LedgerTestSuite) TestReplayRejectsInconsistentHistory() {
	err := suite.ledger.Replay([]domain.Operation{
		{OperationID: 1, Type: domain.OperationTypeIn, Amount: decimal.NewFromInt(1), LocationID: "L1", VoucherNumber: "SORTIE-0001"},
	})
	suite.Error(err)

	err = suite.ledger.Replay([]domain.Operation{
		{OperationID: 1, Type: domain.OperationTypeIn, Amount: decimal.NewFromInt(1), LocationID: "L1", VoucherNumber: "ENTREE-0001"},
		{OperationID: 1, Type: domain.OperationTypeIn, Amount: decimal.NewFromInt(1), LocationID: "L1", VoucherNumber: "ENTREE-0002"},
	})
	suite.Error(err)
}

func TestLedger(t *testing.T) {
	suite.Run(t, new(LedgerTestSuite))
}
