package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/caisse_manager/internal/core/domain"
	"github.com/SscSPs/caisse_manager/internal/core/ledger"
	portsrepo "github.com/SscSPs/caisse_manager/internal/core/ports/repositories"
	"github.com/SscSPs/caisse_manager/internal/middleware"
	"github.com/SscSPs/caisse_manager/internal/platform/metrics"
)

// repositoryCommitter persists ledger changes through the operation repository.
type repositoryCommitter struct {
	repo portsrepo.OperationWriter
}

// NewLedgerCommitter returns a ledger.Committer writing to repo.
func NewLedgerCommitter(repo portsrepo.OperationWriter) ledger.Committer {
	return &repositoryCommitter{repo: repo}
}

var _ ledger.Committer = (*repositoryCommitter)(nil)

func (c *repositoryCommitter) CommitOperation(ctx context.Context, op domain.Operation) error {
	return c.repo.SaveOperation(ctx, op)
}

func (c *repositoryCommitter) CommitSignature(ctx context.Context, op domain.Operation) error {
	return c.repo.UpdateOperationSignature(ctx, op)
}

// RestoreLedger replays the persisted history into l and publishes the
// resulting balances. It must run before the ledger accepts new operations.
func RestoreLedger(ctx context.Context, repo portsrepo.OperationReader, l *ledger.Ledger) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	ops, err := repo.FindAllOperations(ctx)
	if err != nil {
		return fmt.Errorf("failed to load operation history: %w", err)
	}
	if err := l.Replay(ops); err != nil {
		return fmt.Errorf("failed to replay operation history: %w", err)
	}

	balances := l.Balances()
	for _, b := range balances {
		metrics.SetBalance(b.LocationID, b.Balance)
	}
	logger.Info("Ledger restored",
		slog.Int("operations", len(ops)),
		slog.Int("locations", len(balances)))
	return nil
}
