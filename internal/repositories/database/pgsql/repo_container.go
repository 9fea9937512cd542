package pgsql

import (
	portsrepo "github.com/SscSPs/caisse_manager/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the postgres repositories. The role cache and
// attachment store are set by the caller.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:      newPgxUserRepository(dbPool),
		LocationRepo:  newPgxLocationRepository(dbPool),
		OperationRepo: newPgxOperationRepository(dbPool),
		SourceRepo:    newPgxSourceRepository(dbPool),
		SettingsRepo:  newPgxSettingsRepository(dbPool),
	}
}
