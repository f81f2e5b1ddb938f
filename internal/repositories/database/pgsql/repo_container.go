package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/buildledger/payables_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider constructs all pgx-backed repositories over one
// shared connection pool.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		PayableRepo:  newPgxPayableRepository(pool),
		SequenceRepo: newPgxSequenceRepository(pool),
		JournalRepo:  newPgxJournalRepository(pool),
		AuditRepo:    newPgxAuditRepository(pool),
	}
}
