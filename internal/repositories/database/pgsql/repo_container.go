package pgsql

import (
	portsrepo "github.com/SscSPs/drive_thru_order_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider pairs the session ledger with the Postgres-backed
// archive. A nil dbPool leaves ArchiveRepo unset.
func NewRepositoryProvider(ledger portsrepo.LedgerRepositoryFacade, dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	repos := portsrepo.RepositoryProvider{LedgerRepo: ledger}
	if dbPool != nil {
		repos.ArchiveRepo = NewArchiveRepository(dbPool)
	}
	return repos
}
