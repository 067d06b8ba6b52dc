package pgsql

import (
	portsrepo "github.com/blockflow/ledger_service/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		PostingRepo: newPgxPostingRepository(dbPool),
		LedgerRepo:  newPgxLedgerRepository(dbPool),
		WalletRepo:  newPgxWalletRepository(dbPool),
	}
}
