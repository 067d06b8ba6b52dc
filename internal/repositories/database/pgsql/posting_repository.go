package pgsql

import (
	"context"
	"time"

	"github.com/blockflow/ledger_service/internal/apperrors"
	"github.com/blockflow/ledger_service/internal/core/domain"
	portsrepo "github.com/blockflow/ledger_service/internal/core/ports/repositories"
	"github.com/blockflow/ledger_service/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxPostingRepository struct {
	BaseRepository
}

// newPgxPostingRepository creates the repository backing the transaction
// poster. It is the only code path that writes ledger_entries or
// wallet_aggregates.
func newPgxPostingRepository(pool *pgxpool.Pool) *PgxPostingRepository {
	return &PgxPostingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PostingRepository = (*PgxPostingRepository)(nil)

func toModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		TxID:      d.TxID,
		Account:   d.Account.String(),
		Amount:    d.Amount,
		EntryType: string(d.EntryType),
		Ref:       d.Ref,
		CreatedAt: d.CreatedAt,
	}
}

// SavePosting applies one transaction as a single atomic unit of work:
// locks the wallet rows in the order given (callers pre-sort by wallet
// key, which is what keeps concurrent overlapping transactions from
// forming a lock cycle), applies the bucket deltas, rejects any delta
// that would drive a bucket negative, appends the ledger entries, and
// commits. Any failure rolls the whole unit back.
func (r *PgxPostingRepository) SavePosting(ctx context.Context, entries []domain.LedgerEntry, deltas []domain.WalletDelta, allowNegativeAvailable bool) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	// Ignored after a successful commit.
	defer r.Rollback(ctx, tx)

	now := time.Now().UTC()

	// 1. Lock wallets in slice order and apply deltas. Rejection returns
	// before any write; the deferred rollback discards rows already
	// updated for earlier deltas in the same set.
	for _, delta := range deltas {
		m, err := lockWalletForUpdate(ctx, tx, delta.Key, now)
		if err != nil {
			return apperrors.NewAppError(500, "failed to lock wallet for posting", err)
		}

		updated, err := toDomainWallet(m).Apply(delta, allowNegativeAvailable)
		if err != nil {
			return err
		}
		m.Available = updated.Available
		m.Reserved = updated.Reserved

		if err := updateWalletBalances(ctx, tx, m, now); err != nil {
			return apperrors.NewAppError(500, "failed to update wallet balances", err)
		}
	}

	// 2. Append the ledger entries in one batch.
	batch := &pgx.Batch{}
	entryQuery := `
		INSERT INTO ledger_entries (tx_id, account, amount, entry_type, ref, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	for _, entry := range entries {
		m := toModelLedgerEntry(entry)
		batch.Queue(entryQuery, m.TxID, m.Account, m.Amount, m.EntryType, m.Ref, m.CreatedAt)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to append ledger entries", err)
	}

	return r.Commit(ctx, tx)
}
