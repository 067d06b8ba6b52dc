package repositories

import (
	"context"
	"time"

	"github.com/blockflow/ledger_service/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PostingRepository is the single write path into the ledger and wallet
// tables. SavePosting applies one transaction as an atomic unit of work:
// it locks the wallet rows named by deltas (creating missing rows with
// zero balances), applies the per-bucket deltas, appends the entries to
// the ledger, and commits. Deltas must arrive pre-sorted by wallet key;
// locks are taken in slice order. Either every row is written or none is.
//
// Returns apperrors.ErrInsufficientFunds (wrapped) when a delta would
// drive reserved, or available without the override, below zero.
type PostingRepository interface {
	SavePosting(ctx context.Context, entries []domain.LedgerEntry, deltas []domain.WalletDelta, allowNegativeAvailable bool) error
}

// LedgerRepository exposes read access to the append-only entry history.
type LedgerRepository interface {
	// SumByAccount replays one account's history up to asOf.
	SumByAccount(ctx context.Context, account string, asOf time.Time) (decimal.Decimal, error)

	// SumsByAccount replays every account in one pass, keyed by account string.
	SumsByAccount(ctx context.Context) (map[string]decimal.Decimal, error)

	// ListEntriesByAccount returns an account's entries, newest first.
	ListEntriesByAccount(ctx context.Context, account string, limit int) ([]domain.LedgerEntry, error)

	// FindEntriesByTxID returns all entries of one logical transaction.
	FindEntriesByTxID(ctx context.Context, txID string) ([]domain.LedgerEntry, error)

	// Summary aggregates the whole ledger.
	Summary(ctx context.Context) (domain.LedgerSummary, error)
}

// WalletRepository exposes read access to the materialized balances.
// All mutations go through PostingRepository.
type WalletRepository interface {
	// FindWallet returns nil (not an error) when no row exists yet;
	// a missing wallet reads as zero balances.
	FindWallet(ctx context.Context, key domain.WalletKey) (*domain.Wallet, error)

	// ListWallets returns every wallet row. Used by reconciliation.
	ListWallets(ctx context.Context) ([]domain.Wallet, error)
}

// RepositoryProvider bundles the repositories for dependency injection.
type RepositoryProvider struct {
	PostingRepo PostingRepository
	LedgerRepo  LedgerRepository
	WalletRepo  WalletRepository
}
