package services

import (
	"context"
	"time"

	"github.com/blockflow/ledger_service/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PostingOptions carries per-call policy flags for the poster.
type PostingOptions struct {
	// AllowNegativeAvailable permits a debit to drive an available
	// balance below zero. Reserved balances can never go negative.
	// Normal operations never set this; it exists for administrative
	// corrections only.
	AllowNegativeAvailable bool
}

// PostingSvc is the transaction poster, the only writer of the ledger
// and wallet tables. Entries must sum to exactly zero.
type PostingSvc interface {
	PostTransaction(ctx context.Context, entries []domain.Entry, ref string, opts PostingOptions) (string, error)
}

// WalletSvc covers deposits, withdrawals and balance reads.
type WalletSvc interface {
	Deposit(ctx context.Context, userID int64, currency string, amount decimal.Decimal) (string, error)
	Withdraw(ctx context.Context, userID int64, currency string, amount decimal.Decimal) (string, error)
	// GetBalance reads the materialized wallet; a wallet that was never
	// referenced reads as zero balances, not an error.
	GetBalance(ctx context.Context, userID int64, currency string) (domain.Wallet, error)
}

// ReservationSvc earmarks funds for a pending action and returns them.
type ReservationSvc interface {
	Reserve(ctx context.Context, userID int64, currency string, amount decimal.Decimal) (string, error)
	Release(ctx context.Context, userID int64, currency string, amount decimal.Decimal) (string, error)
}

// SettlementSvc finalizes a trade: the paying party's reserved funds move
// to the counterparty's available balance, minus a platform fee.
type SettlementSvc interface {
	Settle(ctx context.Context, fromUser, toUser int64, currency string, amount, fee decimal.Decimal) (string, error)
}

// ReconciliationSvc recomputes balances from the ledger and reports any
// divergence from the wallet aggregates. Read-only, lock-free.
type ReconciliationSvc interface {
	Reconcile(ctx context.Context) ([]domain.Discrepancy, error)
	// RunPeriodic runs Reconcile on the interval until ctx is cancelled.
	RunPeriodic(ctx context.Context, interval time.Duration)
}

// LedgerReaderSvc exposes the audit read surface of the ledger.
type LedgerReaderSvc interface {
	Summary(ctx context.Context) (domain.LedgerSummary, error)
	ListEntriesByAccount(ctx context.Context, account string, limit int) ([]domain.LedgerEntry, error)
	// FindEntriesByTxID returns every leg of one logical transaction.
	// An unknown id is ErrNotFound: a posted transaction always has legs.
	FindEntriesByTxID(ctx context.Context, txID string) ([]domain.LedgerEntry, error)
}

// ServiceContainer holds instances of all application services. It is the
// entry point used by the handlers.
type ServiceContainer struct {
	Posting        PostingSvc
	Wallet         WalletSvc
	Reservation    ReservationSvc
	Settlement     SettlementSvc
	Reconciliation ReconciliationSvc
	Ledger         LedgerReaderSvc
}
