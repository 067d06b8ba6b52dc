package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType tags an entry as a credit or debit. It is derived from the
// amount's sign and kept for audit readability.
type EntryType string

const (
	Credit EntryType = "credit"
	Debit  EntryType = "debit"
)

// EntryTypeFor derives the entry type from a signed amount.
func EntryTypeFor(amount decimal.Decimal) EntryType {
	if amount.IsPositive() {
		return Credit
	}
	return Debit
}

// Entry is one leg of a transaction as constructed by callers of the
// poster: a signed amount against an account. Positive credits, negative
// debits.
type Entry struct {
	Account AccountRef
	Amount  decimal.Decimal
}

// LedgerEntry is the immutable persisted form of an Entry, correlated to
// the transaction that produced it. Ledger rows are never updated or
// deleted; corrections are posted as new offsetting entries.
type LedgerEntry struct {
	TxID      string
	Account   AccountRef
	Amount    decimal.Decimal
	EntryType EntryType
	Ref       string
	CreatedAt time.Time
}

// LedgerSummary aggregates the whole ledger: entry count, total credits,
// total debits and the net (which is zero for a consistent ledger).
type LedgerSummary struct {
	TotalEntries int64
	Credits      decimal.Decimal
	Debits       decimal.Decimal
	Net          decimal.Decimal
}

// Discrepancy reports one account whose wallet aggregate diverged from
// the replayed ledger history.
type Discrepancy struct {
	Account     AccountRef
	LedgerSum   decimal.Decimal
	WalletValue decimal.Decimal
}
