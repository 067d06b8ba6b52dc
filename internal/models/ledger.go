package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is the DB representation of one ledger row.
// The table is append-only: rows are inserted by the poster and never
// updated or deleted.
type LedgerEntry struct {
	ID        int64           `db:"id"`
	TxID      string          `db:"tx_id"`
	Account   string          `db:"account"`
	Amount    decimal.Decimal `db:"amount"`
	EntryType string          `db:"entry_type"`
	Ref       string          `db:"ref"`
	CreatedAt time.Time       `db:"created_at"`
}
