package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wallet is the DB representation of one wallet_aggregates row,
// keyed by (user_id, currency).
type Wallet struct {
	UserID    int64           `db:"user_id"`
	Currency  string          `db:"currency"`
	Available decimal.Decimal `db:"available"`
	Reserved  decimal.Decimal `db:"reserved"`
	UpdatedAt time.Time       `db:"updated_at"`
}
