package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/blockflow/ledger_service/internal/apperrors"
	"github.com/shopspring/decimal"
)

// WalletKey identifies one wallet row: the (user, currency) pair.
type WalletKey struct {
	UserID   int64
	Currency string
}

// Less defines the total order used for lock acquisition. Every caller
// that locks multiple wallets must lock them in this order so that
// overlapping transactions cannot form a lock cycle.
func (k WalletKey) Less(other WalletKey) bool {
	if k.UserID != other.UserID {
		return k.UserID < other.UserID
	}
	return k.Currency < other.Currency
}

// Wallet is the materialized available/reserved balance for one
// user+currency pair. Rows are lazily created on first reference and
// mutated in place by the poster under a row lock.
type Wallet struct {
	UserID    int64
	Currency  string
	Available decimal.Decimal
	Reserved  decimal.Decimal
	UpdatedAt time.Time
}

// Key returns the wallet's identifying key.
func (w Wallet) Key() WalletKey {
	return WalletKey{UserID: w.UserID, Currency: w.Currency}
}

// Apply returns the wallet with delta added to both buckets, enforcing
// non-negativity: reserved can never go below zero, available only with
// the explicit override. On rejection the receiver is untouched and the
// zero Wallet is returned, so a caller holding the locked row commits
// either the full delta or nothing.
func (w Wallet) Apply(delta WalletDelta, allowNegativeAvailable bool) (Wallet, error) {
	w.Available = w.Available.Add(delta.Available)
	w.Reserved = w.Reserved.Add(delta.Reserved)

	if w.Reserved.IsNegative() {
		return Wallet{}, fmt.Errorf("%w: reserved balance of %d/%s would become %s",
			apperrors.ErrInsufficientFunds, w.UserID, w.Currency, w.Reserved)
	}
	if w.Available.IsNegative() && !allowNegativeAvailable {
		return Wallet{}, fmt.Errorf("%w: available balance of %d/%s would become %s",
			apperrors.ErrInsufficientFunds, w.UserID, w.Currency, w.Available)
	}
	return w, nil
}

// WalletDelta is the net effect of one transaction on a single wallet
// row, split by bucket.
type WalletDelta struct {
	Key       WalletKey
	Available decimal.Decimal
	Reserved  decimal.Decimal
}

// SortWalletDeltas orders deltas by wallet key. The posting repository
// acquires row locks in slice order, so this sort is what makes lock
// acquisition deterministic across concurrent transactions.
func SortWalletDeltas(deltas []WalletDelta) {
	sort.Slice(deltas, func(i, j int) bool {
		return deltas[i].Key.Less(deltas[j].Key)
	})
}
