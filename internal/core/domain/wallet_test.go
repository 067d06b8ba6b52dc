package domain_test

import (
	"testing"

	"github.com/blockflow/ledger_service/internal/apperrors"
	"github.com/blockflow/ledger_service/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestWalletApply(t *testing.T) {
	w := domain.Wallet{UserID: 1, Currency: "INR", Available: d("1000"), Reserved: d("0")}

	updated, err := w.Apply(domain.WalletDelta{Available: d("-100"), Reserved: d("100")}, false)
	require.NoError(t, err)
	assert.True(t, updated.Available.Equal(d("900")))
	assert.True(t, updated.Reserved.Equal(d("100")))

	// Value receiver: the original is untouched.
	assert.True(t, w.Available.Equal(d("1000")))
	assert.True(t, w.Reserved.IsZero())
}

func TestWalletApplyRejectsOverReserve(t *testing.T) {
	// Two reserves against one funded balance: the first consumes most of
	// the available funds, the second must fail on what remains.
	w := domain.Wallet{UserID: 1, Currency: "INR", Available: d("100"), Reserved: d("0")}
	reserve := domain.WalletDelta{Available: d("-60"), Reserved: d("60")}

	w, err := w.Apply(reserve, false)
	require.NoError(t, err)
	require.True(t, w.Available.Equal(d("40")))

	rejected, err := w.Apply(reserve, false)
	require.ErrorIs(t, err, apperrors.ErrInsufficientFunds)
	assert.Equal(t, domain.Wallet{}, rejected)
	// The winning reservation's state survives unchanged.
	assert.True(t, w.Available.Equal(d("40")))
	assert.True(t, w.Reserved.Equal(d("60")))
}

func TestWalletApplyRejectsNegativeReserved(t *testing.T) {
	w := domain.Wallet{UserID: 2, Currency: "USDT", Available: d("0"), Reserved: d("50")}

	_, err := w.Apply(domain.WalletDelta{Reserved: d("-50.00000001")}, false)
	require.ErrorIs(t, err, apperrors.ErrInsufficientFunds)

	// Reserved stays non-negative even with the available override.
	_, err = w.Apply(domain.WalletDelta{Reserved: d("-50.00000001")}, true)
	require.ErrorIs(t, err, apperrors.ErrInsufficientFunds)
}

func TestWalletApplyNegativeAvailableOverride(t *testing.T) {
	w := domain.Wallet{UserID: 3, Currency: "BTC", Available: d("1"), Reserved: d("0")}
	overdraw := domain.WalletDelta{Available: d("-2")}

	_, err := w.Apply(overdraw, false)
	require.ErrorIs(t, err, apperrors.ErrInsufficientFunds)

	updated, err := w.Apply(overdraw, true)
	require.NoError(t, err)
	assert.True(t, updated.Available.Equal(d("-1")))
}

func TestWalletApplyExactDrain(t *testing.T) {
	w := domain.Wallet{UserID: 4, Currency: "INR", Available: d("25"), Reserved: d("25")}

	updated, err := w.Apply(domain.WalletDelta{Available: d("-25"), Reserved: d("-25")}, false)
	require.NoError(t, err)
	assert.True(t, updated.Available.IsZero())
	assert.True(t, updated.Reserved.IsZero())
}
