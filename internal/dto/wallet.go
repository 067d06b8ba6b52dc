package dto

import (
	"time"

	"github.com/blockflow/ledger_service/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MoveFundsRequest covers the single-user fund movements: deposit,
// withdraw, reserve and release.
type MoveFundsRequest struct {
	Currency string          `json:"currency" binding:"required,uppercase,min=2,max=10"`
	Amount   decimal.Decimal `json:"amount" binding:"required,dpositive"`
}

// TransactionResponse returns the correlation id of a posted transaction.
type TransactionResponse struct {
	TxID string `json:"txID"`
}

// BalanceResponse mirrors domain.Wallet. Amounts are serialized as
// strings to keep decimal precision out of float territory.
type BalanceResponse struct {
	UserID    int64     `json:"userID"`
	Currency  string    `json:"currency"`
	Available string    `json:"available"`
	Reserved  string    `json:"reserved"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToBalanceResponse converts a domain.Wallet to a BalanceResponse DTO.
func ToBalanceResponse(w domain.Wallet) BalanceResponse {
	return BalanceResponse{
		UserID:    w.UserID,
		Currency:  w.Currency,
		Available: w.Available.String(),
		Reserved:  w.Reserved.String(),
		UpdatedAt: w.UpdatedAt,
	}
}
