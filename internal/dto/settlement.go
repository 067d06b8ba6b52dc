package dto

import (
	"github.com/shopspring/decimal"
)

// SettleRequest finalizes a trade between two users.
type SettleRequest struct {
	FromUserID int64           `json:"fromUserID" binding:"required,gt=0"`
	ToUserID   int64           `json:"toUserID" binding:"required,gt=0"`
	Currency   string          `json:"currency" binding:"required,uppercase,min=2,max=10"`
	Amount     decimal.Decimal `json:"amount" binding:"required,dpositive"`
	Fee        decimal.Decimal `json:"fee" binding:"dnonnegative"`
}
