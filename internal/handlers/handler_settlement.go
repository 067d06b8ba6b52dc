package handlers

import (
	"net/http"

	portssvc "github.com/blockflow/ledger_service/internal/core/ports/services"
	"github.com/blockflow/ledger_service/internal/dto"
	"github.com/gin-gonic/gin"
)

type SettlementHandler struct {
	settlementService portssvc.SettlementSvc
}

func NewSettlementHandler(settlementService portssvc.SettlementSvc) *SettlementHandler {
	return &SettlementHandler{settlementService: settlementService}
}

// Settle finalizes a trade: funds move from the payer's reserved balance
// to the counterparty's available balance, minus the platform fee.
func (h *SettlementHandler) Settle(c *gin.Context) {
	var req dto.SettleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	txID, err := h.settlementService.Settle(c.Request.Context(), req.FromUserID, req.ToUserID, req.Currency, req.Amount, req.Fee)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.TransactionResponse{TxID: txID})
}
