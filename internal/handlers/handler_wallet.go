package handlers

import (
	"net/http"
	"strconv"

	portssvc "github.com/blockflow/ledger_service/internal/core/ports/services"
	"github.com/blockflow/ledger_service/internal/dto"
	"github.com/gin-gonic/gin"
)

type WalletHandler struct {
	walletService      portssvc.WalletSvc
	reservationService portssvc.ReservationSvc
}

func NewWalletHandler(walletService portssvc.WalletSvc, reservationService portssvc.ReservationSvc) *WalletHandler {
	return &WalletHandler{walletService: walletService, reservationService: reservationService}
}

func parseUserID(c *gin.Context) (int64, bool) {
	userID, err := strconv.ParseInt(c.Param("userID"), 10, 64)
	if err != nil || userID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return 0, false
	}
	return userID, true
}

// Deposit credits a user's available balance from the external bank account.
func (h *WalletHandler) Deposit(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}
	var req dto.MoveFundsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	txID, err := h.walletService.Deposit(c.Request.Context(), userID, req.Currency, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.TransactionResponse{TxID: txID})
}

// Withdraw debits a user's available balance back to the external bank account.
func (h *WalletHandler) Withdraw(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}
	var req dto.MoveFundsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	txID, err := h.walletService.Withdraw(c.Request.Context(), userID, req.Currency, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.TransactionResponse{TxID: txID})
}

// Reserve earmarks funds from available to reserved.
func (h *WalletHandler) Reserve(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}
	var req dto.MoveFundsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	txID, err := h.reservationService.Reserve(c.Request.Context(), userID, req.Currency, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.TransactionResponse{TxID: txID})
}

// Release returns earmarked funds to available.
func (h *WalletHandler) Release(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}
	var req dto.MoveFundsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	txID, err := h.reservationService.Release(c.Request.Context(), userID, req.Currency, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.TransactionResponse{TxID: txID})
}

// GetBalance reads the materialized wallet balance. An unreferenced
// wallet reads as zero balances.
func (h *WalletHandler) GetBalance(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}
	currency := c.Param("currency")

	wallet, err := h.walletService.GetBalance(c.Request.Context(), userID, currency)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBalanceResponse(wallet))
}
