package handlers

import (
	"net/http"
	"strconv"

	portssvc "github.com/blockflow/ledger_service/internal/core/ports/services"
	"github.com/blockflow/ledger_service/internal/dto"
	"github.com/gin-gonic/gin"
)

type LedgerHandler struct {
	ledgerService portssvc.LedgerReaderSvc
}

func NewLedgerHandler(ledgerService portssvc.LedgerReaderSvc) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService}
}

// GetSummary returns the whole-ledger aggregate: entry count, credits,
// debits and the net. A consistent ledger nets to zero.
func (h *LedgerHandler) GetSummary(c *gin.Context) {
	summary, err := h.ledgerService.Summary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToLedgerSummaryResponse(summary))
}

// GetTransaction returns every leg of one posted transaction, so an
// auditor can see the balanced set a single tx_id produced.
func (h *LedgerHandler) GetTransaction(c *gin.Context) {
	txID := c.Param("txID")

	entries, err := h.ledgerService.FindEntriesByTxID(c.Request.Context(), txID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"txID":    txID,
		"entries": dto.ToListLedgerEntryResponse(entries),
	})
}

// ListAccountEntries returns one account's entries, newest first.
func (h *LedgerHandler) ListAccountEntries(c *gin.Context) {
	account := c.Param("account")

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}

	entries, err := h.ledgerService.ListEntriesByAccount(c.Request.Context(), account, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":   len(entries),
		"entries": dto.ToListLedgerEntryResponse(entries),
	})
}
