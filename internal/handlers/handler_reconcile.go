package handlers

import (
	"net/http"

	portssvc "github.com/blockflow/ledger_service/internal/core/ports/services"
	"github.com/blockflow/ledger_service/internal/dto"
	"github.com/gin-gonic/gin"
)

type ReconcileHandler struct {
	reconciliationService portssvc.ReconciliationSvc
}

func NewReconcileHandler(reconciliationService portssvc.ReconciliationSvc) *ReconcileHandler {
	return &ReconcileHandler{reconciliationService: reconciliationService}
}

// Reconcile triggers one on-demand audit run comparing wallet aggregates
// against the replayed ledger. It reports drift but never corrects it.
func (h *ReconcileHandler) Reconcile(c *gin.Context) {
	discrepancies, err := h.reconciliationService.Reconcile(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToReconcileResponse(discrepancies))
}
