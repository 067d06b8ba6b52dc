package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/blockflow/ledger_service/internal/apperrors"
	"github.com/blockflow/ledger_service/internal/middleware"
	"github.com/gin-gonic/gin"
)

// respondError maps service errors to HTTP statuses. Business rejections
// (unbalanced entries, insufficient funds) get distinct statuses so
// callers can tell an expected outcome from an infrastructure failure,
// where the only guarantee is that nothing was committed.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrInsufficientFunds):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrUnbalanced):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("request failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
