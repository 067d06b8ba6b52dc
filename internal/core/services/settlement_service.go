package services

import (
	"context"
	"fmt"

	"github.com/blockflow/ledger_service/internal/apperrors"
	"github.com/blockflow/ledger_service/internal/core/domain"
	portssvc "github.com/blockflow/ledger_service/internal/core/ports/services"
	"github.com/blockflow/ledger_service/internal/metrics"
	"github.com/shopspring/decimal"
)

// SettlementService finalizes trades. A settlement moves amount out of
// the paying party's reserved balance, credits amount-fee to the
// counterparty's available balance, and credits the fee to the platform
// account. The legs sum to zero by construction. If the payer's
// reserved balance is short the whole
// settlement is rejected; a trade never partially settles.
type SettlementService struct {
	posting portssvc.PostingSvc
	metrics *metrics.Metrics
}

// NewSettlementService creates a new SettlementService.
func NewSettlementService(posting portssvc.PostingSvc, m *metrics.Metrics) *SettlementService {
	return &SettlementService{posting: posting, metrics: m}
}

var _ portssvc.SettlementSvc = (*SettlementService)(nil)

// Settle posts the settlement transaction and returns its id.
//
// The fee is truncated toward zero at the ledger's fixed precision
// before the legs are built, so any sub-precision remainder stays with
// the receiving party rather than producing an unbalanced set. Zero fee
// omits the platform leg entirely.
func (s *SettlementService) Settle(ctx context.Context, fromUser, toUser int64, currency string, amount, fee decimal.Decimal) (string, error) {
	if err := validatePositiveAmount(amount); err != nil {
		return "", err
	}
	if fee.IsNegative() {
		return "", fmt.Errorf("%w: fee must not be negative, got %s", apperrors.ErrValidation, fee)
	}
	fee = fee.Truncate(amountPrecision)
	if fee.GreaterThan(amount) {
		return "", fmt.Errorf("%w: fee %s exceeds settlement amount %s", apperrors.ErrValidation, fee, amount)
	}
	if fromUser == toUser {
		return "", fmt.Errorf("%w: settlement requires distinct parties", apperrors.ErrValidation)
	}

	entries := []domain.Entry{
		{Account: domain.UserReserved(fromUser, currency), Amount: amount.Neg()},
	}
	// Either leg can be zero (fee == 0, or fee == amount); zero legs are
	// omitted rather than posted as no-op rows.
	if net := amount.Sub(fee); !net.IsZero() {
		entries = append(entries, domain.Entry{Account: domain.UserAvailable(toUser, currency), Amount: net})
	}
	if !fee.IsZero() {
		entries = append(entries, domain.Entry{Account: domain.PlatformFees(currency), Amount: fee})
	}

	txID, err := s.posting.PostTransaction(ctx, entries, "settle", portssvc.PostingOptions{})
	if err != nil {
		s.metrics.IncSettlement("failed")
		return "", err
	}
	s.metrics.IncSettlement("ok")
	return txID, nil
}
