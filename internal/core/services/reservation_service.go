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

// ReservationService earmarks funds for pending actions. Reserve moves
// funds from available to reserved, Release moves them back. Both are thin pairs
// of balanced entries over the poster and hold no state of their own:
// calling either twice posts two independent, auditable transactions, so
// callers must track their reservations and release each at most once.
type ReservationService struct {
	posting portssvc.PostingSvc
	metrics *metrics.Metrics
}

// NewReservationService creates a new ReservationService.
func NewReservationService(posting portssvc.PostingSvc, m *metrics.Metrics) *ReservationService {
	return &ReservationService{posting: posting, metrics: m}
}

var _ portssvc.ReservationSvc = (*ReservationService)(nil)

func validatePositiveAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive, got %s", apperrors.ErrValidation, amount)
	}
	return nil
}

// Reserve earmarks amount from the user's available balance. Fails with
// ErrInsufficientFunds when the available balance is too low.
func (s *ReservationService) Reserve(ctx context.Context, userID int64, currency string, amount decimal.Decimal) (string, error) {
	if err := validatePositiveAmount(amount); err != nil {
		return "", err
	}

	entries := []domain.Entry{
		{Account: domain.UserReserved(userID, currency), Amount: amount},
		{Account: domain.UserAvailable(userID, currency), Amount: amount.Neg()},
	}
	txID, err := s.posting.PostTransaction(ctx, entries, "reserve", portssvc.PostingOptions{})
	if err != nil {
		s.metrics.IncReservation("reserve", "failed")
		return "", err
	}
	s.metrics.IncReservation("reserve", "ok")
	return txID, nil
}

// Release returns earmarked funds to the available balance. Fails with
// ErrInsufficientFunds when the reserved balance is too low, which
// indicates a caller bug: a reservation released twice or never taken.
func (s *ReservationService) Release(ctx context.Context, userID int64, currency string, amount decimal.Decimal) (string, error) {
	if err := validatePositiveAmount(amount); err != nil {
		return "", err
	}

	entries := []domain.Entry{
		{Account: domain.UserReserved(userID, currency), Amount: amount.Neg()},
		{Account: domain.UserAvailable(userID, currency), Amount: amount},
	}
	txID, err := s.posting.PostTransaction(ctx, entries, "release", portssvc.PostingOptions{})
	if err != nil {
		s.metrics.IncReservation("release", "failed")
		return "", err
	}
	s.metrics.IncReservation("release", "ok")
	return txID, nil
}
