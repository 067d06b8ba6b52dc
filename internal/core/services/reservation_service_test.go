package services_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/blockflow/ledger_service/internal/apperrors"
	"github.com/blockflow/ledger_service/internal/core/domain"
	portssvc "github.com/blockflow/ledger_service/internal/core/ports/services"
	"github.com/blockflow/ledger_service/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ReservationServiceTestSuite struct {
	suite.Suite
	mockPosting *MockPostingSvc
	service     *services.ReservationService
	ctx         context.Context
}

func (s *ReservationServiceTestSuite) SetupTest() {
	s.mockPosting = new(MockPostingSvc)
	s.service = services.NewReservationService(s.mockPosting, nil)
	s.ctx = context.Background()
}

func TestReservationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReservationServiceTestSuite))
}

// entriesSum is the poster's invariant restated for the wrappers: every
// entry set they construct must sum to exactly zero.
func entriesSum(entries []domain.Entry) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range entries {
		sum = sum.Add(e.Amount)
	}
	return sum
}

func (s *ReservationServiceTestSuite) TestReserve_PostsBalancedPair() {
	s.mockPosting.On("PostTransaction", s.ctx, mock.Anything, "reserve", portssvc.PostingOptions{}).Return("tx-1", nil).Once()

	txID, err := s.service.Reserve(s.ctx, 42, "USDT", dec("100"))

	s.Require().NoError(err)
	s.Equal("tx-1", txID)

	entries := s.mockPosting.Calls[0].Arguments.Get(1).([]domain.Entry)
	s.Require().Len(entries, 2)
	s.Equal(domain.UserReserved(42, "USDT"), entries[0].Account)
	s.True(entries[0].Amount.Equal(dec("100")))
	s.Equal(domain.UserAvailable(42, "USDT"), entries[1].Account)
	s.True(entries[1].Amount.Equal(dec("-100")))
	s.True(entriesSum(entries).IsZero())
}

func (s *ReservationServiceTestSuite) TestRelease_PostsInversePair() {
	s.mockPosting.On("PostTransaction", s.ctx, mock.Anything, "release", portssvc.PostingOptions{}).Return("tx-2", nil).Once()

	txID, err := s.service.Release(s.ctx, 42, "USDT", dec("100"))

	s.Require().NoError(err)
	s.Equal("tx-2", txID)

	entries := s.mockPosting.Calls[0].Arguments.Get(1).([]domain.Entry)
	s.Require().Len(entries, 2)
	s.Equal(domain.UserReserved(42, "USDT"), entries[0].Account)
	s.True(entries[0].Amount.Equal(dec("-100")))
	s.Equal(domain.UserAvailable(42, "USDT"), entries[1].Account)
	s.True(entries[1].Amount.Equal(dec("100")))
	s.True(entriesSum(entries).IsZero())
}

func (s *ReservationServiceTestSuite) TestReserve_RejectsNonPositiveAmount() {
	for _, amount := range []decimal.Decimal{decimal.Zero, dec("-10")} {
		_, err := s.service.Reserve(s.ctx, 42, "USDT", amount)
		s.Require().ErrorIs(err, apperrors.ErrValidation, "amount %s", amount)
	}
	s.mockPosting.AssertNotCalled(s.T(), "PostTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *ReservationServiceTestSuite) TestRelease_RejectsNonPositiveAmount() {
	_, err := s.service.Release(s.ctx, 42, "USDT", dec("0"))
	s.Require().ErrorIs(err, apperrors.ErrValidation)
	s.mockPosting.AssertNotCalled(s.T(), "PostTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *ReservationServiceTestSuite) TestReserve_InsufficientFundsPropagates() {
	wrapped := fmt.Errorf("%w: available balance of 42/USDT would become -1", apperrors.ErrInsufficientFunds)
	s.mockPosting.On("PostTransaction", s.ctx, mock.Anything, "reserve", portssvc.PostingOptions{}).Return("", wrapped).Once()

	_, err := s.service.Reserve(s.ctx, 42, "USDT", dec("100"))

	s.Require().ErrorIs(err, apperrors.ErrInsufficientFunds)
}
