package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/blockflow/ledger_service/internal/apperrors"
	"github.com/blockflow/ledger_service/internal/core/domain"
	"github.com/blockflow/ledger_service/internal/core/services"
	"github.com/stretchr/testify/suite"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	mockLedger *MockLedgerRepository
	service    *services.LedgerService
	ctx        context.Context
}

func (s *LedgerServiceTestSuite) SetupTest() {
	s.mockLedger = new(MockLedgerRepository)
	s.service = services.NewLedgerService(s.mockLedger)
	s.ctx = context.Background()
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}

func (s *LedgerServiceTestSuite) TestSummary_Passthrough() {
	summary := domain.LedgerSummary{
		TotalEntries: 4,
		Credits:      dec("150"),
		Debits:       dec("-150"),
		Net:          dec("0"),
	}
	s.mockLedger.On("Summary", s.ctx).Return(summary, nil).Once()

	got, err := s.service.Summary(s.ctx)

	s.Require().NoError(err)
	s.Equal(summary, got)
}

func (s *LedgerServiceTestSuite) TestListEntriesByAccount_RejectsInvalidAccount() {
	_, err := s.service.ListEntriesByAccount(s.ctx, "user:abc:INR:available", 10)

	s.Require().ErrorIs(err, apperrors.ErrValidation)
	s.mockLedger.AssertNotCalled(s.T(), "ListEntriesByAccount")
}

func (s *LedgerServiceTestSuite) TestListEntriesByAccount_DefaultsLimit() {
	account := "user:1:INR:available"
	entries := []domain.LedgerEntry{
		{
			TxID:      "7c9e6679-7425-40de-944b-e07fc1f90ae7",
			Account:   domain.UserAvailable(1, "INR"),
			Amount:    dec("100"),
			EntryType: domain.Credit,
			Ref:       "deposit",
			CreatedAt: time.Now().UTC(),
		},
	}
	s.mockLedger.On("ListEntriesByAccount", s.ctx, account, 100).Return(entries, nil).Once()

	got, err := s.service.ListEntriesByAccount(s.ctx, account, 0)

	s.Require().NoError(err)
	s.Equal(entries, got)
	s.mockLedger.AssertExpectations(s.T())
}

func (s *LedgerServiceTestSuite) TestFindEntriesByTxID_ReturnsAllLegs() {
	txID := "7c9e6679-7425-40de-944b-e07fc1f90ae7"
	entries := []domain.LedgerEntry{
		{TxID: txID, Account: domain.UserReserved(1, "INR"), Amount: dec("-50"), EntryType: domain.Debit, Ref: "settle"},
		{TxID: txID, Account: domain.UserAvailable(2, "INR"), Amount: dec("49"), EntryType: domain.Credit, Ref: "settle"},
		{TxID: txID, Account: domain.PlatformFees("INR"), Amount: dec("1"), EntryType: domain.Credit, Ref: "settle"},
	}
	s.mockLedger.On("FindEntriesByTxID", s.ctx, txID).Return(entries, nil).Once()

	got, err := s.service.FindEntriesByTxID(s.ctx, txID)

	s.Require().NoError(err)
	s.Equal(entries, got)
}

func (s *LedgerServiceTestSuite) TestFindEntriesByTxID_RejectsMalformedID() {
	_, err := s.service.FindEntriesByTxID(s.ctx, "not-a-uuid")

	s.Require().ErrorIs(err, apperrors.ErrValidation)
	s.mockLedger.AssertNotCalled(s.T(), "FindEntriesByTxID")
}

func (s *LedgerServiceTestSuite) TestFindEntriesByTxID_UnknownIDIsNotFound() {
	txID := "0b51b773-48f8-4c47-a1d0-1f6fe6ea4e61"
	s.mockLedger.On("FindEntriesByTxID", s.ctx, txID).Return([]domain.LedgerEntry{}, nil).Once()

	_, err := s.service.FindEntriesByTxID(s.ctx, txID)

	s.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func (s *LedgerServiceTestSuite) TestListEntriesByAccount_ForwardsExplicitLimit() {
	account := "platform:fees:USDT"
	s.mockLedger.On("ListEntriesByAccount", s.ctx, account, 25).Return([]domain.LedgerEntry{}, nil).Once()

	_, err := s.service.ListEntriesByAccount(s.ctx, account, 25)

	s.Require().NoError(err)
	s.mockLedger.AssertExpectations(s.T())
}
