package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/blockflow/ledger_service/internal/apperrors"
	"github.com/blockflow/ledger_service/internal/core/domain"
	portssvc "github.com/blockflow/ledger_service/internal/core/ports/services"
	"github.com/blockflow/ledger_service/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type PostingServiceTestSuite struct {
	suite.Suite
	mockRepo *MockPostingRepository
	service  *services.PostingService
	ctx      context.Context
}

func (s *PostingServiceTestSuite) SetupTest() {
	s.mockRepo = new(MockPostingRepository)
	s.service = services.NewPostingService(s.mockRepo, nil)
	s.ctx = context.Background()
}

func TestPostingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PostingServiceTestSuite))
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func (s *PostingServiceTestSuite) TestPostTransaction_Success() {
	entries := []domain.Entry{
		{Account: domain.UserAvailable(1, "USDT"), Amount: dec("100")},
		{Account: domain.ExternalBank("USDT"), Amount: dec("-100")},
	}

	s.mockRepo.On("SavePosting", s.ctx, mock.AnythingOfType("[]domain.LedgerEntry"), mock.AnythingOfType("[]domain.WalletDelta"), false).Return(nil).Once()

	txID, err := s.service.PostTransaction(s.ctx, entries, "deposit", portssvc.PostingOptions{})

	s.Require().NoError(err)
	s.Require().NotEmpty(txID)
	s.mockRepo.AssertExpectations(s.T())

	savedEntries := s.mockRepo.Calls[0].Arguments.Get(1).([]domain.LedgerEntry)
	s.Require().Len(savedEntries, 2)
	for _, e := range savedEntries {
		s.Equal(txID, e.TxID)
		s.Equal("deposit", e.Ref)
		s.False(e.CreatedAt.IsZero())
	}
	s.Equal(domain.Credit, savedEntries[0].EntryType)
	s.Equal(domain.Debit, savedEntries[1].EntryType)

	deltas := s.mockRepo.Calls[0].Arguments.Get(2).([]domain.WalletDelta)
	s.Require().Len(deltas, 1)
	s.Equal(domain.WalletKey{UserID: 1, Currency: "USDT"}, deltas[0].Key)
	s.True(deltas[0].Available.Equal(dec("100")))
	s.True(deltas[0].Reserved.IsZero())
}

func (s *PostingServiceTestSuite) TestPostTransaction_Unbalanced() {
	entries := []domain.Entry{
		{Account: domain.UserAvailable(1, "USDT"), Amount: dec("100")},
		{Account: domain.ExternalBank("USDT"), Amount: dec("-99.99999999")},
	}

	txID, err := s.service.PostTransaction(s.ctx, entries, "deposit", portssvc.PostingOptions{})

	s.Require().ErrorIs(err, apperrors.ErrUnbalanced)
	s.Empty(txID)
	// Rejected before the store is touched.
	s.mockRepo.AssertNotCalled(s.T(), "SavePosting", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *PostingServiceTestSuite) TestPostTransaction_EmptyEntries() {
	txID, err := s.service.PostTransaction(s.ctx, nil, "deposit", portssvc.PostingOptions{})

	s.Require().ErrorIs(err, apperrors.ErrValidation)
	s.Empty(txID)
	s.mockRepo.AssertNotCalled(s.T(), "SavePosting", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *PostingServiceTestSuite) TestPostTransaction_ZeroAmountEntry() {
	entries := []domain.Entry{
		{Account: domain.UserAvailable(1, "USDT"), Amount: decimal.Zero},
		{Account: domain.ExternalBank("USDT"), Amount: decimal.Zero},
	}

	_, err := s.service.PostTransaction(s.ctx, entries, "deposit", portssvc.PostingOptions{})

	s.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (s *PostingServiceTestSuite) TestPostTransaction_ExcessPrecision() {
	entries := []domain.Entry{
		{Account: domain.UserAvailable(1, "BTC"), Amount: dec("0.000000001")},
		{Account: domain.ExternalBank("BTC"), Amount: dec("-0.000000001")},
	}

	_, err := s.service.PostTransaction(s.ctx, entries, "deposit", portssvc.PostingOptions{})

	s.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (s *PostingServiceTestSuite) TestPostTransaction_InvalidAccount() {
	entries := []domain.Entry{
		{Account: domain.AccountRef{Scope: "user", UserID: -4, Currency: "USDT", Bucket: domain.BucketAvailable}, Amount: dec("5")},
		{Account: domain.ExternalBank("USDT"), Amount: dec("-5")},
	}

	_, err := s.service.PostTransaction(s.ctx, entries, "deposit", portssvc.PostingOptions{})

	s.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (s *PostingServiceTestSuite) TestPostTransaction_DeltasSortedIntoLockOrder() {
	// Entries deliberately touch wallets out of order; the poster must
	// hand them to the repository sorted by (user_id, currency).
	entries := []domain.Entry{
		{Account: domain.UserReserved(3, "USDT"), Amount: dec("-10")},
		{Account: domain.UserAvailable(1, "USDT"), Amount: dec("9")},
		{Account: domain.UserAvailable(2, "USDT"), Amount: dec("0.5")},
		{Account: domain.UserAvailable(1, "INR"), Amount: dec("0.5")},
	}

	s.mockRepo.On("SavePosting", s.ctx, mock.Anything, mock.Anything, false).Return(nil).Once()

	_, err := s.service.PostTransaction(s.ctx, entries, "settle", portssvc.PostingOptions{})
	s.Require().NoError(err)

	deltas := s.mockRepo.Calls[0].Arguments.Get(2).([]domain.WalletDelta)
	s.Require().Len(deltas, 4)
	s.Equal(domain.WalletKey{UserID: 1, Currency: "INR"}, deltas[0].Key)
	s.Equal(domain.WalletKey{UserID: 1, Currency: "USDT"}, deltas[1].Key)
	s.Equal(domain.WalletKey{UserID: 2, Currency: "USDT"}, deltas[2].Key)
	s.Equal(domain.WalletKey{UserID: 3, Currency: "USDT"}, deltas[3].Key)
}

func (s *PostingServiceTestSuite) TestPostTransaction_AggregatesBucketsPerWallet() {
	// Two entries against the same wallet row fold into one delta.
	entries := []domain.Entry{
		{Account: domain.UserReserved(7, "BTC"), Amount: dec("2")},
		{Account: domain.UserAvailable(7, "BTC"), Amount: dec("-2")},
	}

	s.mockRepo.On("SavePosting", s.ctx, mock.Anything, mock.Anything, false).Return(nil).Once()

	_, err := s.service.PostTransaction(s.ctx, entries, "reserve", portssvc.PostingOptions{})
	s.Require().NoError(err)

	deltas := s.mockRepo.Calls[0].Arguments.Get(2).([]domain.WalletDelta)
	s.Require().Len(deltas, 1)
	s.True(deltas[0].Available.Equal(dec("-2")))
	s.True(deltas[0].Reserved.Equal(dec("2")))
}

func (s *PostingServiceTestSuite) TestPostTransaction_PlatformEntriesTouchNoWallet() {
	entries := []domain.Entry{
		{Account: domain.PlatformFees("USDT"), Amount: dec("1")},
		{Account: domain.ExternalBank("USDT"), Amount: dec("-1")},
	}

	s.mockRepo.On("SavePosting", s.ctx, mock.Anything, mock.Anything, false).Return(nil).Once()

	_, err := s.service.PostTransaction(s.ctx, entries, "adjustment", portssvc.PostingOptions{})
	s.Require().NoError(err)

	deltas := s.mockRepo.Calls[0].Arguments.Get(2).([]domain.WalletDelta)
	s.Empty(deltas)
}

func (s *PostingServiceTestSuite) TestPostTransaction_RepoErrorPropagates() {
	entries := []domain.Entry{
		{Account: domain.UserAvailable(1, "USDT"), Amount: dec("100")},
		{Account: domain.ExternalBank("USDT"), Amount: dec("-100")},
	}

	storeErr := errors.New("connection reset")
	s.mockRepo.On("SavePosting", s.ctx, mock.Anything, mock.Anything, false).Return(storeErr).Once()

	txID, err := s.service.PostTransaction(s.ctx, entries, "deposit", portssvc.PostingOptions{})

	s.Require().ErrorIs(err, storeErr)
	s.Empty(txID)
}

func (s *PostingServiceTestSuite) TestPostTransaction_NegativeOverrideForwarded() {
	entries := []domain.Entry{
		{Account: domain.UserAvailable(1, "USDT"), Amount: dec("-50")},
		{Account: domain.ExternalBank("USDT"), Amount: dec("50")},
	}

	s.mockRepo.On("SavePosting", s.ctx, mock.Anything, mock.Anything, true).Return(nil).Once()

	_, err := s.service.PostTransaction(s.ctx, entries, "correction", portssvc.PostingOptions{AllowNegativeAvailable: true})

	s.Require().NoError(err)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *PostingServiceTestSuite) TestPostTransaction_FreshTxIDPerCall() {
	entries := []domain.Entry{
		{Account: domain.UserAvailable(1, "USDT"), Amount: dec("1")},
		{Account: domain.ExternalBank("USDT"), Amount: dec("-1")},
	}

	s.mockRepo.On("SavePosting", s.ctx, mock.Anything, mock.Anything, false).Return(nil).Twice()

	first, err := s.service.PostTransaction(s.ctx, entries, "deposit", portssvc.PostingOptions{})
	s.Require().NoError(err)
	second, err := s.service.PostTransaction(s.ctx, entries, "deposit", portssvc.PostingOptions{})
	s.Require().NoError(err)

	s.NotEqual(first, second)
}
