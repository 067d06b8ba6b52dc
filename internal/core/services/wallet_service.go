package services

import (
	"context"
	"time"

	"github.com/blockflow/ledger_service/internal/core/domain"
	portsrepo "github.com/blockflow/ledger_service/internal/core/ports/repositories"
	portssvc "github.com/blockflow/ledger_service/internal/core/ports/services"
	"github.com/blockflow/ledger_service/internal/metrics"
	"github.com/shopspring/decimal"
)

// WalletService handles fund movements across the external boundary
// (deposits and withdrawals against the external bank account) and
// materialized balance reads.
type WalletService struct {
	posting    portssvc.PostingSvc
	walletRepo portsrepo.WalletRepository
	metrics    *metrics.Metrics
}

// NewWalletService creates a new WalletService.
func NewWalletService(posting portssvc.PostingSvc, walletRepo portsrepo.WalletRepository, m *metrics.Metrics) *WalletService {
	return &WalletService{posting: posting, walletRepo: walletRepo, metrics: m}
}

var _ portssvc.WalletSvc = (*WalletService)(nil)

// Deposit credits the user's available balance, with the external bank
// account as the balancing counter-entry.
func (s *WalletService) Deposit(ctx context.Context, userID int64, currency string, amount decimal.Decimal) (string, error) {
	if err := validatePositiveAmount(amount); err != nil {
		return "", err
	}

	entries := []domain.Entry{
		{Account: domain.UserAvailable(userID, currency), Amount: amount},
		{Account: domain.ExternalBank(currency), Amount: amount.Neg()},
	}
	return s.posting.PostTransaction(ctx, entries, "deposit", portssvc.PostingOptions{})
}

// Withdraw debits the user's available balance back to the external bank
// account. Fails with ErrInsufficientFunds when the available balance is
// too low; withdrawals never overdraw.
func (s *WalletService) Withdraw(ctx context.Context, userID int64, currency string, amount decimal.Decimal) (string, error) {
	if err := validatePositiveAmount(amount); err != nil {
		return "", err
	}

	entries := []domain.Entry{
		{Account: domain.UserAvailable(userID, currency), Amount: amount.Neg()},
		{Account: domain.ExternalBank(currency), Amount: amount},
	}
	return s.posting.PostTransaction(ctx, entries, "withdrawal", portssvc.PostingOptions{})
}

// GetBalance reads the wallet aggregate. A wallet that was never
// referenced reads as zero balances rather than an error, so onboarding
// is idempotent.
func (s *WalletService) GetBalance(ctx context.Context, userID int64, currency string) (domain.Wallet, error) {
	wallet, err := s.walletRepo.FindWallet(ctx, domain.WalletKey{UserID: userID, Currency: currency})
	if err != nil {
		s.metrics.IncBalanceLookup("error")
		return domain.Wallet{}, err
	}
	s.metrics.IncBalanceLookup("success")

	if wallet == nil {
		return domain.Wallet{
			UserID:    userID,
			Currency:  currency,
			Available: decimal.Zero,
			Reserved:  decimal.Zero,
			UpdatedAt: time.Time{},
		}, nil
	}
	return *wallet, nil
}
