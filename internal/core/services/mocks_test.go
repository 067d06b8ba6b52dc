package services_test

import (
	"context"
	"time"

	"github.com/blockflow/ledger_service/internal/core/domain"
	portsrepo "github.com/blockflow/ledger_service/internal/core/ports/repositories"
	portssvc "github.com/blockflow/ledger_service/internal/core/ports/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock PostingRepository ---

type MockPostingRepository struct {
	mock.Mock
}

var _ portsrepo.PostingRepository = (*MockPostingRepository)(nil)

func (m *MockPostingRepository) SavePosting(ctx context.Context, entries []domain.LedgerEntry, deltas []domain.WalletDelta, allowNegativeAvailable bool) error {
	args := m.Called(ctx, entries, deltas, allowNegativeAvailable)
	return args.Error(0)
}

// --- Mock PostingSvc ---

type MockPostingSvc struct {
	mock.Mock
}

var _ portssvc.PostingSvc = (*MockPostingSvc)(nil)

func (m *MockPostingSvc) PostTransaction(ctx context.Context, entries []domain.Entry, ref string, opts portssvc.PostingOptions) (string, error) {
	args := m.Called(ctx, entries, ref, opts)
	return args.String(0), args.Error(1)
}

// --- Mock LedgerRepository ---

type MockLedgerRepository struct {
	mock.Mock
}

var _ portsrepo.LedgerRepository = (*MockLedgerRepository)(nil)

func (m *MockLedgerRepository) SumByAccount(ctx context.Context, account string, asOf time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, account, asOf)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockLedgerRepository) SumsByAccount(ctx context.Context) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]decimal.Decimal), args.Error(1)
}

func (m *MockLedgerRepository) ListEntriesByAccount(ctx context.Context, account string, limit int) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, account, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) FindEntriesByTxID(ctx context.Context, txID string) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, txID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) Summary(ctx context.Context) (domain.LedgerSummary, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.LedgerSummary), args.Error(1)
}

// --- Mock WalletRepository ---

type MockWalletRepository struct {
	mock.Mock
}

var _ portsrepo.WalletRepository = (*MockWalletRepository)(nil)

func (m *MockWalletRepository) FindWallet(ctx context.Context, key domain.WalletKey) (*domain.Wallet, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) ListWallets(ctx context.Context) ([]domain.Wallet, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Wallet), args.Error(1)
}
