package services

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/blockflow/ledger_service/internal/core/domain"
	portsrepo "github.com/blockflow/ledger_service/internal/core/ports/repositories"
	portssvc "github.com/blockflow/ledger_service/internal/core/ports/services"
	"github.com/blockflow/ledger_service/internal/metrics"
	"github.com/shopspring/decimal"
)

// ReconciliationService detects drift between the wallet aggregates and
// the replayed ledger history. It reads both tables without the poster's
// row locks, so a run that overlaps live traffic may see a bounded
// staleness window; it is meant to run out-of-band, not on the request
// path. It never writes corrections: a discrepancy means a bug in the
// poster or in locking discipline and must be investigated.
type ReconciliationService struct {
	ledgerRepo portsrepo.LedgerRepository
	walletRepo portsrepo.WalletRepository
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

// NewReconciliationService creates a new ReconciliationService.
func NewReconciliationService(ledgerRepo portsrepo.LedgerRepository, walletRepo portsrepo.WalletRepository, logger *slog.Logger, m *metrics.Metrics) *ReconciliationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReconciliationService{
		ledgerRepo: ledgerRepo,
		walletRepo: walletRepo,
		logger:     logger,
		metrics:    m,
	}
}

var _ portssvc.ReconciliationSvc = (*ReconciliationService)(nil)

// Reconcile compares, for every user-scope account, the ledger replay sum
// against the matching wallet bucket. Accounts that appear on only one
// side are compared against zero: ledger history for a wallet that was
// deleted, or a wallet bucket with no entries, both count as drift when
// non-zero.
func (s *ReconciliationService) Reconcile(ctx context.Context) ([]domain.Discrepancy, error) {
	start := time.Now()

	ledgerSums, err := s.ledgerRepo.SumsByAccount(ctx)
	if err != nil {
		return nil, err
	}
	wallets, err := s.walletRepo.ListWallets(ctx)
	if err != nil {
		return nil, err
	}

	walletValues := make(map[string]decimal.Decimal, 2*len(wallets))
	for _, w := range wallets {
		walletValues[domain.UserAvailable(w.UserID, w.Currency).String()] = w.Available
		walletValues[domain.UserReserved(w.UserID, w.Currency).String()] = w.Reserved
	}

	var discrepancies []domain.Discrepancy
	seen := make(map[string]struct{}, len(ledgerSums))

	for account, sum := range ledgerSums {
		ref, err := domain.ParseAccountRef(account)
		if err != nil {
			s.logger.Warn("skipping unparseable ledger account", slog.String("account", account), slog.String("error", err.Error()))
			continue
		}
		if !ref.IsUser() {
			// Platform/external accounts have no wallet row to drift from.
			continue
		}
		seen[account] = struct{}{}

		walletValue, ok := walletValues[account]
		if !ok {
			walletValue = decimal.Zero
		}
		if !sum.Equal(walletValue) {
			discrepancies = append(discrepancies, domain.Discrepancy{
				Account:     ref,
				LedgerSum:   sum,
				WalletValue: walletValue,
			})
		}
	}

	// Wallet buckets with a non-zero value but no ledger history at all.
	for account, walletValue := range walletValues {
		if _, ok := seen[account]; ok {
			continue
		}
		if walletValue.IsZero() {
			continue
		}
		ref, err := domain.ParseAccountRef(account)
		if err != nil {
			continue
		}
		discrepancies = append(discrepancies, domain.Discrepancy{
			Account:     ref,
			LedgerSum:   decimal.Zero,
			WalletValue: walletValue,
		})
	}

	sort.Slice(discrepancies, func(i, j int) bool {
		return discrepancies[i].Account.String() < discrepancies[j].Account.String()
	})

	s.metrics.ObserveReconcile(len(discrepancies), time.Since(start))
	if len(discrepancies) > 0 {
		s.logger.Error("reconciliation found drift", slog.Int("discrepancies", len(discrepancies)))
	}
	return discrepancies, nil
}

// RunPeriodic runs Reconcile on the given interval until ctx is
// cancelled, logging any discrepancies. Intended to be started as a
// background goroutine from main.
func (s *ReconciliationService) RunPeriodic(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			discrepancies, err := s.Reconcile(ctx)
			if err != nil {
				s.logger.Error("periodic reconciliation failed", slog.String("error", err.Error()))
				continue
			}
			for _, d := range discrepancies {
				s.logger.Error("wallet drift",
					slog.String("account", d.Account.String()),
					slog.String("ledger_sum", d.LedgerSum.String()),
					slog.String("wallet_value", d.WalletValue.String()),
				)
			}
		}
	}
}
