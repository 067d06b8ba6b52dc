package services

import (
	"context"
	"fmt"
	"time"

	"github.com/blockflow/ledger_service/internal/apperrors"
	"github.com/blockflow/ledger_service/internal/core/domain"
	portsrepo "github.com/blockflow/ledger_service/internal/core/ports/repositories"
	portssvc "github.com/blockflow/ledger_service/internal/core/ports/services"
	"github.com/blockflow/ledger_service/internal/metrics"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// amountPrecision is the fixed scale of every persisted amount,
// matching the numeric(24,8) ledger columns.
const amountPrecision = 8

// PostingService is the transaction poster: the single choke point
// enforcing the double-entry invariant. It validates that entries sum to
// exactly zero, derives per-wallet deltas for user-scope accounts, sorts
// them into the deterministic lock order, and hands the atomic write to
// the posting repository.
type PostingService struct {
	postingRepo portsrepo.PostingRepository
	metrics     *metrics.Metrics
}

// NewPostingService creates a new PostingService.
func NewPostingService(postingRepo portsrepo.PostingRepository, m *metrics.Metrics) *PostingService {
	return &PostingService{postingRepo: postingRepo, metrics: m}
}

var _ portssvc.PostingSvc = (*PostingService)(nil)

// validateEntries checks structural validity and the zero-sum invariant.
// Runs before any lock is taken.
func validateEntries(entries []domain.Entry) error {
	if len(entries) == 0 {
		return fmt.Errorf("%w: transaction has no entries", apperrors.ErrValidation)
	}

	sum := decimal.Zero
	for i, e := range entries {
		if err := e.Account.Validate(); err != nil {
			return fmt.Errorf("%w: entry %d: %v", apperrors.ErrValidation, i, err)
		}
		if e.Amount.IsZero() {
			return fmt.Errorf("%w: entry %d for %s has zero amount", apperrors.ErrValidation, i, e.Account)
		}
		if e.Amount.Exponent() < -amountPrecision {
			return fmt.Errorf("%w: entry %d amount %s exceeds %d decimal places", apperrors.ErrValidation, i, e.Amount, amountPrecision)
		}
		sum = sum.Add(e.Amount)
	}

	if !sum.IsZero() {
		return fmt.Errorf("%w: sum is %s", apperrors.ErrUnbalanced, sum)
	}
	return nil
}

// walletDeltas folds the user-scope entries into one delta per wallet
// row and sorts them into lock order. Platform/external entries touch no
// wallet row and contribute nothing here.
func walletDeltas(entries []domain.Entry) []domain.WalletDelta {
	byKey := make(map[domain.WalletKey]*domain.WalletDelta)
	for _, e := range entries {
		if !e.Account.IsUser() {
			continue
		}
		key := e.Account.WalletKey()
		d, ok := byKey[key]
		if !ok {
			d = &domain.WalletDelta{Key: key, Available: decimal.Zero, Reserved: decimal.Zero}
			byKey[key] = d
		}
		switch e.Account.Bucket {
		case domain.BucketAvailable:
			d.Available = d.Available.Add(e.Amount)
		case domain.BucketReserved:
			d.Reserved = d.Reserved.Add(e.Amount)
		}
	}

	deltas := make([]domain.WalletDelta, 0, len(byKey))
	for _, d := range byKey {
		deltas = append(deltas, *d)
	}
	domain.SortWalletDeltas(deltas)
	return deltas
}

// PostTransaction posts one balanced set of entries as a single atomic
// unit of work and returns the generated transaction id. On any error
// nothing is committed.
func (s *PostingService) PostTransaction(ctx context.Context, entries []domain.Entry, ref string, opts portssvc.PostingOptions) (string, error) {
	start := time.Now()

	if err := validateEntries(entries); err != nil {
		s.metrics.ObservePosting(ref, "rejected", time.Since(start))
		return "", err
	}

	txID := uuid.NewString()
	now := time.Now().UTC()

	ledgerEntries := make([]domain.LedgerEntry, len(entries))
	for i, e := range entries {
		ledgerEntries[i] = domain.LedgerEntry{
			TxID:      txID,
			Account:   e.Account,
			Amount:    e.Amount,
			EntryType: domain.EntryTypeFor(e.Amount),
			Ref:       ref,
			CreatedAt: now,
		}
	}

	deltas := walletDeltas(entries)

	if err := s.postingRepo.SavePosting(ctx, ledgerEntries, deltas, opts.AllowNegativeAvailable); err != nil {
		s.metrics.ObservePosting(ref, "failed", time.Since(start))
		return "", err
	}

	s.metrics.ObservePosting(ref, "posted", time.Since(start))
	return txID, nil
}
