package services

import (
	"context"
	"fmt"

	"github.com/blockflow/ledger_service/internal/apperrors"
	"github.com/blockflow/ledger_service/internal/core/domain"
	portsrepo "github.com/blockflow/ledger_service/internal/core/ports/repositories"
	portssvc "github.com/blockflow/ledger_service/internal/core/ports/services"
	"github.com/google/uuid"
)

// defaultHistoryLimit bounds entry-history reads when the caller does
// not specify a limit.
const defaultHistoryLimit = 100

// LedgerService exposes the audit read surface: whole-ledger summary and
// per-account entry history. It never writes.
type LedgerService struct {
	ledgerRepo portsrepo.LedgerRepository
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepository) *LedgerService {
	return &LedgerService{ledgerRepo: ledgerRepo}
}

var _ portssvc.LedgerReaderSvc = (*LedgerService)(nil)

// Summary aggregates entry count, total credits, total debits and the
// net across the whole ledger. A consistent ledger nets to zero.
func (s *LedgerService) Summary(ctx context.Context) (domain.LedgerSummary, error) {
	return s.ledgerRepo.Summary(ctx)
}

// ListEntriesByAccount returns an account's entries, newest first.
func (s *LedgerService) ListEntriesByAccount(ctx context.Context, account string, limit int) ([]domain.LedgerEntry, error) {
	if _, err := domain.ParseAccountRef(account); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return s.ledgerRepo.ListEntriesByAccount(ctx, account, limit)
}

// FindEntriesByTxID returns every leg of one logical transaction. The
// poster writes at least two legs per transaction, so an empty result
// means the id was never posted.
func (s *LedgerService) FindEntriesByTxID(ctx context.Context, txID string) ([]domain.LedgerEntry, error) {
	if _, err := uuid.Parse(txID); err != nil {
		return nil, fmt.Errorf("%w: invalid transaction id %q", apperrors.ErrValidation, txID)
	}
	entries, err := s.ledgerRepo.FindEntriesByTxID(ctx, txID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, apperrors.NewNotFoundError("transaction " + txID + " not found")
	}
	return entries, nil
}
