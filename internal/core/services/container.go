package services

import (
	"log/slog"

	portsrepo "github.com/blockflow/ledger_service/internal/core/ports/repositories"
	portssvc "github.com/blockflow/ledger_service/internal/core/ports/services"
	"github.com/blockflow/ledger_service/internal/metrics"
)

// NewContainer wires the services over the repository provider. The
// poster is shared: every fund movement flows through the one instance.
func NewContainer(repos *portsrepo.RepositoryProvider, logger *slog.Logger, m *metrics.Metrics) *portssvc.ServiceContainer {
	posting := NewPostingService(repos.PostingRepo, m)

	return &portssvc.ServiceContainer{
		Posting:        posting,
		Wallet:         NewWalletService(posting, repos.WalletRepo, m),
		Reservation:    NewReservationService(posting, m),
		Settlement:     NewSettlementService(posting, m),
		Reconciliation: NewReconciliationService(repos.LedgerRepo, repos.WalletRepo, logger, m),
		Ledger:         NewLedgerService(repos.LedgerRepo),
	}
}
