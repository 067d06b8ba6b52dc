package dto

import (
	"time"

	"github.com/blockflow/ledger_service/internal/core/domain"
)

// LedgerEntryResponse is one immutable ledger row.
type LedgerEntryResponse struct {
	TxID      string    `json:"txID"`
	Account   string    `json:"account"`
	Amount    string    `json:"amount"`
	EntryType string    `json:"entryType"`
	Ref       string    `json:"ref"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToLedgerEntryResponse converts a domain.LedgerEntry to its DTO.
func ToLedgerEntryResponse(e domain.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		TxID:      e.TxID,
		Account:   e.Account.String(),
		Amount:    e.Amount.String(),
		EntryType: string(e.EntryType),
		Ref:       e.Ref,
		CreatedAt: e.CreatedAt,
	}
}

// ToListLedgerEntryResponse converts a slice of entries.
func ToListLedgerEntryResponse(entries []domain.LedgerEntry) []LedgerEntryResponse {
	res := make([]LedgerEntryResponse, len(entries))
	for i, e := range entries {
		res[i] = ToLedgerEntryResponse(e)
	}
	return res
}

// LedgerSummaryResponse is the whole-ledger aggregate.
type LedgerSummaryResponse struct {
	TotalEntries int64  `json:"totalEntries"`
	Credits      string `json:"credits"`
	Debits       string `json:"debits"`
	Net          string `json:"net"`
}

// ToLedgerSummaryResponse converts a domain.LedgerSummary to its DTO.
func ToLedgerSummaryResponse(s domain.LedgerSummary) LedgerSummaryResponse {
	return LedgerSummaryResponse{
		TotalEntries: s.TotalEntries,
		Credits:      s.Credits.String(),
		Debits:       s.Debits.String(),
		Net:          s.Net.String(),
	}
}

// DiscrepancyResponse reports one diverged account.
type DiscrepancyResponse struct {
	Account     string `json:"account"`
	LedgerSum   string `json:"ledgerSum"`
	WalletValue string `json:"walletValue"`
}

// ReconcileResponse is the outcome of one reconciliation run.
type ReconcileResponse struct {
	Consistent    bool                  `json:"consistent"`
	Discrepancies []DiscrepancyResponse `json:"discrepancies"`
}

// ToReconcileResponse converts the auditor's findings.
func ToReconcileResponse(discrepancies []domain.Discrepancy) ReconcileResponse {
	res := ReconcileResponse{
		Consistent:    len(discrepancies) == 0,
		Discrepancies: make([]DiscrepancyResponse, len(discrepancies)),
	}
	for i, d := range discrepancies {
		res.Discrepancies[i] = DiscrepancyResponse{
			Account:     d.Account.String(),
			LedgerSum:   d.LedgerSum.String(),
			WalletValue: d.WalletValue.String(),
		}
	}
	return res
}
