package pgsql

import (
	"context"
	"database/sql"
	"time"

	"github.com/blockflow/ledger_service/internal/apperrors"
	"github.com/blockflow/ledger_service/internal/core/domain"
	portsrepo "github.com/blockflow/ledger_service/internal/core/ports/repositories"
	"github.com/blockflow/ledger_service/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates the read-side repository over the
// append-only ledger_entries table.
func newPgxLedgerRepository(pool *pgxpool.Pool) *PgxLedgerRepository {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerRepository = (*PgxLedgerRepository)(nil)

func toDomainLedgerEntry(m models.LedgerEntry) (domain.LedgerEntry, error) {
	ref, err := domain.ParseAccountRef(m.Account)
	if err != nil {
		return domain.LedgerEntry{}, err
	}
	return domain.LedgerEntry{
		TxID:      m.TxID,
		Account:   ref,
		Amount:    m.Amount,
		EntryType: domain.EntryType(m.EntryType),
		Ref:       m.Ref,
		CreatedAt: m.CreatedAt,
	}, nil
}

func (r *PgxLedgerRepository) scanEntries(rows pgx.Rows) ([]domain.LedgerEntry, error) {
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		var m models.LedgerEntry
		var ref sql.NullString
		if err := rows.Scan(&m.TxID, &m.Account, &m.Amount, &m.EntryType, &ref, &m.CreatedAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ledger entry row", err)
		}
		if ref.Valid {
			m.Ref = ref.String
		}
		entry, err := toDomainLedgerEntry(m)
		if err != nil {
			return nil, apperrors.NewAppError(500, "ledger row has malformed account key", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating ledger entry rows", err)
	}
	return entries, nil
}

// SumByAccount replays one account's history up to asOf.
func (r *PgxLedgerRepository) SumByAccount(ctx context.Context, account string, asOf time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM ledger_entries
		WHERE account = $1 AND created_at <= $2;
	`
	var sum decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, account, asOf).Scan(&sum); err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to sum ledger entries for "+account, err)
	}
	return sum, nil
}

// SumsByAccount replays every account in one GROUP BY pass.
func (r *PgxLedgerRepository) SumsByAccount(ctx context.Context) (map[string]decimal.Decimal, error) {
	query := `
		SELECT account, SUM(amount)
		FROM ledger_entries
		GROUP BY account;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to aggregate ledger by account", err)
	}
	defer rows.Close()

	sums := make(map[string]decimal.Decimal)
	for rows.Next() {
		var account string
		var sum decimal.Decimal
		if err := rows.Scan(&account, &sum); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ledger aggregate row", err)
		}
		sums[account] = sum
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating ledger aggregate rows", err)
	}
	return sums, nil
}

// ListEntriesByAccount returns an account's entries, newest first.
func (r *PgxLedgerRepository) ListEntriesByAccount(ctx context.Context, account string, limit int) ([]domain.LedgerEntry, error) {
	query := `
		SELECT tx_id, account, amount, entry_type, ref, created_at
		FROM ledger_entries
		WHERE account = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2;
	`
	rows, err := r.Pool.Query(ctx, query, account, limit)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query ledger entries for "+account, err)
	}
	return r.scanEntries(rows)
}

// FindEntriesByTxID returns all entries of one logical transaction.
func (r *PgxLedgerRepository) FindEntriesByTxID(ctx context.Context, txID string) ([]domain.LedgerEntry, error) {
	query := `
		SELECT tx_id, account, amount, entry_type, ref, created_at
		FROM ledger_entries
		WHERE tx_id = $1
		ORDER BY id;
	`
	rows, err := r.Pool.Query(ctx, query, txID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query ledger entries for tx "+txID, err)
	}
	return r.scanEntries(rows)
}

// Summary aggregates the whole ledger in one pass.
func (r *PgxLedgerRepository) Summary(ctx context.Context) (domain.LedgerSummary, error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(SUM(amount) FILTER (WHERE amount > 0), 0),
		       COALESCE(SUM(amount) FILTER (WHERE amount < 0), 0),
		       COALESCE(SUM(amount), 0)
		FROM ledger_entries;
	`
	var s domain.LedgerSummary
	if err := r.Pool.QueryRow(ctx, query).Scan(&s.TotalEntries, &s.Credits, &s.Debits, &s.Net); err != nil {
		return domain.LedgerSummary{}, apperrors.NewAppError(500, "failed to compute ledger summary", err)
	}
	return s, nil
}
