package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/blockflow/ledger_service/internal/apperrors"
	"github.com/blockflow/ledger_service/internal/core/domain"
	portsrepo "github.com/blockflow/ledger_service/internal/core/ports/repositories"
	"github.com/blockflow/ledger_service/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxWalletRepository struct {
	BaseRepository
}

// newPgxWalletRepository creates a new repository for wallet aggregate data.
func newPgxWalletRepository(pool *pgxpool.Pool) *PgxWalletRepository {
	return &PgxWalletRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.WalletRepository = (*PgxWalletRepository)(nil)

func toDomainWallet(m models.Wallet) domain.Wallet {
	return domain.Wallet{
		UserID:    m.UserID,
		Currency:  m.Currency,
		Available: m.Available,
		Reserved:  m.Reserved,
		UpdatedAt: m.UpdatedAt,
	}
}

// FindWallet retrieves one wallet row by (user_id, currency). Returns
// nil without error when the wallet has never been referenced.
func (r *PgxWalletRepository) FindWallet(ctx context.Context, key domain.WalletKey) (*domain.Wallet, error) {
	query := `
		SELECT user_id, currency, available, reserved, updated_at
		FROM wallet_aggregates
		WHERE user_id = $1 AND currency = $2;
	`
	var m models.Wallet
	err := r.Pool.QueryRow(ctx, query, key.UserID, key.Currency).Scan(
		&m.UserID,
		&m.Currency,
		&m.Available,
		&m.Reserved,
		&m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to find wallet %d/%s", key.UserID, key.Currency), err)
	}

	wallet := toDomainWallet(m)
	return &wallet, nil
}

// ListWallets retrieves every wallet row. Plain pool reads, no locks;
// the reconciliation auditor tolerates a mix of committed states.
func (r *PgxWalletRepository) ListWallets(ctx context.Context) ([]domain.Wallet, error) {
	query := `
		SELECT user_id, currency, available, reserved, updated_at
		FROM wallet_aggregates
		ORDER BY user_id, currency;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query wallets", err)
	}
	defer rows.Close()

	var wallets []domain.Wallet
	for rows.Next() {
		var m models.Wallet
		if err := rows.Scan(&m.UserID, &m.Currency, &m.Available, &m.Reserved, &m.UpdatedAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan wallet row", err)
		}
		wallets = append(wallets, toDomainWallet(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating wallet rows", err)
	}

	return wallets, nil
}

// lockWalletForUpdate acquires an exclusive row lock on one wallet,
// creating the row with zero balances on first reference. Must be called
// within a transaction, and callers locking several wallets must call it
// in sorted key order.
func lockWalletForUpdate(ctx context.Context, tx pgx.Tx, key domain.WalletKey, now time.Time) (models.Wallet, error) {
	selectQuery := `
		SELECT user_id, currency, available, reserved, updated_at
		FROM wallet_aggregates
		WHERE user_id = $1 AND currency = $2
		FOR UPDATE;
	`
	var m models.Wallet
	err := tx.QueryRow(ctx, selectQuery, key.UserID, key.Currency).Scan(
		&m.UserID,
		&m.Currency,
		&m.Available,
		&m.Reserved,
		&m.UpdatedAt,
	)
	if err == nil {
		return m, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return models.Wallet{}, fmt.Errorf("failed to lock wallet %d/%s: %w", key.UserID, key.Currency, err)
	}

	// Lazy creation. ON CONFLICT DO NOTHING covers the race where a
	// concurrent transaction inserts the same row first; the re-select
	// then blocks on that row's lock.
	insertQuery := `
		INSERT INTO wallet_aggregates (user_id, currency, available, reserved, updated_at)
		VALUES ($1, $2, 0, 0, $3)
		ON CONFLICT (user_id, currency) DO NOTHING;
	`
	if _, err := tx.Exec(ctx, insertQuery, key.UserID, key.Currency, now); err != nil {
		return models.Wallet{}, fmt.Errorf("failed to create wallet %d/%s: %w", key.UserID, key.Currency, err)
	}

	err = tx.QueryRow(ctx, selectQuery, key.UserID, key.Currency).Scan(
		&m.UserID,
		&m.Currency,
		&m.Available,
		&m.Reserved,
		&m.UpdatedAt,
	)
	if err != nil {
		return models.Wallet{}, fmt.Errorf("failed to lock wallet %d/%s after create: %w", key.UserID, key.Currency, err)
	}
	return m, nil
}

// updateWalletBalances writes the new bucket values for a locked row.
func updateWalletBalances(ctx context.Context, tx pgx.Tx, m models.Wallet, now time.Time) error {
	query := `
		UPDATE wallet_aggregates
		SET available = $3, reserved = $4, updated_at = $5
		WHERE user_id = $1 AND currency = $2;
	`
	cmdTag, err := tx.Exec(ctx, query, m.UserID, m.Currency, m.Available, m.Reserved, now)
	if err != nil {
		return fmt.Errorf("failed to update wallet %d/%s: %w", m.UserID, m.Currency, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("wallet %d/%s vanished during update", m.UserID, m.Currency)
	}
	return nil
}
