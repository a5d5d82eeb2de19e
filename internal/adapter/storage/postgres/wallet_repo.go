package postgres

import (
	"context"
	"errors"
	"fmt"

	"points-exchange/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// WalletRepo implements ports.WalletStore.
type WalletRepo struct {
	pool Pool
}

// NewWalletRepo creates a new WalletRepo.
func NewWalletRepo(pool Pool) *WalletRepo {
	return &WalletRepo{pool: pool}
}

const walletColumns = "id, user_id, program, balance, escrowed, created_at, updated_at"

func scanWallet(row pgx.Row) (*domain.Wallet, error) {
	w := &domain.Wallet{}
	err := row.Scan(&w.ID, &w.UserID, &w.Program, &w.Balance, &w.Escrowed, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return w, nil
}

// Create inserts a new wallet outside any caller transaction.
func (r *WalletRepo) Create(ctx context.Context, w *domain.Wallet) error {
	query := `INSERT INTO wallets (id, user_id, program, balance, escrowed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, query,
		w.ID, w.UserID, w.Program, w.Balance, w.Escrowed, w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert wallet: %w", err)
	}
	return nil
}

// CreateInTx inserts a new wallet inside the caller's transaction, so a
// lazily created destination wallet commits or rolls back with the
// conversion that needed it.
func (r *WalletRepo) CreateInTx(ctx context.Context, tx pgx.Tx, w *domain.Wallet) error {
	query := `INSERT INTO wallets (id, user_id, program, balance, escrowed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := tx.Exec(ctx, query,
		w.ID, w.UserID, w.Program, w.Balance, w.Escrowed, w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert wallet in tx: %w", err)
	}
	return nil
}

// Get fetches one wallet by user and program (non-locking read).
func (r *WalletRepo) Get(ctx context.Context, userID uuid.UUID, program domain.Program) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE user_id = $1 AND program = $2`

	w, err := scanWallet(r.pool.QueryRow(ctx, query, userID, program))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get wallet: %w", err)
	}
	return w, nil
}

// ListByUser returns all of a user's wallets ordered by program.
func (r *WalletRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE user_id = $1 ORDER BY program`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list wallets: %w", err)
	}
	defer rows.Close()

	var wallets []domain.Wallet
	for rows.Next() {
		w, err := scanWallet(rows)
		if err != nil {
			return nil, fmt.Errorf("scan wallet: %w", err)
		}
		wallets = append(wallets, *w)
	}
	return wallets, rows.Err()
}

// GetForUpdate fetches a wallet with a pessimistic row lock.
// MUST be called within a transaction.
func (r *WalletRepo) GetForUpdate(ctx context.Context, tx pgx.Tx, userID uuid.UUID, program domain.Program) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE user_id = $1 AND program = $2 FOR UPDATE`

	w, err := scanWallet(tx.QueryRow(ctx, query, userID, program))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get wallet for update: %w", err)
	}
	return w, nil
}

// UpdateBalances writes a wallet's balance and escrowed amount inside the
// caller's transaction. The row must already be locked.
func (r *WalletRepo) UpdateBalances(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, balance, escrowed int64) error {
	query := `UPDATE wallets SET balance = $2, escrowed = $3, updated_at = NOW() WHERE id = $1`

	tag, err := tx.Exec(ctx, query, walletID, balance, escrowed)
	if err != nil {
		return fmt.Errorf("update wallet balances: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update wallet balances: wallet %s not found", walletID)
	}
	return nil
}
