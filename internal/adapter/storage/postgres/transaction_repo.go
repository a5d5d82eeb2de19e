package postgres

import (
	"context"
	"fmt"

	"points-exchange/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// TransactionRepo implements ports.TransactionLog over the conversions table.
type TransactionRepo struct {
	pool Pool
}

// NewTransactionRepo creates a new TransactionRepo.
func NewTransactionRepo(pool Pool) *TransactionRepo {
	return &TransactionRepo{pool: pool}
}

// Append records a conversion inside the caller's transaction.
func (r *TransactionRepo) Append(ctx context.Context, tx pgx.Tx, txn *domain.Transaction) error {
	query := `INSERT INTO conversions (id, user_id, from_program, to_program, amount_from, amount_to, fee_applied, rate, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := tx.Exec(ctx, query,
		txn.ID, txn.UserID, txn.FromProgram, txn.ToProgram,
		txn.AmountFrom, txn.AmountTo, txn.FeeApplied, txn.Rate,
		txn.Status, txn.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert conversion: %w", err)
	}
	return nil
}

// ListByUser returns a user's conversion history, newest first.
func (r *TransactionRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Transaction, error) {
	query := `SELECT id, user_id, from_program, to_program, amount_from, amount_to, fee_applied, rate, status, created_at
		FROM conversions WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list conversions: %w", err)
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		var t domain.Transaction
		if err := rows.Scan(
			&t.ID, &t.UserID, &t.FromProgram, &t.ToProgram,
			&t.AmountFrom, &t.AmountTo, &t.FeeApplied, &t.Rate,
			&t.Status, &t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan conversion: %w", err)
		}
		txns = append(txns, t)
	}
	return txns, rows.Err()
}
