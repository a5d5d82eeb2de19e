package postgres

import (
	"context"
	"errors"
	"fmt"

	"points-exchange/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// RateRepo implements ports.RateSource and ports.RateFeedStore over the
// rates table the external feed writes into.
type RateRepo struct {
	pool Pool
}

// NewRateRepo creates a new RateRepo.
func NewRateRepo(pool Pool) *RateRepo {
	return &RateRepo{pool: pool}
}

// GetRate returns the snapshot for one directed pair, or nil, nil when the
// pair has never been published.
func (r *RateRepo) GetRate(ctx context.Context, from, to domain.Program) (*domain.ExchangeRate, error) {
	query := `SELECT from_program, to_program, rate, as_of FROM rates WHERE from_program = $1 AND to_program = $2`

	rate := &domain.ExchangeRate{}
	err := r.pool.QueryRow(ctx, query, from, to).Scan(
		&rate.FromProgram, &rate.ToProgram, &rate.Rate, &rate.AsOf,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get rate: %w", err)
	}
	return rate, nil
}

// Upsert publishes a feed snapshot, replacing any previous one for the pair.
func (r *RateRepo) Upsert(ctx context.Context, rate *domain.ExchangeRate) error {
	query := `INSERT INTO rates (from_program, to_program, rate, as_of)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (from_program, to_program) DO UPDATE SET
			rate = EXCLUDED.rate,
			as_of = EXCLUDED.as_of`

	_, err := r.pool.Exec(ctx, query, rate.FromProgram, rate.ToProgram, rate.Rate, rate.AsOf)
	if err != nil {
		return fmt.Errorf("upsert rate: %w", err)
	}
	return nil
}
