package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"points-exchange/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// StatsRepo implements ports.UserStatsStore.
type StatsRepo struct {
	pool Pool
}

// NewStatsRepo creates a new StatsRepo.
func NewStatsRepo(pool Pool) *StatsRepo {
	return &StatsRepo{pool: pool}
}

const statsColumns = "user_id, monthly_points, points_converted, fees_paid, tier, period_start, updated_at"

func scanStats(row pgx.Row) (*domain.UserStats, error) {
	s := &domain.UserStats{}
	err := row.Scan(&s.UserID, &s.MonthlyPoints, &s.PointsConverted, &s.FeesPaid, &s.Tier, &s.PeriodStart, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Get fetches a user's stats (non-locking read).
func (r *StatsRepo) Get(ctx context.Context, userID uuid.UUID) (*domain.UserStats, error) {
	query := `SELECT ` + statsColumns + ` FROM user_stats WHERE user_id = $1`

	s, err := scanStats(r.pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user stats: %w", err)
	}
	return s, nil
}

// GetForUpdate fetches a user's stats with a pessimistic row lock.
// MUST be called within a transaction.
func (r *StatsRepo) GetForUpdate(ctx context.Context, tx pgx.Tx, userID uuid.UUID) (*domain.UserStats, error) {
	query := `SELECT ` + statsColumns + ` FROM user_stats WHERE user_id = $1 FOR UPDATE`

	s, err := scanStats(tx.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user stats for update: %w", err)
	}
	return s, nil
}

// Upsert writes a user's stats inside the caller's transaction.
func (r *StatsRepo) Upsert(ctx context.Context, tx pgx.Tx, stats *domain.UserStats) error {
	query := `INSERT INTO user_stats (user_id, monthly_points, points_converted, fees_paid, tier, period_start, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id) DO UPDATE SET
			monthly_points = EXCLUDED.monthly_points,
			points_converted = EXCLUDED.points_converted,
			fees_paid = EXCLUDED.fees_paid,
			tier = EXCLUDED.tier,
			period_start = EXCLUDED.period_start,
			updated_at = EXCLUDED.updated_at`

	_, err := tx.Exec(ctx, query,
		stats.UserID, stats.MonthlyPoints, stats.PointsConverted,
		stats.FeesPaid, stats.Tier, stats.PeriodStart, stats.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert user stats: %w", err)
	}
	return nil
}

// ResetMonthly zeroes monthly counters for rows whose period predates
// periodStart. One statement, so a repeated rollover for the same month
// touches zero rows.
func (r *StatsRepo) ResetMonthly(ctx context.Context, periodStart time.Time, baseTier domain.Tier) (int64, error) {
	query := `UPDATE user_stats
		SET monthly_points = 0, tier = $2, period_start = $1, updated_at = NOW()
		WHERE period_start < $1`

	tag, err := r.pool.Exec(ctx, query, periodStart, baseTier)
	if err != nil {
		return 0, fmt.Errorf("reset monthly stats: %w", err)
	}
	return tag.RowsAffected(), nil
}
