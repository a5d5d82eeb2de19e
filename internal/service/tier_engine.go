package service

import (
	"context"
	"fmt"
	"time"

	"points-exchange/internal/core/domain"
	"points-exchange/internal/core/ports"
	"points-exchange/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// TierEngine implements ports.TierService. Tier derivation itself is the
// pure domain.TierPolicySet mapping; this service handles persistence and
// the externally scheduled month rollover.
type TierEngine struct {
	statsStore ports.UserStatsStore
	policies   domain.TierPolicySet
	log        zerolog.Logger
}

// NewTierEngine creates a TierEngine.
func NewTierEngine(statsStore ports.UserStatsStore, policies domain.TierPolicySet, log zerolog.Logger) *TierEngine {
	return &TierEngine{
		statsStore: statsStore,
		policies:   policies,
		log:        log,
	}
}

// GetTierStatus returns the user's tier with allowance and progression info.
// Users with no recorded activity report the base tier.
func (e *TierEngine) GetTierStatus(ctx context.Context, userID uuid.UUID) (*domain.TierStatus, error) {
	stats, err := e.statsStore.Get(ctx, userID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get user stats: %w", err))
	}
	if stats == nil {
		stats = domain.NewUserStats(userID, time.Now())
	} else {
		// A stale period reads as the new month even if the scheduler
		// has not fired yet.
		stats.Rollover(e.policies, time.Now())
	}

	status := &domain.TierStatus{
		UserID:        userID,
		Tier:          stats.Tier,
		MonthlyPoints: stats.MonthlyPoints,
	}

	pol := e.policies.For(stats.Tier)
	if pol.Unlimited() {
		status.AllowanceRemaining = -1
	} else {
		remaining := pol.Allowance - stats.MonthlyPoints
		if remaining < 0 {
			remaining = 0
		}
		status.AllowanceRemaining = remaining
	}

	if next, ok := e.nextTier(stats.Tier); ok {
		status.NextTier = &next.Tier
		status.PointsToNextTier = next.Threshold - stats.MonthlyPoints
	}

	return status, nil
}

func (e *TierEngine) nextTier(current domain.Tier) (domain.TierPolicy, bool) {
	for i, p := range e.policies {
		if p.Tier == current && i+1 < len(e.policies) {
			return e.policies[i+1], true
		}
	}
	return domain.TierPolicy{}, false
}

// RolloverMonth resets monthly counters for every stats row whose tracked
// period predates now's UTC month. Idempotent: a repeated call for the same
// month affects zero rows.
func (e *TierEngine) RolloverMonth(ctx context.Context, now time.Time) (int64, error) {
	periodStart := domain.MonthStart(now)
	affected, err := e.statsStore.ResetMonthly(ctx, periodStart, e.policies.TierFor(0))
	if err != nil {
		return 0, apperror.InternalError(fmt.Errorf("reset monthly stats: %w", err))
	}

	e.log.Info().
		Time("period_start", periodStart).
		Int64("users_reset", affected).
		Msg("month rollover applied")

	return affected, nil
}
