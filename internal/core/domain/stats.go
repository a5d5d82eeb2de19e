package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserStats tracks a user's conversion activity. MonthlyPoints resets at
// UTC month rollover; PointsConverted and FeesPaid are lifetime totals.
type UserStats struct {
	UserID          uuid.UUID `json:"user_id"`
	MonthlyPoints   int64     `json:"monthly_points"`
	PointsConverted int64     `json:"points_converted"`
	FeesPaid        int64     `json:"fees_paid"`
	Tier            Tier      `json:"tier"`
	PeriodStart     time.Time `json:"period_start"` // first instant of the tracked UTC month
	UpdatedAt       time.Time `json:"updated_at"`
}

// MonthStart truncates t to the first instant of its UTC month.
func MonthStart(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// NewUserStats returns zeroed stats anchored at now's UTC month.
func NewUserStats(userID uuid.UUID, now time.Time) *UserStats {
	return &UserStats{
		UserID:      userID,
		Tier:        TierStandard,
		PeriodStart: MonthStart(now),
		UpdatedAt:   now.UTC(),
	}
}

// Rollover resets the monthly counter if the tracked period predates now's
// UTC month. Idempotent: applying it twice for the same instant is a no-op.
// Returns true if a reset happened.
func (s *UserStats) Rollover(policies TierPolicySet, now time.Time) bool {
	current := MonthStart(now)
	if !s.PeriodStart.Before(current) {
		return false
	}
	s.MonthlyPoints = 0
	s.PeriodStart = current
	s.Tier = policies.TierFor(0)
	return true
}

// RecordConversion folds a successful conversion into the stats and
// re-derives the tier from the new monthly total.
func (s *UserStats) RecordConversion(policies TierPolicySet, amount, fee int64, now time.Time) {
	s.MonthlyPoints += amount
	s.PointsConverted += amount
	s.FeesPaid += fee
	s.Tier = policies.TierFor(s.MonthlyPoints)
	s.UpdatedAt = now.UTC()
}

// TierStatus is the read-model returned to callers asking about a user's tier.
type TierStatus struct {
	UserID             uuid.UUID `json:"user_id"`
	Tier               Tier      `json:"tier"`
	MonthlyPoints      int64     `json:"monthly_points"`
	AllowanceRemaining int64     `json:"allowance_remaining"` // -1 = unlimited
	NextTier           *Tier     `json:"next_tier,omitempty"`
	PointsToNextTier   int64     `json:"points_to_next_tier,omitempty"`
}
