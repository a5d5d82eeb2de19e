package service

import (
	"points-exchange/internal/core/domain"

	"github.com/shopspring/decimal"
)

// FeeCalculator computes the conversion fee for a tier and monthly volume.
// Pure: no captured mutable state.
type FeeCalculator struct {
	policies domain.TierPolicySet
}

// NewFeeCalculator creates a FeeCalculator over a tier policy set.
func NewFeeCalculator(policies domain.TierPolicySet) *FeeCalculator {
	return &FeeCalculator{policies: policies}
}

// ComputeFee returns the fee owed on amount. Only the portion of amount
// pushing monthlyPointsSoFar past the tier allowance is charged, at the
// tier's marginal rate. Zero when the allowance is not exceeded.
func (f *FeeCalculator) ComputeFee(amount int64, tier domain.Tier, monthlyPointsSoFar int64) int64 {
	if amount <= 0 {
		return 0
	}

	pol := f.policies.For(tier)
	if pol.Unlimited() || pol.FeeRate.IsZero() {
		return 0
	}

	excess := monthlyPointsSoFar + amount - pol.Allowance
	if excess <= 0 {
		return 0
	}
	if excess > amount {
		excess = amount
	}

	return decimal.NewFromInt(excess).Mul(pol.FeeRate).Floor().IntPart()
}
