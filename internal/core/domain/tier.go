package domain

import (
	"github.com/shopspring/decimal"
)

// Tier is the membership level derived from trailing monthly conversion volume.
type Tier string

const (
	TierStandard Tier = "STANDARD"
	TierSilver   Tier = "SILVER"
	TierGold     Tier = "GOLD"
	TierPlatinum Tier = "PLATINUM"
)

// TierPolicy describes one tier: the monthly volume needed to reach it, the
// fee-free allowance it grants, and the marginal fee rate charged on volume
// past the allowance. Unlimited allowance is expressed as Allowance < 0.
type TierPolicy struct {
	Tier      Tier
	Threshold int64 // monthly points needed to hold this tier
	Allowance int64 // fee-free monthly conversion volume, < 0 = unlimited
	FeeRate   decimal.Decimal
}

// Unlimited reports whether the tier has no fee-free cap.
func (p TierPolicy) Unlimited() bool {
	return p.Allowance < 0
}

// TierPolicySet is an ordered list of tier policies, ascending by threshold.
type TierPolicySet []TierPolicy

// DefaultTierPolicies returns the standard membership ladder.
func DefaultTierPolicies() TierPolicySet {
	return TierPolicySet{
		{Tier: TierStandard, Threshold: 0, Allowance: 10_000, FeeRate: decimal.NewFromFloat(0.005)},
		{Tier: TierSilver, Threshold: 10_000, Allowance: 25_000, FeeRate: decimal.NewFromFloat(0.0035)},
		{Tier: TierGold, Threshold: 50_000, Allowance: 100_000, FeeRate: decimal.NewFromFloat(0.002)},
		{Tier: TierPlatinum, Threshold: 150_000, Allowance: -1, FeeRate: decimal.Zero},
	}
}

// TierFor maps a monthly converted volume to the highest tier whose
// threshold it meets. Thresholds are non-decreasing.
func (s TierPolicySet) TierFor(monthlyPoints int64) Tier {
	tier := TierStandard
	for _, p := range s {
		if monthlyPoints >= p.Threshold {
			tier = p.Tier
		}
	}
	return tier
}

// For returns the policy for a tier, falling back to the base tier when
// the stored tier is unrecognized.
func (s TierPolicySet) For(tier Tier) TierPolicy {
	for _, p := range s {
		if p.Tier == tier {
			return p
		}
	}
	return s[0]
}
