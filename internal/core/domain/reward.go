package domain

// Reward is a static catalogue entry narrating what a balance is worth.
type Reward struct {
	Program  Program `json:"program"`
	Name     string  `json:"name"`
	Cost     int64   `json:"cost"`
	Category string  `json:"category"`
}

// RewardProgress pairs an out-of-reach reward with how close the balance is.
type RewardProgress struct {
	Reward
	Progress float64 `json:"progress"` // min(balance/cost, 1.0)
}

// RewardValuation translates a balance into reward equivalents.
// Affordable is sorted by descending cost (best value first); Upcoming by
// ascending cost.
type RewardValuation struct {
	Program    Program          `json:"program"`
	Balance    int64            `json:"balance"`
	Affordable []Reward         `json:"affordable"`
	Upcoming   []RewardProgress `json:"upcoming"`
}
