package service

import (
	"sort"

	"points-exchange/internal/core/domain"
	"points-exchange/pkg/apperror"
)

// RewardServiceImpl implements ports.RewardService: a pure, read-only
// translation of a balance into reward equivalents. No shared state.
type RewardServiceImpl struct {
	catalog map[domain.Program][]domain.Reward
}

// NewRewardService creates a RewardServiceImpl over the default catalogue.
func NewRewardService() *RewardServiceImpl {
	return &RewardServiceImpl{catalog: defaultCatalog}
}

// NewRewardServiceWithCatalog creates a RewardServiceImpl over a custom catalogue.
func NewRewardServiceWithCatalog(catalog map[domain.Program][]domain.Reward) *RewardServiceImpl {
	return &RewardServiceImpl{catalog: catalog}
}

// Valuate splits the program catalogue at the balance: affordable rewards
// by descending cost (best value first), upcoming by ascending cost with
// progress toward each.
func (s *RewardServiceImpl) Valuate(program domain.Program, balance int64) (*domain.RewardValuation, error) {
	if !program.Valid() {
		return nil, apperror.ErrUnknownProgram(string(program))
	}
	if balance < 0 {
		return nil, apperror.Validation("balance must not be negative")
	}

	v := &domain.RewardValuation{
		Program:    program,
		Balance:    balance,
		Affordable: []domain.Reward{},
		Upcoming:   []domain.RewardProgress{},
	}

	for _, reward := range s.catalog[program] {
		if reward.Cost <= balance {
			v.Affordable = append(v.Affordable, reward)
			continue
		}
		progress := float64(balance) / float64(reward.Cost)
		if progress > 1 {
			progress = 1
		}
		v.Upcoming = append(v.Upcoming, domain.RewardProgress{Reward: reward, Progress: progress})
	}

	sort.Slice(v.Affordable, func(i, j int) bool {
		return v.Affordable[i].Cost > v.Affordable[j].Cost
	})
	sort.Slice(v.Upcoming, func(i, j int) bool {
		return v.Upcoming[i].Cost < v.Upcoming[j].Cost
	})

	return v, nil
}
