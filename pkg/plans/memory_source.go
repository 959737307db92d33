package plans

import (
	"context"
	"maps"
)

// inMemSource implements the Source interface using an in-memory plan map.
type inMemSource struct {
	plans map[Tier]Plan
}

// NewInMemSource returns an in-memory Source with a deep copy of the given plans.
func NewInMemSource(plans map[Tier]Plan) Source {
	plansCopy := make(map[Tier]Plan, len(plans))
	for tier, plan := range plans {
		plan.Limits = maps.Clone(plan.Limits)
		plansCopy[tier] = plan
	}

	return &inMemSource{plans: plansCopy}
}

// Load returns a copy of all configured plans.
func (s *inMemSource) Load(ctx context.Context) (map[Tier]Plan, error) {
	plansCopy := make(map[Tier]Plan, len(s.plans))
	for tier, plan := range s.plans {
		plan.Limits = maps.Clone(plan.Limits)
		plansCopy[tier] = plan
	}
	return plansCopy, nil
}

// DefaultSource returns the built-in plan configuration covering every tier.
// Deployments with custom limits should provide their own Source instead.
func DefaultSource() Source {
	return NewInMemSource(map[Tier]Plan{
		TierBasic: {
			Tier:        TierBasic,
			Name:        "Basic",
			Description: "Free tier for getting started",
			Limits: map[Resource]int64{
				ResourceLeads:      100,
				ResourceProperties: 10,
				ResourceSeats:      2,
				ResourceCampaigns:  1,
			},
			Public: true,
		},
		TierPro: {
			Tier:        TierPro,
			Name:        "Pro",
			Description: "For growing teams",
			Limits: map[Resource]int64{
				ResourceLeads:      1_000,
				ResourceProperties: 100,
				ResourceSeats:      10,
				ResourceCampaigns:  10,
			},
			TrialDays: 30,
			Public:    true,
		},
		TierAgency: {
			Tier:        TierAgency,
			Name:        "Agency",
			Description: "For agencies managing multiple portfolios",
			Limits: map[Resource]int64{
				ResourceLeads:      10_000,
				ResourceProperties: 1_000,
				ResourceSeats:      25,
				ResourceCampaigns:  50,
			},
			Public: true,
		},
		TierEnterprise: {
			Tier:        TierEnterprise,
			Name:        "Enterprise",
			Description: "Custom contracts with no preset limits",
			Limits: map[Resource]int64{
				ResourceLeads:      Unlimited,
				ResourceProperties: Unlimited,
				ResourceSeats:      Unlimited,
				ResourceCampaigns:  Unlimited,
			},
		},
	})
}
