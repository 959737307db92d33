package plans_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authzkit/pkg/plans"
)

func TestCompare(t *testing.T) {
	t.Parallel()

	current := &plans.Plan{
		Tier: plans.TierPro,
		Limits: map[plans.Resource]int64{
			plans.ResourceLeads: 1000,
			plans.ResourceSeats: 10,
			plans.ResourceCampaigns: plans.Unlimited,
		},
	}
	target := &plans.Plan{
		Tier: plans.TierBasic,
		Limits: map[plans.Resource]int64{
			plans.ResourceLeads:      100,
			plans.ResourceSeats:      10,
			plans.ResourceProperties: 10,
		},
	}

	cmp := plans.Compare(current, target)
	require.NotNil(t, cmp)

	assert.Equal(t, plans.ResourceChange{From: 1000, To: 100}, cmp.DecreasedLimits[plans.ResourceLeads])
	assert.NotContains(t, cmp.DecreasedLimits, plans.ResourceSeats)
	assert.NotContains(t, cmp.IncreasedLimits, plans.ResourceSeats)
	assert.Equal(t, int64(10), cmp.NewResources[plans.ResourceProperties])
	assert.Equal(t, plans.Unlimited, cmp.RemovedResources[plans.ResourceCampaigns])
	assert.True(t, cmp.HasDecreases())
}

func TestCompare_UnlimitedTransitions(t *testing.T) {
	t.Parallel()

	limited := &plans.Plan{Limits: map[plans.Resource]int64{plans.ResourceLeads: 500}}
	unlimited := &plans.Plan{Limits: map[plans.Resource]int64{plans.ResourceLeads: plans.Unlimited}}

	up := plans.Compare(limited, unlimited)
	require.NotNil(t, up)
	assert.Contains(t, up.IncreasedLimits, plans.ResourceLeads)
	assert.False(t, up.HasDecreases())

	down := plans.Compare(unlimited, limited)
	require.NotNil(t, down)
	assert.Contains(t, down.DecreasedLimits, plans.ResourceLeads)
	assert.True(t, down.HasDecreases())
}

func TestCompare_NilPlans(t *testing.T) {
	t.Parallel()

	assert.Nil(t, plans.Compare(nil, &plans.Plan{}))
	assert.Nil(t, plans.Compare(&plans.Plan{}, nil))
}
