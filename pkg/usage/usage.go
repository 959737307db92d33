package usage

import (
	"fmt"

	"github.com/dmitrymomot/authzkit/pkg/plans"
)

// Result reports whether a resource creation is allowed under the plan limit.
type Result struct {
	Allowed   bool  `json:"allowed"`
	Limit     int64 `json:"limit"`     // plans.Unlimited for unmetered resources
	Remaining int64 `json:"remaining"` // plans.Unlimited for unmetered resources
}

// Check compares current usage against the plan's limit for the resource.
// Allowed is true while usage is strictly below the limit.
// Returns an error only for resources the plan does not configure, which
// indicates a programmer error rather than an exhausted quota.
func Check(plan plans.Plan, res plans.Resource, current int64) (Result, error) {
	limit, exists := plan.Limits[res]
	if !exists {
		return Result{}, fmt.Errorf("%w: resource %q not configured for tier %q", ErrUnknownResource, res, plan.Tier)
	}

	if limit == plans.Unlimited {
		return Result{Allowed: true, Limit: plans.Unlimited, Remaining: plans.Unlimited}, nil
	}

	return Result{
		Allowed:   current < limit,
		Limit:     limit,
		Remaining: max(0, limit-current),
	}, nil
}

// Limiter binds usage checks to a plan catalog for tier-keyed lookups.
type Limiter struct {
	catalog *plans.Catalog
}

// NewLimiter creates a Limiter over the catalog. Panics if the catalog is nil.
func NewLimiter(catalog *plans.Catalog) *Limiter {
	if catalog == nil {
		panic("usage: plans.Catalog is required")
	}
	return &Limiter{catalog: catalog}
}

// CheckLimit runs Check against the plan configured for the tier.
func (l *Limiter) CheckLimit(tier plans.Tier, res plans.Resource, current int64) (Result, error) {
	plan, err := l.catalog.Get(tier)
	if err != nil {
		return Result{}, err
	}
	return Check(plan, res, current)
}

// Percentage returns usage as a percentage of the limit, capped at 100.
// Returns -1 for unlimited resources and 0 on unknown tier or resource so
// dashboards never crash on display.
func (l *Limiter) Percentage(tier plans.Tier, res plans.Resource, current int64) int {
	plan, err := l.catalog.Get(tier)
	if err != nil {
		return 0
	}

	limit, exists := plan.Limits[res]
	if !exists {
		return 0
	}

	if limit == plans.Unlimited {
		return -1
	}
	if limit == 0 {
		return 100
	}

	return min(int((current*100)/limit), 100)
}
