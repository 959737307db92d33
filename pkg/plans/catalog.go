package plans

import (
	"context"
	"errors"
	"fmt"
)

// Source defines how plan configurations are loaded into the catalog.
type Source interface {
	Load(ctx context.Context) (map[Tier]Plan, error)
}

// Catalog provides lookups over an immutable set of plan configurations.
// The internal map is never modified after construction, so a Catalog is
// safe for concurrent use without locking.
type Catalog struct {
	plans map[Tier]Plan
}

// NewCatalog creates a Catalog from the given Source.
// The loaded configuration is validated once here so that every later
// lookup can assume internally consistent data.
func NewCatalog(ctx context.Context, src Source) (*Catalog, error) {
	if src == nil {
		panic("plans: Source is required")
	}

	plans, err := src.Load(ctx)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadPlans, err)
	}

	if err := validatePlans(plans); err != nil {
		return nil, err
	}

	return &Catalog{plans: plans}, nil
}

// Get returns the plan configured for the given tier.
func (c *Catalog) Get(tier Tier) (Plan, error) {
	plan, exists := c.plans[tier]
	if !exists {
		return Plan{}, ErrTierNotFound
	}
	return plan, nil
}

// Limit returns the configured limit for a resource on the given tier.
// Resources absent from the plan are reported as not found.
func (c *Catalog) Limit(tier Tier, res Resource) (int64, error) {
	plan, err := c.Get(tier)
	if err != nil {
		return 0, err
	}

	limit, exists := plan.Limits[res]
	if !exists {
		return 0, fmt.Errorf("%w: resource %q not configured for tier %q", ErrInvalidConfiguration, res, tier)
	}
	return limit, nil
}

// IsUpgrade reports whether moving from one tier to another increases rank.
func (c *Catalog) IsUpgrade(from, to Tier) bool {
	return to.AtLeast(from) && to != from
}

// Compare returns the limit differences between two configured tiers.
func (c *Catalog) Compare(from, to Tier) (*Comparison, error) {
	current, err := c.Get(from)
	if err != nil {
		return nil, err
	}
	target, err := c.Get(to)
	if err != nil {
		return nil, err
	}
	return Compare(&current, &target), nil
}

// validatePlans ensures plan configurations are internally consistent.
// Catches common configuration errors early to prevent runtime issues.
func validatePlans(plans map[Tier]Plan) error {
	for _, tier := range Tiers() {
		if _, exists := plans[tier]; !exists {
			return errors.Join(ErrInvalidConfiguration,
				fmt.Errorf("missing plan for tier %q", tier))
		}
	}

	for tier, plan := range plans {
		if !tier.Valid() {
			return errors.Join(ErrInvalidConfiguration,
				fmt.Errorf("unknown tier %q", tier))
		}

		if plan.Tier != tier {
			return errors.Join(ErrInvalidConfiguration,
				fmt.Errorf("tier mismatch: map key %q != plan.Tier %q", tier, plan.Tier))
		}

		if plan.TrialDays < 0 {
			return errors.Join(ErrInvalidConfiguration,
				fmt.Errorf("plan %q has negative trial days: %d", tier, plan.TrialDays))
		}

		for res, limit := range plan.Limits {
			if limit < Unlimited {
				return errors.Join(ErrInvalidConfiguration,
					fmt.Errorf("plan %q has invalid limit for %q: %d", tier, res, limit))
			}
		}
	}

	return nil
}
