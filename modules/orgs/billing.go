package orgs

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/authzkit/pkg/authz"
	"github.com/dmitrymomot/authzkit/pkg/plans"
)

type planResponse struct {
	Tier          plans.Tier                 `json:"tier"`
	Name          string                     `json:"name"`
	Limits        map[plans.Resource]int64   `json:"limits"`
	TrialDaysLeft int                        `json:"trial_days_left,omitempty"`
	Upgrades      map[plans.Tier]upgradeHint `json:"upgrades,omitempty"`
}

type upgradeHint struct {
	IncreasedLimits map[plans.Resource]plans.ResourceChange `json:"increased_limits,omitempty"`
	NewResources    map[plans.Resource]int64                `json:"new_resources,omitempty"`
}

// showPlan reports the organization's effective plan, remaining trial days,
// and what each higher tier would change, for upgrade-prompt UX.
func (s *Service) showPlan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	orgID, _ := authz.OrgFromContext(ctx)

	tier := s.checker.EffectiveTier(ctx, orgID)
	plan, err := s.catalog.Get(tier)
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	resp := planResponse{
		Tier:   plan.Tier,
		Name:   plan.Name,
		Limits: plan.Limits,
	}
	resp.TrialDaysLeft = s.checker.TrialDaysRemaining(ctx, orgID)

	for _, candidate := range plans.Tiers() {
		if !s.catalog.IsUpgrade(tier, candidate) {
			continue
		}
		cmp, err := s.catalog.Compare(tier, candidate)
		if err != nil {
			continue
		}
		if resp.Upgrades == nil {
			resp.Upgrades = make(map[plans.Tier]upgradeHint)
		}
		resp.Upgrades[candidate] = upgradeHint{
			IncreasedLimits: cmp.IncreasedLimits,
			NewResources:    cmp.NewResources,
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

type usageResponse struct {
	Resource   plans.Resource `json:"resource"`
	Used       int64          `json:"used"`
	Limit      int64          `json:"limit"`
	Remaining  int64          `json:"remaining"`
	Allowed    bool           `json:"allowed"`
	Percentage int            `json:"percentage"`
}

// showUsage reports usage against the plan limit for one resource.
func (s *Service) showUsage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	orgID, _ := authz.OrgFromContext(ctx)

	res := plans.Resource(chi.URLParam(r, "resource"))
	tier := s.checker.EffectiveTier(ctx, orgID)

	current, err := s.usage.UsageCount(ctx, orgID, res)
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	result, err := s.limiter.CheckLimit(tier, res, current)
	if err != nil {
		writeError(w, http.StatusNotFound, "unknown_resource", "resource is not metered by the plan", nil)
		return
	}

	writeJSON(w, http.StatusOK, usageResponse{
		Resource:   res,
		Used:       current,
		Limit:      result.Limit,
		Remaining:  result.Remaining,
		Allowed:    result.Allowed,
		Percentage: s.limiter.Percentage(tier, res, current),
	})
}
