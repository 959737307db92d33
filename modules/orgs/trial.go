package orgs

import (
	"errors"
	"net/http"
	"time"

	"github.com/dmitrymomot/authzkit/pkg/authz"
	"github.com/dmitrymomot/authzkit/pkg/trial"
)

// activateTrial starts a trial for the organization. Conflicting
// subscription state answers 409 with a distinguishing code; exhausted
// activation attempts answer 429 with the window reset time.
func (s *Service) activateTrial(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actorID, _ := authz.ActorFromContext(ctx)
	orgID, _ := authz.OrgFromContext(ctx)

	activation, err := s.trials.Activate(ctx, actorID, orgID)
	if err == nil {
		writeJSON(w, http.StatusCreated, activation)
		return
	}

	var limited *trial.RateLimitError
	if errors.As(err, &limited) {
		w.Header().Set("Retry-After", limited.ResetAt.UTC().Format(http.TimeFormat))
		writeError(w, http.StatusTooManyRequests, "rate_limited", "too many activation attempts", map[string]any{
			"reset_at": limited.ResetAt.UTC().Format(time.RFC3339),
		})
		return
	}

	var conflict *trial.ConflictError
	if errors.As(err, &conflict) {
		details := map[string]any{}
		if conflict.Code == trial.ConflictTrialAlreadyActive {
			details["days_remaining"] = conflict.DaysRemaining
		}
		writeError(w, http.StatusConflict, conflict.Code, "subscription state conflicts with trial activation", details)
		return
	}

	s.internalError(w, r, err)
}
