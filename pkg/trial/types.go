package trial

import (
	"time"

	"github.com/dmitrymomot/authzkit/pkg/plans"
)

// Activation describes a freshly started trial.
type Activation struct {
	Status        string     `json:"status"`
	Tier          plans.Tier `json:"tier"`
	TrialEndsAt   time.Time  `json:"trial_ends_at"`
	DaysRemaining int        `json:"days_remaining"`
}

// StatusTrialing is the status reported on successful activation.
const StatusTrialing = "trialing"
