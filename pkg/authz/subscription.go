package authz

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/authzkit/pkg/plans"
)

// SubscriptionStatus represents the current state of a subscription.
type SubscriptionStatus string

const (
	StatusTrialing  SubscriptionStatus = "trialing"
	StatusActive    SubscriptionStatus = "active"
	StatusPastDue   SubscriptionStatus = "past_due"
	StatusCancelled SubscriptionStatus = "cancelled"
)

// Subscription represents an organization's subscription to a plan tier.
// Each organization has at most one subscription; none implies the basic tier.
type Subscription struct {
	OrgID       uuid.UUID
	Tier        plans.Tier
	Status      SubscriptionStatus
	TrialEndsAt *time.Time // Set only while the subscription is (or was) a trial
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CancelledAt *time.Time
}

// IsTrialExpiredAt reports whether the trial window has ended at the given
// time. A trialing subscription without an end date has no window to be in,
// so it counts as expired.
func (s *Subscription) IsTrialExpiredAt(now time.Time) bool {
	if s == nil {
		return false
	}
	if s.TrialEndsAt == nil {
		return s.Status == StatusTrialing
	}
	return !now.Before(*s.TrialEndsAt)
}

// IsActiveAt reports whether the subscription entitles the organization to
// its paid tier at the given time: active, or a trial that has not ended yet.
// Past-due and cancelled subscriptions do not count as active.
func (s *Subscription) IsActiveAt(now time.Time) bool {
	if s == nil {
		return false
	}
	switch s.Status {
	case StatusActive:
		return true
	case StatusTrialing:
		return !s.IsTrialExpiredAt(now)
	default:
		return false
	}
}

// EffectiveTierAt returns the plan tier the subscription actually entitles at
// the given time. A cancelled subscription or an expired trial falls back to
// the basic tier no matter what the stored tier says. Past-due subscriptions
// keep their tier for permission checks; payment enforcement happens through
// the active-subscription guard instead.
func (s *Subscription) EffectiveTierAt(now time.Time) plans.Tier {
	if s == nil {
		return plans.TierBasic
	}

	switch s.Status {
	case StatusCancelled:
		return plans.TierBasic
	case StatusTrialing:
		if s.IsTrialExpiredAt(now) {
			return plans.TierBasic
		}
	case StatusActive, StatusPastDue:
	default:
		return plans.TierBasic
	}

	if !s.Tier.Valid() {
		return plans.TierBasic
	}
	return s.Tier
}

// TrialDaysRemainingAt returns whole days left in the trial at the given time,
// rounded up so a trial ending in 10 minutes still reads as one day.
// Returns 0 if the subscription is not a live trial.
func (s *Subscription) TrialDaysRemainingAt(now time.Time) int {
	if s == nil || s.Status != StatusTrialing || s.TrialEndsAt == nil {
		return 0
	}

	remaining := s.TrialEndsAt.Sub(now)
	if remaining <= 0 {
		return 0
	}
	return int(math.Ceil(remaining.Hours() / 24))
}

// Clone returns a deep copy of the subscription.
func (s *Subscription) Clone() *Subscription {
	if s == nil {
		return nil
	}
	clone := *s
	if s.TrialEndsAt != nil {
		t := *s.TrialEndsAt
		clone.TrialEndsAt = &t
	}
	if s.CancelledAt != nil {
		t := *s.CancelledAt
		clone.CancelledAt = &t
	}
	return &clone
}
