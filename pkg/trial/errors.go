package trial

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrRateLimited is returned when an actor exhausted their activation
	// attempts for the current window.
	ErrRateLimited = errors.New("trial: activation rate limit exceeded")

	// ErrConflict is the class of "subscription state already satisfies the
	// request" failures. Match with errors.Is, then inspect the
	// *ConflictError code with errors.As.
	ErrConflict = errors.New("trial: subscription state conflict")

	// ErrInvalidConfig indicates that the guard configuration is invalid.
	ErrInvalidConfig = errors.New("trial: invalid configuration")
)

// Conflict codes distinguishing why an activation was rejected.
const (
	ConflictActiveSubscription = "ACTIVE_SUBSCRIPTION"
	ConflictTrialAlreadyActive = "TRIAL_ALREADY_ACTIVE"
)

// RateLimitError carries the moment the attempt window resets.
type RateLimitError struct {
	ResetAt time.Time
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("trial: activation rate limit exceeded, resets at %s", e.ResetAt.Format(time.RFC3339))
}

// Is makes the error match ErrRateLimited.
func (e *RateLimitError) Is(target error) bool {
	return target == ErrRateLimited
}

// ConflictError reports that the organization's subscription state already
// satisfies (or forbids) the requested activation. No mutation happened.
type ConflictError struct {
	Code string

	// DaysRemaining is set for TRIAL_ALREADY_ACTIVE: whole days left in the
	// existing trial, rounded up.
	DaysRemaining int
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("trial: conflict %s", e.Code)
}

// Is makes the error match ErrConflict.
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}
