// Package trial lets an actor self-activate a time-boxed trial subscription
// for an organization, with two independent safeguards.
//
// Rate limiting: each actor gets a fixed number of activation attempts per
// window (3 per 24h by default), tracked through an injectable
// AttemptStore so the counter can live in process memory for tests and
// single instances, or in Redis for multi-instance deployments. A blocked
// attempt neither consumes the counter's useful effect nor extends the
// window.
//
// Idempotent transition: activation is rejected with a Conflict when the
// organization already holds an active paid subscription or a live trial,
// and the trial upsert is atomic per organization — two concurrent
// activations can never produce two divergent trial windows; the loser
// observes the winner's trial and gets the conflict.
//
// Basic usage:
//
//	cfg, err := trial.LoadConfig()
//	store := trial.NewInMemAttemptStore()
//	defer store.Close()
//
//	g, err := trial.NewGuard(cfg, store, subscriptions)
//
//	activation, err := g.Activate(ctx, actorID, orgID)
//	switch {
//	case errors.Is(err, trial.ErrRateLimited):
//	    // 429: too many attempts
//	case errors.Is(err, trial.ErrConflict):
//	    // 409: inspect the *trial.ConflictError code
//	case err == nil:
//	    // Trial created: activation.DaysRemaining days left
//	}
package trial
