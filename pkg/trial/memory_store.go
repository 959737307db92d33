package trial

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/authzkit/pkg/authz"
	"github.com/dmitrymomot/authzkit/pkg/plans"
)

// window holds a fixed attempt window for one key.
type window struct {
	count   int
	resetAt time.Time
}

// InMemAttemptStore implements AttemptStore using in-memory storage.
type InMemAttemptStore struct {
	mu      sync.Mutex
	windows map[string]*window
	now     func() time.Time

	cleanupInterval time.Duration
	stopCleanup     chan struct{}
}

// AttemptStoreOption configures an InMemAttemptStore.
type AttemptStoreOption func(*InMemAttemptStore)

// WithAttemptCleanupInterval sets how often expired windows are removed.
// Set to 0 to disable automatic cleanup.
func WithAttemptCleanupInterval(interval time.Duration) AttemptStoreOption {
	return func(s *InMemAttemptStore) {
		s.cleanupInterval = interval
	}
}

// WithAttemptClock overrides the time source. Intended for tests.
func WithAttemptClock(now func() time.Time) AttemptStoreOption {
	return func(s *InMemAttemptStore) {
		s.now = now
	}
}

// NewInMemAttemptStore creates an in-memory attempt store with optional cleanup.
func NewInMemAttemptStore(opts ...AttemptStoreOption) *InMemAttemptStore {
	s := &InMemAttemptStore{
		windows:         make(map[string]*window),
		now:             time.Now,
		cleanupInterval: 5 * time.Minute,
		stopCleanup:     make(chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.cleanupInterval > 0 {
		go s.cleanup()
	}

	return s
}

func (s *InMemAttemptStore) Increment(ctx context.Context, key string, windowSize time.Duration) (int, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	w, exists := s.windows[key]
	if !exists || !now.Before(w.resetAt) {
		w = &window{resetAt: now.Add(windowSize)}
		s.windows[key] = w
	}

	w.count++
	return w.count, w.resetAt, nil
}

func (s *InMemAttemptStore) Status(ctx context.Context, key string) (int, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, exists := s.windows[key]
	if !exists || !s.now().Before(w.resetAt) {
		return 0, time.Time{}, nil
	}
	return w.count, w.resetAt, nil
}

func (s *InMemAttemptStore) Reset(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.windows, key)
	return nil
}

// cleanup runs periodically to remove expired windows.
func (s *InMemAttemptStore) cleanup() {
	ticker := time.NewTicker(s.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.removeExpired()
		case <-s.stopCleanup:
			return
		}
	}
}

func (s *InMemAttemptStore) removeExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for key, w := range s.windows {
		if !now.Before(w.resetAt) {
			delete(s.windows, key)
		}
	}
}

// Close stops the cleanup goroutine. Safe to call multiple times.
func (s *InMemAttemptStore) Close() {
	select {
	case <-s.stopCleanup:
		// Already closed
	default:
		close(s.stopCleanup)
	}
}

// InMemSubscriptionStore implements SubscriptionStore using in-memory
// storage. It also serves as an authz.SubscriptionSource, so the
// permission checker and the activation guard can share the same data.
type InMemSubscriptionStore struct {
	mu   sync.RWMutex
	subs map[uuid.UUID]*authz.Subscription
}

// NewInMemSubscriptionStore creates an empty in-memory subscription store.
func NewInMemSubscriptionStore() *InMemSubscriptionStore {
	return &InMemSubscriptionStore{subs: make(map[uuid.UUID]*authz.Subscription)}
}

// SetSubscription stores a copy of the subscription, replacing any
// existing one for the organization.
func (s *InMemSubscriptionStore) SetSubscription(sub *authz.Subscription) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs[sub.OrgID] = sub.Clone()
}

// DeleteSubscription removes the subscription for the organization.
func (s *InMemSubscriptionStore) DeleteSubscription(orgID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, orgID)
}

func (s *InMemSubscriptionStore) Subscription(ctx context.Context, orgID uuid.UUID) (*authz.Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sub, exists := s.subs[orgID]
	if !exists {
		return nil, authz.ErrSubscriptionNotFound
	}
	return sub.Clone(), nil
}

func (s *InMemSubscriptionStore) BeginTrial(ctx context.Context, orgID uuid.UUID, tier plans.Tier, now, endsAt time.Time) (*authz.Subscription, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, exists := s.subs[orgID]; exists && protectedAt(existing, now) {
		return existing.Clone(), false, nil
	}

	ends := endsAt
	sub := &authz.Subscription{
		OrgID:       orgID,
		Tier:        tier,
		Status:      authz.StatusTrialing,
		TrialEndsAt: &ends,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.subs[orgID] = sub
	return sub.Clone(), true, nil
}
