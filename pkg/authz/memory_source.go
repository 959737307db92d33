package authz

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

type membershipKey struct {
	actorID uuid.UUID
	orgID   uuid.UUID
}

// InMemMembershipStore is a thread-safe MembershipStore backed by a map.
// Intended for tests and single-instance deployments; production setups
// should implement MembershipStore over their own data layer.
type InMemMembershipStore struct {
	mu          sync.RWMutex
	memberships map[membershipKey]*Membership
}

// NewInMemMembershipStore creates an empty in-memory membership store.
func NewInMemMembershipStore() *InMemMembershipStore {
	return &InMemMembershipStore{
		memberships: make(map[membershipKey]*Membership),
	}
}

// Membership returns a copy of the stored membership for the pair.
func (s *InMemMembershipStore) Membership(ctx context.Context, actorID, orgID uuid.UUID) (*Membership, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, exists := s.memberships[membershipKey{actorID: actorID, orgID: orgID}]
	if !exists {
		return nil, ErrMembershipNotFound
	}
	return m.Clone(), nil
}

// SaveMembership creates or replaces the membership for its (actor, org) pair.
func (s *InMemMembershipStore) SaveMembership(ctx context.Context, membership *Membership) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.memberships[membershipKey{actorID: membership.ActorID, orgID: membership.OrgID}] = membership.Clone()
	return nil
}

// ListMemberships returns copies of every membership in the organization,
// in no particular order.
func (s *InMemMembershipStore) ListMemberships(ctx context.Context, orgID uuid.UUID) ([]*Membership, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var members []*Membership
	for key, m := range s.memberships {
		if key.orgID == orgID {
			members = append(members, m.Clone())
		}
	}
	return members, nil
}

// InMemSubscriptionSource is a thread-safe SubscriptionSource backed by a map.
type InMemSubscriptionSource struct {
	mu            sync.RWMutex
	subscriptions map[uuid.UUID]*Subscription
}

// NewInMemSubscriptionSource creates an empty in-memory subscription source.
func NewInMemSubscriptionSource() *InMemSubscriptionSource {
	return &InMemSubscriptionSource{
		subscriptions: make(map[uuid.UUID]*Subscription),
	}
}

// Subscription returns a copy of the organization's subscription.
func (s *InMemSubscriptionSource) Subscription(ctx context.Context, orgID uuid.UUID) (*Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sub, exists := s.subscriptions[orgID]
	if !exists {
		return nil, ErrSubscriptionNotFound
	}
	return sub.Clone(), nil
}

// SetSubscription stores or replaces the organization's subscription.
func (s *InMemSubscriptionSource) SetSubscription(sub *Subscription) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.subscriptions[sub.OrgID] = sub.Clone()
}

// DeleteSubscription removes the organization's subscription.
func (s *InMemSubscriptionSource) DeleteSubscription(orgID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.subscriptions, orgID)
}
