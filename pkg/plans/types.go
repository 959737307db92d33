package plans

import "fmt"

// Tier identifies a subscription plan tier.
type Tier string

// Plan tiers in ascending order.
const (
	TierBasic      Tier = "basic"
	TierPro        Tier = "pro"
	TierAgency     Tier = "agency"
	TierEnterprise Tier = "enterprise"
)

// tierOrder defines the total ordering over tiers.
// Higher rank unlocks everything a lower rank does.
var tierOrder = map[Tier]int{
	TierBasic:      0,
	TierPro:        1,
	TierAgency:     2,
	TierEnterprise: 3,
}

// Valid reports whether the tier is a known plan tier.
func (t Tier) Valid() bool {
	_, ok := tierOrder[t]
	return ok
}

// AtLeast reports whether the tier is equal to or higher than other.
// Unknown tiers always rank below every known tier.
func (t Tier) AtLeast(other Tier) bool {
	tr, ok := tierOrder[t]
	if !ok {
		return false
	}
	or, ok := tierOrder[other]
	if !ok {
		return true
	}
	return tr >= or
}

// UnmarshalText parses a tier from configuration values, rejecting unknown names.
func (t *Tier) UnmarshalText(text []byte) error {
	tier := Tier(text)
	if !tier.Valid() {
		return fmt.Errorf("plans: unknown tier %q", text)
	}
	*t = tier
	return nil
}

// Tiers returns all known tiers in ascending order.
func Tiers() []Tier {
	return []Tier{TierBasic, TierPro, TierAgency, TierEnterprise}
}

// Resource represents a countable tenant resource type.
type Resource string

// Predefined resource types.
const (
	ResourceLeads      Resource = "leads"
	ResourceProperties Resource = "properties"
	ResourceSeats      Resource = "seats"
	ResourceCampaigns  Resource = "campaigns"
)

// Unlimited indicates no limit for a resource (-1 chosen for SQL compatibility).
const Unlimited int64 = -1

// ResourceChange represents a change in resource limit.
type ResourceChange struct {
	From int64 `json:"from"`
	To   int64 `json:"to"`
}
