package permissions

import (
	"fmt"
	"slices"

	"github.com/dmitrymomot/authzkit/pkg/plans"
)

// Permission represents a named capability gated by role and plan.
type Permission string

// Organization management.
const (
	MembersRead   Permission = "members.read"
	MembersInvite Permission = "members.invite"
	MembersManage Permission = "members.manage"
	OrgSettings   Permission = "org.settings"
	BillingView   Permission = "billing.view"
	BillingManage Permission = "billing.manage"
)

// Business data.
const (
	LeadsRead        Permission = "leads.read"
	LeadsManage      Permission = "leads.manage"
	LeadsExport      Permission = "leads.export"
	PropertiesRead   Permission = "properties.read"
	PropertiesManage Permission = "properties.manage"
	CampaignsManage  Permission = "campaigns.manage"
	ReportsView      Permission = "reports.view"
	APIAccess        Permission = "api.access"
	BrandingManage   Permission = "branding.manage"
)

// Requirement describes the plan gating and UX copy for a permission.
type Requirement struct {
	MinTier     plans.Tier
	Description string
}

// catalog maps every known permission to its requirement.
// Populated once at init and treated as immutable afterwards.
var catalog = map[Permission]Requirement{
	MembersRead:   {MinTier: plans.TierBasic, Description: "View organization members"},
	MembersInvite: {MinTier: plans.TierBasic, Description: "Invite new members"},
	MembersManage: {MinTier: plans.TierBasic, Description: "Change member roles and access"},
	OrgSettings:   {MinTier: plans.TierBasic, Description: "Edit organization settings"},
	BillingView:   {MinTier: plans.TierBasic, Description: "View billing and invoices"},
	BillingManage: {MinTier: plans.TierBasic, Description: "Manage the subscription and payment methods"},

	LeadsRead:        {MinTier: plans.TierBasic, Description: "View leads"},
	LeadsManage:      {MinTier: plans.TierBasic, Description: "Create and edit leads"},
	LeadsExport:      {MinTier: plans.TierPro, Description: "Export leads to CSV"},
	PropertiesRead:   {MinTier: plans.TierBasic, Description: "View properties"},
	PropertiesManage: {MinTier: plans.TierBasic, Description: "Create and edit properties"},
	CampaignsManage:  {MinTier: plans.TierPro, Description: "Run marketing campaigns"},
	ReportsView:      {MinTier: plans.TierPro, Description: "View analytics reports"},
	APIAccess:        {MinTier: plans.TierAgency, Description: "Access the public API"},
	BrandingManage:   {MinTier: plans.TierAgency, Description: "Customize branding and white-label settings"},
}

// Validate returns an error if the permission identifier is unknown.
// Unknown identifiers indicate a programmer error, not a denied check.
func Validate(perms ...Permission) error {
	for _, p := range perms {
		if _, exists := catalog[p]; !exists {
			return fmt.Errorf("%w: %q", ErrUnknownPermission, p)
		}
	}
	return nil
}

// Required returns the minimum plan tier that unlocks the permission.
func Required(p Permission) (plans.Tier, error) {
	req, exists := catalog[p]
	if !exists {
		return "", fmt.Errorf("%w: %q", ErrUnknownPermission, p)
	}
	return req.MinTier, nil
}

// Describe returns the human description used in upgrade and access prompts.
// Returns the raw identifier for unknown permissions so UI copy never breaks.
func Describe(p Permission) string {
	req, exists := catalog[p]
	if !exists {
		return string(p)
	}
	return req.Description
}

// ForTier returns every permission unlocked at the given tier or below,
// sorted for deterministic output.
func ForTier(tier plans.Tier) []Permission {
	result := make([]Permission, 0, len(catalog))
	for p, req := range catalog {
		if tier.AtLeast(req.MinTier) {
			result = append(result, p)
		}
	}
	slices.Sort(result)
	return result
}

// All returns every known permission, sorted.
func All() []Permission {
	result := make([]Permission, 0, len(catalog))
	for p := range catalog {
		result = append(result, p)
	}
	slices.Sort(result)
	return result
}
