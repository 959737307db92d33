package roles

import "github.com/dmitrymomot/authzkit/pkg/permissions"

// Defaults returns the standard role definitions.
//
// Containment holds by construction: admin inherits everything member grants,
// owner inherits everything admin grants. Deployments that need different
// roles can pass their own definitions to NewModel.
func Defaults() map[Role]Definition {
	return map[Role]Definition{
		Member: {
			Permissions: []permissions.Permission{
				permissions.MembersRead,
				permissions.LeadsRead,
				permissions.LeadsManage,
				permissions.PropertiesRead,
				permissions.PropertiesManage,
				permissions.ReportsView,
			},
		},
		Admin: {
			Permissions: []permissions.Permission{
				permissions.MembersInvite,
				permissions.MembersManage,
				permissions.LeadsExport,
				permissions.CampaignsManage,
				permissions.APIAccess,
				permissions.BrandingManage,
				permissions.BillingView,
			},
			Inherits: []Role{Member},
		},
		Owner: {
			Permissions: []permissions.Permission{
				permissions.OrgSettings,
				permissions.BillingManage,
			},
			Inherits: []Role{Admin},
		},
	}
}

// DefaultModel builds a Model from Defaults.
// Panics on error because the built-in definitions are expected to be valid;
// a failure here is a programming error in this package.
func DefaultModel() *Model {
	model, err := NewModel(Defaults())
	if err != nil {
		panic("roles: invalid default definitions: " + err.Error())
	}
	return model
}
