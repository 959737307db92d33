// Package plans defines the subscription plan catalog for multi-tenant SaaS
// applications: plan tiers, their total ordering, and per-tier resource limits.
//
// Tiers form a strict order (basic < pro < agency < enterprise) which is used
// to answer upgrade/downgrade questions and to gate permissions by minimum
// tier. Plan configuration is loaded once at startup from a Source and is
// immutable afterwards, so catalog lookups are safe for concurrent use.
//
// Basic usage:
//
//	catalog, err := plans.NewCatalog(ctx, plans.DefaultSource())
//	if err != nil {
//	    // Handle invalid plan configuration
//	}
//
//	plan, err := catalog.Get(plans.TierPro)
//	limit := plan.Limits[plans.ResourceLeads]
//
//	if catalog.IsUpgrade(plans.TierBasic, plans.TierAgency) {
//	    // Offer the upgrade
//	}
//
// Plans can also be loaded from a YAML file:
//
//	catalog, err := plans.NewCatalog(ctx, plans.NewFileSource("plans.yml"))
package plans
