// Package usage compares current resource counts against plan limits.
//
// The check is a pure function over plan configuration: the caller supplies
// the current usage from its own data layer, and the limiter never reads live
// counts itself. A resource is allowed while usage is strictly below the
// limit — reaching the limit blocks the next creation, not the one that
// reaches it.
//
// Basic usage:
//
//	limiter := usage.NewLimiter(catalog)
//
//	result, err := limiter.CheckLimit(tier, plans.ResourceLeads, currentLeads)
//	if err == nil && !result.Allowed {
//	    // Block creation, show result.Remaining and an upgrade prompt
//	}
package usage
