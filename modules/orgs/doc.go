// Package orgs wires the authorization layer into HTTP endpoints for a
// single organization: member management, plan and usage visibility, and
// trial activation.
//
// Every route sits behind the guard middleware, so denials come back as
// structured JSON with the missing permissions, required plan, or required
// role. The module owns no data: memberships, subscriptions, and usage
// counters are supplied through the storage interfaces, and the upstream
// authentication layer provides the actor identity via the X-Actor-ID
// header.
package orgs
