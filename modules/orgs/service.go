package orgs

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmitrymomot/authzkit/pkg/authz"
	"github.com/dmitrymomot/authzkit/pkg/guard"
	"github.com/dmitrymomot/authzkit/pkg/permissions"
	"github.com/dmitrymomot/authzkit/pkg/plans"
	"github.com/dmitrymomot/authzkit/pkg/trial"
	"github.com/dmitrymomot/authzkit/pkg/usage"
)

// MembershipStorage defines the storage operations the module needs beyond
// the checker's read path.
type MembershipStorage interface {
	authz.MembershipStore

	ListMemberships(ctx context.Context, orgID uuid.UUID) ([]*authz.Membership, error)
}

// UsageSource supplies live usage counters from the data layer. The module
// never tracks usage itself.
type UsageSource interface {
	UsageCount(ctx context.Context, orgID uuid.UUID, res plans.Resource) (int64, error)
}

// Service exposes member management, usage, plan, and trial-activation
// endpoints for a single organization, guarded by the authorization layer.
type Service struct {
	checker *authz.Checker
	manager *authz.Manager
	storage MembershipStorage
	catalog *plans.Catalog
	limiter *usage.Limiter
	trials  *trial.Guard
	usage   UsageSource
	logger  *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLogger enables denial and error logging at the HTTP boundary.
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService wires the organization endpoints. Panics if any dependency is
// nil to fail fast on initialization errors.
func NewService(
	checker *authz.Checker,
	manager *authz.Manager,
	storage MembershipStorage,
	catalog *plans.Catalog,
	limiter *usage.Limiter,
	trials *trial.Guard,
	usageSrc UsageSource,
	opts ...ServiceOption,
) *Service {
	if checker == nil || manager == nil || storage == nil || catalog == nil ||
		limiter == nil || trials == nil || usageSrc == nil {
		panic("orgs: all dependencies are required")
	}

	s := &Service{
		checker: checker,
		manager: manager,
		storage: storage,
		catalog: catalog,
		limiter: limiter,
		trials:  trials,
		usage:   usageSrc,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handle returns the module's router. All routes live under /{orgID} and
// expect the actor identity in the X-Actor-ID header, set by the upstream
// authentication layer.
func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()

	r.Route("/{orgID}", func(r chi.Router) {
		r.Use(s.withIdentity)

		r.With(s.require(guard.RequirePermission(s.checker, permissions.MembersRead))).
			Get("/members", s.listMembers)
		r.With(s.require(guard.Combine(
			guard.RequireActiveSubscription(s.checker),
			guard.RequirePermission(s.checker, permissions.MembersInvite),
		))).Post("/members", s.inviteMember)

		manage := s.require(guard.RequirePermission(s.checker, permissions.MembersManage))
		r.With(manage).Put("/members/{actorID}/role", s.updateRole)
		r.With(manage).Put("/members/{actorID}/permissions", s.updatePermissions)
		r.With(manage).Delete("/members/{actorID}", s.archiveMember)

		r.With(s.require(guard.RequirePermission(s.checker, permissions.BillingView))).
			Get("/plan", s.showPlan)
		r.With(s.require(guard.RequirePermission(s.checker, permissions.BillingView))).
			Get("/usage/{resource}", s.showUsage)

		r.With(s.require(guard.RequirePermission(s.checker, permissions.BillingManage))).
			Post("/trial", s.activateTrial)
	})

	return r
}

// require adapts a guard into chi middleware, with optional denial logging.
func (s *Service) require(g guard.Guard) func(http.Handler) http.Handler {
	var opts []guard.MiddlewareOption
	if s.logger != nil {
		opts = append(opts, guard.WithLogger(s.logger))
	}
	return guard.Middleware(g, opts...)
}

// withIdentity populates the request context with the actor identity from
// the X-Actor-ID header and the organization from the URL. Missing or
// malformed identities leave the context unset, so the guards answer 401.
func (s *Service) withIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if actorID, err := uuid.Parse(r.Header.Get("X-Actor-ID")); err == nil {
			ctx = authz.WithActor(ctx, actorID)
		}
		if orgID, err := uuid.Parse(chi.URLParam(r, "orgID")); err == nil {
			ctx = authz.WithOrg(ctx, orgID)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
