package orgs

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Mountable interface {
	Handle() http.Handler
}

// RouterOptions configures which services to mount in the orgs module.
// Each service is optional and will only be mounted if provided.
type RouterOptions struct {
	Orgs Mountable
}

// Router creates a new orgs module router with configurable services.
//
// Example:
//
//	svc := orgs.NewService(checker, manager, storage, catalog, limiter, trials, usageSrc)
//
//	r := chi.NewRouter()
//	r.Mount("/orgs", orgs.Router(orgs.RouterOptions{
//	    Orgs: svc,
//	}))
func Router(opts RouterOptions) chi.Router {
	r := chi.NewRouter()

	if opts.Orgs != nil {
		r.Mount("/", opts.Orgs.Handle())
	}

	return r
}
