package guard

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// MiddlewareOption configures middleware behavior.
type MiddlewareOption func(*middlewareConfig)

type middlewareConfig struct {
	logger   *slog.Logger
	onDenial func(w http.ResponseWriter, r *http.Request, denial *Denial)
}

// WithLogger enables denial logging at warn level.
// Logging happens only at this HTTP boundary; the guards themselves stay
// side-effect free.
func WithLogger(logger *slog.Logger) MiddlewareOption {
	return func(c *middlewareConfig) {
		c.logger = logger
	}
}

// WithDenialHandler overrides how denials are written to the response.
func WithDenialHandler(fn func(w http.ResponseWriter, r *http.Request, denial *Denial)) MiddlewareOption {
	return func(c *middlewareConfig) {
		c.onDenial = fn
	}
}

// Middleware wraps a handler with the given guards. Guards run in order; the
// first denial is written as a JSON response and the handler never executes.
// When every guard passes, the handler executes exactly once.
func Middleware(g Guard, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	if g == nil {
		panic("guard.Middleware: guard is required")
	}

	cfg := &middlewareConfig{
		onDenial: func(w http.ResponseWriter, r *http.Request, denial *Denial) {
			WriteDenial(w, denial)
		},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			denial := g(r.Context())
			if denial == nil {
				next.ServeHTTP(w, r)
				return
			}

			if cfg.logger != nil {
				cfg.logger.WarnContext(r.Context(), "request denied",
					slog.Int("status", denial.Status),
					slog.String("code", denial.Code),
					slog.String("path", r.URL.Path),
				)
			}

			cfg.onDenial(w, r, denial)
		})
	}
}

// WriteDenial writes the denial as a JSON error response.
func WriteDenial(w http.ResponseWriter, denial *Denial) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(denial.Status)
	_ = json.NewEncoder(w).Encode(map[string]any{"error": denial})
}
