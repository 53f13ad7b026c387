package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"service-lastmile/internal/http/handlers"
)

const requestTimeout = 5 * time.Second

// Options holds optional router dependencies.
type Options struct {
	// Observability wraps every route. Nil means no request metrics.
	Observability func(http.Handler) http.Handler
	// Metrics serves GET /metrics. Defaults to promhttp.Handler().
	Metrics http.Handler
}

// New constructs a chi-based http.Handler with base middleware and routes.
func New(h *handlers.Handlers, d *handlers.DeliveryHandler, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	if opts.Observability != nil {
		r.Use(opts.Observability)
	}
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/ping", h.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(h.HealthcheckHead))

	metrics := opts.Metrics
	if metrics == nil {
		metrics = promhttp.Handler()
	}
	r.Method(http.MethodGet, "/metrics", metrics)

	r.Route("/v1/last-mile/internal/deliveries", func(r chi.Router) {
		r.Post("/", d.Create)
		r.Get("/", d.FindByOrderID)
		r.Post("/{id}/assign-driver", d.AssignDriver)
		r.Post("/{id}/cancel", d.Cancel)
	})

	r.Route("/api/v1/last-mile", func(r chi.Router) {
		r.Post("/", d.Register)
		r.Get("/{id}", d.Get)
		r.Patch("/{id}", d.UpdateStatus)
		r.Delete("/{id}", d.SoftDelete)
	})

	r.NotFound(http.HandlerFunc(h.NotFound))

	return r
}
