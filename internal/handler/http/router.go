package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/robomart/toystore/pkg/health"
	"github.com/robomart/toystore/pkg/middleware"
)

const serviceName = "toystore"

// RouterDeps bundles everything the router mounts.
type RouterDeps struct {
	Cart    *CartHandler
	Catalog *CatalogHandler
	Contact *ContactHandler
	Health  *health.Handler
	Logger  *slog.Logger
}

// NewRouter builds the HTTP router with all middleware and routes.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(deps.Logger))
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Compress(5))
	r.Use(chimiddleware.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(deps.Logger))
	r.Use(middleware.PrometheusMetrics(serviceName))
	r.Use(middleware.Tracing(serviceName))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(CORS)

	r.Get("/health/live", deps.Health.LivenessHandler())
	r.Get("/health/ready", deps.Health.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", deps.Catalog.ListProducts)
			r.Get("/{idOrSlug}", deps.Catalog.GetProduct)
		})

		r.Post("/contact", deps.Contact.Submit)

		r.Group(func(r chi.Router) {
			r.Use(RequireSession)

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", deps.Cart.GetCart)
				r.Delete("/", deps.Cart.ClearCart)
				r.Post("/items", deps.Cart.AddItem)
				r.Post("/items/{productID}/increment", deps.Cart.IncrementItem)
				r.Post("/items/{productID}/decrement", deps.Cart.DecrementItem)
				r.Delete("/items/{productID}", deps.Cart.RemoveItem)
			})

			r.Post("/checkout", deps.Cart.Checkout)
		})
	})

	return r
}
