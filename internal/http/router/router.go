// Package router wires handlers and middleware into the HTTP surface.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/zapshift/parcel-service/internal/http/handlers"
	"github.com/zapshift/parcel-service/internal/http/middleware"
	"github.com/zapshift/parcel-service/internal/http/middleware/ratelimit"
	"github.com/zapshift/parcel-service/internal/logx"
)

// Deps carries everything the route table needs.
type Deps struct {
	Logger   logx.Logger
	Base     *handlers.Handlers
	Parcels  *handlers.ParcelHandlers
	Payments *handlers.PaymentHandlers
	Accounts *handlers.AccountHandlers
	Riders   *handlers.RiderHandlers
	Verifier middleware.Verifier
	Roles    middleware.RoleResolver
	Limiter  *ratelimit.Middleware
}

// New constructs a chi-based http.Handler with base middleware and routes.
func New(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPatch, http.MethodDelete},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
	}))
	r.Use(middleware.Observability(d.Logger))
	if d.Limiter != nil {
		r.Use(d.Limiter.Handler())
	}

	authn := middleware.Authenticate(d.Logger, d.Verifier)
	admin := middleware.RequireAdmin(d.Logger, d.Roles)

	r.Get("/", d.Base.Root)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(d.Base.HealthcheckHead))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/parcels", func(r chi.Router) {
		r.Get("/", d.Parcels.List)
		r.Post("/", d.Parcels.Create)
		r.Get("/{id}", d.Parcels.Get)
		r.Delete("/{id}", d.Parcels.Delete)
	})

	r.Post("/create-checkout-session", d.Payments.CreateCheckoutSession)
	r.Patch("/payment-success", d.Payments.Confirm)
	r.With(authn).Get("/payments", d.Payments.List)

	r.Route("/users", func(r chi.Router) {
		r.Post("/", d.Accounts.Register)
		r.With(authn).Get("/", d.Accounts.Search)
		r.Get("/{email}/role", d.Accounts.RoleByEmail)
		r.With(authn, admin).Patch("/{id}/role", d.Accounts.SetRole)
	})

	r.Route("/riders", func(r chi.Router) {
		r.Post("/", d.Riders.Apply)
		r.Get("/", d.Riders.List)
		r.With(authn, admin).Patch("/{id}", d.Riders.Decide)
	})

	r.NotFound(http.HandlerFunc(d.Base.NotFound))

	return r
}
