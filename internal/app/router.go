package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wtr-org/backoffice/internal/auth"
	"github.com/wtr-org/backoffice/internal/billing"
	"github.com/wtr-org/backoffice/internal/catalog/products"
	"github.com/wtr-org/backoffice/internal/catalog/stocks"
	"github.com/wtr-org/backoffice/internal/company"
	"github.com/wtr-org/backoffice/internal/customers"
	"github.com/wtr-org/backoffice/internal/employees"
	"github.com/wtr-org/backoffice/internal/observability"
	"github.com/wtr-org/backoffice/internal/payments"
	"github.com/wtr-org/backoffice/internal/platform/httpx"
)

// RouterParams aggregates everything the router needs.
type RouterParams struct {
	Logger          *slog.Logger
	Config          *Config
	Metrics         *observability.Metrics
	TokenIssuer     *auth.TokenIssuer
	Denylist        *auth.Denylist
	AuthHandler     *auth.Handler
	EmployeeHandler *employees.Handler
	CustomerHandler *customers.Handler
	ProductHandler  *products.Handler
	StockHandler    *stocks.Handler
	PaymentHandler  *payments.Handler
	CompanyHandler  *company.Handler
	BillingHandler  *billing.Handler
}

// NewRouter assembles the HTTP routing tree. Login and signup are the
// only business endpoints reachable without a token.
func NewRouter(p RouterParams) chi.Router {
	r := chi.NewRouter()
	for _, mw := range MiddlewareStack(MiddlewareConfig{Logger: p.Logger, Config: p.Config, Metrics: p.Metrics}) {
		r.Use(mw)
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if p.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", p.Metrics.Handler())
	}

	r.Route("/auth", func(r chi.Router) {
		p.AuthHandler.MountPublicRoutes(r)
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(p.TokenIssuer, p.Denylist, p.Logger))
			p.AuthHandler.MountProtectedRoutes(r)
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(p.TokenIssuer, p.Denylist, p.Logger))

		r.Route("/employees", p.EmployeeHandler.MountRoutes)
		r.Route("/customers", p.CustomerHandler.MountRoutes)
		r.Route("/products", p.ProductHandler.MountRoutes)
		r.Route("/stocks", p.StockHandler.MountRoutes)
		r.Route("/payment-methods", p.PaymentHandler.MountRoutes)
		r.Route("/company-settings", p.CompanyHandler.MountRoutes)
		r.Route("/bills", p.BillingHandler.MountRoutes)
	})

	return r
}
