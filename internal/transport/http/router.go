package httptransport

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"storefront/internal/auth"
	"storefront/internal/health"
	"storefront/internal/notification"
	"storefront/internal/order"
	"storefront/internal/platform/metrics"
	"storefront/internal/platform/redis"
	"storefront/internal/product"
	"storefront/internal/user"
	"storefront/pkg/platform/middleware/ratelimit"
	"storefront/pkg/platform/middleware/requestid"
)

// Deps carries everything the router needs. Handlers stay thin; the router
// only decides which middleware guards which group of routes.
type Deps struct {
	Auth          *auth.Handler
	Users         *user.Handler
	Products      *product.Handler
	Orders        *order.Handler
	Notifications *notification.Handler

	Tokens  *auth.TokenService
	Metrics *metrics.Metrics
	Limiter *ratelimit.Limiter

	DB          *sql.DB
	Redis       *redis.Client
	Version     string
	Environment string
}

// NewRouter assembles the full route tree. Public routes (health, product
// browsing, register and login) skip authentication; everything else sits
// behind the bearer-token middleware.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(requestid.Middleware)
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware)
	}
	if d.Limiter != nil {
		r.Use(d.Limiter.Middleware)
	}

	health.NewHandler(d.DB, d.Redis, d.Version, d.Environment).Register(r)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		d.Auth.RegisterPublic(r)
		d.Products.RegisterPublic(r)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(d.Tokens))
		d.Auth.RegisterProtected(r)
		d.Users.Register(r)
		d.Products.RegisterProtected(r)
		d.Orders.Register(r)
		d.Notifications.Register(r)
	})

	return r
}
