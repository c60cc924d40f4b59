// Package health reports liveness of the process and its dependencies.
package health

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"storefront/internal/platform/redis"
	"storefront/pkg/platform/httputil"
)

const checkTimeout = 2 * time.Second

// Handler serves GET /healthz. Nil dependencies are reported as disabled
// rather than failing the check.
type Handler struct {
	db          *sql.DB
	redis       *redis.Client
	version     string
	environment string
}

// NewHandler constructs a health handler.
func NewHandler(db *sql.DB, redis *redis.Client, version, environment string) *Handler {
	return &Handler{db: db, redis: redis, version: version, environment: environment}
}

// Register mounts the health endpoint.
func (h *Handler) Register(r chi.Router) {
	r.Get("/healthz", h.HandleHealth)
}

type response struct {
	Status       string            `json:"status"`
	Version      string            `json:"version"`
	Environment  string            `json:"environment"`
	Dependencies map[string]string `json:"dependencies"`
}

// HandleHealth pings every configured dependency in parallel and reports
// per-dependency status. Any failing dependency degrades the overall status
// and the response is served as 503.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
	defer cancel()

	dbStatus, redisStatus := "disabled", "disabled"

	g, ctx := errgroup.WithContext(ctx)
	if h.db != nil {
		g.Go(func() error {
			if err := h.db.PingContext(ctx); err != nil {
				dbStatus = "unhealthy"
				return err
			}
			dbStatus = "healthy"
			return nil
		})
	}
	if h.redis != nil {
		g.Go(func() error {
			if err := h.redis.Health(ctx); err != nil {
				redisStatus = "unhealthy"
				return err
			}
			redisStatus = "healthy"
			return nil
		})
	}

	status, code := "healthy", http.StatusOK
	if err := g.Wait(); err != nil {
		status, code = "unhealthy", http.StatusServiceUnavailable
	}

	httputil.WriteJSON(w, code, response{
		Status:      status,
		Version:     h.version,
		Environment: h.environment,
		Dependencies: map[string]string{
			"database": dbStatus,
			"redis":    redisStatus,
		},
	})
}
