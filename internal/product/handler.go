package product

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"storefront/internal/product/models"
	"storefront/internal/product/store"
	usermodels "storefront/internal/user/models"
	dErrors "storefront/pkg/domain-errors"
	"storefront/pkg/platform/httputil"
	"storefront/pkg/requestcontext"
	"storefront/pkg/schema"
)

// Handler wires catalog endpoints to the product service.
type Handler struct {
	service *Service
	logger  *slog.Logger
}

// NewHandler constructs a product handler.
func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterPublic mounts the read endpoints.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Get("/products", h.HandleList)
	r.Get("/products/{id}", h.HandleGet)
}

// RegisterProtected mounts the write endpoints. The router is expected to
// carry authentication middleware.
func (h *Handler) RegisterProtected(r chi.Router) {
	r.Post("/products", h.HandleCreate)
	r.Put("/products/{id}", h.HandleUpdate)
	r.Delete("/products/{id}", h.HandleDelete)
}

// HandleList handles GET /products with status, tag and price-range filters.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	f, err := parseFilter(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	page, size := httputil.Pagination(r)
	products, total, err := h.service.List(ctx, f, page, size)
	if err != nil {
		h.logger.ErrorContext(ctx, "product list failed", "error", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, schema.NewPage(products, total, page, size))
}

// HandleGet handles GET /products/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	p, err := h.service.Get(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p)
}

// HandleCreate handles POST /products. Vendor or admin only; the body is
// validated against the product schema so every field error comes back in a
// single 422.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	callerID, ok := requireVendor(w, r)
	if !ok {
		return
	}
	body, ok := httputil.DecodeRaw(w, r)
	if !ok {
		return
	}

	p, err := h.service.Create(ctx, callerID, body)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, schema.OK(p, "product created"))
}

// HandleUpdate handles PUT /products/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	callerID, ok := requireVendor(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	body, ok := httputil.DecodeRaw(w, r)
	if !ok {
		return
	}

	p, err := h.service.Update(ctx, callerID, isAdmin(r), id, body)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p)
}

// HandleDelete handles DELETE /products/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	callerID, ok := requireVendor(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(ctx, callerID, isAdmin(r), id); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func parseFilter(r *http.Request) (store.Filter, error) {
	var f store.Filter
	q := r.URL.Query()

	if raw := q.Get("status"); raw != "" {
		status := models.Status(raw)
		if !status.IsValid() {
			return f, dErrors.New(dErrors.CodeValidation, "unknown status filter")
		}
		f.Status = &status
	}
	if raw := q.Get("tag"); raw != "" {
		f.Tag = &raw
	}
	for name, dest := range map[string]**float64{"min_price": &f.MinPrice, "max_price": &f.MaxPrice} {
		raw := q.Get(name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			return f, dErrors.New(dErrors.CodeValidation, name+" must be a non-negative number")
		}
		*dest = &v
	}
	return f, nil
}

func requireVendor(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	ctx := r.Context()
	role := requestcontext.UserRole(ctx)
	if role != string(usermodels.RoleVendor) && role != string(usermodels.RoleAdmin) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "vendor or admin role required"))
		return uuid.Nil, false
	}
	return requestcontext.UserID(ctx), true
}

func isAdmin(r *http.Request) bool {
	return requestcontext.UserRole(r.Context()) == string(usermodels.RoleAdmin)
}

func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid product id"))
		return uuid.Nil, false
	}
	return id, true
}
