package order

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"storefront/internal/order/models"
	usermodels "storefront/internal/user/models"
	dErrors "storefront/pkg/domain-errors"
	"storefront/pkg/platform/httputil"
	"storefront/pkg/requestcontext"
	"storefront/pkg/schema"
)

// Handler wires order endpoints to the order service. Every endpoint
// requires an authenticated caller.
type Handler struct {
	service *Service
	logger  *slog.Logger
}

// NewHandler constructs an order handler.
func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts order endpoints.
func (h *Handler) Register(r chi.Router) {
	r.Post("/orders", h.HandleCreate)
	r.Get("/orders", h.HandleList)
	r.Get("/orders/{id}", h.HandleGet)
	r.Post("/orders/{id}/cancel", h.HandleCancel)
	r.Put("/orders/{id}/status", h.HandleUpdateStatus)
}

// CreateRequest is the HTTP body for POST /orders. PaymentMethod stays an
// untyped mapping; the service validates it against the payment union so the
// client gets every field error at once.
type CreateRequest struct {
	Items []struct {
		ProductID uuid.UUID `json:"product_id"`
		Quantity  int       `json:"quantity"`
	} `json:"items"`
	PaymentMethod map[string]any `json:"payment_method"`
}

// Validate implements httputil.Validatable.
func (r *CreateRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if len(r.Items) == 0 {
		return dErrors.New(dErrors.CodeValidation, "items is required")
	}
	if r.PaymentMethod == nil {
		return dErrors.New(dErrors.CodeValidation, "payment_method is required")
	}
	return nil
}

// HandleCreate handles POST /orders.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	req, ok := httputil.Decode[*CreateRequest](w, r)
	if !ok {
		return
	}

	items := make([]ItemRequest, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, ItemRequest{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	o, err := h.service.Create(ctx, userID, items, req.PaymentMethod)
	if err != nil {
		h.logger.WarnContext(ctx, "order rejected", "user_id", userID, "error", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, schema.OK(o, "order placed"))
}

// HandleList handles GET /orders.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	page, size := httputil.Pagination(r)
	orders, total, err := h.service.List(ctx, userID, isAdmin(r), page, size)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, schema.NewPage(orders, total, page, size))
}

// HandleGet handles GET /orders/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	o, err := h.service.Get(ctx, userID, isAdmin(r), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, o)
}

// HandleCancel handles POST /orders/{id}/cancel.
func (h *Handler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	o, err := h.service.Cancel(ctx, userID, isAdmin(r), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, o)
}

// UpdateStatusRequest is the HTTP body for PUT /orders/{id}/status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// Validate implements httputil.Validatable.
func (r *UpdateStatusRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if !models.Status(r.Status).IsValid() {
		return dErrors.New(dErrors.CodeValidation, "unknown status")
	}
	return nil
}

// HandleUpdateStatus handles PUT /orders/{id}/status. Admin only.
func (h *Handler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if !isAdmin(r) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "admin role required"))
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.Decode[*UpdateStatusRequest](w, r)
	if !ok {
		return
	}

	o, err := h.service.UpdateStatus(ctx, id, models.Status(req.Status))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, o)
}

func requireUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID := requestcontext.UserID(r.Context())
	if userID == uuid.Nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return uuid.Nil, false
	}
	return userID, true
}

func isAdmin(r *http.Request) bool {
	return requestcontext.UserRole(r.Context()) == string(usermodels.RoleAdmin)
}

func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid order id"))
		return uuid.Nil, false
	}
	return id, true
}
