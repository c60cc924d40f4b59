package notification

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"storefront/pkg/platform/httputil"
	"storefront/pkg/schema"
)

// Handler wires notification endpoints to the notification service.
type Handler struct {
	service *Service
	logger  *slog.Logger
}

// NewHandler constructs a notification handler.
func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts notification endpoints. The router is expected to carry
// authentication middleware.
func (h *Handler) Register(r chi.Router) {
	r.Post("/notifications", h.HandleSend)
	r.Get("/notifications", h.HandleList)
}

// HandleSend handles POST /notifications. The body is the tagged union form;
// the response echoes the serialized notification with defaults applied.
func (h *Handler) HandleSend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	body, ok := httputil.DecodeRaw(w, r)
	if !ok {
		return
	}

	sent, err := h.service.Send(ctx, body)
	if err != nil {
		h.logger.WarnContext(ctx, "notification rejected", "error", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, schema.OK(sent, "notification sent"))
}

// HandleList handles GET /notifications.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	page, size := httputil.Pagination(r)
	items, total, err := h.service.List(r.Context(), page, size)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, schema.NewPage(items, total, page, size))
}
