package user

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"storefront/internal/user/models"
	dErrors "storefront/pkg/domain-errors"
	"storefront/pkg/platform/httputil"
	"storefront/pkg/requestcontext"
	"storefront/pkg/schema"
)

// Handler wires user management endpoints to the user service.
type Handler struct {
	service *Service
	logger  *slog.Logger
}

// NewHandler constructs a user handler.
func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts user endpoints. The router is expected to already carry
// authentication middleware; role checks happen per endpoint.
func (h *Handler) Register(r chi.Router) {
	r.Get("/users", h.HandleList)
	r.Get("/users/{id}", h.HandleGet)
	r.Put("/users/{id}/profile", h.HandleUpdateProfile)
	r.Put("/users/{id}/preferences", h.HandleUpdatePreferences)
	r.Put("/users/{id}/status", h.HandleUpdateStatus)
	r.Delete("/users/{id}", h.HandleDelete)
}

// HandleList handles GET /users. Admin only.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if requestcontext.UserRole(ctx) != string(models.RoleAdmin) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "admin role required"))
		return
	}

	page, size := httputil.Pagination(r)
	users, total, err := h.service.List(ctx, page, size)
	if err != nil {
		h.logger.ErrorContext(ctx, "user list failed", "error", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, schema.NewPage(users, total, page, size))
}

// HandleGet handles GET /users/{id}. A user may read their own account;
// admins may read any.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := h.authorizeSelfOrAdmin(w, r)
	if !ok {
		return
	}

	u, err := h.service.Get(ctx, id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, u)
}

// HandleUpdateProfile handles PUT /users/{id}/profile.
func (h *Handler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := h.authorizeSelfOrAdmin(w, r)
	if !ok {
		return
	}
	req, ok := httputil.Decode[*UpdateProfileRequest](w, r)
	if !ok {
		return
	}

	u, err := h.service.UpdateProfile(ctx, id, req.Profile())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.logger.InfoContext(ctx, "profile updated", "user_id", id)
	httputil.WriteJSON(w, http.StatusOK, u)
}

// HandleUpdatePreferences handles PUT /users/{id}/preferences.
func (h *Handler) HandleUpdatePreferences(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := h.authorizeSelfOrAdmin(w, r)
	if !ok {
		return
	}
	req, ok := httputil.Decode[*UpdatePreferencesRequest](w, r)
	if !ok {
		return
	}

	u, err := h.service.UpdatePreferences(ctx, id, req.Preferences())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, u)
}

// HandleUpdateStatus handles PUT /users/{id}/status. Admin only.
func (h *Handler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if requestcontext.UserRole(ctx) != string(models.RoleAdmin) {
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

	u, err := h.service.UpdateStatus(ctx, id, models.Status(req.Status))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.logger.InfoContext(ctx, "user status updated", "user_id", id, "status", req.Status)
	httputil.WriteJSON(w, http.StatusOK, u)
}

// HandleDelete handles DELETE /users/{id}. Admin only.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if requestcontext.UserRole(ctx) != string(models.RoleAdmin) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "admin role required"))
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(ctx, id); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// authorizeSelfOrAdmin parses {id} and rejects callers that are neither the
// account owner nor an admin.
func (h *Handler) authorizeSelfOrAdmin(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, ok := pathID(w, r)
	if !ok {
		return uuid.Nil, false
	}
	ctx := r.Context()
	if requestcontext.UserID(ctx) != id && requestcontext.UserRole(ctx) != string(models.RoleAdmin) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "cannot access another user's account"))
		return uuid.Nil, false
	}
	return id, true
}

func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid user id"))
		return uuid.Nil, false
	}
	return id, true
}
