package user

import (
	"context"
	"net/http"

	"github.com/frahmantamala/office-management/internal"
	"github.com/frahmantamala/office-management/internal/transport"
)

type ServiceAPI interface {
	ListUsers(ctx context.Context) ([]*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	DeleteUser(ctx context.Context, callerID, id int64) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

// ListUsers handles GET /auth/users
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.ListUsers(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, map[string]interface{}{"users": users})
}

// GetCurrentUser handles GET /auth/me
func (h *Handler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	userID := internal.UserIDFromContext(r.Context())
	if userID == 0 {
		h.HandleServiceError(w, internal.ErrMissingToken)
		return
	}

	u, err := h.Service.GetByID(r.Context(), userID)
	if err != nil {
		h.Log(r).Error("GetCurrentUser: service GetByID failed", "user_id", userID, "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, map[string]interface{}{"user": u})
}

// DeleteUser handles DELETE /auth/users/{id}
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	if err := h.Service.DeleteUser(r.Context(), internal.UserIDFromContext(r.Context()), id); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, map[string]interface{}{"message": "User deleted successfully"})
}
