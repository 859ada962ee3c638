package task

import (
	"context"
	"net/http"

	"github.com/frahmantamala/office-management/internal"
	"github.com/frahmantamala/office-management/internal/transport"
)

type ServiceAPI interface {
	List(ctx context.Context, userID int64) ([]*Task, error)
	GetByID(ctx context.Context, userID, id int64) (*Task, error)
	Create(ctx context.Context, dto CreateTaskDTO) (int64, error)
	Update(ctx context.Context, userID, id int64, dto TaskDTO) error
	Delete(ctx context.Context, userID, id int64) error
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

func (h *Handler) GetTasks(w http.ResponseWriter, r *http.Request) {
	userID, err := h.PathID(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	if err := h.RequireOwner(r, userID); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	tasks, err := h.Service.List(r.Context(), userID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, map[string]interface{}{"tasks": tasks})
}

func (h *Handler) GetTask(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	t, err := h.Service.GetByID(r.Context(), internal.UserIDFromContext(r.Context()), id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, map[string]interface{}{"task": t})
}

func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var dto CreateTaskDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	if dto.UserID != 0 {
		if err := h.RequireOwner(r, dto.UserID); err != nil {
			h.HandleServiceError(w, err)
			return
		}
	}

	id, err := h.Service.Create(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusCreated, map[string]interface{}{
		"message": "Task created successfully",
		"taskId":  id,
	})
}

func (h *Handler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	var dto TaskDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	if err := h.Service.Update(r.Context(), internal.UserIDFromContext(r.Context()), id, dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, map[string]interface{}{"message": "Task updated successfully"})
}

func (h *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	if err := h.Service.Delete(r.Context(), internal.UserIDFromContext(r.Context()), id); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, map[string]interface{}{"message": "Task deleted successfully"})
}
