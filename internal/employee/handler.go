package employee

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/frahmantamala/office-management/internal"
	"github.com/frahmantamala/office-management/internal/transport"
)

type ServiceAPI interface {
	List(ctx context.Context, userID int64) ([]*Employee, error)
	GetByID(ctx context.Context, userID, id int64) (*Employee, error)
	Create(ctx context.Context, dto CreateEmployeeDTO) (int64, error)
	Update(ctx context.Context, userID, id int64, dto EmployeeDTO) error
	Delete(ctx context.Context, userID, id int64) error
	Export(ctx context.Context, userID int64, w io.Writer) error
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

// GetEmployees handles GET /employees/{id} where id is the owning user
func (h *Handler) GetEmployees(w http.ResponseWriter, r *http.Request) {
	userID, err := h.ownerFromPath(r)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	employees, err := h.Service.List(r.Context(), userID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, map[string]interface{}{"employees": employees})
}

func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	employee, err := h.Service.GetByID(r.Context(), internal.UserIDFromContext(r.Context()), id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, map[string]interface{}{"employee": employee})
}

func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var dto CreateEmployeeDTO
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

	h.Log(r).Info("CreateEmployee: employee created", "employee_id", id)
	h.WriteSuccess(w, http.StatusCreated, map[string]interface{}{
		"message":    "Employee created successfully",
		"employeeId": id,
	})
}

func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	var dto EmployeeDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	if err := h.Service.Update(r.Context(), internal.UserIDFromContext(r.Context()), id, dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, map[string]interface{}{"message": "Employee updated successfully"})
}

func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	if err := h.Service.Delete(r.Context(), internal.UserIDFromContext(r.Context()), id); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, map[string]interface{}{"message": "Employee deleted successfully"})
}

// ExportEmployees handles GET /employees/{id}/export and streams an xlsx workbook.
func (h *Handler) ExportEmployees(w http.ResponseWriter, r *http.Request) {
	userID, err := h.ownerFromPath(r)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	// buffered so a failure can still be reported as JSON
	var buf bytes.Buffer
	if err := h.Service.Export(r.Context(), userID, &buf); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	filename := fmt.Sprintf("employees-%d-%s.xlsx", userID, time.Now().Format("20060102"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.Log(r).Warn("ExportEmployees: client went away", "error", err)
	}
}

func (h *Handler) ownerFromPath(r *http.Request) (int64, error) {
	userID, err := h.PathID(r, "id")
	if err != nil {
		return 0, err
	}
	if err := h.RequireOwner(r, userID); err != nil {
		return 0, err
	}
	return userID, nil
}
