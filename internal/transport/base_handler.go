package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/frahmantamala/office-management/internal"
	"github.com/frahmantamala/office-management/pkg/logger"
	"github.com/go-chi/chi"
)

// BaseHandler provides common functionality for HTTP handlers
type BaseHandler struct {
	Logger *slog.Logger
}

// NewBaseHandler creates a base handler with logger
func NewBaseHandler(lg *slog.Logger) *BaseHandler {
	if lg == nil {
		lg = logger.LoggerWrapper()
		if lg == nil {
			lg = slog.Default()
		}
	}
	return &BaseHandler{Logger: lg}
}

// Log returns the request-scoped logger carrying the trace id, or the handler logger.
func (h *BaseHandler) Log(r *http.Request) *slog.Logger {
	return logger.FromOr(r.Context(), h.Logger)
}

// WriteJSON writes a JSON response
func (h *BaseHandler) WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteSuccess writes the success envelope, merging fields next to "success": true.
func (h *BaseHandler) WriteSuccess(w http.ResponseWriter, status int, fields map[string]interface{}) {
	body := make(map[string]interface{}, len(fields)+1)
	for k, v := range fields {
		body[k] = v
	}
	body["success"] = true
	h.WriteJSON(w, status, body)
}

// WriteError writes the failure envelope for a plain status and message.
func (h *BaseHandler) WriteError(w http.ResponseWriter, status int, message string) {
	h.Logger.Warn("http error", "status", status, "message", message)
	h.WriteJSON(w, status, internal.Response{Success: false, Message: message})
}

// HandleServiceError converts any error coming out of a service into the failure envelope.
func (h *BaseHandler) HandleServiceError(w http.ResponseWriter, err error) {
	if appErr, ok := internal.IsAppError(err); ok {
		status, body := appErr.ToHTTPResponse()
		if status >= http.StatusInternalServerError {
			h.Logger.Error("service error", "type", appErr.Type, "code", appErr.Code, "error", err)
		} else {
			h.Logger.Debug("request rejected", "type", appErr.Type, "code", appErr.Code, "message", appErr.GetDetailedMessage())
		}
		h.WriteJSON(w, status, body)
		return
	}

	h.Logger.Error("unhandled service error", "error", err)
	_, body := internal.NewInternalError("internal server error", err).ToHTTPResponse()
	h.WriteJSON(w, http.StatusInternalServerError, body)
}

// DecodeJSON reads the request body into dst. Malformed bodies become validation errors.
func (h *BaseHandler) DecodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return internal.NewValidationError("Request body is required", internal.ErrCodeInvalidRequest)
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return internal.NewValidationError("Request body is required", internal.ErrCodeInvalidRequest)
		}
		return internal.NewValidationError(fmt.Sprintf("Invalid request body: %v", err), internal.ErrCodeInvalidRequest)
	}
	return nil
}

// DecodeOptionalJSON is DecodeJSON for routes whose fields are all optional: an empty body leaves dst as is.
func (h *BaseHandler) DecodeOptionalJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return internal.NewValidationError(fmt.Sprintf("Invalid request body: %v", err), internal.ErrCodeInvalidRequest)
	}
	return nil
}

// PathID parses a positive integer URL parameter.
func (h *BaseHandler) PathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, internal.NewValidationError(fmt.Sprintf("Invalid %s: %q", name, raw), internal.ErrCodeInvalidID)
	}
	return id, nil
}

// ExtractTokenFromHeader extracts Bearer token from Authorization header
func (h *BaseHandler) ExtractTokenFromHeader(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	const prefix = "bearer "
	if len(authHeader) < len(prefix) || !strings.EqualFold(authHeader[:len(prefix)], prefix) {
		return ""
	}

	return strings.TrimSpace(authHeader[len(prefix):])
}

// RequireOwner checks that the authenticated caller is the user named by the request.
func (h *BaseHandler) RequireOwner(r *http.Request, userID int64) error {
	caller := internal.UserIDFromContext(r.Context())
	if caller == 0 {
		return internal.ErrMissingToken
	}
	if caller != userID {
		return internal.ErrOwnerMismatch
	}
	return nil
}
