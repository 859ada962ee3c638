package middleware

import (
	"net/http"

	"github.com/frahmantamala/office-management/pkg/logger"
	"github.com/go-chi/chi/middleware"
	"github.com/google/uuid"
)

const TraceHeader = "X-Trace-ID"

// RequestID tags the request with a trace id (reusing an inbound X-Trace-ID or chi's
// request id) and attaches it to the request-scoped logger.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(TraceHeader)
		if traceID == "" {
			traceID = uuid.NewString()
		}

		ctx := logger.With(r.Context(), "traceID", traceID)
		if reqID := middleware.GetReqID(ctx); reqID != "" {
			ctx = logger.With(ctx, "requestID", reqID)
		}

		w.Header().Set(TraceHeader, traceID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
