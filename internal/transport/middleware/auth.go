package middleware

import (
	"net/http"

	"github.com/frahmantamala/office-management/internal"
	"github.com/frahmantamala/office-management/pkg/logger"
)

// UserContext adds the authenticated user id to the request logger. It must run after
// the auth middleware has stored the id in the context.
func UserContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if userID := internal.UserIDFromContext(ctx); userID != 0 {
			ctx = logger.With(ctx, "userID", userID)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
