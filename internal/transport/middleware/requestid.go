package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/brandingpioneers/hr-management/pkg/logger"
)

const traceHeader = "X-Trace-ID"

// RequestID tags every request with a trace id, honoring one supplied by the
// caller, and stores a logger carrying it in the request context.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(traceHeader)
		if traceID == "" {
			traceID = uuid.NewString()
		}
		w.Header().Set(traceHeader, traceID)

		ctx := logger.With(r.Context(), "traceID", traceID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
