package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"assetmanagement/internal/httputil"
)

// RequestID propagates X-Request-ID or generates a new one, echoing it on the response
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimSpace(r.Header.Get("X-Request-ID"))
			if id == "" {
				id = uuid.NewString()
			}

			w.Header().Set("X-Request-ID", id)
			next.ServeHTTP(w, httputil.WithRequestID(r, id))
		})
	}
}
