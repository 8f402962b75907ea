package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"assetmanagement/internal/auth"
	"assetmanagement/internal/httputil"
)

// publicPaths are served without a bearer token
var publicPaths = map[string]bool{
	"/health":  true,
	"/metrics": true,
}

// AuthMiddleware verifies the bearer token and stores the principal in the request context.
// Requests with a missing or invalid token are rejected with 401.
func AuthMiddleware(verifier auth.TokenVerifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if publicPaths[r.URL.Path] || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			header := strings.TrimSpace(r.Header.Get("Authorization"))
			if len(header) < 7 || !strings.EqualFold(header[:7], "bearer ") {
				w.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
				httputil.RespondError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			principal, err := verifier.VerifyToken(strings.TrimSpace(header[7:]))
			if err != nil {
				logger.Debug("token rejected",
					"error", err,
					"path", r.URL.Path,
					"request_id", httputil.GetRequestID(r),
				)
				w.Header().Set("WWW-Authenticate", `Bearer realm="api", error="invalid_token"`)
				httputil.RespondError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			next.ServeHTTP(w, httputil.WithPrincipal(r, principal))
		})
	}
}
