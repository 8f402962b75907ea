package handler

import (
	"context"
	"net/http"
	"time"

	"assetmanagement/internal/httputil"
)

// Pinger is satisfied by *pgxpool.Pool
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports liveness and, when a database is configured, its reachability
type HealthHandler struct {
	db Pinger
}

// NewHealthHandler creates a health handler; db may be nil
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// HealthCheck is a simple health check endpoint
// GET /health
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			httputil.RespondJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
				"status": "unavailable",
				"time":   time.Now(),
			})
			return
		}
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"time":   time.Now(),
	})
}
