package middleware

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"assetmanagement/internal/domain"
	"assetmanagement/internal/domain/models"
	"assetmanagement/internal/httputil"
	"assetmanagement/internal/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVerifier struct {
	tokens map[string]*models.Principal
}

func (f *fakeVerifier) VerifyToken(token string) (*models.Principal, error) {
	if p, ok := f.tokens[token]; ok {
		return p, nil
	}
	return nil, domain.ErrUnauthorized
}

func (f *fakeVerifier) Close() error { return nil }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// whoami echoes the principal id set by the auth middleware
var whoami = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	_, _ = io.WriteString(w, httputil.GetUserID(r))
})

func TestAuthMiddleware(t *testing.T) {
	verifier := &fakeVerifier{tokens: map[string]*models.Principal{
		"good": {ID: "10", Roles: []models.Role{models.RoleClient}},
	}}
	handler := AuthMiddleware(verifier, discardLogger())(whoami)

	tests := []struct {
		name       string
		method     string
		path       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{name: "valid token", method: http.MethodGet, path: "/activo", header: "Bearer good", wantStatus: http.StatusOK, wantBody: "10"},
		{name: "lowercase scheme", method: http.MethodGet, path: "/activo", header: "bearer good", wantStatus: http.StatusOK, wantBody: "10"},
		{name: "missing header", method: http.MethodGet, path: "/activo", wantStatus: http.StatusUnauthorized},
		{name: "basic scheme", method: http.MethodGet, path: "/activo", header: "Basic Zm9vOmJhcg==", wantStatus: http.StatusUnauthorized},
		{name: "unknown token", method: http.MethodGet, path: "/activo", header: "Bearer bad", wantStatus: http.StatusUnauthorized},
		{name: "health is public", method: http.MethodGet, path: "/health", wantStatus: http.StatusOK},
		{name: "metrics is public", method: http.MethodGet, path: "/metrics", wantStatus: http.StatusOK},
		{name: "preflight is public", method: http.MethodOptions, path: "/activo", wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusUnauthorized {
				assert.Contains(t, rec.Header().Get("WWW-Authenticate"), "Bearer")
				assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
				return
			}
			assert.Equal(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	handler := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = httputil.GetRequestID(r)
	}))

	t.Run("propagates the caller's id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "abc-123")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, "abc-123", seen)
		assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
	})

	t.Run("generates one when absent", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Len(t, seen, 36)
		assert.Equal(t, seen, rec.Header().Get("X-Request-ID"))
	})
}

func TestRecovery(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))

	handler := Recovery(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/activo", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, logs.String(), "panic recovered")
	assert.Contains(t, logs.String(), "boom")
}

func TestObserve(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /activo/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))
	handler := Observe(mux, logger)(mux)

	counter := metrics.HTTPRequestsTotal.WithLabelValues(http.MethodDelete, "DELETE /activo/{id}", "404")
	before := testutil.ToFloat64(counter)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/activo/7", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
	assert.Contains(t, logs.String(), `"level":"WARN"`)
	assert.Contains(t, logs.String(), `"path":"/activo/7"`)

	unmatched := metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "unmatched", "404")
	before = testutil.ToFloat64(unmatched)
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	assert.Equal(t, before+1, testutil.ToFloat64(unmatched))
}
