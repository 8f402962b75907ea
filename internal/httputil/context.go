package httputil

import (
	"context"
	"net/http"

	"assetmanagement/internal/domain/models"
)

// Context key type to avoid collisions
type contextKey string

const (
	principalKey contextKey = "principal"
	requestIDKey contextKey = "requestID"
)

// WithPrincipal adds the authenticated caller to the request context
func WithPrincipal(r *http.Request, p *models.Principal) *http.Request {
	ctx := context.WithValue(r.Context(), principalKey, p)
	return r.WithContext(ctx)
}

// GetPrincipal retrieves the caller from context, nil if the request is anonymous
func GetPrincipal(r *http.Request) *models.Principal {
	p, _ := r.Context().Value(principalKey).(*models.Principal)
	return p
}

// GetUserID returns the caller's id, or an empty string
func GetUserID(r *http.Request) string {
	if p := GetPrincipal(r); p != nil {
		return p.ID
	}
	return ""
}

func WithRequestID(r *http.Request, id string) *http.Request {
	ctx := context.WithValue(r.Context(), requestIDKey, id)
	return r.WithContext(ctx)
}

func GetRequestID(r *http.Request) string {
	id, _ := r.Context().Value(requestIDKey).(string)
	return id
}
