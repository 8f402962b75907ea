package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"assetmanagement/internal/domain"
	"assetmanagement/internal/domain/models"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
)

// JWTVerifier implements TokenVerifier for HMAC-signed tokens (shared secret with the
// account service) or asymmetric tokens resolved through a JWKS endpoint.
type JWTVerifier struct {
	keyFunc jwt.Keyfunc
	methods []string
	logger  *slog.Logger
}

// NewHMACVerifier creates a verifier for tokens signed with the shared secret
func NewHMACVerifier(secret []byte, logger *slog.Logger) (*JWTVerifier, error) {
	if len(secret) == 0 {
		return nil, errors.New("JWT secret cannot be empty")
	}

	logger.Info("JWT verifier initialized", "mode", "hmac")

	return &JWTVerifier{
		keyFunc: func(*jwt.Token) (interface{}, error) { return secret, nil },
		methods: []string{"HS256", "HS384", "HS512"},
		logger:  logger,
	}, nil
}

// NewJWKSVerifier creates a verifier that fetches public keys from a JWKS endpoint.
// keyfunc caches the key set and refreshes it on its own.
func NewJWKSVerifier(ctx context.Context, jwksURL string, logger *slog.Logger) (*JWTVerifier, error) {
	if jwksURL == "" {
		return nil, errors.New("JWKS URL cannot be empty")
	}

	jwks, err := keyfunc.NewDefaultCtx(ctx, []string{jwksURL})
	if err != nil {
		return nil, fmt.Errorf("failed to create JWKS client: %w", err)
	}

	logger.Info("JWT verifier initialized", "mode", "jwks", "jwks_url", jwksURL)

	return &JWTVerifier{
		keyFunc: jwks.Keyfunc,
		methods: []string{"RS256", "ES256"},
		logger:  logger,
	}, nil
}

// VerifyToken validates a token and returns the principal it identifies
func (v *JWTVerifier) VerifyToken(tokenString string) (*models.Principal, error) {
	// WithValidMethods prevents algorithm confusion
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, v.keyFunc, jwt.WithValidMethods(v.methods))
	if err != nil {
		v.logger.Debug("token parse failed", "error", err.Error())
		return nil, domain.ErrUnauthorized
	}

	if !token.Valid {
		return nil, domain.ErrUnauthorized
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		v.logger.Error("failed to extract claims from token")
		return nil, domain.ErrUnauthorized
	}

	if claims.Subject == "" {
		v.logger.Debug("token missing subject claim")
		return nil, domain.ErrUnauthorized
	}

	return claims.Principal(), nil
}

// Close is a no-op; keyfunc v3 manages its own refresh goroutine lifetime through the context.
func (v *JWTVerifier) Close() error {
	v.logger.Info("JWT verifier closed")
	return nil
}
