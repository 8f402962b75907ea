package auth

import "assetmanagement/internal/domain/models"

// TokenVerifier validates bearer tokens and resolves the principal they carry.
// This is the identity gate in front of every service call.
type TokenVerifier interface {
	// VerifyToken returns domain.ErrUnauthorized if the token is invalid, expired,
	// signed with an unexpected algorithm or has no subject.
	VerifyToken(tokenString string) (*models.Principal, error)

	// Close releases any resources held by the verifier
	Close() error
}
