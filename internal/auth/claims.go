package auth

import (
	"fmt"

	"assetmanagement/internal/domain/models"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the token payload shared with the account service.
// The subject is the user id; roles come either as a single "role" claim
// (account service tokens) or as a "roles" list.
type Claims struct {
	jwt.RegisteredClaims
	Name  string   `json:"nombre,omitempty"`
	Role  string   `json:"role,omitempty"`
	Roles []string `json:"roles,omitempty"`
}

// Principal converts the claims into the caller's principal.
// Unknown role names are dropped.
func (c *Claims) Principal() *models.Principal {
	p := &models.Principal{ID: c.Subject}

	names := c.Roles
	if c.Role != "" {
		names = append([]string{c.Role}, names...)
	}
	for _, name := range names {
		role, ok := models.ParseRole(name)
		if !ok || p.HasRole(role) {
			continue
		}
		p.Roles = append(p.Roles, role)
	}
	return p
}

// SignHMAC signs the claims with HS256
func SignHMAC(secret []byte, claims *Claims) (string, error) {
	if len(secret) == 0 {
		return "", fmt.Errorf("signing secret cannot be empty")
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
