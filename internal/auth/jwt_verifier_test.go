package auth

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"assetmanagement/internal/domain"
	"assetmanagement/internal/domain/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func newTestVerifier(t *testing.T) *JWTVerifier {
	t.Helper()
	v, err := NewHMACVerifier(testSecret, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return v
}

func sign(t *testing.T, claims *Claims) string {
	t.Helper()
	token, err := SignHMAC(testSecret, claims)
	require.NoError(t, err)
	return token
}

func registered(subject string, expiresIn time.Duration) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
	}
}

func TestJWTVerifier_VerifyToken(t *testing.T) {
	v := newTestVerifier(t)

	tests := []struct {
		name      string
		claims    *Claims
		wantRoles []models.Role
	}{
		{
			name:      "account service client",
			claims:    &Claims{RegisteredClaims: registered("10", time.Hour), Role: "CLIENTE"},
			wantRoles: []models.Role{models.RoleClient},
		},
		{
			name:      "account service admin",
			claims:    &Claims{RegisteredClaims: registered("1", time.Hour), Role: "ADMINISTRADOR"},
			wantRoles: []models.Role{models.RoleAdmin},
		},
		{
			name:      "role list with duplicates and unknown names",
			claims:    &Claims{RegisteredClaims: registered("1", time.Hour), Role: "ADMIN", Roles: []string{"ROLE_ADMIN", "CLIENT", "AUDITOR"}},
			wantRoles: []models.Role{models.RoleAdmin, models.RoleClient},
		},
		{
			name:   "no roles",
			claims: &Claims{RegisteredClaims: registered("10", time.Hour)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			principal, err := v.VerifyToken(sign(t, tt.claims))
			require.NoError(t, err)
			assert.Equal(t, tt.claims.Subject, principal.ID)
			assert.Equal(t, tt.wantRoles, principal.Roles)
		})
	}
}

func TestJWTVerifier_Rejects(t *testing.T) {
	v := newTestVerifier(t)

	otherSecret, err := SignHMAC([]byte("other"), &Claims{RegisteredClaims: registered("10", time.Hour)})
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{RegisteredClaims: registered("10", time.Hour)}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "expired", token: sign(t, &Claims{RegisteredClaims: registered("10", -time.Minute)})},
		{name: "missing subject", token: sign(t, &Claims{RegisteredClaims: registered("", time.Hour)})},
		{name: "wrong secret", token: otherSecret},
		{name: "alg none", token: unsigned},
		{name: "garbage", token: "not.a.token"},
		{name: "empty", token: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.VerifyToken(tt.token)
			assert.ErrorIs(t, err, domain.ErrUnauthorized)
		})
	}
}

func TestNewHMACVerifier_EmptySecret(t *testing.T) {
	_, err := NewHMACVerifier(nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Error(t, err)
}

func TestServiceTokenIssuer(t *testing.T) {
	issuer := NewServiceTokenIssuer(testSecret, time.Minute)
	fixed := time.Now().Truncate(time.Second)
	issuer.now = func() time.Time { return fixed }

	token, err := issuer.Token()
	require.NoError(t, err)

	claims := &Claims{}
	_, err = jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) { return testSecret, nil })
	require.NoError(t, err)

	assert.Equal(t, "-1", claims.Subject)
	assert.Equal(t, "ADMINISTRADOR", claims.Role)
	assert.Equal(t, "Microservicio", claims.Name)
	assert.Equal(t, fixed.Add(time.Minute).Unix(), claims.ExpiresAt.Unix())

	// The issued token passes our own verifier as an admin
	principal, err := newTestVerifier(t).VerifyToken(token)
	require.NoError(t, err)
	assert.True(t, principal.IsAdmin())
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		in   string
		want models.Role
		ok   bool
	}{
		{in: "ADMINISTRADOR", want: models.RoleAdmin, ok: true},
		{in: "admin", want: models.RoleAdmin, ok: true},
		{in: "ROLE_CLIENTE", want: models.RoleClient, ok: true},
		{in: " client ", want: models.RoleClient, ok: true},
		{in: "OWNER", ok: false},
		{in: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := models.ParseRole(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
