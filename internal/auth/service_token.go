package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	serviceSubject = "-1"
	serviceName    = "Microservicio"
	serviceRole    = "ADMINISTRADOR"
)

// ServiceTokenIssuer mints the tokens this service presents to the account service.
// It identifies itself as an administrator so the account service answers for any account.
type ServiceTokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewServiceTokenIssuer creates an issuer signing with the shared secret
func NewServiceTokenIssuer(secret []byte, ttl time.Duration) *ServiceTokenIssuer {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ServiceTokenIssuer{
		secret: secret,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Token returns a freshly signed service token
func (i *ServiceTokenIssuer) Token() (string, error) {
	now := i.now()
	return SignHMAC(i.secret, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   serviceSubject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
		Name: serviceName,
		Role: serviceRole,
	})
}
