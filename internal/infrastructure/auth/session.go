package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/podstore/backoffice/internal/infrastructure/config"
)

// SessionClaims are the claims of a dashboard session issued by the
// identity provider. The subject is the user id.
type SessionClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

// SessionVerifier verifies dashboard sessions. It never issues them
// outside of tests.
type SessionVerifier struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// NewSessionVerifier creates a verifier for identity provider sessions
func NewSessionVerifier(cfg config.DashboardConfig) *SessionVerifier {
	return &SessionVerifier{
		secret: []byte(cfg.SessionSecret),
		issuer: cfg.Issuer,
		now:    time.Now,
	}
}

// Verify parses and validates a session token
func (v *SessionVerifier) Verify(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	if err := parse(tokenString, claims, v.secret, v.issuer, v.now); err != nil {
		return nil, err
	}
	if claims.Subject == "" {
		return nil, ErrMissingUserID
	}
	return claims, nil
}

// Sign creates a session token the same way the identity provider does.
// Used by tests and local tooling.
func (v *SessionVerifier) Sign(userID, email, role string, ttl time.Duration) (string, error) {
	now := v.now()
	claims := &SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    v.issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Email: email,
		Role:  role,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}
