package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/podstore/backoffice/internal/infrastructure/config"
)

// Common errors
var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrInvalidClaims    = errors.New("invalid token claims")
	ErrTokenNotYetValid = errors.New("token is not yet valid")
	ErrMissingUserID    = errors.New("missing userId in claims")
)

// MarketplaceClaims are the claims of a token handed to the marketplace.
// UserID is the store owner the marketplace acts for.
type MarketplaceClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
}

// IssuedToken is a signed token and its expiry
type IssuedToken struct {
	Token     string
	ExpiresAt time.Time
}

// MarketplaceTokenService issues and validates marketplace tokens
type MarketplaceTokenService struct {
	secret     []byte
	expiration time.Duration
	issuer     string
	now        func() time.Time
}

// NewMarketplaceTokenService creates a new marketplace token service
func NewMarketplaceTokenService(cfg config.RappiConfig) *MarketplaceTokenService {
	expiration := cfg.TokenExpiry
	if expiration <= 0 {
		expiration = time.Hour
	}
	return &MarketplaceTokenService{
		secret:     []byte(cfg.TokenSecret),
		expiration: expiration,
		issuer:     cfg.TokenIssuer,
		now:        time.Now,
	}
}

// Issue signs a token for the given user
func (s *MarketplaceTokenService) Issue(userID string) (*IssuedToken, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}
	now := s.now()
	expiresAt := now.Add(s.expiration)

	claims := &MarketplaceClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    s.issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, err
	}
	return &IssuedToken{Token: signed, ExpiresAt: expiresAt}, nil
}

// Validate parses a marketplace token. Tokens without an expiry are rejected.
func (s *MarketplaceTokenService) Validate(tokenString string) (*MarketplaceClaims, error) {
	claims := &MarketplaceClaims{}
	if err := parse(tokenString, claims, s.secret, s.issuer, s.now); err != nil {
		return nil, err
	}
	if claims.UserID == "" {
		return nil, ErrMissingUserID
	}
	return claims, nil
}

func parse(tokenString string, claims jwt.Claims, secret []byte, issuer string, now func() time.Time) error {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(now),
	}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return secret, nil
	}, opts...)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			return ErrTokenNotYetValid
		case errors.Is(err, jwt.ErrTokenRequiredClaimMissing), errors.Is(err, jwt.ErrTokenInvalidIssuer):
			return ErrInvalidClaims
		default:
			return ErrInvalidToken
		}
	}
	if !token.Valid {
		return ErrInvalidToken
	}
	return nil
}
