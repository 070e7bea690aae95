package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/podstore/backoffice/internal/infrastructure/auth"
	"github.com/podstore/backoffice/internal/interfaces/http/dto"
)

// Gin context keys set by the auth middleware
const (
	UserIDKey    = "user_id"
	UserEmailKey = "user_email"
	UserRoleKey  = "user_role"
)

// MarketplaceTokenHeader carries the marketplace token on the webhook
const MarketplaceTokenHeader = "user-token"

// Marketplace auth messages
const (
	MsgTokenMissing = "Token no proporcionado"
	MsgTokenInvalid = "Token inválido o expirado"
)

// MarketplaceTokenValidator validates tokens issued by the token exchange
type MarketplaceTokenValidator interface {
	Validate(token string) (*auth.MarketplaceClaims, error)
}

// SessionVerifier verifies dashboard sessions
type SessionVerifier interface {
	Verify(token string) (*auth.SessionClaims, error)
}

// MarketplaceToken authenticates the marketplace by the user-token header.
// The token's user becomes the owner of whatever the request creates.
func MarketplaceToken(validator MarketplaceTokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimSpace(strings.TrimPrefix(c.GetHeader(MarketplaceTokenHeader), "Bearer "))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.MarketplaceError{Error: MsgTokenMissing})
			return
		}

		claims, err := validator.Validate(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.MarketplaceError{Error: MsgTokenInvalid})
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Next()
	}
}

// DashboardAuth authenticates dashboard requests by their bearer session
func DashboardAuth(verifier SessionVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			abortUnauthorized(c, dto.ErrCodeUnauthorized, "Autenticación requerida")
			return
		}

		claims, err := verifier.Verify(token)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				abortUnauthorized(c, dto.ErrCodeTokenExpired, "La sesión ha expirado")
				return
			}
			abortUnauthorized(c, dto.ErrCodeTokenInvalid, "Sesión inválida")
			return
		}

		c.Set(UserIDKey, claims.Subject)
		c.Set(UserEmailKey, claims.Email)
		c.Set(UserRoleKey, claims.Role)
		c.Next()
	}
}

// GetUserID returns the authenticated user id, empty when unauthenticated
func GetUserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func abortUnauthorized(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(code, message, GetRequestID(c)))
}
