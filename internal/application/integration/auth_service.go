package integration

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/podstore/backoffice/internal/domain/identity"
	"github.com/podstore/backoffice/internal/domain/shared"
	"github.com/podstore/backoffice/internal/infrastructure/auth"
)

// TokenIssuer signs marketplace tokens
type TokenIssuer interface {
	Issue(userID string) (*auth.IssuedToken, error)
}

// AuthRequest is the marketplace credential exchange body.
// The login may be sent as "email" or "user".
type AuthRequest struct {
	Email    string `json:"email"`
	User     string `json:"user"`
	Password string `json:"password"`
}

// Login returns the identifier the caller signed in with
func (r AuthRequest) Login() string {
	if login := strings.TrimSpace(r.Email); login != "" {
		return login
	}
	return strings.TrimSpace(r.User)
}

// MarketplaceAuthService exchanges user credentials for a marketplace token
type MarketplaceAuthService struct {
	userRepo identity.UserRepository
	tokens   TokenIssuer
	logger   *zap.Logger
}

// NewMarketplaceAuthService creates a new MarketplaceAuthService
func NewMarketplaceAuthService(userRepo identity.UserRepository, tokens TokenIssuer, logger *zap.Logger) *MarketplaceAuthService {
	return &MarketplaceAuthService{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger,
	}
}

// Authenticate checks the password against the stored bcrypt hash and issues a token
func (s *MarketplaceAuthService) Authenticate(ctx context.Context, req AuthRequest) (*auth.IssuedToken, error) {
	login := req.Login()
	if login == "" || req.Password == "" {
		return nil, ErrCredentialsRequired
	}

	user, err := s.userRepo.FindByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("Marketplace login for unknown user", zap.String("login", login))
			return nil, ErrUserNotFound
		}
		s.logger.Error("Marketplace login lookup failed", zap.Error(err))
		return nil, internalError(ErrInternal, err)
	}

	if !user.CheckPassword(req.Password) {
		s.logger.Warn("Marketplace login with wrong password", zap.String("user_id", user.ID))
		return nil, ErrWrongPassword
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		s.logger.Error("Failed to sign marketplace token", zap.Error(err))
		return nil, internalError(ErrInternal, err)
	}

	s.logger.Info("Marketplace token issued", zap.String("user_id", user.ID))
	return token, nil
}
