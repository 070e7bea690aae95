package integration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appidentity "github.com/podstore/backoffice/internal/application/identity"
	"github.com/podstore/backoffice/internal/domain/shared"
	"github.com/podstore/backoffice/internal/infrastructure/auth"
	"github.com/podstore/backoffice/internal/infrastructure/config"
	"github.com/podstore/backoffice/internal/infrastructure/persistence"
	"github.com/podstore/backoffice/tests/testutil"
)

func newTokenService() *auth.MarketplaceTokenService {
	return auth.NewMarketplaceTokenService(config.RappiConfig{
		TokenSecret: "test-secret",
		TokenExpiry: time.Hour,
		TokenIssuer: "pod-store",
	})
}

func TestMarketplaceAuthService_CreatedUserCanAuthenticate(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewSQLiteDB(t)
	users := persistence.NewGormUserRepository(db)
	tokens := newTokenService()

	userSvc := appidentity.NewUserService(users, nil, zap.NewNop())
	created, err := userSvc.Create(ctx, appidentity.CreateUserRequest{
		Name:     "Rappi",
		Username: "rappi_user",
		Email:    "rappi@rappi.com",
		Password: "rappi_password",
	})
	require.NoError(t, err)

	svc := NewMarketplaceAuthService(users, tokens, zap.NewNop())

	t.Run("same password", func(t *testing.T) {
		issued, err := svc.Authenticate(ctx, AuthRequest{Email: "rappi@rappi.com", Password: "rappi_password"})
		require.NoError(t, err)
		require.NotEmpty(t, issued.Token)

		claims, err := tokens.Validate(issued.Token)
		require.NoError(t, err)
		assert.Equal(t, created.ID, claims.UserID)
	})

	t.Run("username login", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, AuthRequest{User: "rappi_user", Password: "rappi_password"})
		assert.NoError(t, err)
	})

	t.Run("other password", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, AuthRequest{Email: "rappi@rappi.com", Password: "nope"})
		assert.ErrorIs(t, err, ErrWrongPassword)
		assert.Equal(t, shared.KindAuthentication, shared.KindOf(err))
		assert.Equal(t, "Contraseña incorrecta", err.Error())
	})
}

func TestMarketplaceAuthService_Failures(t *testing.T) {
	ctx := context.Background()

	t.Run("missing credentials", func(t *testing.T) {
		repo := new(testutil.MockUserRepository)
		svc := NewMarketplaceAuthService(repo, newTokenService(), zap.NewNop())

		_, err := svc.Authenticate(ctx, AuthRequest{Email: "a@b.com"})
		assert.ErrorIs(t, err, ErrCredentialsRequired)

		_, err = svc.Authenticate(ctx, AuthRequest{Password: "x"})
		assert.ErrorIs(t, err, ErrCredentialsRequired)
		repo.AssertNotCalled(t, "FindByLogin", mock.Anything, mock.Anything)
	})

	t.Run("unknown user", func(t *testing.T) {
		repo := new(testutil.MockUserRepository)
		repo.On("FindByLogin", ctx, "who@b.com").Return(nil, shared.ErrNotFound)
		svc := NewMarketplaceAuthService(repo, newTokenService(), zap.NewNop())

		_, err := svc.Authenticate(ctx, AuthRequest{Email: "who@b.com", Password: "x"})
		assert.ErrorIs(t, err, ErrUserNotFound)
		assert.Equal(t, "Usuario no encontrado", err.Error())
	})

	t.Run("user without password", func(t *testing.T) {
		repo := new(testutil.MockUserRepository)
		user := testutil.NewTestUser()
		repo.On("FindByLogin", ctx, user.Email).Return(user, nil)
		svc := NewMarketplaceAuthService(repo, newTokenService(), zap.NewNop())

		_, err := svc.Authenticate(ctx, AuthRequest{Email: user.Email, Password: ""})
		assert.ErrorIs(t, err, ErrCredentialsRequired)

		_, err = svc.Authenticate(ctx, AuthRequest{Email: user.Email, Password: "anything"})
		assert.ErrorIs(t, err, ErrWrongPassword)
	})

	t.Run("store failure", func(t *testing.T) {
		repo := new(testutil.MockUserRepository)
		repo.On("FindByLogin", ctx, "a@b.com").Return(nil, errors.New("connection reset"))
		svc := NewMarketplaceAuthService(repo, newTokenService(), zap.NewNop())

		_, err := svc.Authenticate(ctx, AuthRequest{Email: "a@b.com", Password: "x"})
		assert.ErrorIs(t, err, ErrInternal)
		assert.Equal(t, "Error interno del servidor", err.Error())
	})
}
