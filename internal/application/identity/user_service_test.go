package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/podstore/backoffice/internal/domain/identity"
	"github.com/podstore/backoffice/internal/domain/shared"
	"github.com/podstore/backoffice/internal/infrastructure/persistence"
	"github.com/podstore/backoffice/tests/testutil"
)

type stubWelcome struct {
	sent []string
	err  error
}

func (w *stubWelcome) SendWelcome(_ context.Context, u *identity.User) error {
	w.sent = append(w.sent, u.Email)
	return w.err
}

func TestUserService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("hashes the password and defaults the role", func(t *testing.T) {
		repo := new(testutil.MockUserRepository)
		svc := NewUserService(repo, nil, zap.NewNop())
		var stored *identity.User
		repo.On("Create", ctx, mock.AnythingOfType("*identity.User")).Run(func(args mock.Arguments) {
			stored = args.Get(1).(*identity.User)
		}).Return(nil)

		resp, err := svc.Create(ctx, CreateUserRequest{Name: "Rappi", Email: "Rappi@Rappi.com", Password: "rappi_password"})

		require.NoError(t, err)
		assert.Equal(t, "rappi@rappi.com", resp.Email)
		assert.Equal(t, "USER", resp.Role)
		assert.True(t, resp.HasPassword)
		assert.NotEqual(t, "rappi_password", stored.PasswordHash)
		assert.True(t, stored.CheckPassword("rappi_password"))
	})

	t.Run("without password stores no hash", func(t *testing.T) {
		repo := new(testutil.MockUserRepository)
		svc := NewUserService(repo, nil, zap.NewNop())
		repo.On("Create", ctx, mock.MatchedBy(func(u *identity.User) bool {
			return u.PasswordHash == "" && u.ID == "idp-123"
		})).Return(nil)

		resp, err := svc.Create(ctx, CreateUserRequest{ID: "idp-123", Name: "Ana", Email: "ana@x.com", Role: "ADMIN"})

		require.NoError(t, err)
		assert.False(t, resp.HasPassword)
		assert.Equal(t, "ADMIN", resp.Role)
	})

	t.Run("welcome failure does not fail the create", func(t *testing.T) {
		repo := new(testutil.MockUserRepository)
		welcome := &stubWelcome{err: shared.NewDeliveryError(errors.New("down"))}
		svc := NewUserService(repo, welcome, zap.NewNop())
		repo.On("Create", ctx, mock.Anything).Return(nil)

		_, err := svc.Create(ctx, CreateUserRequest{Name: "Ana", Email: "ana@x.com"})

		require.NoError(t, err)
		assert.Equal(t, []string{"ana@x.com"}, welcome.sent)
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := new(testutil.MockUserRepository)
		welcome := &stubWelcome{}
		svc := NewUserService(repo, welcome, zap.NewNop())
		repo.On("Create", ctx, mock.Anything).Return(shared.ErrAlreadyExists)

		_, err := svc.Create(ctx, CreateUserRequest{Name: "Ana", Email: "ana@x.com"})

		assert.EqualError(t, err, "Error al crear el usuario: el registro ya existe")
		assert.Empty(t, welcome.sent)
	})
}

func TestUserService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("rehashes only when a password is given", func(t *testing.T) {
		repo := new(testutil.MockUserRepository)
		svc := NewUserService(repo, nil, zap.NewNop())
		user := testutil.NewTestUser()
		repo.On("Update", ctx, user.ID, mock.MatchedBy(func(p identity.UserPatch) bool {
			hash, ok := p.PasswordHash.Get()
			u := identity.User{PasswordHash: hash}
			return ok && u.CheckPassword("nueva123")
		})).Return(user, nil)

		_, err := svc.Update(ctx, user.ID, UpdateUserRequest{Password: shared.Some("nueva123")})

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("name only leaves password out of the patch", func(t *testing.T) {
		repo := new(testutil.MockUserRepository)
		svc := NewUserService(repo, nil, zap.NewNop())
		user := testutil.NewTestUser()
		repo.On("Update", ctx, user.ID, identity.UserPatch{Name: shared.Some("Nuevo")}).Return(user, nil)

		_, err := svc.Update(ctx, user.ID, UpdateUserRequest{Name: shared.Some("Nuevo")})

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("stores the email normalized", func(t *testing.T) {
		repo := new(testutil.MockUserRepository)
		svc := NewUserService(repo, nil, zap.NewNop())
		user := testutil.NewTestUser()
		repo.On("Update", ctx, user.ID, identity.UserPatch{Email: shared.Some("ana@podstore.mx")}).Return(user, nil)

		_, err := svc.Update(ctx, user.ID, UpdateUserRequest{Email: shared.Some("  Ana@PodStore.MX ")})

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("blank required fields are rejected before the store", func(t *testing.T) {
		cases := map[string]UpdateUserRequest{
			"empty name":     {Name: shared.Some("")},
			"empty email":    {Email: shared.Some("")},
			"empty role":     {Role: shared.Some("")},
			"short password": {Password: shared.Some("abc")},
			"empty password": {Password: shared.Some("")},
		}
		for name, req := range cases {
			t.Run(name, func(t *testing.T) {
				repo := new(testutil.MockUserRepository)
				svc := NewUserService(repo, nil, zap.NewNop())

				_, err := svc.Update(ctx, testutil.TestUserID, req)

				assert.ErrorIs(t, err, shared.ErrInvalidInput)
				assert.Equal(t, shared.KindValidation, shared.KindOf(err))
				repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
			})
		}
	})

	t.Run("missing user", func(t *testing.T) {
		repo := new(testutil.MockUserRepository)
		svc := NewUserService(repo, nil, zap.NewNop())
		repo.On("Update", ctx, "nope", mock.Anything).Return(nil, shared.ErrNotFound)

		_, err := svc.Update(ctx, "nope", UpdateUserRequest{Role: shared.Some("ADMIN")})

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.Contains(t, err.Error(), "Error al actualizar el usuario")
	})
}

func TestUserService_ReadAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := new(testutil.MockUserRepository)
	svc := NewUserService(repo, nil, zap.NewNop())
	user := testutil.NewTestUser()
	repo.On("FindAll", ctx).Return([]identity.User{*user}, nil)
	repo.On("FindByID", ctx, user.ID).Return(user, nil)
	repo.On("Delete", ctx, user.ID).Return(user, nil)
	repo.On("Delete", ctx, "gone").Return(nil, shared.ErrNotFound)

	all, err := svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	one, err := svc.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, one.Email)

	deleted, err := svc.Delete(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, deleted.ID)

	_, err = svc.Delete(ctx, "gone")
	assert.Contains(t, err.Error(), "Error al eliminar el usuario")
}

func TestUserService_UpdateEmailCollision(t *testing.T) {
	ctx := context.Background()
	repo := persistence.NewGormUserRepository(testutil.NewSQLiteDB(t))
	svc := NewUserService(repo, nil, zap.NewNop())

	ana, err := svc.Create(ctx, CreateUserRequest{Name: "Ana", Email: "a@b.com", Password: "secreto1"})
	require.NoError(t, err)
	beto, err := svc.Create(ctx, CreateUserRequest{Name: "Beto", Email: "x@y.com", Password: "secreto2"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, beto.ID, UpdateUserRequest{Email: shared.Some("A@B.com")})
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)

	found, err := repo.FindByLogin(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, ana.ID, found.ID)
	assert.True(t, found.CheckPassword("secreto1"))

	stored, err := repo.FindByID(ctx, beto.ID)
	require.NoError(t, err)
	assert.Equal(t, "x@y.com", stored.Email)
}
