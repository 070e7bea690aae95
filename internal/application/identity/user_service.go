package identity

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/podstore/backoffice/internal/domain/identity"
	"github.com/podstore/backoffice/internal/domain/shared"
)

const (
	actionCreate = "crear el usuario"
	actionList   = "obtener los usuarios"
	actionGet    = "obtener el usuario"
	actionUpdate = "actualizar el usuario"
	actionDelete = "eliminar el usuario"
)

const minPasswordLength = 6

// WelcomeSender greets newly created users
type WelcomeSender interface {
	SendWelcome(ctx context.Context, user *identity.User) error
}

// UserService handles user-related business operations
type UserService struct {
	userRepo identity.UserRepository
	welcome  WelcomeSender
	logger   *zap.Logger
}

// NewUserService creates a new UserService. A nil welcome sender disables the welcome email.
func NewUserService(userRepo identity.UserRepository, welcome WelcomeSender, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		welcome:  welcome,
		logger:   logger,
	}
}

// Create stores a new user, hashing the password when one is given.
// The welcome email is best-effort and never fails the call.
func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	user := identity.NewUser(req.ID, req.Name, req.Email, identity.Role(req.Role))
	user.Username = strings.TrimSpace(req.Username)
	if req.Password != "" {
		if err := user.SetPassword(req.Password); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, shared.NewPersistenceError(actionCreate, err)
	}

	if s.welcome != nil {
		if err := s.welcome.SendWelcome(ctx, user); err != nil {
			s.logger.Warn("Welcome email not sent", zap.String("user_id", user.ID), zap.Error(err))
		}
	}

	resp := ToUserResponse(user)
	return &resp, nil
}

// GetAll returns every user
func (s *UserService) GetAll(ctx context.Context) ([]UserResponse, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, shared.NewPersistenceError(actionList, err)
	}
	return ToUserResponses(users), nil
}

// GetByID returns a user
func (s *UserService) GetByID(ctx context.Context, id string) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.NewPersistenceError(actionGet, err)
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// Update applies a partial update. The email is stored normalized and the
// password column is only written when the request carries a new password.
func (s *UserService) Update(ctx context.Context, id string, req UpdateUserRequest) (*UserResponse, error) {
	patch := identity.UserPatch{Name: req.Name}
	if email, ok := req.Email.Get(); ok {
		patch.Email = shared.Some(identity.NormalizeEmail(email))
	}
	if role, ok := req.Role.Get(); ok {
		patch.Role = shared.Some(identity.Role(role))
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	if password, ok := req.Password.Get(); ok {
		if len(password) < minPasswordLength {
			return nil, shared.NewValidationError("La contraseña debe tener al menos 6 caracteres")
		}
		hash, err := identity.HashPassword(password)
		if err != nil {
			return nil, err
		}
		patch.PasswordHash = shared.Some(hash)
	}

	user, err := s.userRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, shared.NewPersistenceError(actionUpdate, err)
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// Delete removes a user and returns the removed row
func (s *UserService) Delete(ctx context.Context, id string) (*UserResponse, error) {
	user, err := s.userRepo.Delete(ctx, id)
	if err != nil {
		return nil, shared.NewPersistenceError(actionDelete, err)
	}
	resp := ToUserResponse(user)
	return &resp, nil
}
