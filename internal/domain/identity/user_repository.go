package identity

import "context"

// UserRepository defines the interface for user persistence.
// Lookups that find nothing return shared.ErrNotFound.
type UserRepository interface {
	// Create inserts a new user
	Create(ctx context.Context, user *User) error

	// FindAll returns every user ordered by creation time
	FindAll(ctx context.Context) ([]User, error)

	// FindByID finds a user by its ID
	FindByID(ctx context.Context, id string) (*User, error)

	// FindByLogin finds a user whose email or username equals login
	FindByLogin(ctx context.Context, login string) (*User, error)

	// Update applies the patch and returns the stored row
	Update(ctx context.Context, id string, patch UserPatch) (*User, error)

	// Delete removes the user and returns the removed row
	Delete(ctx context.Context, id string) (*User, error)
}
