package identity

import (
	"time"

	"github.com/podstore/backoffice/internal/domain/identity"
	"github.com/podstore/backoffice/internal/domain/shared"
)

// CreateUserRequest represents a request to create a user.
// ID is only set when mirroring a user from the identity provider.
type CreateUserRequest struct {
	ID       string `json:"id" binding:"omitempty,max=64"`
	Name     string `json:"name" binding:"required,min=2,max=50"`
	Username string `json:"username" binding:"omitempty,min=2,max=50"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Role     string `json:"role" binding:"omitempty,role"`
	Password string `json:"password" binding:"omitempty,min=6,max=72"`
}

// UpdateUserRequest represents a partial update; absent fields are left untouched
type UpdateUserRequest struct {
	Name     shared.Optional[string] `json:"name" binding:"omitempty,min=2,max=50"`
	Email    shared.Optional[string] `json:"email" binding:"omitempty,email,max=255"`
	Role     shared.Optional[string] `json:"role" binding:"omitempty,role"`
	Password shared.Optional[string] `json:"password" binding:"omitempty,min=6,max=72"`
}

// UserResponse represents a user in API responses. The password hash never leaves the service.
type UserResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Username    string    `json:"username,omitempty"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	HasPassword bool      `json:"hasPassword"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ToUserResponse converts a domain user to a response DTO
func ToUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Username:    u.Username,
		Email:       u.Email,
		Role:        string(u.Role),
		HasPassword: u.HasPassword(),
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// ToUserResponses converts a slice of domain users
func ToUserResponses(users []identity.User) []UserResponse {
	out := make([]UserResponse, len(users))
	for i := range users {
		out[i] = ToUserResponse(&users[i])
	}
	return out
}
