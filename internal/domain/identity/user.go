package identity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/podstore/backoffice/internal/domain/shared"
)

// Role is the dashboard role of a user
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// IsValid reports whether r is a known role
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAdmin
}

// bcrypt cost used for stored passwords
const bcryptCost = bcrypt.DefaultCost

// User is a dashboard user. Users that sign in to the marketplace
// integration additionally carry a password hash and, optionally, a username.
type User struct {
	ID           string
	Name         string
	Username     string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser builds a user. An empty id gets a generated uuid so users created
// locally and users mirrored from the identity provider share one key space.
func NewUser(id, name, email string, role Role) *User {
	if id == "" {
		id = uuid.NewString()
	}
	if role == "" {
		role = RoleUser
	}
	now := time.Now()
	return &User{
		ID:        id,
		Name:      strings.TrimSpace(name),
		Email:     NormalizeEmail(email),
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NormalizeEmail is the stored form of an email: trimmed and lower-cased.
// Logins compare against it case-insensitively.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SetPassword hashes and stores a plaintext password
func (u *User) SetPassword(plain string) error {
	hash, err := HashPassword(plain)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

// HasPassword reports whether the user can authenticate with a password
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

// CheckPassword compares plain against the stored hash in constant time
func (u *User) CheckPassword(plain string) bool {
	if !u.HasPassword() {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plain)) == nil
}

// HashPassword returns the bcrypt hash of plain
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return "", shared.NewDomainError(shared.KindValidation, "PASSWORD_HASH_ERROR", "No se pudo procesar la contraseña")
	}
	return string(hash), nil
}

// UserPatch lists the fields an update may touch. PasswordHash is only
// set when the caller supplied a new password.
type UserPatch struct {
	Name         shared.Optional[string]
	Email        shared.Optional[string]
	Role         shared.Optional[Role]
	PasswordHash shared.Optional[string]
}

// IsEmpty reports whether the patch changes nothing
func (p UserPatch) IsEmpty() bool {
	return !p.Name.IsSet() && !p.Email.IsSet() && !p.Role.IsSet() && !p.PasswordHash.IsSet()
}

// Validate rejects patches that would blank a required column
func (p UserPatch) Validate() error {
	if name, ok := p.Name.Get(); ok && strings.TrimSpace(name) == "" {
		return shared.NewValidationError("El nombre es obligatorio")
	}
	if email, ok := p.Email.Get(); ok && strings.TrimSpace(email) == "" {
		return shared.NewValidationError("El correo electrónico es obligatorio")
	}
	if role, ok := p.Role.Get(); ok && !role.IsValid() {
		return shared.NewValidationError("Rol inválido")
	}
	return nil
}
