package models

import (
	"time"

	"github.com/podstore/backoffice/internal/domain/identity"
)

// UserModel is the persistence model for the User domain entity.
type UserModel struct {
	ID        string  `gorm:"type:varchar(64);primaryKey"`
	Name      string  `gorm:"type:varchar(100);not null"`
	Username  *string `gorm:"type:varchar(100);uniqueIndex:idx_users_username,expression:LOWER(username)"`
	Email     string  `gorm:"type:varchar(255);not null;uniqueIndex:idx_users_email,expression:LOWER(email)"`
	Password  string  `gorm:"type:varchar(255);not null;default:''"`
	Role      string  `gorm:"type:varchar(10);not null;default:'USER'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity.
func (m *UserModel) ToDomain() *identity.User {
	u := &identity.User{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.Password,
		Role:         identity.Role(m.Role),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.Username != nil {
		u.Username = *m.Username
	}
	return u
}

// UserModelFromDomain creates a persistence model from a domain User entity.
func UserModelFromDomain(u *identity.User) *UserModel {
	return &UserModel{
		ID:        u.ID,
		Name:      u.Name,
		Username:  nullableString(u.Username),
		Email:     u.Email,
		Password:  u.PasswordHash,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// UserPatchColumns maps a patch to the columns it writes.
// Absent fields are left out so the stored value survives.
func UserPatchColumns(p identity.UserPatch) map[string]any {
	cols := map[string]any{}
	if v, ok := p.Name.Get(); ok {
		cols["name"] = v
	}
	if v, ok := p.Email.Get(); ok {
		cols["email"] = v
	}
	if v, ok := p.Role.Get(); ok {
		cols["role"] = string(v)
	}
	if v, ok := p.PasswordHash.Get(); ok {
		cols["password"] = v
	}
	return cols
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
