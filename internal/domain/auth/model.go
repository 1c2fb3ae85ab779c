// Package auth provides user accounts, password verification and JWT
// session tokens.
package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"retailhub/internal/core/apperror"
	"retailhub/internal/core/entity"
)

// Role controls what a user may do.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleStaff   Role = "staff"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleStaff:
		return true
	}
	return false
}

// User is an account that can sign in.
type User struct {
	entity.BaseEntity

	Username string `db:"username" json:"username"`
	FullName string `db:"full_name" json:"fullName"`

	// PasswordHash is a bcrypt hash, never serialized to API responses
	PasswordHash string `db:"password_hash" json:"-"`

	Role Role `db:"role" json:"role"`

	// Active accounts may sign in; deactivation keeps history intact
	Active bool `db:"active" json:"active"`
}

// NewUser creates an active user with a hashed password.
func NewUser(username, password string, role Role) (*User, error) {
	u := &User{
		BaseEntity: entity.NewBaseEntity(),
		Username:   username,
		Role:       role,
		Active:     true,
	}
	if err := u.SetPassword(password); err != nil {
		return nil, err
	}
	return u, nil
}

// SetPassword replaces the stored hash.
func (u *User) SetPassword(password string) error {
	if len(password) < 8 {
		return apperror.NewValidation("password must be at least 8 characters").
			WithDetail("field", "password")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword verifies a candidate password against the stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// Validate implements entity.Validatable.
func (u *User) Validate(ctx context.Context) error {
	if u.Username == "" {
		return apperror.NewValidation("username is required").
			WithDetail("field", "username")
	}
	if u.PasswordHash == "" {
		return apperror.NewValidation("password is required").
			WithDetail("field", "password")
	}
	if !u.Role.Valid() {
		return apperror.NewValidation("unknown role").
			WithDetail("field", "role").
			WithDetail("value", string(u.Role))
	}
	return nil
}
