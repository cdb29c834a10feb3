package domain

import (
	"errors"
	"time"
)

// Built-in role catalog. Accounts hold exactly one role.
const (
	RoleAdmin    = "Admin"
	RoleCustomer = "Customer"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrRegistrationFailed = errors.New("registration failed")
var ErrRoleNotFound = errors.New("role not found")
var ErrTokenIssuance = errors.New("token issuance failed")
var ErrTooManyAttempts = errors.New("too many failed login attempts")

// UserAccount models a registered identity.
//
// Username is stored lower-cased and doubles as the account email, mirroring
// the registration flow where both are set from the same input. Lookups always
// normalize first, so username uniqueness is case-insensitive.
type UserAccount struct {
	ID              string    `json:"id"`
	Username        string    `json:"username"`
	Email           string    `json:"email"`
	NormalizedEmail string    `json:"-"`
	Name            string    `json:"name"`
	PasswordHash    string    `json:"-"`
	Role            string    `json:"role,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Role is a named entry in the role catalog. Roles are created lazily on
// first registration and never deleted.
type Role struct {
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
