package ports

import "context"

// RegisterInput carries the fields needed to create a new account.
// Role is matched case-insensitively against the Admin role name; any other
// value (including empty) resolves to Customer.
type RegisterInput struct {
	Username string
	Password string
	Name     string
	Role     string
}

// LoginResult is the payload returned on a successful login.
type LoginResult struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

type AuthService interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	Register(ctx context.Context, in RegisterInput) error
}
