package ports

import "context"

// RoleRepository manages the role catalog.
type RoleRepository interface {
	// Ensure creates the role if it does not exist. Idempotent.
	Ensure(ctx context.Context, name string) error
	Exists(ctx context.Context, name string) (bool, error)
}
