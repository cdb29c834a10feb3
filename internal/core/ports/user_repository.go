package ports

import (
	"context"

	"github.com/saariz/identity-service/internal/core/domain"
)

// UserRepository defines the interface for the credential store.
// FindByUsername expects an already-normalized (lower-cased) username.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.UserAccount, error)
	Create(ctx context.Context, user *domain.UserAccount) (*domain.UserAccount, error)
	SetRole(ctx context.Context, userID, role string) error
}
