package ports

import "context"

// LoginThrottle tracks failed login attempts per normalized username.
type LoginThrottle interface {
	// TooManyFailures reports whether the account has exceeded the allowed
	// number of failed attempts inside the current window.
	TooManyFailures(ctx context.Context, username string) (bool, error)
	RecordFailure(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}
