package user

import "context"

// Repository exposes user lookup and creation.
type Repository interface {
	GetByUsername(ctx context.Context, username string) (User, bool, error)
	GetByID(ctx context.Context, id int64) (User, bool, error)
	// Create inserts a new user; ErrDuplicateUsername on an exact collision.
	Create(ctx context.Context, username string) (User, error)
}
