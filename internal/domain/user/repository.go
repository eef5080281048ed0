package user

import (
	"context"
)

type UserRepository interface {
	// GetByEmail returns the user with its employee id joined, ErrUserNotFound when absent
	GetByEmail(ctx context.Context, email string) (User, error)
}
