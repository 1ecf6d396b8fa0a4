package user

import (
	"context"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	Create(ctx context.Context, newUser User) (User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// ListActiveByRole returns active accounts with the given role ordered by user name.
	ListActiveByRole(ctx context.Context, role Role) ([]User, error)
}
