package user

import (
	"context"
	"time"
)

type ListFilter struct {
	Page   int
	Limit  int
	Search string
}

// UserRepository is the persistence boundary for the users table.
// GetByID and GetByEmail only see active users; soft-deleted rows are
// invisible to every caller.
type UserRepository interface {
	Create(ctx context.Context, newUser User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, filter ListFilter) ([]User, int64, error)
	Update(ctx context.Context, updated User) (User, error)
	UpdatePassword(ctx context.Context, id string, passwordHash string) error
	UpdateRefreshToken(ctx context.Context, id string, tokenHash *string, expiresAt *time.Time) error
	UpdateResetToken(ctx context.Context, id string, tokenHash string, expiresAt time.Time) error
	UpdateLastLogin(ctx context.Context, id string) error
	Deactivate(ctx context.Context, id string) error
	CountActiveByRole(ctx context.Context, role Role) (int64, error)
}
