package ports

import (
	"context"

	"github.com/99minutos/task-manager/internal/core/domain"
)

// UserRepository is the credential store.
type UserRepository interface {
	// FindByEmail returns the user including its password hash.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// Create persists a new user; a taken email yields domain.ErrUserExists.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindByID returns the user without its password hash and with the
	// ordered list of task ids it owns.
	FindByID(ctx context.Context, id string) (*domain.User, error)
	DeleteByID(ctx context.Context, id string) error
}
