package ports

import (
	"context"

	"github.com/99minutos/task-manager/internal/core/domain"
)

// RegisterInput is a validated registration payload.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// LoginInput is a validated login payload.
type LoginInput struct {
	Email    string
	Password string
}

// AuthResult is returned on successful registration or login.
type AuthResult struct {
	Token string
	User  *domain.User
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, in LoginInput) (*AuthResult, error)
	Me(ctx context.Context, userID string) (*domain.User, error)
	Delete(ctx context.Context, userID string) error
	Logout(ctx context.Context, identity domain.Identity) error
}
