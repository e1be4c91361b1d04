package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/99minutos/task-manager/internal/api/metrics"
	"github.com/99minutos/task-manager/internal/core/domain"
	"github.com/99minutos/task-manager/internal/core/ports"
)

// bcryptCost matches the cost used for existing password hashes.
const bcryptCost = 10

// AuthService implements registration, login and account management.
type AuthService struct {
	users       ports.UserRepository
	tasks       ports.TaskRepository
	tokens      ports.TokenIssuer
	revocations ports.TokenRevocations
	log         zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	tasks ports.TaskRepository,
	tokens ports.TokenIssuer,
	revocations ports.TokenRevocations,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:       users,
		tasks:       tasks,
		tokens:      tokens,
		revocations: revocations,
		log:         log,
	}
}

// Register creates an account and returns a token for it. An existing email
// is reported as domain.ErrUserExists before anything is written.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("register: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	now := time.Now().UTC()
	created, err := s.users.Create(ctx, &domain.User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, err
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	token, err := s.tokens.Issue(created.Identity())
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	s.log.Info().Str("user_id", created.ID).Msg("user registered")
	return &ports.AuthResult{Token: token, User: created}, nil
}

// Login checks credentials and returns a fresh token.
func (s *AuthService) Login(ctx context.Context, in ports.LoginInput) (*ports.AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.Identity())
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	user.PasswordHash = ""
	return &ports.AuthResult{Token: token, User: user}, nil
}

// Me returns the caller's account with its task ids.
func (s *AuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("me: %w", err)
	}
	return user, nil
}

// Delete removes the account, then its tasks, then revokes its outstanding
// tokens. Failures after the account is gone are logged, not returned.
func (s *AuthService) Delete(ctx context.Context, userID string) error {
	if err := s.users.DeleteByID(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return err
		}
		return fmt.Errorf("delete user: %w", err)
	}

	n, err := s.tasks.DeleteAllForOwner(ctx, userID)
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("failed to delete tasks of removed user")
	}

	if err := s.revocations.RevokeUser(ctx, userID, s.tokens.TTL()); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("failed to revoke tokens of removed user")
	} else {
		metrics.TokensRevokedTotal.WithLabelValues("user_deleted").Inc()
	}

	s.log.Info().Str("user_id", userID).Int64("tasks_deleted", n).Msg("user deleted")
	return nil
}

// Logout revokes the token identity was verified from.
func (s *AuthService) Logout(ctx context.Context, identity domain.Identity) error {
	if identity.TokenID == "" {
		return domain.ErrInvalidToken
	}
	if err := s.revocations.RevokeToken(ctx, identity.TokenID, identity.ExpiresAt); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	metrics.TokensRevokedTotal.WithLabelValues("logout").Inc()
	return nil
}
