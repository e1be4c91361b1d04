package ports

import (
	"context"
	"time"

	"github.com/99minutos/task-manager/internal/core/domain"
)

// TokenIssuer signs bearer tokens for an identity.
type TokenIssuer interface {
	Issue(identity domain.Identity) (string, error)
	TTL() time.Duration
}

// TokenVerifier validates a bearer token and returns the identity it carries.
// Any failure is reported as domain.ErrInvalidToken.
type TokenVerifier interface {
	Verify(token string) (domain.Identity, error)
}

// TokenRevocations records tokens invalidated before their expiry.
type TokenRevocations interface {
	RevokeToken(ctx context.Context, tokenID string, until time.Time) error
	RevokeUser(ctx context.Context, userID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, identity domain.Identity) (bool, error)
}
