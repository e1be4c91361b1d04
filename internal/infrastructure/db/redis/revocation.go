package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/99minutos/task-manager/internal/core/domain"
)

// RevocationStore records revoked tokens in Redis.
// Key formats:
//
//	revoked:token:<jti>  set on logout, expires with the token
//	revoked:user:<id>    set on account deletion, expires after one token TTL
type RevocationStore struct {
	client *redis.Client
	now    func() time.Time
}

// NewRevocationStore creates a RevocationStore wrapping the given Redis client.
func NewRevocationStore(client *redis.Client) *RevocationStore {
	return &RevocationStore{client: client, now: time.Now}
}

// RevokeToken marks tokenID revoked until the token would have expired.
// Tokens that are already expired need no entry.
func (s *RevocationStore) RevokeToken(ctx context.Context, tokenID string, until time.Time) error {
	ttl := until.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, tokenKey(tokenID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// RevokeUser marks every token of userID revoked for ttl.
func (s *RevocationStore) RevokeUser(ctx context.Context, userID string, ttl time.Duration) error {
	if err := s.client.Set(ctx, userKey(userID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke user: %w", err)
	}
	return nil
}

// IsRevoked reports whether either the token or its user has been revoked.
func (s *RevocationStore) IsRevoked(ctx context.Context, id domain.Identity) (bool, error) {
	keys := []string{userKey(id.UserID)}
	if id.TokenID != "" {
		keys = append(keys, tokenKey(id.TokenID))
	}
	n, err := s.client.Exists(ctx, keys...).Result()
	if err != nil {
		return false, fmt.Errorf("revocation check: %w", err)
	}
	return n > 0, nil
}

// Name identifies the store in readiness reports.
func (s *RevocationStore) Name() string { return "redis" }

// Check pings Redis.
func (s *RevocationStore) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return s.client.Ping(ctx).Err()
}

func tokenKey(tokenID string) string { return "revoked:token:" + tokenID }

func userKey(userID string) string { return "revoked:user:" + userID }
