package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeys(t *testing.T) {
	assert.Equal(t, "revoked:token:abc", tokenKey("abc"))
	assert.Equal(t, "revoked:user:65f0c0ffee", userKey("65f0c0ffee"))
}

func TestRevokeToken_ExpiredTokenIsNoop(t *testing.T) {
	// The client points nowhere: reaching Redis would fail the call.
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0", DialTimeout: 10 * time.Millisecond})
	t.Cleanup(func() { _ = client.Close() })

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store := NewRevocationStore(client)
	store.now = func() time.Time { return now }

	require.NoError(t, store.RevokeToken(context.Background(), "jti", now.Add(-time.Second)))
	require.NoError(t, store.RevokeToken(context.Background(), "jti", now))
	assert.Error(t, store.RevokeToken(context.Background(), "jti", now.Add(time.Minute)))
}

func TestName(t *testing.T) {
	assert.Equal(t, "redis", NewRevocationStore(nil).Name())
}
