package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":  "s3cret",
		"MONGODB_URI": "mongodb://localhost:27017",
	}))
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "task_manager", cfg.Mongo.Database)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 0, cfg.Redis.DB)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"PORT":               "9000",
		"ENV":                "production",
		"JWT_SECRET":         "s3cret",
		"TOKEN_TTL":          "15m",
		"MONGODB_URI":        "mongodb://mongo:27017",
		"MONGODB_DB":         "tasks",
		"REDIS_ADDR":         "redis:6379",
		"REDIS_PASSWORD":     "pw",
		"REDIS_DB":           "2",
		"CORS_ALLOW_ORIGINS": "https://app.example.com,http://localhost:3000",
	}))
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, 15*time.Minute, cfg.Auth.TokenTTL)
	assert.Equal(t, "tasks", cfg.Mongo.Database)
	assert.Equal(t, "pw", cfg.Redis.Password)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, []string{"https://app.example.com", "http://localhost:3000"}, cfg.CORS.AllowOrigins)
}

func TestLoad_RequiresSecretAndMongoURI(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"MONGODB_URI": "mongodb://localhost:27017",
	}))
	assert.ErrorContains(t, err, "JWT_SECRET")

	_, err = load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
	}))
	assert.ErrorContains(t, err, "MONGODB_URI")
}
