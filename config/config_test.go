package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("COMMENTS_AUTH__JWT_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, "comments", cfg.Mongo.Database)
	assert.Equal(t, 10*time.Second, cfg.Mongo.Timeout)
	assert.Equal(t, "secret", cfg.Auth.JWTSecret)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("COMMENTS_AUTH__JWT_SECRET", "secret")
	t.Setenv("COMMENTS_ENV", "production")
	t.Setenv("COMMENTS_SERVER__PORT", "8080")
	t.Setenv("COMMENTS_MONGO__URI", "mongodb://mongo:27017")
	t.Setenv("COMMENTS_MONGO__TIMEOUT", "3s")
	t.Setenv("COMMENTS_RATE_LIMIT__BURST", "5")
	t.Setenv("COMMENTS_SERVER__CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "mongodb://mongo:27017", cfg.Mongo.URI)
	assert.Equal(t, 3*time.Second, cfg.Mongo.Timeout)
	assert.Equal(t, 5, cfg.RateLimit.Burst)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSAllowedOrigins)
	assert.False(t, cfg.IsDevelopment())
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("COMMENTS_AUTH__JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_InvalidStorage(t *testing.T) {
	t.Setenv("COMMENTS_AUTH__JWT_SECRET", "secret")
	t.Setenv("COMMENTS_STORAGE", "postgres")

	_, err := Load()
	assert.Error(t, err)
}
