package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_PusherRequiresAllCredentials(t *testing.T) {
	t.Setenv("PUSHER_APP_ID", "123")
	t.Setenv("PUSHER_KEY", "key")
	t.Setenv("PUSHER_SECRET", "secret")
	t.Setenv("PUSHER_CLUSTER", "")

	cfg := Load()
	assert.False(t, cfg.Pusher.Complete())

	t.Setenv("PUSHER_CLUSTER", "eu")
	cfg = Load()
	assert.True(t, cfg.Pusher.Complete())
}

func TestDSN_FallsBackToMySQL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "3307")
	t.Setenv("DB_USER", "u")
	t.Setenv("DB_PASSWORD", "p")
	t.Setenv("DB_NAME", "retro")

	cfg := Load()
	assert.Equal(t, "u:p@tcp(db:3307)/retro?charset=utf8mb4&parseTime=True&loc=Local", cfg.DSN())

	t.Setenv("DATABASE_URL", "postgres://localhost/retro")
	assert.Equal(t, "postgres://localhost/retro", Load().DSN())
}

func TestRealtimeStreamAndRedis(t *testing.T) {
	t.Setenv("REALTIME_STREAM", "false")
	t.Setenv("REDIS_HOST", "")
	cfg := Load()
	assert.False(t, cfg.RealtimeStream)
	assert.Empty(t, cfg.RedisAddr())

	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_PORT", "6380")
	assert.Equal(t, "cache:6380", Load().RedisAddr())
}
