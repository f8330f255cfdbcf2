package bootstrap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv 把会影响 LoadConfig 的变量置空，t.Setenv 在测试结束时恢复原值
func clearEnv(t *testing.T) {
	for _, k := range []string{
		"APP_ENV", "SERVER_PORT", "LOG_LEVEL", "LOG_FILE", "DB_DSN", "DB_USER", "DB_PASSWORD",
		"DB_HOST", "DB_PORT", "DB_NAME", "DB_MAX_OPEN_CONNS", "DB_MAX_IDLE_CONNS", "REDIS_ADDR",
		"REDIS_PASSWORD", "REDIS_DB", "REDIS_KEY_PREFIX", "RATE_LIMIT_MAX", "RATE_LIMIT_WINDOW",
		"CORS_ALLOWED_ORIGIN", "UPLOAD_DIR", "MAX_AVATAR_SIZE", "AVATAR_SWEEP_SCHEDULE",
		"AVATAR_SWEEP_GRACE", "PASSWORD_SCHEME",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_USER", "root")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DB_NAME", "study")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "8000", cfg.ServerPort)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "root:pw@tcp(localhost:3306)/study?charset=utf8mb4&parseTime=True&loc=Local", cfg.DBDSN)
	assert.Equal(t, "http://localhost:3000", cfg.CORSAllowedOrigin)
	assert.Equal(t, "uploads", cfg.UploadDir)
	assert.Equal(t, int64(10<<20), cfg.MaxAvatarSize)
	assert.Equal(t, "plain", cfg.PasswordScheme)
	assert.Equal(t, 100, cfg.RateLimitMax)
	assert.Equal(t, time.Second, cfg.RateLimitWindow)
	assert.False(t, cfg.RedisEnabled())
}

func TestLoadConfig_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DSN", "user:pw@tcp(db:3306)/x")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")
	t.Setenv("MAX_AVATAR_SIZE", "2048")
	t.Setenv("LOG_LEVEL", "verbose")
	t.Setenv("PASSWORD_SCHEME", "bcrypt")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "user:pw@tcp(db:3306)/x", cfg.DBDSN)
	assert.True(t, cfg.RedisEnabled())
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, 30*time.Second, cfg.RateLimitWindow)
	assert.Equal(t, int64(2048), cfg.MaxAvatarSize)
	assert.Equal(t, "info", cfg.LogLevel, "invalid level falls back to info")
	assert.Equal(t, "bcrypt", cfg.PasswordScheme)
}

func TestLoadConfig_Errors(t *testing.T) {
	clearEnv(t)
	_, err := LoadConfig()
	assert.Error(t, err, "database settings are required")

	t.Setenv("DB_DSN", "dsn")
	t.Setenv("RATE_LIMIT_MAX", "lots")
	_, err = LoadConfig()
	assert.Error(t, err)

	t.Setenv("RATE_LIMIT_MAX", "0")
	_, err = LoadConfig()
	assert.Error(t, err)

	t.Setenv("RATE_LIMIT_MAX", "")
	t.Setenv("AVATAR_SWEEP_GRACE", "one day")
	_, err = LoadConfig()
	assert.Error(t, err)
}
