package bootstrap

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/kano20041101/xuexizhushou/internal/infra/setup"
)

// Config 结构体用于存储从环境变量或文件加载的配置
type Config struct {
	AppEnv     string // development / production
	ServerPort string
	LogLevel   string
	LogFile    string // 为空时只输出到 stdout

	DBDSN          string
	DBMaxOpenConns int
	DBMaxIdleConns int

	RedisAddr       string // 为空时不启用限流和后台任务
	RedisPassword   string
	RedisDB         int
	KeyPrefix       string
	RateLimitMax    int
	RateLimitWindow time.Duration

	CORSAllowedOrigin string
	UploadDir         string
	MaxAvatarSize     int64
	AvatarSweepEvery  string        // asynq cron 表达式
	AvatarSweepGrace  time.Duration // 比这更新的文件不会被清理
	PasswordScheme    string
}

// RedisEnabled 表示是否配置了 Redis
func (c *Config) RedisEnabled() bool {
	return c.RedisAddr != ""
}

// LoadConfig 从环境变量加载配置，.env 文件存在时先加载它
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:            getEnv("APP_ENV", "development"),
		ServerPort:        getEnv("SERVER_PORT", "8000"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFile:           os.Getenv("LOG_FILE"),
		DBDSN:             os.Getenv("DB_DSN"),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		KeyPrefix:         getEnv("REDIS_KEY_PREFIX", "xxzs:"),
		CORSAllowedOrigin: getEnv("CORS_ALLOWED_ORIGIN", "http://localhost:3000"),
		UploadDir:         getEnv("UPLOAD_DIR", "uploads"),
		AvatarSweepEvery:  getEnv("AVATAR_SWEEP_SCHEDULE", "@every 1h"),
		PasswordScheme:    getEnv("PASSWORD_SCHEME", "plain"),
	}

	var err error
	if cfg.DBMaxOpenConns, err = getEnvInt("DB_MAX_OPEN_CONNS", 20); err != nil {
		return nil, err
	}
	if cfg.DBMaxIdleConns, err = getEnvInt("DB_MAX_IDLE_CONNS", 10); err != nil {
		return nil, err
	}
	if cfg.RedisDB, err = getEnvInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.RateLimitMax, err = getEnvInt("RATE_LIMIT_MAX", 100); err != nil {
		return nil, err
	}
	if cfg.RateLimitWindow, err = getEnvDuration("RATE_LIMIT_WINDOW", time.Second); err != nil {
		return nil, err
	}
	if cfg.AvatarSweepGrace, err = getEnvDuration("AVATAR_SWEEP_GRACE", 24*time.Hour); err != nil {
		return nil, err
	}
	maxAvatar, err := getEnvInt("MAX_AVATAR_SIZE", 10<<20)
	if err != nil {
		return nil, err
	}
	cfg.MaxAvatarSize = int64(maxAvatar)

	// DB_DSN 优先，否则由分项拼出 MySQL DSN
	if cfg.DBDSN == "" {
		user, name := os.Getenv("DB_USER"), os.Getenv("DB_NAME")
		if user == "" || name == "" {
			return nil, fmt.Errorf("either DB_DSN or DB_USER and DB_NAME must be set")
		}
		cfg.DBDSN = setup.MySQLDSN(user, os.Getenv("DB_PASSWORD"),
			getEnv("DB_HOST", "localhost"), getEnv("DB_PORT", "3306"), name)
	}

	if cfg.RateLimitMax <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_MAX must be positive, got %d", cfg.RateLimitMax)
	}
	if cfg.RateLimitWindow <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %s", cfg.RateLimitWindow)
	}

	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		logrus.Warnf("Invalid LOG_LEVEL '%s', using default 'info'", cfg.LogLevel)
		cfg.LogLevel = "info"
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}
