package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"

	// DefaultSessionSecret signs cookies in development only.
	DefaultSessionSecret = "dev-secret-change-me"
)

var ErrDefaultSessionSecret = errors.New("SESSION_SECRET must be set in production")

type Config struct {
	ServiceName string
	Environment string
	LoggerLevel string

	HTTPPort int

	Storage        string
	MigrationsPath string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string

	RedisHost     string
	RedisPort     string
	RedisPassword string

	SessionSecret string
	SessionTTL    time.Duration

	PageSize int

	AdminBotToken string
	AdminChatID   int64
}

func Load() Config {
	_ = godotenv.Load(".env")

	cfg := Config{}

	cfg.ServiceName = cast.ToString(getOrReturnDefault("SERVICE_NAME", "taxifleet"))
	cfg.Environment = cast.ToString(getOrReturnDefault("ENVIRONMENT", "development"))
	cfg.LoggerLevel = cast.ToString(getOrReturnDefault("LOGGER_LEVEL", "debug"))
	cfg.HTTPPort = cast.ToInt(getOrReturnDefault("HTTP_PORT", 8080))

	cfg.Storage = cast.ToString(getOrReturnDefault("STORAGE", StoragePostgres))
	cfg.MigrationsPath = cast.ToString(getOrReturnDefault("MIGRATIONS_PATH", "migrations/postgres"))

	cfg.PostgresHost = cast.ToString(getOrReturnDefault("POSTGRES_HOST", "localhost"))
	cfg.PostgresPort = cast.ToString(getOrReturnDefault("POSTGRES_PORT", "5432"))
	cfg.PostgresUser = cast.ToString(getOrReturnDefault("POSTGRES_USER", "postgres"))
	cfg.PostgresPassword = cast.ToString(getOrReturnDefault("POSTGRES_PASSWORD", "1234"))
	cfg.PostgresDB = cast.ToString(getOrReturnDefault("POSTGRES_DB", "taxifleet"))

	cfg.RedisHost = cast.ToString(getOrReturnDefault("REDIS_HOST", ""))
	cfg.RedisPort = cast.ToString(getOrReturnDefault("REDIS_PORT", "6379"))
	cfg.RedisPassword = cast.ToString(getOrReturnDefault("REDIS_PASSWORD", ""))

	cfg.SessionSecret = cast.ToString(getOrReturnDefault("SESSION_SECRET", DefaultSessionSecret))
	cfg.SessionTTL = cast.ToDuration(getOrReturnDefault("SESSION_TTL", "336h"))

	cfg.PageSize = cast.ToInt(getOrReturnDefault("PAGE_SIZE", 5))

	cfg.AdminBotToken = cast.ToString(getOrReturnDefault("ADMIN_BOT_TOKEN", ""))
	cfg.AdminChatID = cast.ToInt64(getOrReturnDefault("ADMIN_CHAT_ID", 0))

	return cfg
}

// PostgresURL is the connection string shared by pgxpool and golang-migrate.
func (c Config) PostgresURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.PostgresUser,
		c.PostgresPassword,
		c.PostgresHost,
		c.PostgresPort,
		c.PostgresDB,
	)
}

func (c Config) RedisAddr() string {
	if c.RedisHost == "" {
		return ""
	}
	return c.RedisHost + ":" + c.RedisPort
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

// Validate rejects settings that are only safe outside production.
func (c Config) Validate() error {
	if c.IsProduction() && c.SessionSecret == DefaultSessionSecret {
		return ErrDefaultSessionSecret
	}
	return nil
}

func getOrReturnDefault(key string, defaultValue interface{}) interface{} {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}
