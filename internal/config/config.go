package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const DefaultTimezone = "America/New_York"

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Webhook  WebhookConfig
	Identity IdentityConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port            string
	Env             string // dev or prod
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	TrustedOrigins  []string
	// Set only behind a reverse proxy that overwrites X-Forwarded-For.
	TrustProxyHeaders bool
}

type DatabaseConfig struct {
	DSN          string // empty => in-memory storage
	AutoMigrate  bool
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Addr         string // empty => no user projection cache
	Password     string
	DB           int
	UserCacheTTL time.Duration
}

type AuthConfig struct {
	// PEM-encoded RS256 public key of the identity provider (networkless verification).
	SessionPublicKeyPEM string
	// HS256 secret, used when no public key is configured.
	SessionSecret     string
	AuthorizedParties []string
	Leeway            time.Duration
}

type WebhookConfig struct {
	Secret         string
	RateLimitRPS   float64
	RateLimitBurst int
}

// IdentityConfig holds the fallbacks applied to the profile attributes carried
// in the identity provider's metadata bag.
type IdentityConfig struct {
	DefaultTimezone string
}

type LogConfig struct {
	Level  string
	Format string
	App    string
}

// Load reads configuration from the environment, after loading a .env file
// when one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:              getEnv("PORT", "8080"),
			Env:               getEnv("APP_ENV", "dev"),
			ReadTimeout:       getDurationEnv("SERVER_READ_TIMEOUT", 5*time.Second),
			WriteTimeout:      getDurationEnv("SERVER_WRITE_TIMEOUT", 10*time.Second),
			ShutdownTimeout:   getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 15*time.Second),
			TrustedOrigins:    getSliceEnv("TRUSTED_ORIGINS", []string{"http://localhost:3000"}),
			TrustProxyHeaders: getBoolEnv("TRUST_PROXY_HEADERS", false),
		},
		Database: DatabaseConfig{
			DSN:          getEnv("DB_DSN", ""),
			AutoMigrate:  getBoolEnv("DB_AUTO_MIGRATE", false),
			MaxOpenConns: getIntEnv("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns: getIntEnv("DB_MAX_IDLE_CONNS", 5),
		},
		Redis: RedisConfig{
			Addr:         getEnv("REDIS_ADDR", ""),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getIntEnv("REDIS_DB", 0),
			UserCacheTTL: getDurationEnv("USER_CACHE_TTL", 5*time.Minute),
		},
		Auth: AuthConfig{
			SessionPublicKeyPEM: getEnv("CLERK_JWT_KEY", ""),
			SessionSecret:       getEnv("SESSION_JWT_SECRET", ""),
			AuthorizedParties:   getSliceEnv("SESSION_AUTHORIZED_PARTIES", nil),
			Leeway:              getDurationEnv("SESSION_LEEWAY", 5*time.Second),
		},
		Webhook: WebhookConfig{
			Secret:         getEnv("CLERK_WEBHOOK_SECRET", ""),
			RateLimitRPS:   getFloatEnv("WEBHOOK_RATE_LIMIT_RPS", 5),
			RateLimitBurst: getIntEnv("WEBHOOK_RATE_LIMIT_BURST", 20),
		},
		Identity: IdentityConfig{
			DefaultTimezone: getEnv("IDENTITY_DEFAULT_TIMEZONE", DefaultTimezone),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
			App:    getEnv("APP_NAME", "pet-health-records"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate enforces the settings production cannot run without.
func (c *Config) Validate() error {
	if c.Server.IsDevelopment() {
		return nil
	}
	if strings.TrimSpace(c.Webhook.Secret) == "" {
		return errors.New("CLERK_WEBHOOK_SECRET is required outside dev")
	}
	if strings.TrimSpace(c.Auth.SessionPublicKeyPEM) == "" && strings.TrimSpace(c.Auth.SessionSecret) == "" {
		return errors.New("CLERK_JWT_KEY or SESSION_JWT_SECRET is required outside dev")
	}
	return nil
}

func (c *ServerConfig) IsDevelopment() bool {
	return c.Env == "dev"
}

// SessionConfigured reports whether bearer tokens can be verified. Without
// it, dev mode trusts the X-Debug-User-ID header.
func (c *AuthConfig) SessionConfigured() bool {
	return strings.TrimSpace(c.SessionPublicKeyPEM) != "" || strings.TrimSpace(c.SessionSecret) != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}

func getFloatEnv(key string, defaultValue float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return defaultValue
	}
	return v
}

func getBoolEnv(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}

// getDurationEnv accepts Go durations ("30s") or plain seconds ("30").
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	seconds, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return time.Duration(seconds) * time.Second
}

func getSliceEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	if len(result) == 0 {
		return defaultValue
	}
	return result
}
