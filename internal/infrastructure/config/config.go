package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// SessionTTL is the sliding expiry of session state and cookie.
	SessionTTL   time.Duration `env:"SESSION_TTL,   default=720h"`
	CookieSecure bool          `env:"COOKIE_SECURE, default=false"`

	UploadDir string `env:"UPLOAD_DIR, default=./uploads"`

	LoginRateLimit  int           `env:"LOGIN_RATE_LIMIT,  default=5"`
	LoginRateWindow time.Duration `env:"LOGIN_RATE_WINDOW, default=60s"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=pokeshop"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// Production reports whether the server runs with production hardening
// (secure cookies).
func (c *Config) Production() bool {
	return c.Env == "production"
}
