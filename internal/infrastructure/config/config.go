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

	// DatabaseURL is the Postgres connection string.
	DatabaseURL string `env:"DATABASE_URL, default=postgres://localhost:5432/chatapp?sslmode=disable"`

	// FrontendCallbackURL is where the browser lands after a completed
	// login, with the session token appended as a query parameter.
	FrontendCallbackURL string `env:"FRONTEND_CALLBACK_URL, default=http://localhost:5173/auth/callback"`

	// AllowedOrigins lists the origins permitted for CORS and WebSocket
	// handshakes (comma-separated).
	AllowedOrigins []string `env:"ALLOWED_ORIGINS, default=http://localhost:5173"`

	JWT    JWTConfig
	Google GoogleConfig
	Redis  RedisConfig
}

type JWTConfig struct {
	Secret   string        `env:"JWT_SECRET"`
	Issuer   string        `env:"JWT_ISSUER,   default=chat-api"`
	Audience string        `env:"JWT_AUDIENCE, default=chat-client"`
	TTL      time.Duration `env:"JWT_TTL,      default=24h"`
}

type GoogleConfig struct {
	ClientID     string `env:"GOOGLE_CLIENT_ID"`
	ClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	RedirectURL  string `env:"GOOGLE_REDIRECT_URL, default=http://localhost:8080/api/auth/google-callback"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("config: JWT_SECRET is required")
	}
	return &cfg, nil
}
