// Package config holds the process configuration and the static navigation tree.
package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the runtime configuration read from the environment
type Config struct {
	Port     string `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// RedisURL enables the QR code cache when set
	RedisURL   string        `env:"REDIS_URL"`
	QRCacheTTL time.Duration `env:"QR_CACHE_TTL" envDefault:"1h"`

	MaxUploadBytes int64 `env:"MAX_UPLOAD_BYTES" envDefault:"10485760"`

	APITesterTimeout  time.Duration `env:"API_TESTER_TIMEOUT" envDefault:"15s"`
	APITesterRate     float64       `env:"API_TESTER_RATE" envDefault:"5"`
	APITesterMaxBody  int64         `env:"API_TESTER_MAX_BODY" envDefault:"1048576"`
	DefaultTimezone   string        `env:"DEFAULT_TIMEZONE" envDefault:"UTC"`
	DefaultRedirectTo string        `env:"DEFAULT_REDIRECT" envDefault:"/dev/json-formatter"`
}

// Load reads an optional .env file and parses the environment into a Config
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}
	return Parse()
}

// Parse reads the environment into a Config without touching .env files
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.MaxUploadBytes <= 0 {
		return Config{}, fmt.Errorf("MAX_UPLOAD_BYTES must be positive, got %d", cfg.MaxUploadBytes)
	}
	if cfg.APITesterRate <= 0 {
		return Config{}, fmt.Errorf("API_TESTER_RATE must be positive, got %v", cfg.APITesterRate)
	}
	if _, err := time.LoadLocation(cfg.DefaultTimezone); err != nil {
		return Config{}, fmt.Errorf("DEFAULT_TIMEZONE %q: %w", cfg.DefaultTimezone, err)
	}
	return cfg, nil
}
