package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Sort preference backends selectable with SORT_STORE
const (
	SortStoreSQLite = "sqlite"
	SortStoreCookie = "cookie"
	SortStoreMemory = "memory"
)

type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"INFO"`

	SessionSecret   string        `env:"SESSION_SECRET"`
	SessionMaxAge   int           `env:"SESSION_MAX_AGE" envDefault:"31536000"`
	SessionCacheTTL time.Duration `env:"SESSION_CACHE_TTL" envDefault:"30m"`

	SortStore    string `env:"SORT_STORE" envDefault:"sqlite"`
	DatabasePath string `env:"DATABASE_PATH" envDefault:"./clients.db"`
	Locale       string `env:"LOCALE" envDefault:"en"`

	GoogleSheetID         string `env:"GOOGLE_SHEET_ID"`
	GoogleSheetRange      string `env:"GOOGLE_SHEET_RANGE" envDefault:"Clients!A2:G"`
	GoogleCredentialsFile string `env:"GOOGLE_CREDENTIALS_FILE"`

	RateLimitPerMinute int `env:"RATE_LIMIT_PER_MINUTE" envDefault:"120"`
	RateLimitBurst     int `env:"RATE_LIMIT_BURST" envDefault:"60"`
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		AppLogger.Info("No .env file found, using system environment variables")
	}

	return parseConfig(env.Options{})
}

func parseConfig(opts env.Options) (*Config, error) {
	config := &Config{}
	if err := env.ParseWithOptions(config, opts); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	config.SortStore = strings.ToLower(config.SortStore)
	switch config.SortStore {
	case SortStoreSQLite, SortStoreCookie, SortStoreMemory:
	default:
		return nil, fmt.Errorf("invalid SORT_STORE %q: must be sqlite, cookie or memory", config.SortStore)
	}

	if config.SessionSecret == "" {
		if config.IsProduction() {
			return nil, fmt.Errorf("SESSION_SECRET environment variable is required")
		}
		secret, err := GenerateSecureToken(32)
		if err != nil {
			return nil, fmt.Errorf("failed to generate session secret: %w", err)
		}
		config.SessionSecret = secret
	}
	if len(config.SessionSecret) < 32 {
		return nil, fmt.Errorf("SESSION_SECRET must be at least 32 characters long")
	}

	if config.SessionMaxAge <= 0 {
		return nil, fmt.Errorf("invalid SESSION_MAX_AGE: %d", config.SessionMaxAge)
	}
	if config.RateLimitPerMinute <= 0 || config.RateLimitBurst <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_PER_MINUTE and RATE_LIMIT_BURST must be positive")
	}

	return config, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func GenerateSecureToken(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

func GenerateCSRFToken() (string, error) {
	return GenerateSecureToken(32)
}
