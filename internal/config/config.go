package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

// Config holds every setting read from the environment.
type Config struct {
	XAPIKey     string `env:"X_API_KEY" validate:"required"`
	XAPIBaseURL string `env:"X_API_BASE_URL" envDefault:"https://api.twitterapi.io/twitter" validate:"required,url"`

	OpenAIURL   string `env:"OPENAI_URL" envDefault:"https://openrouter.ai/api/v1" validate:"required,url"`
	OpenAIKey   string `env:"OPENAI_KEY" validate:"required"`
	OpenAIModel string `env:"OPENAI_MODEL" envDefault:"deepseek/deepseek-r1" validate:"required"`

	EnableCache        bool   `env:"ENABLE_CACHE" envDefault:"true"`
	CacheExpireMinutes int    `env:"CACHE_EXPIRE_MINUTES" envDefault:"30" validate:"gte=1"`
	CacheDBPath        string `env:"CACHE_DB_PATH" envDefault:"twitter_cache.db" validate:"required"`
	CacheSweepSchedule string `env:"CACHE_SWEEP_SCHEDULE"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`

	HTTPAddr           string `env:"HTTP_ADDR" envDefault:":8008"`
	HTTPTimeoutSeconds int    `env:"HTTP_TIMEOUT_SECONDS" envDefault:"60" validate:"gte=1"`

	JWTSecret   string `env:"JWT_SECRET" envDefault:"development-insecure-secret-change-me" validate:"min=16"`
	JWTIssuer   string `env:"JWT_ISSUER" envDefault:"profile-roast"`
	JWTAudience string `env:"JWT_AUDIENCE" envDefault:"profile-roast-clients"`

	HTTPTimeout time.Duration `env:"-"`
}

// Parse loads configuration from environment variables, validates and normalizes it.
func Parse() (*Config, error) {
	return ParseWith(env.Options{})
}

// ParseWith is Parse with explicit env options, mainly so tests can supply
// an environment map instead of the process environment.
func ParseWith(opts env.Options) (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return nil, fmt.Errorf("failed to parse env: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	cfg.normalize()
	return &cfg, nil
}

func (c *Config) normalize() {
	c.HTTPTimeout = time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

// CacheWindow returns the cache expiration window.
func (c *Config) CacheWindow() time.Duration {
	return time.Duration(c.CacheExpireMinutes) * time.Minute
}
