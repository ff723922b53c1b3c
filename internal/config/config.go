// Package config loads configuration from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds runtime settings.
type Config struct {
	DatabaseURL string `env:"DATABASE_URL,required"`

	LLMProvider    string  `env:"LLM_PROVIDER" envDefault:"openai"`
	LLMAPIKey      string  `env:"LLM_API_KEY,required"`
	LLMBaseURL     string  `env:"LLM_BASE_URL" envDefault:"https://api.mistral.ai/v1"`
	LLMModel       string  `env:"LLM_MODEL" envDefault:"mistral-medium"`
	LLMTemperature float64 `env:"LLM_TEMPERATURE" envDefault:"0.7"`
	LLMMaxTokens   int64   `env:"LLM_MAX_TOKENS" envDefault:"400"`
	LLMTopP        float64 `env:"LLM_TOP_P" envDefault:"0.9"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	AdminID    int64         `env:"ADMIN_ID"`
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`
}

// Load reads env vars, applies defaults, and validates required fields.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
