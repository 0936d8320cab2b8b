package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	HTTPAddr    string `env:"HTTP_ADDR" envDefault:":8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	HouseSystem string `env:"HOUSE_SYSTEM" envDefault:"placidus"`
	TarotDeck   string `env:"TAROT_DECK" envDefault:"rider_waite"`

	// AI interpretation is optional; the computation engine works without it.
	AIEnabled         bool          `env:"AI_INTERPRETATION" envDefault:"false"`
	AIModel           string        `env:"AI_MODEL" envDefault:"anthropic/claude-3.5-sonnet"`
	AIFallbackModels  []string      `env:"AI_FALLBACK_MODELS"`
	OpenRouterAPIKey  string        `env:"OPENROUTER_API_KEY"`
	OpenRouterBaseURL string        `env:"OPENROUTER_BASE_URL" envDefault:"https://openrouter.ai/api/v1"`
	LLMTimeout        time.Duration `env:"LLM_TIMEOUT" envDefault:"60s"`
}

func Load() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return Config{}, err
	}

	if c.AIEnabled && c.OpenRouterAPIKey == "" {
		return Config{}, fmt.Errorf("OPENROUTER_API_KEY is required when AI_INTERPRETATION is enabled")
	}

	return c, nil
}

// SlogLevel returns the configured level; Load already rejected invalid values.
func (c Config) SlogLevel() slog.Level {
	level, _ := ParseLogLevel(c.LogLevel)
	return level
}

func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid LOG_LEVEL %q", s)
	}
}
