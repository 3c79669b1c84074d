package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the process configuration, loaded from the environment
type Config struct {
	// Database
	DatabaseDriver string `env:"DB_DRIVER" envDefault:"sqlite3"`
	DatabaseDSN    string `env:"DB_DSN" envDefault:"data/wordday.db"`

	// HTTP server
	ListenAddr    string `env:"LISTEN_ADDR" envDefault:":8080"`
	SecureCookies bool   `env:"SECURE_COOKIES"`

	// Sessions
	JWTSecret  string        `env:"JWT_SECRET"`
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"720h"` // 30 days

	// Daily assignment
	ReferenceTimezone string `env:"REFERENCE_TIMEZONE" envDefault:"America/New_York"`
	WordsPerDay       int    `env:"WORDS_PER_DAY" envDefault:"2"`

	// AI sentence check
	AIAPIKey string `env:"AI_API_KEY"`
	AIAPIURL string `env:"AI_API_URL" envDefault:"https://api.openai.com/v1/chat/completions"`
	AIModel  string `env:"AI_MODEL" envDefault:"gpt-4o-mini"`

	// Reminders
	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN"`
}

// Load reads an optional .env file and parses the environment into a Config
func Load() (*Config, error) {
	// Missing .env is fine, real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return &cfg, nil
}

// Location resolves the reference timezone. An unknown timezone name is a
// configuration error and should be fatal at startup.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.ReferenceTimezone)
	if err != nil {
		return nil, fmt.Errorf("invalid reference timezone %q: %w", c.ReferenceTimezone, err)
	}
	return loc, nil
}
