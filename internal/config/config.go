// Package config loads application configuration from environment variables
// and an optional dotenv file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Session store backends.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

const defaultEnvFile = ".env"

var (
	// ErrMissingAPIKey is returned when GEMINI_API_KEY is unset or blank.
	ErrMissingAPIKey = errors.New("GEMINI_API_KEY is required")

	// ErrInvalidBackend is returned for an unknown POSTWRITER_SESSION_BACKEND.
	ErrInvalidBackend = errors.New("invalid session backend")
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	Gemini struct {
		APIKey  string `env:"GEMINI_API_KEY" env-required:"true" env-description:"Gemini API key"`
		Model   string `env:"GEMINI_MODEL" env-default:"gemini-2.0-flash" env-description:"Gemini model name"`
		BaseURL string `env:"GEMINI_BASE_URL" env-description:"Gemini API base URL override"`
	}
	Access struct {
		Secret string `env:"OWNER_PASS" env-default:"letmein" env-description:"access code that unlocks unlimited posts"`
		Hash   string `env:"OWNER_PASS_HASH" env-description:"bcrypt hash of the access code; replaces OWNER_PASS when set"`
	}
	HTTP struct {
		ListenAddr   string `env:"POSTWRITER_LISTEN_ADDR" env-default:"127.0.0.1:8080" env-description:"HTTP listen address"`
		CookieSecure bool   `env:"POSTWRITER_COOKIE_SECURE" env-default:"false" env-description:"set the Secure flag on cookies"`
	}
	Session struct {
		Backend       string        `env:"POSTWRITER_SESSION_BACKEND" env-default:"memory" env-description:"session store: memory or sqlite"`
		IdleTTL       time.Duration `env:"POSTWRITER_SESSION_IDLE_TTL" env-default:"24h" env-description:"idle session lifetime"`
		SweepInterval time.Duration `env:"POSTWRITER_SESSION_SWEEP_INTERVAL" env-default:"10m" env-description:"how often idle sessions are removed"`
	}
	EnvFile string `env:"POSTWRITER_ENV_FILE" env-default:".env" env-description:"dotenv file loaded before reading the environment"`
}

// Load reads the dotenv file (if present) and then the environment, and
// returns a validated Config. Variables already set in the environment win
// over the dotenv file. GEMINI_API_KEY is required; everything else has a
// default.
func Load() (*Config, error) {
	envFile := defaultEnvFile
	if v, ok := os.LookupEnv("POSTWRITER_ENV_FILE"); ok && v != "" {
		envFile = v
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env file %q: %w", envFile, err)
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		if strings.TrimSpace(os.Getenv("GEMINI_API_KEY")) == "" {
			return nil, fmt.Errorf("%w: %w", ErrMissingAPIKey, err)
		}
		return nil, fmt.Errorf("read environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Gemini.APIKey) == "" {
		return ErrMissingAPIKey
	}

	switch c.Session.Backend {
	case BackendMemory, BackendSQLite:
	default:
		return fmt.Errorf("%w %q: want %q or %q", ErrInvalidBackend, c.Session.Backend, BackendMemory, BackendSQLite)
	}

	if c.Session.IdleTTL <= 0 {
		return fmt.Errorf("POSTWRITER_SESSION_IDLE_TTL must be positive, got %s", c.Session.IdleTTL)
	}
	if c.Session.SweepInterval <= 0 {
		return fmt.Errorf("POSTWRITER_SESSION_SWEEP_INTERVAL must be positive, got %s", c.Session.SweepInterval)
	}
	return nil
}

// Description returns a help text listing every supported environment
// variable with its default and description.
func Description() string {
	header := "Environment variables:"
	text, err := cleanenv.GetDescription(&Config{}, &header)
	if err != nil {
		return header
	}
	return text
}
