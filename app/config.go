package app

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the dashboard settings. Every field is read from a
// DASHBOARD_-prefixed environment variable.
type Config struct {
	APIBaseURL     string        `env:"API_BASE_URL" envDefault:"https://adminbuypass.neksoft.com"`
	ListenAddr     string        `env:"LISTEN_ADDR" envDefault:":8080"`
	PageSize       int           `env:"PAGE_SIZE" envDefault:"10"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`
	SessionSecret  string        `env:"SESSION_SECRET"`
	CookieSecure   bool          `env:"COOKIE_SECURE" envDefault:"false"`
	JWKSURL        string        `env:"JWKS_URL"`
	OperatorName   string        `env:"OPERATOR_NAME" envDefault:"Admin"`
	LogFormat      string        `env:"LOG_FORMAT" envDefault:"json"`
}

// LoadConfig reads an optional .env file from dotenvPath and then parses the
// environment. Variables already set in the environment win over the file.
func LoadConfig(dotenvPath string) (*Config, error) {
	if dotenvPath != "" {
		if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", dotenvPath, err)
		}
	}

	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "DASHBOARD_"}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")
	return &cfg, nil
}

func (c *Config) validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("DASHBOARD_API_BASE_URL has invalid URL %q", c.APIBaseURL)
	}
	if c.PageSize < 1 {
		return fmt.Errorf("DASHBOARD_PAGE_SIZE must be positive, got %d", c.PageSize)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("DASHBOARD_REQUEST_TIMEOUT must be positive, got %s", c.RequestTimeout)
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("DASHBOARD_LOG_FORMAT must be json or text, got %q", c.LogFormat)
	}
	return nil
}
