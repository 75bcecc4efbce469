// Package config loads postdesk settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the full postdesk configuration.
type Config struct {
	// APIURL is the base URL of the posts API.
	APIURL string `env:"POSTDESK_API_URL" envDefault:"http://localhost:3001"`

	// Token, when set, is used instead of the token file for reads.
	Token string `env:"POSTDESK_TOKEN"`

	// TokenFile defaults to ~/.postdesk/token.
	TokenFile string `env:"POSTDESK_TOKEN_FILE"`

	// Environment is "development" or "production".
	Environment string `env:"POSTDESK_ENV" envDefault:"production"`

	Log LogConfig

	HTTP HTTPConfig

	OAuth OAuthConfig
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level string `env:"POSTDESK_LOG_LEVEL" envDefault:"info"`
	// File defaults to ~/.postdesk/postdesk.log. The terminal belongs to the UI.
	File string `env:"POSTDESK_LOG_FILE"`
}

// HTTPConfig controls the API client.
type HTTPConfig struct {
	Timeout time.Duration `env:"POSTDESK_HTTP_TIMEOUT" envDefault:"30s"`
}

// OAuthConfig controls the Google sign-in loopback flow.
type OAuthConfig struct {
	// CallbackAddr is where the loopback listener binds; port 0 picks a free port.
	CallbackAddr string `env:"POSTDESK_OAUTH_CALLBACK_ADDR" envDefault:"127.0.0.1:0"`
	// SettleDelay runs before the callback URL is parsed.
	SettleDelay time.Duration `env:"POSTDESK_OAUTH_SETTLE_DELAY" envDefault:"100ms"`
	// Timeout bounds how long to wait for the browser to come back.
	Timeout time.Duration `env:"POSTDESK_OAUTH_TIMEOUT" envDefault:"2m"`
}

const (
	minHTTPTimeout = time.Second
	maxHTTPTimeout = 5 * time.Minute
	maxSettleDelay = 2 * time.Second
)

// Load reads an optional .env file, then the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return Config{}, fmt.Errorf("load .env file: %w", err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Sanitize(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Sanitize fills path defaults and clamps values to sane ranges.
func (c *Config) Sanitize() error {
	c.APIURL = strings.TrimRight(strings.TrimSpace(c.APIURL), "/")
	if c.APIURL == "" {
		return errors.New("config: POSTDESK_API_URL is empty")
	}

	if c.TokenFile == "" || c.Log.File == "" {
		dir, err := Dir()
		if err != nil {
			return err
		}
		if c.TokenFile == "" {
			c.TokenFile = filepath.Join(dir, "token")
		}
		if c.Log.File == "" {
			c.Log.File = filepath.Join(dir, "postdesk.log")
		}
	}

	c.Environment = strings.ToLower(strings.TrimSpace(c.Environment))
	if c.Environment != "development" {
		c.Environment = "production"
	}

	if c.HTTP.Timeout < minHTTPTimeout {
		c.HTTP.Timeout = minHTTPTimeout
	}
	if c.HTTP.Timeout > maxHTTPTimeout {
		c.HTTP.Timeout = maxHTTPTimeout
	}
	if c.OAuth.SettleDelay < 0 {
		c.OAuth.SettleDelay = 0
	}
	if c.OAuth.SettleDelay > maxSettleDelay {
		c.OAuth.SettleDelay = maxSettleDelay
	}
	if c.OAuth.Timeout <= 0 {
		c.OAuth.Timeout = 2 * time.Minute
	}
	return nil
}

// IsDev reports whether development mode is on.
func (c Config) IsDev() bool {
	return c.Environment == "development"
}

// Dir returns ~/.postdesk.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".postdesk"), nil
}
