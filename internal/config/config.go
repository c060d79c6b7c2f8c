// Package config reads the dashboard configuration once at startup.
package config

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"
)

// Defaults.
const (
	DefaultAPIURL          = "http://0.0.0.0:8000/api"
	DefaultPort            = "8080"
	DefaultLogLevel        = "info"
	DefaultUpstreamTimeout = 10 * time.Second
)

// Config holds the dashboard settings.
type Config struct {
	// APIURL is the base URL of the upstream weather service.
	APIURL          string
	Port            string
	Origin          string
	LogLevel        string
	UpstreamTimeout time.Duration
}

// Addr returns the listen address.
func (c Config) Addr() string {
	return ":" + c.Port
}

// Load reads settings from the environment and lets command line flags override them.
// args must not include the program name.
func Load(args []string, output io.Writer) (Config, error) {
	timeout := DefaultUpstreamTimeout
	if raw := env("UPSTREAM_TIMEOUT", ""); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("invalid UPSTREAM_TIMEOUT %q: %w", raw, err)
		}
		timeout = d
	}

	cfg := Config{}

	fs := flag.NewFlagSet("dashboard", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&cfg.APIURL, "api-url", env("API_URL", DefaultAPIURL), "upstream weather service base URL")
	fs.StringVarP(&cfg.Port, "port", "p", env("PORT", DefaultPort), "HTTP port of the dashboard")
	fs.StringVar(&cfg.Origin, "origin", env("ORIGIN", ""), "allowed CORS origin")
	fs.StringVar(&cfg.LogLevel, "log-level", env("LOG_LEVEL", DefaultLogLevel), "log level (debug, info, warn, error)")
	fs.DurationVar(&cfg.UpstreamTimeout, "upstream-timeout", timeout, "timeout of a single upstream request")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")
	return cfg, nil
}

func (c Config) validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil {
		return fmt.Errorf("invalid api url %q: %w", c.APIURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid api url %q: scheme must be http or https", c.APIURL)
	}

	if c.Port == "" {
		return fmt.Errorf("port must not be empty")
	}

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q (allowed: debug, info, warn, error)", c.LogLevel)
	}

	if c.UpstreamTimeout <= 0 {
		return fmt.Errorf("upstream timeout must be positive, got %s", c.UpstreamTimeout)
	}

	return nil
}

func env(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}
