// Package config reads runtime settings from the environment, after loading
// a .env file when one is present.
package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Local development fallbacks.
const (
	defaultDBHost     = "127.0.0.1"
	defaultDBPort     = "54322"
	defaultDBUser     = "postgres"
	defaultDBPassword = "postgres"
	defaultDBName     = "postgres"
	defaultAddr       = ":8080"
	defaultPostHog    = "https://us.i.posthog.com"
)

type Config struct {
	DatabaseURL    string
	HTTPAddr       string
	LogLevel       slog.Level
	PostHogAPIKey  string
	PostHogHost    string
	CheckoutDelay  time.Duration
	CookieSecure   bool
	MaxOpenConns   int
	ConnectTimeout time.Duration
}

// Load reads .env (if any) and then the process environment.
func Load(envFiles ...string) (Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load(envFiles...)
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() (Config, error) {
	cfg := Config{
		DatabaseURL:   databaseURL(),
		HTTPAddr:      getenv("HTTP_ADDR", defaultAddr),
		PostHogAPIKey: os.Getenv("POSTHOG_API_KEY"),
		PostHogHost:   getenv("POSTHOG_HOST", defaultPostHog),
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(getenv("LOG_LEVEL", "info"))); err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	var err error
	if cfg.CheckoutDelay, err = time.ParseDuration(getenv("CHECKOUT_DELAY", "1500ms")); err != nil {
		return Config{}, fmt.Errorf("CHECKOUT_DELAY: %w", err)
	}
	if cfg.ConnectTimeout, err = time.ParseDuration(getenv("DB_CONNECT_TIMEOUT", "5s")); err != nil {
		return Config{}, fmt.Errorf("DB_CONNECT_TIMEOUT: %w", err)
	}
	if cfg.CookieSecure, err = strconv.ParseBool(getenv("COOKIE_SECURE", "false")); err != nil {
		return Config{}, fmt.Errorf("COOKIE_SECURE: %w", err)
	}
	if cfg.MaxOpenConns, err = strconv.Atoi(getenv("DB_MAX_OPEN_CONNS", "10")); err != nil {
		return Config{}, fmt.Errorf("DB_MAX_OPEN_CONNS: %w", err)
	}

	return cfg, nil
}

// databaseURL prefers DATABASE_URL and otherwise assembles a URL from the
// DB_* variables. DB_PASSWORD is the data store access key.
func databaseURL() string {
	if u := os.Getenv("DATABASE_URL"); u != "" {
		return u
	}

	u := url.URL{
		Scheme: "postgres",
		User: url.UserPassword(
			getenv("DB_USER", defaultDBUser),
			getenv("DB_PASSWORD", defaultDBPassword),
		),
		Host:     getenv("DB_HOST", defaultDBHost) + ":" + getenv("DB_PORT", defaultDBPort),
		Path:     "/" + getenv("DB_NAME", defaultDBName),
		RawQuery: "sslmode=" + getenv("DB_SSLMODE", "disable"),
	}
	return u.String()
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
