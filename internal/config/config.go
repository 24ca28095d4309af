// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// DemoAccessCode is the admin access code used in demo mode when
// ADMIN_ACCESS_CODE is not set.
const DemoAccessCode = "demo"

// DefaultTelegramLink is the booking chat used when TELEGRAM_LINK is not set.
const DefaultTelegramLink = "https://t.me/gobishiftu"

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// DatabaseURL is the Postgres connection string of the live backend.
	// DatabasePassword is the credential used to connect with it.
	// The live backend is used only when both are set; otherwise the
	// server runs in demo mode against an in-memory store.
	DatabaseURL      string
	DatabasePassword string

	// AutoMigrate applies the embedded goose migrations on startup in live mode.
	AutoMigrate bool

	// AdminAccessCode gates the admin panel. Required in live mode;
	// defaults to DemoAccessCode in demo mode.
	AdminAccessCode string

	// StoreTimeout bounds every individual store call. Defaults to 10s.
	StoreTimeout time.Duration

	// DemoReadDelay is the artificial latency of demo-store reads. Defaults to 500ms.
	DemoReadDelay time.Duration

	// MaxImageBytes caps the size of an uploaded package image. Defaults to 2 MiB.
	MaxImageBytes int64

	// SessionTTL and SessionLimit bound the in-memory admin sessions.
	SessionTTL   time.Duration
	SessionLimit int

	// TelegramBotToken enables feedback notifications when set.
	// TelegramChatID is the chat that receives them.
	TelegramBotToken string
	TelegramChatID   int64

	// TelegramLink is the public chat that package booking links open.
	// Defaults to DefaultTelegramLink.
	TelegramLink string
}

// Live reports whether live backend credentials are configured.
func (c Config) Live() bool {
	return c.DatabaseURL != "" && c.DatabasePassword != ""
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing every variable that is missing or malformed.
func Load() (Config, error) {
	cfg := Config{
		Port:             getEnv("PORT", "8080"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		CORSOrigins:      splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		DatabasePassword: os.Getenv("DATABASE_PASSWORD"),
		AdminAccessCode:  os.Getenv("ADMIN_ACCESS_CODE"),
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramLink:     DefaultTelegramLink,
	}

	var problems []string
	parse := func(key string, fn func(string) error) {
		if v := os.Getenv(key); v != "" {
			if err := fn(v); err != nil {
				problems = append(problems, key)
			}
		}
	}

	cfg.StoreTimeout = 10 * time.Second
	cfg.DemoReadDelay = 500 * time.Millisecond
	cfg.MaxImageBytes = 2 << 20
	cfg.SessionTTL = 12 * time.Hour
	cfg.SessionLimit = 64

	parse("AUTO_MIGRATE", func(v string) (err error) {
		cfg.AutoMigrate, err = strconv.ParseBool(v)
		return err
	})
	parse("STORE_TIMEOUT", durationInto(&cfg.StoreTimeout))
	parse("DEMO_READ_DELAY", durationInto(&cfg.DemoReadDelay))
	parse("SESSION_TTL", durationInto(&cfg.SessionTTL))
	parse("MAX_IMAGE_BYTES", func(v string) (err error) {
		cfg.MaxImageBytes, err = strconv.ParseInt(v, 10, 64)
		if err == nil && cfg.MaxImageBytes <= 0 {
			err = fmt.Errorf("must be positive")
		}
		return err
	})
	parse("SESSION_LIMIT", func(v string) (err error) {
		cfg.SessionLimit, err = strconv.Atoi(v)
		if err == nil && cfg.SessionLimit <= 0 {
			err = fmt.Errorf("must be positive")
		}
		return err
	})
	parse("TELEGRAM_CHAT_ID", func(v string) (err error) {
		cfg.TelegramChatID, err = strconv.ParseInt(v, 10, 64)
		return err
	})

	parse("TELEGRAM_LINK", func(v string) error {
		u, err := url.Parse(v)
		if err != nil {
			return err
		}
		if (u.Scheme != "https" && u.Scheme != "http") || u.Host == "" {
			return fmt.Errorf("must be an absolute http(s) URL")
		}
		cfg.TelegramLink = v
		return nil
	})

	if cfg.AdminAccessCode == "" {
		if cfg.Live() {
			problems = append(problems, "ADMIN_ACCESS_CODE")
		} else {
			cfg.AdminAccessCode = DemoAccessCode
		}
	}

	if len(problems) > 0 {
		return Config{}, fmt.Errorf("environment variables missing or invalid: %s", strings.Join(problems, ", "))
	}

	return cfg, nil
}

// durationInto returns a parser that stores a time.Duration in dst.
func durationInto(dst *time.Duration) func(string) error {
	return func(v string) error {
		d, err := time.ParseDuration(v)
		if err != nil {
			return err
		}
		if d < 0 {
			return fmt.Errorf("must not be negative")
		}
		*dst = d
		return nil
	}
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
