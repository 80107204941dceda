// Package config provides application configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/abhisek/codecoach/internal/store"
)

// Config holds all application configuration.
type Config struct {
	Server      ServerConfig
	Client      ClientConfig
	DBPath      string
	PromptsFile string
	LogLevel    slog.Level
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Addr            string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	CORSOrigins     []string
	MaxBodyBytes    int64
	RecordEvents    bool
}

// ClientConfig controls how the terminal UI reaches the API.
type ClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

// LoadDotEnv loads variables from .env files into the environment. Variables
// already set win. A missing file is not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	dbPath, err := store.ResolveDBPath()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Addr:            getEnv("CODECOACH_ADDR", ":5000"),
			RequestTimeout:  getEnvDuration("CODECOACH_REQUEST_TIMEOUT", 2*time.Minute),
			ShutdownTimeout: getEnvDuration("CODECOACH_SHUTDOWN_TIMEOUT", 10*time.Second),
			CORSOrigins:     getEnvList("CODECOACH_CORS_ORIGINS", []string{"*"}),
			MaxBodyBytes:    int64(getEnvInt("CODECOACH_MAX_BODY_BYTES", 1<<20)),
			RecordEvents:    getEnvBool("CODECOACH_RECORD_EVENTS", true),
		},
		Client: ClientConfig{
			BaseURL: getEnv("CODECOACH_SERVER_URL", "http://localhost:5000"),
			Timeout: getEnvDuration("CODECOACH_CLIENT_TIMEOUT", 2*time.Minute),
		},
		DBPath:      dbPath,
		PromptsFile: getEnv("CODECOACH_PROMPTS_FILE", ""),
		LogLevel:    getEnvLevel("CODECOACH_LOG_LEVEL", slog.LevelInfo),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("CODECOACH_ADDR cannot be empty")
	}
	if c.Server.RequestTimeout <= 0 {
		return fmt.Errorf("CODECOACH_REQUEST_TIMEOUT must be > 0")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("CODECOACH_SHUTDOWN_TIMEOUT must be > 0")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("CODECOACH_MAX_BODY_BYTES must be > 0")
	}
	if c.Client.Timeout <= 0 {
		return fmt.Errorf("CODECOACH_CLIENT_TIMEOUT must be > 0")
	}
	u, err := url.Parse(c.Client.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("CODECOACH_SERVER_URL must be an absolute URL, got %q", c.Client.BaseURL)
	}
	if c.DBPath == "" {
		return fmt.Errorf("CODECOACH_DB cannot be empty")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return d
}

func getEnvList(key string, fallback []string) []string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

func getEnvLevel(key string, fallback slog.Level) slog.Level {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(value))); err != nil {
		return fallback
	}
	return level
}
