package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config holds every runtime setting, sourced from environment variables
// with an optional .env file for local development.
type Config struct {
	AppEnv             string
	Port               string
	DatabaseURL        string
	RedisURL           string
	CORSAllowedOrigins []string

	CatalogCacheTTL time.Duration
	SeedOnEmpty     bool

	MaxBodyBytes      int64
	AdminRateLimit    int
	AdminRateWindow   time.Duration
	ShutdownTimeout   time.Duration
	EmailQueueName    string
	EmailTaskRetries  int
	WorkerConcurrency int
}

// Load reads the environment into a Config. DATABASE_URL and REDIS_URL are
// mandatory; everything else has a default.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := &Config{
		AppEnv:             stringOr(k.String("APP_ENV"), "development"),
		Port:               stringOr(k.String("PORT"), "8080"),
		DatabaseURL:        k.String("DATABASE_URL"),
		RedisURL:           k.String("REDIS_URL"),
		CORSAllowedOrigins: splitCSV(k.String("CORS_ALLOWED_ORIGINS")),
		CatalogCacheTTL:    durationOr(k.String("CATALOG_CACHE_TTL"), 5*time.Minute),
		SeedOnEmpty:        boolOr(k.String("SEED_ON_EMPTY"), true),
		MaxBodyBytes:       int64Or(k.String("MAX_BODY_BYTES"), 1<<20),
		AdminRateLimit:     intOr(k.String("ADMIN_RATE_LIMIT"), 60),
		AdminRateWindow:    durationOr(k.String("ADMIN_RATE_WINDOW"), time.Minute),
		ShutdownTimeout:    durationOr(k.String("SHUTDOWN_TIMEOUT"), 10*time.Second),
		EmailQueueName:     stringOr(k.String("EMAIL_QUEUE_NAME"), "emails"),
		EmailTaskRetries:   intOr(k.String("EMAIL_TASK_RETRIES"), 5),
		WorkerConcurrency:  intOr(k.String("WORKER_CONCURRENCY"), 5),
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}
	if cfg.RedisURL == "" {
		return nil, errors.New("REDIS_URL is required")
	}
	return cfg, nil
}

// MustLoad is Load for entrypoints: configuration errors are fatal.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// HTTPAddr formats the listen address, accepting PORT with or without a
// leading colon.
func (c *Config) HTTPAddr() string {
	port := strings.TrimSpace(c.Port)
	switch {
	case port == "":
		return ":8080"
	case strings.HasPrefix(port, ":"):
		return port
	default:
		return ":" + port
	}
}

// LoadForTests overlays env with the given values, loads, then restores the
// previous environment.
func LoadForTests(overrides map[string]string) (*Config, error) {
	previous := make(map[string]string, len(overrides))
	for key, value := range overrides {
		previous[key] = os.Getenv(key)
		if err := applyEnv(key, value); err != nil {
			return nil, err
		}
	}

	cfg, loadErr := Load()

	var restoreErrs []string
	for key, value := range previous {
		if err := applyEnv(key, value); err != nil {
			restoreErrs = append(restoreErrs, fmt.Sprintf("%s: %v", key, err))
		}
	}
	if loadErr != nil {
		return nil, loadErr
	}
	if len(restoreErrs) > 0 {
		return cfg, fmt.Errorf("restore env: %s", strings.Join(restoreErrs, "; "))
	}
	return cfg, nil
}

func applyEnv(key, value string) error {
	if value == "" {
		return os.Unsetenv(key)
	}
	return os.Setenv(key, value)
}

func stringOr(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func splitCSV(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func durationOr(value string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func boolOr(value string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func intOr(value string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}

func int64Or(value string, fallback int64) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return fallback
	}
	return n
}
