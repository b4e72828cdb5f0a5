// Package config loads and validates application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers accepted by STORE_DRIVER.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

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

	// StoreDriver selects the itinerary store: memory (default), postgres, or sqlite.
	StoreDriver string

	// DatabaseURL is the Postgres connection string. Required when StoreDriver is postgres.
	DatabaseURL string

	// SQLitePath is the database file used by the sqlite driver. Defaults to "itinerary.db".
	SQLitePath string

	// AutoMigrate applies pending migrations at startup.
	AutoMigrate bool

	// RedisURL enables the supply cache when set (e.g. "redis://localhost:6379/0").
	RedisURL string

	// SupplyCacheTTL is how long cached supply lookups stay valid. Defaults to 15m.
	SupplyCacheTTL time.Duration

	// FlightOrigin is the departure airport for flight searches. Defaults to "LAX".
	FlightOrigin string

	// OpenAIAPIKey enables the LLM synthesizer. Empty selects the built-in planner.
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	// SynthTimeout bounds a single synthesizer call. Defaults to 60s.
	SynthTimeout time.Duration

	// RateLimitRPS and RateLimitBurst shape the per-client token bucket on the
	// generate and regenerate endpoints. An RPS of 0 disables limiting.
	RateLimitRPS   float64
	RateLimitBurst int

	// MaxBodyBytes caps request bodies. Defaults to 1 MiB.
	MaxBodyBytes int64
}

// Load reads configuration from environment variables and returns a Config.
// A .env file in the working directory, if present, seeds variables that are
// not already set. Returns an error listing every required variable that is
// missing and every value that cannot be parsed.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config.Load: read .env: %w", err)
	}

	p := &parser{}
	cfg := Config{
		Port:           getEnv("PORT", "8080"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		CORSOrigins:    splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		StoreDriver:    strings.ToLower(getEnv("STORE_DRIVER", DriverMemory)),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		SQLitePath:     getEnv("SQLITE_PATH", "itinerary.db"),
		AutoMigrate:    p.boolVar("AUTO_MIGRATE", false),
		RedisURL:       os.Getenv("REDIS_URL"),
		SupplyCacheTTL: p.durationVar("SUPPLY_CACHE_TTL", 15*time.Minute),
		FlightOrigin:   getEnv("FLIGHT_ORIGIN", "LAX"),
		OpenAIAPIKey:   os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:  getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIModel:    getEnv("OPENAI_MODEL", "gpt-5"),
		SynthTimeout:   p.durationVar("SYNTH_TIMEOUT", 60*time.Second),
		RateLimitRPS:   p.floatVar("RATE_LIMIT_RPS", 0.5),
		RateLimitBurst: p.intVar("RATE_LIMIT_BURST", 5),
		MaxBodyBytes:   int64(p.intVar("MAX_BODY_BYTES", 1<<20)),
	}

	switch cfg.StoreDriver {
	case DriverMemory, DriverSQLite:
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			p.missing = append(p.missing, "DATABASE_URL")
		}
	default:
		p.invalid = append(p.invalid, fmt.Sprintf("STORE_DRIVER=%q (want memory, postgres, or sqlite)", cfg.StoreDriver))
	}

	if err := p.err(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// parser accumulates parse failures so Load can report all of them at once.
type parser struct {
	missing []string
	invalid []string
}

func (p *parser) err() error {
	var parts []string
	if len(p.missing) > 0 {
		parts = append(parts, "required environment variables not set: "+strings.Join(p.missing, ", "))
	}
	if len(p.invalid) > 0 {
		parts = append(parts, "invalid environment variables: "+strings.Join(p.invalid, ", "))
	}
	if len(parts) == 0 {
		return nil
	}
	return errors.New(strings.Join(parts, "; "))
}

func (p *parser) boolVar(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.invalid = append(p.invalid, fmt.Sprintf("%s=%q", key, v))
		return fallback
	}
	return b
}

func (p *parser) intVar(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		p.invalid = append(p.invalid, fmt.Sprintf("%s=%q", key, v))
		return fallback
	}
	return n
}

func (p *parser) floatVar(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		p.invalid = append(p.invalid, fmt.Sprintf("%s=%q", key, v))
		return fallback
	}
	return f
}

func (p *parser) durationVar(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		p.invalid = append(p.invalid, fmt.Sprintf("%s=%q", key, v))
		return fallback
	}
	return d
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
