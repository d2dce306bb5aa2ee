// Package config provides application configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvHintCost       = "CODEKITCHEN_HINT_COST"
	EnvStartingCoins  = "CODEKITCHEN_STARTING_COINS"
	EnvAckDelay       = "CODEKITCHEN_ACK_DELAY"
	EnvCatalog        = "CODEKITCHEN_CATALOG"
	EnvJournal        = "CODEKITCHEN_JOURNAL"
	EnvAddr           = "CODEKITCHEN_ADDR"
	EnvAllowedOrigins = "CODEKITCHEN_ALLOWED_ORIGINS"
	EnvLogLevel       = "CODEKITCHEN_LOG_LEVEL"
	EnvLogFile        = "CODEKITCHEN_LOG_FILE"
	EnvSeed           = "CODEKITCHEN_SEED"
)

// Config holds all application configuration.
type Config struct {
	HintCost        int
	StartingBalance int
	AckDelay        time.Duration

	CatalogPath string // empty = embedded catalog
	JournalPath string // empty = in-memory journal

	Addr           string
	AllowedOrigins []string

	LogLevel string
	LogFile  string

	// Seed makes shuffles reproducible. Zero means random.
	Seed uint64
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		HintCost:        10,
		StartingBalance: 100,
		AckDelay:        3500 * time.Millisecond,
		Addr:            ":8080",
		AllowedOrigins:  []string{"*"},
		LogLevel:        "info",
	}
}

// Load reads an optional .env file, then configuration from environment
// variables on top of the defaults.
func Load() (*Config, error) {
	// A missing .env file is the common case.
	_ = godotenv.Load()

	def := Default()
	cfg := &Config{
		HintCost:        getEnvInt(EnvHintCost, def.HintCost),
		StartingBalance: getEnvInt(EnvStartingCoins, def.StartingBalance),
		AckDelay:        getEnvDuration(EnvAckDelay, def.AckDelay),
		CatalogPath:     getEnv(EnvCatalog, ""),
		JournalPath:     getEnv(EnvJournal, ""),
		Addr:            getEnv(EnvAddr, def.Addr),
		AllowedOrigins:  getEnvList(EnvAllowedOrigins, def.AllowedOrigins),
		LogLevel:        getEnv(EnvLogLevel, def.LogLevel),
		LogFile:         getEnv(EnvLogFile, ""),
		Seed:            getEnvUint(EnvSeed, 0),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that all configuration values are usable.
func (c *Config) Validate() error {
	if c.HintCost <= 0 {
		return fmt.Errorf("%s must be > 0, got %d", EnvHintCost, c.HintCost)
	}
	if c.StartingBalance < 0 {
		return fmt.Errorf("%s must be >= 0, got %d", EnvStartingCoins, c.StartingBalance)
	}
	if c.AckDelay <= 0 {
		return fmt.Errorf("%s must be > 0, got %s", EnvAckDelay, c.AckDelay)
	}
	if c.Addr == "" {
		return fmt.Errorf("%s cannot be empty", EnvAddr)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%s: %w", EnvLogLevel, err)
	}
	return nil
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
	return lvl, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
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

func getEnvUint(key string, fallback uint64) uint64 {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.ParseUint(strings.TrimSpace(value), 10, 64)
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
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
