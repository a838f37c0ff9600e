// Package config reads the settings of nwt from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Store backends.
const (
	FileStore   = "file"
	SQLiteStore = "sqlite"
)

type Config struct {
	// Storage
	DataDir    string
	Store      string
	SQLitePath string
	User       string

	// Display
	Currency string

	// Categories excluded from totals unless the user includes them.
	ExcludedCategories []string

	// Quotes
	AlphaVantageAPIKey string
	QuoteConcurrency   int

	LogLevel string
}

// Load reads a .env file from the working directory, if any, then the
// environment. Variables already set in the environment win.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "ignoring .env: %v\n", err)
	}

	dataDir := getEnv("NWT_DATA_DIR", defaultDataDir())
	return &Config{
		DataDir:    dataDir,
		Store:      getEnv("NWT_STORE", FileStore),
		SQLitePath: getEnv("NWT_SQLITE_PATH", filepath.Join(dataDir, "networth.db")),
		User:       getEnv("NWT_USER", ""),

		Currency: getEnv("NWT_CURRENCY", "USD"),

		ExcludedCategories: getEnvList("NWT_EXCLUDED_CATEGORIES", nil),

		AlphaVantageAPIKey: getEnv("ALPHA_VANTAGE_API_KEY", ""),
		QuoteConcurrency:   getEnvInt("NWT_QUOTE_CONCURRENCY", 4),

		LogLevel: getEnv("LOG_LEVEL", "warn"),
	}
}

// Validate returns all the problems of the configuration.
func (c *Config) Validate() error {
	var errs []error

	validStores := []string{FileStore, SQLiteStore}
	if !slices.Contains(validStores, c.Store) {
		errs = append(errs, fmt.Errorf("invalid store %q: must be one of %v", c.Store, validStores))
	}
	if c.Store == FileStore && c.DataDir == "" {
		errs = append(errs, errors.New("data directory cannot be empty when using the file store"))
	}
	if c.Store == SQLiteStore && c.SQLitePath == "" {
		errs = append(errs, errors.New("SQLite database path cannot be empty when using the sqlite store"))
	}
	if len(c.Currency) != 3 {
		errs = append(errs, fmt.Errorf("invalid currency %q: must be an ISO 4217 code", c.Currency))
	}
	if c.QuoteConcurrency < 1 || c.QuoteConcurrency > 25 {
		errs = append(errs, fmt.Errorf("invalid quote concurrency %d: must be between 1 and 25", c.QuoteConcurrency))
	}
	if strings.ContainsAny(c.User, `/\`) {
		errs = append(errs, fmt.Errorf("invalid user %q: must not contain path separators", c.User))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

// defaultDataDir is a directory in the user config dir, or the working
// directory when there is none.
func defaultDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "nwt-data"
	}
	return filepath.Join(dir, "nwt")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

// getEnvList reads a comma separated list. An empty variable gives the default.
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var list []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}
