package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers understood by StoreConfig.Driver.
const (
	StoreMemory  = "memory"
	StoreSQLite  = "sqlite"
	StoreMongoDB = "mongodb"
)

// AI providers understood by AIConfig.Provider.
const (
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
)

// Config represents the full application configuration surface.
type Config struct {
	Server  ServerConfig
	Log     LogConfig
	Store   StoreConfig
	MongoDB MongoDBConfig
	AI      AIConfig
	Pricing PricingConfig
	Catalog CatalogConfig
	Sheets  SheetsConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port     string
	Timezone string
}

// LogConfig selects the zap level.
type LogConfig struct {
	Level string
}

// StoreConfig selects where saved rations live.
type StoreConfig struct {
	Driver     string
	SQLitePath string
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// AIConfig holds settings for the advisory model providers. An empty key for the
// selected provider disables advisory features.
type AIConfig struct {
	Provider     string
	GeminiKey    string
	GeminiModel  string
	AnthropicKey string
}

// PricingConfig holds the market price refresh schedule.
type PricingConfig struct {
	CronSchedule string
}

// CatalogConfig points at an optional YAML overlay for breeds and feeds.
type CatalogConfig struct {
	Path string
}

// SheetsConfig contains the optional Google Sheets ledger settings.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:     getenvWithDefault("APP_PORT", "8080"),
			Timezone: getenvWithDefault("TIMEZONE", "Europe/Istanbul"),
		},
		Log: LogConfig{
			Level: getenvWithDefault("LOG_LEVEL", "info"),
		},
		Store: StoreConfig{
			Driver:     strings.ToLower(getenvWithDefault("STORE_DRIVER", StoreSQLite)),
			SQLitePath: getenvWithDefault("SQLITE_PATH", "rations.db"),
		},
		MongoDB: MongoDBConfig{
			URI:    getenvWithDefault("MONGODB_URI", "mongodb://localhost:27017"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "feedration"),
		},
		AI: AIConfig{
			Provider:     strings.ToLower(getenvWithDefault("AI_PROVIDER", ProviderGemini)),
			GeminiKey:    os.Getenv("GEMINI_API_KEY"),
			GeminiModel:  getenvWithDefault("GEMINI_MODEL", "gemini-2.5-flash"),
			AnthropicKey: os.Getenv("ANTHROPIC_API_KEY"),
		},
		Pricing: PricingConfig{
			CronSchedule: getenvWithDefault("PRICE_REFRESH_CRON", "0 6 * * *"),
		},
		Catalog: CatalogConfig{
			Path: os.Getenv("CATALOG_PATH"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_DATABASE_ID"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	if _, err := time.LoadLocation(c.Server.Timezone); err != nil {
		return fmt.Errorf("TIMEZONE %q is invalid: %w", c.Server.Timezone, err)
	}

	switch c.Store.Driver {
	case StoreMemory:
	case StoreSQLite:
		if c.Store.SQLitePath == "" {
			return errors.New("SQLITE_PATH must be provided for the sqlite store")
		}
	case StoreMongoDB:
		if c.MongoDB.URI == "" {
			return errors.New("MONGODB_URI must be provided for the mongodb store")
		}
		if c.MongoDB.DBName == "" {
			return errors.New("MONGODB_DB_NAME must not be empty")
		}
	default:
		return fmt.Errorf("STORE_DRIVER %q is not supported", c.Store.Driver)
	}

	switch c.AI.Provider {
	case ProviderGemini, ProviderAnthropic:
	default:
		return fmt.Errorf("AI_PROVIDER %q is not supported", c.AI.Provider)
	}

	if c.Pricing.CronSchedule == "" {
		return errors.New("PRICE_REFRESH_CRON must be provided")
	}

	if (c.Sheets.CredentialsPath == "") != (c.Sheets.SpreadsheetID == "") {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH and GOOGLE_SHEET_DATABASE_ID must be provided together")
	}

	return nil
}

// AdvisoryEnabled reports whether the selected provider has credentials.
func (c AIConfig) AdvisoryEnabled() bool {
	switch c.Provider {
	case ProviderGemini:
		return c.GeminiKey != ""
	case ProviderAnthropic:
		return c.AnthropicKey != ""
	}
	return false
}

// LedgerEnabled reports whether saved rations are mirrored to Google Sheets.
func (c SheetsConfig) LedgerEnabled() bool {
	return c.CredentialsPath != "" && c.SpreadsheetID != ""
}

// Location returns the configured timezone, falling back to UTC.
func (c ServerConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
