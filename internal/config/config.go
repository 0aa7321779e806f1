package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Storage backends accepted by STORAGE_BACKEND.
const (
	BackendJSON    = "json"
	BackendMongoDB = "mongodb"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	Storage   StorageConfig
	Logging   LoggingConfig
	Inventory InventoryConfig
	Sheets    SheetsConfig
	Alerts    AlertsConfig
	Schedule  ScheduleConfig
	MongoDB   MongoDBConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// StorageConfig selects where snapshots are persisted.
type StorageConfig struct {
	Backend string
	File    string
}

// LoggingConfig points the diagnostic sink at a file.
type LoggingConfig struct {
	File    string
	Console bool
}

// InventoryConfig holds stock policy.
type InventoryConfig struct {
	LowStockThreshold int
}

// SheetsConfig contains configuration required to interact with Google Sheets.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// Enabled reports whether report export to Sheets is configured.
func (c SheetsConfig) Enabled() bool {
	return c.SpreadsheetID != ""
}

// AlertsConfig configures the low-stock webhook.
type AlertsConfig struct {
	WebhookURL string
	Token      string
}

// ScheduleConfig holds cron expressions for background jobs.
type ScheduleConfig struct {
	LowStockCron string
	AutosaveCron string
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI    string
	DBName string
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
		// Missing .env files are fine; everything has an environment fallback.
		_ = godotenv.Load()
	}

	threshold, err := getenvInt("LOW_STOCK_THRESHOLD", 5)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Storage: StorageConfig{
			Backend: getenvWithDefault("STORAGE_BACKEND", BackendJSON),
			File:    getenvWithDefault("INVENTORY_FILE", "inventory.json"),
		},
		Logging: LoggingConfig{
			File:    getenvWithDefault("INVENTORY_LOG_FILE", "inventory.log"),
			Console: os.Getenv("LOG_CONSOLE") == "true",
		},
		Inventory: InventoryConfig{
			LowStockThreshold: threshold,
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_DATABASE_ID"),
		},
		Alerts: AlertsConfig{
			WebhookURL: os.Getenv("ALERT_WEBHOOK_URL"),
			Token:      os.Getenv("ALERT_WEBHOOK_TOKEN"),
		},
		Schedule: ScheduleConfig{
			LowStockCron: getenvWithDefault("LOW_STOCK_CRON", "0 * * * *"),
			AutosaveCron: getenvWithDefault("AUTOSAVE_CRON", "*/15 * * * *"),
		},
		MongoDB: MongoDBConfig{
			URI:    os.Getenv("MONGODB_URI"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "inventory"),
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

	switch c.Storage.Backend {
	case BackendJSON:
		if c.Storage.File == "" {
			return errors.New("INVENTORY_FILE must not be empty")
		}
	case BackendMongoDB:
		if c.MongoDB.URI == "" {
			return errors.New("MONGODB_URI must be provided when STORAGE_BACKEND=mongodb")
		}
		if c.MongoDB.DBName == "" {
			return errors.New("MONGODB_DB_NAME must not be empty")
		}
	default:
		return fmt.Errorf("unsupported STORAGE_BACKEND %q", c.Storage.Backend)
	}

	if c.Inventory.LowStockThreshold < 0 {
		return errors.New("LOW_STOCK_THRESHOLD must not be negative")
	}

	if c.Sheets.SpreadsheetID != "" && c.Sheets.CredentialsPath == "" {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH must be provided with GOOGLE_SHEET_DATABASE_ID")
	}

	if c.Schedule.LowStockCron == "" || c.Schedule.AutosaveCron == "" {
		return errors.New("LOW_STOCK_CRON and AUTOSAVE_CRON must not be empty")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}
