package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/shopsynth-dev/shopsynth/internal/dataset"
)

const ConfigFileName = "shopsynth.config.json"

type Config struct {
	OutputPath  string `json:"output_path" mapstructure:"output_path"`
	ProfilePath string `json:"profile_path,omitempty" mapstructure:"profile_path"`

	Seed      int64 `json:"seed" mapstructure:"seed"`
	Customers int   `json:"customers" mapstructure:"customers"`
	Products  int   `json:"products" mapstructure:"products"`
	Orders    int   `json:"orders" mapstructure:"orders"`

	StartDate string `json:"start_date" mapstructure:"start_date"`
	EndDate   string `json:"end_date" mapstructure:"end_date"`

	MaxItemsPerOrder int `json:"max_items_per_order" mapstructure:"max_items_per_order"`
	MaxQuantity      int `json:"max_quantity" mapstructure:"max_quantity"`

	Database Database `json:"database" mapstructure:"database"`
}

type Database struct {
	Provider string `json:"provider" mapstructure:"provider"`
	URLEnv   string `json:"url_env" mapstructure:"url_env"`
}

func DefaultConfig() *Config {
	return &Config{
		OutputPath:       "data/raw",
		Seed:             42,
		Customers:        1500,
		Products:         300,
		Orders:           8000,
		StartDate:        "2023-01-01",
		EndDate:          "2024-12-31",
		MaxItemsPerOrder: 5,
		MaxQuantity:      5,
		Database: Database{
			Provider: "postgresql",
			URLEnv:   "DATABASE_URL",
		},
	}
}

func Load() (*Config, error) {
	var cfg Config

	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Set defaults for anything the config file and flags left unset
	def := DefaultConfig()
	if cfg.OutputPath == "" {
		cfg.OutputPath = def.OutputPath
	}
	if cfg.Seed == 0 && !viper.IsSet("seed") {
		cfg.Seed = def.Seed
	}
	if cfg.Customers == 0 && !viper.IsSet("customers") {
		cfg.Customers = def.Customers
	}
	if cfg.Products == 0 && !viper.IsSet("products") {
		cfg.Products = def.Products
	}
	if cfg.Orders == 0 && !viper.IsSet("orders") {
		cfg.Orders = def.Orders
	}
	if cfg.StartDate == "" {
		cfg.StartDate = def.StartDate
	}
	if cfg.EndDate == "" {
		cfg.EndDate = def.EndDate
	}
	if cfg.MaxItemsPerOrder == 0 && !viper.IsSet("max_items_per_order") {
		cfg.MaxItemsPerOrder = def.MaxItemsPerOrder
	}
	if cfg.MaxQuantity == 0 && !viper.IsSet("max_quantity") {
		cfg.MaxQuantity = def.MaxQuantity
	}
	if cfg.Database.Provider == "" {
		cfg.Database.Provider = def.Database.Provider
	}
	if cfg.Database.URLEnv == "" {
		cfg.Database.URLEnv = def.Database.URLEnv
	}

	return &cfg, nil
}

// DateRange parses the configured date bounds.
func (c *Config) DateRange() (start, end time.Time, err error) {
	start, err = time.Parse(dataset.DateFormat, c.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start_date %q: %w", c.StartDate, err)
	}
	end, err = time.Parse(dataset.DateFormat, c.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end_date %q: %w", c.EndDate, err)
	}
	return start, end, nil
}

func (c *Config) GetDatabaseURL() (string, error) {
	dbURL := os.Getenv(c.Database.URLEnv)
	if dbURL == "" {
		return "", fmt.Errorf("database URL not found in environment variable %s", c.Database.URLEnv)
	}
	return dbURL, nil
}

func (c *Config) EnsureDirectories() error {
	if c.OutputPath == "" || c.OutputPath == "." {
		return nil
	}
	if err := os.MkdirAll(c.OutputPath, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", c.OutputPath, err)
	}
	return nil
}

// Validate fails fast on any parameter that would make generation
// meaningless, naming the parameter in the error.
func (c *Config) Validate() error {
	if c.OutputPath == "" {
		return fmt.Errorf("output_path cannot be empty")
	}
	if c.Customers <= 0 {
		return fmt.Errorf("customers must be positive, got %d", c.Customers)
	}
	if c.Products <= 0 {
		return fmt.Errorf("products must be positive, got %d", c.Products)
	}
	if c.Orders <= 0 {
		return fmt.Errorf("orders must be positive, got %d", c.Orders)
	}
	if c.MaxItemsPerOrder <= 0 {
		return fmt.Errorf("max_items_per_order must be positive, got %d", c.MaxItemsPerOrder)
	}
	if c.MaxQuantity <= 0 {
		return fmt.Errorf("max_quantity must be positive, got %d", c.MaxQuantity)
	}

	start, end, err := c.DateRange()
	if err != nil {
		return err
	}
	if end.Before(start) {
		return fmt.Errorf("end_date %s is before start_date %s", c.EndDate, c.StartDate)
	}

	supportedProviders := []string{"postgresql", "postgres", "mysql", "sqlite", "sqlite3"}
	supported := false
	for _, provider := range supportedProviders {
		if c.Database.Provider == provider {
			supported = true
			break
		}
	}
	if !supported {
		return fmt.Errorf("unsupported database provider: %s. Supported providers: %v", c.Database.Provider, supportedProviders)
	}

	return nil
}

// IsInitialized reports whether a config file exists in the working directory.
func IsInitialized() bool {
	_, err := os.Stat(ConfigFileName)
	return err == nil
}

// InitializeProject writes the default config file and creates the output
// directory. It refuses to overwrite an existing config.
func InitializeProject() error {
	if IsInitialized() {
		return fmt.Errorf("project already initialized: %s exists", ConfigFileName)
	}

	cfg := DefaultConfig()
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(ConfigFileName, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", ConfigFileName, err)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}

	return nil
}
