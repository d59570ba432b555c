package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for one importer run
type Config struct {
	Supplier SupplierConfig `mapstructure:"supplier"`
	Feed     FeedConfig     `mapstructure:"feed"`
	Store    StoreConfig    `mapstructure:"store"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Export   ExportConfig   `mapstructure:"export"`
}

// SupplierConfig identifies the supplier this run imports for
type SupplierConfig struct {
	Name            string `mapstructure:"name"`
	SKUPrefix       string `mapstructure:"sku_prefix"`
	DiscountPercent int    `mapstructure:"discount_percent"`
	ProductTable    string `mapstructure:"product_table"`
}

// FeedConfig holds feed source configuration. Protocol selects the fetcher:
// "ftp" or "http".
type FeedConfig struct {
	Protocol string `mapstructure:"protocol"`
	File     string `mapstructure:"file"`
	Timeout  int    `mapstructure:"timeout"`

	// FTP source
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`

	// HTTP source
	BaseURL string `mapstructure:"base_url"`
}

// StoreConfig holds object store connection details for the catalog upload
type StoreConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	UseSSL    bool   `mapstructure:"use_ssl"`
	Bucket    string `mapstructure:"bucket"`
	BasePath  string `mapstructure:"base_path"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
}

// RedisConfig holds connection details for the optional last-run tracker
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	Database int    `mapstructure:"database"`
}

// ExportConfig holds local export settings
type ExportConfig struct {
	Dir string `mapstructure:"dir"`
}

// Load loads configuration from YAML file with environment variable overrides
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	setDefaults()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil, fmt.Errorf("config.yaml file not found in current directory")
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate rejects configurations the run cannot start with.
func (c *Config) Validate() error {
	if c.Supplier.Name == "" {
		return fmt.Errorf("supplier.name is required")
	}
	if c.Supplier.DiscountPercent < 0 || c.Supplier.DiscountPercent > 100 {
		return fmt.Errorf("supplier.discount_percent must be in [0, 100], got %d", c.Supplier.DiscountPercent)
	}
	switch c.Feed.Protocol {
	case "ftp":
		if c.Feed.Host == "" {
			return fmt.Errorf("feed.host is required for ftp feeds")
		}
	case "http":
		if c.Feed.BaseURL == "" {
			return fmt.Errorf("feed.base_url is required for http feeds")
		}
	default:
		return fmt.Errorf("feed.protocol must be \"ftp\" or \"http\", got %q", c.Feed.Protocol)
	}
	if c.Feed.File == "" {
		return fmt.Errorf("feed.file is required")
	}
	if c.Store.Enabled && c.Store.Bucket == "" {
		return fmt.Errorf("store.bucket is required when store is enabled")
	}
	return nil
}

// SKUPrefix returns the configured prefix, defaulting to the supplier name.
func (c *SupplierConfig) GetSKUPrefix() string {
	if c.SKUPrefix != "" {
		return c.SKUPrefix
	}
	return c.Name
}

// GetProductTable returns the destination table, derived from the supplier
// name unless set explicitly.
func (c *SupplierConfig) GetProductTable() string {
	if c.ProductTable != "" {
		return c.ProductTable
	}
	return "products_" + strings.ToLower(c.Name)
}

func setDefaults() {
	viper.SetDefault("supplier.discount_percent", 0)
	viper.SetDefault("supplier.sku_prefix", "")

	viper.SetDefault("feed.protocol", "ftp")
	viper.SetDefault("feed.port", 21)
	viper.SetDefault("feed.timeout", 30)

	viper.SetDefault("store.enabled", false)
	viper.SetDefault("store.endpoint", "localhost:9000")
	viper.SetDefault("store.use_ssl", false)
	viper.SetDefault("store.base_path", "macro/datafiles")

	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.name", "stockfeed")
	viper.SetDefault("database.user", "stockfeed_user")
	viper.SetDefault("database.password", "stockfeed_pass")

	viper.SetDefault("redis.enabled", false)
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.database", 0)

	viper.SetDefault("export.dir", ".")
}
