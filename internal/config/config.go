package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port               int           `mapstructure:"port"`
	ReadTimeout        time.Duration `mapstructure:"read_timeout"`
	WriteTimeout       time.Duration `mapstructure:"write_timeout"`
	IdleTimeout        time.Duration `mapstructure:"idle_timeout"`
	ShutDownTimeout    time.Duration `mapstructure:"shutdown_timeout"`
	RequestTimeout     time.Duration `mapstructure:"request_timeout"`
	CORSAllowedOrigins string        `mapstructure:"cors_allowed_origins"`
}

// DataConfig holds catalog persistence settings.
type DataConfig struct {
	FilePath        string        `mapstructure:"file_path"`
	PersistInterval time.Duration `mapstructure:"persist_interval"`
}

// CacheConfig holds response-cache settings.
// A DefaultTTL of zero means cached entries never expire until invalidated.
type CacheConfig struct {
	DefaultTTL      time.Duration `mapstructure:"default_ttl"`
	JanitorInterval time.Duration `mapstructure:"janitor_interval"`
}

// MiscConfig holds everything that does not fit elsewhere.
type MiscConfig struct {
	GinMode         string `mapstructure:"gin_mode"`
	LogLevel        string `mapstructure:"log_level"`
	ProductsPerPage int    `mapstructure:"products_per_page"`
}

// Config is the full application configuration.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Data   DataConfig   `mapstructure:"data"`
	Cache  CacheConfig  `mapstructure:"cache"`
	Misc   MiscConfig   `mapstructure:"misc"`
}

// LoadConfig reads config.yaml (if present), applies defaults and
// GO_MART_* environment overrides, and validates the result.
func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	// Defaults to allow running without a config file
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 10*time.Second)
	viper.SetDefault("server.write_timeout", 10*time.Second)
	viper.SetDefault("server.idle_timeout", 120*time.Second)
	viper.SetDefault("server.shutdown_timeout", 5*time.Second)
	viper.SetDefault("server.request_timeout", 1*time.Second)
	viper.SetDefault("server.cors_allowed_origins", "*")
	viper.SetDefault("data.file_path", "./config/data/catalog.json")
	viper.SetDefault("data.persist_interval", 5*time.Second)
	viper.SetDefault("cache.default_ttl", time.Duration(0))
	viper.SetDefault("cache.janitor_interval", 1*time.Minute)
	viper.SetDefault("misc.gin_mode", "release")
	viper.SetDefault("misc.log_level", "info")
	viper.SetDefault("misc.products_per_page", 6)

	// Environment variables like GO_MART_SERVER_PORT override server.port
	viper.AutomaticEnv()
	viper.SetEnvPrefix("GO_MART")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		// No config file found; defaults and env vars still apply
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate checks that the configuration is internally consistent.
func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server read/write timeouts must be positive")
	}
	if c.Server.IdleTimeout <= 0 {
		return fmt.Errorf("server idle timeout must be positive")
	}
	if c.Server.ShutDownTimeout <= 0 {
		return fmt.Errorf("server shutdown timeout must be positive")
	}
	if c.Data.FilePath == "" {
		return fmt.Errorf("data file path is required")
	}
	if c.Data.PersistInterval <= 0 {
		return fmt.Errorf("persist interval must be positive")
	}
	if c.Cache.DefaultTTL < 0 {
		return fmt.Errorf("cache default TTL cannot be negative")
	}
	if c.Cache.JanitorInterval <= 0 {
		return fmt.Errorf("cache janitor interval must be positive")
	}
	if c.Misc.ProductsPerPage < 1 {
		return fmt.Errorf("products per page must be at least 1")
	}
	return nil
}
