package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	Database    DatabaseConfig
	Redis       RedisConfig
	Catalog     CatalogConfig
	LogLevel    string
}

// DatabaseConfig points at the audit database. An empty Host disables it.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// Enabled reports whether the audit database is configured
func (c DatabaseConfig) Enabled() bool {
	return c.Host != ""
}

// RedisConfig points at the reference-data cache. An empty Addr disables it.
type RedisConfig struct {
	Addr           string
	Password       string
	DB             int
	MarketplaceTTL time.Duration
}

// CatalogConfig points at the catalog backend API
type CatalogConfig struct {
	BaseURL string
	Timeout time.Duration
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("MARKETPLACE_CACHE_TTL", "10m")
	viper.SetDefault("CATALOG_API_TIMEOUT", "30s")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if .env doesn't exist, we'll use env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	redisDB, err := strconv.Atoi(getEnvOrViper("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("REDIS_DB must be an integer: %w", err)
	}
	marketplaceTTL, err := time.ParseDuration(getEnvOrViper("MARKETPLACE_CACHE_TTL", "10m"))
	if err != nil {
		return nil, fmt.Errorf("MARKETPLACE_CACHE_TTL is invalid: %w", err)
	}
	catalogTimeout, err := time.ParseDuration(getEnvOrViper("CATALOG_API_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("CATALOG_API_TIMEOUT is invalid: %w", err)
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		Database: DatabaseConfig{
			Host:     getEnvOrViper("DB_HOST", ""),
			Port:     getEnvOrViper("DB_PORT", "5432"),
			User:     getEnvOrViper("DB_USER", "postgres"),
			Password: getEnvOrViper("DB_PASSWORD", "postgres"),
			DBName:   getEnvOrViper("DB_NAME", "storeconfig"),
			SSLMode:  getEnvOrViper("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:           getEnvOrViper("REDIS_ADDR", ""),
			Password:       getEnvOrViper("REDIS_PASSWORD", ""),
			DB:             redisDB,
			MarketplaceTTL: marketplaceTTL,
		},
		Catalog: CatalogConfig{
			BaseURL: getEnvOrViper("CATALOG_API_BASE_URL", ""),
			Timeout: catalogTimeout,
		},
		LogLevel: getEnvOrViper("LOG_LEVEL", "info"),
	}

	// The catalog base URL is checked when the client is built so the
	// failure surfaces before any request is attempted.

	return cfg, nil
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}
