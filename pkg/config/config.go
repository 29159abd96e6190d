// ABOUTME: Configuration management for the application with environment variable support
// ABOUTME: Defines configuration structures for server, ingestion, storage, and cache

package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig

	// Ingest contains ingestion pipeline configuration
	Ingest IngestConfig

	// Storage contains persistence configuration
	Storage StorageConfig

	// Cache contains fetch-cache configuration
	Cache CacheConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string
}

// IngestConfig holds ingestion pipeline configuration
type IngestConfig struct {
	// Secret gates the ingestion trigger endpoint; empty disables triggering
	Secret string

	// FetchTimeout bounds a single outbound fetch
	FetchTimeout time.Duration

	// RunTimeout bounds one full ingestion run
	RunTimeout time.Duration

	// FeedItemCap limits how many items of a feed document are considered
	FeedItemCap int

	// APIResultLimit is the page size requested from structured datasets
	APIResultLimit int

	// APIFilterMode selects server-side or local filtering for structured
	// datasets ("server" or "local")
	APIFilterMode string

	// Concurrency bounds how many sources are processed at once
	Concurrency int
}

// StorageConfig holds persistence configuration
type StorageConfig struct {
	// SQLitePath is the database file path
	SQLitePath string
}

// CacheConfig holds cache backend configuration
type CacheConfig struct {
	// Type specifies the cache backend (redis/memory)
	Type string

	// Redis contains Redis-specific configuration
	Redis RedisConfig
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string

	// Password is the Redis authentication password
	Password string

	// DB is the Redis database number
	DB int
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8000"),
		},
		Ingest: IngestConfig{
			Secret:         os.Getenv("INGEST_SECRET"),
			FetchTimeout:   getEnvAsDurationOrDefault("FETCH_TIMEOUT", 30*time.Second),
			RunTimeout:     getEnvAsDurationOrDefault("RUN_TIMEOUT", 5*time.Minute),
			FeedItemCap:    getEnvAsIntOrDefault("FEED_ITEM_CAP", 60),
			APIResultLimit: getEnvAsIntOrDefault("API_RESULT_LIMIT", 120),
			APIFilterMode:  getEnvOrDefault("API_FILTER_MODE", "server"),
			Concurrency:    getEnvAsIntOrDefault("INGEST_CONCURRENCY", 1),
		},
		Storage: StorageConfig{
			SQLitePath: getEnvOrDefault("SQLITE_PATH", "ao-radar.db"),
		},
		Cache: CacheConfig{
			Type: getEnvOrDefault("CACHE_TYPE", "memory"),
			Redis: RedisConfig{
				Address:  getEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
				Password: getEnvOrDefault("REDIS_PASSWORD", ""),
				DB:       getEnvAsIntOrDefault("REDIS_DB", 0),
			},
		},
	}

	return cfg, nil
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsDurationOrDefault returns the environment variable parsed as a
// Go duration string ("30s", "5m") or a default
func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}

	if c.Ingest.FetchTimeout <= 0 {
		return errors.New("fetch timeout must be positive")
	}

	if c.Ingest.RunTimeout <= 0 {
		return errors.New("run timeout must be positive")
	}

	if c.Ingest.FeedItemCap < 1 {
		return errors.New("feed item cap must be at least 1")
	}

	if c.Ingest.APIResultLimit < 1 {
		return errors.New("api result limit must be at least 1")
	}

	if c.Ingest.APIFilterMode != "server" && c.Ingest.APIFilterMode != "local" {
		return errors.New("api filter mode must be 'server' or 'local'")
	}

	if c.Ingest.Concurrency < 1 {
		return errors.New("ingest concurrency must be at least 1")
	}

	if c.Storage.SQLitePath == "" {
		return errors.New("sqlite path cannot be empty")
	}

	if c.Cache.Type != "redis" && c.Cache.Type != "memory" {
		return errors.New("cache type must be 'redis' or 'memory'")
	}

	if c.Cache.Type == "redis" && c.Cache.Redis.Address == "" {
		return errors.New("redis address cannot be empty when using redis cache")
	}

	return nil
}
