// ABOUTME: This file handles configuration management for feed-sync
// ABOUTME: Loads environment variables and validates configuration for the Tiny Tiny RSS API integration

package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the feed-sync service.
type Config struct {
	// Service configuration
	ServiceName string
	LogLevel    string
	AdminAddr   string

	// Database configuration
	Database DatabaseConfig

	// Tiny Tiny RSS API configuration
	TTRSS TTRSSConfig

	// Redis image cache configuration
	Redis RedisConfig

	// Synchronization configuration
	Sync SyncConfig
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
}

// DSN returns the pgx connection string.
func (c DatabaseConfig) DSN() string {
	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + c.Port,
		Path:     c.Name,
		RawQuery: "sslmode=" + c.SSLMode,
	}
	return dsn.String()
}

// TTRSSConfig holds Tiny Tiny RSS API settings.
type TTRSSConfig struct {
	APIURL   string
	User     string
	Password string
}

// RedisConfig holds the image cache settings. An empty address
// disables image caching.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	ImageTTL time.Duration
}

// SyncConfig holds synchronization cadence and sizing settings.
type SyncConfig struct {
	SyncInterval         time.Duration
	PurgeInterval        time.Duration
	PurgeRetention       time.Duration
	MaxArticlesToRefresh int
	UpdateFeedIcons      bool
	FeedIconWorkers      int
	TaskWorkers          int
	EnablePurge          bool
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServiceName: getEnvOrDefault("SERVICE_NAME", "feed-sync"),
		LogLevel:    getEnvOrDefault("LOG_LEVEL", "info"),
		AdminAddr:   getEnvOrDefault("ADMIN_ADDR", ":8080"),

		Database: DatabaseConfig{
			Host:     getEnvOrDefault("DB_HOST", "localhost"),
			Port:     getEnvOrDefault("DB_PORT", "5432"),
			Name:     getEnvOrDefault("DB_NAME", "feed_sync"),
			User:     getEnvOrDefault("DB_USER", "feed_sync_user"),
			Password: os.Getenv("DB_PASSWORD"), // Required from secret
			SSLMode:  getEnvOrDefault("DB_SSL_MODE", "disable"),
		},

		TTRSS: TTRSSConfig{
			APIURL:   os.Getenv("TTRSS_API_URL"),  // Required
			User:     os.Getenv("TTRSS_USER"),     // Required
			Password: os.Getenv("TTRSS_PASSWORD"), // Required from secret
		},

		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"), // Empty disables image caching
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvIntOrDefault("REDIS_DB", 0),
			ImageTTL: getEnvDurationOrDefault("IMAGE_CACHE_TTL", 24*time.Hour),
		},

		Sync: SyncConfig{
			SyncInterval:         getEnvDurationOrDefault("SYNC_INTERVAL", 30*time.Minute),
			PurgeInterval:        getEnvDurationOrDefault("PURGE_INTERVAL", 24*time.Hour),
			MaxArticlesToRefresh: getEnvIntOrDefault("MAX_ARTICLES_TO_REFRESH", 500),
			UpdateFeedIcons:      getEnvOrDefault("UPDATE_FEED_ICONS", "true") == "true",
			FeedIconWorkers:      getEnvIntOrDefault("FEED_ICON_WORKERS", 5),
			TaskWorkers:          getEnvIntOrDefault("TASK_WORKERS", 4),
			EnablePurge:          getEnvOrDefault("ENABLE_PURGE", "true") == "true",
		},
	}

	retentionDays := getEnvIntOrDefault("PURGE_RETENTION_DAYS", 90)
	cfg.Sync.PurgeRetention = time.Duration(retentionDays) * 24 * time.Hour

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.TTRSS.APIURL == "" {
		return fmt.Errorf("TTRSS_API_URL is required")
	}
	if _, err := url.ParseRequestURI(c.TTRSS.APIURL); err != nil {
		return fmt.Errorf("TTRSS_API_URL is not a valid URL: %w", err)
	}
	if c.TTRSS.User == "" {
		return fmt.Errorf("TTRSS_USER is required")
	}
	if c.TTRSS.Password == "" {
		return fmt.Errorf("TTRSS_PASSWORD is required")
	}
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.Sync.TaskWorkers <= 0 {
		return fmt.Errorf("TASK_WORKERS must be positive")
	}
	if c.Sync.FeedIconWorkers <= 0 {
		return fmt.Errorf("FEED_ICON_WORKERS must be positive")
	}
	return nil
}

// getEnvOrDefault returns environment variable value or default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvIntOrDefault returns the variable parsed as int, or the
// default if unset or unparseable.
func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvDurationOrDefault returns the variable parsed as a duration,
// or the default if unset or unparseable.
func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
