// Package config provides configuration management for the challenge analyzer.
// It loads configuration from environment variables and .env files.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	Hive    HiveConfig
	Hafah   HafahConfig
	Cache   CacheConfig
	Logging LoggingConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Host string
}

// HiveConfig holds Hive content API configuration
type HiveConfig struct {
	NodeURL string
	Timeout time.Duration
}

// HafahConfig holds HAFAH operation history API configuration
type HafahConfig struct {
	BaseURL           string
	PageSize          int
	DataSizeLimit     int
	Timeout           time.Duration
	RequestsPerSecond float64
}

// CacheConfig holds analysis result cache configuration
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
	Redis   RedisConfig
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host           string
	Port           string
	Password       string
	DB             int
	MaxConnections int
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// LoadConfig loads configuration from .env file and environment variables
func LoadConfig() (*Config, error) {
	// Load .env file (optional in production)
	if err := godotenv.Load(); err != nil {
		// .env file is optional - environment variables can be set directly
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
		},
		Hive: HiveConfig{
			NodeURL: getEnv("HIVE_NODE_URL", "https://api.hive.blog"),
			Timeout: getEnvAsDuration("HIVE_TIMEOUT", 30*time.Second),
		},
		Hafah: HafahConfig{
			BaseURL:           getEnv("HAFAH_BASE_URL", "https://api.syncad.com/hafah-api"),
			PageSize:          getEnvAsInt("HAFAH_PAGE_SIZE", 100),
			DataSizeLimit:     getEnvAsInt("HAFAH_DATA_SIZE_LIMIT", 200000),
			Timeout:           getEnvAsDuration("HAFAH_TIMEOUT", 30*time.Second),
			RequestsPerSecond: getEnvAsFloat("HAFAH_REQUESTS_PER_SECOND", 3.0),
		},
		Cache: CacheConfig{
			Enabled: getEnvAsBool("CACHE_ENABLED", false),
			TTL:     getEnvAsDuration("CACHE_TTL", 5*time.Minute),
			Redis: RedisConfig{
				Host:           getEnv("REDIS_HOST", "localhost"),
				Port:           getEnv("REDIS_PORT", "6379"),
				Password:       getEnv("REDIS_PASSWORD", ""),
				DB:             getEnvAsInt("REDIS_DB", 0),
				MaxConnections: getEnvAsInt("REDIS_MAX_CONNECTIONS", 50),
			},
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	return config, nil
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer with a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsFloat gets an environment variable as a float with a default value
func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsBool gets an environment variable as a bool with a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration gets an environment variable as a duration with a default value
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
