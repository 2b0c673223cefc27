package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	DatabaseDriver string // postgres or sqlite
	DatabaseURL    string
	SQLitePath     string

	RedisURL string        // optional; caching is disabled when empty
	CacheTTL time.Duration // lifetime of cached reference data

	JWTSecret string // Secret key for JWT token verification
	JWTTTL    int    // JWT token expiration time in hours

	AMQPURL      string // optional; notifications are only logged when empty
	AMQPExchange string
	AMQPQueue    string

	NotifyRecipient      string
	NotifyCurrencySymbol string
	NotifyLocale         string

	LogLevel  string
	LogFormat string

	RateLimitRPS        float64 // Rate limit for every API endpoint (requests per second)
	RateLimitBurst      int     // Burst size for rate limiting
	RateLimitWriteRPS   float64 // Rate limit for mutating requests (stricter)
	RateLimitWriteBurst int     // Burst size for mutating requests
}

func Load() *Config {
	// Try to load .env file (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables or defaults")
	}

	return &Config{
		Port:                 getEnv("PORT", "8080"),
		DatabaseDriver:       getEnv("DATABASE_DRIVER", "postgres"),
		DatabaseURL:          getEnv("DATABASE_URL", ""),
		SQLitePath:           getEnv("SQLITE_PATH", "./data/fintrack.db"),
		RedisURL:             getEnv("REDIS_URL", ""),
		CacheTTL:             getEnvDuration("CACHE_TTL", 10*time.Minute),
		JWTSecret:            getEnv("JWT_SECRET", ""),
		JWTTTL:               getEnvInt("JWT_TTL_HOURS", 24),
		AMQPURL:              getEnv("AMQP_URL", ""),
		AMQPExchange:         getEnv("AMQP_EXCHANGE", "fintrack"),
		AMQPQueue:            getEnv("AMQP_QUEUE", "notifications"),
		NotifyRecipient:      getEnv("NOTIFY_RECIPIENT", "notifications@fintrack.local"),
		NotifyCurrencySymbol: getEnv("NOTIFY_CURRENCY_SYMBOL", "$"),
		NotifyLocale:         getEnv("NOTIFY_LOCALE", "en"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		LogFormat:            getEnv("LOG_FORMAT", "text"),
		RateLimitRPS:         getEnvFloat("RATE_LIMIT_RPS", 10),
		RateLimitBurst:       getEnvInt("RATE_LIMIT_BURST", 20),
		RateLimitWriteRPS:    getEnvFloat("RATE_LIMIT_WRITE_RPS", 2),
		RateLimitWriteBurst:  getEnvInt("RATE_LIMIT_WRITE_BURST", 5),
	}
}

// Validate reports every configuration problem at once
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	validDrivers := []string{"postgres", "sqlite"}
	if !slices.Contains(validDrivers, c.DatabaseDriver) {
		errors = append(errors, fmt.Sprintf("invalid database driver '%s': must be one of %v", c.DatabaseDriver, validDrivers))
	}
	if c.DatabaseDriver == "postgres" && c.DatabaseURL == "" {
		errors = append(errors, "DATABASE_URL is required when using the postgres driver")
	}
	if c.DatabaseDriver == "sqlite" && c.SQLitePath == "" {
		errors = append(errors, "SQLite database path cannot be empty when using the sqlite driver")
	}

	if c.JWTSecret == "" {
		errors = append(errors, "JWT_SECRET is required")
	}
	if c.JWTTTL < 1 {
		errors = append(errors, fmt.Sprintf("invalid JWT TTL %d: must be at least 1 hour", c.JWTTTL))
	}

	if c.RedisURL != "" && c.CacheTTL <= 0 {
		errors = append(errors, fmt.Sprintf("invalid cache TTL %v: must be positive", c.CacheTTL))
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if c.NotifyRecipient == "" {
		errors = append(errors, "NOTIFY_RECIPIENT cannot be empty")
	}

	validFormats := []string{"text", "json"}
	if !slices.Contains(validFormats, strings.ToLower(c.LogFormat)) {
		errors = append(errors, fmt.Sprintf("invalid log format '%s': must be one of %v", c.LogFormat, validFormats))
	}

	if c.RateLimitRPS <= 0 || c.RateLimitBurst < 1 {
		errors = append(errors, fmt.Sprintf("invalid rate limit %v/%d: rate and burst must be positive", c.RateLimitRPS, c.RateLimitBurst))
	}
	if c.RateLimitWriteRPS <= 0 || c.RateLimitWriteBurst < 1 {
		errors = append(errors, fmt.Sprintf("invalid write rate limit %v/%d: rate and burst must be positive", c.RateLimitWriteRPS, c.RateLimitWriteBurst))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
