package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configurations
// All sensitive values are loaded from .env
type Config struct {
	// Server Configuration
	Environment string
	ServerPort  string

	// DB configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis / cache configuration
	Redis RedisConfig

	// Application settings
	RateLimitPerMinute int // Requests per IP per minute
	SessionLifetime    time.Duration
	AdminToken         string // Bearer token for /admin endpoints, empty disables them
	MetricsEnabled     bool
	AllowedOrigins     []string // CORS origins honoured outside development
	RequestTimeout     time.Duration
}

// RedisConfig carries the construction parameters of the cache client
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int

	KeyPrefix            string        // Namespace prepended to every logical key
	MaxRetriesPerRequest int           // Retries before a command gives up
	RetryDelay           time.Duration // Backoff between retries and reconnect attempts
	DialTimeout          time.Duration
	EnableReadyCheck     bool // PING every new connection before marking the cache ready
	LazyConnect          bool // Defer the first dial until the first operation
	Codec                string
}

// Addr returns host:port for the Redis client
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// DefaultRedisConfig returns the cache defaults, everything except host/port
// has a usable value
func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Host:                 "localhost",
		Port:                 6379,
		KeyPrefix:            "booking:",
		MaxRetriesPerRequest: 3,
		RetryDelay:           100 * time.Millisecond,
		DialTimeout:          5 * time.Second,
		EnableReadyCheck:     true,
		LazyConnect:          true,
		Codec:                "json",
	}
}

// LoadConfig loads configuration from environment variables
// Returns error if required environment variables are missing
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		ServerPort:  getEnv("SERVER_PORT", "8080"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "booking"),
		DBSSLMode:  getEnv("DB_SSL_MODE", "disable"),

		Redis: LoadRedisConfig(),

		RateLimitPerMinute: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 120),
		SessionLifetime:    getEnvAsDuration("SESSION_LIFETIME", 24*time.Hour),
		AdminToken:         getEnv("ADMIN_TOKEN", ""),
		MetricsEnabled:     getEnvAsBool("METRICS_ENABLED", true),
		AllowedOrigins:     getEnvAsList("CORS_ALLOWED_ORIGINS"),
		RequestTimeout:     getEnvAsDuration("REQUEST_TIMEOUT", 10*time.Second),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadRedisConfig reads only the cache section; cachectl uses it without
// needing database settings
func LoadRedisConfig() RedisConfig {
	def := DefaultRedisConfig()
	return RedisConfig{
		Host:                 getEnv("REDIS_HOST", def.Host),
		Port:                 getEnvAsInt("REDIS_PORT", def.Port),
		Password:             getEnv("REDIS_PASSWORD", ""),
		DB:                   getEnvAsInt("REDIS_DB", 0),
		KeyPrefix:            getEnv("CACHE_KEY_PREFIX", def.KeyPrefix),
		MaxRetriesPerRequest: getEnvAsInt("REDIS_MAX_RETRIES", def.MaxRetriesPerRequest),
		RetryDelay:           getEnvAsDuration("REDIS_RETRY_DELAY", def.RetryDelay),
		DialTimeout:          getEnvAsDuration("REDIS_DIAL_TIMEOUT", def.DialTimeout),
		EnableReadyCheck:     getEnvAsBool("REDIS_READY_CHECK", def.EnableReadyCheck),
		LazyConnect:          getEnvAsBool("REDIS_LAZY_CONNECT", def.LazyConnect),
		Codec:                getEnv("CACHE_CODEC", def.Codec),
	}
}

// Validate checks if all required configuration is present and valid
func (c *Config) Validate() error {
	if c.Environment == "production" && c.DBPassword == "" {
		return fmt.Errorf("DB_PASSWORD is required in production")
	}

	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive, got %d", c.RateLimitPerMinute)
	}

	if c.SessionLifetime <= 0 {
		return fmt.Errorf("SESSION_LIFETIME must be positive, got %s", c.SessionLifetime)
	}

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive, got %s", c.RequestTimeout)
	}

	return c.Redis.Validate()
}

// Validate checks the cache section
func (r RedisConfig) Validate() error {
	if r.Host == "" {
		return fmt.Errorf("REDIS_HOST is required")
	}
	if r.Port <= 0 || r.Port > 65535 {
		return fmt.Errorf("REDIS_PORT must be between 1 and 65535, got %d", r.Port)
	}
	if r.MaxRetriesPerRequest < 0 {
		return fmt.Errorf("REDIS_MAX_RETRIES must not be negative, got %d", r.MaxRetriesPerRequest)
	}
	if r.RetryDelay <= 0 {
		return fmt.Errorf("REDIS_RETRY_DELAY must be positive, got %s", r.RetryDelay)
	}
	switch r.Codec {
	case "json", "msgpack":
	default:
		return fmt.Errorf("CACHE_CODEC must be json or msgpack, got %q", r.Codec)
	}
	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// DSN builds the PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode,
	)
}

// Helper functions for reading environment variables

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt reads an environment variable as integer or returns default
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

// getEnvAsBool reads an environment variable as boolean or returns default
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

// getEnvAsDuration accepts Go durations ("250ms") or bare milliseconds ("250")
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	if d, err := time.ParseDuration(valueStr); err == nil {
		return d
	}
	if ms, err := strconv.Atoi(valueStr); err == nil {
		return time.Duration(ms) * time.Millisecond
	}

	return defaultValue
}

// getEnvAsList splits a comma separated variable, dropping empty entries
func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
