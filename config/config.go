package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	DBPath    string // empty keeps debts in memory only
	RedisAddr string // empty disables the Redis projection cache
	CacheTTL  time.Duration
	LogLevel  string
	RateLimit int
	RateBurst time.Duration
}

// NewConfig loads configuration from the environment, reading a .env file
// first when one exists.
func NewConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:      getEnv("PORT", "8080"),
		DBPath:    getEnv("DB_PATH", ""),
		RedisAddr: getEnv("REDIS_ADDR", ""),
		LogLevel:  getEnv("LOG_LEVEL", "INFO"),
	}

	ttl, err := time.ParseDuration(getEnv("CACHE_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL: %w", err)
	}
	cfg.CacheTTL = ttl

	limit, err := strconv.Atoi(getEnv("RATE_LIMIT", "30"))
	if err != nil || limit <= 0 {
		return nil, fmt.Errorf("invalid RATE_LIMIT: %q", getEnv("RATE_LIMIT", "30"))
	}
	cfg.RateLimit = limit

	burst, err := time.ParseDuration(getEnv("RATE_WINDOW", "1m"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_WINDOW: %w", err)
	}
	cfg.RateBurst = burst

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
