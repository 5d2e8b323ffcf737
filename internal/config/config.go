package config

import (
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Config holds all configuration for the application.
type Config struct {
	AppEnv          string
	HTTPPort        int
	RedisAddr       string
	CacheKeyPrefix  string
	CacheTTLMinutes int
	CORSOrigins     []string
	MetricsEnabled  bool
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() *Config {
	portStr := getEnv("HTTP_PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		port = 8080
	}

	ttlStr := getEnv("CACHE_TTL_MINUTES", "10")
	ttl, err := strconv.Atoi(ttlStr)
	if err != nil || ttl <= 0 {
		ttl = 10
	}

	metricsStr := getEnv("METRICS_ENABLED", "true")
	metricsEnabled, err := strconv.ParseBool(metricsStr)
	if err != nil {
		metricsEnabled = true
	}

	var origins []string
	for _, o := range strings.Split(getEnv("CORS_ORIGINS", ""), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	return &Config{
		AppEnv:          getEnv("APP_ENV", "development"),
		HTTPPort:        port,
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		CacheKeyPrefix:  getEnv("CACHE_KEY_PREFIX", "fitserver:"),
		CacheTTLMinutes: ttl,
		CORSOrigins:     origins,
		MetricsEnabled:  metricsEnabled,
	}
}

// NewLogger creates a new Zap logger based on the config.
func NewLogger(cfg *Config) (*zap.Logger, error) {
	if cfg.AppEnv == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
