package main

import (
	"os"
	"strings"

	"go.uber.org/zap"

	"go-variant-cache/internal/config"
)

// GetRedisURL returns the Redis URL with the following priority:
// 1. REDIS_URL environment variable
// 2. VARIANT_CACHE_REDIS_URL_FILE file content
// 3. Configured l2.url value
// 4. Default value
func GetRedisURL(cfg *config.Config, logger *zap.Logger) string {
	// Priority 1: Environment variable
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		logger.Debug("Using Redis URL from environment variable")
		return redisURL
	}

	// Priority 2: Configurable connection file path
	connectionFile := os.Getenv("VARIANT_CACHE_REDIS_URL_FILE")
	if connectionFile == "" {
		connectionFile = "/app/.redis-url"
	}

	if content, err := os.ReadFile(connectionFile); err == nil {
		redisURL := strings.TrimSpace(string(content))
		if len(redisURL) > 0 {
			logger.Debug("Using Redis URL from connection file", zap.String("file", connectionFile))
			return redisURL
		}
	} else {
		logger.Debug("Redis connection file not found or empty", zap.String("file", connectionFile))
	}

	// Priority 3: Configured value
	if cfg.L2.URL != "" {
		return cfg.L2.URL
	}

	// Priority 4: Default
	logger.Debug("Using default Redis URL")
	return "redis://redis:6379"
}
