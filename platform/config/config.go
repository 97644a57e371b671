// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
//
// Only the service shell is configurable. Provider base URLs, the per-call
// provider timeout and the classifier keyword lists are compiled in.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Cache backends understood by the lookup module.
const (
	CacheBackendNone   = "none"
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetRateLimitRPS() float64
	GetRateLimitBurst() int
}

// CacheConfig provides settings for the optional lookup cache.
type CacheConfig interface {
	GetCacheBackend() string
	GetCacheTTL() time.Duration
	GetCacheSize() int
	GetRedisURL() string
}

// LookupConfig provides settings for the lookup module.
type LookupConfig interface {
	CacheConfig
	GetLookupTimeout() time.Duration
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env            string
	HTTPAddr       string
	CORSAllowAll   bool
	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int
	LookupTimeout  time.Duration
	CacheBackend   string
	CacheTTL       time.Duration
	CacheSize      int
	RedisURL       string
}

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetRateLimitRPS() float64 { return c.RateLimitRPS }
func (c *Config) GetRateLimitBurst() int   { return c.RateLimitBurst }

// CacheConfig implementation
func (c *Config) GetCacheBackend() string    { return c.CacheBackend }
func (c *Config) GetCacheTTL() time.Duration { return c.CacheTTL }
func (c *Config) GetCacheSize() int          { return c.CacheSize }
func (c *Config) GetRedisURL() string        { return c.RedisURL }

// LookupConfig implementation
func (c *Config) GetLookupTimeout() time.Duration { return c.LookupTimeout }

// Load reads configuration from the environment (and .env when present).
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:            getEnv("APP_ENV", "development"),
		HTTPAddr:       getEnv("HTTP_ADDR", ":8080"),
		CORSAllowAll:   corsAllowAll,
		CORSOrigins:    corsOrigins,
		RateLimitRPS:   mustFloat64(getEnv("RATE_LIMIT_RPS", "2")),
		RateLimitBurst: mustInt(getEnv("RATE_LIMIT_BURST", "10")),
		LookupTimeout:  mustDuration(getEnv("LOOKUP_TIMEOUT", "90s")),
		CacheBackend:   strings.ToLower(strings.TrimSpace(getEnv("LOOKUP_CACHE_BACKEND", CacheBackendNone))),
		CacheTTL:       mustDuration(getEnv("LOOKUP_CACHE_TTL", "10m")),
		CacheSize:      mustInt(getEnv("LOOKUP_CACHE_SIZE", "512")),
		RedisURL:       getEnv("REDIS_URL", ""),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.CacheBackend {
	case CacheBackendNone, CacheBackendMemory:
	case CacheBackendRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required when LOOKUP_CACHE_BACKEND is redis")
		}
	default:
		return fmt.Errorf("unknown LOOKUP_CACHE_BACKEND %q", c.CacheBackend)
	}
	if c.CacheBackend != CacheBackendNone && c.CacheTTL <= 0 {
		return fmt.Errorf("LOOKUP_CACHE_TTL must be a positive duration")
	}
	if c.LookupTimeout <= 0 {
		return fmt.Errorf("LOOKUP_TIMEOUT must be a positive duration")
	}
	if !c.CORSAllowAll && len(c.CORSOrigins) == 0 {
		return fmt.Errorf("CORS_ORIGINS must list at least one origin unless CORS_ALLOW_ALL is true")
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	result, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0
	}
	return result
}

func mustFloat64(value string) float64 {
	result, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
