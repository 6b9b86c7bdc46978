// Package config loads runtime settings from the environment, after an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// HTTP server
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	// Rate limiting, per client IP
	RateLimit  int
	RateWindow time.Duration

	// Cache; empty RedisAddr means in-memory
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	// Bounds the in-memory cache; unused with Redis
	CacheMaxEntries int

	LogLevel  string
	LogFormat string
}

// Load reads .env (if present) and then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from environment variables only. A value that
// does not parse is an error naming its variable.
func FromEnv() (*Config, error) {
	var p envParser
	cfg := &Config{
		Addr:            getEnv("SORTER_ADDR", ":8080"),
		ReadTimeout:     p.durationVar("SORTER_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:    p.durationVar("SORTER_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:     p.durationVar("SORTER_IDLE_TIMEOUT", 60*time.Second),
		ShutdownTimeout: p.durationVar("SORTER_SHUTDOWN_TIMEOUT", 10*time.Second),
		RateLimit:       p.intVar("SORTER_RATE_LIMIT", 30),
		RateWindow:      p.durationVar("SORTER_RATE_WINDOW", time.Minute),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		RedisDB:         p.intVar("REDIS_DB", 0),
		CacheTTL:        p.durationVar("SORTER_CACHE_TTL", 10*time.Minute),
		CacheMaxEntries: p.intVar("SORTER_CACHE_MAX_ENTRIES", 10000),
		LogLevel:        strings.ToLower(getEnv("SORTER_LOG_LEVEL", "info")),
		LogFormat:       strings.ToLower(getEnv("SORTER_LOG_FORMAT", "text")),
	}
	if err := errors.Join(p.errs...); err != nil {
		return nil, err
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("SORTER_ADDR must not be empty")
	}
	if c.RateLimit <= 0 {
		return fmt.Errorf("SORTER_RATE_LIMIT must be positive, got %d", c.RateLimit)
	}
	if c.RateWindow <= 0 {
		return fmt.Errorf("SORTER_RATE_WINDOW must be positive, got %v", c.RateWindow)
	}
	if c.RedisDB < 0 {
		return fmt.Errorf("REDIS_DB must be >= 0, got %d", c.RedisDB)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("SORTER_CACHE_TTL must be >= 0, got %v", c.CacheTTL)
	}
	if c.CacheMaxEntries <= 0 {
		return fmt.Errorf("SORTER_CACHE_MAX_ENTRIES must be positive, got %d", c.CacheMaxEntries)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("SORTER_LOG_LEVEL must be debug, info, warn or error, got %q", c.LogLevel)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("SORTER_LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}
	return nil
}

// UseRedis reports whether classifications are cached in Redis.
func (c *Config) UseRedis() bool {
	return c.RedisAddr != ""
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

// envParser reads typed variables and keeps every parse failure.
type envParser struct {
	errs []error
}

func (p *envParser) intVar(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s must be an integer, got %q", key, v))
		return defaultVal
	}
	return i
}

func (p *envParser) durationVar(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s must be a duration like 30s or 1m, got %q", key, v))
		return defaultVal
	}
	return d
}
