package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the regional API server
type Config struct {
	// Server configuration
	HTTPPort int    `env:"TLREGION_HTTP_PORT" envDefault:"8000"`
	GRPCPort int    `env:"TLREGION_GRPC_PORT" envDefault:"0"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Data and static files
	DataDir   string `env:"TLREGION_DATA_DIR" envDefault:"data"`
	StaticDir string `env:"TLREGION_STATIC_DIR" envDefault:"."`

	// Responses
	StrictStatus bool   `env:"TLREGION_STRICT_STATUS" envDefault:"false"`
	DefaultLang  string `env:"TLREGION_DEFAULT_LANG" envDefault:"en"`

	// Search cache
	Cache CacheConfig

	// Redis configuration
	Redis RedisConfig

	// Dataset monitor
	Monitor MonitorConfig

	// Timeouts
	Timeouts TimeoutConfig
}

// CacheConfig selects the search result cache backend
type CacheConfig struct {
	Backend         string        `env:"CACHE_BACKEND" envDefault:"none"`
	TTL             time.Duration `env:"CACHE_TTL" envDefault:"5m"`
	CleanupInterval time.Duration `env:"CACHE_CLEANUP_INTERVAL" envDefault:"10m"`
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password string `env:"REDIS_PASS"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`

	// Connection pool settings
	PoolSize     int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConns int           `env:"REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	MaxRetries   int           `env:"REDIS_MAX_RETRIES" envDefault:"3"`
	DialTimeout  time.Duration `env:"REDIS_DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout  time.Duration `env:"REDIS_READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"REDIS_WRITE_TIMEOUT" envDefault:"3s"`
}

// MonitorConfig holds dataset monitor configuration
type MonitorConfig struct {
	Interval time.Duration `env:"MONITOR_INTERVAL" envDefault:"30s"`
}

// TimeoutConfig holds various timeout configurations
type TimeoutConfig struct {
	ReadTimeout     time.Duration `env:"TIMEOUT_READ" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"TIMEOUT_WRITE" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"TIMEOUT_SHUTDOWN" envDefault:"15s"`
}

// Cache backends
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// Load reads configuration from a .env file (if any) and environment variables
func Load() (*Config, error) {
	LoadDotEnvUp(6)

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// LoadDotEnvUp searches for ".env" in the working directory and its parents
// and loads the first match. Variables already set in the environment win.
func LoadDotEnvUp(maxDepth int) {
	dir, err := os.Getwd()
	if err != nil {
		_ = godotenv.Load()
		return
	}

	for i := 0; i <= maxDepth; i++ {
		p := filepath.Join(dir, ".env")
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			return
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Validate server ports
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.GRPCPort < 0 || c.GRPCPort > 65535 {
		return fmt.Errorf("invalid gRPC port: %d", c.GRPCPort)
	}
	if c.GRPCPort != 0 && c.GRPCPort == c.HTTPPort {
		return fmt.Errorf("gRPC port must differ from HTTP port: %d", c.GRPCPort)
	}

	if c.DataDir == "" {
		return fmt.Errorf("data directory is required")
	}
	if c.StaticDir == "" {
		return fmt.Errorf("static directory is required")
	}

	switch c.Cache.Backend {
	case CacheNone, CacheMemory:
	case CacheRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("redis address is required for redis cache")
		}
	default:
		return fmt.Errorf("unsupported cache backend: %s (must be none, memory, or redis)", c.Cache.Backend)
	}
	if c.Cache.Backend != CacheNone && c.Cache.TTL <= 0 {
		return fmt.Errorf("cache TTL must be positive")
	}

	if c.Monitor.Interval <= 0 {
		return fmt.Errorf("monitor interval must be positive")
	}

	// Validate log level
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// GetHTTPAddr returns the HTTP server address
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// GetGRPCAddr returns the gRPC server address
func (c *Config) GetGRPCAddr() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}

// GRPCEnabled reports whether the gRPC health listener should start
func (c *Config) GRPCEnabled() bool {
	return c.GRPCPort != 0
}
