// Package config provides configuration loading and validation for the job board.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// ReferenceDateLayout is the accepted format for reference_date.
const ReferenceDateLayout = "2006-01-02"

// Config represents the service configuration. It can be loaded from a JSON
// file and overlaid with environment variables.
type Config struct {
	// Server
	Port string `json:"port,omitempty"`

	// Storage
	StoreBackend  string `json:"store_backend,omitempty"` // memory, postgres or redis
	DatabaseURL   string `json:"database_url,omitempty"`
	RedisAddr     string `json:"redis_addr,omitempty"`
	RedisPassword string `json:"redis_password,omitempty"`
	RedisDB       int    `json:"redis_db,omitempty"`

	// Events
	NATSURL string `json:"nats_url,omitempty"` // empty disables publishing

	// Logging
	LogLevel  string `json:"log_level,omitempty"`
	LogFormat string `json:"log_format,omitempty"`

	// Behavior
	ReferenceDate string `json:"reference_date,omitempty"` // fixed "now" for date buckets, YYYY-MM-DD
	AutoAddSkills bool   `json:"auto_add_skills"`

	// Limits
	RateLimitEnabled   bool `json:"rate_limit_enabled"`
	RateLimitPerMinute int  `json:"rate_limit_per_minute,omitempty"`
	ApplyLimitPerHour  int  `json:"apply_limit_per_hour,omitempty"`
}

// Default returns the configuration used when nothing else is provided.
func Default() Config {
	return Config{
		Port:               "8080",
		StoreBackend:       "memory",
		RedisAddr:          "localhost:6379",
		LogLevel:           "info",
		LogFormat:          "json",
		AutoAddSkills:      true,
		RateLimitEnabled:   true,
		RateLimitPerMinute: 120,
		ApplyLimitPerHour:  30,
	}
}

// LoadConfig loads configuration from a JSON file. Keys absent from the file
// keep their Default values.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv overlays environment variables on top of c. Malformed numeric or
// boolean values are ignored.
func (c *Config) FromEnv() *Config {
	c.Port = getEnvString("PORT", c.Port)
	c.StoreBackend = getEnvString("STORE_BACKEND", c.StoreBackend)
	c.DatabaseURL = getEnvString("DATABASE_URL", c.DatabaseURL)
	c.RedisAddr = getEnvString("REDIS_ADDR", c.RedisAddr)
	c.RedisPassword = getEnvString("REDIS_PASSWORD", c.RedisPassword)
	c.RedisDB = getEnvInt("REDIS_DB", c.RedisDB)
	c.NATSURL = getEnvString("NATS_URL", c.NATSURL)
	c.LogLevel = getEnvString("LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnvString("LOG_FORMAT", c.LogFormat)
	c.ReferenceDate = getEnvString("REFERENCE_DATE", c.ReferenceDate)
	c.AutoAddSkills = getEnvBool("AUTO_ADD_SKILLS", c.AutoAddSkills)
	c.RateLimitEnabled = getEnvBool("RATE_LIMIT_ENABLED", c.RateLimitEnabled)
	c.RateLimitPerMinute = getEnvInt("RATE_LIMIT_PER_MINUTE", c.RateLimitPerMinute)
	c.ApplyLimitPerHour = getEnvInt("APPLY_LIMIT_PER_HOUR", c.ApplyLimitPerHour)
	return c
}

// Load reads the optional JSON file at path and then applies the environment.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = *loaded
	}
	cfg.FromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case "", "memory":
	case "postgres":
		if c.DatabaseURL == "" {
			return fmt.Errorf("config error: 'database_url' is required for the postgres backend")
		}
	case "redis":
		if c.RedisAddr == "" {
			return fmt.Errorf("config error: 'redis_addr' is required for the redis backend")
		}
	default:
		return fmt.Errorf("config error: unknown 'store_backend' %q", c.StoreBackend)
	}

	if c.ReferenceDate != "" {
		if _, err := time.Parse(ReferenceDateLayout, c.ReferenceDate); err != nil {
			return fmt.Errorf("config error: 'reference_date' must be YYYY-MM-DD: %w", err)
		}
	}

	if c.RedisDB < 0 {
		return fmt.Errorf("config error: 'redis_db' must be non-negative")
	}
	if c.RateLimitPerMinute < 0 {
		return fmt.Errorf("config error: 'rate_limit_per_minute' must be non-negative")
	}
	if c.ApplyLimitPerHour < 0 {
		return fmt.Errorf("config error: 'apply_limit_per_hour' must be non-negative")
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty string and zero numeric
// fields filled from defaults. Booleans are not merged since unset and false
// are indistinguishable.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == "" {
		result.Port = defaults.Port
	}
	if result.StoreBackend == "" {
		result.StoreBackend = defaults.StoreBackend
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.RedisAddr == "" {
		result.RedisAddr = defaults.RedisAddr
	}
	if result.RedisPassword == "" {
		result.RedisPassword = defaults.RedisPassword
	}
	if result.NATSURL == "" {
		result.NATSURL = defaults.NATSURL
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}
	if result.ReferenceDate == "" {
		result.ReferenceDate = defaults.ReferenceDate
	}

	if result.RedisDB == 0 {
		result.RedisDB = defaults.RedisDB
	}
	if result.RateLimitPerMinute == 0 {
		result.RateLimitPerMinute = defaults.RateLimitPerMinute
	}
	if result.ApplyLimitPerHour == 0 {
		result.ApplyLimitPerHour = defaults.ApplyLimitPerHour
	}

	return result
}

// Now returns a clock honoring ReferenceDate. Without one it is time.Now.
func (c *Config) Now() func() time.Time {
	if c.ReferenceDate == "" {
		return time.Now
	}
	ref, err := time.Parse(ReferenceDateLayout, c.ReferenceDate)
	if err != nil {
		return time.Now
	}
	return func() time.Time { return ref }
}

func getEnvString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
