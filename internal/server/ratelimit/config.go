package ratelimit

import (
	"strings"
	"time"
)

// Rule is the limit for requests matching Method and Pattern. Pattern
// segments of "*" match any single path segment; a pattern ending in "/"
// matches by prefix.
type Rule struct {
	Pattern string
	Method  string
	Limit   int
	Window  time.Duration
	Burst   int // defaults to Limit
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	IdleTimeout     time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	Rules           []Rule
	Now             func() time.Time
}

const (
	defaultPerMinute      = 120
	defaultApplyPerHour   = 30
	defaultCleanup        = 5 * time.Minute
	defaultIdleTimeout    = time.Hour
	defaultWritePerMinute = 30
)

// DefaultConfig returns an enabled config with the default limits.
func DefaultConfig() *Config {
	return NewConfig(true, defaultPerMinute, defaultApplyPerHour)
}

// NewConfig builds a config allowing perMinute requests per client on any
// route and applyPerHour application submissions per client.
func NewConfig(enabled bool, perMinute, applyPerHour int) *Config {
	return &Config{
		Enabled:         enabled,
		DefaultLimit:    perMinute,
		DefaultWindow:   time.Minute,
		CleanupInterval: defaultCleanup,
		IdleTimeout:     defaultIdleTimeout,
		Whitelist:       make(map[string]bool),
		Blacklist:       make(map[string]bool),
		Rules:           DefaultRules(applyPerHour),
	}
}

// DefaultRules returns the per-endpoint rules.
func DefaultRules(applyPerHour int) []Rule {
	burst := applyPerHour / 6
	if burst < 1 {
		burst = 1
	}
	return []Rule{
		// health is never limited
		{Pattern: "/health", Method: "GET"},

		{Pattern: "/vacancies/*/applications", Method: "POST", Limit: applyPerHour, Window: time.Hour, Burst: burst},

		{Pattern: "/vacancies", Method: "POST", Limit: defaultWritePerMinute, Window: time.Minute, Burst: 5},
		{Pattern: "/resumes", Method: "POST", Limit: defaultWritePerMinute, Window: time.Minute, Burst: 5},
		{Pattern: "/skills", Method: "POST", Limit: defaultWritePerMinute, Window: time.Minute, Burst: 10},
		{Pattern: "/users/", Method: "POST", Limit: defaultWritePerMinute, Window: time.Minute, Burst: 10},
		{Pattern: "/users/", Method: "PUT", Limit: defaultWritePerMinute, Window: time.Minute, Burst: 10},
		{Pattern: "/users/", Method: "DELETE", Limit: defaultWritePerMinute, Window: time.Minute, Burst: 10},
		{Pattern: "/applications/", Method: "PATCH", Limit: defaultWritePerMinute, Window: time.Minute, Burst: 10},
	}
}

// ParseIPList parses a comma-separated list of addresses into a set.
func ParseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
