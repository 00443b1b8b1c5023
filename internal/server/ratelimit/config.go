package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Tier is a rate limit rule for one method and path. A Path ending in "/" matches by prefix.
type Tier struct {
	Method string
	Path   string
	Limit  int           // requests per Window; 0 means unlimited
	Window time.Duration
	Burst  int // bucket capacity, defaults to Limit
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	IdleTTL         time.Duration
	Allow           map[string]bool
	Deny            map[string]bool
	Tiers           []Tier
}

// LoadConfig reads RATE_LIMIT_* environment variables.
func LoadConfig() *Config {
	if !envBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	uploadLimit := envInt("RATE_LIMIT_UPLOAD_LIMIT", 10)
	uploadWindow := envDuration("RATE_LIMIT_UPLOAD_WINDOW", time.Hour)

	return &Config{
		Enabled:         true,
		DefaultLimit:    envInt("RATE_LIMIT_DEFAULT_LIMIT", 600),
		DefaultWindow:   envDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: envDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		IdleTTL:         time.Hour,
		Allow:           ipSet(os.Getenv("RATE_LIMIT_WHITELIST")),
		Deny:            ipSet(os.Getenv("RATE_LIMIT_BLACKLIST")),
		Tiers:           DefaultTiers(uploadLimit, uploadWindow),
	}
}

// DefaultTiers returns the built-in rules. Uploads reach the analysis service and get the
// strictest limit; health checks are never limited.
func DefaultTiers(uploadLimit int, uploadWindow time.Duration) []Tier {
	return []Tier{
		{Method: "POST", Path: "/upload", Limit: uploadLimit, Window: uploadWindow, Burst: 3},
		{Method: "POST", Path: "/start", Limit: 120, Window: time.Minute, Burst: 20},
		{Method: "POST", Path: "/reset", Limit: 120, Window: time.Minute, Burst: 20},
		{Method: "GET", Path: "/health", Limit: 0},
	}
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

// ipSet parses a comma-separated list of addresses.
func ipSet(list string) map[string]bool {
	set := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			set[ip] = true
		}
	}
	return set
}
