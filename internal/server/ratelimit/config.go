package ratelimit

import (
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// Settings is the environment-facing form of Config. Field tags are read by
// caarlos0/env with the RATE_LIMIT_ prefix.
type Settings struct {
	Enabled         bool          `env:"ENABLED" envDefault:"true"`
	DefaultLimit    int           `env:"DEFAULT_LIMIT" envDefault:"1000"`
	DefaultWindow   time.Duration `env:"DEFAULT_WINDOW" envDefault:"1m"`
	ScoreLimit      int           `env:"SCORE_LIMIT" envDefault:"60"`
	ScoreWindow     time.Duration `env:"SCORE_WINDOW" envDefault:"1m"`
	ScoreBurst      int           `env:"SCORE_BURST" envDefault:"10"`
	CleanupInterval time.Duration `env:"CLEANUP_INTERVAL" envDefault:"5m"`
	Whitelist       []string      `env:"WHITELIST" envSeparator:","`
	Blacklist       []string      `env:"BLACKLIST" envSeparator:","`
}

// NewConfig builds a limiter Config from settings.
func NewConfig(s Settings) *Config {
	if !s.Enabled {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    s.DefaultLimit,
		DefaultWindow:   s.DefaultWindow,
		CleanupInterval: s.CleanupInterval,
		Whitelist:       ipSet(s.Whitelist),
		Blacklist:       ipSet(s.Blacklist),
		EndpointConfigs: DefaultEndpointConfigs(s.ScoreLimit, s.ScoreWindow, s.ScoreBurst),
	}
}

// DefaultEndpointConfigs returns the endpoint-specific limits. Scoring calls
// out to grammar, sentiment and embedding services, so it gets the strictest
// budget; reads fall through to the default limit.
func DefaultEndpointConfigs(scoreLimit int, scoreWindow time.Duration, scoreBurst int) []EndpointConfig {
	return []EndpointConfig{
		{Path: "/score", Method: "POST", Limit: scoreLimit, Window: scoreWindow, Burst: scoreBurst},
		{Path: "/api/score", Method: "POST", Limit: scoreLimit, Window: scoreWindow, Burst: scoreBurst},
	}
}

// ipSet turns a list of addresses into a lookup set, skipping blanks.
func ipSet(list []string) map[string]bool {
	result := make(map[string]bool, len(list))
	for _, ip := range list {
		ip = strings.TrimSpace(ip)
		if ip != "" {
			result[ip] = true
		}
	}
	return result
}
