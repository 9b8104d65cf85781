package config

import "time"

// RateLimitConfig defines settings for the fixed-window rate limiter.
// Limit is the number of requests allowed per Window for a single
// client key (IP + route).  When Enabled is false or Redis is not
// available the limiter becomes a no-op.
type RateLimitConfig struct {
    Enabled bool
    Limit   int
    Window  time.Duration
    Prefix  string
}

// LoadRateLimitConfig reads environment variables to build a
// RateLimitConfig, falling back to defaults generous enough for a
// browsing UI while still stopping scripted form spam.
func LoadRateLimitConfig() RateLimitConfig {
    cfg := RateLimitConfig{
        Enabled: getenv("RATE_LIMIT_ENABLED", "true") == "true",
        Limit:   atoi(getenv("RATE_LIMIT_LIMIT", "60")),
        Window:  parseDur(getenv("RATE_LIMIT_WINDOW", "1m")),
        Prefix:  getenv("RATE_LIMIT_PREFIX", "rl"),
    }
    if cfg.Limit < 1 {
        cfg.Limit = 1
    }
    // The limiter buckets time into whole seconds, so the window must be
    // at least one second.
    if cfg.Window < time.Second {
        cfg.Window = time.Minute
    }
    return cfg
}
