package config

import (
    "time"
)

// RateLimitConfig controls the Redis token-bucket limiter applied to the API.
type RateLimitConfig struct {
    Enabled        bool
    Capacity       int
    RefillTokens   int
    RefillInterval time.Duration
    TTL            time.Duration
    KeyStrategy    string
    Prefix         string
    Debug          bool
}

// LoadRateLimitConfig reads environment variables to build a RateLimitConfig
// and clamps the values into a usable range.
func LoadRateLimitConfig() RateLimitConfig {
    def := RateLimitConfig{
        Enabled:        getenv("RATE_LIMIT_ENABLED", "true") == "true",
        Capacity:       atoiDef(getenv("RATE_LIMIT_CAPACITY", ""), 60),
        RefillTokens:   atoiDef(getenv("RATE_LIMIT_REFILL_TOKENS", ""), 1),
        RefillInterval: durDef(getenv("RATE_LIMIT_REFILL_INTERVAL", ""), time.Second),
        TTL:            durDef(getenv("RATE_LIMIT_TTL", ""), 10*time.Minute),
        // The limiter sits ahead of the auth guard, so the default key
        // cannot depend on the authenticated user.
        KeyStrategy: getenv("RATE_LIMIT_KEY_STRATEGY", "ip_route"),
        Prefix:      getenv("RATE_LIMIT_PREFIX", "rl"),
        Debug:       getenv("RATE_LIMIT_DEBUG", "false") == "true",
    }
    if def.Capacity < 1 {
        def.Capacity = 1
    }
    if def.RefillTokens < 1 {
        def.RefillTokens = 1
    }
    if def.RefillInterval <= 0 {
        def.RefillInterval = time.Second
    }
    // Bucket state must outlive a few refill cycles or limits reset early.
    if minTTL := 5 * def.RefillInterval; def.TTL < minTTL {
        def.TTL = minTTL
    }
    return def
}

func atoiDef(s string, d int) int {
    if s == "" {
        return d
    }
    if n := atoi(s); n != 0 {
        return n
    }
    return d
}

func durDef(s string, d time.Duration) time.Duration {
    if s == "" {
        return d
    }
    if dur, err := time.ParseDuration(s); err == nil {
        return dur
    }
    return d
}
