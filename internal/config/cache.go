package config

import "time"

// CacheConfig controls the Redis response cache in front of the read-only
// lookup endpoints (contacts, users, countries, divisions).  Reference
// rows change rarely, so staleness is bounded by TTL alone.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
	Prefix  string
}

func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled: envBool("CACHE_ENABLED", true),
		TTL:     envDur("CACHE_TTL", time.Minute),
		Prefix:  envStr("CACHE_PREFIX", "lookup"),
	}
}
