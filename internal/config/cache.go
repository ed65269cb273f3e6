package config

import "time"

// CacheConfig tunes the Redis-backed view cache.
type CacheConfig struct {
	// TTL bounds how long a cached view may live even if nothing revalidates it.
	TTL time.Duration `koanf:"ttl" validate:"min=1s"`

	// KeyPrefix namespaces view keys so several deployments can share a Redis.
	KeyPrefix string `koanf:"key_prefix"`
}

// DefaultCacheConfig is used when no cache block is configured.
func DefaultCacheConfig() *CacheConfig {
	return &CacheConfig{
		TTL:       5 * time.Minute,
		KeyPrefix: "invoicing:view:",
	}
}
