package cache

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/TobiSchelling/NewsCurator/internal/config"
)

// ErrMiss is returned by Get when the key is absent or expired.
var ErrMiss = errors.New("cache miss")

// Cache is a TTL byte store.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Close() error
}

// New opens the backend named by cfg.Cache.Backend.
func New(cfg *config.Config) (Cache, error) {
	ttl := cfg.CacheTTL()
	switch strings.ToLower(cfg.Cache.Backend) {
	case "", "memory":
		return NewMemory(ttl), nil
	case "sqlite":
		return OpenSQLite(cfg.GetCachePath())
	case "redis":
		env := cfg.Cache.RedisURLEnv
		if env == "" {
			env = "REDIS_URL"
		}
		url := os.Getenv(env)
		if url == "" {
			return nil, fmt.Errorf("redis cache: %s is not set", env)
		}
		return NewRedis(url)
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}
