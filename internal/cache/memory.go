package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Memory is an in-process cache. Entries vanish with the process.
type Memory struct {
	c *gocache.Cache
}

// NewMemory creates a memory cache whose default expiration is ttl.
func NewMemory(ttl time.Duration) *Memory {
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	return &Memory{c: gocache.New(ttl, 10*time.Minute)}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := m.c.Get(key)
	if !ok {
		return nil, ErrMiss
	}
	data, ok := v.([]byte)
	if !ok {
		return nil, ErrMiss
	}
	return append([]byte(nil), data...), nil
}

// Set stores value. A non-positive ttl uses the default expiration.
func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	m.c.Set(key, append([]byte(nil), value...), ttl)
	return nil
}

// Len is the number of stored items, including expired ones not yet purged.
func (m *Memory) Len() int {
	return m.c.ItemCount()
}

func (m *Memory) Close() error {
	m.c.Flush()
	return nil
}
