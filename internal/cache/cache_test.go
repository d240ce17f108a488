package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/TobiSchelling/NewsCurator/internal/config"
)

func openTestSQLite(t *testing.T) *SQLite {
	t.Helper()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("failed to open test cache: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// exercise runs the behavior every backend shares.
func exercise(t *testing.T, c Cache) {
	t.Helper()
	ctx := context.Background()

	if _, err := c.Get(ctx, "absent"); !errors.Is(err, ErrMiss) {
		t.Errorf("expected ErrMiss, got %v", err)
	}

	if err := c.Set(ctx, "k", []byte("v1"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := c.Get(ctx, "k")
	if err != nil || string(got) != "v1" {
		t.Errorf("Get = %q, %v", got, err)
	}

	if err := c.Set(ctx, "k", []byte("v2"), time.Minute); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	got, _ = c.Get(ctx, "k")
	if string(got) != "v2" {
		t.Errorf("expected overwrite, got %q", got)
	}
}

func TestMemory(t *testing.T) {
	m := NewMemory(time.Minute)
	defer m.Close()
	exercise(t, m)
}

func TestMemoryReturnsCopies(t *testing.T) {
	m := NewMemory(time.Minute)
	ctx := context.Background()
	value := []byte("abc")
	m.Set(ctx, "k", value, 0)
	value[0] = 'x'

	got, _ := m.Get(ctx, "k")
	got[1] = 'y'
	again, _ := m.Get(ctx, "k")
	if string(again) != "abc" {
		t.Errorf("expected stored value to be isolated, got %q", again)
	}
	if m.Len() != 1 {
		t.Errorf("expected 1 item, got %d", m.Len())
	}
}

func TestMemoryExpiry(t *testing.T) {
	m := NewMemory(time.Minute)
	ctx := context.Background()
	m.Set(ctx, "k", []byte("v"), time.Millisecond)
	time.Sleep(10 * time.Millisecond)
	if _, err := m.Get(ctx, "k"); !errors.Is(err, ErrMiss) {
		t.Errorf("expected expired entry to miss, got %v", err)
	}
}

func TestSQLite(t *testing.T) {
	exercise(t, openTestSQLite(t))
}

func TestSQLiteExpiryAndPurge(t *testing.T) {
	s := openTestSQLite(t)
	ctx := context.Background()
	now := time.Date(2026, 2, 6, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	s.Set(ctx, "short", []byte("a"), time.Minute)
	s.Set(ctx, "long", []byte("b"), time.Hour)
	s.Set(ctx, "forever", []byte("c"), 0)

	now = now.Add(2 * time.Minute)
	if _, err := s.Get(ctx, "short"); !errors.Is(err, ErrMiss) {
		t.Errorf("expected short entry to expire, got %v", err)
	}
	if _, err := s.Get(ctx, "long"); err != nil {
		t.Errorf("expected long entry to survive, got %v", err)
	}

	n, err := s.Purge(ctx)
	if err != nil {
		t.Fatalf("Purge: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 purged entry, got %d", n)
	}

	now = now.Add(48 * time.Hour)
	if _, err := s.Get(ctx, "forever"); err != nil {
		t.Errorf("expected zero-ttl entry never to expire, got %v", err)
	}
}

func TestSQLitePersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	ctx := context.Background()

	s1, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	s1.Set(ctx, "k", []byte("v"), time.Hour)
	s1.Close()

	s2, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer s2.Close()
	if got, err := s2.Get(ctx, "k"); err != nil || string(got) != "v" {
		t.Errorf("Get after reopen = %q, %v", got, err)
	}
}

func TestRedis(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	r, err := NewRedis("redis://" + addr + "/15")
	if err != nil {
		t.Fatalf("NewRedis: %v", err)
	}
	defer r.Close()
	if err := r.Ping(context.Background()); err != nil {
		t.Skipf("redis unreachable: %v", err)
	}
	exercise(t, r)
}

func TestNewRedisRejectsBadURL(t *testing.T) {
	if _, err := NewRedis("http://nope"); err == nil {
		t.Error("expected error for non-redis URL")
	}
}

func TestNewSelectsBackend(t *testing.T) {
	cfg := config.Default()

	c, err := New(cfg)
	if err != nil {
		t.Fatalf("New memory: %v", err)
	}
	if _, ok := c.(*Memory); !ok {
		t.Errorf("expected memory backend, got %T", c)
	}
	c.Close()

	cfg.Cache.Backend = "sqlite"
	cfg.Cache.Path = filepath.Join(t.TempDir(), "sub", "cache.db")
	c, err = New(cfg)
	if err != nil {
		t.Fatalf("New sqlite: %v", err)
	}
	if _, ok := c.(*SQLite); !ok {
		t.Errorf("expected sqlite backend, got %T", c)
	}
	c.Close()

	cfg.Cache.Backend = "redis"
	cfg.Cache.RedisURLEnv = "NEWSCURATOR_TEST_UNSET_REDIS_URL"
	if _, err := New(cfg); err == nil {
		t.Error("expected error when redis url env is unset")
	}

	cfg.Cache.Backend = "memcached"
	if _, err := New(cfg); err == nil {
		t.Error("expected error for unknown backend")
	}
}
