// Package localcache is an in-process domain.Cache for single-instance
// deployments.
package localcache

import (
	"context"
	"encoding/json"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"hotel_listings/internal/adapters/observability"
)

type Cache struct{ c *gocache.Cache }

func New(defaultTTL time.Duration) *Cache {
	return &Cache{c: gocache.New(defaultTTL, 2*defaultTTL)}
}

// Values are stored JSON-encoded so callers never share memory with the cache.
func (l *Cache) Get(_ context.Context, key string, dst any) (bool, error) {
	v, ok := l.c.Get(key)
	if !ok {
		observability.ObserveCache("memory", "miss")
		return false, nil
	}
	observability.ObserveCache("memory", "hit")
	return true, json.Unmarshal(v.([]byte), dst)
}

func (l *Cache) Set(_ context.Context, key string, v any, ttlSec int) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	observability.ObserveCache("memory", "set")
	l.c.Set(key, b, time.Duration(ttlSec)*time.Second)
	return nil
}

func (l *Cache) Del(_ context.Context, key string) error {
	observability.ObserveCache("memory", "del")
	l.c.Delete(key)
	return nil
}
