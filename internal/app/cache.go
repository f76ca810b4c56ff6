package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"hotel_listings/internal/domain"
)

const hotelsKey = "hotels:all"

func hotelKey(slug string) string { return "hotel:" + slug }
func roomsKey(hotelSlug string) string { return "rooms:" + hotelSlug }

// redelAfter is how long after a write its keys are invalidated a second
// time. A read that loaded the old row before the write can store it after
// the first invalidation; the second one bounds how long it is served.
const redelAfter = 500 * time.Millisecond

// readCache wraps an optional domain.Cache. Cache failures are logged and
// otherwise ignored: the database stays the source of truth.
type readCache struct {
	c     domain.Cache
	ttl   time.Duration
	redel time.Duration // 0 disables the second invalidation
}

func newReadCache(c domain.Cache, ttl time.Duration) readCache {
	return readCache{c: c, ttl: ttl, redel: redelAfter}
}

func (rc readCache) get(ctx context.Context, key string, dst any) bool {
	if rc.c == nil {
		return false
	}
	ok, err := rc.c.Get(ctx, key, dst)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache get failed")
		return false
	}
	return ok
}

func (rc readCache) set(ctx context.Context, key string, v any) {
	if rc.c == nil {
		return
	}
	if err := rc.c.Set(ctx, key, v, int(rc.ttl.Seconds())); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache set failed")
	}
}

func (rc readCache) del(ctx context.Context, keys ...string) {
	if rc.c == nil {
		return
	}
	rc.delNow(ctx, keys)
	if rc.redel > 0 {
		later := context.WithoutCancel(ctx)
		time.AfterFunc(rc.redel, func() { rc.delNow(later, keys) })
	}
}

func (rc readCache) delNow(ctx context.Context, keys []string) {
	for _, k := range keys {
		if err := rc.c.Del(ctx, k); err != nil {
			log.Warn().Err(err).Str("key", k).Msg("cache invalidation failed")
		}
	}
}
