package localcache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel_listings/internal/adapters/localcache"
	"hotel_listings/internal/domain"
)

func TestCache_IsolatedCopies(t *testing.T) {
	c := localcache.New(time.Minute)
	ctx := context.Background()

	in := []domain.Hotel{{Slug: "a1", Images: []string{"/uploads/a"}}}
	require.NoError(t, c.Set(ctx, "hotels:all", in, 60))
	in[0].Images[0] = "mutated"

	var out []domain.Hotel
	ok, err := c.Get(ctx, "hotels:all", &out)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "/uploads/a", out[0].Images[0])

	require.NoError(t, c.Del(ctx, "hotels:all"))
	ok, _ = c.Get(ctx, "hotels:all", &out)
	assert.False(t, ok)
}

func TestCache_Expiry(t *testing.T) {
	c := localcache.New(time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "hotel:a1", domain.Hotel{Slug: "a1"}, 1))
	time.Sleep(1100 * time.Millisecond)

	var out domain.Hotel
	ok, err := c.Get(ctx, "hotel:a1", &out)
	require.NoError(t, err)
	assert.False(t, ok)
}
