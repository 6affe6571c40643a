package cache_test

import (
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spems-app/spems_backend/internal/adapters/cache"
	"github.com/spems-app/spems_backend/internal/core/domain"
)

func snapshotAt(t time.Time) domain.RateSnapshot {
	return domain.RateSnapshot{
		BaseCurrency: "USD",
		Rates:        map[string]decimal.Decimal{"EUR": decimal.RequireFromString("0.85")},
		FetchedAt:    t,
		Origin:       domain.RateOriginLive,
	}
}

func TestMemoryCache_LookupMissing(t *testing.T) {
	c := cache.NewMemoryCache(4 * time.Hour)
	_, ok := c.Lookup("USD")
	assert.False(t, ok)
}

func TestMemoryCache_StoreThenLookup(t *testing.T) {
	c := cache.NewMemoryCache(4 * time.Hour)
	snap := snapshotAt(time.Now())
	c.Store("USD", snap)

	got, ok := c.Lookup("USD")
	require.True(t, ok)
	assert.Equal(t, snap.BaseCurrency, got.BaseCurrency)
	assert.True(t, got.Rates["EUR"].Equal(snap.Rates["EUR"]))
}

func TestMemoryCache_LazyExpiry(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	now := base
	c := cache.NewMemoryCacheWithClock(4*time.Hour, func() time.Time { return now })

	c.Store("USD", snapshotAt(base))

	now = base.Add(4*time.Hour - time.Second)
	_, ok := c.Lookup("USD")
	assert.True(t, ok, "entry should still be live just before TTL")

	now = base.Add(4 * time.Hour)
	_, ok = c.Lookup("USD")
	assert.False(t, ok, "entry at its expiry instant must be treated as absent")
}

func TestMemoryCache_ExpiryDerivesFromFetchTimestamp(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	now := base
	c := cache.NewMemoryCacheWithClock(4*time.Hour, func() time.Time { return now })

	// Snapshot fetched an hour ago only has three hours of life left.
	c.Store("USD", snapshotAt(base.Add(-time.Hour)))

	now = base.Add(3*time.Hour - time.Second)
	_, ok := c.Lookup("USD")
	assert.True(t, ok)

	now = base.Add(3 * time.Hour)
	_, ok = c.Lookup("USD")
	assert.False(t, ok)
}

func TestMemoryCache_StoreOverwrites(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	now := base.Add(5 * time.Hour)
	c := cache.NewMemoryCacheWithClock(4*time.Hour, func() time.Time { return now })

	c.Store("USD", snapshotAt(base)) // already expired at `now`
	fresh := snapshotAt(now)
	c.Store("USD", fresh)

	got, ok := c.Lookup("USD")
	require.True(t, ok)
	assert.Equal(t, fresh.FetchedAt, got.FetchedAt)
}

func TestMemoryCache_ConcurrentAccess(t *testing.T) {
	c := cache.NewMemoryCache(4 * time.Hour)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			c.Store("USD", snapshotAt(time.Now()))
		}()
		go func() {
			defer wg.Done()
			c.Lookup("USD")
		}()
	}
	wg.Wait()

	_, ok := c.Lookup("USD")
	assert.True(t, ok)
}
