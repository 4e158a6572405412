package market

import (
	"testing"
	"time"

	"github.com/customs-bot/customs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotCache(t *testing.T) {
	t.Parallel()

	current := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	cache := NewSnapshotCache(5 * time.Minute)
	cache.now = func() time.Time { return current }

	const queryURL = "https://auto.drom.ru/bmw/x5/?order=price"
	snapshot := &customs.MarketSnapshot{SourceURL: queryURL, AdCount: 9}

	_, ok := cache.Get(queryURL)
	assert.False(t, ok)

	cache.Put(queryURL, snapshot)

	got, ok := cache.Get(queryURL)
	require.True(t, ok)
	assert.Equal(t, snapshot, got)

	// Still fresh at the TTL boundary.
	current = current.Add(5 * time.Minute)
	_, ok = cache.Get(queryURL)
	assert.True(t, ok)

	// Stale one second later; the entry is evicted.
	current = current.Add(time.Second)
	_, ok = cache.Get(queryURL)
	assert.False(t, ok)

	current = current.Add(-time.Minute)
	_, ok = cache.Get(queryURL)
	assert.False(t, ok)
}

func TestSnapshotCache_DistinctQueries(t *testing.T) {
	t.Parallel()

	cache := NewSnapshotCache(time.Minute)
	cache.Put("https://auto.drom.ru/bmw/x5/", &customs.MarketSnapshot{AdCount: 1})

	_, ok := cache.Get("https://auto.drom.ru/bmw/x3/")
	assert.False(t, ok)
}
