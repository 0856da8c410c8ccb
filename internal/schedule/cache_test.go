package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHorizonCacheSameDayHit(t *testing.T) {
	cache := NewHorizonCache(4)
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	days := []DaySchedule{{Date: "2025-03-10"}}

	_, hit := cache.Get("doc-1", now)
	assert.False(t, hit)

	cache.Store("doc-1", now, days)

	got, hit := cache.Get("doc-1", now.Add(2*time.Hour))
	assert.True(t, hit)
	assert.Equal(t, days, got)
}

func TestHorizonCacheExpiresAtMidnight(t *testing.T) {
	cache := NewHorizonCache(4)
	now := time.Date(2025, 3, 10, 23, 0, 0, 0, time.Local)
	cache.Store("doc-1", now, []DaySchedule{{Date: "2025-03-10"}})

	_, hit := cache.Get("doc-1", now.Add(2*time.Hour))
	assert.False(t, hit, "an entry derived yesterday must not be served")
}

func TestHorizonCacheInvalidate(t *testing.T) {
	cache := NewHorizonCache(4)
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	cache.Store("doc-1", now, []DaySchedule{{Date: "2025-03-10"}})

	cache.Invalidate("doc-1")

	_, hit := cache.Get("doc-1", now)
	assert.False(t, hit)
}
