package schedule

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

type horizonEntry struct {
	days   []DaySchedule
	dayKey string // work date of "now" when the horizon was derived
}

// HorizonCache keeps derived horizons per doctor so repeated calendar views
// do not re-run the per-date appointment fan-out. Entries are only valid on
// the calendar day they were derived (the horizon window and past-date
// dropping both move at midnight) and must be invalidated whenever a booking
// or schedule write changes the underlying data.
type HorizonCache struct {
	mu    sync.RWMutex
	cache *lru.Cache[string, *horizonEntry]
}

// NewHorizonCache creates a cache holding at most size doctors' horizons.
// Non-positive sizes are clamped to a small default.
func NewHorizonCache(size int) *HorizonCache {
	if size <= 0 {
		size = 16
	}
	cache, _ := lru.New[string, *horizonEntry](size) // errs only on size <= 0
	return &HorizonCache{cache: cache}
}

// Get returns the cached horizon for a doctor if it was derived today.
func (c *HorizonCache) Get(doctorID string, now time.Time) ([]DaySchedule, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.cache.Get(doctorID)
	if !exists || entry.dayKey != FormatWorkDate(now) {
		return nil, false
	}
	return entry.days, true
}

// Store caches a freshly derived horizon for a doctor.
func (c *HorizonCache) Store(doctorID string, now time.Time, days []DaySchedule) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Add(doctorID, &horizonEntry{days: days, dayKey: FormatWorkDate(now)})
}

// Invalidate drops the cached horizon of one doctor.
func (c *HorizonCache) Invalidate(doctorID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Remove(doctorID)
}
