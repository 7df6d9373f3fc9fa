package cache

import (
	"fmt"

	"cbrates/internal/domain"

	"github.com/dgraph-io/ristretto"
)

// RistrettoDailyRatesCache keeps per-date rate views for the read side.
// Rate rows are never updated or deleted once written, so there is no
// invalidation; entries just age out under ristretto's cost policy.
type RistrettoDailyRatesCache struct {
	cache *ristretto.Cache
}

// ristretto's TinyLFU admission starves Sets when the cost budget is
// very small, so the budget is floored well above the handful of day
// snapshots this cache will ever hold.
const minCacheItems = 128

func NewDailyRatesCache(maxItems int64) (*RistrettoDailyRatesCache, error) {
	if maxItems < minCacheItems {
		maxItems = minCacheItems
	}
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10 * maxItems,
		MaxCost:     maxItems,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create daily rates cache failed: %w", err)
	}
	return &RistrettoDailyRatesCache{cache: c}, nil
}

func (c *RistrettoDailyRatesCache) Get(date domain.Date) ([]domain.RateView, bool) {
	if v, ok := c.cache.Get(date.String()); ok {
		views, ok := v.([]domain.RateView)
		return views, ok
	}
	return nil, false
}

func (c *RistrettoDailyRatesCache) Set(date domain.Date, views []domain.RateView) {
	c.cache.Set(date.String(), views, 1)
}

func (c *RistrettoDailyRatesCache) Close() { c.cache.Close() }
