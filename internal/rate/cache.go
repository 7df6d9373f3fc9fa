package rate

import (
	"maps"
	"sync"

	"cbrates/internal/domain"
)

// Cache mirrors the store's currency table and known-date set. It is
// written by the sync cycle and read concurrently by request handlers,
// so every access goes through the lock. Entries are only added after
// the corresponding store write commits; the cache never runs ahead of
// the store. It grows for the process lifetime and is never pruned.
type Cache struct {
	mu         sync.RWMutex
	currencies map[string]domain.Currency
	dates      map[domain.Date]struct{}
}

func NewCache() *Cache {
	return &Cache{
		currencies: make(map[string]domain.Currency, 64),
		dates:      make(map[domain.Date]struct{}, 16),
	}
}

func (c *Cache) MergeCurrencies(currencies map[string]domain.Currency) {
	c.mu.Lock()
	defer c.mu.Unlock()
	maps.Copy(c.currencies, currencies)
}

func (c *Cache) MergeDates(dates map[domain.Date]struct{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	maps.Copy(c.dates, dates)
}

func (c *Cache) AddCurrency(currency domain.Currency) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.currencies[currency.Code] = currency
}

func (c *Cache) AddDate(date domain.Date) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dates[date] = struct{}{}
}

func (c *Cache) HasCurrency(code string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.currencies[code]
	return ok
}

func (c *Cache) HasDate(date domain.Date) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.dates[date]
	return ok
}

// Currencies returns a copy safe to use without the lock.
func (c *Cache) Currencies() map[string]domain.Currency {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return maps.Clone(c.currencies)
}

// Dates returns a copy safe to use without the lock.
func (c *Cache) Dates() map[domain.Date]struct{} {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return maps.Clone(c.dates)
}
