package rate

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"time"

	"cbrates/internal/adapters"
	"cbrates/internal/domain"
)

// currentLookbackDays bounds the "most recent available date" fallback:
// today, yesterday, the day before. Past that the read side reports no
// data rather than serving something arbitrarily old.
const currentLookbackDays = 3

// Service is the read side. It only reads the store and the caches;
// all writes belong to the Updater.
type Service struct {
	rates    adapters.RateRepository
	dayCache adapters.DailyRatesCache
	cache    *Cache
	now      func() time.Time
}

// CurrentSnapshot returns the full rate table for the most recent date
// that has any rows. Persisted days are immutable, so cached day views
// never go stale.
func (s *Service) CurrentSnapshot(ctx context.Context) (domain.Date, []domain.RateView, error) {
	today := domain.DateOf(s.now())
	for offset := 0; offset < currentLookbackDays; offset++ {
		day := today.AddDays(-offset)
		if views, ok := s.dayCache.Get(day); ok {
			return day, views, nil
		}
		views, err := s.rates.GetForDate(ctx, day)
		if err != nil {
			return domain.Date{}, nil, fmt.Errorf("failed to load rates for %s: %w", day, err)
		}
		if len(views) > 0 {
			s.dayCache.Set(day, views)
			return day, views, nil
		}
	}
	return domain.Date{}, nil, domain.ErrNoRatesAvailable
}

// WeeklyRates returns one currency's trailing-week series, most recent
// date first.
func (s *Service) WeeklyRates(ctx context.Context, code string) ([]domain.RateRecord, error) {
	return s.rates.GetWeekly(ctx, code, domain.DateOf(s.now()))
}

func (s *Service) Currencies() map[string]domain.Currency {
	return s.cache.Currencies()
}

func (s *Service) SupportedCodes() []string {
	codes := slices.Collect(maps.Keys(s.cache.Currencies()))
	slices.Sort(codes)
	return codes
}

func NewService(rates adapters.RateRepository, dayCache adapters.DailyRatesCache, cache *Cache) *Service {
	return &Service{rates: rates, dayCache: dayCache, cache: cache, now: time.Now}
}
