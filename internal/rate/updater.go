package rate

import (
	"context"
	"errors"
	"time"

	"cbrates/internal/adapters"
	"cbrates/internal/domain"

	"github.com/sirupsen/logrus"
)

// trailingWindowDays is the gap-fill lookback. Dates older than the
// window are never revisited, even if the source publishes them late.
const trailingWindowDays = 7

const defaultFetchTimeout = time.Second

// Updater fills missing dates in the trailing window: it consults the
// cache and the store for dates already synced, fetches the rest from
// the source one date at a time, and reconciles each snapshot into
// currency and rate rows.
type Updater struct {
	currencies adapters.CurrencyRepository
	rates      adapters.RateRepository
	client     adapters.RateSourceClient
	cache      *Cache
	// -----
	fetchTimeout time.Duration
	now          func() time.Time
}

// SyncOnce runs one sync cycle. A single date's failure never aborts
// the cycle, and the cycle never reports failure to the scheduler;
// everything is logged and retried naturally on the next run.
func (u *Updater) SyncOnce(ctx context.Context, execID string) {
	log := logrus.WithField("execID", execID)

	// STEP 1: refresh the cache from the store. The store is the
	// source of truth; the cache only ever accumulates.
	if currencies, err := u.currencies.List(ctx); err != nil {
		log.WithError(err).Error("Failed to refresh currencies cache")
	} else {
		u.cache.MergeCurrencies(currencies)
	}
	if dates, err := u.rates.ListDates(ctx); err != nil {
		log.WithError(err).Error("Failed to refresh known dates cache")
	} else {
		u.cache.MergeDates(dates)
	}

	// STEP 2: walk the trailing window, most recent date first.
	today := domain.DateOf(u.now())
	for offset := 0; offset < trailingWindowDays; offset++ {
		day := today.AddDays(-offset)
		if u.cache.HasDate(day) {
			continue
		}

		// The cache can be cold or stale after a restart; re-check the
		// store before spending a network call.
		exists, err := u.rates.HasDate(ctx, day)
		if err != nil {
			log.WithError(err).Errorf("Failed to check store for %s", day)
			continue
		}
		if exists {
			u.cache.AddDate(day)
			continue
		}

		fetchCtx, cancel := context.WithTimeout(ctx, u.fetchTimeout)
		snapshot, err := u.client.GetDailyRates(fetchCtx, day)
		cancel()
		if errors.Is(err, domain.ErrNoData) {
			log.Infof("No rates published for %s", day)
			continue
		}
		if err != nil {
			log.WithError(err).Warnf("Failed to fetch rates for %s", day)
			continue
		}

		u.reconcile(ctx, log, snapshot, day)
	}
}

// reconcile turns one fetched snapshot into persisted currency and rate
// rows, then marks the date known. Any persistence failure aborts the
// whole day before the date is cached, so the next cycle retries it
// whole; the store's (code, rate_date) constraint makes that retry safe.
func (u *Updater) reconcile(ctx context.Context, log *logrus.Entry, snapshot domain.DailySnapshot, day domain.Date) {
	records := make([]domain.RateRecord, 0, len(snapshot))
	for code, entry := range snapshot {
		if !u.cache.HasCurrency(code) {
			currency := domain.Currency{Code: code, Name: entry.Name, Nominal: entry.Nominal}
			err := u.currencies.Insert(ctx, currency)
			switch {
			case err == nil, errors.Is(err, domain.ErrCurrencyExists):
				u.cache.AddCurrency(currency)
			default:
				// Committing a partial day would mark it synced with this
				// currency's rate missing forever.
				log.WithError(err).Errorf("Failed to insert currency %q, postponing rates for %s", code, day)
				return
			}
		}
		records = append(records, domain.RateRecord{Code: code, Date: day, Value: entry.Value})
	}

	if len(records) == 0 {
		return
	}

	err := u.rates.InsertBatch(ctx, records)
	switch {
	case err == nil:
		u.cache.AddDate(day)
		log.Infof("Stored %d rates for %s", len(records), day)
	case errors.Is(err, domain.ErrDuplicateRates):
		// Another writer got there first; the store provably has the day.
		u.cache.AddDate(day)
		log.Infof("Rates for %s were already stored", day)
	default:
		log.WithError(err).Errorf("Failed to store rates for %s", day)
	}
}

func NewUpdater(
	currencies adapters.CurrencyRepository,
	rates adapters.RateRepository,
	client adapters.RateSourceClient,
	cache *Cache,
	fetchTimeout time.Duration,
) *Updater {
	if fetchTimeout <= 0 {
		fetchTimeout = defaultFetchTimeout
	}
	return &Updater{
		currencies:   currencies,
		rates:        rates,
		client:       client,
		cache:        cache,
		fetchTimeout: fetchTimeout,
		now:          time.Now,
	}
}
