package adapters

import (
	"context"

	"cbrates/internal/domain"
)

type RateSourceClient interface {
	GetDailyRates(ctx context.Context, date domain.Date) (domain.DailySnapshot, error)
}

type CurrencyRepository interface {
	List(ctx context.Context) (map[string]domain.Currency, error)
	Insert(ctx context.Context, currency domain.Currency) error
}

type RateRepository interface {
	ListDates(ctx context.Context) (map[domain.Date]struct{}, error)
	HasDate(ctx context.Context, date domain.Date) (bool, error)
	InsertBatch(ctx context.Context, records []domain.RateRecord) error
	GetForDate(ctx context.Context, date domain.Date) ([]domain.RateView, error)
	GetWeekly(ctx context.Context, code string, since domain.Date) ([]domain.RateRecord, error)
}

type DailyRatesCache interface {
	Get(date domain.Date) ([]domain.RateView, bool)
	Set(date domain.Date, views []domain.RateView)
	Close()
}
