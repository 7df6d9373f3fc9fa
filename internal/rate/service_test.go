package rate

import (
	"context"
	"errors"
	"testing"
	"time"

	"cbrates/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestService(rates *MockRateRepository, cache *Cache) (*Service, *fakeDayCache) {
	dayCache := newFakeDayCache()
	svc := NewService(rates, dayCache, cache)
	svc.now = func() time.Time { return testToday.Time() }
	return svc, dayCache
}

func usdView(date domain.Date) domain.RateView {
	return domain.RateView{
		Code:    "USD",
		Name:    "US Dollar",
		Nominal: 1,
		Date:    date,
		Value:   decimal.RequireFromString("90.5"),
	}
}

// --- CurrentSnapshot ---

func TestService_CurrentSnapshot_Today(t *testing.T) {
	rates := new(MockRateRepository)
	svc, _ := newTestService(rates, NewCache())

	rates.On("GetForDate", mock.Anything, testToday).Return([]domain.RateView{usdView(testToday)}, nil).Once()

	date, views, err := svc.CurrentSnapshot(context.Background())
	require.NoError(t, err)
	require.Equal(t, testToday, date)
	require.Len(t, views, 1)
	rates.AssertExpectations(t)
}

func TestService_CurrentSnapshot_FallsBackToYesterday(t *testing.T) {
	rates := new(MockRateRepository)
	svc, _ := newTestService(rates, NewCache())
	yesterday := testToday.AddDays(-1)

	rates.On("GetForDate", mock.Anything, testToday).Return([]domain.RateView{}, nil).Once()
	rates.On("GetForDate", mock.Anything, yesterday).Return([]domain.RateView{usdView(yesterday)}, nil).Once()

	date, views, err := svc.CurrentSnapshot(context.Background())
	require.NoError(t, err)
	require.Equal(t, yesterday, date)
	require.Len(t, views, 1)
	rates.AssertExpectations(t)
}

func TestService_CurrentSnapshot_NoDataWithinThreeDays(t *testing.T) {
	rates := new(MockRateRepository)
	svc, _ := newTestService(rates, NewCache())

	rates.On("GetForDate", mock.Anything, mock.Anything).Return([]domain.RateView{}, nil).Times(3)

	_, _, err := svc.CurrentSnapshot(context.Background())
	require.ErrorIs(t, err, domain.ErrNoRatesAvailable)
	rates.AssertExpectations(t)
}

func TestService_CurrentSnapshot_StoreError(t *testing.T) {
	rates := new(MockRateRepository)
	svc, _ := newTestService(rates, NewCache())

	rates.On("GetForDate", mock.Anything, testToday).Return(nil, errors.New("db down")).Once()

	_, _, err := svc.CurrentSnapshot(context.Background())
	require.Error(t, err)
	require.ErrorContains(t, err, "failed to load rates for")
}

func TestService_CurrentSnapshot_ServedFromDayCache(t *testing.T) {
	rates := new(MockRateRepository)
	svc, dayCache := newTestService(rates, NewCache())

	dayCache.Set(testToday, []domain.RateView{usdView(testToday)})

	date, views, err := svc.CurrentSnapshot(context.Background())
	require.NoError(t, err)
	require.Equal(t, testToday, date)
	require.Len(t, views, 1)
	rates.AssertNotCalled(t, "GetForDate", mock.Anything, mock.Anything)
}

func TestService_CurrentSnapshot_PopulatesDayCache(t *testing.T) {
	rates := new(MockRateRepository)
	svc, dayCache := newTestService(rates, NewCache())

	rates.On("GetForDate", mock.Anything, testToday).Return([]domain.RateView{usdView(testToday)}, nil).Once()

	_, _, err := svc.CurrentSnapshot(context.Background())
	require.NoError(t, err)

	// a second read must not hit the store again
	_, _, err = svc.CurrentSnapshot(context.Background())
	require.NoError(t, err)
	rates.AssertNumberOfCalls(t, "GetForDate", 1)
	_, ok := dayCache.Get(testToday)
	require.True(t, ok)
}

// --- WeeklyRates ---

func TestService_WeeklyRates_PassesToday(t *testing.T) {
	rates := new(MockRateRepository)
	svc, _ := newTestService(rates, NewCache())

	want := []domain.RateRecord{{Code: "USD", Date: testToday, Value: decimal.New(905, -1)}}
	rates.On("GetWeekly", mock.Anything, "USD", testToday).Return(want, nil).Once()

	got, err := svc.WeeklyRates(context.Background(), "USD")
	require.NoError(t, err)
	require.Equal(t, want, got)
	rates.AssertExpectations(t)
}

// --- Currencies / SupportedCodes ---

func TestService_SupportedCodes_Sorted(t *testing.T) {
	cache := NewCache()
	cache.AddCurrency(domain.Currency{Code: "USD", Name: "US Dollar", Nominal: 1})
	cache.AddCurrency(domain.Currency{Code: "AUD", Name: "Australian Dollar", Nominal: 1})
	cache.AddCurrency(domain.Currency{Code: "EUR", Name: "Euro", Nominal: 1})

	svc, _ := newTestService(new(MockRateRepository), cache)

	require.Equal(t, []string{"AUD", "EUR", "USD"}, svc.SupportedCodes())
	require.Len(t, svc.Currencies(), 3)
}
