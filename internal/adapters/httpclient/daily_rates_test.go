package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cbrates/internal/domain"

	"github.com/stretchr/testify/require"
)

func testDate() domain.Date {
	return domain.DateOf(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC))
}

func TestDailyRatesClient_Success(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{
            "Date": "2024-03-01T11:30:00+03:00",
            "Valute": {
                "USD": {"CharCode": "USD", "Name": "US Dollar", "Nominal": 1, "Value": 90.5},
                "JPY": {"CharCode": "JPY", "Name": "Japanese Yen", "Nominal": 100, "Value": 60.12}
            }
        }`))
	}))
	t.Cleanup(srv.Close)

	c := NewDailyRatesClient(srv.Client(), srv.URL+"/")

	snapshot, err := c.GetDailyRates(context.Background(), testDate())
	require.NoError(t, err)
	require.Equal(t, "/archive/2024/03/01/daily_json.js", gotPath)
	require.Len(t, snapshot, 2)

	usd := snapshot["USD"]
	require.Equal(t, "US Dollar", usd.Name)
	require.Equal(t, 1, usd.Nominal)
	require.Equal(t, "90.5", usd.Value.String())

	jpy := snapshot["JPY"]
	require.Equal(t, 100, jpy.Nominal)
	require.Equal(t, "60.12", jpy.Value.String())
}

func TestDailyRatesClient_StatusCodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	c := NewDailyRatesClient(srv.Client(), srv.URL)

	_, err := c.GetDailyRates(context.Background(), testDate())
	require.Error(t, err)
	require.Contains(t, err.Error(), "unexpected status code 503")
	require.Contains(t, err.Error(), "2024-03-01")
}

func TestDailyRatesClient_EmptyBodyMeansNoData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	c := NewDailyRatesClient(srv.Client(), srv.URL)

	_, err := c.GetDailyRates(context.Background(), testDate())
	require.ErrorIs(t, err, domain.ErrNoData)
}

func TestDailyRatesClient_EmptyValuteMeansNoData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"Valute": {}}`))
	}))
	t.Cleanup(srv.Close)

	c := NewDailyRatesClient(srv.Client(), srv.URL)

	_, err := c.GetDailyRates(context.Background(), testDate())
	require.ErrorIs(t, err, domain.ErrNoData)
}

func TestDailyRatesClient_JSONDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("{")) // invalid JSON
	}))
	t.Cleanup(srv.Close)

	c := NewDailyRatesClient(srv.Client(), srv.URL)

	_, err := c.GetDailyRates(context.Background(), testDate())
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to decode response for date 2024-03-01")
}

func TestDailyRatesClient_BaseURLParseError(t *testing.T) {
	c := NewDailyRatesClient(&http.Client{}, "http://::1]")
	_, err := c.GetDailyRates(context.Background(), testDate())
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to parse base URL")
}
