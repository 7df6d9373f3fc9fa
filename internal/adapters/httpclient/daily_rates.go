package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"cbrates/internal/domain"

	"github.com/shopspring/decimal"
)

const archiveDateFormat = "2006/01/02"

// DailyRatesClient fetches one archive day of quotes from the central
// bank endpoint. It performs no retries; retry policy belongs to the
// sync cycle.
type DailyRatesClient struct {
	http    *http.Client
	baseURL string
}

type valute struct {
	CharCode string          `json:"CharCode"`
	Name     string          `json:"Name"`
	Nominal  int             `json:"Nominal"`
	Value    decimal.Decimal `json:"Value"`
}

type dailyResponse struct {
	Valute map[string]valute `json:"Valute"`
}

func (c *DailyRatesClient) GetDailyRates(ctx context.Context, date domain.Date) (domain.DailySnapshot, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	u.Path = strings.TrimSuffix(u.Path, "/") + "/archive/" + date.Time().Format(archiveDateFormat) + "/daily_json.js"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for date %s: %w", date, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request for date %s: %w", date, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status code %d for date %s: %s", resp.StatusCode, date, resp.Status)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response for date %s: %w", date, err)
	}

	// The archive returns an empty body for days the source never
	// published (weekends, holidays).
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, domain.ErrNoData
	}

	var body dailyResponse
	if err = json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("failed to decode response for date %s: %w", date, err)
	}

	if len(body.Valute) == 0 {
		return nil, domain.ErrNoData
	}

	snapshot := make(domain.DailySnapshot, len(body.Valute))
	for code, v := range body.Valute {
		snapshot[code] = domain.SnapshotEntry{
			Name:    v.Name,
			Nominal: v.Nominal,
			Value:   v.Value,
		}
	}
	return snapshot, nil
}

func NewDailyRatesClient(httpClient *http.Client, baseURL string) *DailyRatesClient {
	return &DailyRatesClient{http: httpClient, baseURL: baseURL}
}
