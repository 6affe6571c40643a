package exchangerate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spems-app/spems_backend/internal/apperrors"
	"github.com/spems-app/spems_backend/internal/core/domain"
)

var currencyCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)

// apiResponse is the wire shape of the exchangerate-api v6 "latest" endpoint.
// Decoding is strict in the sense that the fields the application relies on
// are typed; anything that doesn't fit surfaces as an invalid-response error
// instead of propagating an untyped value downstream.
type apiResponse struct {
	Result          string                     `json:"result"`
	BaseCode        string                     `json:"base_code"`
	TimeLastUpdated int64                      `json:"time_last_update_unix"`
	ConversionRates map[string]decimal.Decimal `json:"conversion_rates"`
}

// Client fetches rate snapshots from the external exchangerate-api provider.
// It performs no caching and never touches the rate cache; orchestration is
// the currency service's job.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	now        func() time.Time
}

// NewClient creates a rate source client. timeout bounds every outbound
// request; an unbounded hang on the provider is never acceptable because the
// static fallback exists exactly to bound latency.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		now: time.Now,
	}
}

// NewClientWithClock is like NewClient with an injected clock for tests.
func NewClientWithClock(baseURL, apiKey string, timeout time.Duration, now func() time.Time) *Client {
	c := NewClient(baseURL, apiKey, timeout)
	c.now = now
	return c
}

// Fetch retrieves the latest rates for base from the provider and returns a
// live snapshot filtered to the supported currency set. The base is only
// checked syntactically; the provider may support more codes than the
// application recognizes.
func (c *Client) Fetch(ctx context.Context, base string) (domain.RateSnapshot, error) {
	if !currencyCodePattern.MatchString(base) {
		return domain.RateSnapshot{}, fmt.Errorf("%w: base currency %q is not a 3-letter code", apperrors.ErrValidation, base)
	}

	url := fmt.Sprintf("%s/v6/%s/latest/%s", c.baseURL, c.apiKey, base)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.RateSnapshot{}, fmt.Errorf("%w: failed to build request: %v", apperrors.ErrSourceUnavailable, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.RateSnapshot{}, fmt.Errorf("%w: %v", apperrors.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.RateSnapshot{}, fmt.Errorf("%w: provider returned status %d", apperrors.ErrSourceUnavailable, resp.StatusCode)
	}

	var apiResp apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return domain.RateSnapshot{}, fmt.Errorf("%w: %v", apperrors.ErrSourceInvalidResponse, err)
	}

	if apiResp.Result != "success" {
		return domain.RateSnapshot{}, fmt.Errorf("%w: provider reported result %q", apperrors.ErrSourceInvalidResponse, apiResp.Result)
	}
	if len(apiResp.ConversionRates) == 0 {
		return domain.RateSnapshot{}, fmt.Errorf("%w: missing conversion_rates", apperrors.ErrSourceInvalidResponse)
	}

	// Unsupported codes from the provider are dropped: this bounds the table
	// to what the rest of the application can display and convert.
	rates := make(map[string]decimal.Decimal, len(domain.SupportedCurrencies))
	for code, rate := range apiResp.ConversionRates {
		if domain.IsSupportedCurrency(code) {
			rates[code] = rate
		}
	}

	return domain.RateSnapshot{
		BaseCurrency: base,
		Rates:        rates,
		FetchedAt:    c.now(),
		Origin:       domain.RateOriginLive,
	}, nil
}
