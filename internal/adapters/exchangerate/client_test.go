package exchangerate_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spems-app/spems_backend/internal/adapters/exchangerate"
	"github.com/spems-app/spems_backend/internal/apperrors"
	"github.com/spems-app/spems_backend/internal/core/domain"
)

const successBody = `{
	"result": "success",
	"base_code": "USD",
	"time_last_update_unix": 1709290000,
	"conversion_rates": {
		"USD": 1,
		"EUR": 0.85,
		"GBP": 0.73,
		"ZWL": 322.0,
		"BTC": 0.000016
	}
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *exchangerate.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return exchangerate.NewClientWithClock(srv.URL, "test-key", time.Second, func() time.Time { return fixed })
}

func TestFetch_Success(t *testing.T) {
	var gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(successBody))
	})

	snap, err := client.Fetch(context.Background(), "USD")
	require.NoError(t, err)

	assert.Equal(t, "/v6/test-key/latest/USD", gotPath)
	assert.Equal(t, domain.RateOriginLive, snap.Origin)
	assert.Equal(t, "USD", snap.BaseCurrency)
	assert.Equal(t, time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), snap.FetchedAt)

	// Unsupported provider codes are dropped.
	assert.Contains(t, snap.Rates, "EUR")
	assert.Contains(t, snap.Rates, "GBP")
	assert.NotContains(t, snap.Rates, "ZWL")
	assert.NotContains(t, snap.Rates, "BTC")
	assert.Equal(t, "0.85", snap.Rates["EUR"].String())
}

func TestFetch_InvalidBaseCode(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected for a syntactically invalid base")
	})

	_, err := client.Fetch(context.Background(), "usd")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = client.Fetch(context.Background(), "EURO")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestFetch_HTTPErrorIsSourceUnavailable(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.Fetch(context.Background(), "USD")
	assert.ErrorIs(t, err, apperrors.ErrSourceUnavailable)
}

func TestFetch_ConnectionRefusedIsSourceUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // connection refused from here on
	client := exchangerate.NewClient(srv.URL, "k", time.Second)

	_, err := client.Fetch(context.Background(), "USD")
	assert.ErrorIs(t, err, apperrors.ErrSourceUnavailable)
}

func TestFetch_TimeoutIsSourceUnavailable(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
	})

	_, err := client.Fetch(context.Background(), "USD")
	assert.ErrorIs(t, err, apperrors.ErrSourceUnavailable)
}

func TestFetch_MalformedBodyIsInvalidResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result": "success", "conversion_rates": "not-a-map"}`))
	})

	_, err := client.Fetch(context.Background(), "USD")
	assert.ErrorIs(t, err, apperrors.ErrSourceInvalidResponse)
}

func TestFetch_ProviderFailureInside200IsInvalidResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result": "error", "error-type": "invalid-key"}`))
	})

	_, err := client.Fetch(context.Background(), "USD")
	assert.ErrorIs(t, err, apperrors.ErrSourceInvalidResponse)
}

func TestFetch_MissingRateMapIsInvalidResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result": "success", "base_code": "USD"}`))
	})

	_, err := client.Fetch(context.Background(), "USD")
	assert.ErrorIs(t, err, apperrors.ErrSourceInvalidResponse)
}

func TestStaticFallback_CoversAllSupportedCurrencies(t *testing.T) {
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	fb := exchangerate.NewStaticFallbackWithClock(func() time.Time { return fixed })

	snap := fb.Snapshot()
	assert.Equal(t, domain.RateOriginFallback, snap.Origin)
	assert.Equal(t, domain.BaseCurrencyCode, snap.BaseCurrency)
	assert.Equal(t, fixed, snap.FetchedAt)

	for _, c := range domain.SupportedCurrencies {
		rate, ok := snap.Rates[c.Code]
		require.True(t, ok, "missing fallback rate for %s", c.Code)
		assert.True(t, rate.IsPositive(), "fallback rate for %s must be positive", c.Code)
	}
}
