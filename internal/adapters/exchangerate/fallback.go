package exchangerate

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/spems-app/spems_backend/internal/core/domain"
)

// fallbackRates maps currency code to an approximate rate-to-USD. The values
// are static; they keep the application answering rate and conversion
// queries when the provider is down, trading freshness for availability.
var fallbackRates = map[string]string{
	"USD": "1.0",
	"EUR": "0.85",
	"GBP": "0.73",
	"KES": "150.25",
	"JPY": "110.15",
	"CAD": "1.25",
	"AUD": "1.35",
	"CHF": "0.92",
	"CNY": "6.45",
	"INR": "74.50",
}

// StaticFallback produces USD-based fallback snapshots from the hard-coded
// table. Each call yields a fresh snapshot stamped at the current time, so
// conversion math downstream behaves exactly as it does for live data.
type StaticFallback struct {
	now func() time.Time
}

// NewStaticFallback creates the fallback source.
func NewStaticFallback() *StaticFallback {
	return &StaticFallback{now: time.Now}
}

// NewStaticFallbackWithClock is like NewStaticFallback with an injected clock.
func NewStaticFallbackWithClock(now func() time.Time) *StaticFallback {
	return &StaticFallback{now: now}
}

// Snapshot returns a fallback snapshot covering every supported currency.
// Fallback snapshots are never written to the rate cache: caching one would
// keep serving static data for a full TTL after the provider recovers.
func (f *StaticFallback) Snapshot() domain.RateSnapshot {
	rates := make(map[string]decimal.Decimal, len(fallbackRates))
	for code, v := range fallbackRates {
		rates[code] = decimal.RequireFromString(v)
	}
	return domain.RateSnapshot{
		BaseCurrency: domain.BaseCurrencyCode,
		Rates:        rates,
		FetchedAt:    f.now(),
		Origin:       domain.RateOriginFallback,
	}
}
