package services_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/spems-app/spems_backend/internal/adapters/cache"
	"github.com/spems-app/spems_backend/internal/adapters/exchangerate"
	"github.com/spems-app/spems_backend/internal/apperrors"
	"github.com/spems-app/spems_backend/internal/core/domain"
	"github.com/spems-app/spems_backend/internal/core/services"
	"github.com/spems-app/spems_backend/internal/platform/metrics"
)

// --- Mock RateSource ---
type MockRateSource struct {
	mock.Mock
}

func (m *MockRateSource) Fetch(ctx context.Context, baseCurrency string) (domain.RateSnapshot, error) {
	args := m.Called(ctx, baseCurrency)
	return args.Get(0).(domain.RateSnapshot), args.Error(1)
}

// testClock is a manually advanced clock shared by the cache and the mocks.
type testClock struct {
	current time.Time
}

func (c *testClock) Now() time.Time {
	return c.current
}

func (c *testClock) Advance(d time.Duration) {
	c.current = c.current.Add(d)
}

// --- Test Suite ---
type CurrencyServiceTestSuite struct {
	suite.Suite
	mockSource *MockRateSource
	clock      *testClock
	service    *services.CurrencyService
}

const testCacheTTL = 4 * time.Hour

func (suite *CurrencyServiceTestSuite) SetupTest() {
	suite.mockSource = new(MockRateSource)
	suite.clock = &testClock{current: time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)}
	rateCache := cache.NewMemoryCacheWithClock(testCacheTTL, suite.clock.Now)
	fallback := exchangerate.NewStaticFallbackWithClock(suite.clock.Now)
	m := metrics.New(prometheus.NewRegistry())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	suite.service = services.NewCurrencyService(suite.mockSource, rateCache, fallback, m, logger)
}

func (suite *CurrencyServiceTestSuite) liveSnapshot(base string) domain.RateSnapshot {
	return domain.RateSnapshot{
		BaseCurrency: base,
		Rates: map[string]decimal.Decimal{
			"EUR": decimal.NewFromFloat(0.85),
			"GBP": decimal.NewFromFloat(0.73),
			"KES": decimal.NewFromFloat(150.25),
			"JPY": decimal.NewFromFloat(110.15),
		},
		FetchedAt: suite.clock.Now(),
		Origin:    domain.RateOriginLive,
	}
}

// --- ListSupportedCurrencies ---

func (suite *CurrencyServiceTestSuite) TestListSupportedCurrencies() {
	ctx := context.Background()

	currencies := suite.service.ListSupportedCurrencies(ctx)

	suite.Len(currencies, 10)
	suite.Equal("USD", currencies[0].Code)
	suite.Equal("US Dollar", currencies[0].Name)
	suite.Equal("$", currencies[0].Symbol)
	// No network involvement, ever.
	suite.mockSource.AssertNotCalled(suite.T(), "Fetch")
}

// --- GetExchangeRates ---

func (suite *CurrencyServiceTestSuite) TestGetExchangeRates_FetchesAndCaches() {
	ctx := context.Background()
	suite.mockSource.On("Fetch", mock.Anything, "USD").Return(suite.liveSnapshot("USD"), nil).Once()

	first, err := suite.service.GetExchangeRates(ctx, "USD")
	suite.Require().NoError(err)
	suite.Equal(domain.RateOriginLive, first.Origin)

	// Second call inside the TTL is served from the cache.
	second, err := suite.service.GetExchangeRates(ctx, "USD")
	suite.Require().NoError(err)
	suite.True(first.Rates["EUR"].Equal(second.Rates["EUR"]))

	suite.mockSource.AssertNumberOfCalls(suite.T(), "Fetch", 1)
}

func (suite *CurrencyServiceTestSuite) TestGetExchangeRates_RefetchesAfterExpiry() {
	ctx := context.Background()
	suite.mockSource.On("Fetch", mock.Anything, "USD").Return(suite.liveSnapshot("USD"), nil).Twice()

	_, err := suite.service.GetExchangeRates(ctx, "USD")
	suite.Require().NoError(err)

	suite.clock.Advance(testCacheTTL + time.Minute)

	_, err = suite.service.GetExchangeRates(ctx, "USD")
	suite.Require().NoError(err)

	suite.mockSource.AssertNumberOfCalls(suite.T(), "Fetch", 2)
}

func (suite *CurrencyServiceTestSuite) TestGetExchangeRates_DefaultsToUSD() {
	ctx := context.Background()
	suite.mockSource.On("Fetch", mock.Anything, "USD").Return(suite.liveSnapshot("USD"), nil).Once()

	snap, err := suite.service.GetExchangeRates(ctx, "")

	suite.Require().NoError(err)
	suite.Equal("USD", snap.BaseCurrency)
}

func (suite *CurrencyServiceTestSuite) TestGetExchangeRates_InvalidBaseNoFetch() {
	ctx := context.Background()

	_, err := suite.service.GetExchangeRates(ctx, "DOLLARS")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockSource.AssertNotCalled(suite.T(), "Fetch")
}

func (suite *CurrencyServiceTestSuite) TestGetExchangeRates_FallbackOnSourceFailure() {
	ctx := context.Background()
	suite.mockSource.On("Fetch", mock.Anything, "USD").
		Return(domain.RateSnapshot{}, apperrors.ErrSourceUnavailable).Once()

	snap, err := suite.service.GetExchangeRates(ctx, "USD")

	suite.Require().NoError(err)
	suite.Equal(domain.RateOriginFallback, snap.Origin)
	suite.Equal("USD", snap.BaseCurrency)
	suite.True(snap.Rates["EUR"].Equal(decimal.RequireFromString("0.85")))
}

func (suite *CurrencyServiceTestSuite) TestGetExchangeRates_FallbackNotCached() {
	ctx := context.Background()
	suite.mockSource.On("Fetch", mock.Anything, "USD").
		Return(domain.RateSnapshot{}, apperrors.ErrSourceUnavailable).Once()
	suite.mockSource.On("Fetch", mock.Anything, "USD").
		Return(suite.liveSnapshot("USD"), nil).Once()

	first, err := suite.service.GetExchangeRates(ctx, "USD")
	suite.Require().NoError(err)
	suite.Equal(domain.RateOriginFallback, first.Origin)

	// The fallback answer did not enter the cache, so the recovered
	// source is consulted immediately on the next call.
	second, err := suite.service.GetExchangeRates(ctx, "USD")
	suite.Require().NoError(err)
	suite.Equal(domain.RateOriginLive, second.Origin)

	suite.mockSource.AssertNumberOfCalls(suite.T(), "Fetch", 2)
}

func (suite *CurrencyServiceTestSuite) TestGetExchangeRates_FallbackRebasedForNonUSD() {
	ctx := context.Background()
	suite.mockSource.On("Fetch", mock.Anything, "EUR").
		Return(domain.RateSnapshot{}, apperrors.ErrSourceUnavailable).Once()

	snap, err := suite.service.GetExchangeRates(ctx, "EUR")

	suite.Require().NoError(err)
	suite.Equal(domain.RateOriginFallback, snap.Origin)
	suite.Equal("EUR", snap.BaseCurrency)
	// 1 EUR = 1/0.85 USD
	usd, ok := snap.Rates["USD"]
	suite.Require().True(ok)
	suite.True(usd.Sub(decimal.RequireFromString("1.1765")).Abs().LessThan(decimal.RequireFromString("0.0001")))
}

func (suite *CurrencyServiceTestSuite) TestGetExchangeRates_FallbackUnsupportedBase() {
	ctx := context.Background()
	suite.mockSource.On("Fetch", mock.Anything, "BTC").
		Return(domain.RateSnapshot{}, apperrors.ErrSourceUnavailable).Once()

	_, err := suite.service.GetExchangeRates(ctx, "BTC")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnsupportedFallbackBase)
}

// --- ConvertCurrency ---

func (suite *CurrencyServiceTestSuite) TestConvertCurrency_PivotsThroughUSD() {
	ctx := context.Background()
	suite.mockSource.On("Fetch", mock.Anything, "USD").Return(suite.liveSnapshot("USD"), nil).Once()

	result, err := suite.service.ConvertCurrency(ctx, "EUR", "GBP", decimal.NewFromInt(100))

	suite.Require().NoError(err)
	// 100 EUR -> 117.647 USD -> 85.8824 GBP
	suite.True(result.ConvertedAmount.Equal(decimal.RequireFromString("85.88")), "got %s", result.ConvertedAmount)
	suite.True(result.Rate.Equal(decimal.RequireFromString("0.8588")), "got %s", result.Rate)
	suite.Equal("EUR", result.From)
	suite.Equal("GBP", result.To)
}

func (suite *CurrencyServiceTestSuite) TestConvertCurrency_FromUSD() {
	ctx := context.Background()
	suite.mockSource.On("Fetch", mock.Anything, "USD").Return(suite.liveSnapshot("USD"), nil).Once()

	result, err := suite.service.ConvertCurrency(ctx, "USD", "EUR", decimal.NewFromInt(100))

	suite.Require().NoError(err)
	suite.True(result.ConvertedAmount.Equal(decimal.RequireFromString("85")))
	suite.True(result.Rate.Equal(decimal.RequireFromString("0.85")))
}

func (suite *CurrencyServiceTestSuite) TestConvertCurrency_IdentityNoNetwork() {
	ctx := context.Background()

	result, err := suite.service.ConvertCurrency(ctx, "KES", "KES", decimal.RequireFromString("42.37"))

	suite.Require().NoError(err)
	suite.True(result.ConvertedAmount.Equal(decimal.RequireFromString("42.37")))
	suite.True(result.Rate.Equal(decimal.NewFromInt(1)))
	suite.mockSource.AssertNotCalled(suite.T(), "Fetch")
}

func (suite *CurrencyServiceTestSuite) TestConvertCurrency_UnknownCurrency() {
	ctx := context.Background()

	_, err := suite.service.ConvertCurrency(ctx, "XYZ", "USD", decimal.NewFromInt(10))
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnknownCurrencyCode)

	_, err = suite.service.ConvertCurrency(ctx, "USD", "XYZ", decimal.NewFromInt(10))
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnknownCurrencyCode)

	// Rejected before any provider involvement.
	suite.mockSource.AssertNotCalled(suite.T(), "Fetch")
}

func (suite *CurrencyServiceTestSuite) TestConvertCurrency_NonPositiveAmount() {
	ctx := context.Background()

	_, err := suite.service.ConvertCurrency(ctx, "USD", "EUR", decimal.Zero)
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.ConvertCurrency(ctx, "USD", "EUR", decimal.NewFromInt(-5))
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *CurrencyServiceTestSuite) TestConvertCurrency_LowercaseCodesAccepted() {
	ctx := context.Background()
	suite.mockSource.On("Fetch", mock.Anything, "USD").Return(suite.liveSnapshot("USD"), nil).Once()

	result, err := suite.service.ConvertCurrency(ctx, "usd", "eur", decimal.NewFromInt(50))

	suite.Require().NoError(err)
	suite.Equal("USD", result.From)
	suite.Equal("EUR", result.To)
	suite.True(result.ConvertedAmount.Equal(decimal.RequireFromString("42.5")))
}

func (suite *CurrencyServiceTestSuite) TestConvertCurrency_UsesFallbackWhenSourceDown() {
	ctx := context.Background()
	suite.mockSource.On("Fetch", mock.Anything, "USD").
		Return(domain.RateSnapshot{}, apperrors.ErrSourceUnavailable)

	result, err := suite.service.ConvertCurrency(ctx, "USD", "KES", decimal.NewFromInt(10))

	suite.Require().NoError(err)
	suite.True(result.ConvertedAmount.Equal(decimal.RequireFromString("1502.5")))
	suite.True(result.Rate.Equal(decimal.RequireFromString("150.25")))
}

func (suite *CurrencyServiceTestSuite) TestConvertCurrency_MissingRateIsError() {
	ctx := context.Background()
	// Snapshot without a CHF entry.
	suite.mockSource.On("Fetch", mock.Anything, "USD").Return(suite.liveSnapshot("USD"), nil).Once()

	_, err := suite.service.ConvertCurrency(ctx, "USD", "CHF", decimal.NewFromInt(10))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrRateUnavailable)
}

// --- Run Suite ---
func TestCurrencyService(t *testing.T) {
	suite.Run(t, new(CurrencyServiceTestSuite))
}
