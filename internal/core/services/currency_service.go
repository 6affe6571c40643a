package services

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"github.com/spems-app/spems_backend/internal/apperrors"
	"github.com/spems-app/spems_backend/internal/core/domain"
	portsrepo "github.com/spems-app/spems_backend/internal/core/ports/repositories"
	"github.com/spems-app/spems_backend/internal/platform/metrics"
	"github.com/spems-app/spems_backend/internal/utils/fx"
)

var currencyCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)

// CurrencyService is the exchange-rate subsystem's orchestrator: it answers
// supported-currency, rate and conversion queries from the cache, the live
// source, or the static fallback table, in that order. Provider failures are
// absorbed here; callers only ever see a usable snapshot or a typed error.
type CurrencyService struct {
	source   portsrepo.RateSource
	cache    portsrepo.RateCache
	fallback portsrepo.FallbackSource
	metrics  *metrics.Metrics
	logger   *slog.Logger

	// Coalesces concurrent cold-cache fetches per base so a burst of
	// requests costs one provider call instead of N.
	flight singleflight.Group
}

// NewCurrencyService creates a CurrencyService. The service owns the cache
// instance; nothing else writes to it.
func NewCurrencyService(source portsrepo.RateSource, cache portsrepo.RateCache, fallback portsrepo.FallbackSource, m *metrics.Metrics, logger *slog.Logger) *CurrencyService {
	return &CurrencyService{
		source:   source,
		cache:    cache,
		fallback: fallback,
		metrics:  m,
		logger:   logger,
	}
}

// ListSupportedCurrencies returns the static, ordered currency set.
func (s *CurrencyService) ListSupportedCurrencies(_ context.Context) []domain.Currency {
	out := make([]domain.Currency, len(domain.SupportedCurrencies))
	copy(out, domain.SupportedCurrencies)
	return out
}

// GetExchangeRates returns the current rate snapshot for base. An empty base
// defaults to the reference currency. Cache hits are served without network
// I/O; on a miss the live source is fetched (coalesced per base) and cached;
// if the source fails the static fallback table answers instead. Fallback
// snapshots are never cached, so a transient outage cannot poison the cache
// for a full TTL after the provider recovers.
func (s *CurrencyService) GetExchangeRates(ctx context.Context, base string) (domain.RateSnapshot, error) {
	if base == "" {
		base = domain.BaseCurrencyCode
	}
	base = strings.ToUpper(base)
	if !currencyCodePattern.MatchString(base) {
		return domain.RateSnapshot{}, fmt.Errorf("%w: base currency %q is not a 3-letter code", apperrors.ErrValidation, base)
	}

	if snap, ok := s.cache.Lookup(base); ok {
		s.metrics.RateCacheHits.Inc()
		return snap, nil
	}
	s.metrics.RateCacheMisses.Inc()

	v, err, _ := s.flight.Do(base, func() (any, error) {
		s.metrics.SourceFetches.Inc()
		snap, err := s.source.Fetch(ctx, base)
		if err != nil {
			return domain.RateSnapshot{}, err
		}
		s.cache.Store(base, snap)
		return snap, nil
	})
	if err == nil {
		return v.(domain.RateSnapshot), nil
	}

	s.metrics.SourceFetchErrors.Inc()
	s.logger.Warn("rate source failed, serving fallback rates",
		slog.String("base_currency", base),
		slog.String("error", err.Error()),
	)
	return s.fallbackSnapshot(base)
}

// fallbackSnapshot serves the static table, re-based to the requested
// currency when it isn't USD. Bases outside the supported set have no
// fallback data at all.
func (s *CurrencyService) fallbackSnapshot(base string) (domain.RateSnapshot, error) {
	snap := s.fallback.Snapshot()
	if base == snap.BaseCurrency {
		s.metrics.FallbackServed.Inc()
		return snap, nil
	}

	if !domain.IsSupportedCurrency(base) {
		return domain.RateSnapshot{}, fmt.Errorf("%w: %s", apperrors.ErrUnsupportedFallbackBase, base)
	}

	rebased, err := fx.Rebase(snap.Rates, snap.BaseCurrency, base)
	if err != nil {
		return domain.RateSnapshot{}, fmt.Errorf("%w: %s", apperrors.ErrUnsupportedFallbackBase, base)
	}
	s.metrics.FallbackServed.Inc()
	return domain.RateSnapshot{
		BaseCurrency: base,
		Rates:        rebased,
		FetchedAt:    snap.FetchedAt,
		Origin:       domain.RateOriginFallback,
	}, nil
}

// ConvertCurrency converts amount between two supported currencies. The
// conversion always pivots through the reference currency, even when neither
// endpoint is USD. The converted amount is rounded to 2 decimal places and
// the effective rate to 4; unrounded values are used internally.
func (s *CurrencyService) ConvertCurrency(ctx context.Context, from, to string, amount decimal.Decimal) (domain.ConversionResult, error) {
	from = strings.ToUpper(from)
	to = strings.ToUpper(to)

	if !domain.IsSupportedCurrency(from) {
		return domain.ConversionResult{}, fmt.Errorf("%w: %s", apperrors.ErrUnknownCurrencyCode, from)
	}
	if !domain.IsSupportedCurrency(to) {
		return domain.ConversionResult{}, fmt.Errorf("%w: %s", apperrors.ErrUnknownCurrencyCode, to)
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return domain.ConversionResult{}, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	s.metrics.Conversions.Inc()

	// Identity conversions never touch the cache or the network.
	if from == to {
		return domain.ConversionResult{
			From:            from,
			To:              to,
			Amount:          amount,
			ConvertedAmount: amount,
			Rate:            decimal.NewFromInt(1),
		}, nil
	}

	snap, err := s.GetExchangeRates(ctx, domain.BaseCurrencyCode)
	if err != nil {
		return domain.ConversionResult{}, err
	}

	converted, err := fx.ConvertViaBase(snap.Rates, snap.BaseCurrency, from, to, amount)
	if err != nil {
		return domain.ConversionResult{}, err
	}

	rate := converted.Div(amount)
	return domain.ConversionResult{
		From:            from,
		To:              to,
		Amount:          amount,
		ConvertedAmount: converted.Round(2),
		Rate:            rate.Round(4),
	}, nil
}
