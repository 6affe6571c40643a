package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/spems-app/spems_backend/internal/core/domain"
)

// CurrencySvcFacade is the public query surface of the exchange-rate
// subsystem. GetExchangeRates and ConvertCurrency always return usable data
// (possibly fallback) or one of the typed errors in apperrors; raw transport
// failures never cross this boundary.
type CurrencySvcFacade interface {
	// ListSupportedCurrencies returns the static ordered currency set.
	ListSupportedCurrencies(ctx context.Context) []domain.Currency

	// GetExchangeRates returns the current snapshot for base, serving from
	// cache, the live source, or the static fallback table in that order.
	GetExchangeRates(ctx context.Context, base string) (domain.RateSnapshot, error)

	// ConvertCurrency converts amount between two supported currencies,
	// pivoting through the reference currency.
	ConvertCurrency(ctx context.Context, from, to string, amount decimal.Decimal) (domain.ConversionResult, error)
}
