package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BaseCurrencyCode is the reference currency all conversions pivot through.
const BaseCurrencyCode = "USD"

// Currency is a static descriptor of a supported currency.
type Currency struct {
	Code   string `json:"code"`   // 3-letter uppercase identifier (e.g. "USD")
	Name   string `json:"name"`   // e.g. "US Dollar"
	Symbol string `json:"symbol"` // e.g. "$"
	Flag   string `json:"flag"`   // flag glyph for display
}

// SupportedCurrencies is the ordered set of currencies the application
// recognizes. Defined at process start and never mutated.
var SupportedCurrencies = []Currency{
	{Code: "USD", Name: "US Dollar", Symbol: "$", Flag: "🇺🇸"},
	{Code: "EUR", Name: "Euro", Symbol: "€", Flag: "🇪🇺"},
	{Code: "GBP", Name: "British Pound", Symbol: "£", Flag: "🇬🇧"},
	{Code: "KES", Name: "Kenyan Shilling", Symbol: "KSh", Flag: "🇰🇪"},
	{Code: "JPY", Name: "Japanese Yen", Symbol: "¥", Flag: "🇯🇵"},
	{Code: "CAD", Name: "Canadian Dollar", Symbol: "C$", Flag: "🇨🇦"},
	{Code: "AUD", Name: "Australian Dollar", Symbol: "A$", Flag: "🇦🇺"},
	{Code: "CHF", Name: "Swiss Franc", Symbol: "CHF", Flag: "🇨🇭"},
	{Code: "CNY", Name: "Chinese Yuan", Symbol: "¥", Flag: "🇨🇳"},
	{Code: "INR", Name: "Indian Rupee", Symbol: "₹", Flag: "🇮🇳"},
}

var supportedCodes = func() map[string]Currency {
	m := make(map[string]Currency, len(SupportedCurrencies))
	for _, c := range SupportedCurrencies {
		m[c.Code] = c
	}
	return m
}()

// IsSupportedCurrency reports whether code is in the supported currency set.
func IsSupportedCurrency(code string) bool {
	_, ok := supportedCodes[code]
	return ok
}

// RateOrigin indicates how a rate snapshot was produced.
type RateOrigin string

const (
	RateOriginLive     RateOrigin = "live"
	RateOriginFallback RateOrigin = "fallback"
)

// RateSnapshot is the result of one rate acquisition: a table of rates
// expressed against BaseCurrency, plus when and how it was obtained.
// Snapshots are immutable once constructed; a new fetch produces a new
// snapshot, which makes them safe to share between concurrent readers.
type RateSnapshot struct {
	BaseCurrency string                     `json:"baseCurrency"`
	Rates        map[string]decimal.Decimal `json:"rates"` // code -> rate per unit of base
	FetchedAt    time.Time                  `json:"fetchedAt"`
	Origin       RateOrigin                 `json:"origin"`
}

// Rate returns the rate for code, treating the snapshot's own base as 1.0.
func (s RateSnapshot) Rate(code string) (decimal.Decimal, bool) {
	if code == s.BaseCurrency {
		return decimal.NewFromInt(1), true
	}
	r, ok := s.Rates[code]
	return r, ok
}

// ConversionResult holds the outcome of a single currency conversion.
// Computed fresh per request; never persisted.
type ConversionResult struct {
	From            string          `json:"from"`
	To              string          `json:"to"`
	Amount          decimal.Decimal `json:"amount"`
	ConvertedAmount decimal.Decimal `json:"convertedAmount"` // rounded to 2 places
	Rate            decimal.Decimal `json:"rate"`            // rounded to 4 places
}
