package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/spems-app/spems_backend/internal/core/domain"
)

// CurrencyResponse defines the data returned for a supported currency.
type CurrencyResponse struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
	Flag   string `json:"flag"`
}

// ToCurrencyResponse converts a domain.Currency to CurrencyResponse DTO
func ToCurrencyResponse(c domain.Currency) CurrencyResponse {
	return CurrencyResponse{
		Code:   c.Code,
		Name:   c.Name,
		Symbol: c.Symbol,
		Flag:   c.Flag,
	}
}

// ToListCurrencyResponse converts a slice of domain.Currency to DTOs
func ToListCurrencyResponse(currencies []domain.Currency) []CurrencyResponse {
	res := make([]CurrencyResponse, len(currencies))
	for i, c := range currencies {
		res[i] = ToCurrencyResponse(c)
	}
	return res
}

// ExchangeRatesResponse defines the data returned for a rate snapshot.
// Origin lets clients see whether they got live or fallback data.
type ExchangeRatesResponse struct {
	BaseCurrency string                     `json:"baseCurrency"`
	LastUpdated  time.Time                  `json:"lastUpdated"`
	Origin       string                     `json:"origin"`
	Rates        map[string]decimal.Decimal `json:"rates"`
}

// ToExchangeRatesResponse converts a domain.RateSnapshot to its DTO.
func ToExchangeRatesResponse(snap domain.RateSnapshot) ExchangeRatesResponse {
	return ExchangeRatesResponse{
		BaseCurrency: snap.BaseCurrency,
		LastUpdated:  snap.FetchedAt,
		Origin:       string(snap.Origin),
		Rates:        snap.Rates,
	}
}

// ConvertCurrencyRequest defines the payload for a conversion.
type ConvertCurrencyRequest struct {
	From   string          `json:"from" binding:"required,currencycode"`
	To     string          `json:"to" binding:"required,currencycode"`
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// ConversionResponse defines the result of a conversion.
type ConversionResponse struct {
	From            string          `json:"from"`
	To              string          `json:"to"`
	Amount          decimal.Decimal `json:"amount"`
	ConvertedAmount decimal.Decimal `json:"convertedAmount"`
	Rate            decimal.Decimal `json:"rate"`
}

// ToConversionResponse converts a domain.ConversionResult to its DTO.
func ToConversionResponse(r domain.ConversionResult) ConversionResponse {
	return ConversionResponse{
		From:            r.From,
		To:              r.To,
		Amount:          r.Amount,
		ConvertedAmount: r.ConvertedAmount,
		Rate:            r.Rate,
	}
}
