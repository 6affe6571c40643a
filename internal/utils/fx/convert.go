package fx

import (
	"fmt"

	"github.com/spems-app/spems_backend/internal/apperrors"
	"github.com/shopspring/decimal"
)

// ConvertViaBase converts amount from one currency to another by pivoting
// through the base currency the rate table is anchored to (rate = units of
// target per 1 unit of base). The base itself carries an implicit rate of 1.
//
// A missing or zero rate is an error, never a silent 1.0 default: dividing
// by a defaulted rate would produce a plausible-looking wrong number.
func ConvertViaBase(rates map[string]decimal.Decimal, baseCode, from, to string, amount decimal.Decimal) (decimal.Decimal, error) {
	baseAmount := amount
	if from != baseCode {
		fromRate, ok := rates[from]
		if !ok || fromRate.IsZero() {
			return decimal.Zero, fmt.Errorf("%w: %s", apperrors.ErrRateUnavailable, from)
		}
		baseAmount = amount.Div(fromRate)
	}

	if to == baseCode {
		return baseAmount, nil
	}

	toRate, ok := rates[to]
	if !ok || toRate.IsZero() {
		return decimal.Zero, fmt.Errorf("%w: %s", apperrors.ErrRateUnavailable, to)
	}
	return baseAmount.Mul(toRate), nil
}

// Rebase re-expresses a rate table anchored at baseCode against newBase.
// Every entry becomes rate(code)/rate(newBase); the old base appears in the
// result with rate 1/rate(newBase).
func Rebase(rates map[string]decimal.Decimal, baseCode, newBase string) (map[string]decimal.Decimal, error) {
	if newBase == baseCode {
		out := make(map[string]decimal.Decimal, len(rates))
		for code, r := range rates {
			out[code] = r
		}
		return out, nil
	}

	pivot, ok := rates[newBase]
	if !ok || pivot.IsZero() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrRateUnavailable, newBase)
	}

	out := make(map[string]decimal.Decimal, len(rates)+1)
	for code, r := range rates {
		if code == newBase {
			continue
		}
		out[code] = r.Div(pivot)
	}
	out[baseCode] = decimal.NewFromInt(1).Div(pivot)
	return out, nil
}
