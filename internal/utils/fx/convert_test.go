package fx_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spems-app/spems_backend/internal/apperrors"
	"github.com/spems-app/spems_backend/internal/utils/fx"
)

func usdTable() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		"USD": decimal.NewFromInt(1),
		"EUR": decimal.RequireFromString("0.85"),
		"GBP": decimal.RequireFromString("0.73"),
	}
}

func TestConvertViaBase_PivotThroughBase(t *testing.T) {
	// 100 EUR -> USD -> GBP: 100/0.85*0.73 = 85.882...
	got, err := fx.ConvertViaBase(usdTable(), "USD", "EUR", "GBP", decimal.NewFromInt(100))
	require.NoError(t, err)
	assert.Equal(t, "85.88", got.Round(2).StringFixed(2))
}

func TestConvertViaBase_FromBase(t *testing.T) {
	got, err := fx.ConvertViaBase(usdTable(), "USD", "USD", "EUR", decimal.NewFromInt(10))
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.RequireFromString("8.5")), "got %s", got)
}

func TestConvertViaBase_ToBase(t *testing.T) {
	got, err := fx.ConvertViaBase(usdTable(), "USD", "GBP", "USD", decimal.NewFromInt(73))
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(100)), "got %s", got)
}

func TestConvertViaBase_MissingRateIsError(t *testing.T) {
	_, err := fx.ConvertViaBase(usdTable(), "USD", "ZZZ", "EUR", decimal.NewFromInt(5))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrRateUnavailable)

	_, err = fx.ConvertViaBase(usdTable(), "USD", "EUR", "ZZZ", decimal.NewFromInt(5))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrRateUnavailable)
}

func TestConvertViaBase_ZeroRateIsError(t *testing.T) {
	rates := usdTable()
	rates["XAU"] = decimal.Zero
	_, err := fx.ConvertViaBase(rates, "USD", "XAU", "USD", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, apperrors.ErrRateUnavailable)
}

func TestRebase(t *testing.T) {
	rebased, err := fx.Rebase(usdTable(), "USD", "EUR")
	require.NoError(t, err)

	// 1 EUR = 1/0.85 USD
	usd := rebased["USD"]
	assert.Equal(t, "1.1765", usd.Round(4).StringFixed(4))

	// 1 EUR = 0.73/0.85 GBP
	gbp := rebased["GBP"]
	assert.Equal(t, "0.8588", gbp.Round(4).StringFixed(4))

	_, hasSelf := rebased["EUR"]
	assert.False(t, hasSelf, "rebased table should not contain its own base")
}

func TestRebase_SameBaseCopies(t *testing.T) {
	src := usdTable()
	rebased, err := fx.Rebase(src, "USD", "USD")
	require.NoError(t, err)
	require.Len(t, rebased, len(src))

	rebased["EUR"] = decimal.Zero
	assert.False(t, src["EUR"].IsZero(), "rebase must not alias the source table")
}

func TestRebase_UnknownBase(t *testing.T) {
	_, err := fx.Rebase(usdTable(), "USD", "ZZZ")
	assert.ErrorIs(t, err, apperrors.ErrRateUnavailable)
}
