package rates_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/sgaviria/finanzapp/internal/utils/rates"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestNormalizeAnnualRate(t *testing.T) {
	// Percentage and unit-fraction forms of the same rate normalize to the
	// same value.
	asPercent := rates.NormalizeAnnualRate(dec("18"))
	asUnit := rates.NormalizeAnnualRate(dec("0.18"))
	assert.True(t, asPercent.Equal(asUnit), "18 and 0.18 must normalize equally, got %s vs %s", asPercent, asUnit)
	assert.True(t, asUnit.Equal(dec("0.18")))

	// Exactly 1 is treated as a unit fraction (100% annual).
	assert.True(t, rates.NormalizeAnnualRate(dec("1")).Equal(dec("1")))
	// Just above 1 flips to the percentage reading.
	assert.True(t, rates.NormalizeAnnualRate(dec("1.5")).Equal(dec("0.015")))

	assert.True(t, rates.NormalizeAnnualRate(dec("36")).Equal(dec("0.36")))
	assert.True(t, rates.NormalizeAnnualRate(decimal.Zero).Equal(decimal.Zero))
}

func TestMonthlyRateFromAnnualEffective(t *testing.T) {
	assert.True(t, rates.MonthlyRateFromAnnualEffective(dec("0.36")).Equal(dec("0.03")))
	assert.True(t, rates.MonthlyRateFromAnnualEffective(dec("0.18")).Equal(dec("0.015")))
}

func TestDailyRateFromAnnual(t *testing.T) {
	// 0.36 / 365 rounded to twelve places.
	assert.True(t, rates.DailyRateFromAnnual(dec("0.36")).Equal(dec("0.000986301370")))
	assert.True(t, rates.DailyRateFromAnnual(decimal.Zero).Equal(decimal.Zero))
}
