package dates_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sgaviria/finanzapp/internal/utils/dates"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNormalize(t *testing.T) {
	loc, err := time.LoadLocation("America/Bogota")
	assert.NoError(t, err)

	in := time.Date(2025, time.March, 15, 23, 45, 12, 999, loc)
	got := dates.Normalize(in)

	assert.Equal(t, date(2025, time.March, 15), got)
	assert.Equal(t, time.UTC, got.Location())
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 31, dates.DaysInMonth(2025, time.January))
	assert.Equal(t, 28, dates.DaysInMonth(2025, time.February))
	assert.Equal(t, 29, dates.DaysInMonth(2024, time.February)) // leap year
	assert.Equal(t, 30, dates.DaysInMonth(2025, time.April))
}

func TestClampDayToMonth(t *testing.T) {
	assert.Equal(t, 31, dates.ClampDayToMonth(2025, time.January, 31))
	assert.Equal(t, 28, dates.ClampDayToMonth(2025, time.February, 31))
	assert.Equal(t, 29, dates.ClampDayToMonth(2024, time.February, 31))
	assert.Equal(t, 15, dates.ClampDayToMonth(2025, time.February, 15))
	assert.Equal(t, 1, dates.ClampDayToMonth(2025, time.February, 0))
}

func TestLastDayOfMonth(t *testing.T) {
	assert.Equal(t, date(2025, time.February, 28), dates.LastDayOfMonth(2025, time.February))
	assert.Equal(t, date(2024, time.February, 29), dates.LastDayOfMonth(2024, time.February))
	assert.Equal(t, date(2025, time.December, 31), dates.LastDayOfMonth(2025, time.December))
}

func TestNextOccurrenceOfDay(t *testing.T) {
	// Same day counts as the next occurrence.
	assert.Equal(t, date(2025, time.March, 15), dates.NextOccurrenceOfDay(15, date(2025, time.March, 15)))
	// Later in the same month.
	assert.Equal(t, date(2025, time.March, 25), dates.NextOccurrenceOfDay(25, date(2025, time.March, 15)))
	// Already passed: rolls into the next month.
	assert.Equal(t, date(2025, time.April, 10), dates.NextOccurrenceOfDay(10, date(2025, time.March, 15)))
	// Clamped when the next month is shorter.
	assert.Equal(t, date(2025, time.February, 28), dates.NextOccurrenceOfDay(31, date(2025, time.February, 1)))
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 30, dates.DaysBetween(date(2025, time.January, 16), date(2025, time.February, 15)))
	assert.Equal(t, 0, dates.DaysBetween(date(2025, time.March, 1), date(2025, time.March, 1)))
	assert.Equal(t, -5, dates.DaysBetween(date(2025, time.March, 6), date(2025, time.March, 1)))
	// Time components are ignored.
	a := time.Date(2025, time.March, 1, 23, 0, 0, 0, time.UTC)
	b := time.Date(2025, time.March, 2, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, dates.DaysBetween(a, b))
}
