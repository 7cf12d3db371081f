package dates

import "time"

// Normalize strips the time component, returning midnight UTC of the same
// calendar date. All engine date arithmetic goes through normalized dates to
// avoid daylight-saving and timezone drift.
func Normalize(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysInMonth returns the number of calendar days in the given month.
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ClampDayToMonth maps a configured day-of-month onto a specific month that
// may have fewer days. The result is always within [1, DaysInMonth].
func ClampDayToMonth(year int, month time.Month, day int) int {
	if day < 1 {
		return 1
	}
	if max := DaysInMonth(year, month); day > max {
		return max
	}
	return day
}

// DateInMonth builds the normalized date for the given day-of-month, clamped
// to the month's length.
func DateInMonth(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, ClampDayToMonth(year, month, day), 0, 0, 0, 0, time.UTC)
}

// LastDayOfMonth returns the normalized last calendar day of the given month.
func LastDayOfMonth(year int, month time.Month) time.Time {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
}

// NextOccurrenceOfDay returns the next calendar date, at or after from, whose
// day-of-month equals day (clamped to each candidate month's length).
func NextOccurrenceOfDay(day int, from time.Time) time.Time {
	from = Normalize(from)
	candidate := DateInMonth(from.Year(), from.Month(), day)
	if candidate.Before(from) {
		next := from.AddDate(0, 1, -from.Day()+1) // first day of next month
		candidate = DateInMonth(next.Year(), next.Month(), day)
	}
	return candidate
}

// DaysBetween returns the whole-day count b - a using date-only arithmetic.
// The result is negative when b precedes a.
func DaysBetween(a, b time.Time) int {
	a = Normalize(a)
	b = Normalize(b)
	return int(b.Sub(a).Hours() / 24)
}
