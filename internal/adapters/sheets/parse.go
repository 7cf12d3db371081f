package sheets

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sgaviria/finanzapp/internal/utils/dates"
)

// Cell readers. Sheets rows come back as []interface{} and trailing blank
// cells are simply absent, so every reader tolerates a short row and a blank
// cell by returning the zero value. A non-blank cell that cannot be parsed is
// an error: a corrupt number must not silently become zero.

func cellString(row []interface{}, idx int) string {
	if idx >= len(row) || row[idx] == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(row[idx]))
}

func cellDecimal(row []interface{}, idx int) (decimal.Decimal, error) {
	raw := cellString(row, idx)
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("column %s: invalid number %q", columnLetter(idx), raw)
	}
	return d, nil
}

func cellInt(row []interface{}, idx int) (int, error) {
	raw := cellString(row, idx)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("column %s: invalid integer %q", columnLetter(idx), raw)
	}
	return n, nil
}

func cellBool(row []interface{}, idx int) (bool, error) {
	raw := cellString(row, idx)
	if raw == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(strings.ToLower(raw))
	if err != nil {
		return false, fmt.Errorf("column %s: invalid boolean %q", columnLetter(idx), raw)
	}
	return b, nil
}

// cellDate parses a date-only cell (YYYY-MM-DD), normalized to midnight UTC.
func cellDate(row []interface{}, idx int) (time.Time, error) {
	raw := cellString(row, idx)
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("column %s: invalid date %q", columnLetter(idx), raw)
	}
	return dates.Normalize(t), nil
}

// cellTime parses an RFC3339 timestamp cell.
func cellTime(row []interface{}, idx int) (time.Time, error) {
	raw := cellString(row, idx)
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("column %s: invalid timestamp %q", columnLetter(idx), raw)
	}
	return t, nil
}

// Cell writers: everything is stored as a plain string so the sheet never
// reinterprets values as locale-dependent numbers or dates.

func dateCell(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.DateOnly)
}

func timeCell(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
