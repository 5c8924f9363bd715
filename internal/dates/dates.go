package dates

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// ErrInvalidDate is returned when a date string cannot be parsed.
var ErrInvalidDate = errors.New("invalid date")

const layoutISODate = "2006-01-02"

// AddDays adds n calendar days to t, keeping the wall-clock time of t.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// DiffDays returns the whole-day difference a - b, rounded half-up.
// A difference of exactly -0.5 days yields 0 and +0.5 yields 1.
func DiffDays(a, b time.Time) int {
	days := a.Sub(b).Hours() / 24
	return int(math.Floor(days + 0.5))
}

// ParseLocalDate parses a YYYY-MM-DD string as midnight in loc.
// A nil loc means time.Local.
func ParseLocalDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	s = strings.TrimSpace(s)
	t, err := time.ParseInLocation(layoutISODate, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Format renders t as YYYY-MM-DD.
func Format(t time.Time) string {
	return t.Format(layoutISODate)
}
