package payroll

import (
	"regexp"
	"time"
)

var periodRegex = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// ResolvePeriod parses a "YYYY-MM" period key into the inclusive bounds of
// that calendar month in UTC: the first instant of the month and the last
// instant before the next month starts.
func ResolvePeriod(period string) (time.Time, time.Time, error) {
	if !periodRegex.MatchString(period) {
		return time.Time{}, time.Time{}, ErrInvalidPeriodFormat
	}

	t, err := time.Parse("2006-01", period)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidPeriodFormat
	}

	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end, nil
}
