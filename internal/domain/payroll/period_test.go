package payroll

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePeriodBounds(t *testing.T) {
	start, end, err := ResolvePeriod("2026-07")
	require.NoError(t, err)

	assert.True(t, start.Equal(time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, end.Equal(time.Date(2026, time.July, 31, 23, 59, 59, 999999999, time.UTC)))
}

func TestResolvePeriodFebruaryLeapYear(t *testing.T) {
	_, end, err := ResolvePeriod("2024-02")
	require.NoError(t, err)

	assert.Equal(t, 29, end.Day())

	_, end, err = ResolvePeriod("2026-02")
	require.NoError(t, err)

	assert.Equal(t, 28, end.Day())
}

func TestResolvePeriodInvalidFormat(t *testing.T) {
	invalid := []string{
		"",
		"2026",
		"2026-7",
		"2026-13",
		"2026-00",
		"07-2026",
		"2026/07",
		"2026-07-01",
		"july 2026",
		" 2026-07",
	}

	for _, period := range invalid {
		_, _, err := ResolvePeriod(period)
		assert.ErrorIs(t, err, ErrInvalidPeriodFormat, "period %q", period)
	}
}
