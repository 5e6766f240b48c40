package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMonth(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		month time.Month
		start time.Time
		end   time.Time
	}{
		{"january", 2025, time.January, date(2025, 1, 1), date(2025, 1, 31)},
		{"leap_february", 2024, time.February, date(2024, 2, 1), date(2024, 2, 29)},
		{"plain_february", 2025, time.February, date(2025, 2, 1), date(2025, 2, 28)},
		{"april", 2025, time.April, date(2025, 4, 1), date(2025, 4, 30)},
		{"december_rollover", 2025, time.December, date(2025, 12, 1), date(2025, 12, 31)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Month(tt.year, tt.month)
			require.NoError(t, err)
			assert.True(t, r.Start.Equal(tt.start), "start %s", r.Start)
			assert.True(t, r.End.Equal(tt.end), "end %s", r.End)
		})
	}

	t.Run("invalid_month", func(t *testing.T) {
		_, err := Month(2025, 13)
		assert.Error(t, err)
	})
}

func TestYear(t *testing.T) {
	r := Year(2025)
	assert.True(t, r.Start.Equal(date(2025, 1, 1)))
	assert.True(t, r.End.Equal(date(2025, 12, 31)))
}

func TestDay(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	got := Day(time.Date(2025, 3, 4, 23, 30, 0, 0, loc))
	assert.True(t, got.Equal(date(2025, 3, 4)))
	assert.Equal(t, time.UTC, got.Location())
}

func TestMonthOf(t *testing.T) {
	r := MonthOf(time.Date(2024, time.February, 17, 23, 59, 0, 0, time.UTC))
	assert.Equal(t, date(2024, 2, 1), r.Start)
	assert.Equal(t, date(2024, 2, 29), r.End)
}

func TestYearMonthBefore(t *testing.T) {
	assert.True(t, YearMonth{2024, time.December}.Before(YearMonth{2025, time.January}))
	assert.True(t, YearMonth{2025, time.January}.Before(YearMonth{2025, time.February}))
	assert.False(t, YearMonth{2025, time.March}.Before(YearMonth{2025, time.March}))
}
