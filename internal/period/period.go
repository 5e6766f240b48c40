// Package period computes the calendar windows used by reports. All values
// are dates: midnight UTC of the calendar day they name.
package period

import (
	"fmt"
	"time"

	"github.com/jinzhu/now"
)

// Range is an inclusive date range.
type Range struct {
	Start time.Time `json:"start_date"`
	End   time.Time `json:"end_date"`
}

// Day truncates t to its calendar date, expressed as midnight UTC. The
// calendar date is read in t's own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the current calendar date.
func Today() time.Time {
	return Day(time.Now())
}

// Month returns the first through last day of the given month.
func Month(year int, month time.Month) (Range, error) {
	if month < time.January || month > time.December {
		return Range{}, fmt.Errorf("month %d out of range", month)
	}
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	cal := now.With(first)
	return Range{Start: Day(cal.BeginningOfMonth()), End: Day(cal.EndOfMonth())}, nil
}

// Year returns January 1st through December 31st of the given year.
func Year(year int) Range {
	cal := now.With(time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC))
	return Range{Start: Day(cal.BeginningOfYear()), End: Day(cal.EndOfYear())}
}

// MonthOf returns the month range containing d.
func MonthOf(d time.Time) Range {
	r, _ := Month(d.Year(), d.Month())
	return r
}

// YearMonth identifies a calendar month bucket.
type YearMonth struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// Of returns the bucket containing d.
func Of(d time.Time) YearMonth {
	return YearMonth{Year: d.Year(), Month: d.Month()}
}

// Before reports whether ym is earlier than other.
func (ym YearMonth) Before(other YearMonth) bool {
	if ym.Year != other.Year {
		return ym.Year < other.Year
	}
	return ym.Month < other.Month
}
