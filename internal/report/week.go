// Package report holds the pure period and predicate logic behind the report views.
package report

import (
	"fmt"
	"time"
)

// DateLayout ISO calendar date used by every stored record.
const DateLayout = "2006-01-02"

// MonthLayout year-month selector.
const MonthLayout = "2006-01"

// WeekRange returns the Monday and Sunday bounding the week that contains d.
// Sunday counts as the seventh day of the week that started six days earlier.
func WeekRange(d time.Time) (start, end string) {
	day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)

	offset := int(day.Weekday()) - 1
	if day.Weekday() == time.Sunday {
		offset = 6
	}

	monday := day.AddDate(0, 0, -offset)
	sunday := monday.AddDate(0, 0, 6)
	return monday.Format(DateLayout), sunday.Format(DateLayout)
}

// WeekRangeOf is WeekRange for a YYYY-MM-DD string. An empty date yields empty bounds.
func WeekRangeOf(date string) (start, end string, err error) {
	if date == "" {
		return "", "", nil
	}
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return "", "", fmt.Errorf("invalid date %q: %w", date, err)
	}
	start, end = WeekRange(d)
	return start, end, nil
}
