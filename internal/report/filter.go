package report

import (
	"fmt"
	"strings"
	"time"

	pkgerrors "pptq-absensi/pkg/errors"
)

// Period report granularity.
type Period string

const (
	PeriodDaily   Period = "harian"
	PeriodWeekly  Period = "mingguan"
	PeriodMonthly Period = "bulanan"
)

// ParsePeriod accepts the stored names and their English aliases; empty means daily.
func ParsePeriod(s string) (Period, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "harian", "daily":
		return PeriodDaily, nil
	case "mingguan", "weekly":
		return PeriodWeekly, nil
	case "bulanan", "monthly":
		return PeriodMonthly, nil
	}
	return "", fmt.Errorf("%w: unknown period %q", pkgerrors.ErrValidation, s)
}

// Record is anything a report lists.
type Record interface {
	RecordDate() string
	RecordClass() string
	RecordStudent() string
}

// StatusRecord a record that also carries a status. Records without one
// are not constrained by Query.Status.
type StatusRecord interface {
	Record
	RecordStatus() string
}

// Query the filter values of one report view. Empty fields do not constrain.
type Query struct {
	Period Period
	Date   string // YYYY-MM-DD, daily and weekly
	Month  string // YYYY-MM, monthly
	Class  string
	Status string
	Search string
}

// Validate checks the date selectors are well formed.
func (q Query) Validate() error {
	if q.Date != "" {
		if _, err := time.Parse(DateLayout, q.Date); err != nil {
			return fmt.Errorf("%w: date must be YYYY-MM-DD", pkgerrors.ErrValidation)
		}
	}
	if q.Month != "" {
		if _, err := time.Parse(MonthLayout, q.Month); err != nil {
			return fmt.Errorf("%w: month must be YYYY-MM", pkgerrors.ErrValidation)
		}
	}
	switch q.Period {
	case "", PeriodDaily, PeriodWeekly, PeriodMonthly:
	default:
		return fmt.Errorf("%w: unknown period %q", pkgerrors.ErrValidation, q.Period)
	}
	return nil
}

// WeekLabel "start s/d end" for a weekly query, empty otherwise.
func (q Query) WeekLabel() string {
	if q.Period != PeriodWeekly || q.Date == "" {
		return ""
	}
	start, end, err := WeekRangeOf(q.Date)
	if err != nil {
		return ""
	}
	return start + " s/d " + end
}

// dateMatcher resolves the period selector once.
func (q Query) dateMatcher() func(string) bool {
	switch q.Period {
	case PeriodWeekly:
		if q.Date == "" {
			return func(string) bool { return true }
		}
		start, end, err := WeekRangeOf(q.Date)
		if err != nil {
			return func(string) bool { return false }
		}
		return func(d string) bool { return d >= start && d <= end }
	case PeriodMonthly:
		if q.Month == "" {
			return func(string) bool { return true }
		}
		prefix := q.Month
		return func(d string) bool { return strings.HasPrefix(d, prefix) }
	case PeriodDaily, "":
		if q.Date == "" {
			return func(string) bool { return true }
		}
		date := q.Date
		return func(d string) bool { return d == date }
	}
	return func(string) bool { return false }
}

// MatchDate reports whether a record date falls in the selected period.
func (q Query) MatchDate(date string) bool {
	return q.dateMatcher()(date)
}

func (q Query) predicate() func(Record) bool {
	dateOK := q.dateMatcher()
	search := strings.ToLower(q.Search)

	return func(r Record) bool {
		if !dateOK(r.RecordDate()) {
			return false
		}
		if q.Class != "" && r.RecordClass() != q.Class {
			return false
		}
		if q.Status != "" {
			if sr, ok := r.(StatusRecord); ok && sr.RecordStatus() != q.Status {
				return false
			}
		}
		if search != "" && !strings.Contains(strings.ToLower(r.RecordStudent()), search) {
			return false
		}
		return true
	}
}

// Match evaluates every active predicate against r.
func (q Query) Match(r Record) bool {
	return q.predicate()(r)
}

// Apply returns the matching records in their original order.
func Apply[T Record](items []T, q Query) []T {
	match := q.predicate()
	out := make([]T, 0, len(items))
	for _, it := range items {
		if match(it) {
			out = append(out, it)
		}
	}
	return out
}
