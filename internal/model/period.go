package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/every-penny/internal/common"
)

// Period is the recurrence of a budget window.
type Period string

// Supported budget periods.
const (
	PeriodDaily   Period = "DAILY"
	PeriodWeekly  Period = "WEEKLY"
	PeriodMonthly Period = "MONTHLY"
	PeriodYearly  Period = "YEARLY"
)

// ParsePeriod converts a string into a Period, case-insensitively.
func ParsePeriod(s string) (Period, error) {
	p := Period(strings.ToUpper(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("unknown period %q: %w", s, common.ErrInvalidInput)
	}
	return p, nil
}

// Valid reports whether p is one of the supported periods.
func (p Period) Valid() bool {
	switch p {
	case PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodYearly:
		return true
	}
	return false
}

// PeriodWindow computes the half-open window [from, to) containing ref
// for a budget anchored at start. Windows recur from start, not from
// the epoch: daily every day, weekly every 7 days, monthly anchored to
// start's day-of-month (clamped to shorter months), yearly anchored to
// start's month and day (Feb 29 clamps to Feb 28). All arithmetic is in
// UTC and preserves start's time-of-day. When ref precedes start, the
// budget's first window is returned.
func PeriodWindow(period Period, start, ref time.Time) (time.Time, time.Time) {
	start = start.UTC()
	ref = ref.UTC()

	if ref.Before(start) {
		ref = start
	}

	switch period {
	case PeriodDaily:
		n := daysBetween(start, ref)
		return start.AddDate(0, 0, n), start.AddDate(0, 0, n+1)
	case PeriodWeekly:
		n := daysBetween(start, ref) / 7
		return start.AddDate(0, 0, n*7), start.AddDate(0, 0, (n+1)*7)
	case PeriodMonthly:
		n := (ref.Year()-start.Year())*12 + int(ref.Month()) - int(start.Month())
		from := addMonthsClamped(start, n)
		if ref.Before(from) {
			n--
			from = addMonthsClamped(start, n)
		}
		return from, addMonthsClamped(start, n+1)
	case PeriodYearly:
		n := ref.Year() - start.Year()
		from := addYearsClamped(start, n)
		if ref.Before(from) {
			n--
			from = addYearsClamped(start, n)
		}
		return from, addYearsClamped(start, n+1)
	default:
		// Callers validate the period first; fall back to a single window.
		return start, start
	}
}

// daysBetween returns the number of whole anchor-aligned days from a to b.
// Requires b >= a.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a) / (24 * time.Hour))
}

// addMonthsClamped adds months to t, clamping the day-of-month when the
// target month is shorter than t's anchor day. time.AddDate is not used
// because it normalizes Jan 31 + 1 month to Mar 3.
func addMonthsClamped(t time.Time, months int) time.Time {
	total := int(t.Month()) - 1 + months
	year := t.Year() + total/12
	month := time.Month(total%12 + 1)
	if total < 0 && total%12 != 0 {
		year--
		month += 12
	}

	day := t.Day()
	if max := daysInMonth(year, month); day > max {
		day = max
	}

	hour, minute, sec := t.Clock()
	return time.Date(year, month, day, hour, minute, sec, t.Nanosecond(), time.UTC)
}

// addYearsClamped adds years to t, clamping Feb 29 to Feb 28 in
// non-leap years.
func addYearsClamped(t time.Time, years int) time.Time {
	year := t.Year() + years
	day := t.Day()
	if max := daysInMonth(year, t.Month()); day > max {
		day = max
	}

	hour, minute, sec := t.Clock()
	return time.Date(year, t.Month(), day, hour, minute, sec, t.Nanosecond(), time.UTC)
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
