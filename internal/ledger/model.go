// Package ledger records clock-in/clock-out intervals per tenant, partitioned
// by month and day. Punch times are rounded to the tenant's quantum before
// anything is keyed or stored, so an event rounded across midnight is filed
// under the next day.
package ledger

import (
	"time"

	"timeitin-backend/internal/apperr"
)

const (
	MonthKeyLayout = "01-2006"    // MM-YYYY
	DayKeyLayout   = "02-01-2006" // DD-MM-YYYY
)

// MonthKey and DayKey are the ledger partition keys. They are always derived
// from a rounded timestamp through the constructors below, never assembled
// from raw strings.
type MonthKey string

type DayKey string

func MonthKeyFor(t time.Time) MonthKey { return MonthKey(t.UTC().Format(MonthKeyLayout)) }

func DayKeyFor(t time.Time) DayKey { return DayKey(t.UTC().Format(DayKeyLayout)) }

func ParseMonthKey(s string) (MonthKey, error) {
	if _, err := time.ParseInLocation(MonthKeyLayout, s, time.UTC); err != nil {
		return "", apperr.Invalid("month must be MM-YYYY")
	}
	return MonthKey(s), nil
}

func ParseDayKey(s string) (DayKey, error) {
	if _, err := time.ParseInLocation(DayKeyLayout, s, time.UTC); err != nil {
		return "", apperr.Invalid("date must be DD-MM-YYYY")
	}
	return DayKey(s), nil
}

// Month returns the month partition the day belongs to.
func (d DayKey) Month() MonthKey {
	t, err := time.ParseInLocation(DayKeyLayout, string(d), time.UTC)
	if err != nil {
		return ""
	}
	return MonthKeyFor(t)
}

// ClockInterval is one employee's shift for one day. EndTime nil means the
// shift is still open; when set it is strictly after StartTime.
type ClockInterval struct {
	EmployeeID string
	StartTime  time.Time
	EndTime    *time.Time
}

// Open reports whether the interval has a start but no end yet.
func (ci ClockInterval) Open() bool { return ci.EndTime == nil }

// RoundPunchTime snaps t to the nearest multiple of quantum minutes within
// the hour, rounding the minutes component half-up and truncating seconds.
// Sixty rounded minutes roll into the next hour (and possibly the next day).
// Rounding an already-rounded time is a no-op.
func RoundPunchTime(t time.Time, quantumMinutes int) time.Time {
	t = t.UTC()
	m := t.Minute()
	rounded := ((2*m + quantumMinutes) / (2 * quantumMinutes)) * quantumMinutes
	hour := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, time.UTC)
	return hour.Add(time.Duration(rounded) * time.Minute)
}
