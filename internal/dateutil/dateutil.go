// Package dateutil provides canonical YYYY-MM-DD date handling for the
// reservation system.  All dates are derived from local calendar fields,
// never from a UTC serialization: formatting through UTC shifts the day
// near midnight in non-UTC timezones and corrupts the lock policy.
package dateutil

import "time"

// Layout is the canonical calendar-date format used throughout the
// application and as the `date` column value in the reservations table.
const Layout = "2006-01-02"

// ToYMD formats a moment as YYYY-MM-DD using its own location's calendar
// fields.  Zero padding keeps the output lexicographically monotonic with
// calendar order, which is what IsPast relies on.
func ToYMD(t time.Time) string {
	return t.Format(Layout)
}

// Today returns the current date in the local timezone.
func Today() string {
	return ToYMD(time.Now())
}

// IsPast reports whether ymd falls strictly before today (local).  A plain
// string comparison is correct because the format is zero-padded.
func IsPast(ymd string) bool {
	return ymd < Today()
}

// IsTodayOrFuture is the exact complement of IsPast.
func IsTodayOrFuture(ymd string) bool {
	return !IsPast(ymd)
}

// Valid reports whether ymd is a well-formed canonical date.  Parsing and
// re-formatting catches both syntax errors and out-of-range components
// such as 2026-02-30.
func Valid(ymd string) bool {
	t, err := time.Parse(Layout, ymd)
	if err != nil {
		return false
	}
	return t.Format(Layout) == ymd
}
