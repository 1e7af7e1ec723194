// Package time contains calendar helpers for selecting the
// date-partitioned indices that cover a query window.
package time

import "time"

// MonthsBefore returns the window [now - months, now] using calendar
// month subtraction in now's location, so a one-month window ending on
// March 31st starts on March 3rd (Go normalizes February 31st) rather
// than exactly 30 days earlier.
func MonthsBefore(now time.Time, months int) (from, to time.Time) {
	return now.AddDate(0, -months, 0), now
}

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Days returns the start of every calendar day touched by the window
// [from, to], in order. to is converted to from's location first.
// If to is before from, Days returns nil.
func Days(from, to time.Time) []time.Time {
	if to.Before(from) {
		return nil
	}
	start := StartOfDay(from)
	end := StartOfDay(to.In(from.Location()))
	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}
