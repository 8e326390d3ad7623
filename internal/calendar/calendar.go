// Package calendar implements the working-day arithmetic used when
// propagating dates through a schedule: Saturdays and Sundays are
// skipped, every other day counts.
package calendar

import "time"

// IsWeekend reports whether t falls on a Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// AddBusinessDays advances t by n working days, skipping weekends.
// n <= 0 returns t unchanged. The result never lands on a weekend.
func AddBusinessDays(t time.Time, n int) time.Time {
	for n > 0 {
		t = t.AddDate(0, 0, 1)
		if IsWeekend(t) {
			continue
		}
		n--
	}
	return t
}

// BusinessDaysBetween counts the working days strictly after a and up
// to and including b. Returns 0 when b is not after a.
func BusinessDaysBetween(a, b time.Time) int {
	if !b.After(a) {
		return 0
	}
	count := 0
	for t := a.AddDate(0, 0, 1); !t.After(b); t = t.AddDate(0, 0, 1) {
		if !IsWeekend(t) {
			count++
		}
	}
	return count
}
