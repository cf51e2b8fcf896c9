// Package schedule provides pure calendar and recurrence calculations.
package schedule

import "time"

// DaysInMonth returns the number of days in the given month, accounting
// for leap years.
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of the next month normalizes to the last day of this month.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ClampDay returns day limited to the number of days in the given month.
func ClampDay(day int, year int, month time.Month) int {
	if max := DaysInMonth(year, month); day > max {
		return max
	}
	return day
}
