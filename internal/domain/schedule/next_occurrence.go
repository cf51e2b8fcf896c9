package schedule

import "time"

// NextOccurrence computes the earliest occurrence of a recurring expense
// strictly after now. When the start date is still in the future it is
// returned unchanged. dayOfMonth, when non-nil, pins month-based
// frequencies to that day, clamped to the length of each target month.
//
// It is a pure function: no state, no errors. Callers must validate the
// frequency and dayOfMonth range at the boundary.
//
// When dayOfMonth is nil, month and year steps use raw calendar
// arithmetic: stepping from Jan 31 by one month normalizes into early
// March because February is shorter. This rollover matches the behavior
// the product has always had and is kept on purpose; clamping here would
// silently change existing payment dates.
func NextOccurrence(start time.Time, freq Frequency, dayOfMonth *int, now time.Time) time.Time {
	if start.After(now) {
		return start
	}

	next := start

	if days := freq.dayStep(); days > 0 {
		for !next.After(now) {
			next = next.AddDate(0, 0, days)
		}
		return next
	}

	months := freq.monthStep()
	years := 0
	if freq == FrequencyAnnual {
		years = 1
	}

	// An unrecognized frequency has no step and would never advance;
	// fall back to a monthly step from now so the loop always terminates.
	if months == 0 && years == 0 {
		return now.AddDate(0, 1, 0)
	}

	for !next.After(now) {
		if dayOfMonth == nil {
			next = next.AddDate(years, months, 0)
			continue
		}
		// Resolve the target month first so a short month cannot
		// overflow, then pin the clamped day of month.
		anchor := time.Date(next.Year()+years, next.Month()+time.Month(months), 1,
			next.Hour(), next.Minute(), next.Second(), next.Nanosecond(), next.Location())
		day := ClampDay(*dayOfMonth, anchor.Year(), anchor.Month())
		next = anchor.AddDate(0, 0, day-1)
	}

	return next
}
