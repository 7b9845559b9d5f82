// Package cycle computes the recurring budgeting window a date falls into.
//
// A cycle is a user-configurable monthly window anchored on a start day,
// e.g. with start day 5 the cycle containing Jan 10 runs Jan 5 through
// Feb 4. Cycles group transactions for budgeting and reporting; the
// ledger itself never depends on them.
package cycle

import "time"

// Range returns the inclusive [start, end] window that contains ref for
// the given start day (1-31). Start days past the end of a month roll
// over into the next month via time.Date normalization, so a start day
// of 31 in April anchors on May 1.
func Range(ref time.Time, startDay int) (start, end time.Time) {
	if startDay < 1 {
		startDay = 1
	}
	if startDay > 31 {
		startDay = 31
	}

	year, month, day := ref.Date()
	loc := ref.Location()

	// A reference day on or after the start day belongs to the cycle that
	// began this month; otherwise to the one that began last month.
	if day >= startDay {
		start = time.Date(year, month, startDay, 0, 0, 0, 0, loc)
		end = time.Date(year, month+1, startDay-1, 23, 59, 59, 999999999, loc)
	} else {
		start = time.Date(year, month-1, startDay, 0, 0, 0, 0, loc)
		end = time.Date(year, month, startDay-1, 23, 59, 59, 999999999, loc)
	}

	return start, end
}
