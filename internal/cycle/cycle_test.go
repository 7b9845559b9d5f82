package cycle

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestRange(t *testing.T) {
	t.Run("reference_after_start_day", func(t *testing.T) {
		// Ref: Jan 10, start day 5 -> Jan 5 through Feb 4.
		start, end := Range(date(2024, time.January, 10), 5)

		if got := start.Format("2006-01-02"); got != "2024-01-05" {
			t.Errorf("expected start 2024-01-05, got %s", got)
		}
		if got := end.Format("2006-01-02"); got != "2024-02-04" {
			t.Errorf("expected end 2024-02-04, got %s", got)
		}
	})

	t.Run("reference_before_start_day", func(t *testing.T) {
		// Ref: Jan 2, start day 5 -> Dec 5 through Jan 4.
		start, end := Range(date(2024, time.January, 2), 5)

		if got := start.Format("2006-01-02"); got != "2023-12-05" {
			t.Errorf("expected start 2023-12-05, got %s", got)
		}
		if got := end.Format("2006-01-02"); got != "2024-01-04" {
			t.Errorf("expected end 2024-01-04, got %s", got)
		}
	})

	t.Run("start_day_one_covers_calendar_month", func(t *testing.T) {
		start, end := Range(date(2024, time.February, 15), 1)

		if got := start.Format("2006-01-02"); got != "2024-02-01" {
			t.Errorf("expected start 2024-02-01, got %s", got)
		}
		if got := end.Format("2006-01-02"); got != "2024-02-29" {
			t.Errorf("expected end 2024-02-29, got %s", got)
		}
	})

	t.Run("bounds_are_inclusive", func(t *testing.T) {
		start, end := Range(date(2024, time.March, 20), 5)

		if start.Hour() != 0 || start.Minute() != 0 || start.Second() != 0 {
			t.Errorf("expected start at midnight, got %v", start)
		}
		if end.Hour() != 23 || end.Minute() != 59 || end.Second() != 59 {
			t.Errorf("expected end at end of day, got %v", end)
		}
	})

	t.Run("start_day_overflows_short_month", func(t *testing.T) {
		// Start day 31 anchored in April normalizes to May 1.
		start, _ := Range(date(2024, time.May, 15), 31)

		if got := start.Format("2006-01-02"); got != "2024-05-01" {
			t.Errorf("expected start 2024-05-01, got %s", got)
		}
	})

	t.Run("out_of_range_start_day_clamped", func(t *testing.T) {
		start, _ := Range(date(2024, time.June, 15), 0)
		if got := start.Format("2006-01-02"); got != "2024-06-01" {
			t.Errorf("expected start 2024-06-01, got %s", got)
		}
	})

	t.Run("reference_inside_own_cycle", func(t *testing.T) {
		for day := 1; day <= 28; day++ {
			ref := date(2024, time.July, day)
			start, end := Range(ref, 10)
			if ref.Before(start) || ref.After(end) {
				t.Errorf("reference %v outside its own cycle [%v, %v]", ref, start, end)
			}
		}
	})
}
