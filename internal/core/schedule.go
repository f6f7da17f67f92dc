package core

import "time"

// NextOccurrence returns the first scheduled payment date on or after now,
// starting from start and stepping by freq. If start is already on or after
// now it is returned unchanged.
//
// Month, quarter and year steps are calendar-aware: when the original
// day-of-month does not exist in the target month the date clamps to that
// month's last day (Jan 31 + 1 month = Feb 29 in a leap year, Feb 28
// otherwise). Every step is strictly positive, so the loop terminates.
func NextOccurrence(start Date, freq Frequency, now time.Time) Date {
	candidate := start.Time
	for candidate.Before(now) {
		candidate = step(candidate, freq)
	}
	return Date{Time: candidate}
}

// Advance returns the occurrence one period after d.
func Advance(d Date, freq Frequency) Date {
	return Date{Time: step(d.Time, freq)}
}

func step(t time.Time, freq Frequency) time.Time {
	switch freq {
	case Weekly:
		return t.AddDate(0, 0, 7)
	case Biweekly:
		return t.AddDate(0, 0, 14)
	case Monthly:
		return addMonthsClamped(t, 1)
	case Quarterly:
		return addMonthsClamped(t, 3)
	case Yearly:
		return addMonthsClamped(t, 12)
	default:
		// Unknown frequencies are treated as monthly so the loop still
		// terminates; validation upstream keeps this branch unreachable.
		return addMonthsClamped(t, 1)
	}
}

// addMonthsClamped adds months to t, clamping the day-of-month to the last
// valid day of the target month. time.Time.AddDate normalizes overflow
// (Jan 31 + 1 month = Mar 2/3) which is exactly the behavior to avoid.
func addMonthsClamped(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	firstOfTarget := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	if last := daysInMonth(firstOfTarget.Year(), firstOfTarget.Month()); d > last {
		d = last
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), d,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// daysInMonth returns the number of days in the given month.
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
