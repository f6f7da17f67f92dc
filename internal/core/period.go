package core

import "time"

// Window is a closed date interval [Start, End].
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window, bounds included.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// CurrentWeekWindow returns the Monday-to-Sunday week containing now:
// Monday 00:00:00 through the last nanosecond of Sunday.
func CurrentWeekWindow(now time.Time) Window {
	// time.Weekday numbers Sunday as 0; shift so Monday is day 0.
	offset := (int(now.Weekday()) + 6) % 7
	y, m, d := now.AddDate(0, 0, -offset).Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 0, 7).Add(-time.Nanosecond)
	return Window{Start: start, End: end}
}

// CurrentMonthWindow returns the first through last instant of the calendar
// month containing now.
func CurrentMonthWindow(now time.Time) Window {
	y, m, _ := now.Date()
	start := time.Date(y, m, 1, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return Window{Start: start, End: end}
}

// WithinNextNDays reports whether date falls in the closed interval
// [now, now + n days]. A date exactly n days out is included.
func WithinNextNDays(date, now time.Time, n int) bool {
	return Window{Start: now, End: now.AddDate(0, 0, n)}.Contains(date)
}
