package core

import (
	"testing"
	"time"
)

func TestCurrentWeekWindow(t *testing.T) {
	tests := []struct {
		name      string
		now       time.Time
		wantStart time.Time
	}{
		{
			name:      "mid-week Wednesday",
			now:       time.Date(2024, 3, 13, 15, 30, 0, 0, time.UTC), // Wednesday
			wantStart: time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC),   // Monday
		},
		{
			name:      "Monday is its own week start",
			now:       time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC),
			wantStart: time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "Sunday belongs to the week started the previous Monday",
			now:       time.Date(2024, 3, 17, 23, 0, 0, 0, time.UTC),
			wantStart: time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := CurrentWeekWindow(tt.now)
			if !w.Start.Equal(tt.wantStart) {
				t.Errorf("Start = %v, want %v", w.Start, tt.wantStart)
			}
			wantEnd := tt.wantStart.AddDate(0, 0, 7).Add(-time.Nanosecond)
			if !w.End.Equal(wantEnd) {
				t.Errorf("End = %v, want %v", w.End, wantEnd)
			}
			if !w.Contains(tt.now) {
				t.Errorf("window %v does not contain now %v", w, tt.now)
			}
		})
	}
}

func TestCurrentMonthWindow(t *testing.T) {
	now := time.Date(2024, 2, 14, 9, 0, 0, 0, time.UTC)
	w := CurrentMonthWindow(now)

	if !w.Start.Equal(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Start = %v", w.Start)
	}
	if !w.Contains(time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC)) {
		t.Error("leap day should be inside the February window")
	}
	if w.Contains(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("March 1 should be outside the February window")
	}
	if w.Contains(time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC)) {
		t.Error("January 31 should be outside the February window")
	}
}

func TestWithinNextNDays(t *testing.T) {
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		date time.Time
		n    int
		want bool
	}{
		{"today is included", now, 7, true},
		{"exactly n days out is included", now.AddDate(0, 0, 7), 7, true},
		{"n+1 days out is excluded", now.AddDate(0, 0, 8), 7, false},
		{"yesterday is excluded", now.AddDate(0, 0, -1), 7, false},
		{"thirty day horizon", now.AddDate(0, 0, 30), 30, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WithinNextNDays(tt.date, now, tt.n); got != tt.want {
				t.Errorf("WithinNextNDays(%v, now, %d) = %v, want %v", tt.date, tt.n, got, tt.want)
			}
		})
	}
}
