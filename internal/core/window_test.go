package core

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWindowFor(t *testing.T) {
	day := date(2026, time.March, 14)

	tests := []struct {
		name string
		hour int
		want ReportWindow
	}{
		{
			name: "hour 0 reaches into the previous day",
			hour: 0,
			want: ReportWindow{
				Start: time.Date(2026, time.March, 13, 23, 0, 0, 0, time.UTC),
				End:   time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC),
				Name:  "hourly-perf-report-2026-03-14-2300-0000",
			},
		},
		{
			name: "hour 1",
			hour: 1,
			want: ReportWindow{
				Start: time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC),
				End:   time.Date(2026, time.March, 14, 1, 0, 0, 0, time.UTC),
				Name:  "hourly-perf-report-2026-03-14-0000-0100",
			},
		},
		{
			name: "single-digit hours are zero padded",
			hour: 9,
			want: ReportWindow{
				Start: time.Date(2026, time.March, 14, 8, 0, 0, 0, time.UTC),
				End:   time.Date(2026, time.March, 14, 9, 0, 0, 0, time.UTC),
				Name:  "hourly-perf-report-2026-03-14-0800-0900",
			},
		},
		{
			name: "hour 23 is the last slot of the day",
			hour: 23,
			want: ReportWindow{
				Start: time.Date(2026, time.March, 14, 22, 0, 0, 0, time.UTC),
				End:   time.Date(2026, time.March, 14, 23, 0, 0, 0, time.UTC),
				Name:  "hourly-perf-report-2026-03-14-2200-2300",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WindowFor(day, tt.hour, "hourly-perf-report")
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("WindowFor() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWindowFor_NonMidnightDayArgument(t *testing.T) {
	// only the calendar date of the day argument matters
	noon := time.Date(2026, time.March, 14, 12, 34, 56, 0, time.UTC)
	if diff := cmp.Diff(WindowFor(date(2026, time.March, 14), 5, "p"), WindowFor(noon, 5, "p")); diff != "" {
		t.Errorf("WindowFor() should ignore the time of day (-midnight +noon):\n%s", diff)
	}
}

func TestDayWindows_TileTheDay(t *testing.T) {
	days := []time.Time{
		date(2026, time.March, 14),
		date(2026, time.January, 1),  // year boundary behind slot 0
		date(2024, time.February, 29), // leap day
	}

	for _, day := range days {
		windows := DayWindows(day, "p")
		if len(windows) != HoursPerDay {
			t.Fatalf("DayWindows(%s) returned %d windows, want %d", day, len(windows), HoursPerDay)
		}
		for h, w := range windows {
			if got := w.End.Sub(w.Start); got != time.Hour {
				t.Errorf("window %d of %s spans %s, want 1h", h, day, got)
			}
			if h == 0 {
				continue
			}
			if !windows[h-1].End.Equal(w.Start) {
				t.Errorf("gap between window %d and %d of %s: %s != %s",
					h-1, h, day, windows[h-1].End, w.Start)
			}
		}
	}
}

func TestDayWindows_Hour0ContinuesPreviousDay(t *testing.T) {
	day := date(2026, time.March, 14)
	prev := date(2026, time.March, 13)

	// slot 0 of day starts exactly where slot 23 of the previous day ended
	if got, want := DayWindows(day, "p")[0].Start, DayWindows(prev, "p")[23].End; !got.Equal(want) {
		t.Errorf("day rollover mismatch: %s != %s", got, want)
	}
}

func TestToken_Stale(t *testing.T) {
	issued := time.Date(2026, time.March, 14, 10, 0, 0, 0, time.UTC)
	token := Token{
		Value:     "opaque",
		IssuedAt:  issued,
		ExpiresAt: issued.Add(NominalTokenLifetime), // 7199s
	}
	margin := 300 * time.Second

	tests := []struct {
		name string
		at   time.Duration
		want bool
	}{
		{"fresh", 0, false},
		{"just under the refresh threshold", 6898 * time.Second, false},
		{"exactly at the refresh threshold", 6899 * time.Second, true},
		{"past the refresh threshold", 6900 * time.Second, true},
		{"past actual expiry", 7300 * time.Second, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := token.Stale(issued.Add(tt.at), margin); got != tt.want {
				t.Errorf("Stale(T0+%s) = %v, want %v", tt.at, got, tt.want)
			}
		})
	}
}

func TestToken_Stale_ZeroValue(t *testing.T) {
	if !(Token{}).Stale(time.Now(), 0) {
		t.Error("zero-value token must always be stale")
	}
}
