package core

import (
	"fmt"
	"time"
)

// WindowFor computes the lookback window for one hour slot of day.
// The window covers the hour immediately preceding the nominal hour mark:
// slot h runs from h-1:00 to h:00, so slot 0 starts at the previous
// calendar day's 23:00 and ends at day's 00:00. All times are UTC.
//
// The derived name is {prefix}-{YYYY-MM-DD of end}-{startHHMM}-{endHHMM}.
//
// This function is pure; the cycle engine and the dry-run preview share it.
func WindowFor(day time.Time, hour int, prefix string) ReportWindow {
	y, m, d := day.UTC().Date()
	end := time.Date(y, m, d, hour, 0, 0, 0, time.UTC)
	start := end.Add(-time.Hour)

	name := fmt.Sprintf("%s-%s-%s-%s",
		prefix,
		end.Format("2006-01-02"),
		start.Format("1504"),
		end.Format("1504"),
	)

	return ReportWindow{Start: start, End: end, Name: name}
}

// DayWindows returns all 24 windows of day in slot order. Consecutive
// windows tile the preceding 24 hours without gaps or overlaps.
func DayWindows(day time.Time, prefix string) []ReportWindow {
	windows := make([]ReportWindow, 0, HoursPerDay)
	for hour := 0; hour < HoursPerDay; hour++ {
		windows = append(windows, WindowFor(day, hour, prefix))
	}
	return windows
}
