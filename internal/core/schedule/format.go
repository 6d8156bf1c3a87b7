package schedule

import (
	"strings"
	"time"
)

// DisplayOrder lists weekdays Monday first, the way hours are printed.
var DisplayOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// DayLine is one printed row of a weekly schedule.
type DayLine struct {
	Day    string
	Hours  string
	Closed bool
}

// FormatClock renders minutes since midnight as "9:00 AM". MinutesPerDay
// renders as midnight.
func FormatClock(minute int) string {
	minute = ((minute % MinutesPerDay) + MinutesPerDay) % MinutesPerDay
	return time.Date(2000, 1, 1, minute/60, minute%60, 0, 0, time.UTC).Format("3:04 PM")
}

// FormatRange renders an interval as "9:00 AM – 5:00 PM".
func FormatRange(iv Interval) string {
	return FormatClock(iv.Open) + " – " + FormatClock(iv.Close)
}

// FormatIntervals joins the ranges of one day with commas.
func FormatIntervals(intervals []Interval) string {
	parts := make([]string, len(intervals))
	for i, iv := range intervals {
		parts[i] = FormatRange(iv)
	}
	return strings.Join(parts, ", ")
}

// Lines renders the whole week in DisplayOrder. It returns nil when no
// hours are configured.
func Lines(week Week) []DayLine {
	if !week.Configured() {
		return nil
	}
	lines := make([]DayLine, 0, len(DisplayOrder))
	for _, d := range DisplayOrder {
		hours, ok := HoursForDay(week, d)
		lines = append(lines, DayLine{Day: d.String(), Hours: hours, Closed: !ok})
	}
	return lines
}
