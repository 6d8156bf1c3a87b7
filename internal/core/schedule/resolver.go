package schedule

import "time"

// maxScanOffset caps the forward scan when long holiday runs are skipped.
const maxScanOffset = 366

// Opening is the next time the tenant opens.
type Opening struct {
	Day       string    `json:"day"`
	Time      string    `json:"time"`
	Date      time.Time `json:"date"`
	DaysAhead int       `json:"days_ahead"`
}

// State is the schedule snapshot for one request. It is never cached.
type State struct {
	Configured   bool     `json:"configured"`
	IsOpenNow    bool     `json:"is_open_now"`
	HolidayToday bool     `json:"holiday_today"`
	TodaysHours  string   `json:"todays_hours,omitempty"`
	ClosesAt     string   `json:"closes_at,omitempty"`
	NextOpening  *Opening `json:"next_opening,omitempty"`
}

// MinuteOfDay returns t's time of day in minutes since midnight.
func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// IsOpenNow reports whether now falls inside one of today's intervals. A
// holiday closes the whole calendar date, and a week with no hours
// configured is always closed.
func IsOpenNow(week Week, holidays HolidaySet, now time.Time) bool {
	_, open := currentInterval(week, holidays, now)
	return open
}

// HoursForDay renders every interval of day. ok is false when the day is
// closed or no hours are configured.
func HoursForDay(week Week, day time.Weekday) (string, bool) {
	intervals := week.Day(day)
	if len(intervals) == 0 {
		return "", false
	}
	return FormatIntervals(intervals), true
}

// NextOpening finds the next interval start after now. Today only counts
// starts strictly later than now; later days take their first interval.
// The scan covers each weekday once on a non-holiday date, today first, so
// a holiday pushes only its own weekday into the following week.
// Intervals are taken in stored order, so callers keep each day sorted.
func NextOpening(week Week, holidays HolidaySet, now time.Time) *Opening {
	if !week.hasIntervals() {
		return nil
	}
	minute := MinuteOfDay(now)
	var checked [7]bool
	remaining := len(checked)
	for offset := 0; offset <= maxScanOffset && remaining > 0; offset++ {
		date := now.AddDate(0, 0, offset)
		if holidays.Contains(date) {
			continue
		}
		if d := date.Weekday(); !checked[d] {
			checked[d] = true
			remaining--
		}
		for _, iv := range week.Day(date.Weekday()) {
			if offset == 0 && iv.Open <= minute {
				continue
			}
			return &Opening{
				Day:       date.Weekday().String(),
				Time:      FormatClock(iv.Open),
				Date:      time.Date(date.Year(), date.Month(), date.Day(), iv.Open/60, iv.Open%60, 0, 0, date.Location()),
				DaysAhead: offset,
			}
		}
	}
	return nil
}

// Resolve computes the full State for now.
func Resolve(week Week, holidays HolidaySet, now time.Time) State {
	st := State{
		Configured:   week.Configured(),
		HolidayToday: holidays.Contains(now),
	}
	if iv, open := currentInterval(week, holidays, now); open {
		st.IsOpenNow = true
		st.ClosesAt = FormatClock(iv.Close)
	}
	if !st.HolidayToday {
		st.TodaysHours, _ = HoursForDay(week, now.Weekday())
	}
	st.NextOpening = NextOpening(week, holidays, now)
	return st
}

func currentInterval(week Week, holidays HolidaySet, now time.Time) (Interval, bool) {
	if !week.Configured() || holidays.Contains(now) {
		return Interval{}, false
	}
	minute := MinuteOfDay(now)
	for _, iv := range week.Day(now.Weekday()) {
		if iv.Contains(minute) {
			return iv, true
		}
	}
	return Interval{}, false
}
