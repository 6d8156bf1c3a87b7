package schedule

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// MinutesPerDay is the exclusive upper bound of a close time.
const MinutesPerDay = 24 * 60

// Interval is a half-open [Open, Close) range in minutes since midnight.
type Interval struct {
	Open  int `json:"open"`
	Close int `json:"close"`
}

// Contains reports whether minute falls inside the interval.
func (iv Interval) Contains(minute int) bool {
	return minute >= iv.Open && minute < iv.Close
}

func (iv Interval) valid() bool {
	return iv.Open >= 0 && iv.Close <= MinutesPerDay && iv.Open < iv.Close
}

// DayHours is the single-interval canonical value of one raw hours entry.
type DayHours struct {
	Closed bool `json:"closed"`
	Open   int  `json:"open,omitempty"`
	Close  int  `json:"close,omitempty"`
}

// Interval returns the hours as an Interval. ok is false when closed.
func (d DayHours) Interval() (Interval, bool) {
	if d.Closed {
		return Interval{}, false
	}
	return Interval{Open: d.Open, Close: d.Close}, true
}

func closed() DayHours { return DayHours{Closed: true} }

// Week maps each weekday to its ordered intervals. A nil Week means no
// weekly hours are configured; a weekday with no intervals is closed.
type Week map[time.Weekday][]Interval

// Configured reports whether any weekly hours were supplied.
func (w Week) Configured() bool { return w != nil }

// Day returns the intervals stored for d.
func (w Week) Day(d time.Weekday) []Interval {
	if w == nil {
		return nil
	}
	return w[d]
}

func (w Week) hasIntervals() bool {
	for _, intervals := range w {
		if len(intervals) > 0 {
			return true
		}
	}
	return false
}

// intervalKeys are the accepted open/close field pairs of an interval
// object, checked in order.
var intervalKeys = [][2]string{
	{"open", "close"},
	{"start", "end"},
	{"open_time", "close_time"},
	{"start_time", "end_time"},
	{"opens", "closes"},
	{"from", "to"},
}

// NormalizeHours maps one raw hours value onto the canonical form. Every
// shape it does not recognise, and every unparsable time, resolves to closed.
func NormalizeHours(raw any) DayHours {
	switch v := raw.(type) {
	case nil:
		return closed()
	case bool:
		// true carries no times, so it cannot be open either.
		return closed()
	case string:
		return hoursFromString(v)
	case []any:
		if len(v) != 2 {
			return closed()
		}
		return hoursFromPair(v[0], v[1])
	case []string:
		if len(v) != 2 {
			return closed()
		}
		return hoursFromPair(v[0], v[1])
	case map[string]any:
		return hoursFromObject(v)
	case map[string]string:
		obj := make(map[string]any, len(v))
		for k, s := range v {
			obj[k] = s
		}
		return hoursFromObject(obj)
	case json.RawMessage:
		return NormalizeHours(decodeRaw(v))
	default:
		return closed()
	}
}

// NormalizeDay maps a raw day value onto its ordered intervals. A day may be
// a single interval in any NormalizeHours shape or a list of them; invalid
// entries are dropped one by one.
func NormalizeDay(raw any) []Interval {
	switch v := raw.(type) {
	case json.RawMessage:
		return NormalizeDay(decodeRaw(v))
	case []any:
		if isPair(v) {
			if iv, ok := NormalizeHours(v).Interval(); ok {
				return []Interval{iv}
			}
			return nil
		}
		var out []Interval
		for _, item := range v {
			if iv, ok := NormalizeHours(item).Interval(); ok {
				out = append(out, iv)
			}
		}
		return out
	case string:
		var out []Interval
		for _, part := range strings.Split(v, ",") {
			if iv, ok := hoursFromString(part).Interval(); ok {
				out = append(out, iv)
			}
		}
		return out
	default:
		if iv, ok := NormalizeHours(v).Interval(); ok {
			return []Interval{iv}
		}
		return nil
	}
}

// NormalizeWeek maps a raw weekly-hours object keyed by day name onto a
// Week. Anything other than an object with at least one recognised day
// yields nil.
func NormalizeWeek(raw any) Week {
	var obj map[string]any
	switch v := raw.(type) {
	case map[string]any:
		obj = v
	case json.RawMessage:
		return NormalizeWeek(decodeRaw(v))
	case []byte:
		return NormalizeWeek(decodeRaw(v))
	default:
		return nil
	}

	week := Week{}
	found := false
	for key, value := range obj {
		day, ok := ParseWeekday(key)
		if !ok {
			continue
		}
		found = true
		week[day] = append(week[day], NormalizeDay(value)...)
	}
	if !found {
		return nil
	}
	return week
}

// ParseWeekday accepts full day names, three-letter abbreviations and the
// digits 0-6 (Sunday first).
func ParseWeekday(s string) (time.Weekday, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	if len(key) == 1 && key[0] >= '0' && key[0] <= '6' {
		return time.Weekday(key[0] - '0'), true
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if key == name || key == name[:3] {
			return d, true
		}
	}
	switch key {
	case "tues":
		return time.Tuesday, true
	case "weds":
		return time.Wednesday, true
	case "thur", "thurs":
		return time.Thursday, true
	}
	return time.Sunday, false
}

func hoursFromObject(obj map[string]any) DayHours {
	if c, ok := obj["closed"].(bool); ok && c {
		return closed()
	}
	if open, ok := obj["is_open"].(bool); ok && !open {
		return closed()
	}
	if enabled, ok := obj["enabled"].(bool); ok && !enabled {
		return closed()
	}
	for _, pair := range intervalKeys {
		o, hasOpen := obj[pair[0]]
		c, hasClose := obj[pair[1]]
		if hasOpen && hasClose {
			return hoursFromPair(o, c)
		}
	}
	return closed()
}

func hoursFromPair(openRaw, closeRaw any) DayHours {
	open, ok := clockValue(openRaw, false)
	if !ok {
		return closed()
	}
	cl, ok := clockValue(closeRaw, true)
	if !ok {
		return closed()
	}
	iv := Interval{Open: open, Close: cl}
	if !iv.valid() {
		return closed()
	}
	return DayHours{Open: open, Close: cl}
}

// hoursFromString handles "closed" and "9:00-17:00" style ranges.
func hoursFromString(s string) DayHours {
	s = strings.TrimSpace(s)
	for _, sep := range []string{"–", "—", " to ", "-"} {
		if i := strings.Index(s, sep); i > 0 {
			return hoursFromPair(s[:i], s[i+len(sep):])
		}
	}
	return closed()
}

func isPair(v []any) bool {
	if len(v) != 2 {
		return false
	}
	for _, item := range v {
		switch item.(type) {
		case string, float64, int:
		default:
			return false
		}
	}
	return true
}

func clockValue(raw any, isClose bool) (int, bool) {
	switch v := raw.(type) {
	case string:
		m, ok := ParseClock(v)
		if ok && m == 0 && isClose {
			// "00:00" / "midnight" as a closing time means end of day.
			return MinutesPerDay, true
		}
		return m, ok
	case float64:
		return hoursNumber(v, isClose)
	case int:
		return hoursNumber(float64(v), isClose)
	default:
		return 0, false
	}
}

func hoursNumber(h float64, isClose bool) (int, bool) {
	if h < 0 || h > 24 || (h == 24 && !isClose) {
		return 0, false
	}
	if h == 0 && isClose {
		return MinutesPerDay, true
	}
	return int(h*60 + 0.5), true
}

// ParseClock parses a time of day into minutes since midnight. It accepts
// 24-hour "HH:MM" and "HH:MM:SS", compact "HHMM", 12-hour forms with an
// am/pm suffix ("9am", "9:30 PM"), and the words noon and midnight. "24:00"
// parses to MinutesPerDay.
func ParseClock(s string) (int, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, ".", "")
	switch s {
	case "":
		return 0, false
	case "noon":
		return 12 * 60, true
	case "midnight":
		return 0, true
	}

	meridiem := ""
	for _, suffix := range []string{"am", "pm", "a", "p"} {
		if strings.HasSuffix(s, suffix) {
			meridiem = suffix[:1]
			s = strings.TrimSpace(strings.TrimSuffix(s, suffix))
			break
		}
	}

	var hour, minute int
	var err error
	parts := strings.Split(s, ":")
	switch {
	case len(parts) == 1 && len(s) == 4 && meridiem == "":
		hour, err = strconv.Atoi(s[:2])
		if err == nil {
			minute, err = strconv.Atoi(s[2:])
		}
	case len(parts) == 1:
		hour, err = strconv.Atoi(parts[0])
	case len(parts) == 2 || len(parts) == 3:
		hour, err = strconv.Atoi(parts[0])
		if err == nil {
			if len(parts[1]) != 2 {
				return 0, false
			}
			minute, err = strconv.Atoi(parts[1])
		}
		if err == nil && len(parts) == 3 {
			_, err = strconv.Atoi(parts[2])
		}
	default:
		return 0, false
	}
	if err != nil || minute < 0 || minute > 59 || hour < 0 {
		return 0, false
	}

	switch meridiem {
	case "a":
		if hour < 1 || hour > 12 {
			return 0, false
		}
		if hour == 12 {
			hour = 0
		}
	case "p":
		if hour < 1 || hour > 12 {
			return 0, false
		}
		if hour != 12 {
			hour += 12
		}
	default:
		if hour == 24 && minute == 0 {
			return MinutesPerDay, true
		}
		if hour > 23 {
			return 0, false
		}
	}
	return hour*60 + minute, true
}

func decodeRaw(b []byte) any {
	var v any
	if len(b) == 0 || json.Unmarshal(b, &v) != nil {
		return nil
	}
	return v
}
