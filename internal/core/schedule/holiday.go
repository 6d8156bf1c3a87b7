package schedule

import (
	"encoding/json"
	"sort"
	"strings"
	"time"
)

// DateLayout is the ISO calendar date format used for holiday dates.
const DateLayout = "2006-01-02"

// HolidayRule lists the explicit dates a tenant is closed. Named rules such
// as "federal" are recorded but never expanded into dates.
type HolidayRule struct {
	Dates []string `json:"dates,omitempty"`
	Named string   `json:"named,omitempty"`
}

// HolidaySet is a lookup of closed ISO dates.
type HolidaySet map[string]struct{}

// Set builds the lookup for the rule's explicit dates.
func (r HolidayRule) Set() HolidaySet {
	return NewHolidaySet(r.Dates...)
}

// NewHolidaySet normalises dates and drops any that do not parse.
func NewHolidaySet(dates ...string) HolidaySet {
	set := make(HolidaySet, len(dates))
	for _, d := range dates {
		if iso, ok := normalizeDate(d); ok {
			set[iso] = struct{}{}
		}
	}
	return set
}

// Contains reports whether t's calendar date is a holiday.
func (s HolidaySet) Contains(t time.Time) bool {
	if len(s) == 0 {
		return false
	}
	_, ok := s[t.Format(DateLayout)]
	return ok
}

// ParseHolidayRule accepts a list of dates, an object with "dates" and a
// "type" or "rule" name, or a bare rule name string.
func ParseHolidayRule(raw any) HolidayRule {
	switch v := raw.(type) {
	case json.RawMessage:
		return ParseHolidayRule(decodeRaw(v))
	case []byte:
		return ParseHolidayRule(decodeRaw(v))
	case string:
		return HolidayRule{Named: strings.TrimSpace(v)}
	case []string:
		return HolidayRule{Dates: cleanDates(v)}
	case []any:
		return HolidayRule{Dates: cleanDates(stringsOf(v))}
	case map[string]any:
		rule := HolidayRule{}
		for _, key := range []string{"type", "rule", "name"} {
			if s, ok := v[key].(string); ok && s != "" {
				rule.Named = s
				break
			}
		}
		if dates, ok := v["dates"].([]any); ok {
			rule.Dates = cleanDates(stringsOf(dates))
		}
		return rule
	default:
		return HolidayRule{}
	}
}

// UpcomingHolidays returns up to limit explicit holiday dates on or after
// now's calendar date, in ascending order.
func UpcomingHolidays(rule HolidayRule, now time.Time, limit int) []time.Time {
	today := now.Format(DateLayout)
	var out []time.Time
	for _, d := range rule.Dates {
		if d < today {
			continue
		}
		t, err := time.ParseInLocation(DateLayout, d, now.Location())
		if err != nil {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func cleanDates(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, d := range in {
		iso, ok := normalizeDate(d)
		if !ok || seen[iso] {
			continue
		}
		seen[iso] = true
		out = append(out, iso)
	}
	sort.Strings(out)
	return out
}

func normalizeDate(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) > len(DateLayout) {
		// RFC3339 timestamps keep only their date part.
		s = s[:len(DateLayout)]
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", false
	}
	return t.Format(DateLayout), true
}

func stringsOf(v []any) []string {
	out := make([]string, 0, len(v))
	for _, item := range v {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
