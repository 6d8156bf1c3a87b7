package schedule

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHolidayRule(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want HolidayRule
	}{
		{
			name: "date list",
			raw:  []any{"2024-12-25", "2024-07-04", "2024-07-04", "not-a-date"},
			want: HolidayRule{Dates: []string{"2024-07-04", "2024-12-25"}},
		},
		{
			name: "timestamps",
			raw:  []string{"2024-07-04T00:00:00Z"},
			want: HolidayRule{Dates: []string{"2024-07-04"}},
		},
		{
			name: "named rule",
			raw:  "federal",
			want: HolidayRule{Named: "federal"},
		},
		{
			name: "object",
			raw:  map[string]any{"type": "federal", "dates": []any{"2024-11-28"}},
			want: HolidayRule{Named: "federal", Dates: []string{"2024-11-28"}},
		},
		{
			name: "raw json",
			raw:  json.RawMessage(`["2025-01-01"]`),
			want: HolidayRule{Dates: []string{"2025-01-01"}},
		},
		{
			name: "nil",
			raw:  nil,
			want: HolidayRule{},
		},
		{
			name: "number",
			raw:  float64(3),
			want: HolidayRule{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseHolidayRule(tt.raw))
		})
	}
}

func TestNamedRuleIsNoOp(t *testing.T) {
	rule := ParseHolidayRule("observe federal holidays")
	assert.Empty(t, rule.Set())

	week := weekdays(Interval{540, 1020})
	assert.True(t, IsOpenNow(week, rule.Set(), at("2024-07-04", 10, 0)))
}

func TestUpcomingHolidays(t *testing.T) {
	rule := HolidayRule{Dates: []string{"2024-01-01", "2024-07-04", "2024-11-28", "2024-12-25"}}

	got := UpcomingHolidays(rule, at("2024-07-04", 15, 0), 2)
	require.Len(t, got, 2)
	assert.Equal(t, "2024-07-04", got[0].Format(DateLayout))
	assert.Equal(t, "2024-11-28", got[1].Format(DateLayout))

	assert.Empty(t, UpcomingHolidays(rule, at("2025-01-02", 0, 0), 5))
}
