package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(date string, hour, minute int) time.Time {
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		panic(err)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, time.UTC)
}

func weekdays(iv ...Interval) Week {
	w := Week{}
	for d := time.Monday; d <= time.Friday; d++ {
		w[d] = iv
	}
	return w
}

func TestIsOpenNow_Boundaries(t *testing.T) {
	week := weekdays(Interval{Open: 9 * 60, Close: 17 * 60})

	tests := []struct {
		name         string
		hour, minute int
		want         bool
	}{
		{"before open", 8, 59, false},
		{"at open", 9, 0, true},
		{"last minute", 16, 59, true},
		{"at close", 17, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// 2024-07-02 is a Tuesday.
			assert.Equal(t, tt.want, IsOpenNow(week, nil, at("2024-07-02", tt.hour, tt.minute)))
		})
	}
}

func TestIsOpenNow_SplitDay(t *testing.T) {
	week := weekdays(Interval{540, 720}, Interval{780, 1020})

	assert.True(t, IsOpenNow(week, nil, at("2024-07-02", 10, 0)))
	assert.False(t, IsOpenNow(week, nil, at("2024-07-02", 12, 30)))
	assert.True(t, IsOpenNow(week, nil, at("2024-07-02", 13, 0)))
}

func TestIsOpenNow_HolidayOverride(t *testing.T) {
	week := weekdays(Interval{0, MinutesPerDay})
	holidays := NewHolidaySet("2024-07-04")

	for _, hour := range []int{0, 9, 12, 23} {
		assert.False(t, IsOpenNow(week, holidays, at("2024-07-04", hour, 0)), "hour %d", hour)
	}
	assert.True(t, IsOpenNow(week, holidays, at("2024-07-05", 12, 0)))
}

func TestIsOpenNow_NoScheduleIsClosed(t *testing.T) {
	assert.False(t, IsOpenNow(nil, nil, at("2024-07-02", 12, 0)))
	assert.False(t, IsOpenNow(Week{}, nil, at("2024-07-02", 12, 0)))
}

func TestHoursForDay(t *testing.T) {
	week := Week{
		time.Monday:   {{540, 1020}, {1080, 1200}},
		time.Saturday: {{600, 720}},
		time.Sunday:   nil,
	}

	got, ok := HoursForDay(week, time.Monday)
	require.True(t, ok)
	assert.Equal(t, "9:00 AM – 5:00 PM, 6:00 PM – 8:00 PM", got)

	got, ok = HoursForDay(week, time.Saturday)
	require.True(t, ok)
	assert.Equal(t, "10:00 AM – 12:00 PM", got)

	_, ok = HoursForDay(week, time.Sunday)
	assert.False(t, ok)

	_, ok = HoursForDay(nil, time.Monday)
	assert.False(t, ok)
}

func TestNextOpening_WrapsWeek(t *testing.T) {
	week := Week{time.Sunday: {{600, 720}}}

	// 2024-07-01 is a Monday.
	for _, hour := range []int{0, 10, 23} {
		next := NextOpening(week, nil, at("2024-07-01", hour, 0))
		require.NotNil(t, next)
		assert.Equal(t, "Sunday", next.Day)
		assert.Equal(t, "10:00 AM", next.Time)
		assert.Equal(t, 6, next.DaysAhead)
	}
}

func TestNextOpening_SkipsHolidaySunday(t *testing.T) {
	week := Week{time.Sunday: {{600, 720}}}
	holidays := NewHolidaySet("2024-07-07")

	next := NextOpening(week, holidays, at("2024-07-01", 9, 0))
	require.NotNil(t, next)
	assert.Equal(t, "Sunday", next.Day)
	assert.Equal(t, "10:00 AM", next.Time)
	assert.Equal(t, "2024-07-14", next.Date.Format(DateLayout))
}

func TestNextOpening_Today(t *testing.T) {
	week := weekdays(Interval{540, 720}, Interval{780, 1020})

	next := NextOpening(week, nil, at("2024-07-02", 8, 0))
	require.NotNil(t, next)
	assert.Equal(t, 0, next.DaysAhead)
	assert.Equal(t, "9:00 AM", next.Time)

	// During the lunch break the afternoon start wins.
	next = NextOpening(week, nil, at("2024-07-02", 12, 30))
	require.NotNil(t, next)
	assert.Equal(t, 0, next.DaysAhead)
	assert.Equal(t, "1:00 PM", next.Time)

	// A start equal to now does not count.
	next = NextOpening(week, nil, at("2024-07-02", 13, 0))
	require.NotNil(t, next)
	assert.Equal(t, "Wednesday", next.Day)
	assert.Equal(t, "9:00 AM", next.Time)
}

func TestNextOpening_FridayEveningRollsToMonday(t *testing.T) {
	week := weekdays(Interval{540, 1020})

	// 2024-07-05 is a Friday.
	next := NextOpening(week, nil, at("2024-07-05", 18, 0))
	require.NotNil(t, next)
	assert.Equal(t, "Monday", next.Day)
	assert.Equal(t, 3, next.DaysAhead)
}

func TestNextOpening_SevenDayWindow(t *testing.T) {
	week := Week{time.Tuesday: {{540, 600}}}

	// Tuesday after the only opening: next Tuesday lies outside the window.
	assert.Nil(t, NextOpening(week, nil, at("2024-07-02", 11, 0)))

	// Before it, today still counts.
	next := NextOpening(week, nil, at("2024-07-02", 8, 0))
	require.NotNil(t, next)
	assert.Equal(t, 0, next.DaysAhead)
}

func TestNextOpening_HolidayTodayExtendsToNextWeek(t *testing.T) {
	week := Week{time.Tuesday: {{540, 600}}}
	holidays := NewHolidaySet("2024-07-02")

	next := NextOpening(week, holidays, at("2024-07-02", 8, 0))
	require.NotNil(t, next)
	assert.Equal(t, "2024-07-09", next.Date.Format(DateLayout))
	assert.Equal(t, 7, next.DaysAhead)
}

func TestNextOpening_None(t *testing.T) {
	assert.Nil(t, NextOpening(nil, nil, at("2024-07-02", 11, 0)))
	assert.Nil(t, NextOpening(Week{time.Monday: nil}, nil, at("2024-07-02", 11, 0)))
}

func TestResolve(t *testing.T) {
	week := weekdays(Interval{540, 1020})
	holidays := NewHolidaySet("2024-07-04")

	open := Resolve(week, holidays, at("2024-07-02", 10, 0))
	assert.True(t, open.Configured)
	assert.True(t, open.IsOpenNow)
	assert.Equal(t, "9:00 AM – 5:00 PM", open.TodaysHours)
	assert.Equal(t, "5:00 PM", open.ClosesAt)
	require.NotNil(t, open.NextOpening)
	assert.Equal(t, "Wednesday", open.NextOpening.Day)

	holiday := Resolve(week, holidays, at("2024-07-04", 10, 0))
	assert.True(t, holiday.HolidayToday)
	assert.False(t, holiday.IsOpenNow)
	assert.Empty(t, holiday.TodaysHours)
	require.NotNil(t, holiday.NextOpening)
	assert.Equal(t, "Friday", holiday.NextOpening.Day)

	none := Resolve(nil, nil, at("2024-07-02", 10, 0))
	assert.False(t, none.Configured)
	assert.False(t, none.IsOpenNow)
	assert.Nil(t, none.NextOpening)
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "12:00 AM", FormatClock(0))
	assert.Equal(t, "9:05 AM", FormatClock(545))
	assert.Equal(t, "12:00 PM", FormatClock(720))
	assert.Equal(t, "11:59 PM", FormatClock(1439))
	assert.Equal(t, "12:00 AM", FormatClock(MinutesPerDay))
}

func TestLines(t *testing.T) {
	lines := Lines(Week{time.Monday: {{540, 1020}}})
	require.Len(t, lines, 7)
	assert.Equal(t, DayLine{Day: "Monday", Hours: "9:00 AM – 5:00 PM"}, lines[0])
	assert.Equal(t, DayLine{Day: "Sunday", Closed: true}, lines[6])
	assert.Nil(t, Lines(nil))
}
