package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEveryIntentHasRoute(t *testing.T) {
	require.Len(t, All(), 28)
	for _, in := range All() {
		assert.NotEqual(t, RouteUnset, in.Route(), "intent %s has no route", in)
		assert.NotEqual(t, FamilyUnset, in.Family(), "intent %s has no family", in)
	}
	assert.Equal(t, RouteUnset, Intent("SOMETHING_ELSE").Route())
}

func TestRouteTable(t *testing.T) {
	assert.Equal(t, RouteDeterministic, GeneralHours.Route())
	assert.Equal(t, RouteDeterministic, ContactPhone.Route())
	assert.Equal(t, RouteDeterministic, FAQMatch.Route())
	assert.Equal(t, RouteWhenKnown, PaymentMethods.Route())
	assert.Equal(t, RouteWhenKnown, HolidayHours.Route())
	assert.Equal(t, RouteDelegated, AppointmentHow.Route())
	assert.Equal(t, RouteDelegated, Unknown.Route())
}

func TestParse(t *testing.T) {
	in, ok := Parse("OPEN_NOW")
	assert.True(t, ok)
	assert.Equal(t, OpenNow, in)

	in, ok = Parse("open_now")
	assert.False(t, ok)
	assert.Equal(t, Unknown, in)
}

func TestIsGreeting(t *testing.T) {
	for _, msg := range []string{"Hey there!", "hey there", "  HELLO  ", "Hi.", "good evening!!", "Good Morning?"} {
		assert.True(t, IsGreeting(msg), msg)
	}
	for _, msg := range []string{"hey there, are you open?", "hello world", "hi what are your hours", ""} {
		assert.False(t, IsGreeting(msg), msg)
	}
}

func TestExtractConstraints(t *testing.T) {
	tests := []struct {
		msg  string
		want Constraints
	}{
		{"I can't call, what's your email?", Constraints{AvoidPhone: true}},
		{"I don’t want to make a phone call", Constraints{AvoidPhone: true}},
		{"text only please", Constraints{AvoidPhone: true}},
		{"Just browsing, how much is a cut?", Constraints{AvoidSales: true}},
		{"I do not want to book anything", Constraints{AvoidSales: true}},
		{"No sales pitch and don't call me", Constraints{AvoidPhone: true, AvoidSales: true}},
		{"What is your phone number?", Constraints{}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExtractConstraints(tt.msg), tt.msg)
	}
}

func TestExtractDay(t *testing.T) {
	assert.Equal(t, "saturday", ExtractDay("Are you open on Saturdays?"))
	assert.Equal(t, "monday", ExtractDay("MONDAY hours"))
	assert.Empty(t, ExtractDay("what are your hours"))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "what's your e-mail", Normalize("  What’s   your E–mail "))
}

func TestConstraintsMerge(t *testing.T) {
	got := Constraints{AvoidPhone: true}.Merge(Constraints{AvoidSales: true})
	assert.Equal(t, Constraints{AvoidPhone: true, AvoidSales: true}, got)
}
