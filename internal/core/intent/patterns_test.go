package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPatternClassifier_Primary(t *testing.T) {
	tests := []struct {
		msg  string
		want Intent
	}{
		{"What are your hours?", GeneralHours},
		{"What are your hours today?", TodayHours},
		{"Are you open now?", OpenNow},
		{"What time do you open next?", NextOpenTime},
		{"Are you open on Saturday?", DaySpecificHours},
		{"Are you open on Christmas?", HolidayHours},
		{"What's your phone number?", ContactPhone},
		{"I can't call, what's your email?", ContactEmail},
		{"How can I contact you?", ContactMethods},
		{"How do I book an appointment?", AppointmentHow},
		{"Can I book online?", AppointmentOnline},
		{"When is the earliest appointment?", AppointmentWhen},
		{"How much does a haircut cost?", PricingGeneral},
		{"Can I get a quote for a new roof?", PricingEstimate},
		{"Do you take credit cards?", PaymentMethods},
		{"What is your refund policy?", RefundsPolicies},
		{"What services do you have?", ServicesList},
		{"Do you offer gutter cleaning?", ServiceSpecific},
		{"Is this an emergency line?", EmergencyService},
		{"Where are you located?", LocationsList},
		{"Do you serve Springfield?", ServiceAreaCheck},
		{"Can we do this virtually?", RemoteService},
		{"Tell me about your company", CompanyOverview},
		{"When was the company founded?", CompanyHistory},
		{"Are you licensed?", LicensesCerts},
		{"Are you insured?", Insurance},
		{"Do you have an FAQ?", FAQMatch},
		{"purple elephants", Unknown},
	}

	c := NewPatternClassifier()
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			assert.Equal(t, tt.want, c.classify(tt.msg).Primary)
		})
	}
}

func TestPatternClassifier_Secondary(t *testing.T) {
	c := NewPatternClassifier()

	got := c.classify("Are you open now, and how much is a consultation fee?")
	assert.Equal(t, AppointmentHow, got.Primary)
	assert.Equal(t, OpenNow, got.Secondary)

	got = c.classify("What are your hours and where are you located?")
	assert.Equal(t, GeneralHours, got.Primary)
	assert.Equal(t, LocationsList, got.Secondary)

	// Same family never becomes the secondary.
	got = c.classify("What are your hours today?")
	assert.Equal(t, TodayHours, got.Primary)
	assert.Empty(t, got.Secondary)
}

func TestPatternClassifier_ParamsAndConstraints(t *testing.T) {
	got := NewPatternClassifier().classify("I can't call. What time do you close on Friday?")
	assert.Equal(t, DaySpecificHours, got.Primary)
	assert.Equal(t, "friday", got.Params.Day)
	assert.True(t, got.Constraints.AvoidPhone)
	assert.False(t, got.Constraints.AvoidSales)
}
