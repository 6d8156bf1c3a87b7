package intent

import (
	"context"
	"regexp"
)

type matcher func(string) bool

func re(expr string) matcher {
	p := regexp.MustCompile(expr)
	return p.MatchString
}

func both(a, b matcher) matcher {
	return func(s string) bool { return a(s) && b(s) }
}

var (
	hoursWord   = re(`\b(open|opens|opening|close|closes|closing|closed|hours|time|times)\b`)
	todayWord   = re(`\b(today|tonight|this (morning|afternoon|evening))\b`)
	weekdayWord = dayPattern.MatchString
	apptWord    = re(`\b(appointment|appointments|appt|book|booking|reserve|reservation|consultation|schedule (a|an|one)|set up a (time|visit|meeting))\b`)
	phoneWord   = re(`\b(phone|phone number|telephone|call you|call us|number to call|your number)\b`)
	emailWord   = re(`\b(e-?mail|email address)\b`)
)

type rule struct {
	intent Intent
	match  matcher
}

// rules is ordered: the first matching row is the primary intent.
var rules = []rule{
	{EmergencyService, re(`\b(emergenc\w*|urgent\w*|after[- ]hours service)\b`)},
	{HolidayHours, re(`\b(holiday|holidays|christmas|thanksgiving|new year'?s?|easter|labor day|memorial day|independence day|(fourth|4th) of july)\b`)},
	{AppointmentOnline, both(apptWord, re(`\b(online|website|web site|app|internet)\b`))},
	{AppointmentWhen, both(apptWord, re(`\b(when|available|availability|soonest|earliest|next available|slots?)\b`))},
	{AppointmentHow, apptWord},
	{TodayHours, both(todayWord, hoursWord)},
	{DaySpecificHours, both(weekdayWord, hoursWord)},
	{OpenNow, re(`\b((are|r) (you|u) (currently |still )?(open|closed)|(open|closed) (right )?now|still open|currently open|open at the moment)\b`)},
	{NextOpenTime, re(`\b(next (open|opening)|open next|re-?open|open again|open back up|back open|when do you open|what time do you open)\b`)},
	{GeneralHours, re(`\b(hours|opening times|business hours|when (are|is) (you|it) open|what (time|times|days) (are|is) (you|it) open|when do you close|what time do you close|your schedule)\b`)},
	{ContactMethods, both(phoneWord, emailWord)},
	{ContactEmail, emailWord},
	{ContactPhone, phoneWord},
	{ContactMethods, re(`\b(contact|reach you|get in touch|talk to (someone|a person|a human))\b`)},
	{PricingEstimate, re(`\b(estimate|quote|ballpark|rough cost|how much (would|will) it cost)\b`)},
	{PaymentMethods, re(`\b(pay|payment|payments|credit cards?|debit|cash|venmo|paypal|apple pay|financing)\b`)},
	{RefundsPolicies, re(`\b(refund|refunds|return policy|returns|money back|cancel|cancellation|cancelation|warranty|guarantee|policy|policies)\b`)},
	{PricingGeneral, re(`\b(price|prices|pricing|cost|costs|how much|rates?|fees?|charge|expensive|cheap|afford)\b`)},
	{ServiceAreaCheck, re(`\b(service area|do you (serve|service|cover|come to|travel to)|serve my area|in my area|near me|deliver to)\b`)},
	{RemoteService, re(`\b(remote|remotely|virtual|virtually|video call|zoom|telehealth)\b`)},
	{LocationsList, re(`\b(location|locations|address|where are you|where is your|offices?|branch|branches|directions|located)\b`)},
	{ServiceSpecific, re(`\b(do you (do|offer|provide|sell|repair|fix|install|handle|carry)|can you (do|help with|fix|repair|install))\b`)},
	{ServicesList, re(`\b(services|service|what do you (do|offer|sell)|products|offerings|menu)\b`)},
	{CompanyHistory, re(`\b(history|founded|how long have you been|established|since when|who started|owner|owners)\b`)},
	{LicensesCerts, re(`\b(licen[cs]ed|licen[cs]es?|certified|certifications?|accredited|credentials)\b`)},
	{Insurance, re(`\b(insured|insurance|bonded|liability)\b`)},
	{CompanyOverview, re(`\b(about you|about your (company|business)|who are you|what is your company|company name|your name|what company|tell me about)\b`)},
	{FAQMatch, re(`\b(faq|faqs|frequently asked|common questions)\b`)},
}

// PatternClassifier classifies messages with an ordered regular expression
// table. It never fails.
type PatternClassifier struct{}

func NewPatternClassifier() *PatternClassifier {
	return &PatternClassifier{}
}

func (p *PatternClassifier) Classify(_ context.Context, message string) (Classification, error) {
	return p.classify(message), nil
}

func (p *PatternClassifier) classify(message string) Classification {
	s := Normalize(message)
	out := UnknownClassification()
	out.Constraints = ExtractConstraints(message)
	out.Params.Day = ExtractDay(message)

	for _, r := range rules {
		if !r.match(s) {
			continue
		}
		if out.Primary == Unknown {
			out.Primary = r.intent
			continue
		}
		// Secondary intent comes from a different family.
		if r.intent.Family() != out.Primary.Family() {
			out.Secondary = r.intent
			break
		}
	}
	return out
}
