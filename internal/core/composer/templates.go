package composer

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"

	"github.com/evorisgroup/chatbot-backend/internal/core/intent"
	"github.com/evorisgroup/chatbot-backend/internal/core/schedule"
	"github.com/evorisgroup/chatbot-backend/internal/core/tenant"
)

const (
	defaultCurrency = "USD"
	maxHolidays     = 3
	maxFAQList      = 5
)

const (
	hoursUnavailable    = "Our hours are not available right now."
	phoneUnavailable    = "Our phone number is not available right now."
	emailUnavailable    = "Our email address is not available right now."
	contactUnavailable  = "Our contact details are not available right now."
	pricingUnavailable  = "Our pricing information is not available right now."
	servicesUnavailable = "Our list of services is not available right now."
	locationUnavailable = "Our locations are not available right now."
	companyUnavailable  = "Information about our company is not available right now."
	faqUnavailable      = "No FAQs are available at this time."
)

// answer renders the template for in. ok is false when the intent must be
// delegated, either always or because the tenant lacks the fact.
func answer(in intent.Intent, data Input) (string, bool) {
	rec, st := data.Tenant, data.State

	switch in {
	case intent.GeneralHours:
		return generalHours(rec), true
	case intent.TodayHours:
		return todayHours(st), true
	case intent.OpenNow:
		return openNow(st), true
	case intent.NextOpenTime:
		return nextOpenTime(st), true
	case intent.DaySpecificHours:
		return daySpecificHours(rec, data.Class.Params.Day), true
	case intent.HolidayHours:
		return holidayHours(rec, st, data)
	case intent.ContactPhone:
		if rec.PhoneNumber == "" {
			return phoneUnavailable, true
		}
		return fmt.Sprintf("You can reach us by phone at %s.", rec.PhoneNumber), true
	case intent.ContactEmail:
		if rec.ContactEmail == "" {
			return emailUnavailable, true
		}
		return fmt.Sprintf("You can email us at %s.", rec.ContactEmail), true
	case intent.ContactMethods:
		return contactMethods(rec, data.Class.Constraints), true
	case intent.PricingGeneral:
		return pricing(rec), true
	case intent.PaymentMethods:
		if p := strings.TrimSpace(rec.PaymentMethods); p != "" {
			return fmt.Sprintf("We accept %s.", strings.TrimRight(p, ".")), true
		}
		return "", false
	case intent.RefundsPolicies:
		if p := strings.TrimSpace(rec.RefundsPolicy); p != "" {
			return sentence(p), true
		}
		return "", false
	case intent.ServicesList:
		return servicesList(rec), true
	case intent.ServiceSpecific:
		if name, ok := matchService(rec, data.Class.Params.Service, data.Message); ok {
			return fmt.Sprintf("Yes, we offer %s.", name), true
		}
		return "", false
	case intent.LocationsList:
		if len(rec.Locations) == 0 {
			return locationUnavailable, true
		}
		if len(rec.Locations) == 1 {
			return fmt.Sprintf("We're located at %s.", rec.Locations[0]), true
		}
		return fmt.Sprintf("You can find us at: %s.", strings.Join(rec.Locations, "; ")), true
	case intent.CompanyOverview:
		return companyOverview(rec), true
	case intent.FAQMatch:
		return faqAnswer(rec, data.Message), true
	case intent.Unknown:
		if faq, ok := MatchFAQ(rec.FAQs, data.Message); ok {
			return sentence(faq.Answer), true
		}
		return "", false
	case intent.AppointmentHow, intent.AppointmentWhen, intent.AppointmentOnline,
		intent.PricingEstimate, intent.EmergencyService,
		intent.ServiceAreaCheck, intent.RemoteService,
		intent.CompanyHistory, intent.LicensesCerts, intent.Insurance:
		return "", false
	}
	return "", false
}

func generalHours(rec *tenant.Record) string {
	lines := schedule.Lines(rec.WeeklyHours)
	if lines == nil {
		return hoursUnavailable
	}
	var b strings.Builder
	b.WriteString("Our hours are:")
	for _, l := range lines {
		b.WriteString("\n")
		b.WriteString(l.Day)
		b.WriteString(": ")
		if l.Closed {
			b.WriteString("Closed")
		} else {
			b.WriteString(l.Hours)
		}
	}
	return b.String()
}

func todayHours(st schedule.State) string {
	switch {
	case !st.Configured:
		return hoursUnavailable
	case st.HolidayToday:
		return joinSentences("We're closed today for a holiday.", reopening(st.NextOpening))
	case st.TodaysHours == "":
		return joinSentences("We're closed today.", reopening(st.NextOpening))
	}
	return fmt.Sprintf("Today we're open %s.", st.TodaysHours)
}

func openNow(st schedule.State) string {
	switch {
	case !st.Configured:
		return "Our hours are not available right now, so I can't confirm whether we're open."
	case st.IsOpenNow && st.ClosesAt != "":
		return fmt.Sprintf("Yes, we're open right now until %s.", st.ClosesAt)
	case st.IsOpenNow:
		return "Yes, we're open right now."
	case st.HolidayToday:
		return joinSentences("We're closed today for a holiday.", reopening(st.NextOpening))
	}
	return joinSentences("We're closed right now.", reopening(st.NextOpening))
}

func nextOpenTime(st schedule.State) string {
	switch {
	case !st.Configured:
		return hoursUnavailable
	case st.IsOpenNow && st.ClosesAt != "":
		return fmt.Sprintf("We're open right now until %s.", st.ClosesAt)
	case st.IsOpenNow:
		return "We're open right now."
	case st.NextOpening == nil:
		return "Our next opening time is not available right now."
	}
	return fmt.Sprintf("We open next %s.", when(st.NextOpening))
}

func daySpecificHours(rec *tenant.Record, day string) string {
	d, ok := schedule.ParseWeekday(day)
	if !ok {
		return generalHours(rec)
	}
	if !rec.WeeklyHours.Configured() {
		return hoursUnavailable
	}
	hours, open := schedule.HoursForDay(rec.WeeklyHours, d)
	if !open {
		return fmt.Sprintf("We're closed on %ss.", d)
	}
	return fmt.Sprintf("On %ss we're open %s.", d, hours)
}

func holidayHours(rec *tenant.Record, st schedule.State, data Input) (string, bool) {
	upcoming := schedule.UpcomingHolidays(rec.Holidays, data.Now, maxHolidays)
	if len(upcoming) == 0 {
		return "", false
	}
	dates := make([]string, len(upcoming))
	for i, d := range upcoming {
		dates[i] = d.Format("Monday, January 2, 2006")
	}
	text := fmt.Sprintf("We're closed on these upcoming holidays: %s.", strings.Join(dates, "; "))
	if st.HolidayToday {
		text = "We're closed today for a holiday. " + text
	}
	return text, true
}

func contactMethods(rec *tenant.Record, c intent.Constraints) string {
	phone := rec.PhoneNumber
	if c.AvoidPhone {
		phone = ""
	}
	switch {
	case phone != "" && rec.ContactEmail != "":
		return fmt.Sprintf("You can call us at %s or email us at %s.", phone, rec.ContactEmail)
	case phone != "":
		return fmt.Sprintf("You can call us at %s.", phone)
	case rec.ContactEmail != "":
		return fmt.Sprintf("You can email us at %s.", rec.ContactEmail)
	case c.AvoidPhone && rec.PhoneNumber != "":
		return "We don't have an email address listed right now, so a phone call is the only way to reach us."
	}
	return contactUnavailable
}

func pricing(rec *tenant.Record) string {
	var parts []string
	for _, p := range rec.Products {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			continue
		}
		if p.Price > 0 {
			parts = append(parts, fmt.Sprintf("%s %s", name, FormatPrice(p.Price, rec.Currency)))
		} else {
			parts = append(parts, name)
		}
	}

	policy := strings.TrimSpace(rec.PricingPolicy)
	switch {
	case len(parts) > 0 && policy != "":
		return joinSentences(fmt.Sprintf("Here are our prices: %s.", strings.Join(parts, ", ")), sentence(policy))
	case len(parts) > 0:
		return fmt.Sprintf("Here are our prices: %s.", strings.Join(parts, ", "))
	case policy != "":
		return sentence(policy)
	}
	return pricingUnavailable
}

// FormatPrice renders an amount in the tenant's currency, USD by default.
func FormatPrice(amount float64, currency string) string {
	code := strings.ToUpper(strings.TrimSpace(currency))
	if code == "" || money.GetCurrency(code) == nil {
		code = defaultCurrency
	}
	return money.NewFromFloat(amount, code).Display()
}

func servicesList(rec *tenant.Record) string {
	names := nonEmpty(rec.Services)
	if len(names) == 0 {
		for _, p := range rec.Products {
			if n := strings.TrimSpace(p.Name); n != "" {
				names = append(names, n)
			}
		}
	}
	if len(names) == 0 {
		return servicesUnavailable
	}
	return fmt.Sprintf("We offer: %s.", strings.Join(names, ", "))
}

func companyOverview(rec *tenant.Record) string {
	info := strings.TrimSpace(rec.CompanyInfo)
	name := strings.TrimSpace(rec.CompanyName)
	switch {
	case info != "":
		return sentence(info)
	case name != "":
		return fmt.Sprintf("We're %s.", name)
	}
	return companyUnavailable
}

func faqAnswer(rec *tenant.Record, message string) string {
	if faq, ok := MatchFAQ(rec.FAQs, message); ok {
		return sentence(faq.Answer)
	}
	var qs []string
	for _, f := range rec.FAQs {
		if q := strings.TrimSpace(f.Question); q != "" {
			qs = append(qs, q)
		}
		if len(qs) == maxFAQList {
			break
		}
	}
	if len(qs) == 0 {
		return faqUnavailable
	}
	return "Here are some questions I can help with:\n- " + strings.Join(qs, "\n- ")
}

func reopening(next *schedule.Opening) string {
	if next == nil {
		return ""
	}
	return fmt.Sprintf("We open again %s.", when(next))
}

// when renders an opening as "today at 9:00 AM", "tomorrow at ..." or
// "on Monday at ...".
func when(o *schedule.Opening) string {
	switch o.DaysAhead {
	case 0:
		return "today at " + o.Time
	case 1:
		return "tomorrow at " + o.Time
	}
	return fmt.Sprintf("on %s at %s", o.Day, o.Time)
}

func sentence(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	switch s[len(s)-1] {
	case '.', '!', '?':
		return s
	}
	return s + "."
}

func joinSentences(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}

func nonEmpty(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
