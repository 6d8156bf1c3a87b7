package composer

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/evorisgroup/chatbot-backend/internal/core/intent"
	"github.com/evorisgroup/chatbot-backend/internal/core/schedule"
	"github.com/evorisgroup/chatbot-backend/internal/core/tenant"
)

const (
	MaxGroundingChars = 2000
	maxFieldChars     = 600
	maxGroundingFAQs  = 5
)

// ScheduleRelevant reports whether the schedule may appear in the model
// context: the intent asks about hours, or it is call-relevant and the user
// has not ruled out calling.
func ScheduleRelevant(class intent.Classification) bool {
	if class.Primary.Family() == intent.FamilyHours {
		return true
	}
	return class.Primary.CallRelevant() && !class.Constraints.AvoidPhone
}

type grounding struct {
	b strings.Builder
}

func (g *grounding) add(label, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	if len(value) > maxFieldChars {
		value = strings.TrimSpace(truncate(value, maxFieldChars)) + "..."
	}
	line := label + ": " + value + "\n"
	if g.b.Len()+len(line) > MaxGroundingChars {
		return
	}
	g.b.WriteString(line)
}

func (g *grounding) list(label string, values []string) {
	g.add(label, strings.Join(nonEmpty(values), "; "))
}

// BuildGrounding selects the tenant facts relevant to the classified intent.
// The result never exceeds MaxGroundingChars.
func BuildGrounding(rec *tenant.Record, st schedule.State, class intent.Classification, now time.Time) string {
	g := &grounding{}
	g.add("Business name", rec.CompanyName)

	fam := class.Primary.Family()
	showPhone := !class.Constraints.AvoidPhone

	switch fam {
	case intent.FamilyHours:
		g.add("Upcoming holiday closures", holidayDates(rec, now))
	case intent.FamilyContact, intent.FamilyAppointments:
		if showPhone {
			g.add("Phone", rec.PhoneNumber)
		}
		g.add("Email", rec.ContactEmail)
		g.list("Services", rec.Services)
	case intent.FamilyPricing:
		g.add("Prices", productLine(rec))
		g.add("Pricing policy", rec.PricingPolicy)
		g.add("Payment methods", rec.PaymentMethods)
		g.add("Refund policy", rec.RefundsPolicy)
	case intent.FamilyServices:
		g.list("Services", rec.Services)
		g.add("Products", productLine(rec))
		g.add("About", rec.CompanyInfo)
	case intent.FamilyLocations:
		g.list("Locations", rec.Locations)
		g.list("Services", rec.Services)
	case intent.FamilyCompany:
		g.add("About", rec.CompanyInfo)
		g.list("Services", rec.Services)
	default:
		g.add("About", rec.CompanyInfo)
		g.list("Services", rec.Services)
		g.list("Locations", rec.Locations)
		if showPhone {
			g.add("Phone", rec.PhoneNumber)
		}
		g.add("Email", rec.ContactEmail)
		for i, f := range rec.FAQs {
			if i == maxGroundingFAQs {
				break
			}
			g.add("FAQ", strings.TrimSpace(f.Question)+" "+strings.TrimSpace(f.Answer))
		}
	}

	if ScheduleRelevant(class) {
		g.add("Open now", scheduleStatus(st))
		g.add("Today's hours", st.TodaysHours)
		if st.NextOpening != nil && !st.IsOpenNow {
			g.add("Next opening", when(st.NextOpening))
		}
	}

	return strings.TrimSpace(g.b.String())
}

func scheduleStatus(st schedule.State) string {
	switch {
	case !st.Configured:
		return "unknown (hours not available)"
	case st.HolidayToday:
		return "no, closed today for a holiday"
	case st.IsOpenNow:
		return "yes"
	}
	return "no"
}

func productLine(rec *tenant.Record) string {
	parts := make([]string, 0, len(rec.Products))
	for _, p := range rec.Products {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			continue
		}
		if p.Price > 0 {
			name = fmt.Sprintf("%s (%s)", name, FormatPrice(p.Price, rec.Currency))
		}
		parts = append(parts, name)
	}
	return strings.Join(parts, ", ")
}

func holidayDates(rec *tenant.Record, now time.Time) string {
	upcoming := schedule.UpcomingHolidays(rec.Holidays, now, maxHolidays)
	dates := make([]string, len(upcoming))
	for i, d := range upcoming {
		dates[i] = d.Format(schedule.DateLayout)
	}
	return strings.Join(dates, ", ")
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
