package composer

import (
	"fmt"
	"strings"

	"github.com/evorisgroup/chatbot-backend/internal/core/intent"
	"github.com/evorisgroup/chatbot-backend/internal/core/tenant"
)

// SystemConstraints returns the behavioural rules sent with every delegated
// call.
func SystemConstraints(rec *tenant.Record, primary intent.Intent, c intent.Constraints) string {
	name := strings.TrimSpace(rec.CompanyName)
	if name == "" {
		name = "this business"
	}

	lines := []string{
		fmt.Sprintf("You answer customer questions for %s in a website chat.", name),
		fmt.Sprintf("Reply in at most %d sentences and %d words, in plain text.", MaxSentences, MaxWords),
		"Use only the business information provided. If it does not contain the answer, say you don't have that information.",
		"Never invent prices, hours, policies, services or contact details.",
		"Never say or imply that you are an AI, a bot or an automated system.",
	}
	if !ScheduleRelevant(intent.Classification{Primary: primary, Constraints: c}) {
		lines = append(lines, "Do not mention opening hours, availability, or whether the business is open or closed.")
	}
	if c.AvoidPhone {
		lines = append(lines, "The customer cannot or will not call. Do not suggest calling and do not share a phone number.")
	}
	if c.AvoidSales {
		lines = append(lines, "The customer is not interested in buying or booking. Do not promote sales, bookings or appointments.")
	}
	return "- " + strings.Join(lines, "\n- ")
}
