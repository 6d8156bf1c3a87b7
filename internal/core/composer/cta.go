package composer

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/evorisgroup/chatbot-backend/internal/core/intent"
	"github.com/evorisgroup/chatbot-backend/internal/core/schedule"
	"github.com/evorisgroup/chatbot-backend/internal/core/tenant"
)

// ShouldSuggestCall reports whether a phone suggestion may be added: the
// tenant has a phone, the user has not ruled out calls or sales, and the
// primary intent is one where a call helps.
func ShouldSuggestCall(rec *tenant.Record, class intent.Classification) bool {
	if rec == nil || strings.TrimSpace(rec.PhoneNumber) == "" {
		return false
	}
	if class.Constraints.AvoidPhone || class.Constraints.AvoidSales {
		return false
	}
	return class.Primary.CallRelevant()
}

func appendCallToAction(text, phone string, st schedule.State) string {
	if containsPhone(text, phone) {
		return text
	}
	var cta string
	switch {
	case st.IsOpenNow:
		cta = fmt.Sprintf("Feel free to call us at %s.", phone)
	case st.NextOpening != nil:
		cta = fmt.Sprintf("You can call us at %s when we open %s.", phone, when(st.NextOpening))
	default:
		cta = fmt.Sprintf("You can also reach us by phone at %s.", phone)
	}
	return joinSentences(text, cta)
}

func containsPhone(text, phone string) bool {
	if strings.Contains(text, phone) {
		return true
	}
	want := digits(phone)
	return len(want) >= 7 && strings.Contains(digits(text), want)
}

func digits(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}
