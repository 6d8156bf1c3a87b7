package intent

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

var quoteReplacer = strings.NewReplacer(
	"‘", "'", "’", "'", "“", `"`, "”", `"`,
	"–", "-", "—", "-",
)

var folder = cases.Fold()

// Normalize prepares a message for matching: NFKC, case folding, straight
// quotes and single spaces.
func Normalize(msg string) string {
	s := norm.NFKC.String(msg)
	s = quoteReplacer.Replace(s)
	s = folder.String(s)
	return strings.Join(strings.Fields(s), " ")
}

var greetings = map[string]bool{
	"hi":             true,
	"hello":          true,
	"hey":            true,
	"hey there":      true,
	"good morning":   true,
	"good afternoon": true,
	"good evening":   true,
}

// IsGreeting reports whether the whole message is one of the fixed
// greetings, ignoring case, surrounding space and trailing punctuation.
func IsGreeting(msg string) bool {
	s := strings.TrimRight(Normalize(msg), "!.?, ")
	return greetings[s]
}

var (
	avoidPhonePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(can'?t|cannot|can not|won'?t|unable to|not able to|prefer not to|rather not|do not want to|don'?t want to|don'?t like to|hate to)( make a| make| take a| be on a)? (call|phone|ring|talk on the phone)`),
		regexp.MustCompile(`\b(no|without( a)?) (phone )?(call|calls|calling)\b`),
		regexp.MustCompile(`\bdon'?t call\b`),
		regexp.MustCompile(`\b(text|email|chat|message) only\b`),
		regexp.MustCompile(`\bnot (by|over the|on the) phone\b`),
		regexp.MustCompile(`\bhate (phone calls|calling|the phone)\b`),
	}
	avoidSalesPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(not|no longer) interested in (buying|booking|purchasing|signing up|a sale|sales|an appointment)\b`),
		regexp.MustCompile(`\b(don'?t|do not) want to (buy|book|purchase|sign up|schedule|be sold)\b`),
		regexp.MustCompile(`\bno (sales|sales pitch|pitch|upsell|upselling)\b`),
		regexp.MustCompile(`\bjust (browsing|looking|curious|wondering|asking)\b`),
		regexp.MustCompile(`\bnot (looking|ready|trying) to (buy|book|purchase|commit)\b`),
	}
)

// ExtractConstraints infers avoid-phone and avoid-sales flags from the
// message text.
func ExtractConstraints(msg string) Constraints {
	s := Normalize(msg)
	return Constraints{
		AvoidPhone: anyMatch(avoidPhonePatterns, s),
		AvoidSales: anyMatch(avoidSalesPatterns, s),
	}
}

var dayPattern = regexp.MustCompile(`\b(monday|tuesday|wednesday|thursday|friday|saturday|sunday)s?\b`)

// ExtractDay returns the first full weekday name in the message, lower
// case, or "".
func ExtractDay(msg string) string {
	m := dayPattern.FindStringSubmatch(Normalize(msg))
	if m == nil {
		return ""
	}
	return m[1]
}

func anyMatch(patterns []*regexp.Regexp, s string) bool {
	for _, p := range patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}
