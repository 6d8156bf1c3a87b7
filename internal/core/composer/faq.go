package composer

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/evorisgroup/chatbot-backend/internal/core/intent"
	"github.com/evorisgroup/chatbot-backend/internal/core/tenant"
)

const minFuzzyLen = 4

// MatchFAQ finds the FAQ a message asks about: exact question first, then
// the closest fuzzy match within a distance proportional to its length.
func MatchFAQ(faqs []tenant.FAQ, message string) (tenant.FAQ, bool) {
	msg := faqKey(message)
	if msg == "" || len(faqs) == 0 {
		return tenant.FAQ{}, false
	}

	questions := make([]string, len(faqs))
	for i, f := range faqs {
		questions[i] = faqKey(f.Question)
		if questions[i] != "" && questions[i] == msg && strings.TrimSpace(f.Answer) != "" {
			return f, true
		}
	}
	if len(msg) < minFuzzyLen {
		return tenant.FAQ{}, false
	}

	ranks := fuzzy.RankFindNormalizedFold(msg, questions)
	sort.Sort(ranks)
	for _, r := range ranks {
		f := faqs[r.OriginalIndex]
		if r.Distance <= maxDistance(r.Target) && strings.TrimSpace(f.Answer) != "" {
			return f, true
		}
	}

	// The message may wrap the question in extra words.
	best, bestDist := -1, 0
	for i, q := range questions {
		if len(q) < minFuzzyLen || !fuzzy.MatchNormalizedFold(q, msg) {
			continue
		}
		d := fuzzy.LevenshteinDistance(q, msg)
		if d <= maxDistance(q) && (best < 0 || d < bestDist) && strings.TrimSpace(faqs[i].Answer) != "" {
			best, bestDist = i, d
		}
	}
	if best >= 0 {
		return faqs[best], true
	}
	return tenant.FAQ{}, false
}

func maxDistance(s string) int {
	if d := len(s) / 4; d > 3 {
		return d
	}
	return 3
}

func faqKey(s string) string {
	return strings.Trim(intent.Normalize(s), " ?!.,")
}

// matchService finds a listed service or product named by the classifier or
// mentioned in the message.
func matchService(rec *tenant.Record, named, message string) (string, bool) {
	candidates := nonEmpty(rec.Services)
	for _, p := range rec.Products {
		if n := strings.TrimSpace(p.Name); n != "" {
			candidates = append(candidates, n)
		}
	}
	if len(candidates) == 0 {
		return "", false
	}

	msg := intent.Normalize(message)
	for _, c := range candidates {
		key := intent.Normalize(c)
		if len(key) >= minFuzzyLen && strings.Contains(msg, key) {
			return c, true
		}
	}

	named = strings.TrimSpace(named)
	if len(named) < minFuzzyLen {
		return "", false
	}
	ranks := fuzzy.RankFindNormalizedFold(named, candidates)
	sort.Sort(ranks)
	for _, r := range ranks {
		if r.Distance <= maxDistance(r.Target) {
			return candidates[r.OriginalIndex], true
		}
	}
	return "", false
}
