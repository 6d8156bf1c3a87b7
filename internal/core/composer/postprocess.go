package composer

import (
	"regexp"
	"strings"
)

const (
	MaxSentences = 3
	MaxWords     = 60
)

var rolePrefix = regexp.MustCompile(`(?i)^\s*(assistant|ai|bot|agent|support|response|answer)\s*:\s*`)

// PostProcess cleans model output and caps it to the reply budget.
func PostProcess(raw string) string {
	s := strings.TrimSpace(raw)
	s = rolePrefix.ReplaceAllString(s, "")
	s = unquote(s)
	s = strings.Join(strings.Fields(s), " ")
	s = capSentences(s, MaxSentences)
	return capWords(s, MaxWords)
}

func unquote(s string) string {
	for _, q := range [][2]string{{`"`, `"`}, {"“", "”"}, {"'", "'"}} {
		if len(s) >= len(q[0])+len(q[1]) && strings.HasPrefix(s, q[0]) && strings.HasSuffix(s, q[1]) {
			s = strings.TrimSpace(s[len(q[0]) : len(s)-len(q[1])])
		}
	}
	return s
}

func capSentences(s string, limit int) string {
	count := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '.', '!', '?':
			// Runs like "?!" or "..." end one sentence.
			for i+1 < len(s) && strings.IndexByte(".!?", s[i+1]) >= 0 {
				i++
			}
			if i+1 < len(s) && s[i+1] != ' ' {
				continue
			}
			count++
			if count == limit {
				return strings.TrimSpace(s[:i+1])
			}
		}
	}
	return s
}

func capWords(s string, limit int) string {
	words := strings.Fields(s)
	if len(words) <= limit {
		return s
	}
	out := strings.TrimRight(strings.Join(words[:limit], " "), ",;:-")
	return out + "..."
}
