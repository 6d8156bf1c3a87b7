package intent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

// Classifier maps a message to a Classification.
type Classifier interface {
	Classify(ctx context.Context, message string) (Classification, error)
}

// Strategy selects which classifier the router consults.
type Strategy string

const (
	StrategyPattern Strategy = "pattern"
	StrategyLLM     Strategy = "llm"
	// StrategyHybrid tries the pattern table and asks the model only when no
	// row matched.
	StrategyHybrid Strategy = "hybrid"
)

// ParseStrategy accepts pattern, llm or hybrid in any case.
func ParseStrategy(s string) (Strategy, error) {
	switch st := Strategy(strings.ToLower(strings.TrimSpace(s))); st {
	case StrategyPattern, StrategyLLM, StrategyHybrid:
		return st, nil
	}
	return "", fmt.Errorf("unsupported classifier strategy: %s", s)
}

const DefaultClassifierTimeout = 5 * time.Second

type Router struct {
	strategy Strategy
	pattern  Classifier
	delegate Classifier
	timeout  time.Duration
	failures prometheus.Counter
}

// NewRouter builds a router. A nil delegate degrades the llm and hybrid
// strategies to the pattern table. failures may be nil.
func NewRouter(strategy Strategy, delegate Classifier, timeout time.Duration, failures prometheus.Counter) *Router {
	if timeout <= 0 {
		timeout = DefaultClassifierTimeout
	}
	return &Router{
		strategy: strategy,
		pattern:  NewPatternClassifier(),
		delegate: delegate,
		timeout:  timeout,
		failures: failures,
	}
}

// Classify never fails. Constraints found in the message text are always
// merged into the result.
func (r *Router) Classify(ctx context.Context, message string) Classification {
	extracted := ExtractConstraints(message)

	var out Classification
	switch {
	case r.delegate == nil || r.strategy == StrategyPattern:
		out, _ = r.pattern.Classify(ctx, message)
	case r.strategy == StrategyLLM:
		out = r.delegated(ctx, message)
	default:
		out, _ = r.pattern.Classify(ctx, message)
		if out.Primary == Unknown {
			out = r.delegated(ctx, message)
		}
	}

	if out.Params.Day == "" {
		out.Params.Day = ExtractDay(message)
	}
	out.Constraints = out.Constraints.Merge(extracted)
	return out
}

func (r *Router) delegated(ctx context.Context, message string) Classification {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	out, err := r.delegate.Classify(ctx, message)
	if err != nil {
		log.Warn().Err(err).Msg("⚠️ Intent classifier failed, using UNKNOWN_INTENT")
		if r.failures != nil {
			r.failures.Inc()
		}
		return UnknownClassification()
	}
	return out
}
