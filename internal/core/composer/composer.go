package composer

import (
	"context"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"github.com/evorisgroup/chatbot-backend/internal/core/intent"
	"github.com/evorisgroup/chatbot-backend/internal/core/schedule"
	"github.com/evorisgroup/chatbot-backend/internal/core/tenant"
)

// Fixed replies. None of them is ever empty.
const (
	GreetingReply       = "Hi there! How can I help you today?"
	UnavailableReply    = "Sorry, that information isn't available right now. Please try again later."
	ClarificationReply  = "Sorry, I didn't quite catch that. Could you rephrase your question?"
	InvalidRequestReply = "Sorry, I couldn't read that message. Please try again."
)

// Path records how a reply was produced.
type Path string

const (
	PathGreeting      Path = "greeting"
	PathDeterministic Path = "deterministic"
	PathDelegated     Path = "delegated"
	PathFallback      Path = "fallback"
	PathUnavailable   Path = "unavailable"
)

// Completer is the delegated language model.
type Completer interface {
	Complete(ctx context.Context, systemConstraints, groundingContext, userMessage string) (string, error)
}

type Input struct {
	Tenant  *tenant.Record
	State   schedule.State
	Class   intent.Classification
	Message string
	Now     time.Time
}

type Reply struct {
	Text   string
	Path   Path
	Intent intent.Intent
}

func Greeting() Reply {
	return Reply{Text: GreetingReply, Path: PathGreeting}
}

func Unavailable() Reply {
	return Reply{Text: UnavailableReply, Path: PathUnavailable}
}

type Composer struct {
	completer Completer
	failures  prometheus.Counter
}

// New builds a Composer. A nil completer answers every delegated intent
// with ClarificationReply. failures may be nil.
func New(completer Completer, failures prometheus.Counter) *Composer {
	return &Composer{completer: completer, failures: failures}
}

// Compose never returns an empty reply.
func (c *Composer) Compose(ctx context.Context, in Input) Reply {
	if in.Tenant == nil {
		return Unavailable()
	}
	primary := in.Class.Primary
	if primary == "" {
		primary = intent.Unknown
	}

	text, ok := answer(primary, in)
	path := PathDeterministic
	if !ok {
		var delegated bool
		text, delegated = c.delegate(ctx, primary, in)
		if !delegated {
			return Reply{Text: ClarificationReply, Path: PathFallback, Intent: primary}
		}
		path = PathDelegated
	}

	if sec := in.Class.Secondary; sec != "" && sec != primary && !suppressed(sec, in.Class.Constraints) {
		if extra, ok := answer(sec, in); ok && !strings.Contains(text, extra) {
			text = text + " " + extra
		}
	}

	if ShouldSuggestCall(in.Tenant, in.Class) {
		text = appendCallToAction(text, in.Tenant.PhoneNumber, in.State)
	}

	return Reply{Text: text, Path: path, Intent: primary}
}

func (c *Composer) delegate(ctx context.Context, primary intent.Intent, in Input) (string, bool) {
	if c.completer == nil {
		return "", false
	}

	constraints := SystemConstraints(in.Tenant, primary, in.Class.Constraints)
	grounding := BuildGrounding(in.Tenant, in.State, in.Class, in.Now)

	raw, err := c.completer.Complete(ctx, constraints, grounding, in.Message)
	if err != nil {
		log.Warn().Err(err).
			Str("client_id", in.Tenant.ClientID).
			Str("intent", string(primary)).
			Msg("⚠️ Language model call failed, sending clarification reply")
		if c.failures != nil {
			c.failures.Inc()
		}
		return "", false
	}

	text := PostProcess(raw)
	if text == "" {
		return "", false
	}
	return text, true
}

// suppressed reports whether a secondary answer would contradict the
// customer's constraints. CONTACT_METHODS drops the phone on its own.
func suppressed(sec intent.Intent, c intent.Constraints) bool {
	return c.AvoidPhone && sec == intent.ContactPhone
}
