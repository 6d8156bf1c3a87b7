package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"github.com/evorisgroup/chatbot-backend/internal/core/composer"
	"github.com/evorisgroup/chatbot-backend/internal/core/intent"
	"github.com/evorisgroup/chatbot-backend/internal/core/schedule"
	"github.com/evorisgroup/chatbot-backend/internal/core/tenant"
)

// DefaultFetchTimeout bounds a single tenant lookup.
const DefaultFetchTimeout = 3 * time.Second

// IntentRouter classifies a message. Classification never fails.
type IntentRouter interface {
	Classify(ctx context.Context, message string) intent.Classification
}

// ReplyComposer turns a classified message into a reply.
type ReplyComposer interface {
	Compose(ctx context.Context, in composer.Input) composer.Reply
}

// Options tunes a ChatService. Zero values fall back to defaults; the
// metric collectors may be nil.
type Options struct {
	FetchTimeout    time.Duration
	DefaultLocation *time.Location
	Now             func() time.Time
	Replies         *prometheus.CounterVec
	Duration        prometheus.ObserverVec
}

// ChatService runs the chat pipeline: greeting check, tenant lookup,
// schedule resolution, classification and composition.
type ChatService struct {
	tenants  tenant.Store
	router   IntentRouter
	composer ReplyComposer
	opts     Options
}

func NewChatService(tenants tenant.Store, router IntentRouter, replies ReplyComposer, opts Options) *ChatService {
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = DefaultFetchTimeout
	}
	if opts.DefaultLocation == nil {
		opts.DefaultLocation = time.UTC
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &ChatService{tenants: tenants, router: router, composer: replies, opts: opts}
}

// Reply answers one message for clientID. It never returns an empty reply
// and never panics.
func (s *ChatService) Reply(ctx context.Context, clientID, message string) (reply composer.Reply) {
	start := time.Now()
	requestID := RequestIDFrom(ctx)
	logger := log.With().Str("request_id", requestID).Str("client_id", clientID).Logger()

	defer func() {
		if r := recover(); r != nil {
			logger.Error().Interface("panic", r).Msg("❌ Chat pipeline panicked")
			reply = composer.Unavailable()
		}
		s.observe(reply, time.Since(start))
		logger.Info().
			Str("path", string(reply.Path)).
			Str("intent", string(reply.Intent)).
			Dur("took", time.Since(start)).
			Msg("💬 Reply sent")
	}()

	if intent.IsGreeting(message) {
		return composer.Greeting()
	}

	rec, err := s.fetch(ctx, clientID)
	if err != nil {
		if errors.Is(err, tenant.ErrNotFound) {
			logger.Warn().Msg("⚠️ Unknown client id")
		} else {
			logger.Error().Err(err).Msg("❌ Failed to load tenant")
		}
		return composer.Unavailable()
	}

	now := s.opts.Now().In(rec.Location(s.opts.DefaultLocation))
	state := schedule.Resolve(rec.WeeklyHours, rec.Holidays.Set(), now)
	class := s.router.Classify(ctx, message)

	logger.Debug().
		Str("intent", string(class.Primary)).
		Str("secondary", string(class.Secondary)).
		Bool("avoid_phone", class.Constraints.AvoidPhone).
		Bool("avoid_sales", class.Constraints.AvoidSales).
		Msg("🧭 Message classified")

	return s.composer.Compose(ctx, composer.Input{
		Tenant:  rec,
		State:   state,
		Class:   class,
		Message: message,
		Now:     now,
	})
}

// Tenant looks up the record behind clientID under the fetch timeout.
func (s *ChatService) Tenant(ctx context.Context, clientID string) (*tenant.Record, error) {
	return s.fetch(ctx, clientID)
}

func (s *ChatService) fetch(ctx context.Context, clientID string) (*tenant.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opts.FetchTimeout)
	defer cancel()

	rec, err := s.tenants.FetchTenant(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, tenant.ErrNotFound
	}
	return rec, nil
}

func (s *ChatService) observe(reply composer.Reply, took time.Duration) {
	if s.opts.Replies != nil {
		s.opts.Replies.WithLabelValues(string(reply.Path), string(reply.Intent)).Inc()
	}
	if s.opts.Duration != nil {
		s.opts.Duration.WithLabelValues(string(reply.Path)).Observe(took.Seconds())
	}
}

type requestIDKey struct{}

// WithRequestID attaches the caller's request id to ctx.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFrom returns the id attached by WithRequestID, or a fresh one.
func RequestIDFrom(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
		return id
	}
	return uuid.NewString()
}
