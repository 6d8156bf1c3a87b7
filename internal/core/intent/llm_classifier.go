package intent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/sashabaranov/go-openai"
)

const DefaultClassifierModel = "gpt-4.1-mini"

// classifierTemperature is the lowest temperature that survives the
// request's omitempty tag; a literal 0 would leave the API default of 1.
const classifierTemperature = math.SmallestNonzeroFloat32

// ChatCompleter is the part of *openai.Client the classifier needs.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// LLMClassifier asks an OpenAI-compatible model for a JSON classification.
type LLMClassifier struct {
	client ChatCompleter
	model  string
	prompt string
}

func NewLLMClassifier(client ChatCompleter, model string) *LLMClassifier {
	if model == "" {
		model = DefaultClassifierModel
	}
	return &LLMClassifier{
		client: client,
		model:  model,
		prompt: classifierPrompt(),
	}
}

// Classify returns UnknownClassification plus the cause on any failure.
func (c *LLMClassifier) Classify(ctx context.Context, message string) (Classification, error) {
	if c.client == nil {
		return UnknownClassification(), errors.New("classifier client not configured")
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: classifierTemperature,
		MaxTokens:   150,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: c.prompt},
			{Role: openai.ChatMessageRoleUser, Content: message},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return UnknownClassification(), fmt.Errorf("classifier request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return UnknownClassification(), errors.New("classifier returned no choices")
	}

	return ParseClassification(resp.Choices[0].Message.Content)
}

type wireClassification struct {
	Primary    string  `json:"primary_intent"`
	Secondary  *string `json:"secondary_intent"`
	Parameters struct {
		Day      *string `json:"day"`
		Service  *string `json:"service"`
		Location *string `json:"location"`
	} `json:"parameters"`
	Constraints struct {
		AvoidPhone bool `json:"avoid_phone"`
		AvoidSales bool `json:"avoid_sales"`
	} `json:"constraints"`
}

// ParseClassification decodes model output. A primary tag outside the
// closed set is an error; an unknown secondary tag is dropped.
func ParseClassification(content string) (Classification, error) {
	var w wireClassification
	if err := json.Unmarshal([]byte(stripFence(content)), &w); err != nil {
		return UnknownClassification(), fmt.Errorf("classifier output is not JSON: %w", err)
	}

	primary, ok := Parse(strings.TrimSpace(w.Primary))
	if !ok {
		return UnknownClassification(), fmt.Errorf("classifier returned unknown intent %q", w.Primary)
	}

	out := Classification{
		Primary: primary,
		Params: Params{
			Day:      strings.ToLower(deref(w.Parameters.Day)),
			Service:  deref(w.Parameters.Service),
			Location: deref(w.Parameters.Location),
		},
		Constraints: Constraints{
			AvoidPhone: w.Constraints.AvoidPhone,
			AvoidSales: w.Constraints.AvoidSales,
		},
	}
	if w.Secondary != nil {
		if sec, ok := Parse(strings.TrimSpace(*w.Secondary)); ok && sec != primary && sec != Unknown {
			out.Secondary = sec
		}
	}
	return out, nil
}

func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

var familyTitles = []struct {
	family Family
	title  string
}{
	{FamilyHours, "TIME & AVAILABILITY"},
	{FamilyContact, "CONTACT"},
	{FamilyAppointments, "APPOINTMENTS"},
	{FamilyPricing, "PRICING & PAYMENTS"},
	{FamilyServices, "SERVICES"},
	{FamilyLocations, "LOCATIONS"},
	{FamilyCompany, "COMPANY INFO"},
	{FamilyOther, "OTHER"},
}

func classifierPrompt() string {
	var b strings.Builder
	b.WriteString(`You are an intent classification engine for a customer support chat.

Return exactly one JSON object describing the intent of the user's message.
Do not answer the question, explain your reasoning, write anything outside the JSON, or invent business facts.

Rules:
- Choose exactly one primary intent and at most one secondary intent.
- The secondary intent must not conflict with the primary.
- Extract parameters and constraints only when clearly stated.
- Use UNKNOWN_INTENT when no intent clearly applies.

Distinctions:
- "What are your hours?" -> GENERAL_HOURS
- "What are your hours today?" -> TODAY_HOURS
- "Are you open now?" -> OPEN_NOW
- "What time do you open next?" -> NEXT_OPEN_TIME

Constraints:
- The user cannot or does not want to call: avoid_phone = true
- The user does not want sales or booking: avoid_sales = true

Allowed intents:
`)
	for _, ft := range familyTitles {
		b.WriteString("\n")
		b.WriteString(ft.title)
		b.WriteString("\n")
		for _, in := range all {
			if in.Family() == ft.family {
				b.WriteString("- ")
				b.WriteString(string(in))
				b.WriteString("\n")
			}
		}
	}
	b.WriteString(`
Parameters:
- "day": a day of the week, monday to sunday
- "service": only when a specific service is named
- "location": only when a specific location is named

Output format:
{"primary_intent":"INTENT_NAME","secondary_intent":null,"parameters":{"day":null,"service":null,"location":null},"constraints":{"avoid_phone":false,"avoid_sales":false}}
`)
	return b.String()
}
