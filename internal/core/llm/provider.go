package llm

import (
	"context"
	"fmt"
	"strings"
)

// Provider answers one grounded chat turn. systemConstraints carries the
// rules the model must follow and groundingContext the only facts it may
// use.
type Provider interface {
	Complete(ctx context.Context, systemConstraints, groundingContext, userMessage string) (string, error)
	GetProviderName() string
}

type ProviderType string

const (
	ProviderOpenAI   ProviderType = "openai"
	ProviderGroq     ProviderType = "groq"
	ProviderDeepSeek ProviderType = "deepseek"
	ProviderClaude   ProviderType = "claude"
	ProviderGemini   ProviderType = "gemini"
)

const (
	groqBaseURL     = "https://api.groq.com/openai/v1"
	deepSeekBaseURL = "https://api.deepseek.com/v1"
	claudeBaseURL   = "https://api.anthropic.com/v1"
	geminiBaseURL   = "https://generativelanguage.googleapis.com/v1"
)

type ProviderConfig struct {
	Type ProviderType

	OpenAIKey   string
	GroqKey     string
	DeepSeekKey string
	ClaudeKey   string
	GeminiKey   string

	Model       string
	Temperature float32
	MaxTokens   int

	// BaseURL overrides the provider endpoint.
	BaseURL string
}

// DefaultModel returns the model used when none is configured.
func DefaultModel(t ProviderType) string {
	switch t {
	case ProviderGroq:
		return "llama-3.1-8b-instant"
	case ProviderDeepSeek:
		return "deepseek-chat"
	case ProviderClaude:
		return "claude-3-5-haiku-20241022"
	case ProviderGemini:
		return "gemini-2.5-flash"
	}
	return "gpt-4.1-mini"
}

func NewProvider(cfg *ProviderConfig) (Provider, error) {
	model := cfg.Model
	if model == "" {
		model = DefaultModel(cfg.Type)
	}

	switch cfg.Type {
	case ProviderOpenAI:
		if cfg.OpenAIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required")
		}
		return NewOpenAIProvider("OpenAI", cfg.OpenAIKey, cfg.BaseURL, model, cfg.Temperature, cfg.MaxTokens), nil

	case ProviderGroq:
		if cfg.GroqKey == "" {
			return nil, fmt.Errorf("GROQ_API_KEY is required")
		}
		return NewOpenAIProvider("Groq", cfg.GroqKey, orDefault(cfg.BaseURL, groqBaseURL), model, cfg.Temperature, cfg.MaxTokens), nil

	case ProviderDeepSeek:
		if cfg.DeepSeekKey == "" {
			return nil, fmt.Errorf("DEEPSEEK_API_KEY is required")
		}
		return NewOpenAIProvider("DeepSeek", cfg.DeepSeekKey, orDefault(cfg.BaseURL, deepSeekBaseURL), model, cfg.Temperature, cfg.MaxTokens), nil

	case ProviderClaude:
		if cfg.ClaudeKey == "" {
			return nil, fmt.Errorf("CLAUDE_API_KEY is required")
		}
		return NewClaudeProvider(cfg.ClaudeKey, orDefault(cfg.BaseURL, claudeBaseURL), model, cfg.Temperature, cfg.MaxTokens), nil

	case ProviderGemini:
		if cfg.GeminiKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required")
		}
		return NewGeminiProvider(cfg.GeminiKey, orDefault(cfg.BaseURL, geminiBaseURL), model, cfg.Temperature, cfg.MaxTokens), nil

	default:
		return nil, fmt.Errorf("unknown LLM provider type: %s", cfg.Type)
	}
}

// systemPrompt joins constraints and grounding into one system text for
// providers that take a single system field.
func systemPrompt(systemConstraints, groundingContext string) string {
	systemConstraints = strings.TrimSpace(systemConstraints)
	groundingContext = strings.TrimSpace(groundingContext)
	if groundingContext == "" {
		return systemConstraints
	}
	return systemConstraints + "\n\nBusiness information:\n" + groundingContext
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
