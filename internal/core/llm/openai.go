package llm

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider talks to OpenAI or any endpoint speaking its chat
// completions API, such as Groq and DeepSeek.
type OpenAIProvider struct {
	name        string
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
}

func NewOpenAIProvider(name, apiKey, baseURL, model string, temperature float32, maxTokens int) *OpenAIProvider {
	if maxTokens == 0 {
		maxTokens = 200
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}

	return &OpenAIProvider{
		name:        name,
		client:      openai.NewClientWithConfig(cfg),
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
	}
}

func (p *OpenAIProvider) GetProviderName() string {
	return p.name
}

func (p *OpenAIProvider) Complete(ctx context.Context, systemConstraints, groundingContext, userMessage string) (string, error) {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: systemConstraints},
	}
	if strings.TrimSpace(groundingContext) != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: "Business information:\n" + groundingContext,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: userMessage})

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.model,
		Messages:    messages,
		Temperature: p.temperature,
		MaxTokens:   p.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("%s error: %w", strings.ToLower(p.name), err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from %s", p.name)
	}

	return resp.Choices[0].Message.Content, nil
}

// NewOpenAIClient returns a client for the first OpenAI-compatible
// endpoint with a key: OpenAI, then the configured provider when it is Groq
// or DeepSeek. It is used for JSON-mode calls such as classification. An
// empty model resolves to the default of whichever endpoint was chosen.
func NewOpenAIClient(cfg *ProviderConfig, model string) (*openai.Client, string, error) {
	var key, baseURL string
	endpoint := ProviderOpenAI
	switch {
	case cfg.OpenAIKey != "":
		key = cfg.OpenAIKey
		if cfg.Type == ProviderOpenAI {
			baseURL = cfg.BaseURL
		}
	case cfg.Type == ProviderGroq && cfg.GroqKey != "":
		key, baseURL, endpoint = cfg.GroqKey, orDefault(cfg.BaseURL, groqBaseURL), ProviderGroq
	case cfg.Type == ProviderDeepSeek && cfg.DeepSeekKey != "":
		key, baseURL, endpoint = cfg.DeepSeekKey, orDefault(cfg.BaseURL, deepSeekBaseURL), ProviderDeepSeek
	default:
		return nil, "", fmt.Errorf("no OpenAI-compatible API key configured")
	}

	if model == "" {
		model = DefaultModel(endpoint)
	}

	oc := openai.DefaultConfig(key)
	if baseURL != "" {
		oc.BaseURL = strings.TrimRight(baseURL, "/")
	}
	return openai.NewClientWithConfig(oc), model, nil
}
