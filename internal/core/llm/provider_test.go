package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider_RequiresKey(t *testing.T) {
	for _, typ := range []ProviderType{ProviderOpenAI, ProviderGroq, ProviderDeepSeek, ProviderClaude, ProviderGemini} {
		_, err := NewProvider(&ProviderConfig{Type: typ})
		assert.Error(t, err, typ)
	}

	_, err := NewProvider(&ProviderConfig{Type: "mystery", OpenAIKey: "k"})
	assert.Error(t, err)
}

func TestNewProvider_Names(t *testing.T) {
	p, err := NewProvider(&ProviderConfig{Type: ProviderGroq, GroqKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, "Groq", p.GetProviderName())

	p, err = NewProvider(&ProviderConfig{Type: ProviderClaude, ClaudeKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, "Anthropic Claude", p.GetProviderName())
}

func TestOpenAIProvider_Complete(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"We open at 9."},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	p := NewOpenAIProvider("OpenAI", "test-key", srv.URL, "gpt-4.1-mini", 0.2, 0)
	reply, err := p.Complete(context.Background(), "Be brief.", "Hours: 9-5", "When do you open?")
	require.NoError(t, err)
	assert.Equal(t, "We open at 9.", reply)

	messages := got["messages"].([]any)
	require.Len(t, messages, 3)
	assert.Equal(t, "Be brief.", messages[0].(map[string]any)["content"])
	assert.Contains(t, messages[1].(map[string]any)["content"], "Hours: 9-5")
	assert.Equal(t, "user", messages[2].(map[string]any)["role"])
	assert.Equal(t, float64(200), got["max_tokens"])
}

func TestOpenAIProvider_NoGrounding(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	p := NewOpenAIProvider("Groq", "k", srv.URL, "m", 0, 50)
	_, err := p.Complete(context.Background(), "rules", "", "hi")
	assert.ErrorContains(t, err, "no response from Groq")
	assert.Len(t, got["messages"].([]any), 2)
}

func TestClaudeProvider_Complete(t *testing.T) {
	var got claudeRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/messages", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("x-api-key"))
		assert.NotEmpty(t, r.Header.Get("anthropic-version"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"Call us any time."}]}`))
	}))
	defer srv.Close()

	p := NewClaudeProvider("secret", srv.URL, "claude-test", 0, 0)
	reply, err := p.Complete(context.Background(), "Rules.", "Phone: 555", "phone?")
	require.NoError(t, err)
	assert.Equal(t, "Call us any time.", reply)
	assert.Equal(t, "Rules.\n\nBusiness information:\nPhone: 555", got.System)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "phone?", got.Messages[0].Content)
}

func TestClaudeProvider_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"overloaded"}`, http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewClaudeProvider("k", srv.URL, "m", 0, 0).Complete(context.Background(), "", "", "hi")
	assert.ErrorContains(t, err, "status: 503")
}

func TestGeminiProvider_Complete(t *testing.T) {
	var got geminiRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/gemini-test:generateContent", r.URL.Path)
		assert.Equal(t, "g-key", r.Header.Get("x-goog-api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Yes, we are."}]}}]}`))
	}))
	defer srv.Close()

	reply, err := NewGeminiProvider("g-key", srv.URL, "gemini-test", 0, 0).Complete(context.Background(), "Rules.", "", "open?")
	require.NoError(t, err)
	assert.Equal(t, "Yes, we are.", reply)
	require.Len(t, got.Contents, 1)
	assert.Equal(t, "Rules.\n\nCustomer message:\nopen?", got.Contents[0].Parts[0].Text)
}

type slowProvider struct{}

func (slowProvider) Complete(ctx context.Context, _, _, _ string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func (slowProvider) GetProviderName() string { return "slow" }

func TestService_Timeout(t *testing.T) {
	svc := NewService(slowProvider{}, 20*time.Millisecond)

	start := time.Now()
	_, err := svc.Complete(context.Background(), "", "", "hi")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, "slow", svc.GetProviderName())
}

func TestNewOpenAIClient(t *testing.T) {
	_, _, err := NewOpenAIClient(&ProviderConfig{Type: ProviderClaude, ClaudeKey: "k"}, "")
	assert.Error(t, err)

	c, model, err := NewOpenAIClient(&ProviderConfig{Type: ProviderClaude, ClaudeKey: "k", OpenAIKey: "o"}, "")
	require.NoError(t, err)
	assert.NotNil(t, c)
	assert.Equal(t, DefaultModel(ProviderOpenAI), model)

	c, model, err = NewOpenAIClient(&ProviderConfig{Type: ProviderGroq, GroqKey: "g"}, "")
	require.NoError(t, err)
	assert.NotNil(t, c)
	assert.Equal(t, "llama-3.1-8b-instant", model)
}

func TestNewOpenAIClient_ModelFollowsEndpoint(t *testing.T) {
	_, model, err := NewOpenAIClient(&ProviderConfig{Type: ProviderDeepSeek, DeepSeekKey: "d"}, "")
	require.NoError(t, err)
	assert.Equal(t, "deepseek-chat", model)

	_, model, err = NewOpenAIClient(&ProviderConfig{Type: ProviderGroq, GroqKey: "g", OpenAIKey: "o"}, "")
	require.NoError(t, err)
	assert.Equal(t, DefaultModel(ProviderOpenAI), model, "an OpenAI key wins over the provider endpoint")

	_, model, err = NewOpenAIClient(&ProviderConfig{Type: ProviderGroq, GroqKey: "g"}, "llama-3.3-70b-versatile")
	require.NoError(t, err)
	assert.Equal(t, "llama-3.3-70b-versatile", model)
}
