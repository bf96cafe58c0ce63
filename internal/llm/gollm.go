package llm

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/teilomillet/gollm"
)

// GollmBackend reaches any provider gollm supports (openai, anthropic,
// ollama, groq, mistral, ...). The gollm instance is built on first use so a
// missing key never fails startup.
type GollmBackend struct {
	provider string
	model    string
	apiKey   string
	endpoint string

	once     sync.Once
	instance gollm.LLM
	initErr  error
}

// NewGollmBackend creates a backend for the named provider.
func NewGollmBackend(provider, model, apiKey, endpoint string) *GollmBackend {
	return &GollmBackend{
		provider: strings.ToLower(strings.TrimSpace(provider)),
		model:    model,
		apiKey:   strings.TrimSpace(apiKey),
		endpoint: endpoint,
	}
}

// Name returns "<provider>/<model>".
func (b *GollmBackend) Name() string {
	return b.provider + "/" + b.model
}

func (b *GollmBackend) init() {
	opts := []gollm.ConfigOption{
		gollm.SetProvider(b.provider),
		gollm.SetModel(b.model),
		gollm.SetAPIKey(b.apiKey),
		gollm.SetLogLevel(gollm.LogLevelOff),
		gollm.SetMaxRetries(0), // Client owns retries
	}
	if b.provider == "ollama" && b.endpoint != "" {
		opts = append(opts, gollm.SetOllamaEndpoint(b.endpoint))
	}

	instance, err := gollm.NewLLM(opts...)
	if err != nil {
		b.initErr = fmt.Errorf("gollm init [%s/%s]: %w", b.provider, b.model, err)
		return
	}
	if b.endpoint != "" && b.provider != "ollama" {
		instance.SetEndpoint(endpointURL(b.endpoint, b.provider))
	}
	b.instance = instance
}

// NeedsAPIKey reports whether the provider authenticates with a key.
// A local ollama server does not.
func (b *GollmBackend) NeedsAPIKey() bool {
	return b.provider != "ollama"
}

// endpointURL appends the completion path a custom base URL is missing.
func endpointURL(baseURL, provider string) string {
	baseURL = strings.TrimRight(baseURL, "/")
	switch provider {
	case "anthropic":
		if strings.HasSuffix(baseURL, "/messages") {
			return baseURL
		}
		return baseURL + "/messages"
	default:
		if strings.HasSuffix(baseURL, "/chat/completions") {
			return baseURL
		}
		return baseURL + "/chat/completions"
	}
}

// Generate sends prompt through gollm.
func (b *GollmBackend) Generate(ctx context.Context, prompt string) (string, error) {
	b.once.Do(b.init)
	if b.initErr != nil {
		return "", b.initErr
	}
	return b.instance.Generate(ctx, gollm.NewPrompt(prompt))
}

// IsGemini reports whether provider selects the native Gemini client.
func IsGemini(provider string) bool {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "", "gemini", "google":
		return true
	}
	return false
}

// NewBackend picks the backend for a provider name. "gemini" (or empty)
// uses the native Gemini client with DefaultModel when model is empty;
// anything else goes through gollm and needs an explicit model.
func NewBackend(provider, model, apiKey, endpoint string) Backend {
	if IsGemini(provider) {
		return NewGeminiBackend(apiKey, model, endpoint)
	}
	return NewGollmBackend(provider, model, apiKey, endpoint)
}
