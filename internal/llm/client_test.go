package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBackend struct {
	replies []string
	errs    []error
	calls   int
	prompts []string
}

func (s *stubBackend) Name() string { return "stub/test" }

func (s *stubBackend) Generate(ctx context.Context, prompt string) (string, error) {
	i := s.calls
	s.calls++
	s.prompts = append(s.prompts, prompt)
	var err error
	if i < len(s.errs) {
		err = s.errs[i]
	}
	if err != nil {
		return "", err
	}
	if i < len(s.replies) {
		return s.replies[i], nil
	}
	if len(s.replies) > 0 {
		return s.replies[len(s.replies)-1], nil
	}
	return "", nil
}

func fastRetry(n int) RetryConfig {
	return RetryConfig{MaxRetries: n, InitialDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond, Multiplier: 1.5}
}

func TestMissingCredentialSkipsBackend(t *testing.T) {
	backend := &stubBackend{replies: []string{"CODE"}}
	c := New(backend, Options{APIKey: "  "})

	assert.False(t, c.HasCredential())

	res := c.GenerateCode(context.Background(), "prompt")
	assert.Equal(t, KindMissingCredential, res.Kind)
	assert.Equal(t, MsgMissingCredential, res.Text)
	assert.False(t, res.OK())

	res = c.GenerateDiagram(context.Background(), "prompt")
	assert.Equal(t, KindMissingCredential, res.Kind)

	assert.Equal(t, 0, backend.calls)
}

func TestGenerateCodeTrimsOutput(t *testing.T) {
	backend := &stubBackend{replies: []string{"\n  CODE_X \n"}}
	c := New(backend, Options{APIKey: "key"})

	res := c.GenerateCode(context.Background(), "the prompt")
	require.True(t, res.OK())
	assert.Equal(t, "CODE_X", res.Text)
	assert.NoError(t, res.Err)
	assert.Equal(t, []string{"the prompt"}, backend.prompts)
}

func TestEmptyResponsesUseFallbacks(t *testing.T) {
	backend := &stubBackend{replies: []string{"   "}}
	c := New(backend, Options{APIKey: "key"})

	res := c.GenerateCode(context.Background(), "p")
	assert.Equal(t, KindEmpty, res.Kind)
	assert.Equal(t, MsgCodeEmpty, res.Text)

	res = c.GenerateDiagram(context.Background(), "p")
	assert.Equal(t, KindEmpty, res.Kind)
	assert.Equal(t, MsgDiagramEmpty, res.Text)
}

func TestFailuresAreStructured(t *testing.T) {
	boom := errors.New("connection reset")
	backend := &stubBackend{errs: []error{boom, boom}}
	c := New(backend, Options{APIKey: "key"})

	res := c.GenerateCode(context.Background(), "p")
	assert.Equal(t, KindFailed, res.Kind)
	assert.Equal(t, MsgCodeFailed, res.Text)
	assert.ErrorIs(t, res.Err, boom)

	res = c.GenerateDiagram(context.Background(), "p")
	assert.Equal(t, KindFailed, res.Kind)
	assert.Equal(t, MsgDiagramFailed, res.Text)
	assert.ErrorIs(t, res.Err, boom)
}

func TestRetriesTransientAPIErrors(t *testing.T) {
	backend := &stubBackend{
		errs: []error{
			&APIError{StatusCode: 503, Message: "overloaded"},
			&APIError{StatusCode: 429, Message: "slow down"},
		},
		replies: []string{"", "", "CODE"},
	}
	c := New(backend, Options{APIKey: "key", Retry: fastRetry(3)})

	res := c.GenerateCode(context.Background(), "p")
	require.True(t, res.OK(), "result: %+v", res)
	assert.Equal(t, "CODE", res.Text)
	assert.Equal(t, 3, backend.calls)
}

func TestDoesNotRetryPermanentErrors(t *testing.T) {
	backend := &stubBackend{errs: []error{&APIError{StatusCode: 400, Message: "bad key"}}}
	c := New(backend, Options{APIKey: "key", Retry: fastRetry(3)})

	res := c.GenerateCode(context.Background(), "p")
	assert.Equal(t, KindFailed, res.Kind)
	assert.Equal(t, 1, backend.calls)

	var apiErr *APIError
	require.ErrorAs(t, res.Err, &apiErr)
	assert.Equal(t, 400, apiErr.StatusCode)
}

func TestDefaultRetryMakesOneAttempt(t *testing.T) {
	backend := &stubBackend{errs: []error{&APIError{StatusCode: 500}}}
	c := New(backend, Options{APIKey: "key", Retry: DefaultRetryConfig()})

	res := c.GenerateCode(context.Background(), "p")
	assert.Equal(t, KindFailed, res.Kind)
	assert.Equal(t, 1, backend.calls)
}

type slowBackend struct{}

func (slowBackend) Name() string { return "slow" }

func (slowBackend) Generate(ctx context.Context, prompt string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func TestTimeoutBoundsRequest(t *testing.T) {
	c := New(slowBackend{}, Options{APIKey: "key", Timeout: 10 * time.Millisecond, Retry: fastRetry(5)})

	res := c.GenerateDiagram(context.Background(), "p")
	assert.Equal(t, KindFailed, res.Kind)
	assert.ErrorIs(t, res.Err, context.DeadlineExceeded)
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"429", &APIError{StatusCode: 429}, true},
		{"502", &APIError{StatusCode: 502}, true},
		{"401", &APIError{StatusCode: 401}, false},
		{"wrapped 503", errors.Join(errors.New("ctx"), &APIError{StatusCode: 503}), true},
		{"rate limit text", errors.New("provider: Rate limit exceeded"), true},
		{"canceled", context.Canceled, false},
		{"plain", errors.New("boom"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryable(tt.err))
		})
	}
}

func TestNewBackendSelectsImplementation(t *testing.T) {
	_, ok := NewBackend("", "", "k", "").(*GeminiBackend)
	assert.True(t, ok)
	_, ok = NewBackend("Gemini", "gemini-2.0-flash", "k", "").(*GeminiBackend)
	assert.True(t, ok)

	b := NewBackend("openai", "gpt-4o", "k", "")
	_, ok = b.(*GollmBackend)
	assert.True(t, ok)
	assert.Equal(t, "openai/gpt-4o", b.Name())

	assert.Equal(t, "gemini/"+DefaultModel, NewBackend("gemini", "", "k", "").Name())
}

type localBackend struct {
	stubBackend
}

func (*localBackend) NeedsAPIKey() bool { return false }

func TestKeylessBackendRunsWithoutCredential(t *testing.T) {
	backend := &localBackend{stubBackend{replies: []string{"CODE"}}}
	c := New(backend, Options{})

	assert.False(t, c.HasCredential())
	assert.True(t, c.Ready())

	res := c.GenerateCode(context.Background(), "p")
	assert.True(t, res.OK())
	assert.Equal(t, 1, backend.calls)
}

func TestGollmProvidersNeedingKeys(t *testing.T) {
	assert.False(t, NewGollmBackend("ollama", "llama3", "", "").NeedsAPIKey())
	assert.False(t, NewGollmBackend(" Ollama ", "llama3", "", "").NeedsAPIKey())
	assert.True(t, NewGollmBackend("openai", "gpt-4o", "", "").NeedsAPIKey())

	c := New(NewGollmBackend("openai", "gpt-4o", "", ""), Options{})
	assert.False(t, c.Ready())
	assert.Equal(t, KindMissingCredential, c.GenerateCode(context.Background(), "p").Kind)
}

func TestEndpointURL(t *testing.T) {
	tests := []struct {
		base, provider, want string
	}{
		{"https://api.example.com/v1", "openai", "https://api.example.com/v1/chat/completions"},
		{"https://api.example.com/v1/", "groq", "https://api.example.com/v1/chat/completions"},
		{"https://api.example.com/v1/chat/completions", "openai", "https://api.example.com/v1/chat/completions"},
		{"https://api.anthropic.com/v1", "anthropic", "https://api.anthropic.com/v1/messages"},
		{"https://api.anthropic.com/v1/messages", "anthropic", "https://api.anthropic.com/v1/messages"},
	}

	for _, tt := range tests {
		t.Run(tt.provider+" "+tt.base, func(t *testing.T) {
			assert.Equal(t, tt.want, endpointURL(tt.base, tt.provider))
		})
	}
}

func TestIsGemini(t *testing.T) {
	for _, p := range []string{"", "gemini", "Google", " gemini "} {
		assert.True(t, IsGemini(p), p)
	}
	for _, p := range []string{"openai", "ollama", "anthropic"} {
		assert.False(t, IsGemini(p), p)
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "ok", KindOK.String())
	assert.Equal(t, "missing_credential", KindMissingCredential.String())
	assert.Equal(t, "failed", KindFailed.String())
	assert.Equal(t, "kind(9)", Kind(9).String())
}
