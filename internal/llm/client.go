package llm

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Options configures a Client.
type Options struct {
	APIKey  string
	Timeout time.Duration // per request, 0 for none
	Retry   RetryConfig
	Logger  *zap.Logger
}

// Client wraps a Backend with the credential check, timeout and retry
// policy, and maps every outcome to a Result.
type Client struct {
	backend Backend
	opts    Options
	log     *zap.Logger
}

// New creates a client around a backend.
func New(backend Backend, opts Options) *Client {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		backend: backend,
		opts:    opts,
		log:     log.Named("llm"),
	}
}

// Name describes the backend in use.
func (c *Client) Name() string {
	return c.backend.Name()
}

// HasCredential reports whether an API key is configured.
func (c *Client) HasCredential() bool {
	return strings.TrimSpace(c.opts.APIKey) != ""
}

// Ready reports whether requests can be sent: either a key is configured
// or the backend does not need one.
func (c *Client) Ready() bool {
	if k, ok := c.backend.(keyless); ok && !k.NeedsAPIKey() {
		return true
	}
	return c.HasCredential()
}

// MissingCredential is the result returned when no API key is configured.
func MissingCredential() Result {
	return Result{Kind: KindMissingCredential, Text: MsgMissingCredential}
}

// GenerateCode asks the model for circuit code.
func (c *Client) GenerateCode(ctx context.Context, prompt string) Result {
	return c.generate(ctx, "code", prompt, MsgCodeEmpty, MsgCodeFailed)
}

// GenerateDiagram asks the model for a text diagram of generated code.
func (c *Client) GenerateDiagram(ctx context.Context, prompt string) Result {
	return c.generate(ctx, "diagram", prompt, MsgDiagramEmpty, MsgDiagramFailed)
}

func (c *Client) generate(ctx context.Context, kind, prompt, emptyMsg, failedMsg string) Result {
	if !c.Ready() {
		c.log.Warn("skipping request without API key", zap.String("kind", kind))
		return MissingCredential()
	}

	if c.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.opts.Timeout)
		defer cancel()
	}

	c.log.Debug("request started",
		zap.String("kind", kind),
		zap.String("backend", c.backend.Name()),
		zap.Int("prompt_chars", len(prompt)))
	start := time.Now()

	var text string
	attempt := 0
	err := c.opts.Retry.do(ctx, func() error {
		attempt++
		out, err := c.backend.Generate(ctx, prompt)
		if err != nil {
			return err
		}
		text = out
		return nil
	}, func(err error, next time.Duration) {
		c.log.Warn("request failed, retrying",
			zap.String("kind", kind),
			zap.Int("attempt", attempt),
			zap.Duration("backoff", next),
			zap.Error(err))
	})
	if err != nil {
		c.log.Error("request failed",
			zap.String("kind", kind),
			zap.Int("attempts", attempt),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return Result{Kind: KindFailed, Text: failedMsg, Err: err}
	}

	text = strings.TrimSpace(text)
	c.log.Debug("request finished",
		zap.String("kind", kind),
		zap.Int("attempts", attempt),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("response_chars", len(text)))

	if text == "" {
		return Result{Kind: KindEmpty, Text: emptyMsg}
	}
	return Result{Kind: KindOK, Text: text}
}
