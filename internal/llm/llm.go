// Package llm calls the external generative-language service and normalizes
// its answers into results the interface can render.
package llm

import (
	"context"
	"fmt"
	"net/http"
)

// Backend sends a single prompt to a model and returns its raw text.
type Backend interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Name() string
}

// keyless is implemented by backends that can run without an API key.
type keyless interface {
	NeedsAPIKey() bool
}

// Kind classifies a generation outcome.
type Kind int

const (
	KindOK Kind = iota
	KindMissingCredential
	KindEmpty
	KindFailed
)

func (k Kind) String() string {
	switch k {
	case KindOK:
		return "ok"
	case KindMissingCredential:
		return "missing_credential"
	case KindEmpty:
		return "empty"
	case KindFailed:
		return "failed"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Result is the outcome of one generation request. Text is always
// displayable: the model output on success, a fixed message otherwise.
type Result struct {
	Kind Kind
	Text string
	Err  error
}

// OK reports whether the result holds model output.
func (r Result) OK() bool {
	return r.Kind == KindOK
}

// Fixed user-facing messages.
const (
	MsgMissingCredential = "Error: API key is missing. Set YAJUR_API_KEY or GEMINI_API_KEY."
	MsgCodeEmpty         = "Error generating code."
	MsgCodeFailed        = "Error generating circuit. Please try again later."
	MsgDiagramEmpty      = "Error generating circuit."
	MsgDiagramFailed     = "Error generating circuit diagram. Please try again."
)

// APIError is a non-2xx answer from the service.
type APIError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *APIError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("API error %d (%s): %s", e.StatusCode, e.Status, e.Message)
	}
	return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Message)
}

// Retryable reports whether the status code is worth retrying (429 or 5xx).
func (e *APIError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || (e.StatusCode >= 500 && e.StatusCode <= 599)
}
