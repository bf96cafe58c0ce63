// Package prompt builds the instructions sent to the generative-language service.
package prompt

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/quantumvedas/yajur/internal/selection"
)

var (
	// ErrEmptySelection is returned when composing a code prompt with nothing chosen.
	ErrEmptySelection = errors.New("no options selected")
	// ErrEmptyCode is returned when composing a diagram prompt without code.
	ErrEmptyCode = errors.New("no code to diagram")
)

// Composer renders code and diagram prompts from templates.
type Composer struct {
	code    *template.Template
	diagram *template.Template
}

// codeData is the template input for code prompts.
type codeData struct {
	Entries []selection.Entry
}

// diagramData is the template input for diagram prompts.
type diagramData struct {
	Code string
}

// NewComposer creates a composer with the built-in templates.
func NewComposer() *Composer {
	return &Composer{
		code:    template.Must(template.New("code").Parse(DefaultCodeTemplate)),
		diagram: template.Must(template.New("diagram").Parse(DefaultDiagramTemplate)),
	}
}

// SetCodeTemplate replaces the code prompt template.
func (c *Composer) SetCodeTemplate(tmpl string) error {
	t, err := template.New("code").Parse(tmpl)
	if err != nil {
		return fmt.Errorf("parsing code template: %w", err)
	}
	c.code = t
	return nil
}

// SetDiagramTemplate replaces the diagram prompt template.
func (c *Composer) SetDiagramTemplate(tmpl string) error {
	t, err := template.New("diagram").Parse(tmpl)
	if err != nil {
		return fmt.Errorf("parsing diagram template: %w", err)
	}
	c.diagram = t
	return nil
}

// Code renders one "Category: Value" line per entry, in order, inside the
// code-generation instructions.
func (c *Composer) Code(entries []selection.Entry) (string, error) {
	if len(entries) == 0 {
		return "", ErrEmptySelection
	}

	var buf bytes.Buffer
	if err := c.code.Execute(&buf, codeData{Entries: entries}); err != nil {
		return "", fmt.Errorf("executing code template: %w", err)
	}
	return buf.String(), nil
}

// Diagram embeds code verbatim inside the diagram-generation instructions.
func (c *Composer) Diagram(code string) (string, error) {
	if strings.TrimSpace(code) == "" {
		return "", ErrEmptyCode
	}

	var buf bytes.Buffer
	if err := c.diagram.Execute(&buf, diagramData{Code: code}); err != nil {
		return "", fmt.Errorf("executing diagram template: %w", err)
	}
	return buf.String(), nil
}

// DefaultCodeTemplate asks for circuit code built from the chosen parameters.
const DefaultCodeTemplate = `Generate a bug-free, robust, and scalable quantum circuit code using the following parameters:

{{ range .Entries }}{{ .Category }}: {{ .Value }}
{{ end }}
Ensure the code is formatted properly and follows best practices.`

// DefaultDiagramTemplate asks for a text diagram of the given code.
const DefaultDiagramTemplate = `Based on the following quantum circuit code, generate a structured non-graphical representation of the circuit:

Code:
{{ .Code }}

Ensure the representation includes all gates, qubits, and connections clearly formatted for readability.
Use the following structure:

Qubit 0: ───H───●──────M───
               │
Qubit 1: ──────┼──X───M───
               │
Qubit 2: ──────┼──────M───

Ensure accuracy and correctness without adding random gates or modifications.`
