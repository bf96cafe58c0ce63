package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/quantumvedas/yajur/internal/catalog"
	"github.com/quantumvedas/yajur/internal/llm"
	"github.com/quantumvedas/yajur/internal/prompt"
	"github.com/quantumvedas/yajur/internal/selection"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate quantum circuit code without the TUI",
	Long: `Generate quantum circuit code from category assignments and print it.

Each --set takes Category=Value, using the names listed by 'yajur catalog'.
Categories are sent in the order given.

Examples:
  yajur generate --set "Algorithm=Grover's Algorithm" --set "Qubit Count=4"
  yajur generate --set Algorithm=QFT --diagram
  yajur generate --set Algorithm=VQE --prompt-only`,
	RunE: runGenerate,
}

var (
	generateSets       []string
	generateDiagram    bool
	generatePromptOnly bool
)

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringArrayVarP(&generateSets, "set", "s", nil, "category assignment, Category=Value (repeatable)")
	generateCmd.Flags().BoolVarP(&generateDiagram, "diagram", "d", false, "also generate a circuit diagram for the code")
	generateCmd.Flags().BoolVar(&generatePromptOnly, "prompt-only", false, "print the prompt instead of calling the model")
}

// errGenerationFailed marks a non-OK result; the message was already printed.
var errGenerationFailed = errors.New("generation failed")

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := newLogger(cfg, cfg.LogFile)
	if err != nil {
		return err
	}
	defer log.Sync()

	d, err := buildDeps(cfg, log)
	if err != nil {
		return err
	}

	sel, err := parseSelection(cfg.Catalog, generateSets)
	if err != nil {
		return err
	}

	if generatePromptOnly {
		p, err := d.composer.Code(sel.Entries())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), p)
		return nil
	}

	return generate(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), d.composer, d.client, sel, generateDiagram)
}

// parseSelection applies Category=Value assignments in order.
func parseSelection(c catalog.Catalog, assignments []string) (*selection.State, error) {
	sel := selection.New(c)
	for _, a := range assignments {
		e, err := selection.ParseAssignment(a)
		if err != nil {
			return nil, err
		}
		if err := sel.Select(e.Category, e.Value); err != nil {
			return nil, err
		}
	}
	if sel.IsEmpty() {
		return nil, fmt.Errorf("%w: pass at least one --set Category=Value", prompt.ErrEmptySelection)
	}
	return sel, nil
}

// generate requests code (and optionally a diagram) and writes the results.
// Failure messages go to errOut and the returned error is non-nil.
func generate(ctx context.Context, out, errOut io.Writer, composer *prompt.Composer, client *llm.Client, sel *selection.State, diagram bool) error {
	p, err := composer.Code(sel.Entries())
	if err != nil {
		return err
	}

	code := client.GenerateCode(ctx, p)
	if !code.OK() {
		fmt.Fprintln(errOut, code.Text)
		if code.Err != nil {
			return fmt.Errorf("%w: %v", errGenerationFailed, code.Err)
		}
		return fmt.Errorf("%w: %s", errGenerationFailed, code.Kind)
	}
	fmt.Fprintln(out, code.Text)

	if !diagram {
		return nil
	}

	dp, err := composer.Diagram(code.Text)
	if err != nil {
		return err
	}
	d := client.GenerateDiagram(ctx, dp)
	if !d.OK() {
		fmt.Fprintln(errOut, d.Text)
		if d.Err != nil {
			return fmt.Errorf("%w: %v", errGenerationFailed, d.Err)
		}
		return fmt.Errorf("%w: %s", errGenerationFailed, d.Kind)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, d.Text)
	return nil
}
