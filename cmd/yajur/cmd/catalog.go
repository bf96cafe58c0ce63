package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quantumvedas/yajur/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:     "catalog [category]",
	Aliases: []string{"ls"},
	Short:   "List circuit categories and their options",
	Long: `List every category offered by the generator together with its options.

The built-in catalog can be replaced by a catalog.yaml in the config
directory (see 'yajur init').

Examples:
  yajur catalog
  yajur catalog "Qubit Count"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCatalog,
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}

func runCatalog(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if len(args) == 1 {
		opts, ok := cfg.Catalog.Options(args[0])
		if !ok {
			return fmt.Errorf("unknown category %q (known: %s)", args[0], strings.Join(cfg.Catalog.Names(), ", "))
		}
		for _, o := range opts {
			fmt.Fprintln(cmd.OutOrStdout(), o)
		}
		return nil
	}

	printCatalog(cmd.OutOrStdout(), cfg.Catalog)
	return nil
}

func printCatalog(w io.Writer, c catalog.Catalog) {
	for i, cat := range c.Categories {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s (%d)\n", cat.Name, len(cat.Options))
		for _, o := range cat.Options {
			fmt.Fprintf(w, "  %s\n", o)
		}
	}
}
