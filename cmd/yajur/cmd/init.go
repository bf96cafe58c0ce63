package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/quantumvedas/yajur/internal/catalog"
	"github.com/quantumvedas/yajur/internal/config"
	"github.com/quantumvedas/yajur/internal/llm"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize YAJUR configuration",
	Long: `Initialize YAJUR configuration files in your config directory.

This creates:
  - config.yaml   (provider, model, timeouts, typing speed)
  - catalog.yaml  (the categories and options offered by the generator)

The API key is never written to disk; set YAJUR_API_KEY or GEMINI_API_KEY.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "overwrite existing configuration")
}

func runInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	configDir := getConfigDir()

	written, err := writeDefaults(configDir, force)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Initializing YAJUR configuration in %s\n\n", configDir)
	for _, f := range written {
		fmt.Fprintf(out, "  Created %s\n", f)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Configuration initialized!")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  1. export YAJUR_API_KEY=<your key>")
	fmt.Fprintln(out, "  2. Run 'yajur' to open the generator")

	return nil
}

// writeDefaults writes config.yaml and catalog.yaml into dir. Existing
// files are kept unless force is set.
func writeDefaults(dir string, force bool) ([]string, error) {
	if err := config.EnsureDir(dir); err != nil {
		return nil, err
	}

	configPath := filepath.Join(dir, config.ConfigFile)
	catalogPath := filepath.Join(dir, config.CatalogFile)
	if !force {
		for _, p := range []string{configPath, catalogPath} {
			if _, err := os.Stat(p); err == nil {
				return nil, fmt.Errorf("config file already exists: %s\nUse --force to overwrite", p)
			}
		}
	}

	cfg := config.Defaults()
	cfg.Model = llm.DefaultModel
	if err := config.Save(configPath, cfg); err != nil {
		return nil, err
	}
	if err := catalog.Save(catalogPath, catalog.Default()); err != nil {
		return nil, err
	}
	return []string{config.ConfigFile, config.CatalogFile}, nil
}
