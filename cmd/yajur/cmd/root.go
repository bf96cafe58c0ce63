// Package cmd contains all CLI commands for the YAJUR tool.
package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/quantumvedas/yajur/internal/clipboard"
	"github.com/quantumvedas/yajur/internal/config"
	"github.com/quantumvedas/yajur/internal/tui"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "yajur",
	Short: "YAJUR - Quantum Circuit Generator",
	Long: `YAJUR generates quantum circuit code from a handful of choices.

Pick an algorithm, qubit count, gates, connectivity and the other
parameters, and a generative language model writes the circuit code.
The generated code can then be rendered as a text circuit diagram.

The API key is read from YAJUR_API_KEY, GEMINI_API_KEY or the api_key
setting in config.yaml.

Running 'yajur' without arguments launches the interactive TUI.`,
	SilenceUsage: true,
	RunE:         runTUI,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config directory (default is $HOME/.config/yajur)")
	rootCmd.PersistentFlags().Bool("verbose", false, "verbose output")
	rootCmd.PersistentFlags().String("provider", "", "model provider (gemini, openai, anthropic, ollama, ...)")
	rootCmd.PersistentFlags().String("model", "", "model name")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("provider", rootCmd.PersistentFlags().Lookup("provider"))
	viper.BindPFlag("model", rootCmd.PersistentFlags().Lookup("model"))
}

// initConfig resolves the config directory.
func initConfig() {
	if cfgFile != "" {
		viper.Set("config_dir", cfgFile)
		return
	}

	dir, err := config.GetConfigDir()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error finding home directory:", err)
		os.Exit(1)
	}
	viper.Set("config_dir", dir)
}

// getConfigDir returns the configuration directory path.
func getConfigDir() string {
	return viper.GetString("config_dir")
}

// runTUI launches the interactive generator.
func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// The TUI owns the terminal, so logs go to a file.
	log, err := newLogger(cfg, cfg.LogPath())
	if err != nil {
		return err
	}
	defer log.Sync()

	deps, err := buildDeps(cfg, log)
	if err != nil {
		return err
	}
	log.Info("starting TUI",
		zap.String("backend", deps.client.Name()),
		zap.Bool("ready", deps.client.Ready()),
		zap.Int("categories", cfg.Catalog.Len()))

	p := tea.NewProgram(
		tui.NewApp(tui.Options{
			Catalog:        cfg.Catalog,
			Composer:       deps.composer,
			Client:         deps.client,
			Clipboard:      clipboard.System{},
			Logger:         log,
			TypingInterval: cfg.TypingInterval,
			ConfirmDiagram: cfg.ConfirmDiagram,
			Context:        cmd.Context(),
		}),
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}
