package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/quantumvedas/yajur/internal/config"
	"github.com/quantumvedas/yajur/internal/llm"
	"github.com/quantumvedas/yajur/internal/logger"
	"github.com/quantumvedas/yajur/internal/prompt"
)

// deps are the collaborators shared by the TUI and the generate command.
type deps struct {
	composer *prompt.Composer
	client   *llm.Client
}

func loadConfig() (*config.Config, error) {
	return config.FromViper(viper.GetViper(), getConfigDir())
}

// newLogger builds the logger for cfg. --verbose forces debug.
func newLogger(cfg *config.Config, path string) (*zap.Logger, error) {
	level := cfg.LogLevel
	if viper.GetBool("verbose") {
		level = "debug"
	}
	return logger.New(level, path)
}

func buildDeps(cfg *config.Config, log *zap.Logger) (deps, error) {
	composer, err := buildComposer(cfg)
	if err != nil {
		return deps{}, err
	}

	backend := llm.NewBackend(cfg.Provider, cfg.Model, cfg.APIKey, cfg.Endpoint)
	client := llm.New(backend, llm.Options{
		APIKey:  cfg.APIKey,
		Timeout: cfg.Timeout,
		Retry:   cfg.Retry(),
		Logger:  log,
	})
	return deps{composer: composer, client: client}, nil
}

// buildComposer applies custom prompt templates from the config.
func buildComposer(cfg *config.Config) (*prompt.Composer, error) {
	composer := prompt.NewComposer()

	if path := cfg.TemplatePath(cfg.CodeTemplate); path != "" {
		tmpl, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading code template: %w", err)
		}
		if err := composer.SetCodeTemplate(string(tmpl)); err != nil {
			return nil, err
		}
	}

	if path := cfg.TemplatePath(cfg.DiagramTemplate); path != "" {
		tmpl, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading diagram template: %w", err)
		}
		if err := composer.SetDiagramTemplate(string(tmpl)); err != nil {
			return nil, err
		}
	}

	return composer, nil
}
