package bootstrap

import (
	"fmt"
	"io"

	"github.com/goliatone/go-mdvars"
	"github.com/goliatone/go-mdvars/internal/logging"
	"github.com/goliatone/go-mdvars/internal/logging/console"
	"github.com/goliatone/go-mdvars/internal/logging/gologger"
	"github.com/goliatone/go-mdvars/internal/runtimeconfig"
	"github.com/goliatone/go-mdvars/pkg/interfaces"
)

// Options captures configuration for CLI bootstraps.
type Options struct {
	Config runtimeconfig.Config
	// LogWriter receives console provider output. Defaults to stderr.
	LogWriter io.Writer
	// Color enables ANSI colors for console log levels.
	Color bool
}

// Module wraps the mdvars module and the configured service/logger.
type Module struct {
	Module   *mdvars.Module
	Provider interfaces.LoggerProvider
	Service  interfaces.MarkdownService
	Logger   interfaces.Logger
}

// BuildModule constructs the logger provider selected by the configuration
// and an mdvars module around it.
func BuildModule(opts Options) (*Module, error) {
	cfg := opts.Config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	provider, err := BuildLoggerProvider(cfg, opts.LogWriter, opts.Color)
	if err != nil {
		return nil, err
	}

	module, err := mdvars.New(cfg, mdvars.WithLoggerProvider(provider))
	if err != nil {
		return nil, fmt.Errorf("initialise mdvars module: %w", err)
	}

	return &Module{
		Module:   module,
		Provider: provider,
		Service:  module.Markdown(),
		Logger:   logging.CLILogger(provider),
	}, nil
}

// BuildLoggerProvider returns the provider selected by cfg.Logging, or nil
// when the logger feature is disabled.
func BuildLoggerProvider(cfg runtimeconfig.Config, w io.Writer, colored bool) (interfaces.LoggerProvider, error) {
	if !cfg.Features.Logger {
		return nil, nil
	}

	switch runtimeconfig.NormalizeProvider(cfg.Logging.Provider) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			AddSource: cfg.Logging.AddSource,
			Focus:     cfg.Logging.Focus,
		})
		if err != nil {
			return nil, fmt.Errorf("initialise gologger provider: %w", err)
		}
		return provider, nil
	default:
		level, _ := logging.ParseLevel(cfg.Logging.Level)
		return console.NewProvider(console.Options{
			Writer:   w,
			MinLevel: &level,
			Color:    colored,
		}), nil
	}
}
