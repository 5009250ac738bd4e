package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-mdvars/internal/logging"
	"github.com/goliatone/go-mdvars/internal/logging/gologger"
	"github.com/goliatone/go-mdvars/internal/markdown"
	"github.com/goliatone/go-mdvars/pkg/interfaces"
)

var ErrMarkdownContentDirRequired = errors.New("mdvars config: markdown content directory is required")
var ErrMarkdownExtensionUnknown = errors.New("mdvars config: markdown extension is unknown")
var ErrVariablePriorityInvalid = errors.New("mdvars config: variable parser priority must be zero or positive")
var ErrLoggingProviderRequired = errors.New("mdvars config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("mdvars config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("mdvars config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("mdvars config: logging format is invalid")
var ErrLoggingFocusUnknown = errors.New("mdvars config: logging focus names an unknown module")

// Config aggregates runtime options for the markdown pipeline.
type Config struct {
	Features  Features
	Markdown  MarkdownConfig
	Variables VariablesConfig
	Logging   LoggingConfig
}

// Features toggles optional behaviour.
type Features struct {
	Logger bool
}

// MarkdownConfig captures filesystem and parser behaviour for Markdown documents.
type MarkdownConfig struct {
	ContentDir string
	Pattern    string
	Recursive  bool
	Parser     MarkdownParserConfig
}

// MarkdownParserConfig holds the default parse options applied to every
// render.
type MarkdownParserConfig struct {
	Extensions []string
	Sanitize   bool
	HardWraps  bool
	SafeMode   bool
}

// ParseOptions converts the parser config into interfaces.ParseOptions.
func (c MarkdownParserConfig) ParseOptions() interfaces.ParseOptions {
	return interfaces.ParseOptions{
		Extensions: append([]string(nil), c.Extensions...),
		Sanitize:   c.Sanitize,
		HardWraps:  c.HardWraps,
		SafeMode:   c.SafeMode,
	}
}

// VariablesConfig overrides the goldmark priorities of the variable parsers.
// Zero keeps the extension default.
type VariablesConfig struct {
	DefinitionPriority int
	ReferencePriority  int
}

// LoggingConfig selects the log provider. Format, AddSource and Focus only
// apply to gologger.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns defaults suited to rendering documents from the
// working directory.
func DefaultConfig() Config {
	return Config{
		Markdown: MarkdownConfig{
			ContentDir: ".",
			Pattern:    "*.md",
			Recursive:  true,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Validate reports the first setting that would make the pipeline fail or
// silently misbehave. Logging settings are only checked when the logger
// feature is on.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Markdown.ContentDir) == "" {
		return ErrMarkdownContentDirRequired
	}
	for _, name := range cfg.Markdown.Parser.Extensions {
		if !markdown.KnownExtension(name) {
			return fmt.Errorf("%w: %s", ErrMarkdownExtensionUnknown, name)
		}
	}
	if cfg.Variables.DefinitionPriority < 0 {
		return fmt.Errorf("%w: definition", ErrVariablePriorityInvalid)
	}
	if cfg.Variables.ReferencePriority < 0 {
		return fmt.Errorf("%w: reference", ErrVariablePriorityInvalid)
	}
	if cfg.Features.Logger {
		provider := NormalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if _, ok := logging.ParseLevel(cfg.Logging.Level); !ok {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, strings.TrimSpace(cfg.Logging.Level))
		}
		if provider == "gologger" && !gologger.SupportedFormat(cfg.Logging.Format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, strings.TrimSpace(cfg.Logging.Format))
		}
		for _, name := range cfg.Logging.Focus {
			if name = strings.TrimSpace(name); name != "" && !logging.KnownModule(name) {
				return fmt.Errorf("%w: %s", ErrLoggingFocusUnknown, name)
			}
		}
	}
	return nil
}

// NormalizeProvider lower-cases and trims a logging provider name.
func NormalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}
