package main

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-mdvars/cmd/mdvars/internal/bootstrap"
	"github.com/goliatone/go-mdvars/internal/runtimeconfig"
)

// CLI is the top-level command-line interface.
type CLI struct {
	Globals `embed:""`

	Render  RenderCmd  `cmd:"" default:"withargs" help:"Render a Markdown file or stdin to HTML."`
	Preview PreviewCmd `cmd:"" help:"Load a document from a content directory and print its metadata, HTML and variables."`
}

// Globals holds flags shared by every command.
type Globals struct {
	LogProvider string   `name:"log-provider" default:"console" enum:"console,gologger" help:"Logging provider (${enum})."`
	LogLevel    string   `name:"log-level" default:"warn" help:"Minimum log level (trace, debug, info, warn, error, fatal)."`
	LogFormat   string   `name:"log-format" help:"go-logger output format (json, console, pretty)."`
	LogFocus    []string `name:"log-focus" help:"Only emit go-logger output for these logger names."`
	Quiet       bool     `name:"quiet" short:"q" help:"Disable logging."`
	NoColor     bool     `name:"no-color" help:"Disable colored output."`

	Extensions []string `name:"extensions" short:"e" help:"Goldmark extensions to enable (default: gfm,linkify,tasklist,variables)."`
	HardWraps  bool     `name:"hard-wraps" help:"Render soft line breaks as <br>."`
	SafeMode   bool     `name:"safe-mode" help:"Omit raw HTML from the output."`
	Sanitize   bool     `name:"sanitize" help:"Treat input as untrusted."`

	DefinitionPriority int `name:"definition-priority" default:"0" help:"Goldmark priority of the definition parser (0 keeps the default)."`
	ReferencePriority  int `name:"reference-priority" default:"0" help:"Goldmark priority of the reference parser (0 keeps the default)."`
}

// Validate implements kong's validation hook.
func (g *Globals) Validate() error {
	return validation.ValidateStruct(g,
		validation.Field(&g.LogLevel, validation.In("trace", "debug", "info", "warn", "warning", "error", "fatal")),
		validation.Field(&g.LogFormat, validation.In("json", "console", "pretty")),
		validation.Field(&g.DefinitionPriority, validation.Min(0)),
		validation.Field(&g.ReferencePriority, validation.Min(0)),
	)
}

// config maps the global flags onto a runtime configuration rooted at contentDir.
func (g *Globals) config(contentDir string) runtimeconfig.Config {
	cfg := runtimeconfig.DefaultConfig()
	if trimmed := strings.TrimSpace(contentDir); trimmed != "" {
		cfg.Markdown.ContentDir = trimmed
	}
	cfg.Markdown.Parser = runtimeconfig.MarkdownParserConfig{
		Extensions: append([]string(nil), g.Extensions...),
		HardWraps:  g.HardWraps,
		SafeMode:   g.SafeMode,
		Sanitize:   g.Sanitize,
	}
	cfg.Variables = runtimeconfig.VariablesConfig{
		DefinitionPriority: g.DefinitionPriority,
		ReferencePriority:  g.ReferencePriority,
	}
	cfg.Features.Logger = !g.Quiet
	cfg.Logging = runtimeconfig.LoggingConfig{
		Provider: g.LogProvider,
		Level:    g.LogLevel,
		Format:   g.LogFormat,
		Focus:    append([]string(nil), g.LogFocus...),
	}
	return cfg
}

func (g *Globals) build(app *App, contentDir string) (*bootstrap.Module, error) {
	return app.Build(bootstrap.Options{
		Config:    g.config(contentDir),
		LogWriter: app.Err,
		Color:     !g.NoColor,
	})
}
