// Package mdvars adds named template variables to goldmark Markdown.
//
// A definition line {{> name content }} declares an inline fragment once and
// {{ name }} renders that fragment at every later reference in the same
// document. Register the extension directly on a goldmark engine:
//
//	md := goldmark.New(goldmark.WithExtensions(mdvars.Variables))
//
// or build a Module for frontmatter-aware loading and rendering of
// documents from disk.
package mdvars

import (
	"fmt"

	"github.com/goliatone/go-mdvars/internal/logging"
	"github.com/goliatone/go-mdvars/internal/markdown"
	"github.com/goliatone/go-mdvars/internal/variables"
	"github.com/goliatone/go-mdvars/pkg/interfaces"
)

type (
	// ExtensionOption customises the variables extension.
	ExtensionOption = variables.Option
	// Table holds the variables defined by one parsed document.
	Table = variables.Table
	// Entry is a single variable of a Table.
	Entry = variables.Entry
	// Definition is the block node emitted for a definition line.
	Definition = variables.Definition
	// Reference is the inline node emitted for a resolved reference.
	Reference = variables.Reference

	MarkdownService = interfaces.MarkdownService
	Document        = interfaces.Document
	FrontMatter     = interfaces.FrontMatter
	ParseOptions    = interfaces.ParseOptions
	LoadOptions     = interfaces.LoadOptions
	VariableReport  = interfaces.VariableReport
	Logger          = interfaces.Logger
	LoggerProvider  = interfaces.LoggerProvider
)

const (
	DefaultDefinitionPriority = variables.DefaultDefinitionPriority
	DefaultReferencePriority  = variables.DefaultReferencePriority
)

var (
	// Variables is the extension with default settings.
	Variables = variables.Variables

	KindVariable           = variables.KindVariable
	KindVariableDefinition = variables.KindVariableDefinition

	NewExtension           = variables.New
	WithExtensionLogger    = variables.WithLogger
	WithDefinitionPriority = variables.WithDefinitionPriority
	WithReferencePriority  = variables.WithReferencePriority
	TableFrom              = variables.TableFrom
)

// Option configures a Module.
type Option func(*moduleOptions)

type moduleOptions struct {
	provider interfaces.LoggerProvider
}

// WithLoggerProvider routes module logs through provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(o *moduleOptions) {
		o.provider = provider
	}
}

// Module wires the goldmark parser and the markdown service from a Config.
type Module struct {
	cfg     Config
	parser  *markdown.GoldmarkParser
	service *markdown.Service
	logger  interfaces.Logger
}

// New validates cfg and builds a Module.
func New(cfg Config, opts ...Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var options moduleOptions
	for _, opt := range opts {
		opt(&options)
	}

	var extOpts []variables.Option
	if cfg.Variables.DefinitionPriority > 0 {
		extOpts = append(extOpts, variables.WithDefinitionPriority(cfg.Variables.DefinitionPriority))
	}
	if cfg.Variables.ReferencePriority > 0 {
		extOpts = append(extOpts, variables.WithReferencePriority(cfg.Variables.ReferencePriority))
	}

	parseOptions := cfg.Markdown.Parser.ParseOptions()
	parser := markdown.NewGoldmarkParser(parseOptions,
		markdown.WithParserLogger(logging.VariablesLogger(options.provider)),
		markdown.WithVariableOptions(extOpts...),
	)

	service, err := markdown.NewService(markdown.Config{
		BasePath:  cfg.Markdown.ContentDir,
		Pattern:   cfg.Markdown.Pattern,
		Recursive: cfg.Markdown.Recursive,
		Parser:    parseOptions,
	},
		markdown.WithParser(parser),
		markdown.WithLogger(logging.MarkdownLogger(options.provider)),
	)
	if err != nil {
		return nil, fmt.Errorf("initialise markdown service: %w", err)
	}

	return &Module{
		cfg:     cfg,
		parser:  parser,
		service: service,
		logger:  logging.ModuleLogger(options.provider, ""),
	}, nil
}

// Config returns the configuration the module was built with.
func (m *Module) Config() Config {
	return m.cfg
}

// Markdown returns the document service.
func (m *Module) Markdown() MarkdownService {
	return m.service
}

// Parser returns the configured Markdown parser. It also implements
// interfaces.VariableReporter.
func (m *Module) Parser() interfaces.MarkdownParser {
	return m.parser
}

// Render renders markdown with the module defaults and reports its variables.
func (m *Module) Render(markdown []byte) ([]byte, VariableReport, error) {
	return m.parser.ParseWithReport(markdown, m.cfg.Markdown.Parser.ParseOptions())
}

// Logger returns the root module logger.
func (m *Module) Logger() Logger {
	return m.logger
}
