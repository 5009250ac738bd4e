package variables

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"

	"github.com/goliatone/go-mdvars/internal/logging"
	"github.com/goliatone/go-mdvars/pkg/interfaces"
)

const (
	// DefaultDefinitionPriority places the definition parser ahead of the
	// paragraph parser (1000) and therefore ahead of link reference
	// definitions, which goldmark extracts from paragraphs.
	DefaultDefinitionPriority = 950
	// DefaultReferencePriority places the reference parser right after the
	// link and image parser (200).
	DefaultReferencePriority = 201

	rendererPriority = 500
)

// Option customises the extension.
type Option func(*extender)

// WithLogger attaches a logger for parse diagnostics such as duplicate
// definitions.
func WithLogger(logger interfaces.Logger) Option {
	return func(e *extender) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithDefinitionPriority overrides the block parser priority.
func WithDefinitionPriority(priority int) Option {
	return func(e *extender) {
		e.definitionPriority = priority
	}
}

// WithReferencePriority overrides the inline parser priority.
func WithReferencePriority(priority int) Option {
	return func(e *extender) {
		e.referencePriority = priority
	}
}

type extender struct {
	logger             interfaces.Logger
	definitionPriority int
	referencePriority  int
}

// Variables is the extension with default settings.
var Variables = New()

// New returns a goldmark.Extender adding template variables. The extender
// keeps no per-document state and can be shared between engines.
func New(opts ...Option) goldmark.Extender {
	e := &extender{
		logger:             logging.NoOp(),
		definitionPriority: DefaultDefinitionPriority,
		referencePriority:  DefaultReferencePriority,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extend implements goldmark.Extender.
func (e *extender) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithBlockParsers(
			util.Prioritized(NewDefinitionParser(e.logger), e.definitionPriority),
		),
		parser.WithInlineParsers(
			util.Prioritized(NewReferenceParser(e.logger), e.referencePriority),
		),
	)
	m.Renderer().AddOptions(
		renderer.WithNodeRenderers(
			util.Prioritized(NewHTMLRenderer(m.Renderer), rendererPriority),
		),
	)
}
