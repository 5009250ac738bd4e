package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/goliatone/go-mdvars/internal/logging"
	"github.com/goliatone/go-mdvars/internal/variables"
	"github.com/goliatone/go-mdvars/pkg/interfaces"
)

// ExtensionVariables is the registry name of the template variable extension.
const ExtensionVariables = "variables"

const sanitizerPriority = 1000

// GoldmarkParser implements interfaces.MarkdownParser and
// interfaces.VariableReporter on top of goldmark. It holds no per-document
// state and is safe for concurrent use.
type GoldmarkParser struct {
	defaultOptions  interfaces.ParseOptions
	logger          interfaces.Logger
	variableOptions []variables.Option
}

var (
	_ interfaces.MarkdownParser   = (*GoldmarkParser)(nil)
	_ interfaces.VariableReporter = (*GoldmarkParser)(nil)
)

// ParserOption customises a GoldmarkParser.
type ParserOption func(*GoldmarkParser)

// WithParserLogger sets the logger handed to the variables extension.
func WithParserLogger(logger interfaces.Logger) ParserOption {
	return func(p *GoldmarkParser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithVariableOptions forwards options to the variables extension, e.g.
// custom parser priorities.
func WithVariableOptions(opts ...variables.Option) ParserOption {
	return func(p *GoldmarkParser) {
		p.variableOptions = append(p.variableOptions, opts...)
	}
}

// NewGoldmarkParser constructs a parser. Without explicit extensions the
// engine enables GFM, linkify, task lists and template variables, and
// allows raw HTML unless SafeMode or Sanitize is set.
func NewGoldmarkParser(defaults interfaces.ParseOptions, opts ...ParserOption) *GoldmarkParser {
	p := &GoldmarkParser{
		defaultOptions: defaults,
		logger:         logging.NoOp(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse renders Markdown into HTML using the parser's default options.
func (p *GoldmarkParser) Parse(markdown []byte) ([]byte, error) {
	return p.ParseWithOptions(markdown, p.defaultOptions)
}

// ParseWithOptions renders Markdown into HTML using the provided options.
func (p *GoldmarkParser) ParseWithOptions(markdown []byte, opts interfaces.ParseOptions) ([]byte, error) {
	out, _, err := p.ParseWithReport(markdown, opts)
	return out, err
}

// ParseWithReport renders Markdown into HTML and reports the template
// variables the document defined. The report is empty when the variables
// extension is not enabled.
func (p *GoldmarkParser) ParseWithReport(markdown []byte, opts interfaces.ParseOptions) ([]byte, interfaces.VariableReport, error) {
	engine := p.newEngine(opts)

	pc := parser.NewContext()
	doc := engine.Parser().Parse(text.NewReader(markdown), parser.WithContext(pc))

	var buf bytes.Buffer
	if err := engine.Renderer().Render(&buf, markdown, doc); err != nil {
		return nil, interfaces.VariableReport{}, fmt.Errorf("markdown parse: %w", err)
	}
	return buf.Bytes(), reportFromTable(variables.TableFrom(pc)), nil
}

func reportFromTable(table *variables.Table) interfaces.VariableReport {
	if table.Len() == 0 {
		return interfaces.VariableReport{}
	}
	return interfaces.VariableReport{
		Defined:      table.Names(),
		Referenced:   table.Referenced(),
		Unreferenced: table.Unreferenced(),
	}
}

func (p *GoldmarkParser) newEngine(opts interfaces.ParseOptions) goldmark.Markdown {
	rendererOptions := []renderer.Option{}
	if opts.HardWraps {
		rendererOptions = append(rendererOptions, html.WithHardWraps())
	}
	// SafeMode and Sanitize both suppress raw HTML.
	if !opts.SafeMode && !opts.Sanitize {
		rendererOptions = append(rendererOptions, html.WithUnsafe())
	}

	parserOptions := []parser.Option{parser.WithAutoHeadingID()}
	if opts.Sanitize {
		parserOptions = append(parserOptions, parser.WithASTTransformers(
			util.Prioritized(NewSanitizer(p.logger), sanitizerPriority),
		))
	}

	engineOptions := []goldmark.Option{
		goldmark.WithParserOptions(parserOptions...),
	}
	if len(rendererOptions) > 0 {
		engineOptions = append(engineOptions, goldmark.WithRendererOptions(rendererOptions...))
	}
	if exts := p.collectExtensions(opts.Extensions); len(exts) > 0 {
		engineOptions = append(engineOptions, goldmark.WithExtensions(exts...))
	}

	return goldmark.New(engineOptions...)
}

type extensionFactory func(p *GoldmarkParser) goldmark.Extender

func builtin(ext goldmark.Extender) extensionFactory {
	return func(*GoldmarkParser) goldmark.Extender { return ext }
}

func variablesExtension(p *GoldmarkParser) goldmark.Extender {
	opts := append([]variables.Option{variables.WithLogger(p.logger)}, p.variableOptions...)
	return variables.New(opts...)
}

var extensionRegistry = map[string]extensionFactory{
	ExtensionVariables: variablesExtension,
	"vars":             variablesExtension,
	"gfm":              builtin(extension.GFM),
	"table":            builtin(extension.Table),
	"tables":           builtin(extension.Table),
	"strikethrough":    builtin(extension.Strikethrough),
	"linkify":          builtin(extension.Linkify),
	"autolink":         builtin(extension.Linkify),
	"tasklist":         builtin(extension.TaskList),
	"definition":       builtin(extension.DefinitionList),
	"footnote":         builtin(extension.Footnote),
	"typographer":      builtin(extension.Typographer),
}

var defaultExtensions = []string{"gfm", "linkify", "tasklist", ExtensionVariables}

// KnownExtension reports whether name is a registered extension name.
func KnownExtension(name string) bool {
	_, ok := extensionRegistry[normaliseExtension(name)]
	return ok
}

// collectExtensions resolves registry names into extenders, skipping
// unknown names and duplicates (aliases included).
func (p *GoldmarkParser) collectExtensions(names []string) []goldmark.Extender {
	if len(names) == 0 {
		names = defaultExtensions
	}

	var extenders []goldmark.Extender
	seen := map[string]struct{}{}
	for _, name := range names {
		key := normaliseExtension(name)
		factory, ok := extensionRegistry[key]
		if !ok {
			continue
		}
		if key == "vars" {
			key = ExtensionVariables
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		extenders = append(extenders, factory(p))
	}
	return extenders
}

func normaliseExtension(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
