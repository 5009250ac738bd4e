package markdown

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-mdvars/internal/logging"
	"github.com/goliatone/go-mdvars/pkg/interfaces"
)

const (
	TextCodeRenderFailed     = "MARKDOWN_RENDER_FAILED"
	TextCodeDocumentRequired = "MARKDOWN_DOCUMENT_REQUIRED"
)

// Config is the service's content root, discovery defaults and parser
// defaults.
type Config struct {
	BasePath  string
	Pattern   string
	Recursive bool
	Parser    interfaces.ParseOptions
}

// ServiceOption customises a Service.
type ServiceOption func(*Service)

// WithLogger sets the logger used by the service and its default parser.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithParser replaces the default goldmark parser.
func WithParser(parser interfaces.MarkdownParser) ServiceOption {
	return func(s *Service) {
		if parser != nil {
			s.parser = parser
		}
	}
}

// WithFS reads documents from filesystem instead of os.DirFS(BasePath).
func WithFS(filesystem fs.FS) ServiceOption {
	return func(s *Service) {
		s.fs = filesystem
	}
}

// Service loads documents from an fs.FS and renders them with variable
// reports.
type Service struct {
	cfg    Config
	parser interfaces.MarkdownParser
	root   *contentRoot
	logger interfaces.Logger
	fs     fs.FS
}

var _ interfaces.MarkdownService = (*Service)(nil)

// NewService constructs a Markdown service. Without WithParser a
// GoldmarkParser with cfg.Parser defaults is created.
func NewService(cfg Config, opts ...ServiceOption) (*Service, error) {
	svc := &Service{
		cfg:    cfg,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(svc)
	}

	if svc.fs == nil {
		root, err := dirFS(cfg.BasePath)
		if err != nil {
			return nil, err
		}
		svc.fs = root
	}
	if svc.parser == nil {
		svc.parser = NewGoldmarkParser(cfg.Parser, WithParserLogger(svc.logger))
	}

	svc.root = newContentRoot(svc.fs, cfg)
	return svc, nil
}

// Load reads a single Markdown document relative to the configured base path
// and renders it.
func (s *Service) Load(ctx context.Context, path string, opts interfaces.LoadOptions) (*interfaces.Document, error) {
	logger := logging.WithDocument(logging.FromContext(s.logger, ctx), path, "load")

	doc, err := s.root.open(ctx, path)
	if err != nil {
		logger.Error("markdown.service.load_failed", "error", err)
		return nil, err
	}
	if _, err := s.RenderDocument(ctx, doc, opts.Parser); err != nil {
		return nil, err
	}
	logger.Debug("markdown.service.loaded", "variables", doc.Variables.Defined)
	return doc, nil
}

// LoadDirectory reads and renders every Markdown document within dir.
func (s *Service) LoadDirectory(ctx context.Context, dir string, opts interfaces.LoadOptions) ([]*interfaces.Document, error) {
	logger := logging.WithDocument(logging.FromContext(s.logger, ctx), dir, "load_directory")

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	docs, err := s.root.walk(ctx, dir, s.root.scan.with(opts))
	if err != nil {
		logger.Error("markdown.service.load_failed", "error", err)
		return nil, err
	}
	for _, doc := range docs {
		if _, err := s.RenderDocument(ctx, doc, opts.Parser); err != nil {
			return nil, err
		}
	}
	logger.Debug("markdown.service.loaded", "documents", len(docs))
	return docs, nil
}

// Render parses Markdown bytes into HTML using the configured parser.
func (s *Service) Render(ctx context.Context, markdown []byte, opts interfaces.ParseOptions) ([]byte, error) {
	html, _, err := s.render(ctx, markdown, opts)
	if err != nil {
		return nil, renderError(err, "")
	}
	return html, nil
}

// RenderDocument converts the document's body into HTML and records the
// document's variable report.
func (s *Service) RenderDocument(ctx context.Context, doc *interfaces.Document, opts interfaces.ParseOptions) ([]byte, error) {
	if doc == nil {
		return nil, goerrors.New("markdown service: document is required", goerrors.CategoryValidation).
			WithTextCode(TextCodeDocumentRequired)
	}

	logger := logging.WithDocument(logging.FromContext(s.logger, ctx), doc.FilePath, "render")
	html, report, err := s.render(ctx, doc.Body, opts)
	if err != nil {
		logger.Error("markdown.service.render_failed", "error", err)
		return nil, renderError(err, doc.FilePath)
	}

	doc.BodyHTML = html
	doc.Variables = report
	if len(report.Unreferenced) > 0 {
		logger.Debug("markdown.service.unreferenced_variables", "variables", report.Unreferenced)
	}
	return html, nil
}

func (s *Service) render(ctx context.Context, markdown []byte, opts interfaces.ParseOptions) ([]byte, interfaces.VariableReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, interfaces.VariableReport{}, err
	}

	merged := mergeParseOptions(s.cfg.Parser, opts)
	if reporter, ok := s.parser.(interfaces.VariableReporter); ok {
		return reporter.ParseWithReport(markdown, merged)
	}
	html, err := s.parser.ParseWithOptions(markdown, merged)
	return html, interfaces.VariableReport{}, err
}

func renderError(err error, path string) error {
	if goerrors.IsWrapped(err) {
		return err
	}
	msg := "markdown service: render failed"
	if path != "" {
		msg = fmt.Sprintf("markdown service: render %s failed", path)
	}
	category := goerrors.CategoryInternal
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		category = goerrors.CategoryOperation
	}
	return goerrors.Wrap(err, category, msg).WithTextCode(TextCodeRenderFailed)
}

// mergeParseOptions layers override on base. Extensions replace the base
// list when set; boolean switches can only be turned on.
func mergeParseOptions(base, override interfaces.ParseOptions) interfaces.ParseOptions {
	merged := interfaces.ParseOptions{
		Extensions: base.Extensions,
		Sanitize:   base.Sanitize || override.Sanitize,
		HardWraps:  base.HardWraps || override.HardWraps,
		SafeMode:   base.SafeMode || override.SafeMode,
	}
	if len(override.Extensions) > 0 {
		merged.Extensions = override.Extensions
	}
	merged.Extensions = slices.Clone(merged.Extensions)
	return merged
}

func dirFS(dir string) (fs.FS, error) {
	if dir = strings.TrimSpace(dir); dir == "" {
		dir = "."
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("markdown service: content root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("markdown service: content root %s is not a directory", dir)
	}
	return os.DirFS(dir), nil
}
