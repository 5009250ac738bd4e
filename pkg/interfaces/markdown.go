package interfaces

import (
	"context"
	"time"
)

// MarkdownParser converts raw Markdown bytes into HTML.
type MarkdownParser interface {
	// Parse converts Markdown into HTML using the parser's default settings.
	Parse(markdown []byte) ([]byte, error)
	// ParseWithOptions converts Markdown into HTML using the supplied overrides.
	ParseWithOptions(markdown []byte, opts ParseOptions) ([]byte, error)
}

// VariableReporter is an optional MarkdownParser extension that also reports
// which template variables a document defined and used.
type VariableReporter interface {
	ParseWithReport(markdown []byte, opts ParseOptions) ([]byte, VariableReport, error)
}

// ParseOptions customises Markdown parsing behaviour. Extensions lists
// registry names (e.g. "variables", "gfm"); an empty list selects the
// default set, which includes template variables.
type ParseOptions struct {
	Extensions []string
	Sanitize   bool
	HardWraps  bool
	SafeMode   bool
}

// VariableReport summarises the template variables of one rendered document.
// Names are listed in definition order.
type VariableReport struct {
	Defined      []string `json:"defined"`
	Referenced   []string `json:"referenced"`
	Unreferenced []string `json:"unreferenced"`
}

// Empty reports whether the document defined no variables.
func (r VariableReport) Empty() bool {
	return len(r.Defined) == 0
}

// MarkdownService loads Markdown documents from disk and renders them.
type MarkdownService interface {
	Load(ctx context.Context, path string, opts LoadOptions) (*Document, error)
	LoadDirectory(ctx context.Context, dir string, opts LoadOptions) ([]*Document, error)
	Render(ctx context.Context, markdown []byte, opts ParseOptions) ([]byte, error)
	RenderDocument(ctx context.Context, doc *Document, opts ParseOptions) ([]byte, error)
}

// Document represents a Markdown file with parsed metadata and content.
type Document struct {
	FilePath     string
	FrontMatter  FrontMatter
	Body         []byte
	BodyHTML     []byte
	Variables    VariableReport
	LastModified time.Time
	// Checksum stores the SHA-256 digest of the original file content.
	Checksum []byte
}

// FrontMatter models metadata extracted from Markdown files. Unknown keys
// land in Custom; Raw holds every key that was set.
type FrontMatter struct {
	Title   string         `yaml:"title" json:"title"`
	Slug    string         `yaml:"slug" json:"slug"`
	Summary string         `yaml:"summary" json:"summary"`
	Tags    []string       `yaml:"tags" json:"tags"`
	Author  string         `yaml:"author" json:"author"`
	Date    time.Time      `yaml:"date" json:"date"`
	Draft   bool           `yaml:"draft" json:"draft"`
	Custom  map[string]any `yaml:",inline" json:"custom"`
	Raw     map[string]any `yaml:"-" json:"raw"`
}

// LoadOptions fine-tunes how documents are discovered and parsed from disk.
type LoadOptions struct {
	Recursive *bool
	Pattern   string
	Parser    ParseOptions
}
