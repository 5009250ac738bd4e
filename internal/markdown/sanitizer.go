package markdown

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/goliatone/go-mdvars/internal/logging"
	"github.com/goliatone/go-mdvars/pkg/interfaces"
)

// Sanitizer drops links and images whose URL scheme is not allowed. It runs
// as a goldmark AST transformer when ParseOptions.Sanitize is set.
type Sanitizer struct {
	allowedSchemes map[string]struct{}
	logger         interfaces.Logger
}

// NewSanitizer returns a sanitizer allowing relative, http, https and
// mailto URLs.
func NewSanitizer(logger interfaces.Logger) *Sanitizer {
	return &Sanitizer{
		allowedSchemes: map[string]struct{}{
			"http":   {},
			"https":  {},
			"mailto": {},
			"":       {},
		},
		logger: logging.OrNoOp(logger),
	}
}

// ValidateURL ensures the URL has an allowed scheme.
func (s *Sanitizer) ValidateURL(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return err
	}

	if _, ok := s.allowedSchemes[strings.ToLower(parsed.Scheme)]; !ok {
		return fmt.Errorf("markdown: url scheme %q not permitted", parsed.Scheme)
	}
	return nil
}

// Transform implements parser.ASTTransformer. Rejected links keep their
// text; rejected images and autolinks are replaced by their label.
func (s *Sanitizer) Transform(doc *ast.Document, reader text.Reader, _ parser.Context) {
	source := reader.Source()

	var rejected []ast.Node
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		var dest []byte
		switch node := n.(type) {
		case *ast.Link:
			dest = node.Destination
		case *ast.Image:
			dest = node.Destination
		case *ast.AutoLink:
			dest = node.URL(source)
		default:
			return ast.WalkContinue, nil
		}
		if err := s.ValidateURL(string(dest)); err != nil {
			s.logger.Debug("markdown.sanitizer.url_rejected", "url", string(dest), "error", err)
			rejected = append(rejected, n)
		}
		return ast.WalkContinue, nil
	})

	for _, n := range rejected {
		unwrap(n, source)
	}
}

func unwrap(n ast.Node, source []byte) {
	parent := n.Parent()
	if parent == nil {
		return
	}
	switch node := n.(type) {
	case *ast.AutoLink:
		parent.ReplaceChild(parent, n, ast.NewString(node.Label(source)))
	default:
		for child := n.FirstChild(); child != nil; {
			next := child.NextSibling()
			n.RemoveChild(n, child)
			parent.InsertBefore(parent, n, child)
			child = next
		}
		parent.RemoveChild(parent, n)
	}
}
