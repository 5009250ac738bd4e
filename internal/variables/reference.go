package variables

import (
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/goliatone/go-mdvars/internal/logging"
	"github.com/goliatone/go-mdvars/pkg/interfaces"
)

type referenceParser struct {
	logger interfaces.Logger
}

// NewReferenceParser returns the inline parser for "{{ name }}". A
// reference only resolves against variables defined earlier in the same
// document; anything else is left as text.
func NewReferenceParser(logger interfaces.Logger) parser.InlineParser {
	return &referenceParser{logger: logging.OrNoOp(logger)}
}

func (p *referenceParser) Trigger() []byte {
	return []byte{markerOpen}
}

func (p *referenceParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	table := TableFrom(pc)
	if table == nil {
		return nil
	}

	line, segment := block.PeekLine()
	m := matchReference(line)
	if !m.matched() {
		return nil
	}

	entry, ok := table.resolve(m.name, segment.Start)
	if !ok {
		p.logger.Trace("variables.reference.unresolved", "name", m.name, "offset", segment.Start)
		return nil
	}

	entry.referenced = true
	block.Advance(m.length)
	return NewReference(entry)
}
