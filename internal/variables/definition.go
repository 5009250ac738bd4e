package variables

import (
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/goliatone/go-mdvars/internal/logging"
	"github.com/goliatone/go-mdvars/pkg/interfaces"
)

type definitionParser struct {
	logger interfaces.Logger
}

// NewDefinitionParser returns the block parser for "{{> name content }}".
// Lines that do not form a valid, new definition are left for the
// parsers that follow it, normally the paragraph parser.
func NewDefinitionParser(logger interfaces.Logger) parser.BlockParser {
	return &definitionParser{logger: logging.OrNoOp(logger)}
}

func (p *definitionParser) Trigger() []byte {
	return []byte{markerOpen}
}

func (p *definitionParser) Open(parent ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	pos := pc.BlockOffset()
	if pos < 0 {
		return nil, parser.NoChildren
	}

	line, segment := reader.PeekLine()
	m := matchDefinition(line, pos)
	if !m.matched() {
		return nil, parser.NoChildren
	}

	base := segment.Start - segment.Padding
	if TableFrom(pc).Has(m.name) {
		p.logger.Debug("variables.definition.duplicate",
			"name", m.name,
			"offset", base+m.start,
		)
		return nil, parser.NoChildren
	}

	literal := make([]byte, m.stop-m.start)
	copy(literal, line[m.start:m.stop])

	node := NewDefinition(m.name, literal)
	node.Lines().Append(text.NewSegment(base+m.contentStart, base+m.contentStop))

	table := ensureTable(pc)
	table.define(m.name, node, base+m.start)
	node.table = table

	p.logger.Trace("variables.definition.stored", "name", m.name)

	reader.Advance(segment.Len() - 1)
	return node, parser.NoChildren
}

func (p *definitionParser) Continue(node ast.Node, reader text.Reader, pc parser.Context) parser.State {
	return parser.Close
}

func (p *definitionParser) Close(node ast.Node, reader text.Reader, pc parser.Context) {}

func (p *definitionParser) CanInterruptParagraph() bool {
	return true
}

func (p *definitionParser) CanAcceptIndentedLine() bool {
	return false
}
