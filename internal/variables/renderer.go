package variables

import (
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// HTMLRenderer renders Reference and Definition nodes. References are
// rendered by handing the shared content back to the host renderer, so the
// fragment gets exactly the output any other inline markdown would.
type HTMLRenderer struct {
	host func() renderer.Renderer
}

// NewHTMLRenderer returns a NodeRenderer that uses host to render variable
// content. host is called at render time; a nil host or a nil result makes
// references render empty.
func NewHTMLRenderer(host func() renderer.Renderer) renderer.NodeRenderer {
	return &HTMLRenderer{host: host}
}

// RegisterFuncs implements renderer.NodeRenderer.
func (r *HTMLRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindVariable, r.renderVariable)
	reg.Register(KindVariableDefinition, r.renderDefinition)
}

func (r *HTMLRenderer) renderVariable(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}

	n, ok := node.(*Reference)
	if !ok {
		return ast.WalkSkipChildren, nil
	}
	content := n.Entry.Content()
	if content == nil || r.host == nil {
		return ast.WalkSkipChildren, nil
	}
	host := r.host()
	if host == nil {
		return ast.WalkSkipChildren, nil
	}

	for c := content.FirstChild(); c != nil; c = c.NextSibling() {
		if err := host.Render(w, source, c); err != nil {
			return ast.WalkStop, err
		}
	}
	return ast.WalkSkipChildren, nil
}

// renderDefinition writes nothing for a referenced definition. Otherwise,
// including when the entry cannot be found, the escaped source is written
// as a paragraph.
func (r *HTMLRenderer) renderDefinition(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}

	n, ok := node.(*Definition)
	if !ok {
		return ast.WalkSkipChildren, nil
	}
	if n.Entry().Referenced() {
		return ast.WalkSkipChildren, nil
	}

	_, _ = w.WriteString("<p>")
	_, _ = w.Write(util.EscapeHTML(n.Literal))
	_, _ = w.WriteString("</p>\n")
	return ast.WalkSkipChildren, nil
}
