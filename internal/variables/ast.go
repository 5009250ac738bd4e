package variables

import (
	"strconv"

	"github.com/yuin/goldmark/ast"
)

// KindVariableDefinition is the NodeKind of a "{{> name content }}" block.
var KindVariableDefinition = ast.NewNodeKind("VariableDefinition")

// KindVariable is the NodeKind of a "{{ name }}" reference.
var KindVariable = ast.NewNodeKind("Variable")

// Definition marks the position of a variable definition. Its single line
// is the trimmed content, which the inline phase parses into its children.
type Definition struct {
	ast.BaseBlock

	// Name is the variable name.
	Name string
	// Literal is the raw source of the construct, from "{{>" through "}}".
	Literal []byte

	table *Table
}

// NewDefinition returns a Definition node that is not yet attached to a
// table.
func NewDefinition(name string, literal []byte) *Definition {
	return &Definition{Name: name, Literal: literal}
}

// Kind implements ast.Node.
func (n *Definition) Kind() ast.NodeKind {
	return KindVariableDefinition
}

// Entry looks the definition up in the table it was parsed into. It
// returns nil when the node is detached.
func (n *Definition) Entry() *Entry {
	entry, _ := n.table.Lookup(n.Name)
	return entry
}

// Dump implements ast.Node.
func (n *Definition) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Name":       n.Name,
		"Referenced": strconv.FormatBool(n.Entry().Referenced()),
	}, nil)
}

// Reference is an inline use of a variable. It has no children of its own;
// the rendered content comes from Entry.
type Reference struct {
	ast.BaseInline

	Name  string
	Entry *Entry
}

// NewReference returns a Reference node bound to entry.
func NewReference(entry *Entry) *Reference {
	return &Reference{Name: entry.Name(), Entry: entry}
}

// Kind implements ast.Node.
func (n *Reference) Kind() ast.NodeKind {
	return KindVariable
}

// Dump implements ast.Node.
func (n *Reference) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Name": n.Name,
	}, nil)
}

