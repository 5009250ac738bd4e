package variables

import (
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
)

var tableKey = parser.NewContextKey()

// Entry is one defined variable. Its content is the Definition node whose
// inline children hold the parsed fragment; every reference to the entry
// renders that same subtree.
type Entry struct {
	name       string
	definition *Definition
	offset     int
	referenced bool
}

// Name returns the variable name.
func (e *Entry) Name() string {
	if e == nil {
		return ""
	}
	return e.name
}

// Content returns the node whose children are the parsed inline content,
// or nil for a nil entry. Callers must not mutate it.
func (e *Entry) Content() ast.Node {
	if e == nil || e.definition == nil {
		return nil
	}
	return e.definition
}

// Referenced reports whether at least one reference resolved to the entry.
func (e *Entry) Referenced() bool {
	return e != nil && e.referenced
}

// Table maps variable names to entries for a single parse.
type Table struct {
	entries map[string]*Entry
	order   []string
}

func newTable() *Table {
	return &Table{entries: map[string]*Entry{}}
}

// TableFrom returns the table attached to pc, or nil when the document has
// not defined any variable.
func TableFrom(pc parser.Context) *Table {
	if pc == nil {
		return nil
	}
	table, _ := pc.Get(tableKey).(*Table)
	return table
}

// ensureTable returns the table on pc, creating it on first use.
func ensureTable(pc parser.Context) *Table {
	if table := TableFrom(pc); table != nil {
		return table
	}
	table := newTable()
	pc.Set(tableKey, table)
	return table
}

// Lookup returns the entry for name.
func (t *Table) Lookup(name string) (*Entry, bool) {
	if t == nil {
		return nil, false
	}
	entry, ok := t.entries[name]
	return entry, ok
}

// Has reports whether name is defined.
func (t *Table) Has(name string) bool {
	_, ok := t.Lookup(name)
	return ok
}

// Len returns the number of defined variables.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.order)
}

// Names lists every defined name in definition order.
func (t *Table) Names() []string {
	return t.filter(func(*Entry) bool { return true })
}

// Referenced lists the names used by at least one reference.
func (t *Table) Referenced() []string {
	return t.filter((*Entry).Referenced)
}

// Unreferenced lists the names nothing referred to.
func (t *Table) Unreferenced() []string {
	return t.filter(func(e *Entry) bool { return !e.Referenced() })
}

func (t *Table) filter(keep func(*Entry) bool) []string {
	if t == nil {
		return nil
	}
	names := make([]string, 0, len(t.order))
	for _, name := range t.order {
		if keep(t.entries[name]) {
			names = append(names, name)
		}
	}
	return names
}

// define stores a new entry. It refuses to overwrite an existing name.
func (t *Table) define(name string, def *Definition, offset int) (*Entry, bool) {
	if _, exists := t.entries[name]; exists {
		return nil, false
	}
	entry := &Entry{name: name, definition: def, offset: offset}
	t.entries[name] = entry
	t.order = append(t.order, name)
	return entry, true
}

// resolve returns the entry for name if it was defined before offset in the
// source. It does not mark the entry as referenced.
func (t *Table) resolve(name string, offset int) (*Entry, bool) {
	entry, ok := t.Lookup(name)
	if !ok || entry.offset >= offset {
		return nil, false
	}
	return entry, true
}
