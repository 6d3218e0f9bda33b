package spec

import "strings"

type QuirksMode uint8

const (
	NoQuirks QuirksMode = iota
	LimitedQuirks
	Quirks
)

func (q QuirksMode) String() string {
	switch q {
	case LimitedQuirks:
		return "limited-quirks"
	case Quirks:
		return "quirks"
	}
	return "no-quirks"
}

// Document is the result of parsing a complete HTML document. It embeds the
// document node, so tree accessors work on it directly.
type Document struct {
	*Node
	QuirksMode QuirksMode
	Errors     []ParseError
}

// NewDocument wraps the document node h of arena a.
func NewDocument(a *Arena, h Handle) *Document {
	return &Document{Node: a.Node(h)}
}

// Arena returns the arena that owns the document's nodes.
func (d *Document) Arena() *Arena { return d.arena }

func (d *Document) Doctype() *Node {
	for _, c := range d.Children() {
		if c.Type == DocumentTypeNode {
			return c
		}
	}
	return nil
}

// Root returns the html element.
func (d *Document) Root() *Node {
	for _, c := range d.Children() {
		if c.Type == ElementNode {
			return c
		}
	}
	return nil
}

func (d *Document) rootChild(names ...string) *Node {
	root := d.Root()
	if root == nil {
		return nil
	}
	for _, c := range root.Children() {
		if c.Is(names...) {
			return c
		}
	}
	return nil
}

func (d *Document) Head() *Node { return d.rootChild("head") }

// Body returns the body element, or the frameset element for frameset
// documents.
func (d *Document) Body() *Node { return d.rootChild("body", "frameset") }

// Title returns the text of the first title element with ASCII whitespace
// stripped and collapsed.
func (d *Document) Title() string {
	t := d.Find(func(n *Node) bool { return n.Is("title") })
	if t == nil {
		return ""
	}
	return strings.Join(strings.FieldsFunc(t.TextContent(), isASCIIWhitespace), " ")
}

// Fragment is the result of parsing HTML in the context of an element. The
// context element itself is not part of Nodes.
type Fragment struct {
	Context    string
	Nodes      []*Node
	QuirksMode QuirksMode
	Errors     []ParseError
}

func (f *Fragment) Dump() string {
	dumps := make([]string, 0, len(f.Nodes))
	for _, n := range f.Nodes {
		dumps = append(dumps, n.Dump())
	}
	return strings.Join(dumps, "\n")
}
