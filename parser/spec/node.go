package spec

import (
	"sort"
	"strings"
)

type NodeType uint16

const (
	ElementNode NodeType = iota + 1
	TextNode
	CommentNode
	DocumentNode
	DocumentTypeNode
)

func (t NodeType) String() string {
	switch t {
	case ElementNode:
		return "element"
	case TextNode:
		return "text"
	case CommentNode:
		return "comment"
	case DocumentNode:
		return "document"
	case DocumentTypeNode:
		return "doctype"
	}
	return "unknown"
}

// Node is one node of a parsed tree. Which fields are meaningful depends on
// Type: elements use Name, Namespace and Attributes, text and comments use
// Data, and doctypes use Name, PublicID and SystemID.
type Node struct {
	Type       NodeType
	Name       string
	Namespace  Namespace
	Attributes []Attribute
	Data       string
	PublicID   string
	SystemID   string
	// PublicIDMissing and SystemIDMissing are set on doctypes whose
	// identifier was absent rather than empty.
	PublicIDMissing bool
	SystemIDMissing bool
	// Pos is where the token that created the node started.
	Pos Position

	arena    *Arena
	handle   Handle
	parent   Handle
	children []Handle
}

// Handle returns the node's handle in its arena.
func (n *Node) Handle() Handle { return n.handle }

func (n *Node) indexOf(h Handle) int {
	for i, c := range n.children {
		if c == h {
			return i
		}
	}
	return -1
}

func (n *Node) Parent() *Node {
	if n.arena == nil {
		return nil
	}
	return n.arena.Node(n.parent)
}

func (n *Node) Children() []*Node {
	if n.arena == nil || len(n.children) == 0 {
		return nil
	}
	out := make([]*Node, 0, len(n.children))
	for _, h := range n.children {
		if c := n.arena.Node(h); c != nil {
			out = append(out, c)
		}
	}
	return out
}

func (n *Node) HasChildNodes() bool { return len(n.children) > 0 }

func (n *Node) FirstChild() *Node {
	if n.arena == nil || len(n.children) == 0 {
		return nil
	}
	return n.arena.Node(n.children[0])
}

func (n *Node) LastChild() *Node {
	if n.arena == nil || len(n.children) == 0 {
		return nil
	}
	return n.arena.Node(n.children[len(n.children)-1])
}

func (n *Node) sibling(offset int) *Node {
	p := n.Parent()
	if p == nil {
		return nil
	}
	i := p.indexOf(n.handle) + offset
	if i < 0 || i >= len(p.children) {
		return nil
	}
	return n.arena.Node(p.children[i])
}

func (n *Node) NextSibling() *Node { return n.sibling(1) }
func (n *Node) PrevSibling() *Node { return n.sibling(-1) }

// Is reports whether n is an HTML element with one of the given names.
func (n *Node) Is(names ...string) bool {
	if n == nil || n.Type != ElementNode || n.Namespace != Htmlns {
		return false
	}
	for _, name := range names {
		if n.Name == name {
			return true
		}
	}
	return false
}

// IsVoid reports whether n is a void HTML element.
func (n *Node) IsVoid() bool {
	return n.Type == ElementNode && n.Namespace == Htmlns && IsVoidElement(n.Name)
}

// Attr returns the value of the attribute in no namespace called name.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attributes {
		if a.Namespace == Htmlns && a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

func (n *Node) HasAttr(name string) bool {
	_, ok := n.Attr(name)
	return ok
}

func (n *Node) ID() string {
	id, _ := n.Attr("id")
	return id
}

// Classes splits the class attribute on ASCII whitespace.
func (n *Node) Classes() []string {
	class, _ := n.Attr("class")
	return strings.FieldsFunc(class, isASCIIWhitespace)
}

func (n *Node) HasClass(class string) bool {
	for _, c := range n.Classes() {
		if c == class {
			return true
		}
	}
	return false
}

// TextContent concatenates the data of every descendant text node.
func (n *Node) TextContent() string {
	if n.Type == TextNode {
		return n.Data
	}
	var sb strings.Builder
	n.Walk(func(d *Node) bool {
		if d.Type == TextNode {
			sb.WriteString(d.Data)
		}
		return true
	})
	return sb.String()
}

// Walk visits n and its descendants in document order. Returning false from
// fn skips the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children() {
		c.Walk(fn)
	}
}

// Find returns the first descendant of n, in document order, that matches.
func (n *Node) Find(match func(*Node) bool) *Node {
	var found *Node
	n.Walk(func(d *Node) bool {
		if found != nil {
			return false
		}
		if d != n && match(d) {
			found = d
			return false
		}
		return true
	})
	return found
}

// FindAll returns every descendant of n that matches, in document order.
func (n *Node) FindAll(match func(*Node) bool) []*Node {
	var found []*Node
	n.Walk(func(d *Node) bool {
		if d != n && match(d) {
			found = append(found, d)
		}
		return true
	})
	return found
}

func (n *Node) FindByID(id string) *Node {
	return n.Find(func(d *Node) bool {
		return d.Type == ElementNode && d.ID() == id
	})
}

func (n *Node) FindByClass(class string) []*Node {
	return n.FindAll(func(d *Node) bool {
		return d.Type == ElementNode && d.HasClass(class)
	})
}

// FindByName returns every HTML element descendant with the given tag name.
func (n *Node) FindByName(name string) []*Node {
	return n.FindAll(func(d *Node) bool { return d.Is(name) })
}

// IsEqualNode compares two subtrees structurally.
func (n *Node) IsEqualNode(on *Node) bool {
	if n == nil || on == nil {
		return n == on
	}
	if n.Type != on.Type || n.Name != on.Name || n.Namespace != on.Namespace ||
		n.Data != on.Data || n.PublicID != on.PublicID || n.SystemID != on.SystemID ||
		n.PublicIDMissing != on.PublicIDMissing || n.SystemIDMissing != on.SystemIDMissing ||
		!AttributesEqual(n.Attributes, on.Attributes) {
		return false
	}
	a, b := n.Children(), on.Children()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].IsEqualNode(b[i]) {
			return false
		}
	}
	return true
}

func dumpLine(node *Node) string {
	switch node.Type {
	case ElementNode:
		if p := node.Namespace.Prefix(); p != "" {
			return "<" + p + " " + node.Name + ">"
		}
		return "<" + node.Name + ">"
	case TextNode:
		return "\"" + node.Data + "\""
	case CommentNode:
		return "<!-- " + node.Data + " -->"
	case DocumentTypeNode:
		d := "<!DOCTYPE " + node.Name
		if node.PublicID != "" || node.SystemID != "" {
			d += " \"" + node.PublicID + "\" \"" + node.SystemID + "\""
		}
		return d + ">"
	case DocumentNode:
		return "#document"
	}
	return ""
}

func (node *Node) dump(sb *strings.Builder, depth int) {
	indent := "| " + strings.Repeat("  ", depth)
	sb.WriteString(indent)
	sb.WriteString(dumpLine(node))
	sb.WriteByte('\n')

	if node.Type == ElementNode && len(node.Attributes) > 0 {
		attrs := make([]string, 0, len(node.Attributes))
		for _, a := range node.Attributes {
			name := a.Name
			if p := a.Namespace.Prefix(); p != "" {
				name = p + " " + name
			}
			attrs = append(attrs, name+"=\""+a.Value+"\"")
		}
		sort.Strings(attrs)
		for _, a := range attrs {
			sb.WriteString(indent + "  " + a + "\n")
		}
	}
	for _, c := range node.Children() {
		c.dump(sb, depth+1)
	}
}

// Dump renders the subtree rooted at n in the html5lib tree-construction
// test format.
func (n *Node) Dump() string {
	var sb strings.Builder
	if n.Type == DocumentNode {
		sb.WriteString("#document\n")
		for _, c := range n.Children() {
			c.dump(&sb, 0)
		}
	} else {
		n.dump(&sb, 0)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (n *Node) String() string {
	return n.Dump()
}

func isASCIIWhitespace(r rune) bool {
	switch r {
	case '\t', '\n', '\f', '\r', ' ':
		return true
	}
	return false
}
