package spec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildDocument makes
//
//	<!DOCTYPE html><html lang=en class=a><head><title> A\n title </title></head>
//	<body><div id=main class="x y">one<p class=y>two</p></div><svg viewBox=0 xlink:href=#x></svg><!--c-->t</body></html>
func buildDocument(t *testing.T) *Document {
	t.Helper()
	a := NewArena()
	h := a.NewDocument()
	doc := NewDocument(a, h)

	add := func(parent, child Handle) Handle {
		a.AppendChild(parent, child)
		return child
	}
	add(h, a.NewDoctype("html", "", ""))
	html := add(h, a.NewElement("html", Htmlns, []Attribute{{Name: "lang", Value: "en"}, {Name: "class", Value: "a"}}))
	head := add(html, a.NewElement("head", Htmlns, nil))
	title := add(head, a.NewElement("title", Htmlns, nil))
	add(title, a.NewText(" A\n title "))
	body := add(html, a.NewElement("body", Htmlns, nil))
	div := add(body, a.NewElement("div", Htmlns, []Attribute{{Name: "id", Value: "main"}, {Name: "class", Value: "x\ty"}}))
	add(div, a.NewText("one"))
	p := add(div, a.NewElement("p", Htmlns, []Attribute{{Name: "class", Value: "y"}}))
	add(p, a.NewText("two"))
	add(body, a.NewElement("svg", Svgns, []Attribute{
		{Name: "viewBox", Value: "0"},
		{Namespace: Xlinkns, Name: "href", Value: "#x"},
	}))
	add(body, a.NewComment("c"))
	add(body, a.NewText("t"))

	require.Equal(t, doc.Arena(), a)
	return doc
}

func TestDocumentAccessors(t *testing.T) {
	t.Parallel()
	doc := buildDocument(t)

	require.NotNil(t, doc.Doctype())
	assert.Equal(t, "html", doc.Doctype().Name)
	require.NotNil(t, doc.Root())
	assert.True(t, doc.Root().Is("html"))
	assert.True(t, doc.Head().Is("head"))
	assert.True(t, doc.Body().Is("body"))
	assert.Equal(t, "A title", doc.Title())
	assert.Equal(t, "no-quirks", doc.QuirksMode.String())

	empty := NewDocument(NewArena(), Handle{})
	assert.Nil(t, empty.Node)
}

func TestNodeAccessors(t *testing.T) {
	t.Parallel()
	doc := buildDocument(t)

	div := doc.FindByID("main")
	require.NotNil(t, div)
	assert.Equal(t, "main", div.ID())
	assert.Equal(t, []string{"x", "y"}, div.Classes())
	assert.True(t, div.HasClass("y"))
	assert.False(t, div.HasClass("x y"))
	assert.Equal(t, "onetwo", div.TextContent())
	assert.Equal(t, doc.Body(), div.Parent())

	first := div.FirstChild()
	require.NotNil(t, first)
	assert.Equal(t, TextNode, first.Type)
	assert.True(t, div.LastChild().Is("p"))
	assert.Equal(t, div.LastChild(), first.NextSibling())
	assert.Equal(t, first, div.LastChild().PrevSibling())
	assert.Nil(t, first.PrevSibling())
	assert.Nil(t, doc.Node.NextSibling())

	assert.Len(t, doc.FindByClass("y"), 2)
	assert.Len(t, doc.FindByName("p"), 1)
	assert.Nil(t, doc.FindByID("missing"))

	svg := doc.Body().Children()[1]
	assert.Equal(t, "svg", svg.Name)
	assert.False(t, svg.Is("svg"), "Is only matches HTML elements")
	assert.False(t, svg.HasAttr("href"), "Attr only matches attributes in no namespace")
	assert.True(t, svg.HasAttr("viewBox"))
	assert.Equal(t, "xlink:href", svg.Attributes[1].QualifiedName())
}

func TestNodeWalkSkipsChildren(t *testing.T) {
	t.Parallel()
	doc := buildDocument(t)

	var visited []string
	doc.Walk(func(n *Node) bool {
		if n.Type == ElementNode {
			visited = append(visited, n.Name)
		}
		return !n.Is("head", "div")
	})
	assert.Equal(t, []string{"html", "head", "body", "div", "svg"}, visited)
}

func TestIsVoid(t *testing.T) {
	t.Parallel()
	a := NewArena()
	assert.True(t, a.Node(a.NewElement("br", Htmlns, nil)).IsVoid())
	assert.False(t, a.Node(a.NewElement("div", Htmlns, nil)).IsVoid())
	assert.False(t, a.Node(a.NewElement("image", Svgns, nil)).IsVoid())
	assert.True(t, IsVoidElement("wbr"))
	assert.False(t, IsVoidElement("template"))
}

func TestDump(t *testing.T) {
	t.Parallel()
	doc := buildDocument(t)
	want := `#document
| <!DOCTYPE html>
| <html>
|   class="a"
|   lang="en"
|   <head>
|     <title>
|       " A
 title "
|   <body>
|     <div>
|       class="x	y"
|       id="main"
|       "one"
|       <p>
|         class="y"
|         "two"
|     <svg svg>
|       viewBox="0"
|       xlink href="#x"
|     <!-- c -->
|     "t"`
	assert.Equal(t, want, doc.Dump())

	frag := &Fragment{Nodes: doc.Body().Children()[1:]}
	assert.Equal(t, "| <svg svg>\n|   viewBox=\"0\"\n|   xlink href=\"#x\"\n| <!-- c -->\n| \"t\"", frag.Dump())
}

func TestDoctypeDump(t *testing.T) {
	t.Parallel()
	a := NewArena()
	n := a.Node(a.NewDoctype("html", "-//W3C//DTD HTML 4.01//EN", ""))
	assert.Equal(t, `| <!DOCTYPE html "-//W3C//DTD HTML 4.01//EN" "">`, n.Dump())
}

func TestIsEqualNode(t *testing.T) {
	t.Parallel()
	a, b := buildDocument(t), buildDocument(t)
	assert.True(t, a.Node.IsEqualNode(b.Node))

	b.FindByID("main").Attributes[1].Value = "z"
	assert.False(t, a.Node.IsEqualNode(b.Node))
	assert.True(t, a.Head().IsEqualNode(b.Head()))
	assert.False(t, a.Head().IsEqualNode(nil))

	b = buildDocument(t)
	b.Doctype().PublicIDMissing = true
	assert.False(t, a.Doctype().IsEqualNode(b.Doctype()), "a missing identifier differs from an empty one")
}

func TestAttributesEqual(t *testing.T) {
	t.Parallel()
	x := []Attribute{{Name: "a", Value: "1"}, {Name: "b", Value: "2"}}
	y := []Attribute{{Name: "b", Value: "2"}, {Name: "a", Value: "1"}}
	assert.True(t, AttributesEqual(x, y))
	assert.False(t, AttributesEqual(x, y[:1]))
	assert.False(t, AttributesEqual(x, []Attribute{{Name: "a", Value: "1"}, {Namespace: Xlinkns, Name: "b", Value: "2"}}))
}

func TestNamespaces(t *testing.T) {
	t.Parallel()
	tests := []struct {
		ns     Namespace
		uri    string
		prefix string
	}{
		{Htmlns, "http://www.w3.org/1999/xhtml", ""},
		{Mathmlns, "http://www.w3.org/1998/Math/MathML", "math"},
		{Svgns, "http://www.w3.org/2000/svg", "svg"},
		{Xlinkns, "http://www.w3.org/1999/xlink", "xlink"},
		{Xmlns, "http://www.w3.org/XML/1998/namespace", "xml"},
		{Xmlnsns, "http://www.w3.org/2000/xmlns/", "xmlns"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.uri, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.uri, tt.ns.URI())
			assert.Equal(t, tt.prefix, tt.ns.Prefix())
		})
	}

	assert.Equal(t, "xmlns", Attribute{Namespace: Xmlnsns, Name: "xmlns"}.QualifiedName())
	assert.Equal(t, "xmlns:xlink", Attribute{Namespace: Xmlnsns, Name: "xlink"}.QualifiedName())
}

func TestParseErrorString(t *testing.T) {
	t.Parallel()
	err := ParseError{Kind: DuplicateAttribute, Pos: Position{Offset: 10, Line: 2, Col: 4}}
	assert.Equal(t, "2:4: duplicate-attribute", err.Error())
	assert.Equal(t, "element", ElementNode.String())
	assert.Equal(t, "limited-quirks", LimitedQuirks.String())
}
