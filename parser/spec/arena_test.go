package spec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(nodes []*Node) []string {
	var out []string
	for _, n := range nodes {
		out = append(out, n.Name)
	}
	return out
}

func TestArenaHandles(t *testing.T) {
	t.Parallel()
	a := NewArena()

	var zero Handle
	assert.False(t, zero.Valid())
	assert.Nil(t, a.Node(zero))

	doc := a.NewDocument()
	div := a.NewElement("div", Htmlns, nil)
	assert.True(t, div.Valid())
	assert.Equal(t, 2, a.Len())

	n := a.Node(div)
	require.NotNil(t, n)
	assert.Equal(t, div, n.Handle())
	assert.Equal(t, ElementNode, n.Type)

	a.AppendChild(doc, div)
	assert.Equal(t, doc, a.Parent(div))
	assert.Equal(t, div, a.LastChild(doc))
}

func TestArenaFreeInvalidatesHandles(t *testing.T) {
	t.Parallel()
	a := NewArena()
	doc := a.NewDocument()
	div := a.NewElement("div", Htmlns, nil)
	text := a.NewText("x")
	a.AppendChild(doc, div)
	a.AppendChild(div, text)
	require.Equal(t, 3, a.Len())

	a.Free(div)
	assert.Nil(t, a.Node(div))
	assert.Nil(t, a.Node(text))
	assert.Equal(t, 1, a.Len())
	assert.False(t, a.Node(doc).HasChildNodes())

	// freed slots are reused without reviving the old handles.
	p := a.NewElement("p", Htmlns, nil)
	span := a.NewElement("span", Htmlns, nil)
	assert.NotNil(t, a.Node(p))
	assert.NotNil(t, a.Node(span))
	assert.Nil(t, a.Node(div))
	assert.Nil(t, a.Node(text))

	a.Free(div)
	assert.Equal(t, 3, a.Len())
}

func TestArenaInsertBefore(t *testing.T) {
	t.Parallel()
	a := NewArena()
	parent := a.NewElement("ul", Htmlns, nil)
	first := a.NewElement("first", Htmlns, nil)
	last := a.NewElement("last", Htmlns, nil)
	middle := a.NewElement("middle", Htmlns, nil)

	a.AppendChild(parent, first)
	a.AppendChild(parent, last)
	a.InsertBefore(parent, middle, last)
	assert.Equal(t, []string{"first", "middle", "last"}, names(a.Node(parent).Children()))

	assert.Equal(t, middle, a.PreviousSibling(parent, last))
	assert.Equal(t, last, a.PreviousSibling(parent, Handle{}))
	assert.Equal(t, Handle{}, a.PreviousSibling(parent, first))

	// inserting moves a node out of its old parent.
	other := a.NewElement("ol", Htmlns, nil)
	a.InsertBefore(other, middle, Handle{})
	assert.Equal(t, []string{"first", "last"}, names(a.Node(parent).Children()))
	assert.Equal(t, other, a.Parent(middle))

	// a node cannot become its own child.
	a.AppendChild(other, other)
	assert.Equal(t, []string{"middle"}, names(a.Node(other).Children()))
}

func TestArenaDetachAndMoveChildren(t *testing.T) {
	t.Parallel()
	a := NewArena()
	from := a.NewElement("div", Htmlns, nil)
	to := a.NewElement("section", Htmlns, []Attribute{{Name: "id", Value: "x"}})
	for _, name := range []string{"a", "b", "c"} {
		a.AppendChild(from, a.NewElement(name, Htmlns, nil))
	}
	a.AppendChild(to, a.NewText("t"))

	b := a.Node(from).Children()[1]
	a.Detach(b.Handle())
	assert.Nil(t, b.Parent())
	assert.NotNil(t, a.Node(b.Handle()))
	assert.Equal(t, []string{"a", "c"}, names(a.Node(from).Children()))

	a.MoveChildren(from, to)
	assert.False(t, a.Node(from).HasChildNodes())
	assert.Equal(t, []string{"#text", "a", "c"}, names(a.Node(to).Children()))
	for _, c := range a.Node(to).Children() {
		assert.Equal(t, to, c.Parent().Handle())
	}
}

func TestArenaCloneElement(t *testing.T) {
	t.Parallel()
	a := NewArena()
	orig := a.NewElement("b", Htmlns, []Attribute{{Name: "class", Value: "x"}})
	a.AppendChild(orig, a.NewText("child"))

	clone := a.Node(a.CloneElement(orig))
	require.NotNil(t, clone)
	assert.Equal(t, "b", clone.Name)
	assert.False(t, clone.HasChildNodes())
	assert.Nil(t, clone.Parent())

	clone.Attributes[0].Value = "y"
	v, _ := a.Node(orig).Attr("class")
	assert.Equal(t, "x", v)

	assert.Equal(t, Handle{}, a.CloneElement(Handle{}))
}
