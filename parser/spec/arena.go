package spec

// Handle refers to a node stored in an Arena. A handle remembers the
// generation of the slot it was issued for, so once the node is freed the
// handle stops resolving even if the slot is reused. The zero Handle refers to
// nothing.
type Handle struct {
	index      uint32
	generation uint32
}

// Valid reports whether h was ever issued. It does not check liveness; use
// Arena.Node for that.
func (h Handle) Valid() bool { return h.generation != 0 }

type slot struct {
	generation uint32
	node       *Node
}

// Arena owns every node of one parse. Nodes refer to their parent and
// children by Handle rather than by pointer.
type Arena struct {
	slots []slot
	free  []uint32
	live  int
}

func NewArena() *Arena {
	return &Arena{}
}

func (a *Arena) alloc(n *Node) Handle {
	var idx uint32
	if l := len(a.free); l > 0 {
		idx = a.free[l-1]
		a.free = a.free[:l-1]
	} else {
		a.slots = append(a.slots, slot{})
		idx = uint32(len(a.slots) - 1)
	}

	s := &a.slots[idx]
	s.generation = nextGeneration(s.generation)
	s.node = n
	n.arena = a
	n.handle = Handle{index: idx, generation: s.generation}
	a.live++
	return n.handle
}

func nextGeneration(g uint32) uint32 {
	g++
	if g == 0 {
		g = 1
	}
	return g
}

// Node resolves h. It returns nil for the zero handle and for stale handles.
func (a *Arena) Node(h Handle) *Node {
	if h.generation == 0 || int(h.index) >= len(a.slots) {
		return nil
	}
	s := a.slots[h.index]
	if s.generation != h.generation {
		return nil
	}
	return s.node
}

// Len returns the number of live nodes.
func (a *Arena) Len() int { return a.live }

// Free detaches h from its parent and releases it along with its subtree.
func (a *Arena) Free(h Handle) {
	n := a.Node(h)
	if n == nil {
		return
	}
	a.Detach(h)
	a.release(n)
}

func (a *Arena) release(n *Node) {
	for _, c := range n.children {
		if child := a.Node(c); child != nil {
			child.parent = Handle{}
			a.release(child)
		}
	}
	n.children = nil

	s := &a.slots[n.handle.index]
	s.node = nil
	s.generation = nextGeneration(s.generation)
	a.free = append(a.free, n.handle.index)
	a.live--
}

func (a *Arena) NewDocument() Handle {
	return a.alloc(&Node{Type: DocumentNode, Name: "#document"})
}

func (a *Arena) NewElement(name string, ns Namespace, attrs []Attribute) Handle {
	return a.alloc(&Node{
		Type:       ElementNode,
		Name:       name,
		Namespace:  ns,
		Attributes: cloneAttributes(attrs),
	})
}

func (a *Arena) NewText(data string) Handle {
	return a.alloc(&Node{Type: TextNode, Name: "#text", Data: data})
}

func (a *Arena) NewComment(data string) Handle {
	return a.alloc(&Node{Type: CommentNode, Name: "#comment", Data: data})
}

func (a *Arena) NewDoctype(name, publicID, systemID string) Handle {
	return a.alloc(&Node{
		Type:     DocumentTypeNode,
		Name:     name,
		PublicID: publicID,
		SystemID: systemID,
	})
}

// CloneElement makes a detached shallow copy of the element at h.
func (a *Arena) CloneElement(h Handle) Handle {
	n := a.Node(h)
	if n == nil {
		return Handle{}
	}
	c := a.NewElement(n.Name, n.Namespace, n.Attributes)
	a.Node(c).Pos = n.Pos
	return c
}

// Parent returns the parent handle of h, or the zero handle.
func (a *Arena) Parent(h Handle) Handle {
	if n := a.Node(h); n != nil {
		return n.parent
	}
	return Handle{}
}

// LastChild returns the last child handle of h, or the zero handle.
func (a *Arena) LastChild(h Handle) Handle {
	if n := a.Node(h); n != nil && len(n.children) > 0 {
		return n.children[len(n.children)-1]
	}
	return Handle{}
}

// PreviousSibling returns the child of parent immediately before ref. A zero
// ref means the end of the child list.
func (a *Arena) PreviousSibling(parent, ref Handle) Handle {
	p := a.Node(parent)
	if p == nil {
		return Handle{}
	}
	if !ref.Valid() {
		return a.LastChild(parent)
	}
	if i := p.indexOf(ref); i > 0 {
		return p.children[i-1]
	}
	return Handle{}
}

// AppendChild moves child to the end of parent's children.
func (a *Arena) AppendChild(parent, child Handle) {
	a.InsertBefore(parent, child, Handle{})
}

// InsertBefore moves child into parent before ref. A zero or foreign ref
// appends.
func (a *Arena) InsertBefore(parent, child, ref Handle) {
	p, c := a.Node(parent), a.Node(child)
	if p == nil || c == nil || parent == child {
		return
	}
	a.Detach(child)
	c.parent = parent

	i := -1
	if ref.Valid() {
		i = p.indexOf(ref)
	}
	if i < 0 {
		p.children = append(p.children, child)
		return
	}
	p.children = append(p.children, Handle{})
	copy(p.children[i+1:], p.children[i:])
	p.children[i] = child
}

// Detach removes h from its parent. The node stays alive.
func (a *Arena) Detach(h Handle) {
	n := a.Node(h)
	if n == nil || !n.parent.Valid() {
		return
	}
	if p := a.Node(n.parent); p != nil {
		if i := p.indexOf(h); i >= 0 {
			p.children = append(p.children[:i], p.children[i+1:]...)
		}
	}
	n.parent = Handle{}
}

// MoveChildren appends every child of from to to, keeping their order.
func (a *Arena) MoveChildren(from, to Handle) {
	f, t := a.Node(from), a.Node(to)
	if f == nil || t == nil {
		return
	}
	moved := f.children
	f.children = nil
	for _, c := range moved {
		if n := a.Node(c); n != nil {
			n.parent = to
			t.children = append(t.children, c)
		}
	}
}
