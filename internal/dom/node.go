package dom

import (
	"errors"

	"github.com/google/uuid"
)

// ErrNotChild is returned when an insert-before reference is not a child of
// the target parent.
var ErrNotChild = errors.New("dom: reference node is not a child of parent")

// Node is one element of the document forest. Nodes are not safe for
// concurrent mutation; the engine's single-turn event model is the
// synchronization contract.
type Node struct {
	id    string
	kind  string
	attrs map[string]string
	style Style

	parent   *Node
	children []*Node

	// scopeRoot is set on a node hosting an isolated scope; host is set on
	// the root node of that scope. Exactly one side of the boundary edge
	// carries each pointer.
	scopeRoot *Node
	host      *Node

	listeners map[string][]listener
	nextSub   int

	anim animState
}

// NewNode creates a detached node of the given kind with a fresh identity.
func NewNode(kind string) *Node {
	return &Node{
		id:    uuid.NewString(),
		kind:  kind,
		attrs: map[string]string{},
		style: Style{Opacity: 1},
	}
}

// ID returns the node's unique identity.
func (n *Node) ID() string { return n.id }

// Kind returns the node's element kind (for example "card" or "pane").
func (n *Node) Kind() string { return n.kind }

// Attr returns the named attribute and whether it is set.
func (n *Node) Attr(name string) (string, bool) {
	v, ok := n.attrs[name]
	return v, ok
}

// SetAttr sets the named attribute.
func (n *Node) SetAttr(name, value string) {
	n.attrs[name] = value
}

// RemoveAttr deletes the named attribute.
func (n *Node) RemoveAttr(name string) {
	delete(n.attrs, name)
}

// Attrs returns a copy of the node's attribute map.
func (n *Node) Attrs() map[string]string {
	out := make(map[string]string, len(n.attrs))
	for k, v := range n.attrs {
		out[k] = v
	}
	return out
}

// Parent returns the structural parent, nil for a tree root.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the node's children in structural order. The returned
// slice is shared; callers must not mutate it.
func (n *Node) Children() []*Node { return n.children }

// IndexOf returns the position of child under n, or -1.
func (n *Node) IndexOf(child *Node) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

// NextSibling returns the node immediately after n under its parent, or nil.
func (n *Node) NextSibling() *Node {
	if n.parent == nil {
		return nil
	}
	i := n.parent.IndexOf(n)
	if i < 0 || i+1 >= len(n.parent.children) {
		return nil
	}
	return n.parent.children[i+1]
}

// AppendChild detaches child from its current parent and appends it as the
// last child of n.
func (n *Node) AppendChild(child *Node) {
	child.Detach()
	child.parent = n
	n.children = append(n.children, child)
}

// InsertBefore detaches child and inserts it immediately before ref under
// n. A nil ref appends at the end. Inserting a node before itself is a
// no-op.
func (n *Node) InsertBefore(child, ref *Node) error {
	if ref == nil {
		n.AppendChild(child)
		return nil
	}
	if ref == child {
		return nil
	}
	if ref.parent != n {
		return ErrNotChild
	}
	child.Detach()
	i := n.IndexOf(ref)
	n.children = append(n.children, nil)
	copy(n.children[i+1:], n.children[i:])
	n.children[i] = child
	child.parent = n
	return nil
}

// Detach removes the node from its parent, leaving it as a standalone tree
// root. Detaching a parentless node is a no-op.
func (n *Node) Detach() {
	p := n.parent
	if p == nil {
		return
	}
	i := p.IndexOf(n)
	if i >= 0 {
		copy(p.children[i:], p.children[i+1:])
		p.children[len(p.children)-1] = nil
		p.children = p.children[:len(p.children)-1]
	}
	n.parent = nil
}

// CloneDeep copies the node, its attributes, inline style, and all
// descendants, including hosted scopes. Clones get fresh identities and no
// listeners.
func (n *Node) CloneDeep() *Node {
	c := NewNode(n.kind)
	for k, v := range n.attrs {
		c.attrs[k] = v
	}
	c.style = n.style
	for _, child := range n.children {
		c.AppendChild(child.CloneDeep())
	}
	if n.scopeRoot != nil {
		c.AttachScope(n.scopeRoot.CloneDeep())
	}
	return c
}

// Contains reports whether other is n or a structural descendant of n
// within the same tree (scope boundaries are not crossed).
func (n *Node) Contains(other *Node) bool {
	for cur := other; cur != nil; cur = cur.parent {
		if cur == n {
			return true
		}
	}
	return false
}

// Root returns the root of the tree containing n, without crossing scope
// boundaries.
func (n *Node) Root() *Node {
	cur := n
	for cur.parent != nil {
		cur = cur.parent
	}
	return cur
}
