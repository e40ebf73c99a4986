package dom

// AttachScope mounts root as an isolated scope hosted by n, replacing any
// previous scope. The scope forms its own tree: the root has no structural
// parent, only the host back-pointer, so plain ancestor walks stop at the
// boundary unless the traversal rule crosses it.
func (n *Node) AttachScope(root *Node) *Node {
	if n.scopeRoot != nil {
		n.scopeRoot.host = nil
	}
	root.Detach()
	root.host = n
	n.scopeRoot = root
	return root
}

// NewScope creates a fresh scope root of the given kind hosted by n.
func (n *Node) NewScope(kind string) *Node {
	return n.AttachScope(NewNode(kind))
}

// DetachScope unmounts and returns the hosted scope root, or nil.
func (n *Node) DetachScope() *Node {
	root := n.scopeRoot
	if root == nil {
		return nil
	}
	root.host = nil
	n.scopeRoot = nil
	return root
}

// ScopeRoot returns the root of the scope hosted by n, or nil.
func (n *Node) ScopeRoot() *Node { return n.scopeRoot }

// Host returns the node hosting this scope root, or nil if n is not a
// scope root.
func (n *Node) Host() *Node { return n.host }

// EdgeRule controls whether upward traversal crosses host boundary edges.
type EdgeRule int

const (
	// StopAtScope halts traversal at a scope root.
	StopAtScope EdgeRule = iota
	// CrossScopes continues from a scope root to its host, treating the
	// boundary as one more edge of a single logical tree.
	CrossScopes
)

// up returns the next node in an upward walk under the given rule.
func (n *Node) up(rule EdgeRule) *Node {
	if n.parent != nil {
		return n.parent
	}
	if rule == CrossScopes {
		return n.host
	}
	return nil
}

// Closest walks from n upward, applying the edge rule at scope boundaries,
// and returns the first node (including n itself) satisfying pred, or nil.
func (n *Node) Closest(rule EdgeRule, pred func(*Node) bool) *Node {
	for cur := n; cur != nil; cur = cur.up(rule) {
		if pred(cur) {
			return cur
		}
	}
	return nil
}
