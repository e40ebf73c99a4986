package dom

import "testing"

func TestInsertBeforeReorders(t *testing.T) {
	parent := NewNode("pane")
	a := NewNode("card")
	b := NewNode("card")
	c := NewNode("card")
	parent.AppendChild(a)
	parent.AppendChild(b)
	parent.AppendChild(c)

	if err := parent.InsertBefore(c, a); err != nil {
		t.Fatalf("InsertBefore: %v", err)
	}
	got := parent.Children()
	if len(got) != 3 || got[0] != c || got[1] != a || got[2] != b {
		t.Fatalf("unexpected order after insert: %v", names(got))
	}
	if c.Parent() != parent {
		t.Fatal("moved child should keep parent")
	}
}

func TestInsertBeforeNilAppends(t *testing.T) {
	parent := NewNode("pane")
	a := NewNode("card")
	parent.AppendChild(a)

	other := NewNode("pane")
	b := NewNode("card")
	other.AppendChild(b)

	if err := parent.InsertBefore(b, nil); err != nil {
		t.Fatalf("InsertBefore: %v", err)
	}
	if b.Parent() != parent {
		t.Fatal("expected reparent into target")
	}
	if len(other.Children()) != 0 {
		t.Fatal("expected detach from previous parent")
	}
	if parent.Children()[1] != b {
		t.Fatal("expected append at end")
	}
}

func TestInsertBeforeForeignReference(t *testing.T) {
	parent := NewNode("pane")
	other := NewNode("pane")
	ref := NewNode("card")
	other.AppendChild(ref)

	if err := parent.InsertBefore(NewNode("card"), ref); err != ErrNotChild {
		t.Fatalf("err = %v, want ErrNotChild", err)
	}
}

func TestNextSibling(t *testing.T) {
	parent := NewNode("pane")
	a := NewNode("card")
	b := NewNode("card")
	parent.AppendChild(a)
	parent.AppendChild(b)

	if a.NextSibling() != b {
		t.Fatal("a's next sibling should be b")
	}
	if b.NextSibling() != nil {
		t.Fatal("b's next sibling should be nil")
	}
	if NewNode("card").NextSibling() != nil {
		t.Fatal("detached node has no sibling")
	}
}

func TestCloneDeepFreshIdentity(t *testing.T) {
	n := NewNode("card")
	n.SetAttr("class", "task")
	child := NewNode("grip")
	n.AppendChild(child)

	c := n.CloneDeep()
	if c.ID() == n.ID() {
		t.Fatal("clone must get a fresh id")
	}
	if v, _ := c.Attr("class"); v != "task" {
		t.Fatalf("clone class = %q", v)
	}
	if len(c.Children()) != 1 || c.Children()[0].Kind() != "grip" {
		t.Fatal("clone should copy descendants")
	}
	if c.Children()[0].ID() == child.ID() {
		t.Fatal("descendant clone must get a fresh id")
	}
	if c.Parent() != nil {
		t.Fatal("clone must be detached")
	}
}

func TestClosestCrossesScopeEdge(t *testing.T) {
	outer := NewNode("root")
	host := NewNode("widget")
	outer.AppendChild(host)
	inner := host.NewScope("scope-root")
	leaf := NewNode("card")
	inner.AppendChild(leaf)

	// Without crossing, the walk ends at the scope root.
	if got := leaf.Closest(StopAtScope, func(n *Node) bool { return n == outer }); got != nil {
		t.Fatal("StopAtScope walk should not reach the outer tree")
	}
	if got := leaf.Closest(CrossScopes, func(n *Node) bool { return n == outer }); got != outer {
		t.Fatal("CrossScopes walk should reach the outer root via the host edge")
	}
}

func TestContainsStopsAtScope(t *testing.T) {
	host := NewNode("widget")
	inner := host.NewScope("scope-root")
	leaf := NewNode("card")
	inner.AppendChild(leaf)

	if host.Contains(leaf) {
		t.Fatal("Contains must not cross the scope boundary")
	}
	if !inner.Contains(leaf) {
		t.Fatal("scope root should contain its descendants")
	}
}

func names(nodes []*Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Kind()
	}
	return out
}
