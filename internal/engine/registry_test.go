package engine

import (
	"testing"

	"github.com/catpea/data-drag/internal/dom"
	"github.com/catpea/data-drag/internal/geom"
	"github.com/catpea/data-drag/internal/options"
)

// nestedBoard extends the standard fixture with an isolated scope: a
// "widget" host in the outer tree whose scope holds container z.
type nestedBoard struct {
	*board
	host  *dom.Node
	inner *dom.Node
	z     *dom.Node
	iorch *Orchestrator
}

func newNestedBoard() *nestedBoard {
	nb := &nestedBoard{board: newBoard()}
	nb.host = dom.NewNode("widget")
	nb.root.AppendChild(nb.host)
	nb.inner = nb.host.NewScope("scope-root")
	nb.z = dom.NewNode("pane")
	nb.z.SetAttr("class", "shelf")
	nb.z.SetAttr(options.AttrContainer, "")
	nb.inner.AppendChild(nb.z)

	nb.geo.fixed[nb.host] = geom.Rect{X: 40, Y: 60, W: 20, H: 40}
	nb.geo.fixed[nb.inner] = geom.Rect{X: 40, Y: 60, W: 20, H: 40}
	nb.geo.fixed[nb.z] = geom.Rect{X: 40, Y: 60, W: 20, H: 40}

	nb.iorch = New(nb.inner, nb.geo, WithRegistry(nb.reg), WithScheduler(nb.sched))
	return nb
}

func TestFindDropContainerPrimaryScope(t *testing.T) {
	b := newBoard()

	cont, o, ok := b.reg.FindDropContainer(geom.Point{X: 65, Y: 50}, nil)
	if !ok || cont != b.y || o != b.orch {
		t.Fatalf("resolve = (%v,%v,%v), want container y via primary scope", cont, o, ok)
	}

	if _, _, ok := b.reg.FindDropContainer(geom.Point{X: 50, Y: 50}, nil); ok {
		t.Fatal("the gap between panes resolves no container")
	}
}

func TestFindDropContainerNestedScope(t *testing.T) {
	nb := newNestedBoard()

	// Inside the host rect: the outer orchestrator hits the host node,
	// which has no container ancestor, so resolution falls through to the
	// nested scope.
	cont, o, ok := nb.reg.FindDropContainer(geom.Point{X: 45, Y: 70}, nil)
	if !ok || cont != nb.z {
		t.Fatalf("resolve = (%v,%v), want nested container z", cont, ok)
	}
	if o != nb.iorch {
		t.Fatal("nested container must resolve through its own orchestrator")
	}

	// Outside the host rect the nested scope never claims the point.
	cont, _, ok = nb.reg.FindDropContainer(geom.Point{X: 5, Y: 50}, nil)
	if !ok || cont != nb.x {
		t.Fatalf("resolve = (%v,%v), want outer container x", cont, ok)
	}
}

func TestDragFromOuterIntoNestedScope(t *testing.T) {
	nb := newNestedBoard()
	rec := recordEvents(nb.root) // outer listener observes nested activity

	nb.orch.PointerDown(geom.Point{X: 5, Y: 5}, ButtonPrimary)
	nb.orch.PointerMove(geom.Point{X: 45, Y: 70})

	if len(nb.z.Children()) != 1 || nb.z.Children()[0] != nb.a {
		t.Fatalf("item should cross into the nested container: %v", childIDs(nb.z))
	}
	mv := rec.last(EventMove).(Move)
	if mv.To != nb.z {
		t.Fatalf("move.To = %v, want nested container", mv.To)
	}

	nb.orch.PointerUp(geom.Point{X: 45, Y: 70})
	drop, ok := rec.last(EventDrop).(Drop)
	if !ok {
		t.Fatal("outer listener must observe the nested drop")
	}
	if drop.To != nb.z || drop.From != nb.x {
		t.Fatalf("drop = %+v", drop)
	}
}

func TestRegistrationOrderTieBreak(t *testing.T) {
	// Two primary scopes whose containers overlap the same point: the
	// first-registered orchestrator wins. Overlap is a degenerate layout;
	// the order is documented, not designed.
	reg := NewRegistry()
	geo := newTestGeometry()

	mk := func() (*dom.Node, *dom.Node) {
		root := dom.NewNode("root")
		pane := dom.NewNode("pane")
		pane.SetAttr(options.AttrContainer, "")
		root.AppendChild(pane)
		geo.fixed[root] = geom.Rect{X: 0, Y: 0, W: 100, H: 100}
		geo.fixed[pane] = geom.Rect{X: 0, Y: 0, W: 100, H: 100}
		return root, pane
	}
	rootA, paneA := mk()
	rootB, _ := mk()
	New(rootA, geo, WithRegistry(reg))
	New(rootB, geo, WithRegistry(reg))

	cont, _, ok := reg.FindDropContainer(geom.Point{X: 50, Y: 50}, nil)
	if !ok || cont != paneA {
		t.Fatal("first-registered scope should claim an overlapped point")
	}
}

func TestCancelActiveClearsSession(t *testing.T) {
	b := newBoard()
	rec := recordEvents(b.root)

	b.orch.PointerDown(geom.Point{X: 5, Y: 5}, ButtonPrimary)
	b.orch.PointerMove(geom.Point{X: 5, Y: 18})

	b.reg.CancelActive()

	if b.reg.ActiveSession() != nil {
		t.Fatal("session must be cleared")
	}
	if rec.count(EventDrop) != 0 || rec.count(EventCancel) != 1 {
		t.Fatalf("events = %v, want a single cancel", rec.types)
	}
	if !sameIDs(childIDs(b.x), "b", "a", "c") {
		// The mid-drag reorder is not undone; only visuals are.
		t.Fatalf("unexpected tree after cancel: %v", childIDs(b.x))
	}
}
