package engine

import (
	"github.com/catpea/data-drag/internal/dom"
	"github.com/catpea/data-drag/internal/geom"
	"github.com/catpea/data-drag/internal/options"
)

// testGeometry lays out fixtures on demand: nodes listed in fixed get their
// assigned rectangles, everything else stacks vertically inside its parent
// in rows of height 10. Recomputing from the tree on every query mimics a
// live layout engine, so rects are current immediately after a structural
// move.
type testGeometry struct {
	fixed map[*dom.Node]geom.Rect
}

const rowHeight = 10

func newTestGeometry() *testGeometry {
	return &testGeometry{fixed: map[*dom.Node]geom.Rect{}}
}

func (g *testGeometry) Rect(n *dom.Node) (geom.Rect, bool) {
	if r, ok := g.fixed[n]; ok {
		return r, true
	}
	st := n.Style()
	if st.Fixed {
		return geom.Rect{X: st.X, Y: st.Y, W: st.W, H: st.H}, true
	}
	p := n.Parent()
	if p == nil {
		return geom.Rect{}, false
	}
	pr, ok := g.Rect(p)
	if !ok {
		return geom.Rect{}, false
	}
	row := 0
	for _, c := range p.Children() {
		if c == n {
			break
		}
		if c.Style().Fixed {
			continue
		}
		row++
	}
	return geom.Rect{X: pr.X, Y: pr.Y + float64(row*rowHeight), W: pr.W, H: rowHeight}, true
}

func (g *testGeometry) TopmostAt(root *dom.Node, p geom.Point, skip *dom.Node) (*dom.Node, bool) {
	var best *dom.Node
	var walk func(n *dom.Node)
	walk = func(n *dom.Node) {
		if n == skip || n.Style().PointerTransparent {
			return
		}
		if r, ok := g.Rect(n); ok && r.Contains(p) {
			best = n
		}
		for _, c := range n.Children() {
			walk(c)
		}
	}
	walk(root)
	if best == nil {
		return nil, false
	}
	return best, true
}

// manualScheduler queues frame callbacks until flushed, standing in for the
// host's render tick.
type manualScheduler struct {
	queue []func()
}

func (s *manualScheduler) NextFrame(fn func()) {
	s.queue = append(s.queue, fn)
}

func (s *manualScheduler) flush() {
	q := s.queue
	s.queue = nil
	for _, fn := range q {
		fn()
	}
}

// board is the standard two-pane fixture: container X (class "toolbox") on
// the left with cards a, b, c, container Y (class "library") on the right,
// all inside one primary scope.
type board struct {
	root    *dom.Node
	x, y    *dom.Node
	a, b, c *dom.Node
	geo     *testGeometry
	sched   *manualScheduler
	reg     *Registry
	orch    *Orchestrator
}

func newBoard() *board {
	b := &board{
		geo:   newTestGeometry(),
		sched: &manualScheduler{},
		reg:   NewRegistry(),
	}
	b.root = dom.NewNode("root")
	b.x = dom.NewNode("pane")
	b.x.SetAttr("class", "toolbox")
	b.x.SetAttr(options.AttrContainer, "")
	b.y = dom.NewNode("pane")
	b.y.SetAttr("class", "library")
	b.y.SetAttr(options.AttrContainer, "")
	b.root.AppendChild(b.x)
	b.root.AppendChild(b.y)

	b.a = card("a")
	b.b = card("b")
	b.c = card("c")
	b.x.AppendChild(b.a)
	b.x.AppendChild(b.b)
	b.x.AppendChild(b.c)

	b.geo.fixed[b.root] = geom.Rect{X: 0, Y: 0, W: 100, H: 100}
	b.geo.fixed[b.x] = geom.Rect{X: 0, Y: 0, W: 40, H: 100}
	b.geo.fixed[b.y] = geom.Rect{X: 60, Y: 0, W: 40, H: 100}

	b.orch = New(b.root, b.geo, WithRegistry(b.reg), WithScheduler(b.sched))
	return b
}

func card(id string) *dom.Node {
	n := dom.NewNode("card")
	n.SetAttr("id", id)
	n.SetAttr(options.AttrItem, "")
	return n
}

// record collects bubbled engine events at a node.
type record struct {
	types    []string
	payloads []any
}

func recordEvents(n *dom.Node) *record {
	r := &record{}
	for _, typ := range []string{EventStart, EventMove, EventCloned, EventAdopted, EventDrop, EventCancel} {
		typ := typ
		n.On(typ, func(ev dom.Event) {
			r.types = append(r.types, typ)
			r.payloads = append(r.payloads, ev.Data)
		})
	}
	return r
}

func (r *record) count(typ string) int {
	n := 0
	for _, t := range r.types {
		if t == typ {
			n++
		}
	}
	return n
}

func (r *record) last(typ string) any {
	for i := len(r.types) - 1; i >= 0; i-- {
		if r.types[i] == typ {
			return r.payloads[i]
		}
	}
	return nil
}

func childIDs(n *dom.Node) []string {
	var out []string
	for _, c := range n.Children() {
		if c.Style().Mirror {
			continue
		}
		id, _ := c.Attr("id")
		out = append(out, id)
	}
	return out
}

func sameIDs(got []string, want ...string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
