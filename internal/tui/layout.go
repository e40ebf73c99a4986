package tui

import (
	"github.com/catpea/data-drag/internal/dom"
	"github.com/catpea/data-drag/internal/geom"
)

// Cell metrics for board elements. Cards are bordered boxes; panes get one
// header line above their cards.
const (
	cardHeight   = 3
	paneHeaderH  = 1
	paneGap      = 1
	minPaneWidth = 16
	chromeHeight = 2 // status line + footer
)

// Layout maps document nodes to terminal-cell rectangles. Rects are computed
// from the current tree on every query, so a structural move is reflected
// immediately, the way a live layout engine would.
type Layout struct {
	root   *dom.Node
	width  int
	height int
}

func NewLayout(root *dom.Node) *Layout {
	return &Layout{root: root}
}

// Resize updates the terminal dimensions the layout works within.
func (l *Layout) Resize(width, height int) {
	l.width = width
	l.height = height
}

func (l *Layout) contentHeight() int {
	h := l.height - chromeHeight
	if h < 4 {
		h = 4
	}
	return h
}

// columns returns the top-level board children (panes and scope hosts) in
// order.
func (l *Layout) columns() []*dom.Node {
	var out []*dom.Node
	for _, c := range l.root.Children() {
		if c.Style().Mirror {
			continue
		}
		out = append(out, c)
	}
	return out
}

func (l *Layout) columnRect(i, n int) geom.Rect {
	w := l.width
	if w <= 0 {
		w = 80
	}
	paneW := (w - (n-1)*paneGap) / n
	if paneW < minPaneWidth {
		paneW = minPaneWidth
	}
	return geom.Rect{
		X: float64(i * (paneW + paneGap)),
		Y: 0,
		W: float64(paneW),
		H: float64(l.contentHeight()),
	}
}

// Rect returns the node's current cell rectangle. Fixed-positioned nodes (the
// drag mirror) report their inline style rect; everything else is derived
// from tree position.
func (l *Layout) Rect(n *dom.Node) (geom.Rect, bool) {
	st := n.Style()
	if st.Fixed {
		return geom.Rect{X: st.X, Y: st.Y, W: st.W, H: st.H}, true
	}
	if n == l.root {
		w := l.width
		if w <= 0 {
			w = 80
		}
		return geom.Rect{X: 0, Y: 0, W: float64(w), H: float64(l.contentHeight())}, true
	}

	// Top-level column?
	cols := l.columns()
	for i, c := range cols {
		if c == n {
			return l.columnRect(i, len(cols)), true
		}
	}

	// Scope root: same rect as its host.
	if host := n.Host(); host != nil {
		return l.Rect(host)
	}

	// Pane inside a scope: scope children split the scope rect vertically.
	if p := n.Parent(); p != nil && p.Host() != nil {
		pr, ok := l.Rect(p)
		if !ok {
			return geom.Rect{}, false
		}
		sibs := flowChildren(p)
		for i, c := range sibs {
			if c == n {
				h := pr.H / float64(len(sibs))
				return geom.Rect{X: pr.X, Y: pr.Y + float64(i)*h, W: pr.W, H: h}, true
			}
		}
		return geom.Rect{}, false
	}

	// Card inside a pane: stacked rows below the pane header.
	p := n.Parent()
	if p == nil {
		return geom.Rect{}, false
	}
	pr, ok := l.Rect(p)
	if !ok {
		return geom.Rect{}, false
	}
	row := 0
	for _, c := range flowChildren(p) {
		if c == n {
			return geom.Rect{
				X: pr.X,
				Y: pr.Y + paneHeaderH + float64(row*cardHeight),
				W: pr.W,
				H: cardHeight,
			}, true
		}
		row++
	}
	return geom.Rect{}, false
}

// TopmostAt hit-tests within one scope's tree: the deepest, latest-in-order
// node whose rect contains p. Hosted scopes are not entered; each scope's
// orchestrator hit-tests its own tree.
func (l *Layout) TopmostAt(root *dom.Node, p geom.Point, skip *dom.Node) (*dom.Node, bool) {
	var best *dom.Node
	var walk func(n *dom.Node)
	walk = func(n *dom.Node) {
		if n == skip || n.Style().PointerTransparent {
			return
		}
		if r, ok := l.Rect(n); ok && r.Contains(p) {
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

// flowChildren returns the children that occupy layout rows, excluding
// fixed-positioned nodes like the drag mirror.
func flowChildren(n *dom.Node) []*dom.Node {
	var out []*dom.Node
	for _, c := range n.Children() {
		if c.Style().Fixed {
			continue
		}
		out = append(out, c)
	}
	return out
}
