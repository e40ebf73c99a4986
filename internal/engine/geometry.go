package engine

import (
	"github.com/catpea/data-drag/internal/dom"
	"github.com/catpea/data-drag/internal/geom"
)

// Geometry answers bounding-rectangle and topmost-node-at-point queries for
// the engine. Implementations must reflect the current document tree on
// every call: the engine mutates structure mid-drag and immediately reads
// rectangles back for animation deltas.
type Geometry interface {
	// Rect returns the node's bounding rectangle. ok is false for nodes
	// with no layout (detached, collapsed, or unrendered).
	Rect(n *dom.Node) (r geom.Rect, ok bool)

	// TopmostAt returns the topmost visual node at p within the tree rooted
	// at root. skip, when non-nil, is excluded from hit-testing along with
	// its subtree; implementations must also skip pointer-transparent
	// nodes.
	TopmostAt(root *dom.Node, p geom.Point, skip *dom.Node) (*dom.Node, bool)
}

// Button identifies the pointer button of a down event. Only the primary
// button starts drags.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
	ButtonMiddle
)

// Scheduler defers work by one render tick. The FLIP play step must run a
// frame after the invert step or the transition never takes effect.
type Scheduler interface {
	NextFrame(fn func())
}

// immediateScheduler runs callbacks synchronously. It is the fallback for
// hosts without a frame clock; transitions then collapse to their end state.
type immediateScheduler struct{}

func (immediateScheduler) NextFrame(fn func()) { fn() }
