package engine

import (
	"github.com/catpea/data-drag/internal/dom"
	"github.com/catpea/data-drag/internal/geom"
)

// flipMove animates a structural reposition First-Last-Invert-Play style:
// the element gets an instantaneous, untransitioned offset equal to the
// negative of its layout delta, and one render tick later that offset is
// transitioned back to zero over the configured duration. A zero delta
// skips the whole dance; it is a no-op, not a zero-duration transition.
func flipMove(n *dom.Node, before, after geom.Rect, durationMs int, sched Scheduler) {
	dx := before.X - after.X
	dy := before.Y - after.Y
	if dx == 0 && dy == 0 {
		return
	}
	st := n.Style()
	st.TransitionMs = 0
	n.SetOffset(dx, dy)
	sched.NextFrame(func() {
		st.TransitionMs = durationMs
		n.SetOffset(0, 0)
	})
}
