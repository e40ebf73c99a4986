package dom

import "time"

// Style is the inline visual state the engine writes during a drag. Hosts
// read it when rendering; nothing here affects structure.
type Style struct {
	// Opacity in [0,1]. New nodes start fully opaque.
	Opacity float64
	// Lifted marks the source item (and any tentative copy) as in-flight.
	Lifted bool
	// Mirror marks the transient visual surrogate that tracks the pointer.
	Mirror bool
	// PointerTransparent excludes the node from hit-testing.
	PointerTransparent bool
	// Fixed positions the node at X/Y/W/H in its scope's coordinate space
	// instead of flowing with its siblings.
	Fixed          bool
	X, Y, W, H     float64
	ZIndex         int
	// TransitionMs is the duration applied to the next offset change. Zero
	// means offset changes take effect instantly.
	TransitionMs int
	// OffsetX/OffsetY is the translation target. Use OffsetAt for the
	// interpolated value mid-transition.
	OffsetX, OffsetY float64
}

type animState struct {
	fromX, fromY float64
	start        time.Time
	dur          time.Duration
}

// Style returns a pointer to the node's mutable inline style.
func (n *Node) Style() *Style { return &n.style }

// SetOffset sets the node's translation offset. With TransitionMs zero the
// change is instantaneous; otherwise the previous offset is interpolated
// toward the new one over the transition duration, starting now.
func (n *Node) SetOffset(dx, dy float64) {
	n.SetOffsetAt(dx, dy, time.Now())
}

// SetOffsetAt is SetOffset with an explicit clock, for deterministic tests.
func (n *Node) SetOffsetAt(dx, dy float64, now time.Time) {
	if n.style.TransitionMs > 0 {
		fx, fy := n.OffsetAt(now)
		n.anim = animState{
			fromX: fx,
			fromY: fy,
			start: now,
			dur:   time.Duration(n.style.TransitionMs) * time.Millisecond,
		}
	} else {
		n.anim = animState{}
	}
	n.style.OffsetX = dx
	n.style.OffsetY = dy
}

// OffsetAt returns the node's effective translation at time t, interpolating
// linearly through any in-progress transition.
func (n *Node) OffsetAt(t time.Time) (dx, dy float64) {
	if n.anim.dur <= 0 {
		return n.style.OffsetX, n.style.OffsetY
	}
	elapsed := t.Sub(n.anim.start)
	if elapsed >= n.anim.dur {
		return n.style.OffsetX, n.style.OffsetY
	}
	if elapsed < 0 {
		elapsed = 0
	}
	f := float64(elapsed) / float64(n.anim.dur)
	dx = n.anim.fromX + (n.style.OffsetX-n.anim.fromX)*f
	dy = n.anim.fromY + (n.style.OffsetY-n.anim.fromY)*f
	return dx, dy
}

// Animating reports whether an offset transition is still in progress at t.
func (n *Node) Animating(t time.Time) bool {
	return n.anim.dur > 0 && t.Sub(n.anim.start) < n.anim.dur
}
