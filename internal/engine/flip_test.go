package engine

import (
	"testing"
	"time"

	"github.com/catpea/data-drag/internal/dom"
	"github.com/catpea/data-drag/internal/geom"
)

func TestFlipInvertThenPlay(t *testing.T) {
	n := dom.NewNode("card")
	sched := &manualScheduler{}
	before := geom.Rect{X: 0, Y: 0, W: 40, H: 10}
	after := geom.Rect{X: 0, Y: 20, W: 40, H: 10}

	flipMove(n, before, after, 150, sched)

	// Invert: instantaneous negative delta, no transition yet.
	st := n.Style()
	if st.OffsetX != 0 || st.OffsetY != -20 {
		t.Fatalf("invert offset = (%v,%v), want (0,-20)", st.OffsetX, st.OffsetY)
	}
	if st.TransitionMs != 0 {
		t.Fatal("invert step must be untransitioned")
	}
	if dx, dy := n.OffsetAt(time.Now()); dx != 0 || dy != -20 {
		t.Fatalf("effective offset = (%v,%v) before play", dx, dy)
	}

	// Play: one render tick later the offset transitions back to zero.
	sched.flush()
	if st.OffsetX != 0 || st.OffsetY != 0 {
		t.Fatalf("play target = (%v,%v), want origin", st.OffsetX, st.OffsetY)
	}
	if st.TransitionMs != 150 {
		t.Fatalf("play transition = %dms, want configured duration", st.TransitionMs)
	}
	if !n.Animating(time.Now()) {
		t.Fatal("offset should be transitioning after play")
	}
}

func TestFlipZeroDeltaIsNoOp(t *testing.T) {
	n := dom.NewNode("card")
	sched := &manualScheduler{}
	r := geom.Rect{X: 3, Y: 7, W: 40, H: 10}

	flipMove(n, r, r, 150, sched)

	if len(sched.queue) != 0 {
		t.Fatal("zero delta must not schedule a play step")
	}
	if n.Animating(time.Now()) {
		t.Fatal("zero delta must not animate")
	}
}
