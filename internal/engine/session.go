package engine

import (
	"github.com/google/uuid"

	"github.com/catpea/data-drag/internal/dom"
	"github.com/catpea/data-drag/internal/geom"
	"github.com/catpea/data-drag/internal/options"
)

// Session is the mutable state of one in-progress drag, created on a
// qualifying pointer-down and destroyed on pointer-up or forced teardown.
// Exactly one session exists process-wide at any instant.
//
// Invariant: until the pointer crosses the drag threshold the session has
// no mirror and has not mutated the document tree.
type Session struct {
	id    string
	owner *Orchestrator

	item   *dom.Node
	source *dom.Node
	opts   options.ItemOptions

	start  geom.Point // pointer position at pointer-down
	offset geom.Point // pointer-to-item-origin offset

	mirror   *dom.Node
	copyNode *dom.Node

	crossed bool // drag threshold crossed; document mutations permitted
	done    bool
}

func newSession(o *Orchestrator, item, source *dom.Node, opts options.ItemOptions, start, offset geom.Point) *Session {
	return &Session{
		id:     uuid.NewString(),
		owner:  o,
		item:   item,
		source: source,
		opts:   opts,
		start:  start,
		offset: offset,
	}
}

// ID returns the session's identity, mostly for diagnostics.
func (s *Session) ID() string { return s.id }

// Item returns the source item the session was started on.
func (s *Session) Item() *dom.Node { return s.item }

// Mirror returns the visual surrogate, nil until the threshold is crossed.
func (s *Session) Mirror() *dom.Node { return s.mirror }

// Active reports whether the session crossed the drag threshold.
func (s *Session) Active() bool { return s.crossed }

// activeElement is the node structural decisions apply to: the copy when
// one exists, otherwise the source item itself.
func (s *Session) activeElement() *dom.Node {
	if s.copyNode != nil {
		return s.copyNode
	}
	return s.item
}

func (s *Session) pointerMove(p geom.Point) {
	if s.done {
		return
	}
	if !s.crossed {
		if p.DistanceTo(s.start) <= s.owner.threshold {
			return
		}
		s.activate(p)
	}

	s.trackMirror(p)

	cont, contOrch, ok := s.owner.reg.FindDropContainer(p, s.mirror)
	if !ok {
		return
	}
	copts := options.ParseContainer(cont, s.owner.log)
	if copts.Access != nil && !copts.Access.CanAccept(s.item, s.source) {
		// Rejected: the drag keeps tracking the cursor, nothing moves.
		return
	}

	shouldCopy := s.opts.Copy && cont != s.source
	canReorder := s.opts.Sort || cont != s.source

	s.reconcileCopy(shouldCopy)
	if !canReorder {
		return
	}

	active := s.activeElement()
	ref := insertionRef(cont, p, s.opts.Axis, active, s.mirror, contOrch.geo)
	if active.Parent() == cont && active.NextSibling() == ref {
		return
	}

	from := active.Parent()
	before, hadBefore := contOrch.geo.Rect(active)
	if err := cont.InsertBefore(active, ref); err != nil {
		s.owner.log.Warn().Err(err).Msg("engine: insertion failed")
		return
	}
	if hadBefore {
		if after, ok := contOrch.geo.Rect(active); ok {
			flipMove(active, before, after, s.opts.AnimationMs, s.owner.sched)
		}
	}
	active.Emit(EventMove, Move{Item: active, From: from, To: cont, Reference: ref})
}

// activate is the Pending to Active transition: the mirror is created from
// the item's current rectangle, the item is marked in-flight, and the start
// notification fires on the source container.
func (s *Session) activate(p geom.Point) {
	s.crossed = true

	m := s.item.CloneDeep()
	st := m.Style()
	st.Mirror = true
	st.Fixed = true
	st.PointerTransparent = true
	st.ZIndex = 1 << 10
	if r, ok := s.owner.geo.Rect(s.item); ok {
		st.X, st.Y, st.W, st.H = r.X, r.Y, r.W, r.H
	}
	s.owner.root.AppendChild(m)
	s.mirror = m

	s.item.Style().Lifted = true
	s.source.Emit(EventStart, Start{Item: s.item, Parent: s.source})
	s.trackMirror(p)
	s.owner.log.Debug().Str("session", s.id).Msg("engine: session active")
}

func (s *Session) trackMirror(p geom.Point) {
	if s.mirror == nil {
		return
	}
	st := s.mirror.Style()
	st.X = p.X - s.offset.X
	st.Y = p.Y - s.offset.Y
}

// reconcileCopy keeps the copy's existence in step with shouldCopy: created
// (and announced) exactly when the condition first becomes true, removed
// exactly when it first becomes false. At most one copy exists per session.
func (s *Session) reconcileCopy(shouldCopy bool) {
	switch {
	case shouldCopy && s.copyNode == nil:
		c := s.item.CloneDeep()
		c.Style().Lifted = true
		s.copyNode = c
		s.source.Emit(EventCloned, Cloned{Original: s.item, Copy: c})
	case !shouldCopy && s.copyNode != nil:
		s.copyNode.Detach()
		s.copyNode = nil
	}
}

func (s *Session) pointerUp(p geom.Point) {
	if s.done {
		return
	}
	if !s.crossed {
		// Threshold never crossed: a plain click. Silent teardown.
		s.teardown()
		return
	}
	_ = p

	active := s.activeElement()
	finalCont := restingContainer(active)
	valid := finalCont != nil && s.owner.reg.containsNode(finalCont)

	s.removeVisuals()

	if valid {
		copts := options.ParseContainer(finalCont, s.owner.log)
		applyAdoption(active, finalCont, copts)
		active.Emit(EventDrop, Drop{
			Item:   active,
			From:   s.source,
			To:     finalCont,
			IsCopy: s.copyNode != nil,
		})
	} else {
		if s.copyNode != nil {
			s.copyNode.Detach()
		}
		s.source.Emit(EventCancel, Cancel{Item: s.item, Parent: s.source})
	}
	s.teardown()
}

// forceCancel is the non-pointer-up teardown path (orchestrator Destroy or
// an explicit registry cancel). It never emits a drop.
func (s *Session) forceCancel() {
	if s.done {
		return
	}
	wasActive := s.crossed
	s.removeVisuals()
	if s.copyNode != nil {
		s.copyNode.Detach()
	}
	if wasActive {
		s.source.Emit(EventCancel, Cancel{Item: s.item, Parent: s.source})
	}
	s.teardown()
}

func (s *Session) removeVisuals() {
	if s.mirror != nil {
		s.mirror.Detach()
		s.mirror = nil
	}
	s.item.Style().Lifted = false
	if s.copyNode != nil {
		s.copyNode.Style().Lifted = false
	}
}

func (s *Session) teardown() {
	s.done = true
	s.owner.reg.clear(s)
}

// restingContainer re-validates where the active element ended up by
// walking upward from its parent. The host application may have mutated
// the tree mid-drag, so the walk is repeated rather than trusted from the
// last move.
func restingContainer(active *dom.Node) *dom.Node {
	start := active.Parent()
	if start == nil {
		return nil
	}
	return start.Closest(dom.CrossScopes, options.IsContainer)
}
