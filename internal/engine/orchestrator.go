package engine

import (
	"github.com/rs/zerolog"

	"github.com/catpea/data-drag/internal/dom"
	"github.com/catpea/data-drag/internal/geom"
	"github.com/catpea/data-drag/internal/options"
)

// DefaultThreshold is the Euclidean pointer displacement, in
// device-independent units, a drag must cover before it activates.
const DefaultThreshold = 5.0

// Orchestrator owns drag handling for one root scope: it observes pointer
// downs inside its scope, creates and drives the process-wide session, and
// routes move/up input to whichever session is active.
type Orchestrator struct {
	root      *dom.Node
	geo       Geometry
	sched     Scheduler
	reg       *Registry
	log       zerolog.Logger
	threshold float64
	destroyed bool
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithRegistry joins a registry other than Default.
func WithRegistry(r *Registry) Option {
	return func(o *Orchestrator) { o.reg = r }
}

// WithScheduler sets the render-tick scheduler used by FLIP playback.
func WithScheduler(s Scheduler) Option {
	return func(o *Orchestrator) { o.sched = s }
}

// WithLogger sets the diagnostic log. Diagnostics are never fatal; the
// default is a disabled logger.
func WithLogger(log zerolog.Logger) Option {
	return func(o *Orchestrator) { o.log = log }
}

// WithThreshold overrides the drag activation threshold.
func WithThreshold(units float64) Option {
	return func(o *Orchestrator) { o.threshold = units }
}

// New constructs an orchestrator for the given scope root and registers it.
func New(root *dom.Node, geo Geometry, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		root:      root,
		geo:       geo,
		sched:     immediateScheduler{},
		reg:       Default,
		log:       zerolog.Nop(),
		threshold: DefaultThreshold,
	}
	for _, opt := range opts {
		opt(o)
	}
	o.reg.add(o)
	return o
}

// Root returns the scope root this orchestrator serves.
func (o *Orchestrator) Root() *dom.Node { return o.root }

// PointerDown feeds a pointer press into the engine. It returns true when
// the press claimed a draggable item and the host should suppress the
// event's default behavior. Presses are ignored while any session is in
// flight, for non-primary buttons, and when the hit chain yields no item,
// no matching handle, or no ancestor container.
func (o *Orchestrator) PointerDown(p geom.Point, btn Button) bool {
	if o.destroyed || btn != ButtonPrimary {
		return false
	}
	hit, ok := o.geo.TopmostAt(o.root, p, nil)
	if !ok {
		return false
	}
	item := hit.Closest(dom.CrossScopes, options.IsItem)
	if item == nil {
		return false
	}
	iopts := options.ParseItem(item, o.log)
	if iopts.Handle != "" && !hitMatchesHandle(hit, item, iopts.Handle) {
		return false
	}
	source := closestContainerAbove(item)
	if source == nil {
		return false
	}

	var offset geom.Point
	if r, ok := o.geo.Rect(item); ok {
		offset = p.Sub(r.TopLeft())
	}
	s := newSession(o, item, source, iopts, p, offset)
	if !o.reg.begin(s) {
		// A session is already in flight; duplicate downs are no-ops.
		return false
	}
	o.log.Debug().Str("item", item.ID()).Msg("engine: session pending")
	return true
}

// PointerMove feeds pointer motion into the active session, if any. Any
// orchestrator may deliver motion; the session is process-wide.
func (o *Orchestrator) PointerMove(p geom.Point) {
	if s := o.reg.ActiveSession(); s != nil {
		s.pointerMove(p)
	}
}

// PointerUp finalizes the active session, if any: commit when the active
// element rests in a registered container, cancel otherwise.
func (o *Orchestrator) PointerUp(p geom.Point) {
	if s := o.reg.ActiveSession(); s != nil {
		s.pointerUp(p)
	}
}

// Destroy unregisters the orchestrator. If it owns the session in flight,
// that session is force-cancelled: surrogate and copy removed, process-wide
// state cleared, no drop emitted.
func (o *Orchestrator) Destroy() {
	if o.destroyed {
		return
	}
	o.destroyed = true
	if s := o.reg.ActiveSession(); s != nil && s.owner == o {
		s.forceCancel()
	}
	o.reg.remove(o)
}

// hitMatchesHandle reports whether the pointer-down hit node resolves, by
// upward walk that stops at the item, to an element matching the handle
// selector.
func hitMatchesHandle(hit, item *dom.Node, handle string) bool {
	sel, err := dom.ParseSelector(handle)
	if err != nil {
		// Invalid handles are dropped at parse time; a stale value here
		// simply fails the restriction.
		return false
	}
	matched := false
	hit.Closest(dom.CrossScopes, func(n *dom.Node) bool {
		if sel.Matches(n) {
			matched = true
			return true
		}
		return n == item
	})
	return matched
}

// closestContainerAbove returns the nearest ancestor container of n,
// crossing scope boundaries, excluding n itself.
func closestContainerAbove(n *dom.Node) *dom.Node {
	start := n.Parent()
	if start == nil {
		if host := n.Host(); host != nil {
			start = host
		}
	}
	if start == nil {
		return nil
	}
	return start.Closest(dom.CrossScopes, options.IsContainer)
}
