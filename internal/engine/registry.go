package engine

import (
	"sync"

	"github.com/catpea/data-drag/internal/dom"
	"github.com/catpea/data-drag/internal/geom"
	"github.com/catpea/data-drag/internal/options"
)

// Registry is the process-wide set of live orchestrators, one per isolated
// root scope, plus the singleton slot for the active drag session. Entries
// are added on orchestrator construction and removed on teardown; iteration
// order is registration order, which doubles as the (incidental, documented)
// tie-break when overlapping scopes both claim a point.
type Registry struct {
	mu    sync.Mutex
	orchs []*Orchestrator
	sess  *Session
}

// NewRegistry creates an empty registry. Most programs use Default; tests
// build private registries to keep process-wide state isolated.
func NewRegistry() *Registry {
	return &Registry{}
}

// Default is the shared registry orchestrators join unless constructed with
// WithRegistry. A bounded, explicitly managed resource: entries exist only
// between an orchestrator's construction and its Destroy.
var Default = NewRegistry()

func (r *Registry) add(o *Orchestrator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orchs = append(r.orchs, o)
}

func (r *Registry) remove(o *Orchestrator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.orchs {
		if r.orchs[i] == o {
			r.orchs = append(r.orchs[:i], r.orchs[i+1:]...)
			return
		}
	}
}

// snapshot returns the registered orchestrators in registration order.
func (r *Registry) snapshot() []*Orchestrator {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Orchestrator, len(r.orchs))
	copy(out, r.orchs)
	return out
}

// begin claims the singleton session slot. It fails when any session is
// already in flight; duplicate pointer-downs are idempotent no-ops, not
// errors.
func (r *Registry) begin(s *Session) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sess != nil {
		return false
	}
	r.sess = s
	return true
}

// clear releases the slot if s still owns it.
func (r *Registry) clear(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sess == s {
		r.sess = nil
	}
}

// ActiveSession returns the in-flight session, or nil.
func (r *Registry) ActiveSession() *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sess
}

// CancelActive force-cancels the in-flight session regardless of owner.
// This is the recovery path for hosts that lose a pointer-up.
func (r *Registry) CancelActive() {
	if s := r.ActiveSession(); s != nil {
		s.forceCancel()
	}
}

// FindDropContainer resolves the container under p across every registered
// scope. The primary scope is hit-tested directly; a nested scope only when
// p falls inside its host node's rectangle. From the hit node the walk goes
// upward, crossing out of isolated scopes through their hosts, until a
// container is found. skip (the drag mirror) is excluded from hit-testing
// so the surrogate cannot occlude itself.
func (r *Registry) FindDropContainer(p geom.Point, skip *dom.Node) (*dom.Node, *Orchestrator, bool) {
	for _, o := range r.snapshot() {
		host := o.root.Host()
		if host != nil {
			hr, ok := o.geo.Rect(host)
			if !ok || !hr.Contains(p) {
				continue
			}
		}
		hit, ok := o.geo.TopmostAt(o.root, p, skip)
		if !ok {
			continue
		}
		if cont := hit.Closest(dom.CrossScopes, options.IsContainer); cont != nil {
			return cont, o, true
		}
	}
	return nil, nil, false
}

// containsNode reports whether the node lives inside any registered scope's
// subtree. Used for the defensive re-check at drop time, since the host
// application may have mutated the tree mid-drag.
func (r *Registry) containsNode(n *dom.Node) bool {
	for _, o := range r.snapshot() {
		if o.root.Contains(n) {
			return true
		}
	}
	return false
}
