package dom

// Event is a notification delivered to listeners while bubbling from its
// target toward the top of the logical tree, crossing scope boundaries.
type Event struct {
	Type   string
	Target *Node
	Data   any
}

type listener struct {
	id int
	fn func(Event)
}

// On registers a listener for the given event type on this node. The
// returned function removes the listener.
func (n *Node) On(eventType string, fn func(Event)) func() {
	if n.listeners == nil {
		n.listeners = map[string][]listener{}
	}
	n.nextSub++
	id := n.nextSub
	n.listeners[eventType] = append(n.listeners[eventType], listener{id: id, fn: fn})
	return func() {
		ls := n.listeners[eventType]
		for i := range ls {
			if ls[i].id == id {
				copy(ls[i:], ls[i+1:])
				ls[len(ls)-1] = listener{}
				n.listeners[eventType] = ls[:len(ls)-1]
				return
			}
		}
	}
}

// Emit dispatches an event at n and bubbles it upward through parents and
// across host edges, so a listener on an outer scope observes events from
// nested scopes. Listeners at each node are snapshotted before invocation,
// so a handler unsubscribing itself does not skip its neighbors.
func (n *Node) Emit(eventType string, data any) {
	ev := Event{Type: eventType, Target: n, Data: data}
	for cur := n; cur != nil; cur = cur.up(CrossScopes) {
		ls := cur.listeners[eventType]
		if len(ls) == 0 {
			continue
		}
		snapshot := make([]listener, len(ls))
		copy(snapshot, ls)
		for _, l := range snapshot {
			l.fn(ev)
		}
	}
}
