package engine

import "github.com/catpea/data-drag/internal/dom"

// Lifecycle notification types emitted on document nodes. All of them
// bubble upward through the structural hierarchy and across isolated-scope
// boundaries, so a listener on an outer scope observes nested activity.
const (
	EventStart   = "drag:start"
	EventMove    = "drag:move"
	EventCloned  = "drag:cloned"
	EventAdopted = "drag:adopted"
	EventDrop    = "drag:drop"
	EventCancel  = "drag:cancel"
)

// Start is emitted on the source container when a drag crosses the
// threshold and becomes active.
type Start struct {
	Item   *dom.Node
	Parent *dom.Node
}

// Move is emitted on the active element after each structural move.
type Move struct {
	Item      *dom.Node
	From      *dom.Node
	To        *dom.Node
	Reference *dom.Node // next sibling after insertion; nil when appended
}

// Cloned is emitted on the source container when copy semantics first
// materialize a duplicate.
type Cloned struct {
	Original *dom.Node
	Copy     *dom.Node
}

// Adopted is emitted on the item after a container's adoption rules are
// applied to it.
type Adopted struct {
	Item    *dom.Node
	Parent  *dom.Node
	Adopted map[string]string
}

// Drop is emitted on the active element when a drag commits.
type Drop struct {
	Item   *dom.Node
	From   *dom.Node
	To     *dom.Node
	IsCopy bool
}

// Cancel is emitted on the source container when an active drag ends
// without a valid resting place, or when its orchestrator is torn down.
type Cancel struct {
	Item   *dom.Node
	Parent *dom.Node
}
