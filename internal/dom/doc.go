// Package dom is the document model the drag engine operates on: a forest
// of attributed nodes joined by host boundary edges. The main document is
// one tree; any node may host an isolated scope, which is a separate tree
// with its own coordinate space whose root points back at its host.
//
// Allowed here:
// - structural primitives (append, insert-before, remove, deep clone)
// - generalized upward traversal parameterized by an edge-crossing rule
// - per-node listeners with upward-bubbling emission across scope edges
// - inline visual state (offsets, opacity, transitions) and selectors
//
// Not allowed here:
// - drag semantics, policy decisions, or geometry queries
package dom
