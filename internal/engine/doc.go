// Package engine is the drag orchestration core: the pointer-driven state
// machine tracking one in-progress drag, the cross-scope resolver that
// finds a drop container under the cursor across isolated document regions,
// the insertion-position algorithm with FLIP repositioning, and the
// copy/move reconciliation applied before the drag ends.
//
// The engine is single-turn by contract: all entry points are called from
// one host event loop (pointer callbacks), so the only guarded shared state
// is the registry's instance list and the process-wide session slot.
package engine
