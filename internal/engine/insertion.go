package engine

import (
	"github.com/catpea/data-drag/internal/dom"
	"github.com/catpea/data-drag/internal/geom"
	"github.com/catpea/data-drag/internal/options"
)

// insertionRef picks the insert-before reference inside cont for a pointer
// at p: the first candidate sibling, in structural order, whose midpoint
// along the layout axis lies past the pointer. Nil means append at the end.
// Candidates are the container's direct children that are themselves items,
// excluding the active element and the mirror.
func insertionRef(cont *dom.Node, p geom.Point, axis geom.Axis, active, mirror *dom.Node, geo Geometry) *dom.Node {
	coord := p.Along(axis)
	for _, c := range cont.Children() {
		if c == active || c == mirror || !options.IsItem(c) {
			continue
		}
		r, ok := geo.Rect(c)
		if !ok {
			continue
		}
		if r.Mid(axis) > coord {
			return c
		}
	}
	return nil
}
