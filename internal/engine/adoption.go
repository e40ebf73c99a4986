package engine

import (
	"github.com/catpea/data-drag/internal/dom"
	"github.com/catpea/data-drag/internal/options"
)

// applyAdoption writes the container's declared adoption attributes onto
// the item and announces the application. A container with no adoption
// rules is a no-op.
func applyAdoption(item, cont *dom.Node, copts options.ContainerOptions) {
	if len(copts.Adopted) == 0 {
		return
	}
	for name, value := range copts.Adopted {
		item.SetAttr(name, value)
	}
	item.Emit(EventAdopted, Adopted{Item: item, Parent: cont, Adopted: copts.Adopted})
}
