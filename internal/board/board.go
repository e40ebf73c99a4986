package board

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/catpea/data-drag/internal/dom"
	"github.com/catpea/data-drag/internal/options"
)

// Tree is a board definition realized as a document. Nested containers live
// in isolated scopes hosted under Root; Scopes lists their roots so callers
// can attach an orchestrator per scope.
type Tree struct {
	Root   *dom.Node
	Scopes []*dom.Node
}

// Build materializes the definition as a document tree with drag attributes
// in place.
func Build(def Definition) Tree {
	t := Tree{Root: dom.NewNode("board")}
	t.Root.SetAttr("name", def.Name)

	for i := range def.Containers {
		c := &def.Containers[i]
		pane := buildContainer(c)
		if c.Nested {
			host := dom.NewNode("host")
			host.SetAttr("name", c.Name)
			t.Root.AppendChild(host)
			scope := host.NewScope("scope")
			scope.AppendChild(pane)
			t.Scopes = append(t.Scopes, scope)
		} else {
			t.Root.AppendChild(pane)
		}
	}
	return t
}

func buildContainer(c *ContainerDef) *dom.Node {
	pane := dom.NewNode("pane")
	pane.SetAttr("name", c.Name)
	if c.Class != "" {
		pane.SetAttr("class", c.Class)
	}
	pane.SetAttr(options.AttrContainer, containerPayload(c))

	item := itemPayload(c)
	for _, cd := range c.Cards {
		pane.AppendChild(buildCard(cd, item))
	}
	return pane
}

func buildCard(cd CardDef, itemPayload string) *dom.Node {
	card := dom.NewNode("card")
	card.SetAttr("id", cd.Name)
	if cd.Class != "" {
		card.SetAttr("class", cd.Class)
	}
	if cd.Title != "" {
		card.SetAttr("title", cd.Title)
	}
	card.SetAttr(options.AttrItem, itemPayload)
	return card
}

// itemPayload serializes the container's card behavior as a drag option
// payload. Only declared fields are emitted; absent fields fall back to the
// engine's defaults.
func itemPayload(c *ContainerDef) string {
	fields := map[string]any{}
	if d := strings.ToLower(c.Direction); d == "horizontal" || d == "vertical" {
		fields["direction"] = d
	}
	if c.Copy {
		fields["copy"] = true
	}
	if c.Sort != nil {
		fields["sort"] = *c.Sort
	}
	if c.Handle != "" {
		fields["handle"] = c.Handle
	}
	if c.AnimationMs > 0 {
		fields["animation"] = c.AnimationMs
	}
	return marshalPayload(fields)
}

func containerPayload(c *ContainerDef) string {
	fields := map[string]any{}
	if len(c.Adopted) > 0 {
		fields["adopted"] = c.Adopted
	}
	if c.Access != nil {
		acc := map[string]any{}
		if c.Access.Order != "" {
			acc["order"] = c.Access.Order
		}
		if len(c.Access.Allow) > 0 {
			acc["allow"] = c.Access.Allow
		}
		if len(c.Access.Deny) > 0 {
			acc["deny"] = c.Access.Deny
		}
		fields["access"] = acc
	}
	return marshalPayload(fields)
}

func marshalPayload(fields map[string]any) string {
	if len(fields) == 0 {
		return ""
	}
	b, err := json.Marshal(fields)
	if err != nil {
		return ""
	}
	return string(b)
}

// Placement records where one card sits: its container and its position among
// the container's cards.
type Placement struct {
	Container string
	Card      string
	Position  int
}

// CapturePlacements snapshots card positions across the whole tree, nested
// scopes included, in a stable order.
func CapturePlacements(t Tree) []Placement {
	var out []Placement
	walkContainers(t.Root, func(pane *dom.Node) {
		cname, _ := pane.Attr("name")
		pos := 0
		for _, c := range pane.Children() {
			if c.Style().Mirror || !options.IsItem(c) {
				continue
			}
			id, ok := c.Attr("id")
			if !ok {
				continue
			}
			out = append(out, Placement{Container: cname, Card: id, Position: pos})
			pos++
		}
	})
	return out
}

// ApplyPlacements rearranges the tree's cards to match saved placements.
// Cards and containers the placements don't mention keep their built
// positions; placements naming unknown cards or containers are skipped, so a
// stale save degrades to the definition's layout rather than failing.
func ApplyPlacements(t Tree, placements []Placement) {
	panes := map[string]*dom.Node{}
	walkContainers(t.Root, func(pane *dom.Node) {
		if name, ok := pane.Attr("name"); ok {
			panes[name] = pane
		}
	})
	cards := map[string]*dom.Node{}
	walkNodes(t.Root, func(n *dom.Node) {
		if !options.IsItem(n) {
			return
		}
		if id, ok := n.Attr("id"); ok {
			cards[id] = n
		}
	})

	sorted := make([]Placement, len(placements))
	copy(sorted, placements)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Container != sorted[j].Container {
			return sorted[i].Container < sorted[j].Container
		}
		return sorted[i].Position < sorted[j].Position
	})

	for _, p := range sorted {
		pane, card := panes[p.Container], cards[p.Card]
		if pane == nil || card == nil {
			continue
		}
		pane.AppendChild(card)
	}
}

// walkContainers visits every drop container in the tree, crossing into
// hosted scopes.
func walkContainers(root *dom.Node, fn func(*dom.Node)) {
	walkNodes(root, func(n *dom.Node) {
		if options.IsContainer(n) {
			fn(n)
		}
	})
}

func walkNodes(n *dom.Node, fn func(*dom.Node)) {
	fn(n)
	for _, c := range n.Children() {
		walkNodes(c, fn)
	}
	if sr := n.ScopeRoot(); sr != nil {
		walkNodes(sr, fn)
	}
}
