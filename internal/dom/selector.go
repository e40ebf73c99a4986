package dom

import (
	"fmt"
	"strings"
)

// Selector is a compiled node matcher. The supported forms are the subset
// the configuration surface uses:
//
//	*        any node
//	.name    node whose space-separated "class" attribute contains name
//	#name    node whose "id" attribute equals name
//	name     node whose kind equals name
type Selector struct {
	kind  selectorKind
	value string
}

type selectorKind int

const (
	selAny selectorKind = iota
	selClass
	selID
	selKind
)

// ParseSelector compiles a selector string. Empty strings and bare
// sigils are invalid.
func ParseSelector(s string) (Selector, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return Selector{}, fmt.Errorf("dom: empty selector")
	case s == "*":
		return Selector{kind: selAny}, nil
	case strings.HasPrefix(s, "."):
		name := s[1:]
		if name == "" || strings.ContainsAny(name, " .#") {
			return Selector{}, fmt.Errorf("dom: invalid class selector %q", s)
		}
		return Selector{kind: selClass, value: name}, nil
	case strings.HasPrefix(s, "#"):
		name := s[1:]
		if name == "" || strings.ContainsAny(name, " .#") {
			return Selector{}, fmt.Errorf("dom: invalid id selector %q", s)
		}
		return Selector{kind: selID, value: name}, nil
	default:
		if strings.ContainsAny(s, " .#") {
			return Selector{}, fmt.Errorf("dom: invalid selector %q", s)
		}
		return Selector{kind: selKind, value: s}, nil
	}
}

// Matches reports whether the node satisfies the selector.
func (sel Selector) Matches(n *Node) bool {
	if n == nil {
		return false
	}
	switch sel.kind {
	case selAny:
		return true
	case selClass:
		return n.HasClass(sel.value)
	case selID:
		id, ok := n.Attr("id")
		return ok && id == sel.value
	default:
		return n.kind == sel.value
	}
}

// HasClass reports whether the node's "class" attribute contains the given
// class in its space-separated list.
func (n *Node) HasClass(class string) bool {
	raw, ok := n.Attr("class")
	if !ok {
		return false
	}
	for _, c := range strings.Fields(raw) {
		if c == class {
			return true
		}
	}
	return false
}
