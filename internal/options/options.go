// Package options reads the declarative drag configuration off document
// nodes. Configuration lives in node attributes as JSON payloads and may
// change between drags, so callers parse afresh on every query; malformed
// input falls back field-wise to documented defaults and is reported on the
// diagnostic log, never raised as an error.
package options

import (
	"encoding/json"
	"sort"

	"github.com/agnivade/levenshtein"
	"github.com/rs/zerolog"

	"github.com/catpea/data-drag/internal/access"
	"github.com/catpea/data-drag/internal/dom"
	"github.com/catpea/data-drag/internal/geom"
)

// Attribute names marking drag participation. Presence of the attribute is
// the marker; the value, when non-empty, is a JSON option payload.
const (
	AttrItem      = "data-drag"
	AttrContainer = "data-drop"
)

// ItemOptions is the per-item drag configuration, resolved once per drag
// start and immutable for the session's lifetime.
type ItemOptions struct {
	Axis        geom.Axis
	Copy        bool
	Sort        bool
	Handle      string // selector restricting the pointer-down hit area; "" = none
	AnimationMs int
}

// DefaultItem returns the documented item defaults: vertical axis, move
// semantics, sortable, no handle, 150ms animation.
func DefaultItem() ItemOptions {
	return ItemOptions{
		Axis:        geom.Vertical,
		Copy:        false,
		Sort:        true,
		Handle:      "",
		AnimationMs: 150,
	}
}

// ContainerOptions is the per-container configuration.
type ContainerOptions struct {
	// Adopted maps attribute names to serialized values applied to items
	// the container accepts.
	Adopted map[string]string
	// Access is the container's accept/reject policy, nil when undeclared.
	Access *access.Policy
}

// IsItem reports whether the node is marked drag-eligible.
func IsItem(n *dom.Node) bool {
	_, ok := n.Attr(AttrItem)
	return ok
}

// IsContainer reports whether the node is marked as a drop target.
func IsContainer(n *dom.Node) bool {
	_, ok := n.Attr(AttrContainer)
	return ok
}

var itemKeys = []string{"direction", "copy", "sort", "handle", "animation"}

// ParseItem resolves the item options declared on n, falling back to
// defaults field by field.
func ParseItem(n *dom.Node, log zerolog.Logger) ItemOptions {
	opts := DefaultItem()
	fields := payload(n, AttrItem, itemKeys, log)
	if fields == nil {
		return opts
	}

	if raw, ok := fields["direction"]; ok {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil || (s != "vertical" && s != "horizontal") {
			warnField(log, n, "direction", raw)
		} else if s == "horizontal" {
			opts.Axis = geom.Horizontal
		} else {
			opts.Axis = geom.Vertical
		}
	}
	if raw, ok := fields["copy"]; ok {
		if err := json.Unmarshal(raw, &opts.Copy); err != nil {
			opts.Copy = false
			warnField(log, n, "copy", raw)
		}
	}
	if raw, ok := fields["sort"]; ok {
		if err := json.Unmarshal(raw, &opts.Sort); err != nil {
			opts.Sort = true
			warnField(log, n, "sort", raw)
		}
	}
	if raw, ok := fields["handle"]; ok {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			warnField(log, n, "handle", raw)
		} else if s != "" {
			if _, err := dom.ParseSelector(s); err != nil {
				log.Warn().Str("node", n.ID()).Str("handle", s).Err(err).
					Msg("options: invalid handle selector, drags will not be handle-restricted")
			} else {
				opts.Handle = s
			}
		}
	}
	if raw, ok := fields["animation"]; ok {
		var ms int
		if err := json.Unmarshal(raw, &ms); err != nil || ms < 0 {
			warnField(log, n, "animation", raw)
		} else {
			opts.AnimationMs = ms
		}
	}
	return opts
}

var containerKeys = []string{"adopted", "access"}

// ParseContainer resolves the container options declared on n. Containers
// are re-read on every query, so external edits to the attribute take
// effect mid-session.
func ParseContainer(n *dom.Node, log zerolog.Logger) ContainerOptions {
	var opts ContainerOptions
	fields := payload(n, AttrContainer, containerKeys, log)
	if fields == nil {
		return opts
	}

	if raw, ok := fields["adopted"]; ok {
		var m map[string]any
		if err := json.Unmarshal(raw, &m); err != nil {
			warnField(log, n, "adopted", raw)
		} else {
			opts.Adopted = serializeAdopted(m, log)
		}
	}
	if raw, ok := fields["access"]; ok {
		opts.Access = parseAccess(raw, n, log)
	}
	return opts
}

type accessPayload struct {
	Order json.RawMessage `json:"order"`
	Allow []string        `json:"allow"`
	Deny  []string        `json:"deny"`
}

// parseAccess builds a policy from the "access" field. The order is either
// the two-element list form (["allow","deny"] means allow-first) or the
// string form ("allow-first"/"deny-first"); anything else falls back to
// deny-first.
func parseAccess(raw json.RawMessage, n *dom.Node, log zerolog.Logger) *access.Policy {
	var p accessPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		warnField(log, n, "access", raw)
		return nil
	}
	order := access.DenyFirst
	if len(p.Order) > 0 {
		var list []string
		var s string
		switch {
		case json.Unmarshal(p.Order, &list) == nil && len(list) == 2:
			if list[0] == "allow" && list[1] == "deny" {
				order = access.AllowFirst
			} else if list[0] == "deny" && list[1] == "allow" {
				order = access.DenyFirst
			} else {
				warnField(log, n, "access.order", p.Order)
			}
		case json.Unmarshal(p.Order, &s) == nil:
			switch s {
			case "allow-first":
				order = access.AllowFirst
			case "deny-first":
				order = access.DenyFirst
			default:
				warnField(log, n, "access.order", p.Order)
			}
		default:
			warnField(log, n, "access.order", p.Order)
		}
	}
	return access.New(order, p.Allow, p.Deny, log)
}

// serializeAdopted flattens adoption values to attribute text. Strings pass
// through; structured values keep the configuration surface's JSON
// convention.
func serializeAdopted(m map[string]any, log zerolog.Logger) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		if s, ok := v.(string); ok {
			out[k] = s
			continue
		}
		b, err := json.Marshal(v)
		if err != nil {
			log.Warn().Str("key", k).Err(err).Msg("options: dropping unserializable adoption value")
			continue
		}
		out[k] = string(b)
	}
	return out
}

// payload decodes the attribute's JSON object and flags unknown keys with a
// nearest-known-key hint. Returns nil when the attribute is absent, empty,
// or not an object.
func payload(n *dom.Node, attr string, known []string, log zerolog.Logger) map[string]json.RawMessage {
	raw, ok := n.Attr(attr)
	if !ok || raw == "" {
		return nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		log.Warn().Str("node", n.ID()).Str("attr", attr).Err(err).
			Msg("options: malformed payload, using defaults")
		return nil
	}
	for _, key := range sortedKeys(fields) {
		if contains(known, key) {
			continue
		}
		ev := log.Warn().Str("node", n.ID()).Str("attr", attr).Str("key", key)
		if hint := nearestKey(key, known); hint != "" {
			ev = ev.Str("did_you_mean", hint)
		}
		ev.Msg("options: unknown option key ignored")
	}
	return fields
}

// warnField reports a field whose value could not be used, before the
// caller falls back to the field's default.
func warnField(log zerolog.Logger, n *dom.Node, field string, raw json.RawMessage) {
	log.Warn().Str("node", n.ID()).Str("field", field).Str("value", string(raw)).
		Msg("options: invalid value, using default")
}

// nearestKey returns the known key within edit distance 2 of key, or "".
func nearestKey(key string, known []string) string {
	best, bestDist := "", 3
	for _, k := range known {
		if d := levenshtein.ComputeDistance(key, k); d < bestDist {
			best, bestDist = k, d
		}
	}
	return best
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func sortedKeys(m map[string]json.RawMessage) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
