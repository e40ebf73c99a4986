// Package access evaluates container accept/reject rules. A policy is an
// evaluation order plus allow and deny pattern sets; evaluation is pure and
// stateless once the policy is built. The order semantics mirror
// conventional reverse-proxy access rules and must be kept exactly: deny
// always overrides a matching allow, and absence from both sets rejects.
package access

import (
	"github.com/rs/zerolog"

	"github.com/catpea/data-drag/internal/dom"
)

// Order selects which pattern set is consulted first.
type Order int

const (
	// DenyFirst rejects on a deny match, then accepts on an allow match,
	// and rejects anything matching neither set.
	DenyFirst Order = iota
	// AllowFirst accepts only when an allow pattern matches and no deny
	// pattern does.
	AllowFirst
)

func (o Order) String() string {
	if o == AllowFirst {
		return "allow-first"
	}
	return "deny-first"
}

// Policy is a compiled access rule set.
type Policy struct {
	order Order
	allow []dom.Selector
	deny  []dom.Selector
}

// New compiles a policy from raw patterns. An unparseable pattern is
// dropped so it can never match (fails open per-pattern, not per-policy)
// and is reported on the diagnostic log.
func New(order Order, allow, deny []string, log zerolog.Logger) *Policy {
	p := &Policy{order: order}
	p.allow = compile(allow, "allow", log)
	p.deny = compile(deny, "deny", log)
	return p
}

func compile(patterns []string, set string, log zerolog.Logger) []dom.Selector {
	out := make([]dom.Selector, 0, len(patterns))
	for _, raw := range patterns {
		sel, err := dom.ParseSelector(raw)
		if err != nil {
			log.Warn().Str("set", set).Str("pattern", raw).Err(err).
				Msg("access: ignoring invalid pattern")
			continue
		}
		out = append(out, sel)
	}
	return out
}

// Order returns the policy's evaluation order.
func (p *Policy) Order() Order { return p.order }

// CanAccept reports whether an item originating in source may be dropped
// into the container guarded by this policy. A nil source (a freshly
// materialized item with no originating container) is always accepted.
func (p *Policy) CanAccept(item, source *dom.Node) bool {
	_ = item // reserved: patterns currently classify the source container only
	if source == nil {
		return true
	}
	matchesAllow := matchesAny(p.allow, source)
	matchesDeny := matchesAny(p.deny, source)

	if p.order == DenyFirst {
		if matchesDeny {
			return false
		}
		if matchesAllow {
			return true
		}
		return false
	}
	return matchesAllow && !matchesDeny
}

func matchesAny(sels []dom.Selector, n *dom.Node) bool {
	for _, sel := range sels {
		if sel.Matches(n) {
			return true
		}
	}
	return false
}
