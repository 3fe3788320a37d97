// Package selector implements the structured selector grammar shared by
// §3.1's TargetDescriptor and §4.3.1's CSS-rule matcher: both a JS handler
// registration's receiver and a CSS rule's selector text resolve into the
// same Selector type, and both are matched against the DOM by the same
// Match function. Unifying the two keeps the "supported selector grammar"
// single-sourced instead of maintained twice.
package selector

import (
	"strings"

	"github.com/conneroisu/a11yscan/internal/domparse"
)

// Kind tags the Selector variant. The first five correspond exactly to
// TargetDescriptor's { by-id, by-class, by-tag, by-attribute, compound }
// (spec §3.1); JSXInline, Global, and Unknown extend the set to cover the
// action-node extractor's remaining target forms, and Raw covers
// selector text outside the supported CSS grammar (spec §4.3.1: "parsed
// into a 'raw' selector; matches nothing").
type Kind string

const (
	KindID         Kind = "by-id"
	KindClass      Kind = "by-class"
	KindTag        Kind = "by-tag"
	KindAttr       Kind = "by-attribute"
	KindCompound   Kind = "compound"
	KindDescendant Kind = "descendant"
	KindJSXInline  Kind = "jsx-inline"
	KindGlobal     Kind = "global"
	KindUnknown    Kind = "unknown"
	KindRaw        Kind = "raw"
)

// Selector is both the parsed form of a CSS selector and the structured
// TargetDescriptor an ActionNode carries (spec §3.1, §3.2, §4.3.1).
type Selector struct {
	Kind Kind

	ID    string // KindID
	Class string // KindClass
	Tag   string // KindTag

	AttrName     string // KindAttr
	AttrValue    string
	HasAttrValue bool

	// Parts holds, for KindCompound, the simple selectors ANDed onto one
	// element; for KindDescendant, the compound selectors of an
	// ancestor-to-target chain.
	Parts []Selector

	// JSXElementID/JSXFragmentIndex pin down the single element a
	// JSX-inline handler attaches to directly (spec §3.1, §4.2 step 5).
	JSXElementID     domparse.NodeID
	JSXFragmentIndex int

	GlobalName string // KindGlobal: "document", "window", ...
	Raw        string // KindRaw/KindUnknown: original text, preserved for diagnostics
}

// JSXInline builds the direct element-pinned descriptor JSX inline handlers
// use.
func JSXInline(fragmentIndex int, elementID domparse.NodeID) Selector {
	return Selector{Kind: KindJSXInline, JSXFragmentIndex: fragmentIndex, JSXElementID: elementID}
}

var globalRoots = map[string]bool{"document": true, "window": true, "self": true, "globalThis": true}

// ParseSelector parses raw selector text (from a querySelector argument or
// a CSS rule prelude) into the supported subset of spec §4.3.1: #id,
// .class, tag, [attr]/[attr="value"], and space-separated descendant
// compounds. Anything outside that grammar becomes KindRaw, which Match
// always reports as non-matching.
func ParseSelector(raw string) Selector {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Selector{Kind: KindRaw, Raw: raw}
	}
	if globalRoots[raw] {
		return Selector{Kind: KindGlobal, GlobalName: raw}
	}

	fields := strings.Fields(raw)
	compounds := make([]Selector, 0, len(fields))
	for _, f := range fields {
		c, ok := parseCompound(f)
		if !ok {
			return Selector{Kind: KindRaw, Raw: raw}
		}
		compounds = append(compounds, c)
	}
	switch len(compounds) {
	case 0:
		return Selector{Kind: KindRaw, Raw: raw}
	case 1:
		return compounds[0]
	default:
		return Selector{Kind: KindDescendant, Parts: compounds, Raw: raw}
	}
}

// parseCompound parses one whitespace-delimited token (no descendant
// combinator) into a simple selector, or a KindCompound of several ANDed
// simple selectors (e.g. "button.primary[disabled]").
func parseCompound(tok string) (Selector, bool) {
	var parts []Selector
	i := 0
	for i < len(tok) {
		switch {
		case tok[i] == '#':
			j := i + 1
			for j < len(tok) && isNameRune(tok[j]) {
				j++
			}
			if j == i+1 {
				return Selector{}, false
			}
			parts = append(parts, Selector{Kind: KindID, ID: tok[i+1 : j]})
			i = j
		case tok[i] == '.':
			j := i + 1
			for j < len(tok) && isNameRune(tok[j]) {
				j++
			}
			if j == i+1 {
				return Selector{}, false
			}
			parts = append(parts, Selector{Kind: KindClass, Class: tok[i+1 : j]})
			i = j
		case tok[i] == '[':
			end := strings.IndexByte(tok[i:], ']')
			if end < 0 {
				return Selector{}, false
			}
			inner := tok[i+1 : i+end]
			i = i + end + 1
			if eq := strings.IndexByte(inner, '='); eq >= 0 {
				name := strings.TrimSpace(inner[:eq])
				val := strings.Trim(strings.TrimSpace(inner[eq+1:]), `"'`)
				parts = append(parts, Selector{Kind: KindAttr, AttrName: strings.ToLower(name), AttrValue: val, HasAttrValue: true})
			} else {
				parts = append(parts, Selector{Kind: KindAttr, AttrName: strings.ToLower(strings.TrimSpace(inner))})
			}
		case isNameStartRune(tok[i]):
			j := i
			for j < len(tok) && isNameRune(tok[j]) {
				j++
			}
			parts = append(parts, Selector{Kind: KindTag, Tag: strings.ToLower(tok[i:j])})
			i = j
		default:
			return Selector{}, false // combinators (>,+,~), pseudo-classes (:), universal (*): unsupported
		}
	}
	if len(parts) == 0 {
		return Selector{}, false
	}
	if len(parts) == 1 {
		return parts[0], true
	}
	return Selector{Kind: KindCompound, Parts: parts}, true
}

func isNameStartRune(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_' || b == '-'
}

func isNameRune(b byte) bool {
	return isNameStartRune(b) || (b >= '0' && b <= '9')
}

// Match reports whether sel matches node within frag, per the grammar in
// spec §4.3.1. JSXInline/Global/Unknown/Raw never match via this generic
// path; callers resolve those forms specially (docmodel handler
// attachment treats JSXInline as a direct reference and Global as a
// recognized-but-elementless target).
func Match(sel Selector, frag *domparse.Fragment, node *domparse.Node) bool {
	if node == nil || node.Kind != domparse.KindElement {
		return false
	}
	switch sel.Kind {
	case KindID:
		v, ok := node.Attr("id")
		return ok && v == sel.ID
	case KindClass:
		return node.HasClass(sel.Class)
	case KindTag:
		return node.Tag == sel.Tag
	case KindAttr:
		v, ok := node.Attr(sel.AttrName)
		if !ok {
			return false
		}
		if !sel.HasAttrValue {
			return true
		}
		return v == sel.AttrValue
	case KindCompound:
		for _, p := range sel.Parts {
			if !Match(p, frag, node) {
				return false
			}
		}
		return true
	case KindDescendant:
		return matchDescendant(sel.Parts, frag, node)
	default:
		return false
	}
}

// matchDescendant implements the standard right-to-left ancestor-chain
// match: the last compound must match node itself; each preceding compound
// must match some strict ancestor, in order, further up the tree.
func matchDescendant(parts []Selector, frag *domparse.Fragment, node *domparse.Node) bool {
	if len(parts) == 0 {
		return false
	}
	if !Match(parts[len(parts)-1], frag, node) {
		return false
	}
	cursor := node
	for i := len(parts) - 2; i >= 0; i-- {
		found := false
		for {
			cursor = frag.Parent(cursor.ID)
			if cursor == nil {
				return false
			}
			if Match(parts[i], frag, cursor) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
