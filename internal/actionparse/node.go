// Package actionparse implements Component A's JS/TS half (spec §4.1.2):
// it extracts a closed set of behavioral primitives ("action nodes") from
// JavaScript/TypeScript source text without building a full AST, using the
// same TargetDescriptor grammar selector.Selector already defines for CSS
// rule matching.
package actionparse

import (
	"github.com/conneroisu/a11yscan/internal/selector"
	"github.com/conneroisu/a11yscan/internal/source"
)

// Kind tags an ActionNode's variant, per spec §3.1's minimum set.
type Kind string

const (
	KindEventHandlerRegistration Kind = "eventHandlerRegistration"
	KindAriaMutation             Kind = "ariaMutation"
	KindFocusChange              Kind = "focusChange"
	KindDomMutation              Kind = "domMutation"
	KindTimedCall                Kind = "timedCall"
	KindNavigation               Kind = "navigation"
)

// ActionNode is one behavioral primitive, carrying only the fields
// meaningful to its Kind (spec §3.1).
type ActionNode struct {
	Kind Kind
	Loc  source.Location

	// Target is the TargetDescriptor (spec §3.1, §3.2); shared type with
	// the CSS selector grammar, see internal/selector.
	Target selector.Selector

	// eventHandlerRegistration
	EventType    string
	HandlerRef   string
	FrameworkTag string // "jsx-inline" for the JSX bridge, "" otherwise

	// ariaMutation
	AriaAttribute string
	NewValue      string

	// focusChange
	FocusMethod string // "focus" | "blur"
	Timing      string

	// domMutation
	MutationOp string // remove | hide | show | classList-add | classList-remove | classList-toggle | style-<prop> | attribute

	// timedCall
	API         string // setTimeout | setInterval
	DurationMs  *int
	BodySummary string

	// navigation
	NavMechanism string // location-assign | location-replace | history-push | history-replace
}

// ActionLanguageModel is the ordered action-node stream extracted from one
// JS/TS source file, plus a secondary target-keyed index and the opaque
// handler-body side table (spec §3.1).
type ActionLanguageModel struct {
	File    string
	Actions []ActionNode

	// ByTargetKey indexes Actions by a canonical string key for their
	// Target, letting same-file click/keyboard pairing (spec §4.5.1) run
	// without a full document model.
	ByTargetKey map[string][]int

	// Handlers maps a HandlerRef to the textual view of its body (spec
	// §4.1.2: "stable and side-effect free").
	Handlers map[string]string
}

func newModel(file string) *ActionLanguageModel {
	return &ActionLanguageModel{
		File:        file,
		ByTargetKey: make(map[string][]int),
		Handlers:    make(map[string]string),
	}
}

func (m *ActionLanguageModel) add(n ActionNode) {
	idx := len(m.Actions)
	m.Actions = append(m.Actions, n)
	key := TargetKey(n.Target)
	m.ByTargetKey[key] = append(m.ByTargetKey[key], idx)
}

// TargetKey produces a canonical, comparable string for a TargetDescriptor,
// used both for the per-file secondary index and for same-target pairing
// in file-scope analysis (spec §4.5.1).
func TargetKey(t selector.Selector) string {
	switch t.Kind {
	case selector.KindID:
		return "id:" + t.ID
	case selector.KindClass:
		return "class:" + t.Class
	case selector.KindTag:
		return "tag:" + t.Tag
	case selector.KindAttr:
		if t.HasAttrValue {
			return "attr:" + t.AttrName + "=" + t.AttrValue
		}
		return "attr:" + t.AttrName
	case selector.KindJSXInline:
		return "jsx:" + itoa(t.JSXFragmentIndex) + ":" + itoa(int(t.JSXElementID))
	case selector.KindGlobal:
		return "global:" + t.GlobalName
	case selector.KindCompound, selector.KindDescendant:
		key := string(t.Kind) + ":"
		for _, p := range t.Parts {
			key += TargetKey(p) + ">"
		}
		return key
	default:
		return "unknown:" + t.Raw
	}
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
