// Package docmodel implements Component B (spec §4.2): it merges the
// per-artifact outputs of internal/domparse, internal/actionparse, and
// internal/cssparse for one analysis unit into a single DocumentModel,
// including the global id index and the handler-attachment table.
package docmodel

import (
	"github.com/conneroisu/a11yscan/internal/actionparse"
	"github.com/conneroisu/a11yscan/internal/cssparse"
	"github.com/conneroisu/a11yscan/internal/diag"
	"github.com/conneroisu/a11yscan/internal/domparse"
	"github.com/conneroisu/a11yscan/internal/selector"
	"github.com/conneroisu/a11yscan/internal/source"
)

// ElementRef pins one element to the fragment that owns it; fragment index
// is into DocumentModel.Fragments, stable for the lifetime of one build.
type ElementRef struct {
	FragmentIndex int
	NodeID        domparse.NodeID
}

// HandlerAttachment is one entry of the handler-attachment table (spec
// §3.1): an event-handler registration resolved onto a specific element.
type HandlerAttachment struct {
	EventType  string
	HandlerRef string
	Loc        source.Location
}

// ActionRef identifies one ActionNode by its position: which
// ActionLanguageModel, and which index within it.
type ActionRef struct {
	ModelIndex  int
	ActionIndex int
}

// Resolution records what a handler registration's TargetDescriptor
// resolved to (spec §4.2 step 5, §3.3 "zero or more elements").
type Resolution struct {
	Elements []ElementRef
	Global   bool // matched a whitelisted global root (document, window, ...)
}

// DocumentModel is the unified cross-artifact graph (spec §3.1). Built
// once per analysis unit by Build, then read-only.
type DocumentModel struct {
	Fragments    []*domparse.Fragment
	ActionModels []*actionparse.ActionLanguageModel
	CssModels    []*cssparse.CssModel

	GlobalIDIndex map[string]ElementRef

	// HandlerAttachment maps an element to every handler registration
	// resolved onto it (spec §3.1).
	HandlerAttachment map[ElementRef][]HandlerAttachment

	// Resolutions records, per ActionRef, what an eventHandlerRegistration
	// resolved to — including the zero-element and whitelisted-global
	// cases the orphan-handler rule (§4.5.2) must distinguish.
	Resolutions map[ActionRef]Resolution

	Scope source.Scope
}

// Element dereferences an ElementRef into its Node.
func (m *DocumentModel) Element(ref ElementRef) *domparse.Node {
	if ref.FragmentIndex < 0 || ref.FragmentIndex >= len(m.Fragments) {
		return nil
	}
	return m.Fragments[ref.FragmentIndex].Node(ref.NodeID)
}

// Fragment returns the fragment owning ref.
func (m *DocumentModel) Fragment(ref ElementRef) *domparse.Fragment {
	if ref.FragmentIndex < 0 || ref.FragmentIndex >= len(m.Fragments) {
		return nil
	}
	return m.Fragments[ref.FragmentIndex]
}

// Elements walks every fragment in order and returns every element with
// its ElementRef, in document order within each fragment (spec §5:
// "iteration order ... is source order").
func (m *DocumentModel) Elements() []ElementRef {
	var out []ElementRef
	for fi, frag := range m.Fragments {
		for _, n := range frag.Elements() {
			out = append(out, ElementRef{FragmentIndex: fi, NodeID: n.ID})
		}
	}
	return out
}

// Build runs Component A over every source in coll and merges the results,
// per the six-step algorithm of spec §4.2. It is deterministic and never
// fails outright: per-source parse failures degrade to an empty
// contribution, recorded on diags.
func Build(coll source.Collection, diags *diag.Collector) *DocumentModel {
	m := &DocumentModel{
		GlobalIDIndex:     make(map[string]ElementRef),
		HandlerAttachment: make(map[ElementRef][]HandlerAttachment),
		Resolutions:       make(map[ActionRef]Resolution),
		Scope:             coll.Scope,
	}

	// Step 1: HTML/JSX parsing. HTML sources produce fragments plus
	// script/style blocks; JS/TS sources are scanned for embedded JSX
	// trees, whose companion inline-handler stream step 2 prepends.
	jsxHandlersByFile := make(map[string][]domparse.JSXHandler)
	jsxExprsByFile := make(map[string]map[string]string)

	for _, f := range coll.HTMLSources {
		res := domparse.ParseHTML(f.Path, f.Content, diags)
		m.Fragments = append(m.Fragments, res.Fragments...)
		for _, scr := range res.Scripts {
			am := actionparse.Extract(f.Path, scr.Content, nil, nil, diags)
			m.ActionModels = append(m.ActionModels, am)
		}
		for _, st := range res.Styles {
			m.CssModels = append(m.CssModels, cssparse.ParseCSS(f.Path, st.Content, diags))
		}
	}

	for _, f := range coll.JSSources {
		jsxRes := domparse.ParseJSX(f.Path, f.Content, diags)
		base := len(m.Fragments)
		handlers := make([]domparse.JSXHandler, len(jsxRes.Handlers))
		for i, h := range jsxRes.Handlers {
			h.FragmentIndex += base // rebase into the global Fragments slice
			handlers[i] = h
		}
		jsxHandlersByFile[f.Path] = handlers
		jsxExprsByFile[f.Path] = jsxRes.Exprs
		m.Fragments = append(m.Fragments, jsxRes.Fragments...)
	}

	// Step 2: JS/TS action-node extraction, with each file's companion JSX
	// handler stream prepended (spec §4.2 step 2).
	for _, f := range coll.JSSources {
		am := actionparse.Extract(f.Path, f.Content, jsxHandlersByFile[f.Path], jsxExprsByFile[f.Path], diags)
		m.ActionModels = append(m.ActionModels, am)
	}

	// Step 3: CSS parsing of standalone CSS sources (style blocks were
	// already folded in during step 1).
	for _, f := range coll.CSSSources {
		m.CssModels = append(m.CssModels, cssparse.ParseCSS(f.Path, f.Content, diags))
	}

	// Step 4: global id index, first occurrence wins, duplicates
	// diagnosed (spec §3.3).
	for fi, frag := range m.Fragments {
		for _, n := range frag.Elements() {
			idVal, ok := n.Attr("id")
			if !ok || idVal == "" || n.IsDynamicAttr("id") {
				continue
			}
			ref := ElementRef{FragmentIndex: fi, NodeID: n.ID}
			if _, exists := m.GlobalIDIndex[idVal]; exists {
				diags.Invariant(n.Loc, "duplicate id %q across fragments", idVal)
				continue
			}
			m.GlobalIDIndex[idVal] = ref
		}
	}

	// Step 5: handler attachment.
	for mi, am := range m.ActionModels {
		for ai, action := range am.Actions {
			if action.Kind != actionparse.KindEventHandlerRegistration {
				continue
			}
			res := m.resolveTarget(action.Target)
			m.Resolutions[ActionRef{ModelIndex: mi, ActionIndex: ai}] = res
			for _, elemRef := range res.Elements {
				m.HandlerAttachment[elemRef] = append(m.HandlerAttachment[elemRef], HandlerAttachment{
					EventType:  action.EventType,
					HandlerRef: action.HandlerRef,
					Loc:        action.Loc,
				})
			}
		}
	}

	// Step 6: scope already set at construction.
	return m
}

// resolveTarget resolves one TargetDescriptor against the whole model
// (spec §4.2 step 5, §4.3.1).
func (m *DocumentModel) resolveTarget(td selector.Selector) Resolution {
	switch td.Kind {
	case selector.KindJSXInline:
		if td.JSXFragmentIndex < 0 || td.JSXFragmentIndex >= len(m.Fragments) {
			return Resolution{}
		}
		if n := m.Fragments[td.JSXFragmentIndex].Node(td.JSXElementID); n != nil {
			return Resolution{Elements: []ElementRef{{FragmentIndex: td.JSXFragmentIndex, NodeID: td.JSXElementID}}}
		}
		return Resolution{}
	case selector.KindGlobal:
		return Resolution{Global: true}
	case selector.KindUnknown, selector.KindRaw:
		return Resolution{}
	case selector.KindID:
		if ref, ok := m.GlobalIDIndex[td.ID]; ok {
			return Resolution{Elements: []ElementRef{ref}}
		}
		return Resolution{}
	default:
		var out []ElementRef
		for fi, frag := range m.Fragments {
			for _, n := range frag.Elements() {
				if selector.Match(td, frag, n) {
					out = append(out, ElementRef{FragmentIndex: fi, NodeID: n.ID})
				}
			}
		}
		return Resolution{Elements: out}
	}
}
