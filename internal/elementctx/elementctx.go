// Package elementctx implements Component C (spec §4.3): on-demand
// per-element projections combining the handler-attachment table, CSS rule
// matching, and the focusability/interactivity rules of spec §3.3.
package elementctx

import (
	"strconv"
	"strings"

	"github.com/conneroisu/a11yscan/internal/cssparse"
	"github.com/conneroisu/a11yscan/internal/docmodel"
	"github.com/conneroisu/a11yscan/internal/domparse"
	"github.com/conneroisu/a11yscan/internal/selector"
)

// Context is a read-only projected view of one element (spec §3.1
// "ElementContext"); it holds borrowed references and must not be mutated.
type Context struct {
	Ref  docmodel.ElementRef
	Node *domparse.Node

	Handlers []docmodel.HandlerAttachment
	CssRules []cssparse.CssRule

	Focusable          bool
	Interactive        bool
	HasClickHandler    bool
	HasKeyboardHandler bool
}

var naturallyFocusableTags = map[string]bool{
	"button": true, "input": true, "select": true, "textarea": true, "iframe": true,
}

var interactiveRoles = map[string]bool{
	"button": true, "link": true, "checkbox": true, "menuitem": true,
	"tab": true, "switch": true, "radio": true, "textbox": true,
	"combobox": true, "slider": true, "menuitemcheckbox": true, "menuitemradio": true,
}

var keyboardEventTypes = map[string]bool{"keydown": true, "keypress": true, "keyup": true}

// Compute builds the Context for ref against model. Returns nil if ref
// does not resolve to an element.
func Compute(model *docmodel.DocumentModel, ref docmodel.ElementRef) *Context {
	node := model.Element(ref)
	if node == nil || node.Kind != domparse.KindElement {
		return nil
	}
	frag := model.Fragment(ref)

	ctx := &Context{
		Ref:      ref,
		Node:     node,
		Handlers: model.HandlerAttachment[ref],
	}
	for _, h := range ctx.Handlers {
		switch h.EventType {
		case "click":
			ctx.HasClickHandler = true
		default:
			if keyboardEventTypes[h.EventType] {
				ctx.HasKeyboardHandler = true
			}
		}
	}
	ctx.Focusable = Focusable(node)
	ctx.Interactive = len(ctx.Handlers) > 0 || hasInteractiveRole(node) || ctx.Focusable
	ctx.CssRules = matchingCssRules(model, frag, node)
	return ctx
}

// Focusable reports whether n is naturally focusable per spec §3.3: tag in
// {a (with href), button, input, select, textarea, iframe}, or a
// parseable non-negative tabindex.
func Focusable(n *domparse.Node) bool {
	if n.Tag == "a" {
		if _, ok := n.Attr("href"); ok {
			return true
		}
	}
	if naturallyFocusableTags[n.Tag] {
		return true
	}
	if ti, ok := n.Attr("tabindex"); ok && !n.IsDynamicAttr("tabindex") {
		if v, err := strconv.Atoi(strings.TrimSpace(ti)); err == nil && v >= 0 {
			return true
		}
	}
	return false
}

// PositiveTabIndex returns the parsed tabindex value and true iff n carries
// a statically parseable tabindex strictly greater than zero (spec §4.5.4).
func PositiveTabIndex(n *domparse.Node) (int, bool) {
	ti, ok := n.Attr("tabindex")
	if !ok || n.IsDynamicAttr("tabindex") {
		return 0, false
	}
	v, err := strconv.Atoi(strings.TrimSpace(ti))
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

func hasInteractiveRole(n *domparse.Node) bool {
	role, ok := n.Attr("role")
	if !ok || n.IsDynamicAttr("role") {
		return false
	}
	return interactiveRoles[strings.ToLower(role)]
}

// matchingCssRules implements spec §4.3.2's cascade-approximation order:
// CSS source file order, then rule order within a file, then the inline
// style attribute as a synthetic rule applied last.
func matchingCssRules(model *docmodel.DocumentModel, frag *domparse.Fragment, n *domparse.Node) []cssparse.CssRule {
	var out []cssparse.CssRule
	for _, cm := range model.CssModels {
		for _, rule := range cm.Rules {
			if selector.Match(rule.Selector, frag, n) {
				out = append(out, rule)
			}
		}
	}
	if styleVal, ok := n.Attr("style"); ok && styleVal != "" && !n.IsDynamicAttr("style") {
		out = append(out, cssparse.CssRule{
			SelectorText: "[inline]",
			Declarations: cssparse.ParseInlineStyle(styleVal),
			Loc:          n.Loc,
		})
	}
	return out
}

// HidingDeclaration reports whether a single declaration, on its own,
// hides a focusable element from visual/AT presentation (spec §4.5.5).
func HidingDeclaration(d cssparse.Declaration) bool {
	v := strings.ToLower(strings.TrimSpace(d.Value))
	switch d.Property {
	case "display":
		return v == "none"
	case "visibility":
		return v == "hidden"
	case "opacity":
		return v == "0"
	case "clip":
		return strings.Contains(v, "rect(0,0,0,0)") || strings.Contains(v, "rect(0, 0, 0, 0)")
	case "clip-path":
		return strings.Contains(v, "inset(50%)")
	case "position":
		return false // position alone is not hiding; see left/top below
	case "left", "top":
		return isFarOffscreen(v)
	}
	return false
}

func isFarOffscreen(v string) bool {
	v = strings.TrimSuffix(v, "px")
	n, err := strconv.Atoi(strings.TrimSpace(v))
	return err == nil && n <= -9999
}

// IsOffscreenPositioned reports whether the declaration set as a whole
// hides E via absolute/fixed positioning pushed far off-screen (spec
// §4.5.5: "position absolute/fixed with left/top ≤ −9999px").
func IsOffscreenPositioned(decls []cssparse.Declaration) bool {
	positioned := false
	offscreen := false
	for _, d := range decls {
		if d.Property == "position" {
			v := strings.ToLower(strings.TrimSpace(d.Value))
			if v == "absolute" || v == "fixed" {
				positioned = true
			}
		}
		if (d.Property == "left" || d.Property == "top") && isFarOffscreen(strings.ToLower(strings.TrimSpace(d.Value))) {
			offscreen = true
		}
	}
	return positioned && offscreen
}
