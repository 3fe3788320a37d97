package actionparse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/conneroisu/a11yscan/internal/diag"
	"github.com/conneroisu/a11yscan/internal/domparse"
	"github.com/conneroisu/a11yscan/internal/selector"
	"github.com/conneroisu/a11yscan/internal/source"
)

// Extract builds one ActionLanguageModel from one JS/TS source, per the
// closed recognizer list of spec §4.1.2 (see SPEC_FULL.md Open Question
// decision #1 for the exact boundary of that list). jsxHandlers is the
// companion stream from internal/domparse.ParseJSX for JSX trees whose root
// belongs to this same file; per spec §4.2 step 2 it is prepended ahead of
// the file's own action nodes.
func Extract(file, content string, jsxHandlers []domparse.JSXHandler, jsxExprs map[string]string, diags *diag.Collector) *ActionLanguageModel {
	m := newModel(file)

	for _, h := range jsxHandlers {
		ref := h.HandlerRef
		m.Handlers[ref] = jsxExprs[ref]
		m.add(ActionNode{
			Kind:         KindEventHandlerRegistration,
			Loc:          h.Loc,
			Target:       selector.JSXInline(h.FragmentIndex, h.ElementID),
			EventType:    h.EventType,
			HandlerRef:   ref,
			FrameworkTag: "jsx-inline",
		})
	}

	bindings := map[string]selector.Selector{}
	stmts := splitStatements(content)
	for _, st := range stmts {
		recordBinding(st, bindings)
	}
	for _, st := range stmts {
		recognizeStatement(file, content, st, bindings, m, diags)
	}
	return m
}

type statement struct {
	text   string
	offset int
}

// splitStatements performs a shallow, bracket-depth-aware split of src into
// statement-sized chunks on ';' or a newline at depth 0, skipping over
// string/template literals. It is not a JS tokenizer: it exists only to
// give the recognizers below self-contained text to pattern-match against,
// without letting a multi-line callback body get cut in half.
func splitStatements(src string) []statement {
	var out []statement
	depth := 0
	start := 0
	i := 0
	for i < len(src) {
		c := src[i]
		switch c {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			if depth > 0 {
				depth--
			}
		case '"', '\'', '`':
			i = skipStringLiteral(src, i)
			continue
		case '/':
			if i+1 < len(src) && src[i+1] == '/' {
				for i < len(src) && src[i] != '\n' {
					i++
				}
				continue
			}
		case ';', '\n':
			if depth == 0 {
				text := strings.TrimSpace(src[start : i+1])
				if text != "" {
					out = append(out, statement{text: text, offset: start})
				}
				start = i + 1
			}
		}
		i++
	}
	if tail := strings.TrimSpace(src[start:]); tail != "" {
		out = append(out, statement{text: tail, offset: start})
	}
	return out
}

func skipStringLiteral(src string, i int) int {
	quote := src[i]
	i++
	for i < len(src) && src[i] != quote {
		if src[i] == '\\' {
			i++
		}
		i++
	}
	if i < len(src) {
		i++
	}
	return i
}

var (
	constDeclRe = regexp.MustCompile(`^(?:const|let|var)\s+([A-Za-z_$][\w$]*)\s*=\s*([\s\S]+)$`)
	reassignRe  = regexp.MustCompile(`^([A-Za-z_$][\w$]*)\s*=\s*([^=][\s\S]*)$`)
	getByIDRe   = regexp.MustCompile(`document\s*\.\s*getElementById\s*\(\s*['"]([^'"]+)['"]\s*\)`)
	querySelRe  = regexp.MustCompile(`document\s*\.\s*querySelector(?:All)?\s*\(\s*['"]([^'"]+)['"]\s*\)`)
)

// recordBinding updates bindings with the last-write-wins DOM-resolving
// assignment in st, if any (spec §4.1.2's intraprocedural variable-binding
// table; scope is treated as whole-file, see SPEC_FULL.md decisions).
func recordBinding(st statement, bindings map[string]selector.Selector) {
	text := st.text
	text = strings.TrimSuffix(text, ";")
	var ident, rhs string
	if mm := constDeclRe.FindStringSubmatch(text); mm != nil {
		ident, rhs = mm[1], mm[2]
	} else if mm := reassignRe.FindStringSubmatch(text); mm != nil {
		ident, rhs = mm[1], mm[2]
	} else {
		return
	}
	if td, ok := resolveDomExpr(rhs); ok {
		bindings[ident] = td
	}
}

// resolveDomExpr classifies a DOM-resolving expression's text into a
// TargetDescriptor, per the receiver-resolution rule of spec §4.1.2.
func resolveDomExpr(expr string) (selector.Selector, bool) {
	expr = strings.TrimSpace(expr)
	if mm := getByIDRe.FindStringSubmatch(expr); mm != nil {
		return selector.Selector{Kind: selector.KindID, ID: mm[1]}, true
	}
	if mm := querySelRe.FindStringSubmatch(expr); mm != nil {
		return selector.ParseSelector(mm[1]), true
	}
	return selector.Selector{}, false
}

// resolveReceiver resolves a receiver expression (the text before a
// recognized method call or property assignment) to a TargetDescriptor:
// a DOM-resolving call is classified directly; a bare identifier is looked
// up in bindings; anything else is KindUnknown (spec §4.1.2: "such nodes
// are included in the stream but skipped by target-matching").
func resolveReceiver(recv string, bindings map[string]selector.Selector) selector.Selector {
	recv = strings.TrimSpace(recv)
	if td, ok := resolveDomExpr(recv); ok {
		return td
	}
	if globalRootRe.MatchString(recv) {
		return selector.Selector{Kind: selector.KindGlobal, GlobalName: recv}
	}
	if identRe.MatchString(recv) {
		if td, ok := bindings[recv]; ok {
			return td
		}
	}
	return selector.Selector{Kind: selector.KindUnknown, Raw: recv}
}

var (
	identRe      = regexp.MustCompile(`^[A-Za-z_$][\w$]*$`)
	globalRootRe = regexp.MustCompile(`^(?:document|window|self|globalThis)$`)

	addEventListenerRe = regexp.MustCompile(`(?s)^([\s\S]+?)\.addEventListener\(\s*['"]([^'"]+)['"]\s*,\s*(.+)\)\s*;?$`)
	setAttributeRe     = regexp.MustCompile(`(?s)^([\s\S]+?)\.setAttribute\(\s*['"]([^'"]+)['"]\s*,\s*(.+)\)\s*;?$`)
	bracketAssignRe    = regexp.MustCompile(`(?s)^([\s\S]+?)\[\s*['"](aria-[\w-]+)['"]\s*]\s*=\s*(.+)$`)
	propAssignAriaRe   = regexp.MustCompile(`(?s)^([\s\S]+?)\.aria([A-Za-z]+)\s*=\s*(.+)$`)
	focusRe            = regexp.MustCompile(`(?s)^([\s\S]+?)\.focus\(\s*\)\s*;?$`)
	blurRe             = regexp.MustCompile(`(?s)^([\s\S]+?)\.blur\(\s*\)\s*;?$`)
	removeRe           = regexp.MustCompile(`(?s)^([\s\S]+?)\.remove\(\s*\)\s*;?$`)
	classListRe        = regexp.MustCompile(`(?s)^([\s\S]+?)\.classList\.(add|remove|toggle)\(\s*(.+)\)\s*;?$`)
	styleAssignRe      = regexp.MustCompile(`(?s)^([\s\S]+?)\.style\.([A-Za-z][\w-]*)\s*=\s*(.+)$`)
	setTimeoutRe       = regexp.MustCompile(`(?s)^setTimeout\(\s*(.+)$`)
	setIntervalRe      = regexp.MustCompile(`(?s)^setInterval\(\s*(.+)$`)
	locationHrefRe     = regexp.MustCompile(`(?s)^location\.href\s*=\s*(.+)$`)
	locationAssignRe   = regexp.MustCompile(`(?s)^location\.assign\(\s*(.+)\)\s*;?$`)
	locationReplaceRe  = regexp.MustCompile(`(?s)^location\.replace\(\s*(.+)\)\s*;?$`)
	historyPushRe      = regexp.MustCompile(`(?s)^history\.pushState\(\s*(.+)\)\s*;?$`)
	historyReplaceRe   = regexp.MustCompile(`(?s)^history\.replaceState\(\s*(.+)\)\s*;?$`)
)

func recognizeStatement(file, content string, st statement, bindings map[string]selector.Selector, m *ActionLanguageModel, diags *diag.Collector) {
	text := st.text
	line := 1 + strings.Count(content[:st.offset], "\n")

	switch {
	case addEventListenerRe.MatchString(text):
		mm := addEventListenerRe.FindStringSubmatch(text)
		recv, evt, handler := mm[1], mm[2], strings.TrimSpace(mm[3])
		ref := internHandler(m, file, st.offset, handler)
		m.add(ActionNode{
			Kind:       KindEventHandlerRegistration,
			Loc:        source.Location{File: file, Line: line},
			Target:     resolveReceiver(recv, bindings),
			EventType:  evt,
			HandlerRef: ref,
		})

	case setAttributeRe.MatchString(text):
		mm := setAttributeRe.FindStringSubmatch(text)
		recv, name, val := mm[1], mm[2], strings.TrimSpace(mm[3])
		if strings.HasPrefix(name, "aria-") {
			m.add(ActionNode{
				Kind:          KindAriaMutation,
				Loc:           source.Location{File: file, Line: line},
				Target:        resolveReceiver(recv, bindings),
				AriaAttribute: name,
				NewValue:      val,
			})
		} else {
			m.add(ActionNode{
				Kind:       KindDomMutation,
				Loc:        source.Location{File: file, Line: line},
				Target:     resolveReceiver(recv, bindings),
				MutationOp: "attribute",
			})
		}

	case bracketAssignRe.MatchString(text):
		mm := bracketAssignRe.FindStringSubmatch(text)
		recv, name, val := mm[1], mm[2], strings.TrimSpace(mm[3])
		m.add(ActionNode{
			Kind:          KindAriaMutation,
			Loc:           source.Location{File: file, Line: line},
			Target:        resolveReceiver(recv, bindings),
			AriaAttribute: name,
			NewValue:      val,
		})

	case propAssignAriaRe.MatchString(text):
		mm := propAssignAriaRe.FindStringSubmatch(text)
		recv, prop, val := mm[1], mm[2], strings.TrimSpace(mm[3])
		m.add(ActionNode{
			Kind:          KindAriaMutation,
			Loc:           source.Location{File: file, Line: line},
			Target:        resolveReceiver(recv, bindings),
			AriaAttribute: camelToAria(prop),
			NewValue:      val,
		})

	case focusRe.MatchString(text):
		mm := focusRe.FindStringSubmatch(text)
		m.add(ActionNode{Kind: KindFocusChange, Loc: source.Location{File: file, Line: line}, Target: resolveReceiver(mm[1], bindings), FocusMethod: "focus"})

	case blurRe.MatchString(text):
		mm := blurRe.FindStringSubmatch(text)
		m.add(ActionNode{Kind: KindFocusChange, Loc: source.Location{File: file, Line: line}, Target: resolveReceiver(mm[1], bindings), FocusMethod: "blur"})

	case removeRe.MatchString(text):
		mm := removeRe.FindStringSubmatch(text)
		m.add(ActionNode{Kind: KindDomMutation, Loc: source.Location{File: file, Line: line}, Target: resolveReceiver(mm[1], bindings), MutationOp: "remove"})

	case classListRe.MatchString(text):
		mm := classListRe.FindStringSubmatch(text)
		m.add(ActionNode{Kind: KindDomMutation, Loc: source.Location{File: file, Line: line}, Target: resolveReceiver(mm[1], bindings), MutationOp: "classList-" + mm[2]})

	case styleAssignRe.MatchString(text):
		mm := styleAssignRe.FindStringSubmatch(text)
		recv, prop, val := mm[1], mm[2], strings.TrimSpace(mm[3])
		op := "style-" + prop
		if prop == "display" && (strings.Contains(val, "none") || strings.Contains(val, "'none'") || strings.Contains(val, `"none"`)) {
			op = "hide"
		} else if prop == "display" {
			op = "show"
		}
		m.add(ActionNode{Kind: KindDomMutation, Loc: source.Location{File: file, Line: line}, Target: resolveReceiver(recv, bindings), MutationOp: op})

	case setTimeoutRe.MatchString(text) || setIntervalRe.MatchString(text):
		api := "setTimeout"
		mm := setTimeoutRe.FindStringSubmatch(text)
		if mm == nil {
			api = "setInterval"
			mm = setIntervalRe.FindStringSubmatch(text)
		}
		args := splitTopLevelArgs(mm[1])
		var durMs *int
		var body string
		if len(args) > 0 {
			body = strings.TrimSpace(args[0])
		}
		if len(args) > 1 {
			if n, err := strconv.Atoi(strings.TrimSpace(strings.TrimSuffix(args[1], ")"))); err == nil {
				durMs = &n
			}
		}
		ref := internHandler(m, file, st.offset, body)
		m.add(ActionNode{Kind: KindTimedCall, Loc: source.Location{File: file, Line: line}, API: api, DurationMs: durMs, BodySummary: summarize(body), HandlerRef: ref})

	case locationHrefRe.MatchString(text):
		m.add(ActionNode{Kind: KindNavigation, Loc: source.Location{File: file, Line: line}, NavMechanism: "location-assign"})
	case locationAssignRe.MatchString(text):
		m.add(ActionNode{Kind: KindNavigation, Loc: source.Location{File: file, Line: line}, NavMechanism: "location-assign"})
	case locationReplaceRe.MatchString(text):
		m.add(ActionNode{Kind: KindNavigation, Loc: source.Location{File: file, Line: line}, NavMechanism: "location-replace"})
	case historyPushRe.MatchString(text):
		m.add(ActionNode{Kind: KindNavigation, Loc: source.Location{File: file, Line: line}, NavMechanism: "history-push"})
	case historyReplaceRe.MatchString(text):
		m.add(ActionNode{Kind: KindNavigation, Loc: source.Location{File: file, Line: line}, NavMechanism: "history-replace"})

	default:
		if diags != nil {
			_ = diags // unrecognized statements are silently skipped, not diagnosed: most of a JS file is not action-relevant.
		}
	}
}

func camelToAria(prop string) string {
	var b strings.Builder
	b.WriteString("aria-")
	for _, r := range prop {
		if r >= 'A' && r <= 'Z' {
			b.WriteByte('-')
			b.WriteRune(r + 32)
		} else {
			b.WriteRune(r)
		}
	}
	s := b.String()
	return strings.Replace(s, "aria--", "aria-", 1)
}

func summarize(body string) string {
	body = strings.TrimSpace(body)
	if len(body) > 80 {
		return body[:80] + "..."
	}
	return body
}

// splitTopLevelArgs splits a comma-separated argument list, respecting
// nested parens/brackets/braces/strings, so a callback argument containing
// commas is not mis-split.
func splitTopLevelArgs(s string) []string {
	var out []string
	depth := 0
	start := 0
	i := 0
	for i < len(s) {
		switch s[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case '"', '\'', '`':
			i = skipStringLiteral(s, i)
			continue
		case ',':
			if depth == 0 {
				out = append(out, s[start:i])
				start = i + 1
			}
		}
		i++
	}
	if start < len(s) {
		out = append(out, s[start:])
	}
	return out
}

func internHandler(m *ActionLanguageModel, file string, offset int, body string) string {
	ref := file + "#handler-" + strconvItoa(offset)
	m.Handlers[ref] = strings.TrimSpace(body)
	return ref
}

func strconvItoa(n int) string { return strconv.Itoa(n) }
