package domparse

import (
	"strings"
	"unicode"

	"github.com/conneroisu/a11yscan/internal/diag"
	"github.com/conneroisu/a11yscan/internal/source"
)

// JSXHandler is the companion-stream record for one inline JSX event
// handler (onClick={...}), emitted by the JSX parser per spec §4.1.1:
// "JSX inline handlers ... are emitted into the companion action stream
// ... as eventHandlerRegistration entries with a JSX-inline target
// descriptor pointing back to the specific element-node-id, not as
// attributes." docmodel converts these into actionparse.ActionNode values
// when it merges a JSX fragment's companion stream into the owning file's
// ActionLanguageModel (spec §4.2 step 2).
type JSXHandler struct {
	FragmentIndex int // index into the JSXResult.Fragments slice
	ElementID     NodeID
	EventType     string // lowercased DOM event name: click, keydown, ...
	HandlerRef    string // opaque ref into Exprs, for body inspection
	Loc           source.Location
}

// JSXResult bundles every top-level JSX fragment extracted from one
// JS/JSX/TSX source, plus the inline-handler companion stream and an
// opaque handler-body table keyed by HandlerRef (spec §4.1.2: "Handler
// bodies are kept as opaque handler-ref identifiers ... stable and
// side-effect free").
type JSXResult struct {
	Fragments []*Fragment
	Handlers  []JSXHandler
	Exprs     map[string]string
}

// ParseJSX scans a JS/TS source for top-level JSX returned from function
// bodies, class render methods, and arrow-function component bodies, and
// extracts each as its own Fragment (spec §4.1.1). Non-JSX portions of the
// file are left entirely alone; they are the JS/TS extractor's concern
// (internal/actionparse).
func ParseJSX(file, content string, diags *diag.Collector) JSXResult {
	s := &jsxScanner{file: file, src: content, diags: diags, exprs: map[string]string{}}
	s.scanTopLevel()
	return JSXResult{Fragments: s.fragments, Handlers: s.handlers, Exprs: s.exprs}
}

type jsxScanner struct {
	file      string
	src       string
	pos       int
	diags     *diag.Collector
	fragments []*Fragment
	handlers  []JSXHandler
	exprs     map[string]string
	exprSeq   int
}

func (s *jsxScanner) eof() bool { return s.pos >= len(s.src) }

func (s *jsxScanner) peek() byte {
	if s.eof() {
		return 0
	}
	return s.src[s.pos]
}

// locAt converts a byte offset into a 1-based line / 0-based column pair.
func (s *jsxScanner) locAt(offset int) source.Location {
	line := 1
	col := 0
	for i := 0; i < offset && i < len(s.src); i++ {
		if s.src[i] == '\n' {
			line++
			col = 0
		} else {
			col++
		}
	}
	return source.Location{File: s.file, Line: line, Column: col}
}

// scanTopLevel walks the raw source looking for "return" or "=>" tokens
// immediately (modulo whitespace and a single opening paren) followed by a
// JSX open tag or fragment shorthand, and extracts each as a new Fragment.
// Everything that is not recognized as the start of a JSX tree is skipped
// untouched; this is intentionally a shallow, closed recognizer rather than
// a full JS parser (see SPEC_FULL.md Open Question decision #1).
func (s *jsxScanner) scanTopLevel() {
	for !s.eof() {
		if s.matchKeywordAt(s.pos, "return") {
			after := s.pos + len("return")
			if s.looksLikeJSXStart(after) {
				s.pos = after
				s.skipSpacesAndOneParen()
				s.extractFragment()
				continue
			}
		}
		if s.peek() == '=' && s.pos+1 < len(s.src) && s.src[s.pos+1] == '>' {
			after := s.pos + 2
			if s.looksLikeJSXStart(after) {
				s.pos = after
				s.skipSpacesAndOneParen()
				s.extractFragment()
				continue
			}
		}
		s.pos++
	}
}

func (s *jsxScanner) matchKeywordAt(pos int, kw string) bool {
	if pos+len(kw) > len(s.src) {
		return false
	}
	if s.src[pos:pos+len(kw)] != kw {
		return false
	}
	// word boundary before
	if pos > 0 && isIdentRune(rune(s.src[pos-1])) {
		return false
	}
	// word boundary after
	if pos+len(kw) < len(s.src) && isIdentRune(rune(s.src[pos+len(kw)])) {
		return false
	}
	return true
}

func isIdentRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '$'
}

// looksLikeJSXStart reports whether, skipping whitespace and at most one
// opening paren, the next non-space byte begins a JSX tag ('<' followed by
// a letter or '>' for a fragment).
func (s *jsxScanner) looksLikeJSXStart(from int) bool {
	i := from
	for i < len(s.src) && isSpace(s.src[i]) {
		i++
	}
	if i < len(s.src) && s.src[i] == '(' {
		i++
		for i < len(s.src) && isSpace(s.src[i]) {
			i++
		}
	}
	if i >= len(s.src) || s.src[i] != '<' {
		return false
	}
	j := i + 1
	if j < len(s.src) && s.src[j] == '>' {
		return true // fragment shorthand <>
	}
	return j < len(s.src) && (unicode.IsLetter(rune(s.src[j])) || s.src[j] == '_')
}

func isSpace(b byte) bool { return b == ' ' || b == '\t' || b == '\n' || b == '\r' }

func (s *jsxScanner) skipSpacesAndOneParen() {
	for !s.eof() && isSpace(s.peek()) {
		s.pos++
	}
	if s.peek() == '(' {
		s.pos++
		for !s.eof() && isSpace(s.peek()) {
			s.pos++
		}
	}
}

// extractFragment parses one JSX tree starting at the current position
// (which must be at '<') into a new Fragment.
func (s *jsxScanner) extractFragment() {
	if s.eof() || s.peek() != '<' {
		return
	}
	frag := NewFragment(s.file)
	fragIdx := len(s.fragments)
	rootLoc := s.locAt(s.pos)
	rootID := frag.allocate(&Node{Kind: KindFragmentRoot, Parent: InvalidNodeID, Loc: rootLoc})
	frag.Root = rootID

	elemID, ok := s.parseElement(frag, fragIdx)
	if !ok {
		s.diags.Parsef(rootLoc, nil, "failed to parse JSX fragment")
		return
	}
	frag.addChild(rootID, elemID)
	s.fragments = append(s.fragments, frag)
}

// parseElement parses one `<Tag ...>...</Tag>` or `<Tag ... />` starting at
// '<', returning the allocated node id.
func (s *jsxScanner) parseElement(frag *Fragment, fragIdx int) (NodeID, bool) {
	startLoc := s.locAt(s.pos)
	s.pos++ // consume '<'

	if s.peek() == '>' {
		// Fragment shorthand <>...</>
		s.pos++
		fragNodeID := frag.allocate(&Node{Kind: KindFragmentRoot, Loc: startLoc})
		s.parseChildren(frag, fragIdx, fragNodeID, "")
		return fragNodeID, true
	}

	tagStart := s.pos
	for !s.eof() && isTagNameRune(s.peek()) {
		s.pos++
	}
	tag := s.src[tagStart:s.pos]
	if tag == "" {
		return InvalidNodeID, false
	}
	isComponent := unicode.IsUpper(rune(tag[0]))

	attrs := map[string]string{}
	dynamicAttrs := map[string]string{}
	var pendingHandlers []JSXHandler

	for {
		s.skipWS()
		if s.eof() {
			return InvalidNodeID, false
		}
		if s.peek() == '/' && s.pos+1 < len(s.src) && s.src[s.pos+1] == '>' {
			s.pos += 2
			nodeTag := tag
			if isComponent {
				nodeTag = tag
			}
			id := frag.allocate(&Node{
				Kind:         KindElement,
				Tag:          strings.ToLower(nodeTag),
				Attrs:        attrs,
				DynamicAttrs: dynamicAttrs,
				Loc:          startLoc,
				IsComponent:  isComponent,
			})
			if isComponent {
				frag.Node(id).Tag = tag // preserve original casing for components
			}
			if dup := frag.indexElement(frag.Node(id)); dup {
				s.diags.Invariant(startLoc, "duplicate id within JSX fragment")
			}
			s.attachHandlers(fragIdx, id, pendingHandlers)
			return id, true
		}
		if s.peek() == '>' {
			s.pos++
			nodeTag := tag
			id := frag.allocate(&Node{
				Kind:         KindElement,
				Tag:          strings.ToLower(nodeTag),
				Attrs:        attrs,
				DynamicAttrs: dynamicAttrs,
				Loc:          startLoc,
				IsComponent:  isComponent,
			})
			if isComponent {
				frag.Node(id).Tag = tag
			}
			if dup := frag.indexElement(frag.Node(id)); dup {
				s.diags.Invariant(startLoc, "duplicate id within JSX fragment")
			}
			s.attachHandlers(fragIdx, id, pendingHandlers)
			s.parseChildren(frag, fragIdx, id, tag)
			return id, true
		}

		// Parse one attribute.
		nameStart := s.pos
		for !s.eof() && isAttrNameRune(s.peek()) {
			s.pos++
		}
		name := s.src[nameStart:s.pos]
		if name == "" {
			s.pos++ // avoid infinite loop on unexpected byte
			continue
		}
		s.skipWS()
		if s.peek() != '=' {
			// boolean attribute shorthand
			attrs[strings.ToLower(name)] = ""
			continue
		}
		s.pos++ // consume '='
		s.skipWS()
		switch s.peek() {
		case '"', '\'':
			quote := s.peek()
			s.pos++
			valStart := s.pos
			for !s.eof() && s.peek() != quote {
				s.pos++
			}
			val := s.src[valStart:s.pos]
			if !s.eof() {
				s.pos++ // consume closing quote
			}
			attrs[strings.ToLower(name)] = val
		case '{':
			exprLoc := s.locAt(s.pos)
			expr := s.readBraceExpr()
			lname := strings.ToLower(name)
			if isJSXEventHandlerAttr(name) {
				ref := s.internExpr(expr)
				pendingHandlers = append(pendingHandlers, JSXHandler{
					FragmentIndex: fragIdx,
					EventType:     jsxEventType(name),
					HandlerRef:    ref,
					Loc:           exprLoc,
				})
			} else {
				attrs[lname] = dynamicSentinel
				dynamicAttrs[lname] = expr
			}
		default:
			// Unrecognized attribute value form; record presence only.
			attrs[strings.ToLower(name)] = ""
		}
	}
}

// attachHandlers records pending JSX inline handlers against elemID now
// that the element has been allocated.
func (s *jsxScanner) attachHandlers(fragIdx int, elemID NodeID, pending []JSXHandler) {
	for _, h := range pending {
		h.ElementID = elemID
		s.handlers = append(s.handlers, h)
	}
}

// parseChildren parses node content up to the matching `</tag>` (or EOF for
// the top-level safety net), populating frag's child list for parent.
func (s *jsxScanner) parseChildren(frag *Fragment, fragIdx int, parent NodeID, tag string) {
	for !s.eof() {
		if s.peek() == '<' {
			if s.pos+1 < len(s.src) && s.src[s.pos+1] == '/' {
				// closing tag
				s.pos += 2
				for !s.eof() && s.peek() != '>' {
					s.pos++
				}
				if !s.eof() {
					s.pos++
				}
				return
			}
			childID, ok := s.parseElement(frag, fragIdx)
			if !ok {
				return
			}
			frag.addChild(parent, childID)
			continue
		}
		if s.peek() == '{' {
			loc := s.locAt(s.pos)
			s.readBraceExpr()
			// Expression children are recorded as an opaque dynamic
			// text marker; nested JSX inside a conditional expression
			// is not traversed.
			id := frag.allocate(&Node{Kind: KindText, Text: dynamicSentinel, Loc: loc})
			frag.addChild(parent, id)
			continue
		}
		// plain text run
		textStart := s.pos
		for !s.eof() && s.peek() != '<' && s.peek() != '{' {
			s.pos++
		}
		text := strings.TrimSpace(s.src[textStart:s.pos])
		if text != "" {
			id := frag.allocate(&Node{Kind: KindText, Text: text, Loc: s.locAt(textStart)})
			frag.addChild(parent, id)
		}
		if textStart == s.pos {
			s.pos++ // safety against zero-width loops
		}
	}
}

// readBraceExpr consumes a `{ ... }` expression, tracking nested
// braces/strings, and returns its inner text (braces excluded).
func (s *jsxScanner) readBraceExpr() string {
	if s.peek() != '{' {
		return ""
	}
	start := s.pos + 1
	depth := 0
	for !s.eof() {
		switch s.peek() {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				text := s.src[start:s.pos]
				s.pos++
				return text
			}
		case '"', '\'', '`':
			quote := s.peek()
			s.pos++
			for !s.eof() && s.peek() != quote {
				if s.peek() == '\\' {
					s.pos++
				}
				s.pos++
			}
		}
		s.pos++
	}
	return s.src[start:]
}

func (s *jsxScanner) internExpr(expr string) string {
	s.exprSeq++
	ref := s.file + "#jsx-expr-" + itoa(s.exprSeq)
	s.exprs[ref] = strings.TrimSpace(expr)
	return ref
}

func (s *jsxScanner) skipWS() {
	for !s.eof() && isSpace(s.peek()) {
		s.pos++
	}
}

func isTagNameRune(b byte) bool {
	return unicode.IsLetter(rune(b)) || unicode.IsDigit(rune(b)) || b == '.' || b == '_' || b == '-'
}

func isAttrNameRune(b byte) bool {
	return unicode.IsLetter(rune(b)) || unicode.IsDigit(rune(b)) || b == '-' || b == '_' || b == ':'
}

func isJSXEventHandlerAttr(name string) bool {
	return len(name) > 2 && name[0] == 'o' && name[1] == 'n' && unicode.IsUpper(rune(name[2]))
}

// jsxEventType lowercases the onXxx suffix into a DOM event type, e.g.
// onKeyDown -> keydown.
func jsxEventType(name string) string {
	return strings.ToLower(name[2:])
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
