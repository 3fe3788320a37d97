// Package cssparse implements Component A's CSS half (spec §4.1.3): it
// turns CSS source or <style> block content into CssRules, with selectors
// parsed through the shared internal/selector grammar and declarations
// normalized (lowercased properties, trimmed values).
package cssparse

import (
	"strings"

	gorillacss "github.com/gorilla/css/scanner"

	"github.com/conneroisu/a11yscan/internal/diag"
	"github.com/conneroisu/a11yscan/internal/selector"
	"github.com/conneroisu/a11yscan/internal/source"
)

// Declaration is one normalized property/value pair inside a rule body.
type Declaration struct {
	Property string
	Value    string
}

// CssRule is one selector plus its declaration block (spec §3.1).
type CssRule struct {
	Selector     selector.Selector
	SelectorText string
	Declarations []Declaration
	Loc          source.Location
}

// CssModel is the ordered rule list from one CSS source or <style> block
// (spec §3.1).
type CssModel struct {
	File  string
	Rules []CssRule
}

// ParseCSS tokenizes content with gorilla/css/scanner and assembles rules
// from the token stream: selector text accumulates up to a top-level "{",
// the declaration block runs to the matching "}". At-rules (@media,
// @keyframes, ...) are skipped over structurally (their nested block is
// not descended into) rather than guessed at: nested conditional rules are
// out of the supported grammar.
func ParseCSS(file, content string, diags *diag.Collector) *CssModel {
	model := &CssModel{File: file}
	s := gorillacss.New(content)

	var selBuf strings.Builder
	selLine, selCol := 1, 0
	haveSelStart := false

	for {
		tok := s.Next()
		if tok.Type == gorillacss.TokenEOF {
			break
		}
		if tok.Type == gorillacss.TokenError {
			diags.Parsef(source.Location{File: file, Line: tok.Line, Column: tok.Column}, nil, "CSS tokenize error: %s", tok.Value)
			break
		}

		switch {
		case tok.Type == gorillacss.TokenChar && tok.Value == "{":
			selText := strings.TrimSpace(selBuf.String())
			selBuf.Reset()
			loc := source.Location{File: file, Line: selLine, Column: selCol}
			haveSelStart = false

			body, ok := readDeclarationBlock(s)
			if !ok {
				diags.Parsef(loc, nil, "unterminated CSS block for selector %q", selText)
				continue
			}
			if strings.HasPrefix(selText, "@") {
				continue // at-rule: structurally consumed, not modeled as a rule
			}
			if selText == "" {
				continue
			}
			for _, oneSel := range splitTopLevelSelectorList(selText) {
				model.Rules = append(model.Rules, CssRule{
					Selector:     selector.ParseSelector(oneSel),
					SelectorText: oneSel,
					Declarations: parseDeclarations(body),
					Loc:          loc,
				})
			}

		case tok.Type == gorillacss.TokenS || tok.Type == gorillacss.TokenComment:
			// whitespace/comments don't affect the accumulated selector text's
			// shape beyond a single separating space
			if haveSelStart {
				selBuf.WriteByte(' ')
			}

		default:
			if !haveSelStart {
				selLine, selCol = tok.Line, tok.Column
				haveSelStart = true
			}
			selBuf.WriteString(tok.Value)
		}
	}
	return model
}

// readDeclarationBlock consumes tokens up to (and including) the matching
// top-level "}", returning the raw declaration text in between.
func readDeclarationBlock(s *gorillacss.Scanner) (string, bool) {
	var body strings.Builder
	depth := 1
	for {
		tok := s.Next()
		if tok.Type == gorillacss.TokenEOF {
			return body.String(), false
		}
		if tok.Type == gorillacss.TokenChar {
			switch tok.Value {
			case "{":
				depth++
			case "}":
				depth--
				if depth == 0 {
					return body.String(), true
				}
			}
		}
		body.WriteString(tok.Value)
	}
}

// splitTopLevelSelectorList splits a comma-separated selector list
// (".a, .b" -> [".a", ".b"]); CSS selectors never nest commas inside
// brackets for the supported grammar, so a plain split is sufficient.
func splitTopLevelSelectorList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// ParseInlineStyle normalizes an inline style="..." attribute value into
// Declarations, using the same rules as a stylesheet declaration block
// (spec §4.3.2 treats it as a synthetic rule applied last).
func ParseInlineStyle(styleAttr string) []Declaration {
	return parseDeclarations(styleAttr)
}

// parseDeclarations splits a declaration-block body on top-level ";" and
// each declaration on its first ":", normalizing property names to
// lowercase and trimming values (spec §4.1.3).
func parseDeclarations(body string) []Declaration {
	var out []Declaration
	for _, raw := range strings.Split(body, ";") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		idx := strings.IndexByte(raw, ':')
		if idx < 0 {
			continue
		}
		prop := strings.ToLower(strings.TrimSpace(raw[:idx]))
		val := strings.TrimSpace(raw[idx+1:])
		if prop == "" {
			continue
		}
		out = append(out, Declaration{Property: prop, Value: val})
	}
	return out
}
