package domparse

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/conneroisu/a11yscan/internal/diag"
	"github.com/conneroisu/a11yscan/internal/source"
)

// ScriptBlock and StyleBlock are the <script>/<style> contents the HTML
// parser extracts instead of keeping in the DOM tree (spec §4.1.1): "Script
// and style content is extracted to be handed to 4.1.2 and 4.1.3
// respectively, not kept in the DOM tree."
type ScriptBlock struct {
	Content string
	Loc     source.Location
}

type StyleBlock struct {
	Content string
	Loc     source.Location
}

// HTMLResult bundles everything one HTML source produces.
type HTMLResult struct {
	Fragments []*Fragment
	Scripts   []ScriptBlock
	Styles    []StyleBlock
}

// ParseHTML parses one HTML source string into a HTMLResult. On an
// unrecoverable parse error it returns an empty result and records a
// diagnostic; it never panics into the pipeline (spec §4.1.1 failure
// mode).
func ParseHTML(file, content string, diags *diag.Collector) HTMLResult {
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		diags.Parsef(source.Location{File: file, Line: 1, Column: 0}, err, "failed to parse HTML")
		return HTMLResult{}
	}

	frag := NewFragment(file)
	result := HTMLResult{}

	rootID := frag.allocate(&Node{Kind: KindFragmentRoot, Parent: InvalidNodeID, Loc: source.Location{File: file, Line: 1}})
	frag.Root = rootID

	var convert func(htmlNode *html.Node, parent NodeID)
	convert = func(htmlNode *html.Node, parent NodeID) {
		for c := htmlNode.FirstChild; c != nil; c = c.NextSibling {
			switch c.Type {
			case html.ElementNode:
				tag := strings.ToLower(c.Data)
				loc := locationOf(file, c)

				if tag == "script" {
					result.Scripts = append(result.Scripts, ScriptBlock{Content: textContent(c), Loc: loc})
					continue
				}
				if tag == "style" {
					result.Styles = append(result.Styles, StyleBlock{Content: textContent(c), Loc: loc})
					continue
				}

				attrs := make(map[string]string, len(c.Attr))
				for _, a := range c.Attr {
					attrs[strings.ToLower(a.Key)] = a.Val
				}
				elemID := frag.allocate(&Node{
					Kind:  KindElement,
					Tag:   tag,
					Attrs: attrs,
					Loc:   loc,
				})
				frag.addChild(parent, elemID)
				if dup := frag.indexElement(frag.Node(elemID)); dup {
					diags.Invariant(loc, "duplicate id %q within fragment", attrs["id"])
				}
				convert(c, elemID)

			case html.TextNode:
				text := strings.TrimSpace(c.Data)
				if text == "" {
					continue
				}
				textID := frag.allocate(&Node{Kind: KindText, Text: text, Loc: locationOf(file, c)})
				frag.addChild(parent, textID)
			default:
				// Comments, doctypes: not part of the accessibility surface.
				convert(c, parent)
			}
		}
	}

	convert(doc, rootID)
	result.Fragments = []*Fragment{frag}
	return result
}

// textContent concatenates the raw text children of an html.Node (used for
// <script>/<style> bodies, which x/net/html represents as a single text
// child).
func textContent(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}
	return b.String()
}

// locationOf derives a best-effort SourceLocation for an html.Node.
// x/net/html's tree builder (html.Parse) does not retain per-node
// line/column offsets, unlike its tokenizer; HTML locations therefore
// degrade to file-level (line 1). JSX, JS, and CSS sources get exact
// offsets from their own scanners elsewhere in this package and in
// actionparse/cssparse.
func locationOf(file string, n *html.Node) source.Location {
	return source.Location{File: file, Line: 1, Column: 0}
}
