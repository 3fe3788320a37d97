package rules

import (
	"github.com/conneroisu/a11yscan/internal/analyzerapi"
	"github.com/conneroisu/a11yscan/internal/domparse"
)

// missingLangAttribute flags an <html> fragment root without a lang
// attribute (SPEC_FULL.md supplement, WCAG 3.1.1).
type missingLangAttribute struct{}

// NewMissingLangAttribute builds the missing-lang-attribute pass.
func NewMissingLangAttribute() analyzerapi.Pass { return missingLangAttribute{} }

func (missingLangAttribute) Name() string                    { return "missing-lang-attribute" }
func (missingLangAttribute) Description() string             { return "document root has no lang attribute" }
func (missingLangAttribute) RequiresDocument() bool           { return true }
func (missingLangAttribute) TeleratesFile() bool              { return false }
func (missingLangAttribute) Framework() analyzerapi.Framework { return analyzerapi.FrameworkNone }

func (p missingLangAttribute) Analyze(ctx analyzerapi.Context) []analyzerapi.Issue {
	doc := ctx.Document
	var issues []analyzerapi.Issue
	for _, frag := range doc.Fragments {
		root := frag.Node(frag.Root)
		if root == nil {
			continue
		}
		htmlNode := findHTMLRoot(frag, root)
		if htmlNode == nil {
			continue
		}
		if lang, ok := htmlNode.Attr("lang"); ok && lang != "" {
			continue
		}
		issues = append(issues, analyzerapi.CreateIssue(
			"missing-lang-attribute", analyzerapi.SeverityError,
			"<html> element has no lang attribute",
			htmlNode.Loc, []string{"3.1.1"}, ctx,
			analyzerapi.IssueOptions{},
		))
	}
	return issues
}

func findHTMLRoot(frag *domparse.Fragment, n *domparse.Node) *domparse.Node {
	if n.Kind == domparse.KindElement && n.Tag == "html" {
		return n
	}
	for _, c := range frag.Children(n.ID) {
		if found := findHTMLRoot(frag, c); found != nil {
			return found
		}
	}
	return nil
}
