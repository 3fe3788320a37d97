package rules

import (
	"github.com/conneroisu/a11yscan/internal/analyzerapi"
	"github.com/conneroisu/a11yscan/internal/domparse"
)

// missingAltText flags img/role=img elements without alt or aria-label
// text (SPEC_FULL.md supplement, WCAG 1.1.1).
type missingAltText struct{}

// NewMissingAltText builds the missing-alt-text pass.
func NewMissingAltText() analyzerapi.Pass { return missingAltText{} }

func (missingAltText) Name() string                    { return "missing-alt-text" }
func (missingAltText) Description() string             { return "image has no accessible text alternative" }
func (missingAltText) RequiresDocument() bool           { return false }
func (missingAltText) TeleratesFile() bool              { return false }
func (missingAltText) Framework() analyzerapi.Framework { return analyzerapi.FrameworkNone }

func (p missingAltText) Analyze(ctx analyzerapi.Context) []analyzerapi.Issue {
	if !ctx.HasDocument() {
		return nil
	}
	doc := ctx.Document
	var issues []analyzerapi.Issue
	for _, frag := range doc.Fragments {
		for _, n := range frag.Elements() {
			if !isImageLike(n) {
				continue
			}
			if hasAccessibleText(n) {
				continue
			}
			issues = append(issues, analyzerapi.CreateIssue(
				"missing-alt-text", analyzerapi.SeverityError,
				"image has no alt text or aria-label",
				n.Loc, []string{"1.1.1"}, ctx,
				analyzerapi.IssueOptions{},
			))
		}
	}
	return issues
}

func isImageLike(n *domparse.Node) bool {
	if n.Tag == "img" {
		return true
	}
	role, ok := n.Attr("role")
	return ok && role == "img"
}

func hasAccessibleText(n *domparse.Node) bool {
	if alt, ok := n.Attr("alt"); ok && alt != "" {
		return true
	}
	if label, ok := n.Attr("aria-label"); ok && label != "" {
		return true
	}
	if _, ok := n.Attr("aria-labelledby"); ok {
		return true
	}
	return false
}
