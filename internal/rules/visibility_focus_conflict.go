package rules

import (
	"github.com/conneroisu/a11yscan/internal/analyzerapi"
	"github.com/conneroisu/a11yscan/internal/elementctx"
	"github.com/conneroisu/a11yscan/internal/source"
)

// visibilityFocusConflict flags focusable elements hidden via aria-hidden
// or a CSS hiding rule (spec §4.5.5).
type visibilityFocusConflict struct{}

// NewVisibilityFocusConflict builds the visibility/focus-conflict pass.
func NewVisibilityFocusConflict() analyzerapi.Pass { return visibilityFocusConflict{} }

func (visibilityFocusConflict) Name() string { return "visibility-focus-conflict" }
func (visibilityFocusConflict) Description() string {
	return "focusable element hidden from sighted or assistive presentation"
}
func (visibilityFocusConflict) RequiresDocument() bool           { return true }
func (visibilityFocusConflict) TeleratesFile() bool              { return false }
func (visibilityFocusConflict) Framework() analyzerapi.Framework { return analyzerapi.FrameworkNone }

func (p visibilityFocusConflict) Analyze(ctx analyzerapi.Context) []analyzerapi.Issue {
	doc := ctx.Document
	var issues []analyzerapi.Issue
	for _, ref := range doc.Elements() {
		node := doc.Element(ref)
		if node == nil {
			continue
		}
		ec := elementctx.Compute(doc, ref)
		if ec == nil || !ec.Focusable {
			continue
		}

		if ariaHidden, ok := node.Attr("aria-hidden"); ok && !node.IsDynamicAttr("aria-hidden") && ariaHidden == "true" {
			issues = append(issues, analyzerapi.CreateIssue(
				"aria-hidden-focusable", analyzerapi.SeverityError,
				"focusable element is hidden from assistive technology via aria-hidden",
				node.Loc, []string{"4.1.2"}, ctx,
				analyzerapi.IssueOptions{ElementContext: summarize(node, ec)},
			))
			continue
		}

		hidingLoc, found := findHidingRule(ec)
		if !found {
			continue
		}
		issues = append(issues, analyzerapi.CreateIssue(
			"css-hidden-focusable", analyzerapi.SeverityError,
			"focusable element is hidden by a CSS rule",
			node.Loc, []string{"2.4.7"}, ctx,
			analyzerapi.IssueOptions{
				ElementContext:   summarize(node, ec),
				RelatedLocations: []source.Location{hidingLoc},
			},
		))
	}
	return issues
}

func findHidingRule(ec *elementctx.Context) (source.Location, bool) {
	for _, rule := range ec.CssRules {
		for _, decl := range rule.Declarations {
			if elementctx.HidingDeclaration(decl) {
				return rule.Loc, true
			}
		}
		if elementctx.IsOffscreenPositioned(rule.Declarations) {
			return rule.Loc, true
		}
	}
	return source.Location{}, false
}
