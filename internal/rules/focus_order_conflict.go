package rules

import (
	"github.com/conneroisu/a11yscan/internal/analyzerapi"
	"github.com/conneroisu/a11yscan/internal/docmodel"
	"github.com/conneroisu/a11yscan/internal/elementctx"
	"github.com/conneroisu/a11yscan/internal/source"
)

// focusOrderConflict flags positive tabindex usage and duplicate positive
// tabindex values (spec §4.5.4).
type focusOrderConflict struct{}

// NewFocusOrderConflict builds the focus-order-conflict pass.
func NewFocusOrderConflict() analyzerapi.Pass { return focusOrderConflict{} }

func (focusOrderConflict) Name() string                    { return "focus-order-conflict" }
func (focusOrderConflict) Description() string             { return "positive tabindex usage and collisions" }
func (focusOrderConflict) RequiresDocument() bool           { return true }
func (focusOrderConflict) TeleratesFile() bool              { return false }
func (focusOrderConflict) Framework() analyzerapi.Framework { return analyzerapi.FrameworkNone }

func (p focusOrderConflict) Analyze(ctx analyzerapi.Context) []analyzerapi.Issue {
	doc := ctx.Document
	var issues []analyzerapi.Issue

	byValue := make(map[int][]docmodel.ElementRef)
	for _, ref := range doc.Elements() {
		node := doc.Element(ref)
		if node == nil {
			continue
		}
		v, ok := elementctx.PositiveTabIndex(node)
		if !ok {
			continue
		}
		byValue[v] = append(byValue[v], ref)
		issues = append(issues, analyzerapi.CreateIssue(
			"positive-tabindex", analyzerapi.SeverityWarning,
			"element uses a positive tabindex, which can produce a confusing focus order",
			node.Loc, []string{"2.4.3"}, ctx,
			analyzerapi.IssueOptions{},
		))
	}

	for _, refs := range byValue {
		if len(refs) < 2 {
			continue
		}
		for i, ref := range refs {
			node := doc.Element(ref)
			if node == nil {
				continue
			}
			var relatedLocs []source.Location
			for j, other := range refs {
				if j == i {
					continue
				}
				if otherNode := doc.Element(other); otherNode != nil {
					relatedLocs = append(relatedLocs, otherNode.Loc)
				}
			}
			issues = append(issues, analyzerapi.CreateIssue(
				"duplicate-tabindex", analyzerapi.SeverityError,
				"multiple elements share the same positive tabindex",
				node.Loc, []string{"2.4.3"}, ctx,
				analyzerapi.IssueOptions{RelatedLocations: relatedLocs},
			))
		}
	}
	return issues
}
