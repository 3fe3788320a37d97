package rules

import (
	"github.com/conneroisu/a11yscan/internal/analyzerapi"
)

// duplicateID surfaces the §4.2 step-4 model diagnostic (first id
// occurrence wins in the global index, duplicates get a diagnostic) as a
// first-class issue (SPEC_FULL.md supplement, WCAG 4.1.1).
type duplicateID struct{}

// NewDuplicateID builds the duplicate-id pass.
func NewDuplicateID() analyzerapi.Pass { return duplicateID{} }

func (duplicateID) Name() string                    { return "duplicate-id" }
func (duplicateID) Description() string             { return "same id attribute value used on more than one element" }
func (duplicateID) RequiresDocument() bool           { return true }
func (duplicateID) TeleratesFile() bool              { return false }
func (duplicateID) Framework() analyzerapi.Framework { return analyzerapi.FrameworkNone }

func (p duplicateID) Analyze(ctx analyzerapi.Context) []analyzerapi.Issue {
	doc := ctx.Document
	seen := make(map[string]bool)
	var issues []analyzerapi.Issue
	for _, frag := range doc.Fragments {
		for _, n := range frag.Elements() {
			id, ok := n.Attr("id")
			if !ok || id == "" || n.IsDynamicAttr("id") {
				continue
			}
			if !seen[id] {
				seen[id] = true
				continue
			}
			issues = append(issues, analyzerapi.CreateIssue(
				"duplicate-id", analyzerapi.SeverityError,
				"id \""+id+"\" is used on more than one element",
				n.Loc, []string{"4.1.1"}, ctx,
				analyzerapi.IssueOptions{},
			))
		}
	}
	return issues
}
