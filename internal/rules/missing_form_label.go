package rules

import (
	"github.com/conneroisu/a11yscan/internal/analyzerapi"
	"github.com/conneroisu/a11yscan/internal/docmodel"
)

var formControlTags = map[string]bool{"input": true, "select": true, "textarea": true}

// missingFormLabel flags form controls with no associated label, explicit
// aria-label, or aria-labelledby (SPEC_FULL.md supplement, WCAG 1.3.1,
// 4.1.2).
type missingFormLabel struct{}

// NewMissingFormLabel builds the missing-form-label pass.
func NewMissingFormLabel() analyzerapi.Pass { return missingFormLabel{} }

func (missingFormLabel) Name() string                    { return "missing-form-label" }
func (missingFormLabel) Description() string             { return "form control has no accessible label" }
func (missingFormLabel) RequiresDocument() bool           { return true }
func (missingFormLabel) TeleratesFile() bool              { return false }
func (missingFormLabel) Framework() analyzerapi.Framework { return analyzerapi.FrameworkNone }

func (p missingFormLabel) Analyze(ctx analyzerapi.Context) []analyzerapi.Issue {
	doc := ctx.Document
	labeledFor := collectLabelForTargets(doc)

	var issues []analyzerapi.Issue
	for _, ref := range doc.Elements() {
		node := doc.Element(ref)
		if node == nil || !formControlTags[node.Tag] {
			continue
		}
		if t, ok := node.Attr("type"); ok && (t == "hidden" || t == "submit" || t == "button") {
			continue
		}
		if hasAccessibleText(node) {
			continue
		}
		if id, ok := node.Attr("id"); ok && id != "" && labeledFor[id] {
			continue
		}
		issues = append(issues, analyzerapi.CreateIssue(
			"missing-form-label", analyzerapi.SeverityError,
			"form control has no associated <label>, aria-label, or aria-labelledby",
			node.Loc, []string{"1.3.1", "4.1.2"}, ctx,
			analyzerapi.IssueOptions{},
		))
	}
	return issues
}

func collectLabelForTargets(doc *docmodel.DocumentModel) map[string]bool {
	out := make(map[string]bool)
	for _, frag := range doc.Fragments {
		for _, n := range frag.Elements() {
			if n.Tag != "label" {
				continue
			}
			if forID, ok := n.Attr("for"); ok && forID != "" {
				out[forID] = true
			}
		}
	}
	return out
}
