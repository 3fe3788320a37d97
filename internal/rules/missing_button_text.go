package rules

import (
	"strings"

	"github.com/conneroisu/a11yscan/internal/analyzerapi"
	"github.com/conneroisu/a11yscan/internal/domparse"
)

// missingButtonText flags buttons with no discoverable accessible name:
// no text content, aria-label, or aria-labelledby (SPEC_FULL.md
// supplement, WCAG 4.1.2, 2.4.6).
type missingButtonText struct{}

// NewMissingButtonText builds the missing-button-text pass.
func NewMissingButtonText() analyzerapi.Pass { return missingButtonText{} }

func (missingButtonText) Name() string                    { return "missing-button-text" }
func (missingButtonText) Description() string             { return "button has no accessible name" }
func (missingButtonText) RequiresDocument() bool           { return false }
func (missingButtonText) TeleratesFile() bool              { return false }
func (missingButtonText) Framework() analyzerapi.Framework { return analyzerapi.FrameworkNone }

func (p missingButtonText) Analyze(ctx analyzerapi.Context) []analyzerapi.Issue {
	if !ctx.HasDocument() {
		return nil
	}
	doc := ctx.Document
	var issues []analyzerapi.Issue
	for _, frag := range doc.Fragments {
		for _, n := range frag.Elements() {
			if !isButtonLike(n) {
				continue
			}
			if hasAccessibleText(n) {
				continue
			}
			if hasNonEmptyTextContent(frag, n) {
				continue
			}
			issues = append(issues, analyzerapi.CreateIssue(
				"missing-button-text", analyzerapi.SeverityError,
				"button has no text content, aria-label, or aria-labelledby",
				n.Loc, []string{"4.1.2", "2.4.6"}, ctx,
				analyzerapi.IssueOptions{},
			))
		}
	}
	return issues
}

func isButtonLike(n *domparse.Node) bool {
	if n.Tag == "button" {
		return true
	}
	role, ok := n.Attr("role")
	return ok && role == "button"
}

func hasNonEmptyTextContent(frag *domparse.Fragment, n *domparse.Node) bool {
	for _, c := range frag.Children(n.ID) {
		if c.Kind == domparse.KindText && strings.TrimSpace(c.Text) != "" {
			return true
		}
		if c.Kind == domparse.KindElement && hasNonEmptyTextContent(frag, c) {
			return true
		}
	}
	return false
}
