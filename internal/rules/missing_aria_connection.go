package rules

import (
	"strings"

	"github.com/conneroisu/a11yscan/internal/analyzerapi"
)

var ariaReferenceAttrs = []string{
	"aria-labelledby", "aria-describedby", "aria-controls", "aria-owns", "aria-activedescendant",
}

// missingARIAConnection flags ARIA id-reference attributes whose id
// tokens don't resolve against the global id index (spec §4.5.3).
type missingARIAConnection struct{}

// NewMissingARIAConnection builds the missing-aria-connection pass.
func NewMissingARIAConnection() analyzerapi.Pass { return missingARIAConnection{} }

func (missingARIAConnection) Name() string        { return "missing-aria-connection" }
func (missingARIAConnection) Description() string { return "ARIA id-reference points to a nonexistent element" }
func (missingARIAConnection) RequiresDocument() bool           { return true }
func (missingARIAConnection) TeleratesFile() bool              { return false }
func (missingARIAConnection) Framework() analyzerapi.Framework { return analyzerapi.FrameworkNone }

func (p missingARIAConnection) Analyze(ctx analyzerapi.Context) []analyzerapi.Issue {
	doc := ctx.Document
	var issues []analyzerapi.Issue
	for _, ref := range doc.Elements() {
		node := doc.Element(ref)
		if node == nil {
			continue
		}
		for _, attr := range ariaReferenceAttrs {
			val, ok := node.Attr(attr)
			if !ok || val == "" || node.IsDynamicAttr(attr) {
				continue
			}
			for _, tok := range strings.Fields(val) {
				if _, found := doc.GlobalIDIndex[tok]; found {
					continue
				}
				issues = append(issues, analyzerapi.CreateIssue(
					"missing-aria-connection", analyzerapi.SeverityError,
					attr+" references id \""+tok+"\" which does not exist",
					node.Loc, []string{"1.3.1", "4.1.2"}, ctx,
					analyzerapi.IssueOptions{},
				))
			}
		}
	}
	return issues
}
