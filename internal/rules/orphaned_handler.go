package rules

import (
	"github.com/conneroisu/a11yscan/internal/actionparse"
	"github.com/conneroisu/a11yscan/internal/analyzerapi"
	"github.com/conneroisu/a11yscan/internal/docmodel"
)

// orphanedHandler flags event-handler registrations whose target
// descriptor resolves to zero elements, excluding whitelisted globals
// (spec §4.5.2).
type orphanedHandler struct{}

// NewOrphanedHandler builds the orphaned-handler pass.
func NewOrphanedHandler() analyzerapi.Pass { return orphanedHandler{} }

func (orphanedHandler) Name() string                    { return "orphaned-handler" }
func (orphanedHandler) Description() string             { return "event handler registration targets no element" }
func (orphanedHandler) RequiresDocument() bool           { return true }
func (orphanedHandler) TeleratesFile() bool              { return false }
func (orphanedHandler) Framework() analyzerapi.Framework { return analyzerapi.FrameworkNone }

func (p orphanedHandler) Analyze(ctx analyzerapi.Context) []analyzerapi.Issue {
	doc := ctx.Document
	var issues []analyzerapi.Issue
	for mi, am := range doc.ActionModels {
		for ai, a := range am.Actions {
			if a.Kind != actionparse.KindEventHandlerRegistration {
				continue
			}
			res, ok := doc.Resolutions[docmodel.ActionRef{ModelIndex: mi, ActionIndex: ai}]
			if !ok || res.Global || len(res.Elements) > 0 {
				continue
			}
			issues = append(issues, analyzerapi.CreateIssue(
				"orphaned-handler", analyzerapi.SeverityError,
				"event handler registration's target resolves to no element",
				a.Loc, []string{"4.1.2"}, ctx,
				analyzerapi.IssueOptions{},
			))
		}
	}
	return issues
}
