// Package rules implements Component E (spec §4.5): the representative
// rule set plus its supplement, every one an ordinary analyzerapi.Pass.
package rules

import (
	"github.com/conneroisu/a11yscan/internal/actionparse"
	"github.com/conneroisu/a11yscan/internal/analyzerapi"
	"github.com/conneroisu/a11yscan/internal/elementctx"
)

var naturallyClickOK = map[string]bool{"button": true, "summary": true}

var keyboardEventTypes = map[string]bool{"keydown": true, "keypress": true, "keyup": true}

// mouseOnlyClick flags elements with a click handler but no keyboard
// handler and no natural keyboard activation (spec §4.5.1).
type mouseOnlyClick struct{}

// NewMouseOnlyClick builds the mouse-only-click pass.
func NewMouseOnlyClick() analyzerapi.Pass { return mouseOnlyClick{} }

func (mouseOnlyClick) Name() string                     { return "mouse-only-click" }
func (mouseOnlyClick) Description() string              { return "click handler without an equivalent keyboard handler" }
func (mouseOnlyClick) RequiresDocument() bool            { return false }
func (mouseOnlyClick) TeleratesFile() bool               { return true }
func (mouseOnlyClick) Framework() analyzerapi.Framework  { return analyzerapi.FrameworkNone }

func (p mouseOnlyClick) Analyze(ctx analyzerapi.Context) []analyzerapi.Issue {
	if ctx.HasDocument() {
		return p.analyzeDocument(ctx)
	}
	if ctx.FileModel != nil {
		return p.analyzeFile(ctx)
	}
	return nil
}

func (p mouseOnlyClick) analyzeDocument(ctx analyzerapi.Context) []analyzerapi.Issue {
	doc := ctx.Document
	var issues []analyzerapi.Issue
	for _, ref := range doc.Elements() {
		node := doc.Element(ref)
		if node == nil {
			continue
		}
		ec := elementctx.Compute(doc, ref)
		if ec == nil || !ec.HasClickHandler || ec.HasKeyboardHandler {
			continue
		}
		if naturallyClickOK[node.Tag] {
			continue
		}
		if node.Tag == "a" {
			if _, ok := node.Attr("href"); ok {
				continue
			}
		}
		issues = append(issues, analyzerapi.CreateIssue(
			"mouse-only-click", analyzerapi.SeverityWarning,
			"element has a click handler but no keyboard equivalent",
			node.Loc, []string{"2.1.1"}, ctx,
			analyzerapi.IssueOptions{ElementContext: summarize(node, ec)},
		))
	}
	return issues
}

func (p mouseOnlyClick) analyzeFile(ctx analyzerapi.Context) []analyzerapi.Issue {
	m := ctx.FileModel
	var issues []analyzerapi.Issue
	for _, a := range m.Actions {
		if a.Kind != actionparse.KindEventHandlerRegistration || a.EventType != "click" {
			continue
		}
		key := actionparse.TargetKey(a.Target)
		hasKeyboard := false
		for _, idx := range m.ByTargetKey[key] {
			other := m.Actions[idx]
			if other.Kind == actionparse.KindEventHandlerRegistration && keyboardEventTypes[other.EventType] {
				hasKeyboard = true
				break
			}
		}
		if hasKeyboard {
			continue
		}
		issues = append(issues, analyzerapi.CreateIssue(
			"mouse-only-click", analyzerapi.SeverityWarning,
			"click handler has no keyboard equivalent registered in this file; the companion handler may live elsewhere",
			a.Loc, []string{"2.1.1"}, ctx,
			analyzerapi.IssueOptions{},
		))
	}
	return issues
}
