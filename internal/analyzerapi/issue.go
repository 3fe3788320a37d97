// Package analyzerapi defines the pass contract, the Issue/Confidence
// value types, and the orchestrator for Component D (spec §4.4): a
// uniform surface rule packages implement against, and a single place
// confidence and deduplication are computed so no individual rule has to.
package analyzerapi

import (
	"github.com/conneroisu/a11yscan/internal/actionparse"
	"github.com/conneroisu/a11yscan/internal/docmodel"
	"github.com/conneroisu/a11yscan/internal/guidance"
	"github.com/conneroisu/a11yscan/internal/source"
)

// Severity is an Issue's urgency bucket (spec §3.1).
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Level is Confidence's human-facing bucket, always re-derived from
// Numeric (SPEC_FULL.md Open Question decision #2) so the two fields
// never drift apart.
type Level string

const (
	LevelHigh   Level = "HIGH"
	LevelMedium Level = "MEDIUM"
	LevelLow    Level = "LOW"
)

// levelFromNumeric is the pure mapping function decision #2 requires.
func levelFromNumeric(n float64) Level {
	switch {
	case n >= 0.9:
		return LevelHigh
	case n >= 0.6:
		return LevelMedium
	default:
		return LevelLow
	}
}

// Confidence is the scoring attached to every Issue (spec §3.1, §4.4.2).
type Confidence struct {
	Level         Level
	Numeric       float64
	Reason        string
	AnalysisScope source.Scope
}

// Fix is a purely advisory suggested edit (spec §3.1); the core never
// applies it.
type Fix struct {
	Description        string
	ReplacementSnippet string
	TargetLocation     source.Location
}

// ElementSummary is a cloned, value-only snapshot of an ElementContext
// attached to an Issue so the issue can outlive the DocumentModel (spec
// §3.2 "issues outlive the model in the reporter boundary").
type ElementSummary struct {
	Tag                string
	ID                 string
	Interactive        bool
	Focusable          bool
	HasClickHandler    bool
	HasKeyboardHandler bool
}

// Issue is one analyzer finding (spec §3.1).
type Issue struct {
	Kind             string
	Severity         Severity
	PrimaryLocation  source.Location
	RelatedLocations []source.Location
	Message          string
	WCAGCriteria     []string
	Confidence       Confidence
	ElementContext   *ElementSummary
	Fix              *Fix
}

// contextRequirement names what additional context a kind of issue
// benefits from, per §4.4.2's "mapping from issue kind to context
// requirement is a table, not code".
type contextRequirement int

const (
	reqNone contextRequirement = iota
	reqBody
	reqFullPage
	reqColor
	reqDimension
)

// contextRequirementsByKind is that table. Kinds not listed require no
// extra context beyond the base scope/document/element-context inputs.
var contextRequirementsByKind = map[string]contextRequirement{
	"missing-alt-text":       reqNone,
	"missing-form-label":     reqFullPage,
	"missing-lang-attribute": reqFullPage,
	"duplicate-id":           reqFullPage,
	"missing-button-text":    reqBody,
}

// IssueOptions carries createIssue's optional fields (spec §4.4.3).
type IssueOptions struct {
	RelatedLocations []source.Location
	ElementContext   *ElementSummary
	Fix              *Fix
}

// Context is what an analyzer pass runs against (spec §4.4.1): an
// optional DocumentModel, an optional single ActionLanguageModel for
// file-scope fallback, and the declared analysis scope.
type Context struct {
	Document    *docmodel.DocumentModel
	FileModel   *actionparse.ActionLanguageModel
	Scope       source.Scope
}

// HasDocument reports whether a full DocumentModel is present.
func (c Context) HasDocument() bool { return c.Document != nil }

// CreateIssue is the framework's centralized issue constructor (spec
// §4.4.2, §4.4.3): confidence is computed here, never inside a rule.
func CreateIssue(kind string, severity Severity, message string, loc source.Location, wcag []string, ctx Context, opts IssueOptions) Issue {
	hasElementCtx := opts.ElementContext != nil
	conf := computeConfidence(kind, ctx, hasElementCtx)

	fix := opts.Fix
	if fix == nil {
		if item, ok := guidance.Lookup(kind); ok {
			fix = &Fix{Description: item.Description, TargetLocation: loc}
		}
	}

	return Issue{
		Kind:             kind,
		Severity:         severity,
		PrimaryLocation:  loc,
		RelatedLocations: opts.RelatedLocations,
		Message:          message,
		WCAGCriteria:     wcag,
		Confidence:       conf,
		ElementContext:   opts.ElementContext,
		Fix:              fix,
	}
}

func computeConfidence(kind string, ctx Context, hasElementCtx bool) Confidence {
	var numeric float64
	var reason string

	switch {
	case ctx.HasDocument() && hasElementCtx:
		numeric = 1.0
		reason = "full document model with element context"
	case ctx.HasDocument():
		numeric = 0.9
		reason = "full document model, no element context available"
	case hasElementCtx:
		numeric = 0.8
		reason = "file scope with partial element context"
	case ctx.FileModel != nil:
		numeric = 0.5
		reason = "file scope only; document-wide context unavailable, companion handlers elsewhere are invisible"
	default:
		numeric = 0.4
		reason = "minimal context available"
	}

	if req, ok := contextRequirementsByKind[kind]; ok && req != reqNone && !ctx.HasDocument() {
		numeric -= 0.2
		if numeric < 0 {
			numeric = 0
		}
		reason += "; " + requirementReasonSuffix(req)
	}

	return Confidence{
		Level:         levelFromNumeric(numeric),
		Numeric:       numeric,
		Reason:        reason,
		AnalysisScope: ctx.Scope,
	}
}

func requirementReasonSuffix(req contextRequirement) string {
	switch req {
	case reqBody:
		return "missing body/text context"
	case reqFullPage:
		return "missing full-page context"
	case reqColor:
		return "missing computed color context"
	case reqDimension:
		return "missing computed dimension context"
	default:
		return "missing required context"
	}
}
