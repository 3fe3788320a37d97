package analyzerapi

import (
	"context"
	"fmt"
	"sort"

	"github.com/conneroisu/a11yscan/internal/actionparse"
	"github.com/conneroisu/a11yscan/internal/aerrors"
	"github.com/conneroisu/a11yscan/internal/docmodel"
	"github.com/conneroisu/a11yscan/internal/logging"
	"github.com/conneroisu/a11yscan/internal/source"
)

// Orchestrator registers passes and runs them over a Context, producing
// a deterministic, deduplicated issue list (spec §4.4.4).
type Orchestrator struct {
	passes []Pass
	logger logging.Logger
}

// NewOrchestrator builds an Orchestrator. logger may be nil, in which
// case a no-op logger is used.
func NewOrchestrator(logger logging.Logger) *Orchestrator {
	if logger == nil {
		logger = logging.NewTestLogger()
	}
	return &Orchestrator{logger: logger.WithComponent("analyzerapi")}
}

// Register adds a pass to the orchestrator's registry.
func (o *Orchestrator) Register(p Pass) {
	o.passes = append(o.passes, p)
}

// Passes returns the registered passes, in registration order.
func (o *Orchestrator) Passes() []Pass {
	return append([]Pass(nil), o.passes...)
}

// Run dispatches every registered pass whose declared requirements are
// satisfied against doc (may be nil) and/or fileModel (the file-scope
// fallback used when no full document is available), collects, dedups,
// and stably sorts the resulting issues (spec §4.4.4 steps 1-5).
func (o *Orchestrator) Run(ctx context.Context, doc *docmodel.DocumentModel, fileModel *actionparse.ActionLanguageModel, scope source.Scope) []Issue {
	runCtx := Context{Document: doc, FileModel: fileModel, Scope: scope}
	if doc != nil {
		runCtx.Scope = doc.Scope
	}

	var all []Issue
	for _, p := range o.passes {
		if p.RequiresDocument() && runCtx.Document == nil {
			continue
		}
		if runCtx.Document == nil && runCtx.FileModel != nil && !p.TeleratesFile() {
			continue
		}
		all = append(all, o.runOne(ctx, p, runCtx)...)
	}

	deduped := dedupe(all)
	sort.SliceStable(deduped, func(i, j int) bool {
		a, b := deduped[i], deduped[j]
		if a.PrimaryLocation.File != b.PrimaryLocation.File {
			return a.PrimaryLocation.File < b.PrimaryLocation.File
		}
		if a.PrimaryLocation.Line != b.PrimaryLocation.Line {
			return a.PrimaryLocation.Line < b.PrimaryLocation.Line
		}
		if a.PrimaryLocation.Column != b.PrimaryLocation.Column {
			return a.PrimaryLocation.Column < b.PrimaryLocation.Column
		}
		return a.Kind < b.Kind
	})
	return deduped
}

// runOne invokes one pass, recovering any panic into an
// analyzer-internal-error issue (spec §7, §4.4.4) instead of letting it
// abort the whole run.
func (o *Orchestrator) runOne(ctx context.Context, p Pass, runCtx Context) (issues []Issue) {
	defer func() {
		if r := recover(); r != nil {
			err := aerrors.NewRuleError(aerrors.ErrCodePassPanic, fmt.Sprintf("pass %q panicked", p.Name()), fmt.Errorf("%v", r))
			o.logger.Error(ctx, err, "pass panicked", "pass", p.Name())
			issues = []Issue{{
				Kind:     "analyzer-internal-error",
				Severity: SeverityError,
				Message:  fmt.Sprintf("pass %q failed: %v", p.Name(), r),
				Confidence: Confidence{
					Level:   LevelLow,
					Numeric: 0,
					Reason:  "pass execution failed",
				},
			}}
		}
	}()
	return p.Analyze(runCtx)
}

func dedupe(issues []Issue) []Issue {
	type key struct {
		kind string
		loc  string
		msg  string
	}
	seen := make(map[key]bool, len(issues))
	out := make([]Issue, 0, len(issues))
	for _, iss := range issues {
		k := key{
			kind: iss.Kind,
			loc:  fmt.Sprintf("%s:%d:%d", iss.PrimaryLocation.File, iss.PrimaryLocation.Line, iss.PrimaryLocation.Column),
			msg:  iss.Message,
		}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, iss)
	}
	return out
}
