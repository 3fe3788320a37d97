package rules

import "github.com/conneroisu/a11yscan/internal/analyzerapi"

// All returns every built-in pass, in a stable order: the five
// representative passes from spec §4.5, then the five supplement passes
// (SPEC_FULL.md "[SUPPLEMENT] Additional analyzer rules").
func All() []analyzerapi.Pass {
	return []analyzerapi.Pass{
		NewMouseOnlyClick(),
		NewOrphanedHandler(),
		NewMissingARIAConnection(),
		NewFocusOrderConflict(),
		NewVisibilityFocusConflict(),

		NewMissingAltText(),
		NewMissingFormLabel(),
		NewMissingLangAttribute(),
		NewDuplicateID(),
		NewMissingButtonText(),
	}
}

// RegisterAll registers every built-in pass with o.
func RegisterAll(o *analyzerapi.Orchestrator) {
	for _, p := range All() {
		o.Register(p)
	}
}
