package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/a11yscan/internal/analyzerapi"
	"github.com/conneroisu/a11yscan/internal/source"
)

func TestVisibilityFocusConflict_FlagsCSSHiddenFocusable(t *testing.T) {
	doc := buildDoc(t, `<button id="go" class="hidden">Go</button>`, "", `.hidden { display: none; }`)

	p := NewVisibilityFocusConflict()
	ctx := analyzerapi.Context{Document: doc, Scope: source.ScopeWorkspace}
	issues := p.Analyze(ctx)

	require.Len(t, issues, 1)
	assert.Equal(t, "css-hidden-focusable", issues[0].Kind)
	require.Len(t, issues[0].RelatedLocations, 1)
}

func TestVisibilityFocusConflict_FlagsAriaHiddenFocusable(t *testing.T) {
	doc := buildDoc(t, `<button id="go" aria-hidden="true">Go</button>`, "", "")

	p := NewVisibilityFocusConflict()
	ctx := analyzerapi.Context{Document: doc, Scope: source.ScopeWorkspace}
	issues := p.Analyze(ctx)

	require.Len(t, issues, 1)
	assert.Equal(t, "aria-hidden-focusable", issues[0].Kind)
}

func TestVisibilityFocusConflict_VisibleFocusableNoIssue(t *testing.T) {
	doc := buildDoc(t, `<button id="go">Go</button>`, "", "")

	p := NewVisibilityFocusConflict()
	ctx := analyzerapi.Context{Document: doc, Scope: source.ScopeWorkspace}
	assert.Empty(t, p.Analyze(ctx))
}

func TestVisibilityFocusConflict_NonFocusableHiddenElementNoIssue(t *testing.T) {
	doc := buildDoc(t, `<div id="box" class="hidden"></div>`, "", `.hidden { display: none; }`)

	p := NewVisibilityFocusConflict()
	ctx := analyzerapi.Context{Document: doc, Scope: source.ScopeWorkspace}
	assert.Empty(t, p.Analyze(ctx))
}
