package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/a11yscan/internal/analyzerapi"
	"github.com/conneroisu/a11yscan/internal/source"
)

func TestOrphanedHandler_FlagsTargetWithNoMatchingElement(t *testing.T) {
	doc := buildDoc(t, `<div id="present"></div>`,
		`document.getElementById('missing').addEventListener('click', onClick);`, "")

	p := NewOrphanedHandler()
	ctx := analyzerapi.Context{Document: doc, Scope: source.ScopeWorkspace}
	issues := p.Analyze(ctx)

	require.Len(t, issues, 1)
	assert.Equal(t, "orphaned-handler", issues[0].Kind)
}

func TestOrphanedHandler_NoIssueWhenTargetResolves(t *testing.T) {
	doc := buildDoc(t, `<div id="present"></div>`,
		`document.getElementById('present').addEventListener('click', onClick);`, "")

	p := NewOrphanedHandler()
	ctx := analyzerapi.Context{Document: doc, Scope: source.ScopeWorkspace}
	assert.Empty(t, p.Analyze(ctx))
}

func TestOrphanedHandler_NoIssueForGlobalTarget(t *testing.T) {
	doc := buildDoc(t, ``, `document.addEventListener('click', onClick);`, "")

	p := NewOrphanedHandler()
	ctx := analyzerapi.Context{Document: doc, Scope: source.ScopeWorkspace}
	assert.Empty(t, p.Analyze(ctx))
}

func TestOrphanedHandler_RequiresDocumentAndDoesNotTolerateFileScope(t *testing.T) {
	p := NewOrphanedHandler()
	assert.True(t, p.RequiresDocument())
	assert.False(t, p.TeleratesFile())
}
