package report

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/a11yscan/internal/analyzerapi"
	"github.com/conneroisu/a11yscan/internal/source"
)

func sampleIssue() analyzerapi.Issue {
	return analyzerapi.Issue{
		Kind:            "missing-alt-text",
		Severity:        analyzerapi.SeverityError,
		PrimaryLocation: source.Location{File: "index.html", Line: 4, Column: 2},
		Message:         "image missing alt text",
		WCAGCriteria:    []string{"1.1.1"},
		Confidence: analyzerapi.Confidence{
			Level:         analyzerapi.LevelHigh,
			Numeric:       1.0,
			Reason:        "full document model with element context",
			AnalysisScope: source.ScopeWorkspace,
		},
	}
}

func TestRender_DispatchesByFormat(t *testing.T) {
	issues := []analyzerapi.Issue{sampleIssue()}

	out, err := Render(FormatJSON, issues)
	require.NoError(t, err)
	assert.Contains(t, out, `"kind": "missing-alt-text"`)

	out, err = Render(FormatMarkdown, issues)
	require.NoError(t, err)
	assert.Contains(t, out, "| error |")

	out, err = Render(FormatConsole, issues)
	require.NoError(t, err)
	assert.Contains(t, out, "[ERROR]")

	out, err = Render("", issues)
	require.NoError(t, err)
	assert.Contains(t, out, "[ERROR]")
}

func TestRender_UnsupportedFormat(t *testing.T) {
	_, err := Render(Format("xml"), nil)
	require.Error(t, err)
	var unsupported *UnsupportedFormatError
	assert.ErrorAs(t, err, &unsupported)
	assert.Contains(t, err.Error(), "xml")
}

func TestRenderJSON_RoundTrips(t *testing.T) {
	out, err := RenderJSON([]analyzerapi.Issue{sampleIssue()})
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "missing-alt-text", decoded[0]["kind"])
}

func TestRenderMarkdown_EmptyIssues(t *testing.T) {
	assert.Equal(t, "No accessibility issues found.\n", RenderMarkdown(nil))
}

func TestRenderMarkdown_EscapesPipes(t *testing.T) {
	iss := sampleIssue()
	iss.Message = "value | contains pipe"
	out := RenderMarkdown([]analyzerapi.Issue{iss})
	assert.Contains(t, out, `value \| contains pipe`)
}

func TestRenderConsole_EmptyIssues(t *testing.T) {
	assert.Equal(t, "No accessibility issues found.\n", RenderConsole(nil))
}

func TestRenderConsole_CountsBySeverity(t *testing.T) {
	errIssue := sampleIssue()
	warnIssue := sampleIssue()
	warnIssue.Severity = analyzerapi.SeverityWarning

	out := RenderConsole([]analyzerapi.Issue{errIssue, warnIssue})
	assert.Contains(t, out, "1 error(s), 1 warning(s), 0 info")
}

func TestRenderConsole_IncludesFixAndRelated(t *testing.T) {
	iss := sampleIssue()
	iss.Fix = &analyzerapi.Fix{Description: "add alt text"}
	iss.RelatedLocations = []source.Location{{File: "index.html", Line: 10}}

	out := RenderConsole([]analyzerapi.Issue{iss})
	assert.Contains(t, out, "suggested fix: add alt text")
	assert.Contains(t, out, "related: index.html:10:0")
}
