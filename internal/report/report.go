// Package report renders an analyzer run's issue list in the formats the
// CLI exposes (spec §6, SPEC_FULL.md "[AMBIENT] CLI and reporters").
// Every renderer here is a pure function of []analyzerapi.Issue — it
// never reaches back into the DocumentModel (spec §3.2: "issues outlive
// the model in the reporter boundary").
package report

import "github.com/conneroisu/a11yscan/internal/analyzerapi"

// Format names a supported report renderer.
type Format string

const (
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatConsole  Format = "console"
)

// Render dispatches to the renderer named by format.
func Render(format Format, issues []analyzerapi.Issue) (string, error) {
	switch format {
	case FormatJSON:
		return RenderJSON(issues)
	case FormatMarkdown:
		return RenderMarkdown(issues), nil
	case FormatConsole, "":
		return RenderConsole(issues), nil
	default:
		return "", &UnsupportedFormatError{Format: string(format)}
	}
}

// UnsupportedFormatError is returned by Render for an unrecognized format.
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return "report: unsupported format " + e.Format
}
