package report

import (
	"fmt"
	"strings"

	"github.com/conneroisu/a11yscan/internal/analyzerapi"
)

// RenderMarkdown renders issues as a Markdown table.
func RenderMarkdown(issues []analyzerapi.Issue) string {
	var b strings.Builder
	if len(issues) == 0 {
		b.WriteString("No accessibility issues found.\n")
		return b.String()
	}
	b.WriteString("| Severity | Kind | Location | Confidence | WCAG | Message |\n")
	b.WriteString("|---|---|---|---|---|---|\n")
	for _, iss := range issues {
		loc := fmt.Sprintf("%s:%d:%d", iss.PrimaryLocation.File, iss.PrimaryLocation.Line, iss.PrimaryLocation.Column)
		wcag := strings.Join(iss.WCAGCriteria, ", ")
		fmt.Fprintf(&b, "| %s | %s | %s | %s (%.2f) | %s | %s |\n",
			iss.Severity, iss.Kind, loc, iss.Confidence.Level, iss.Confidence.Numeric, wcag, escapeMarkdown(iss.Message))
	}
	return b.String()
}

func escapeMarkdown(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
