package report

import (
	"fmt"
	"strings"

	"github.com/conneroisu/a11yscan/internal/analyzerapi"
)

// RenderConsole renders issues as plain, human-readable lines grouped by
// severity, for direct terminal output.
func RenderConsole(issues []analyzerapi.Issue) string {
	if len(issues) == 0 {
		return "No accessibility issues found.\n"
	}
	var b strings.Builder
	counts := map[analyzerapi.Severity]int{}
	for _, iss := range issues {
		counts[iss.Severity]++
		loc := fmt.Sprintf("%s:%d:%d", iss.PrimaryLocation.File, iss.PrimaryLocation.Line, iss.PrimaryLocation.Column)
		fmt.Fprintf(&b, "[%s] %s %s — %s (confidence: %s %.2f)\n",
			strings.ToUpper(string(iss.Severity)), loc, iss.Kind, iss.Message, iss.Confidence.Level, iss.Confidence.Numeric)
		if len(iss.WCAGCriteria) > 0 {
			fmt.Fprintf(&b, "    WCAG: %s\n", strings.Join(iss.WCAGCriteria, ", "))
		}
		for _, rl := range iss.RelatedLocations {
			fmt.Fprintf(&b, "    related: %s:%d:%d\n", rl.File, rl.Line, rl.Column)
		}
		if iss.Fix != nil {
			fmt.Fprintf(&b, "    suggested fix: %s\n", iss.Fix.Description)
		}
	}
	fmt.Fprintf(&b, "\n%d error(s), %d warning(s), %d info\n", counts[analyzerapi.SeverityError], counts[analyzerapi.SeverityWarning], counts[analyzerapi.SeverityInfo])
	return b.String()
}
