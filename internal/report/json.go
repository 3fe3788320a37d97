package report

import (
	"encoding/json"

	"github.com/conneroisu/a11yscan/internal/analyzerapi"
	"github.com/conneroisu/a11yscan/internal/source"
)

// jsonIssue is the wire shape for one Issue; kept separate from
// analyzerapi.Issue so the JSON contract can evolve independently of the
// in-process struct.
type jsonIssue struct {
	Kind             string             `json:"kind"`
	Severity         string             `json:"severity"`
	PrimaryLocation  jsonLocation       `json:"location"`
	RelatedLocations []jsonLocation     `json:"relatedLocations,omitempty"`
	Message          string             `json:"message"`
	WCAGCriteria     []string           `json:"wcagCriteria,omitempty"`
	Confidence       jsonConfidence     `json:"confidence"`
	Fix              *jsonFix           `json:"fix,omitempty"`
}

type jsonLocation struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

type jsonConfidence struct {
	Level   string  `json:"level"`
	Numeric float64 `json:"numeric"`
	Reason  string  `json:"reason"`
	Scope   string  `json:"scope"`
}

type jsonFix struct {
	Description        string       `json:"description"`
	ReplacementSnippet string       `json:"replacementSnippet"`
	TargetLocation     jsonLocation `json:"targetLocation"`
}

func toJSONLocation(l source.Location) jsonLocation {
	return jsonLocation{File: l.File, Line: l.Line, Column: l.Column}
}

// RenderJSON marshals issues as an indented JSON array.
func RenderJSON(issues []analyzerapi.Issue) (string, error) {
	out := make([]jsonIssue, len(issues))
	for i, iss := range issues {
		ji := jsonIssue{
			Kind:            iss.Kind,
			Severity:        string(iss.Severity),
			PrimaryLocation: toJSONLocation(iss.PrimaryLocation),
			Message:         iss.Message,
			WCAGCriteria:    iss.WCAGCriteria,
			Confidence: jsonConfidence{
				Level:   string(iss.Confidence.Level),
				Numeric: iss.Confidence.Numeric,
				Reason:  iss.Confidence.Reason,
				Scope:   string(iss.Confidence.AnalysisScope),
			},
		}
		for _, rl := range iss.RelatedLocations {
			ji.RelatedLocations = append(ji.RelatedLocations, toJSONLocation(rl))
		}
		if iss.Fix != nil {
			ji.Fix = &jsonFix{
				Description:        iss.Fix.Description,
				ReplacementSnippet: iss.Fix.ReplacementSnippet,
				TargetLocation:     toJSONLocation(iss.Fix.TargetLocation),
			}
		}
		out[i] = ji
	}
	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}
