package rules

import (
	"github.com/conneroisu/a11yscan/internal/analyzerapi"
	"github.com/conneroisu/a11yscan/internal/domparse"
	"github.com/conneroisu/a11yscan/internal/elementctx"
)

// summarize clones the fields of an elementctx.Context an Issue is allowed
// to carry forward (spec §3.2: issues hold values, never live model
// references).
func summarize(node *domparse.Node, ec *elementctx.Context) *analyzerapi.ElementSummary {
	if node == nil || ec == nil {
		return nil
	}
	id, _ := node.Attr("id")
	return &analyzerapi.ElementSummary{
		Tag:                node.Tag,
		ID:                 id,
		Interactive:        ec.Interactive,
		Focusable:          ec.Focusable,
		HasClickHandler:    ec.HasClickHandler,
		HasKeyboardHandler: ec.HasKeyboardHandler,
	}
}
