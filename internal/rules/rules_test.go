package rules

import (
	"testing"

	"github.com/conneroisu/a11yscan/internal/diag"
	"github.com/conneroisu/a11yscan/internal/docmodel"
	"github.com/conneroisu/a11yscan/internal/source"
)

// buildDoc assembles a DocumentModel from HTML/JS/CSS source strings, the
// same helper shape used across internal/docmodel and internal/elementctx
// tests.
func buildDoc(t *testing.T, html, js, css string) *docmodel.DocumentModel {
	t.Helper()
	var diags diag.Collector
	coll := source.Collection{}
	if html != "" {
		coll.HTMLSources = []source.File{{Path: "index.html", Content: html}}
	}
	if js != "" {
		coll.JSSources = []source.File{{Path: "app.js", Content: js}}
	}
	if css != "" {
		coll.CSSSources = []source.File{{Path: "style.css", Content: css}}
	}
	return docmodel.Build(coll, &diags)
}
