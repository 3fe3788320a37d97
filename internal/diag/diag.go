// Package diag holds the small record type every parser and the document
// model builder use to report input errors and model-invariant violations
// without aborting (spec §7): a Diagnostic is data, not a panic.
package diag

import (
	"fmt"

	"github.com/conneroisu/a11yscan/internal/source"
)

// Kind classifies a Diagnostic along the two axes spec §7 names.
type Kind string

const (
	// KindParseFailure marks a per-source parse failure (malformed
	// input); the source's contribution degrades to empty.
	KindParseFailure Kind = "parse-failure"
	// KindModelInvariant marks a detected but non-fatal invariant
	// violation (duplicate id, unresolvable binding, unsupported
	// selector grammar).
	KindModelInvariant Kind = "model-invariant"
)

// Diagnostic is one recorded failure or invariant violation.
type Diagnostic struct {
	Kind     Kind
	Message  string
	Location source.Location
	Cause    error
}

// Collector accumulates Diagnostics across a build; its zero value is
// ready to use.
type Collector struct {
	items []Diagnostic
}

// Add appends one diagnostic.
func (c *Collector) Add(d Diagnostic) {
	c.items = append(c.items, d)
}

// Parsef records a parse-failure diagnostic.
func (c *Collector) Parsef(loc source.Location, cause error, format string, args ...any) {
	c.Add(Diagnostic{Kind: KindParseFailure, Message: fmt.Sprintf(format, args...), Location: loc, Cause: cause})
}

// Invariant records a model-invariant diagnostic.
func (c *Collector) Invariant(loc source.Location, format string, args ...any) {
	c.Add(Diagnostic{Kind: KindModelInvariant, Message: fmt.Sprintf(format, args...), Location: loc})
}

// All returns every diagnostic recorded so far, in recorded order.
func (c *Collector) All() []Diagnostic {
	return append([]Diagnostic(nil), c.items...)
}

// Merge appends another collector's diagnostics into this one.
func (c *Collector) Merge(other *Collector) {
	if other == nil {
		return
	}
	c.items = append(c.items, other.items...)
}
