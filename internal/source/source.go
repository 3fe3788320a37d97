// Package source defines the primitive entities shared by every later
// component: a location into one source file, a raw source string bundle
// handed to the builder, and the analysis scope that gates confidence.
package source

import "fmt"

// Location pins a parsed construct or an emitted issue to one place in one
// file. Line is 1-based, Column is 0-based, matching the convention of
// golang.org/x/net/html and go/token. Immutable once created.
type Location struct {
	File   string
	Line   int
	Column int
	Length int // optional span length in bytes/runes; 0 means "point location"
}

func (l Location) String() string {
	if l.Length > 0 {
		return fmt.Sprintf("%s:%d:%d+%d", l.File, l.Line, l.Column, l.Length)
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// Scope describes how much of a workspace was considered for one analysis
// run. It widens from file to page to workspace and is recorded on every
// emitted Issue for confidence attribution (spec §4.4.2, §6).
type Scope string

const (
	ScopeFile      Scope = "file"
	ScopePage      Scope = "page"
	ScopeWorkspace Scope = "workspace"
)

// Valid reports whether s is one of the three defined scopes.
func (s Scope) Valid() bool {
	switch s {
	case ScopeFile, ScopePage, ScopeWorkspace:
		return true
	default:
		return false
	}
}

// File is one raw input: a path (used only as an identifier, never opened
// by the core) and its content.
type File struct {
	Path    string
	Content string
}

// Collection is the ingestion interface's input bundle (spec §6): every
// HTML/JSX, JS/TS, and CSS source belonging to one analysis unit. No
// filesystem access is implied or required; callers populate this in
// memory.
type Collection struct {
	HTMLSources []File
	JSSources   []File
	CSSSources  []File
	Scope       Scope
}
