// Package internal contains the core implementation packages for
// a11yscan, a static accessibility analyzer for HTML/JSX, JS/TS, and
// CSS source.
//
// This package follows Go's internal package convention, making these
// packages unavailable for import by external modules.
//
// # Package Organization
//
// The internal packages are organized by pipeline stage:
//
//   - source: raw source file collection and location primitives
//   - domparse: HTML/JSX parsing into a DOM-like node tree
//   - actionparse: JS/TS event-handler registration parsing
//   - cssparse: CSS rule and declaration parsing
//   - selector: CSS selector matching against parsed DOM nodes
//   - docmodel: the unified document model tying parsed fragments
//     together via id indexes and target resolutions
//   - elementctx: computed per-element accessibility context (focusable,
//     interactive, matching CSS rules)
//   - analyzerapi: the analyzer pass contract, Issue/Confidence types,
//     and the orchestrator that runs every registered pass
//   - rules: the analyzer passes themselves
//   - guidance: remediation text attached to issues by kind
//   - report: issue renderers (JSON, Markdown, console)
//   - diag: non-fatal parse/model diagnostics
//   - aerrors: structured, typed errors for unrecoverable failures
//   - config: configuration loading and validation
//   - logging: structured logging
//   - watcher: file system monitoring with debouncing, for --watch mode
//
// # Design Principles
//
//   - Pure, order-independent analyzer passes operating over a shared
//     Context
//   - Confidence is computed once, centrally, never inside a rule
//   - Non-fatal failures degrade gracefully and are recorded as
//     diagnostics instead of aborting a run
//   - Issues outlive the document model: reporters are pure functions
//     of []analyzerapi.Issue
package internal
