// Package aerrors provides a structured error type, matching the teacher's
// internal/errors package shape: a typed, contextual error with a
// recoverability flag, rather than bare fmt.Errorf strings. The analyzer
// orchestrator wraps a panicking pass in it; parsers and the document-model
// builder record diag diagnostics instead.
package aerrors

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrorType categorizes an AnalyzerError along the axes this analyzer
// actually has: parsing one source, building the document model, running
// one pass, loading configuration, or an unexpected internal fault.
type ErrorType string

const (
	ErrorTypeParse    ErrorType = "parse"
	ErrorTypeModel    ErrorType = "model"
	ErrorTypeRule     ErrorType = "rule"
	ErrorTypeConfig   ErrorType = "config"
	ErrorTypeInternal ErrorType = "internal"
)

// AnalyzerError is a structured error with source-location and component
// context (spec §7's two error axes are carried via Type/Recoverable:
// input errors are Type parse/model and Recoverable true; programmer
// errors surfaced by the orchestrator's recover() are Type rule and
// Recoverable false).
type AnalyzerError struct {
	Type        ErrorType
	Code        string
	Message     string
	Cause       error
	Context     map[string]interface{}
	Component   string
	FilePath    string
	Line        int
	Column      int
	Recoverable bool
}

func (e *AnalyzerError) Error() string {
	var parts []string
	if e.Code != "" {
		parts = append(parts, fmt.Sprintf("[%s]", e.Code))
	}
	if e.Component != "" {
		parts = append(parts, "component:"+e.Component)
	}
	if e.FilePath != "" {
		loc := e.FilePath
		if e.Line > 0 {
			loc += fmt.Sprintf(":%d", e.Line)
			if e.Column > 0 {
				loc += fmt.Sprintf(":%d", e.Column)
			}
		}
		parts = append(parts, loc)
	}
	parts = append(parts, e.Message)
	result := strings.Join(parts, " ")
	if e.Cause != nil {
		result += fmt.Sprintf(": %v", e.Cause)
	}
	return result
}

func (e *AnalyzerError) Unwrap() error { return e.Cause }

func (e *AnalyzerError) Is(target error) bool {
	var t *AnalyzerError
	if errors.As(target, &t) {
		return e.Type == t.Type && e.Code == t.Code
	}
	return false
}

// WithContext attaches an arbitrary key/value of diagnostic context.
func (e *AnalyzerError) WithContext(key string, value interface{}) *AnalyzerError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// WithLocation attaches a source location.
func (e *AnalyzerError) WithLocation(filePath string, line, column int) *AnalyzerError {
	e.FilePath, e.Line, e.Column = filePath, line, column
	return e
}

// WithComponent attaches the originating package/component name.
func (e *AnalyzerError) WithComponent(component string) *AnalyzerError {
	e.Component = component
	return e
}

// NewParseError creates a recoverable parse-failure error (spec §7 "input
// errors"): the source degrades to an empty contribution, the build
// continues.
func NewParseError(code, message string, cause error) *AnalyzerError {
	return &AnalyzerError{Type: ErrorTypeParse, Code: code, Message: message, Cause: cause, Recoverable: true}
}

// NewModelError creates a recoverable model-invariant error (spec §7
// "model-invariant violations").
func NewModelError(code, message string) *AnalyzerError {
	return &AnalyzerError{Type: ErrorTypeModel, Code: code, Message: message, Recoverable: true}
}

// NewRuleError creates the error wrapped around a pass's recovered panic
// (spec §7 "programmer errors"); never recoverable, since the pass's
// output for this run is discarded outright.
func NewRuleError(code, message string, cause error) *AnalyzerError {
	return &AnalyzerError{Type: ErrorTypeRule, Code: code, Message: message, Cause: cause, Recoverable: false}
}

// NewConfigError creates a configuration-loading error.
func NewConfigError(code, message string) *AnalyzerError {
	return &AnalyzerError{Type: ErrorTypeConfig, Code: code, Message: message, Recoverable: false}
}

// NewInternalError creates an unclassified internal error.
func NewInternalError(code, message string, cause error) *AnalyzerError {
	return &AnalyzerError{Type: ErrorTypeInternal, Code: code, Message: message, Cause: cause, Recoverable: false}
}

// IsRecoverable reports whether err is an AnalyzerError marked recoverable.
func IsRecoverable(err error) bool {
	var ae *AnalyzerError
	if errors.As(err, &ae) {
		return ae.Recoverable
	}
	return false
}

// Logger is the minimal logging surface ErrorHandler needs; satisfied by
// internal/logging.Logger.
type Logger interface {
	Error(ctx context.Context, err error, msg string, fields ...interface{})
	Warn(ctx context.Context, err error, msg string, fields ...interface{})
}

// ErrorHandler centralizes logging for AnalyzerErrors by type, matching
// the teacher's dispatch-by-type pattern.
type ErrorHandler struct {
	logger Logger
}

// NewErrorHandler builds an ErrorHandler.
func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// Handle logs err at a severity appropriate to its ErrorType.
func (h *ErrorHandler) Handle(ctx context.Context, err error) {
	if err == nil || h.logger == nil {
		return
	}
	var ae *AnalyzerError
	if !errors.As(err, &ae) {
		h.logger.Error(ctx, err, "unhandled error")
		return
	}
	fields := []interface{}{"type", ae.Type, "code", ae.Code, "component", ae.Component}
	switch ae.Type {
	case ErrorTypeParse, ErrorTypeModel:
		h.logger.Warn(ctx, ae, string(ae.Type)+" diagnostic", fields...)
	default:
		h.logger.Error(ctx, ae, string(ae.Type)+" error", fields...)
	}
}

// Common error codes used across the analyzer.
const (
	ErrCodeParseFailure     = "ERR_PARSE_FAILURE"
	ErrCodeDuplicateID      = "ERR_DUPLICATE_ID"
	ErrCodeUnsupportedGrammar = "ERR_UNSUPPORTED_GRAMMAR"
	ErrCodePassPanic        = "ERR_PASS_PANIC"
	ErrCodeConfigInvalid    = "ERR_CONFIG_INVALID"
	ErrCodeInternal         = "ERR_INTERNAL"
)
