// Package errors provides a lightweight structured error type (ConvertError)
// for category-based classification of per-document conversion failures.
package errors

import (
	"fmt"
)

// ErrorCategory classifies a conversion failure.
type ErrorCategory string

const (
	// CategoryStructure marks node kinds or shapes with no defined conversion.
	CategoryStructure ErrorCategory = "structure"
	// CategoryIntegrity marks consistency violations: unreferenced targets,
	// duplicate sections, trailing unconsumed nodes, aggregator misuse.
	CategoryIntegrity ErrorCategory = "integrity"
	// CategoryMetadata marks metadata merge and classification failures.
	CategoryMetadata ErrorCategory = "metadata"
	// CategoryInput marks unreadable or malformed symbol descriptions.
	CategoryInput ErrorCategory = "input"
	// CategoryInternal marks everything else.
	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is.
type ErrorSeverity string

const (
	SeverityFatal ErrorSeverity = "fatal" // Aborts the current document
	SeverityError ErrorSeverity = "error" // The document stands, the defect is surfaced
)

// ContextFields carries structured context for ConvertError.
type ContextFields map[string]any

// ConvertError is a structured error with category, severity, and context.
// Fatal errors surface to the batch orchestrator, which records the failure
// for the symbol and moves on; no partial output is written.
type ConvertError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// Error implements the error interface.
func (e *ConvertError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling.
func (e *ConvertError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error.
func (e *ConvertError) WithContext(key string, value any) *ConvertError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new ConvertError.
func New(category ErrorCategory, severity ErrorSeverity, message string) *ConvertError {
	return &ConvertError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Newf creates a new ConvertError with a formatted message.
func Newf(category ErrorCategory, severity ErrorSeverity, format string, args ...any) *ConvertError {
	return New(category, severity, fmt.Sprintf(format, args...))
}

// Wrap creates a new ConvertError that wraps an existing error.
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *ConvertError {
	return &ConvertError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// Structure creates a fatal unrecognized-structure error.
func Structure(message string) *ConvertError {
	return New(CategoryStructure, SeverityFatal, message)
}

// Structuref creates a fatal unrecognized-structure error with a formatted message.
func Structuref(format string, args ...any) *ConvertError {
	return Newf(CategoryStructure, SeverityFatal, format, args...)
}

// Integrity creates a fatal integrity error.
func Integrity(message string) *ConvertError {
	return New(CategoryIntegrity, SeverityFatal, message)
}

// Integrityf creates a fatal integrity error with a formatted message.
func Integrityf(format string, args ...any) *ConvertError {
	return Newf(CategoryIntegrity, SeverityFatal, format, args...)
}

// IsCategory checks if an error belongs to a specific category.
func IsCategory(err error, category ErrorCategory) bool {
	if ce, ok := err.(*ConvertError); ok {
		return ce.Category == category
	}
	return false
}

// GetCategory extracts the category from an error, or returns
// CategoryInternal for plain errors.
func GetCategory(err error) ErrorCategory {
	if ce, ok := err.(*ConvertError); ok {
		return ce.Category
	}
	return CategoryInternal
}

// IsFatal reports whether an error aborts the current document. Plain errors
// are treated as fatal so that nothing slips through unclassified.
func IsFatal(err error) bool {
	if ce, ok := err.(*ConvertError); ok {
		return ce.Severity == SeverityFatal
	}
	return err != nil
}
