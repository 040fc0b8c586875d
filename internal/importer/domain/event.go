package importer

import "strings"

// WarningPrefix marks an advisory, non-blocking validation message.
const WarningPrefix = "warning:"

// NormalizedEvent is the validated output record of the pipeline: canonical
// field values plus provenance and an ordered list of validation messages.
// Created once per row during normalization and never mutated afterward.
type NormalizedEvent struct {
	RowIndex int
	Values   map[Field]string
	Errors   []string

	// Provenance, set by the weekend-matrix parser only.
	SourceFile  string
	SourceRowID string
}

// Get returns the value for a canonical field, or "" when unset.
func (e NormalizedEvent) Get(field Field) string {
	if e.Values == nil {
		return ""
	}
	return e.Values[field]
}

// HasBlockingErrors reports whether the error list contains at least one
// non-warning entry. Only blocking errors prevent creation.
func (e NormalizedEvent) HasBlockingErrors() bool {
	for _, message := range e.Errors {
		if !strings.HasPrefix(message, WarningPrefix) {
			return true
		}
	}
	return false
}

// Warnings returns the advisory messages without their prefix.
func (e NormalizedEvent) Warnings() []string {
	var warnings []string
	for _, message := range e.Errors {
		if strings.HasPrefix(message, WarningPrefix) {
			warnings = append(warnings, strings.TrimSpace(strings.TrimPrefix(message, WarningPrefix)))
		}
	}
	return warnings
}

// BlockingErrors returns the hard errors only.
func (e NormalizedEvent) BlockingErrors() []string {
	var blocking []string
	for _, message := range e.Errors {
		if !strings.HasPrefix(message, WarningPrefix) {
			blocking = append(blocking, message)
		}
	}
	return blocking
}
