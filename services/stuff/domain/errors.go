package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for the stuff domain. Use errors.Is() to check these.
var (
	// ErrStuffNotFound indicates the requested stuff does not exist.
	ErrStuffNotFound = errors.New("stuff not found")

	// ErrTagNotFound indicates the requested tag does not exist or does not
	// belong to the stuff named in the request.
	ErrTagNotFound = errors.New("tag not found")

	// ErrUnknownScope indicates an unrecognized list scope name.
	ErrUnknownScope = errors.New("unknown scope")
)

// Violations accumulates field-level validation failures. Keys are field
// names (nested tag fields use the "tags[i].field" form), values are
// ordered human-readable messages. The zero value is not usable; call
// NewViolations.
type Violations map[string][]string

// NewViolations returns an empty, ready-to-use Violations map.
func NewViolations() Violations {
	return make(Violations)
}

// Add appends a message for the given field.
func (v Violations) Add(field, message string) {
	v[field] = append(v[field], message)
}

// Merge copies every violation from other into v, prefixing each field name.
// Pass an empty prefix to merge as-is.
func (v Violations) Merge(prefix string, other Violations) {
	for field, messages := range other {
		v[prefix+field] = append(v[prefix+field], messages...)
	}
}

// Empty reports whether no violations have been recorded.
func (v Violations) Empty() bool {
	return len(v) == 0
}

// ValidationError carries the full set of field violations for a rejected
// write. It maps to HTTP 422 with the Fields map as the response body.
type ValidationError struct {
	Fields Violations
}

// NewValidationError wraps the given violations. Callers must only construct
// one when violations exist.
func NewValidationError(fields Violations) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, messages := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s %s", field, strings.Join(messages, ", ")))
	}
	sort.Strings(parts)
	return "validation failed: " + strings.Join(parts, "; ")
}
