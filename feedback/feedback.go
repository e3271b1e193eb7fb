// Package feedback stores validation messages keyed by field path.
//
// Entries are keyed by (path, code): the same field can carry validator
// feedback and externally injected feedback side by side, and a new
// validation run for a code replaces the previous run's messages for
// that code only.
package feedback

import (
	"github.com/dshills/formstate/fieldpath"
)

// Type classifies a feedback message.
type Type int

const (
	// TypeAny matches every type in queries. It is not a valid entry type.
	TypeAny Type = iota

	// TypeError marks a failed validation.
	TypeError

	// TypeWarning marks a non-blocking problem.
	TypeWarning

	// TypeSuccess marks an explicit positive result.
	TypeSuccess
)

// String returns the type name.
func (t Type) String() string {
	switch t {
	case TypeAny:
		return "any"
	case TypeError:
		return "error"
	case TypeWarning:
		return "warning"
	case TypeSuccess:
		return "success"
	default:
		return "unknown"
	}
}

// Codes distinguishing where feedback came from.
const (
	// CodeValidateError tags errors produced by a validation run.
	CodeValidateError = "ValidateError"

	// CodeValidateWarning tags warnings produced by a validation run.
	CodeValidateWarning = "ValidateWarning"

	// CodeValidateSuccess tags successes produced by a validation run.
	CodeValidateSuccess = "ValidateSuccess"

	// CodeEffectError tags errors injected from outside the validator.
	CodeEffectError = "EffectError"

	// CodeEffectWarning tags warnings injected from outside the validator.
	CodeEffectWarning = "EffectWarning"
)

// Entry is one feedback record for a path.
type Entry struct {
	// Path is the field path the feedback applies to.
	Path string

	// Type classifies the messages.
	Type Type

	// Code identifies the producer; (Path, Code) is the entry key.
	Code string

	// Messages is the ordered message list. An empty list is
	// equivalent to absence.
	Messages []string
}

// Query selects entries. Zero-valued members match everything.
type Query struct {
	// Path matches entries at the path or any descendant of it.
	Path string

	// Type matches entries of the given type; TypeAny matches all.
	Type Type

	// Code matches entries with the exact code; empty matches all.
	Code string
}

// matches reports whether the entry satisfies the query.
func (e *Entry) matches(q Query) bool {
	if q.Type != TypeAny && e.Type != q.Type {
		return false
	}
	if q.Code != "" && e.Code != q.Code {
		return false
	}
	if q.Path != "" && !fieldpath.Path(e.Path).HasPrefix(fieldpath.Path(q.Path)) {
		return false
	}
	return true
}
