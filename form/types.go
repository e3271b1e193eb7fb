package form

import (
	"github.com/dshills/formstate/validator"
)

// Display controls how a field participates in rendering.
// The zero value means "not set": the effective display is inherited
// from the nearest ancestor that sets one.
type Display int

const (
	// DisplayUnset inherits the display from the parent chain.
	DisplayUnset Display = iota

	// DisplayNone removes the field from display and recycles its value.
	DisplayNone

	// DisplayHidden hides the field but keeps its value.
	DisplayHidden

	// DisplayVisibility shows the field.
	DisplayVisibility
)

// String returns the display name.
func (d Display) String() string {
	switch d {
	case DisplayUnset:
		return ""
	case DisplayNone:
		return "none"
	case DisplayHidden:
		return "hidden"
	case DisplayVisibility:
		return "visibility"
	default:
		return "unknown"
	}
}

// Pattern controls how a field accepts interaction.
// The zero value means "not set" and inherits like Display.
type Pattern int

const (
	// PatternUnset inherits the pattern from the parent chain.
	PatternUnset Pattern = iota

	// PatternEditable accepts input.
	PatternEditable

	// PatternReadOnly shows the control but rejects input.
	PatternReadOnly

	// PatternDisabled shows the control greyed out.
	PatternDisabled

	// PatternReadPretty renders the value as plain content.
	PatternReadPretty
)

// String returns the pattern name.
func (p Pattern) String() string {
	switch p {
	case PatternUnset:
		return ""
	case PatternEditable:
		return "editable"
	case PatternReadOnly:
		return "readOnly"
	case PatternDisabled:
		return "disabled"
	case PatternReadPretty:
		return "readPretty"
	default:
		return "unknown"
	}
}

// Binding is an opaque UI binding slot: a handle naming the bound
// component or decorator, and its props. The core mutates the slots
// but never interprets them.
type Binding struct {
	Handle any
	Props  map[string]any
}

// IsZero reports whether the slot is empty.
func (b Binding) IsZero() bool {
	return b.Handle == nil && b.Props == nil
}

// FieldProps is the construction payload of a field. Nil values are
// treated as not provided.
type FieldProps struct {
	// Value seeds the form's values tree at the field's path.
	Value any

	// InitialValue seeds the initial-values tree at the field's path.
	InitialValue any

	// Void excludes the field from value tree participation.
	Void bool

	// Display and Pattern seed the field's own display state;
	// unset values inherit.
	Display Display
	Pattern Pattern

	// Validator is the rule description; opaque to the form core.
	Validator validator.Description

	// Decorator and Component are UI binding slots.
	Decorator Binding
	Component Binding
}

// Feedbacks is the partitioned outcome of a validation run.
type Feedbacks struct {
	Errors    []string
	Warnings  []string
	Successes []string
}

// merge appends another run's buckets.
func (f *Feedbacks) merge(other Feedbacks) {
	f.Errors = append(f.Errors, other.Errors...)
	f.Warnings = append(f.Warnings, other.Warnings...)
	f.Successes = append(f.Successes, other.Successes...)
}

// ResetOptions controls Field.Reset and Form.Reset.
type ResetOptions struct {
	// ForceClear empties the input buffers and removes the stored
	// value instead of restoring the initial value.
	ForceClear bool

	// ClearInitialValue also removes the initial value.
	ClearInitialValue bool

	// Validate runs a fresh validation after the reset.
	Validate bool
}

// Lifecycle trigger types passed to the validation engine.
const (
	TriggerOnInit    = "onInit"
	TriggerOnMount   = "onMount"
	TriggerOnUnmount = "onUnmount"
	TriggerOnInput   = "onInput"
	TriggerOnFocus   = "onFocus"
	TriggerOnBlur    = "onBlur"
)
