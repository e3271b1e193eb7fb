package validator

import "context"

// Kind classifies a validation result.
type Kind int

const (
	// KindError marks a failed check.
	KindError Kind = iota

	// KindWarning marks a non-blocking problem.
	KindWarning

	// KindSuccess marks an explicit positive result.
	KindSuccess
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindError:
		return "error"
	case KindWarning:
		return "warning"
	case KindSuccess:
		return "success"
	default:
		return "unknown"
	}
}

// Result is a single validation outcome.
type Result struct {
	// Type classifies the result.
	Type Kind

	// Message is the human-readable text.
	Message string
}

// Func is a custom validation function. It returns the results to
// report; an empty slice means the value passed.
type Func func(ctx context.Context, value any) ([]Result, error)

// Rule describes one validation rule. Zero-valued checks are skipped;
// a rule typically sets one or two of them.
type Rule struct {
	// Required fails empty values when set to true. A nil pointer
	// means the rule does not carry the required key at all, which
	// matters for Description.WithRequired.
	Required *bool

	// Pattern is a regular expression the value's string form must match.
	Pattern string

	// Min and Max bound numeric values inclusively.
	Min *float64
	Max *float64

	// MinLength, MaxLength and Len constrain the length of strings,
	// arrays and objects.
	MinLength *int
	MaxLength *int
	Len       *int

	// Enum lists the allowed string forms of the value.
	Enum []string

	// Format names a registered format pattern ("email", "url", ...).
	Format string

	// Whitespace fails strings consisting only of whitespace.
	Whitespace bool

	// Message overrides the default message of a failed check.
	Message string

	// Warning downgrades failed checks from errors to warnings.
	Warning bool

	// Triggers limits the rule to the named trigger types.
	// Empty means the rule runs on every trigger.
	Triggers []string

	// Script is a Lua expression evaluated with the value bound to the
	// global "value". Returning a string fails the rule with that
	// message; returning true fails with the rule message; anything
	// else passes.
	Script string

	// Func is a custom validation function run after the built-in checks.
	Func Func
}

// triggeredBy reports whether the rule runs for the given trigger.
func (r *Rule) triggeredBy(trigger string) bool {
	if len(r.Triggers) == 0 || trigger == "" {
		return true
	}
	for _, t := range r.Triggers {
		if t == trigger {
			return true
		}
	}
	return false
}
