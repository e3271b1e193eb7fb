package validator

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"
)

// Default format patterns, keyed by Rule.Format.
var defaultFormats = map[string]*regexp.Regexp{
	"email": regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`),
	"url":   regexp.MustCompile(`^(https?|ftp)://[^\s/$.?#].[^\s]*$`),
}

// Options carries per-run validation settings.
type Options struct {
	// Trigger is the lifecycle trigger that started this run
	// ("onInput", "onBlur", ...). Rules with a trigger list only run
	// on matching triggers.
	Trigger string

	// ValidateFirst stops the run after the first error result.
	ValidateFirst bool

	// Key names the value in default messages. Empty falls back to
	// "value".
	Key string
}

// Option configures an Engine.
type Option func(*Engine)

// WithFormat registers a named format pattern, overriding any default
// of the same name.
func WithFormat(name string, re *regexp.Regexp) Option {
	return func(e *Engine) {
		e.formats[name] = re
	}
}

// Engine evaluates validator descriptions against values.
// All methods are safe for concurrent use.
type Engine struct {
	formats map[string]*regexp.Regexp

	patternMu sync.Mutex
	patterns  map[string]*regexp.Regexp

	scriptOnce sync.Once
	scripts    *scriptRunner
}

// NewEngine creates an engine with the default formats and the given
// options applied.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		formats:  make(map[string]*regexp.Regexp, len(defaultFormats)),
		patterns: make(map[string]*regexp.Regexp),
	}
	for name, re := range defaultFormats {
		e.formats[name] = re
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Validate runs the description's rules against value in declaration
// order and returns the ordered results. Rule failures are data, not
// errors; the returned error reports engine problems only (bad pattern,
// script runtime failure, custom function failure).
func (e *Engine) Validate(ctx context.Context, value any, desc Description, opts Options) ([]Result, error) {
	var results []Result

	for i := range desc.Rules() {
		rule := desc.Rules()[i]
		if !rule.triggeredBy(opts.Trigger) {
			continue
		}

		rs, err := e.evalRule(ctx, value, &rule, opts)
		results = append(results, rs...)
		if err != nil {
			return results, err
		}

		if opts.ValidateFirst && hasError(rs) {
			break
		}
	}

	return results, nil
}

// evalRule evaluates one rule. Built-in checks report at most one
// failure per rule; script and custom function results are appended
// after it.
func (e *Engine) evalRule(ctx context.Context, value any, rule *Rule, opts Options) ([]Result, error) {
	var results []Result

	key := opts.Key
	if key == "" {
		key = "value"
	}

	fail := func(defaultMsg string) {
		msg := rule.Message
		if msg == "" {
			msg = defaultMsg
		}
		kind := KindError
		if rule.Warning {
			kind = KindWarning
		}
		results = append(results, Result{Type: kind, Message: msg})
	}

	empty := isEmpty(value)

	if rule.Required != nil && *rule.Required && empty {
		fail(key + " is required")
		return results, nil
	}

	// Optional empty values skip every other check.
	if empty {
		return results, nil
	}

	if msg, err := e.checkBuiltins(value, rule, key); err != nil {
		return results, err
	} else if msg != "" {
		fail(msg)
	}

	if len(results) == 0 && rule.Script != "" {
		e.scriptOnce.Do(func() { e.scripts = newScriptRunner() })
		msg, failed, err := e.scripts.eval(ctx, rule.Script, value)
		if err != nil {
			return results, err
		}
		if failed {
			if msg == "" {
				msg = key + " is invalid"
			}
			fail(msg)
		}
	}

	if rule.Func != nil {
		rs, err := rule.Func(ctx, value)
		results = append(results, rs...)
		if err != nil {
			return results, err
		}
	}

	return results, nil
}

// checkBuiltins runs the declarative checks and returns the first
// failure's default message, or empty when all pass.
func (e *Engine) checkBuiltins(value any, rule *Rule, key string) (string, error) {
	if rule.Whitespace {
		if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
			return key + " cannot be blank", nil
		}
	}

	if rule.Pattern != "" {
		re, err := e.compile(rule.Pattern)
		if err != nil {
			return "", fmt.Errorf("rule pattern %q: %w", rule.Pattern, err)
		}
		if !re.MatchString(stringForm(value)) {
			return key + " does not match pattern", nil
		}
	}

	if n, ok := numericForm(value); ok {
		if rule.Min != nil && n < *rule.Min {
			return fmt.Sprintf("%s must be at least %v", key, *rule.Min), nil
		}
		if rule.Max != nil && n > *rule.Max {
			return fmt.Sprintf("%s must be at most %v", key, *rule.Max), nil
		}
	}

	if l, ok := lengthOf(value); ok {
		if rule.Len != nil && l != *rule.Len {
			return fmt.Sprintf("%s must have length %d", key, *rule.Len), nil
		}
		if rule.MinLength != nil && l < *rule.MinLength {
			return fmt.Sprintf("%s must have length at least %d", key, *rule.MinLength), nil
		}
		if rule.MaxLength != nil && l > *rule.MaxLength {
			return fmt.Sprintf("%s must have length at most %d", key, *rule.MaxLength), nil
		}
	}

	if len(rule.Enum) > 0 {
		s := stringForm(value)
		found := false
		for _, allowed := range rule.Enum {
			if s == allowed {
				found = true
				break
			}
		}
		if !found {
			return fmt.Sprintf("%s must be one of %s", key, strings.Join(rule.Enum, ", ")), nil
		}
	}

	if rule.Format != "" {
		re, ok := e.formats[rule.Format]
		if !ok {
			return "", fmt.Errorf("%w: %q", ErrUnknownFormat, rule.Format)
		}
		if !re.MatchString(stringForm(value)) {
			return fmt.Sprintf("%s is not a valid %s", key, rule.Format), nil
		}
	}

	return "", nil
}

// compile returns a cached compiled pattern.
func (e *Engine) compile(pattern string) (*regexp.Regexp, error) {
	e.patternMu.Lock()
	defer e.patternMu.Unlock()

	if re, ok := e.patterns[pattern]; ok {
		return re, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	e.patterns[pattern] = re
	return re, nil
}

// hasError reports whether any result is an error.
func hasError(results []Result) bool {
	for _, r := range results {
		if r.Type == KindError {
			return true
		}
	}
	return false
}

// isEmpty reports whether a value counts as absent for required checks.
func isEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []any:
		return len(v) == 0
	case map[string]any:
		return len(v) == 0
	default:
		return false
	}
}

// stringForm renders a value for pattern, enum and format checks.
func stringForm(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprint(value)
}

// numericForm extracts a float from numeric values.
func numericForm(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

// lengthOf returns the length of strings, arrays and objects.
func lengthOf(value any) (int, bool) {
	switch v := value.(type) {
	case string:
		return len(v), true
	case []any:
		return len(v), true
	case map[string]any:
		return len(v), true
	default:
		return 0, false
	}
}
