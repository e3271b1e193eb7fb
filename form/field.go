package form

import (
	"sync"
	"sync/atomic"

	"github.com/tidwall/gjson"

	"github.com/dshills/formstate/feedback"
	"github.com/dshills/formstate/fieldpath"
	"github.com/dshills/formstate/validator"
)

// Field is a single addressable state node. It holds local flags and
// binding slots; its value, ancestry and feedback are derived from the
// form's trees, registry and feedback store through its path.
type Field struct {
	form *Form

	// path is assigned at creation and never changes.
	path fieldpath.Path

	mu sync.RWMutex

	void      bool
	display   Display
	pattern   Pattern
	validator validator.Description
	decorator Binding
	component Binding

	loading     bool
	validating  bool
	modified    bool
	active      bool
	visited     bool
	initialized bool
	mounted     bool
	unmounted   bool

	// Raw last-input snapshot.
	inputValue  any
	inputValues []any

	// Value stashed while the field is displayed as none.
	recycled   any
	hasRecycle bool

	// Validation run counter for stale-result discard.
	generation atomic.Uint64
}

// Path returns the field's address. Immutable once assigned.
func (x *Field) Path() fieldpath.Path {
	return x.path
}

// Key returns the last segment of the field's path.
func (x *Field) Key() string {
	return x.path.Base()
}

// Index returns the field's array index: the last numeric segment of
// its path. ok is false for fields outside any array.
func (x *Field) Index() (int, bool) {
	return x.path.Index()
}

// IsVoid reports whether the field is excluded from the value trees.
func (x *Field) IsVoid() bool {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.void
}

// Display returns the field's own display; DisplayUnset inherits.
func (x *Field) Display() Display {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.display
}

// Pattern returns the field's own pattern; PatternUnset inherits.
func (x *Field) Pattern() Pattern {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.pattern
}

// Validator returns the field's rule description.
func (x *Field) Validator() validator.Description {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.validator
}

// Decorator returns the decorator binding slot.
func (x *Field) Decorator() Binding {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.decorator
}

// Component returns the component binding slot.
func (x *Field) Component() Binding {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.component
}

// Loading reports the loading flag.
func (x *Field) Loading() bool {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.loading
}

// Validating reports whether a validation run is in flight.
func (x *Field) Validating() bool {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.validating
}

// Modified reports whether the field has received input.
func (x *Field) Modified() bool {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.modified
}

// Active reports whether the field has focus.
func (x *Field) Active() bool {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.active
}

// Visited reports whether the field has ever been focused.
func (x *Field) Visited() bool {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.visited
}

// Initialized reports whether OnInit has run.
func (x *Field) Initialized() bool {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.initialized
}

// Mounted reports whether the field is mounted.
func (x *Field) Mounted() bool {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.mounted
}

// Unmounted reports whether the field has been unmounted.
func (x *Field) Unmounted() bool {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.unmounted
}

// InputValue returns the first argument of the last OnInput call.
func (x *Field) InputValue() any {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.inputValue
}

// InputValues returns all arguments of the last OnInput call.
func (x *Field) InputValues() []any {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.inputValues
}

// Value derives the field's effective value from the form's values
// tree. A modified field returns the stored value unconditionally,
// preserving user-cleared state. An unmodified field falls back to the
// initial value when the stored value is absent or null.
func (x *Field) Value() any {
	res := x.form.values.Get(x.path.String())
	if x.Modified() {
		return res.Value()
	}
	if isValidResult(res) {
		return res.Value()
	}
	return x.InitialValue()
}

// InitialValue returns the initial value stored at the field's path.
func (x *Field) InitialValue() any {
	return x.form.initialValues.Get(x.path.String()).Value()
}

// Parent walks the path ancestors outward and returns the nearest one
// registered as a field. Never returns the field itself; nil at the
// tree root.
func (x *Field) Parent() *Field {
	for p := x.path.Parent(); p != ""; p = p.Parent() {
		if fld := x.form.Field(p); fld != nil {
			return fld
		}
	}
	return nil
}

// ArrayField walks the ancestors outward and returns the nearest field
// whose value is a sequence, or nil.
func (x *Field) ArrayField() *Field {
	for p := x.path.Parent(); p != ""; p = p.Parent() {
		fld := x.form.Field(p)
		if fld == nil {
			continue
		}
		if _, ok := fld.Value().([]any); ok {
			return fld
		}
	}
	return nil
}

// ArrayAfterSibling returns the field step positions after this one in
// its array, or nil when absent. A step below one means the next
// sibling.
func (x *Field) ArrayAfterSibling(step int) *Field {
	if step < 1 {
		step = 1
	}
	idx, ok := x.path.Index()
	if !ok {
		return nil
	}
	p, _ := x.path.WithIndex(idx + step)
	return x.form.Field(p)
}

// ArrayBeforeSibling returns the field step positions before this one
// in its array, or nil when absent or out of range.
func (x *Field) ArrayBeforeSibling(step int) *Field {
	if step < 1 {
		step = 1
	}
	idx, ok := x.path.Index()
	if !ok || idx-step < 0 {
		return nil
	}
	p, _ := x.path.WithIndex(idx - step)
	return x.form.Field(p)
}

// ComputedDisplay resolves the effective display: the field's own when
// set, otherwise inherited through the parent chain.
func (x *Field) ComputedDisplay() Display {
	if d := x.Display(); d != DisplayUnset {
		return d
	}
	if p := x.Parent(); p != nil {
		return p.ComputedDisplay()
	}
	return DisplayUnset
}

// ComputedPattern resolves the effective pattern like ComputedDisplay.
func (x *Field) ComputedPattern() Pattern {
	if p := x.Pattern(); p != PatternUnset {
		return p
	}
	if parent := x.Parent(); parent != nil {
		return parent.ComputedPattern()
	}
	return PatternUnset
}

// Required reports whether any parsed validator rule declares
// required.
func (x *Field) Required() bool {
	return x.Validator().Required()
}

// Errors returns the error messages scoped to this field's path.
func (x *Field) Errors() []string {
	return x.form.store.Find(feedback.Query{Path: x.path.String(), Type: feedback.TypeError})
}

// Warnings returns the warning messages scoped to this field's path.
func (x *Field) Warnings() []string {
	return x.form.store.Find(feedback.Query{Path: x.path.String(), Type: feedback.TypeWarning})
}

// Successes returns the success messages scoped to this field's path.
func (x *Field) Successes() []string {
	return x.form.store.Find(feedback.Query{Path: x.path.String(), Type: feedback.TypeSuccess})
}

// isValidResult reports whether a stored value counts as present.
// Absence and JSON null are the tree's empty/invalid markers.
func isValidResult(r gjson.Result) bool {
	return r.Exists() && r.Type != gjson.Null
}
