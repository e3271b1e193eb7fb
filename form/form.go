package form

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/dshills/formstate/feedback"
	"github.com/dshills/formstate/fieldpath"
	"github.com/dshills/formstate/internal/vtree"
	"github.com/dshills/formstate/observable"
	"github.com/dshills/formstate/validator"
)

// Engine validates a field value against its rule description.
// The default is a validator.Engine; tests and hosts may substitute
// their own.
type Engine interface {
	Validate(ctx context.Context, value any, desc validator.Description, opts validator.Options) ([]validator.Result, error)
}

// Form owns the field registry, the values and initial-values trees,
// the feedback store and the lifecycle notification fan-out.
// All methods are safe for concurrent use.
type Form struct {
	mu sync.RWMutex

	// Registry mapping path string to field. Exactly one field per
	// distinct path at any time.
	fields map[string]*Field

	// Parallel value trees, independently addressable by path.
	values        *vtree.Tree
	initialValues *vtree.Tree

	store    *feedback.Store
	notifier *observable.Notifier

	handlers  []handlerEntry
	nextSubID uint64

	modified bool

	validateFirst bool
	discardStale  bool
	engine        Engine
}

// New creates a form, applies the options and fires the form.init
// lifecycle event.
func New(opts ...Option) *Form {
	f := &Form{
		fields:        make(map[string]*Field),
		values:        vtree.New(),
		initialValues: vtree.New(),
		store:         feedback.NewStore(),
		notifier:      observable.NewNotifier(),
		engine:        validator.NewEngine(),
	}

	for _, opt := range opts {
		opt(f)
	}

	f.Notify(TopicFormInit, "", f)
	return f
}

// CreateField returns the field registered at path, creating and
// registering it when absent. Construction merges props with defaults
// and seeds both value trees; void fields never touch the trees.
func (f *Form) CreateField(path fieldpath.Path, props FieldProps) *Field {
	key := path.String()

	f.mu.Lock()
	if existing, ok := f.fields[key]; ok {
		f.mu.Unlock()
		return existing
	}
	fld := &Field{
		form:      f,
		path:      path,
		void:      props.Void,
		display:   props.Display,
		pattern:   props.Pattern,
		validator: props.Validator,
		decorator: props.Decorator,
		component: props.Component,
	}
	f.fields[key] = fld
	f.mu.Unlock()

	if !props.Void {
		b := f.notifier.Begin()
		if props.Value != nil {
			old := f.values.Get(key).Value()
			_ = f.values.Set(key, props.Value)
			b.Set(key, old, props.Value, "values")
		}
		if props.InitialValue != nil {
			old := f.initialValues.Get(key).Value()
			_ = f.initialValues.Set(key, props.InitialValue)
			b.Set(key, old, props.InitialValue, "initialValues")
		}
		b.Commit()
	}

	return fld
}

// Field returns the field registered at path, or nil.
func (f *Form) Field(path fieldpath.Path) *Field {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.fields[path.String()]
}

// Fields returns the registered fields whose paths match pattern,
// ordered by path. An empty pattern matches every field.
func (f *Form) Fields(pattern fieldpath.Path) []*Field {
	f.mu.RLock()
	out := make([]*Field, 0, len(f.fields))
	for key, fld := range f.fields {
		if pattern == "" || fieldpath.Path(key).Matches(pattern) {
			out = append(out, fld)
		}
	}
	f.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].path < out[j].path })
	return out
}

// RemoveField deletes the registry entry at path. The value trees are
// left untouched.
func (f *Form) RemoveField(path fieldpath.Path) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.fields, path.String())
}

// Values returns the decoded values tree.
func (f *Form) Values() any {
	return f.values.Value()
}

// ValuesRaw returns the values tree as a detached JSON document.
func (f *Form) ValuesRaw() string {
	return f.values.Raw()
}

// InitialValues returns the decoded initial-values tree.
func (f *Form) InitialValues() any {
	return f.initialValues.Value()
}

// SetValues replaces the entire values tree.
func (f *Form) SetValues(values any) error {
	old := f.values.Value()
	if err := f.values.SetAll(values); err != nil {
		return err
	}
	b := f.notifier.Begin()
	b.Replace(old, values, "values")
	b.Commit()
	f.Notify(TopicFormValuesChange, "", values)
	return nil
}

// GetValuesIn returns the decoded value at path, or nil when absent.
func (f *Form) GetValuesIn(path fieldpath.Path) any {
	return f.values.Get(path.String()).Value()
}

// SetValuesIn writes a value at path.
func (f *Form) SetValuesIn(path fieldpath.Path, value any) error {
	key := path.String()
	old := f.values.Get(key).Value()
	if err := f.values.Set(key, value); err != nil {
		return err
	}
	b := f.notifier.Begin()
	b.Set(key, old, value, "values")
	b.Commit()
	f.Notify(TopicFormValuesChange, path, value)
	return nil
}

// DeleteValuesIn removes the value at path.
func (f *Form) DeleteValuesIn(path fieldpath.Path) error {
	key := path.String()
	old := f.values.Get(key).Value()
	if err := f.values.Delete(key); err != nil {
		return err
	}
	b := f.notifier.Begin()
	b.Delete(key, old, "values")
	b.Commit()
	f.Notify(TopicFormValuesChange, path, nil)
	return nil
}

// ExistValuesIn reports whether a value is present at path.
func (f *Form) ExistValuesIn(path fieldpath.Path) bool {
	return f.values.Exists(path.String())
}

// GetInitialValuesIn returns the decoded initial value at path.
func (f *Form) GetInitialValuesIn(path fieldpath.Path) any {
	return f.initialValues.Get(path.String()).Value()
}

// SetInitialValuesIn writes an initial value at path.
func (f *Form) SetInitialValuesIn(path fieldpath.Path, value any) error {
	key := path.String()
	old := f.initialValues.Get(key).Value()
	if err := f.initialValues.Set(key, value); err != nil {
		return err
	}
	b := f.notifier.Begin()
	b.Set(key, old, value, "initialValues")
	b.Commit()
	f.Notify(TopicFormInitialValuesChange, path, value)
	return nil
}

// ExistInitialValuesIn reports whether an initial value is present at path.
func (f *Form) ExistInitialValuesIn(path fieldpath.Path) bool {
	return f.initialValues.Exists(path.String())
}

// Modified reports whether any field input has modified the form.
func (f *Form) Modified() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.modified
}

// setModified updates the form-level modified flag.
func (f *Form) setModified(modified bool) {
	f.mu.Lock()
	f.modified = modified
	f.mu.Unlock()
}

// FeedbackStore returns the form's feedback store.
func (f *Form) FeedbackStore() *feedback.Store {
	return f.store
}

// Notifier returns the form's state-change notifier, letting bindings
// observe value and attribute changes by path.
func (f *Form) Notifier() *observable.Notifier {
	return f.notifier
}

// Errors returns every error message in the feedback store.
func (f *Form) Errors() []string {
	return f.store.Find(feedback.Query{Type: feedback.TypeError})
}

// Warnings returns every warning message in the feedback store.
func (f *Form) Warnings() []string {
	return f.store.Find(feedback.Query{Type: feedback.TypeWarning})
}

// Successes returns every success message in the feedback store.
func (f *Form) Successes() []string {
	return f.store.Find(feedback.Query{Type: feedback.TypeSuccess})
}

// Validate runs validation on every non-void field, in path order, and
// returns the merged feedbacks. Engine failures are joined and do not
// stop the run.
func (f *Form) Validate(ctx context.Context, trigger string) (Feedbacks, error) {
	var merged Feedbacks
	var errs []error

	for _, fld := range f.Fields("") {
		if fld.IsVoid() {
			continue
		}
		fb, err := fld.Validate(ctx, trigger)
		merged.merge(fb)
		if err != nil {
			errs = append(errs, err)
		}
	}

	return merged, errors.Join(errs...)
}

// Reset resets every field matching pattern (empty matches all),
// clears the form-level modified flag and fires the form reset event.
func (f *Form) Reset(ctx context.Context, pattern fieldpath.Path, opts ResetOptions) (Feedbacks, error) {
	var merged Feedbacks
	var errs []error

	for _, fld := range f.Fields(pattern) {
		fb, err := fld.Reset(ctx, opts)
		merged.merge(fb)
		if err != nil {
			errs = append(errs, err)
		}
	}

	f.setModified(false)
	f.Notify(TopicFormReset, pattern, nil)

	return merged, errors.Join(errs...)
}
