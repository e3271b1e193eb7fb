package form

import (
	"context"

	"github.com/dshills/formstate/feedback"
	"github.com/dshills/formstate/validator"
)

// OnInit marks the field initialized, fires the init event and runs an
// onInit validation.
func (x *Field) OnInit(ctx context.Context) {
	b := x.form.notifier.Begin()
	x.mu.Lock()
	old := x.initialized
	x.initialized = true
	x.mu.Unlock()
	b.Set(x.path.String(), old, true, "initialized")
	b.Commit()

	x.form.Notify(TopicFieldInit, x.path, x)
	_, _ = x.Validate(ctx, TriggerOnInit)
}

// OnMount marks the field mounted, runs an onMount validation and then
// fires the mount event.
func (x *Field) OnMount(ctx context.Context) {
	b := x.form.notifier.Begin()
	x.mu.Lock()
	old := x.mounted
	x.mounted = true
	x.unmounted = false
	x.mu.Unlock()
	b.Set(x.path.String(), old, true, "mounted")
	b.Commit()

	_, _ = x.Validate(ctx, TriggerOnMount)
	x.form.Notify(TopicFieldMount, x.path, x)
}

// OnUnmount marks the field unmounted, validates, fires the unmount
// event, and only then reconciles the registry: a field whose path has
// left the value tree is removed entirely; one still present but
// displayed as none or visibility has its value cleared.
func (x *Field) OnUnmount(ctx context.Context) {
	b := x.form.notifier.Begin()
	x.mu.Lock()
	old := x.unmounted
	x.unmounted = true
	x.mounted = false
	x.mu.Unlock()
	b.Set(x.path.String(), old, true, "unmounted")
	b.Commit()

	_, _ = x.Validate(ctx, TriggerOnUnmount)
	x.form.Notify(TopicFieldUnmount, x.path, x)

	if x.form.values.Exists(x.path.String()) {
		if d := x.ComputedDisplay(); d == DisplayNone || d == DisplayVisibility {
			x.writeValue(nil)
		}
		return
	}
	x.form.RemoveField(x.path)
}

// OnInput records the raw input, marks the field and form modified,
// writes the value through to the tree, fires the value and input
// change events and runs an onInput validation. Void fields are a
// silent no-op.
func (x *Field) OnInput(ctx context.Context, args ...any) {
	if x.IsVoid() {
		return
	}

	var v any
	if len(args) > 0 {
		v = args[0]
	}

	key := x.path.String()
	b := x.form.notifier.Begin()
	x.mu.Lock()
	x.inputValue = v
	x.inputValues = args
	x.modified = true
	x.mu.Unlock()
	old := x.form.values.Get(key).Value()
	_ = x.form.values.Set(key, v)
	x.form.setModified(true)
	b.Set(key, old, v, "values")
	b.Commit()

	x.form.Notify(TopicFieldValueChange, x.path, v)
	x.form.Notify(TopicFormValuesChange, x.path, v)
	x.form.Notify(TopicFieldInputChange, x.path, v)
	x.form.Notify(TopicFormInputChange, x.path, v)

	_, _ = x.Validate(ctx, TriggerOnInput)
}

// OnFocus marks the field active and visited and runs an onFocus
// validation.
func (x *Field) OnFocus(ctx context.Context) {
	b := x.form.notifier.Begin()
	x.mu.Lock()
	old := x.active
	x.active = true
	x.visited = true
	x.mu.Unlock()
	b.Set(x.path.String(), old, true, "active")
	b.Commit()

	_, _ = x.Validate(ctx, TriggerOnFocus)
}

// OnBlur clears the active flag and runs an onBlur validation.
func (x *Field) OnBlur(ctx context.Context) {
	b := x.form.notifier.Begin()
	x.mu.Lock()
	old := x.active
	x.active = false
	x.mu.Unlock()
	b.Set(x.path.String(), old, false, "active")
	b.Commit()

	_, _ = x.Validate(ctx, TriggerOnBlur)
}

// Validate runs the field's rule description against its current value
// and returns the partitioned feedbacks. Concurrent runs are
// independent; without the form's discard-stale option the last store
// write per code wins. Success results are reported through the
// warnings bucket.
func (x *Field) Validate(ctx context.Context, trigger string) (Feedbacks, error) {
	gen := x.generation.Add(1)

	x.SetValidating(true)
	x.form.Notify(TopicFieldValidateStart, x.path, trigger)

	results, err := x.form.engine.Validate(ctx, x.Value(), x.Validator(), validator.Options{
		Trigger:       trigger,
		ValidateFirst: x.form.validateFirst,
		Key:           x.path.Base(),
	})

	var fb Feedbacks
	for _, r := range results {
		switch r.Type {
		case validator.KindWarning, validator.KindSuccess:
			fb.Warnings = append(fb.Warnings, r.Message)
		default:
			fb.Errors = append(fb.Errors, r.Message)
		}
	}

	if !x.form.discardStale || x.generation.Load() == gen {
		key := x.path.String()
		if len(fb.Errors) > 0 {
			x.form.store.Update(feedback.Entry{
				Path:     key,
				Type:     feedback.TypeError,
				Code:     feedback.CodeValidateError,
				Messages: fb.Errors,
			})
		}
		if len(fb.Warnings) > 0 {
			x.form.store.Update(feedback.Entry{
				Path:     key,
				Type:     feedback.TypeWarning,
				Code:     feedback.CodeValidateWarning,
				Messages: fb.Warnings,
			})
		}
		if len(fb.Successes) > 0 {
			x.form.store.Update(feedback.Entry{
				Path:     key,
				Type:     feedback.TypeSuccess,
				Code:     feedback.CodeValidateSuccess,
				Messages: fb.Successes,
			})
		}
	}

	x.SetValidating(false)
	x.form.Notify(TopicFieldValidateEnd, x.path, trigger)

	return fb, err
}

// Reset clears the field's modified and visited flags and feedback,
// then restores the value: ForceClear empties the input buffers and
// removes the stored value, otherwise the value is reset to the
// initial value. Fires the field reset event, and validates afterwards
// when requested.
func (x *Field) Reset(ctx context.Context, opts ResetOptions) (Feedbacks, error) {
	key := x.path.String()

	b := x.form.notifier.Begin()
	x.mu.Lock()
	x.modified = false
	x.visited = false
	if opts.ForceClear {
		x.inputValue = nil
		x.inputValues = nil
	}
	x.mu.Unlock()

	x.form.store.Clear(key)

	if opts.ClearInitialValue {
		old := x.form.initialValues.Get(key).Value()
		_ = x.form.initialValues.Delete(key)
		b.Delete(key, old, "initialValues")
	}

	old := x.form.values.Get(key).Value()
	if opts.ForceClear {
		_ = x.form.values.Delete(key)
		b.Delete(key, old, "values")
	} else {
		iv := x.InitialValue()
		_ = x.form.values.Set(key, iv)
		b.Set(key, old, iv, "values")
	}
	b.Commit()

	x.form.Notify(TopicFieldReset, x.path, x)

	if opts.Validate {
		return x.Validate(ctx, "")
	}
	return Feedbacks{}, nil
}
