package form

import (
	"github.com/dshills/formstate/feedback"
	"github.com/dshills/formstate/validator"
)

// SetValue writes v into the form's values tree at the field's path
// and fires the field and form value-change events. Void fields are a
// silent no-op. A nil v clears the value.
func (x *Field) SetValue(v any) {
	if x.IsVoid() {
		return
	}
	x.writeValue(v)
	x.form.Notify(TopicFieldValueChange, x.path, v)
	x.form.Notify(TopicFormValuesChange, x.path, v)
}

// writeValue commits a values-tree write as one transaction.
func (x *Field) writeValue(v any) {
	key := x.path.String()
	b := x.form.notifier.Begin()
	old := x.form.values.Get(key).Value()
	_ = x.form.values.Set(key, v)
	if v == nil {
		b.Delete(key, old, "values")
	} else {
		b.Set(key, old, v, "values")
	}
	b.Commit()
}

// SetInitialValue mirrors SetValue on the initial-values tree.
func (x *Field) SetInitialValue(v any) {
	if x.IsVoid() {
		return
	}
	key := x.path.String()
	b := x.form.notifier.Begin()
	old := x.form.initialValues.Get(key).Value()
	_ = x.form.initialValues.Set(key, v)
	if v == nil {
		b.Delete(key, old, "initialValues")
	} else {
		b.Set(key, old, v, "initialValues")
	}
	b.Commit()
	x.form.Notify(TopicFieldInitialValueChange, x.path, v)
	x.form.Notify(TopicFormInitialValuesChange, x.path, v)
}

// SetDisplay transitions the field's display. Switching into none
// stashes a detached snapshot of the current value and clears it;
// switching from none into visibility restores the stash. The display
// itself is always updated last.
func (x *Field) SetDisplay(d Display) {
	switch {
	case d == DisplayVisibility:
		x.mu.Lock()
		recycled, ok := x.recycled, x.hasRecycle
		if x.display != DisplayNone {
			ok = false
		}
		if ok {
			x.recycled, x.hasRecycle = nil, false
		}
		x.mu.Unlock()
		if ok {
			x.SetValue(recycled)
		}

	case d == DisplayNone:
		// The decoded value is freshly built on each read, so the
		// stash never aliases the tree.
		value := x.Value()
		x.mu.Lock()
		x.recycled, x.hasRecycle = value, true
		x.mu.Unlock()
		x.SetValue(nil)
	}

	b := x.form.notifier.Begin()
	x.mu.Lock()
	old := x.display
	x.display = d
	x.mu.Unlock()
	b.Set(x.path.String(), old.String(), d.String(), "display")
	b.Commit()
}

// SetPattern assigns the field's interaction pattern.
func (x *Field) SetPattern(p Pattern) {
	b := x.form.notifier.Begin()
	x.mu.Lock()
	old := x.pattern
	x.pattern = p
	x.mu.Unlock()
	b.Set(x.path.String(), old.String(), p.String(), "pattern")
	b.Commit()
}

// SetRequired toggles the required flag on the field's validator
// description, honoring its object or array shape.
func (x *Field) SetRequired(required bool) {
	b := x.form.notifier.Begin()
	x.mu.Lock()
	old := x.validator.Required()
	x.validator = x.validator.WithRequired(required)
	x.mu.Unlock()
	b.Set(x.path.String(), old, required, "validator")
	b.Commit()
}

// SetValidator replaces the field's rule description.
func (x *Field) SetValidator(desc validator.Description) {
	b := x.form.notifier.Begin()
	x.mu.Lock()
	x.validator = desc
	x.mu.Unlock()
	b.Set(x.path.String(), nil, nil, "validator")
	b.Commit()
}

// SetComponent overwrites the component handle.
func (x *Field) SetComponent(handle any) {
	b := x.form.notifier.Begin()
	x.mu.Lock()
	x.component.Handle = handle
	x.mu.Unlock()
	b.Set(x.path.String(), nil, handle, "component")
	b.Commit()
}

// SetComponentProps shallow-merges props into the component slot.
func (x *Field) SetComponentProps(props map[string]any) {
	b := x.form.notifier.Begin()
	x.mu.Lock()
	x.component.Props = mergeProps(x.component.Props, props)
	x.mu.Unlock()
	b.Set(x.path.String(), nil, props, "component")
	b.Commit()
}

// SetDecorator overwrites the decorator handle.
func (x *Field) SetDecorator(handle any) {
	b := x.form.notifier.Begin()
	x.mu.Lock()
	x.decorator.Handle = handle
	x.mu.Unlock()
	b.Set(x.path.String(), nil, handle, "decorator")
	b.Commit()
}

// SetDecoratorProps shallow-merges props into the decorator slot.
func (x *Field) SetDecoratorProps(props map[string]any) {
	b := x.form.notifier.Begin()
	x.mu.Lock()
	x.decorator.Props = mergeProps(x.decorator.Props, props)
	x.mu.Unlock()
	b.Set(x.path.String(), nil, props, "decorator")
	b.Commit()
}

// SetLoading assigns the loading flag.
func (x *Field) SetLoading(loading bool) {
	b := x.form.notifier.Begin()
	x.mu.Lock()
	old := x.loading
	x.loading = loading
	x.mu.Unlock()
	b.Set(x.path.String(), old, loading, "loading")
	b.Commit()
}

// SetValidating assigns the validating flag.
func (x *Field) SetValidating(validating bool) {
	b := x.form.notifier.Begin()
	x.mu.Lock()
	old := x.validating
	x.validating = validating
	x.mu.Unlock()
	b.Set(x.path.String(), old, validating, "validating")
	b.Commit()
}

// SetErrors injects externally produced error messages, tagged apart
// from validator output.
func (x *Field) SetErrors(messages []string) {
	x.form.store.Update(feedback.Entry{
		Path:     x.path.String(),
		Type:     feedback.TypeError,
		Code:     feedback.CodeEffectError,
		Messages: messages,
	})
}

// SetWarnings injects externally produced warning messages.
func (x *Field) SetWarnings(messages []string) {
	x.form.store.Update(feedback.Entry{
		Path:     x.path.String(),
		Type:     feedback.TypeWarning,
		Code:     feedback.CodeEffectWarning,
		Messages: messages,
	})
}

// mergeProps shallow-merges src into dst, building dst when nil.
func mergeProps(dst, src map[string]any) map[string]any {
	if src == nil {
		return dst
	}
	if dst == nil {
		dst = make(map[string]any, len(src))
	}
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
