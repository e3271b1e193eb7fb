package form

// Option configures a Form.
type Option func(*Form)

// WithValues seeds the values tree.
func WithValues(values any) Option {
	return func(f *Form) {
		_ = f.values.SetAll(values)
	}
}

// WithInitialValues seeds the initial-values tree.
func WithInitialValues(values any) Option {
	return func(f *Form) {
		_ = f.initialValues.SetAll(values)
	}
}

// WithValidateFirst stops each field's validation run at the first
// error result.
func WithValidateFirst() Option {
	return func(f *Form) {
		f.validateFirst = true
	}
}

// WithEngine replaces the validation engine.
func WithEngine(engine Engine) Option {
	return func(f *Form) {
		if engine != nil {
			f.engine = engine
		}
	}
}

// WithDiscardStaleResults drops feedback-store writes from validation
// runs that were superseded by a newer run on the same field before
// they finished. Off by default: without it, overlapping runs race and
// the last write wins.
func WithDiscardStaleResults() Option {
	return func(f *Form) {
		f.discardStale = true
	}
}

// WithLifeCycle registers a lifecycle handler before the form fires
// its init event.
func WithLifeCycle(pattern Topic, h Handler) Option {
	return func(f *Form) {
		id := f.nextSubID
		f.nextSubID++
		f.handlers = append(f.handlers, handlerEntry{id: id, pattern: pattern, fn: h})
	}
}
