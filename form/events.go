package form

import (
	"github.com/google/uuid"

	"github.com/dshills/formstate/fieldpath"
)

// Topic is a hierarchical lifecycle event type using dot notation.
// Subscriptions may use the fieldpath wildcards: "field.*" matches the
// direct field events, "field.**" everything under field.
type Topic string

// Lifecycle topics emitted by the form and its fields.
const (
	TopicFormInit                Topic = "form.init"
	TopicFormValuesChange        Topic = "form.values.change"
	TopicFormInitialValuesChange Topic = "form.initial-values.change"
	TopicFormInputChange         Topic = "form.input.change"
	TopicFormReset               Topic = "form.reset"

	TopicFieldInit               Topic = "field.init"
	TopicFieldMount              Topic = "field.mount"
	TopicFieldUnmount            Topic = "field.unmount"
	TopicFieldValueChange        Topic = "field.value.change"
	TopicFieldInitialValueChange Topic = "field.initial-value.change"
	TopicFieldInputChange        Topic = "field.input.change"
	TopicFieldValidateStart      Topic = "field.validate.start"
	TopicFieldValidateEnd        Topic = "field.validate.end"
	TopicFieldReset              Topic = "field.reset"
)

// String returns the topic as a string.
func (t Topic) String() string {
	return string(t)
}

// Matches reports whether the topic matches a subscription pattern.
func (t Topic) Matches(pattern Topic) bool {
	return fieldpath.Path(t).Matches(fieldpath.Path(pattern))
}

// Event is one lifecycle notification.
type Event struct {
	// ID uniquely identifies this event instance.
	ID string

	// Topic is the lifecycle event type.
	Topic Topic

	// Path is the field the event concerns; empty for form-scope
	// events with no field context.
	Path fieldpath.Path

	// Payload carries event-specific data.
	Payload any
}

// Handler receives lifecycle events.
type Handler func(Event)

// EventSubscription is an active lifecycle subscription.
type EventSubscription struct {
	id   uint64
	form *Form
}

// Cancel removes the subscription.
func (s *EventSubscription) Cancel() {
	if s.form != nil {
		s.form.unsubscribe(s.id)
	}
}

// handlerEntry pairs a subscription pattern with its handler.
type handlerEntry struct {
	id      uint64
	pattern Topic
	fn      Handler
}

// Subscribe registers a handler for lifecycle events matching pattern.
func (f *Form) Subscribe(pattern Topic, h Handler) *EventSubscription {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := f.nextSubID
	f.nextSubID++
	f.handlers = append(f.handlers, handlerEntry{id: id, pattern: pattern, fn: h})

	return &EventSubscription{id: id, form: f}
}

// unsubscribe removes a handler by subscription ID.
func (f *Form) unsubscribe(id uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.handlers {
		if f.handlers[i].id == id {
			f.handlers = append(f.handlers[:i], f.handlers[i+1:]...)
			return
		}
	}
}

// Notify fans a lifecycle event out to every matching handler, in
// subscription order. Handlers run on the notifying goroutine, outside
// the form lock.
func (f *Form) Notify(topic Topic, path fieldpath.Path, payload any) {
	ev := Event{
		ID:      uuid.NewString(),
		Topic:   topic,
		Path:    path,
		Payload: payload,
	}

	f.mu.RLock()
	var matched []Handler
	for i := range f.handlers {
		if topic.Matches(f.handlers[i].pattern) {
			matched = append(matched, f.handlers[i].fn)
		}
	}
	f.mu.RUnlock()

	for _, h := range matched {
		h(ev)
	}
}
