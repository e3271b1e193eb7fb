package form

import (
	"context"
	"reflect"
	"sort"
	"sync/atomic"
	"testing"

	"github.com/dshills/formstate/fieldpath"
	"github.com/dshills/formstate/observable"
	"github.com/dshills/formstate/validator"
)

func TestForm_CreateFieldDedupe(t *testing.T) {
	f := New()

	a := f.CreateField("user.name", FieldProps{Value: "Alice"})
	b := f.CreateField("user.name", FieldProps{Value: "Bob"})

	if a != b {
		t.Fatal("CreateField returned a second instance for the same path")
	}
	// The second call must not reseed the trees.
	if got := f.GetValuesIn("user.name"); got != "Alice" {
		t.Errorf("GetValuesIn = %v, want Alice", got)
	}
}

func TestForm_FieldLookup(t *testing.T) {
	f := New()
	fld := f.CreateField("user.name", FieldProps{})

	if got := f.Field("user.name"); got != fld {
		t.Errorf("Field() = %v, want the created field", got)
	}
	if got := f.Field("user.missing"); got != nil {
		t.Errorf("Field(missing) = %v, want nil", got)
	}
}

func TestForm_FieldsPattern(t *testing.T) {
	f := New()
	f.CreateField("items.0.price", FieldProps{})
	f.CreateField("items.1.price", FieldProps{})
	f.CreateField("items.1.name", FieldProps{})
	f.CreateField("user.name", FieldProps{})

	var paths []string
	for _, fld := range f.Fields("items.*.price") {
		paths = append(paths, fld.Path().String())
	}
	want := []string{"items.0.price", "items.1.price"}
	if !reflect.DeepEqual(paths, want) {
		t.Errorf("Fields(items.*.price) = %v, want %v", paths, want)
	}

	if got := len(f.Fields("")); got != 4 {
		t.Errorf("Fields(\"\") returned %d fields, want 4", got)
	}
}

func TestForm_WithValues(t *testing.T) {
	f := New(WithValues(map[string]any{"user": map[string]any{"name": "Alice"}}))

	if got := f.GetValuesIn("user.name"); got != "Alice" {
		t.Errorf("GetValuesIn = %v, want Alice", got)
	}

	fld := f.CreateField("user.name", FieldProps{})
	if got := fld.Value(); got != "Alice" {
		t.Errorf("Value() = %v, want Alice", got)
	}
}

func TestForm_WithInitialValues(t *testing.T) {
	f := New(WithInitialValues(map[string]any{"user": map[string]any{"name": "Alice"}}))
	fld := f.CreateField("user.name", FieldProps{})

	if got := fld.Value(); got != "Alice" {
		t.Errorf("Value() = %v, want the initial fallback Alice", got)
	}
}

func TestForm_SetValues(t *testing.T) {
	f := New()

	if err := f.SetValues(map[string]any{"a": 1.0}); err != nil {
		t.Fatalf("SetValues: %v", err)
	}

	want := map[string]any{"a": 1.0}
	if got := f.Values(); !reflect.DeepEqual(got, want) {
		t.Errorf("Values() = %v, want %v", got, want)
	}
}

func TestForm_SubscribeWildcards(t *testing.T) {
	f := New()
	fld := f.CreateField("user.name", FieldProps{})

	var all, valueOnly []Topic
	f.Subscribe("field.**", func(ev Event) { all = append(all, ev.Topic) })
	f.Subscribe("field.value.change", func(ev Event) {
		valueOnly = append(valueOnly, ev.Topic)
		if ev.Path != "user.name" {
			t.Errorf("event path = %q, want user.name", ev.Path)
		}
		if ev.ID == "" {
			t.Error("event ID is empty")
		}
	})

	fld.SetValue("Alice")

	if len(valueOnly) != 1 {
		t.Fatalf("exact subscriber received %d events, want 1", len(valueOnly))
	}
	// field.value.change only; form.values.change does not match field.**
	if !reflect.DeepEqual(all, []Topic{TopicFieldValueChange}) {
		t.Errorf("wildcard subscriber saw %v, want [field.value.change]", all)
	}
}

func TestForm_SubscribeCancel(t *testing.T) {
	f := New()
	fld := f.CreateField("user.name", FieldProps{})

	var count int
	sub := f.Subscribe("**", func(Event) { count++ })
	sub.Cancel()

	fld.SetValue("Alice")
	if count != 0 {
		t.Errorf("cancelled handler received %d events, want 0", count)
	}
}

func TestForm_WithLifeCycle(t *testing.T) {
	var topics []Topic
	f := New(WithLifeCycle("form.init", func(ev Event) { topics = append(topics, ev.Topic) }))

	if !reflect.DeepEqual(topics, []Topic{TopicFormInit}) {
		t.Errorf("topics = %v, want [form.init]", topics)
	}
	_ = f
}

func TestForm_InputEventOrder(t *testing.T) {
	f := New()
	fld := f.CreateField("user.name", FieldProps{})

	var topics []Topic
	f.Subscribe("**", func(ev Event) { topics = append(topics, ev.Topic) })

	fld.OnInput(context.Background(), "Bob")

	want := []Topic{
		TopicFieldValueChange,
		TopicFormValuesChange,
		TopicFieldInputChange,
		TopicFormInputChange,
		TopicFieldValidateStart,
		TopicFieldValidateEnd,
	}
	if !reflect.DeepEqual(topics, want) {
		t.Errorf("event order = %v, want %v", topics, want)
	}
}

func TestForm_ValidateAggregates(t *testing.T) {
	f := New()
	f.CreateField("user.name", FieldProps{
		Validator: validator.DescribeRule(validator.Rule{Required: boolPtr(true)}),
	})
	f.CreateField("user.email", FieldProps{
		Validator: validator.DescribeRule(validator.Rule{Required: boolPtr(true)}),
	})
	f.CreateField("layout", FieldProps{
		Void:      true,
		Validator: validator.DescribeRule(validator.Rule{Required: boolPtr(true)}),
	})

	fb, err := f.Validate(context.Background(), "")
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}

	// Two required fields fail; the void field is skipped.
	if len(fb.Errors) != 2 {
		t.Errorf("Errors = %v, want 2 messages", fb.Errors)
	}
	if got := f.Errors(); len(got) != 2 {
		t.Errorf("form Errors() = %v, want 2 messages", got)
	}
}

func TestForm_ValidateFirst(t *testing.T) {
	f := New(WithValidateFirst())
	fld := f.CreateField("user.name", FieldProps{
		Validator: validator.DescribeRules(
			validator.Rule{Required: boolPtr(true)},
			validator.Rule{MinLength: intPtr(3)},
		),
	})
	fld.SetValue("")

	fb, err := fld.Validate(context.Background(), "")
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if len(fb.Errors) != 1 {
		t.Errorf("Errors = %v with validateFirst, want a single message", fb.Errors)
	}
}

func TestForm_Reset(t *testing.T) {
	f := New()
	name := f.CreateField("user.name", FieldProps{InitialValue: "Alice"})
	email := f.CreateField("user.email", FieldProps{InitialValue: "a@b.co"})
	name.OnInput(context.Background(), "Bob")
	email.OnInput(context.Background(), "x@y.io")

	var resets []Topic
	f.Subscribe("form.reset", func(ev Event) { resets = append(resets, ev.Topic) })

	if _, err := f.Reset(context.Background(), "user.**", ResetOptions{}); err != nil {
		t.Fatalf("Reset: %v", err)
	}

	if got := name.Value(); got != "Alice" {
		t.Errorf("name Value() = %v, want Alice", got)
	}
	if got := email.Value(); got != "a@b.co" {
		t.Errorf("email Value() = %v, want a@b.co", got)
	}
	if f.Modified() {
		t.Error("form Modified() = true after reset")
	}
	if len(resets) != 1 {
		t.Errorf("form.reset fired %d times, want 1", len(resets))
	}
}

func TestForm_NotifierObservesMutations(t *testing.T) {
	f := New()
	fld := f.CreateField("user.name", FieldProps{})

	var changes []observable.Change
	f.Notifier().SubscribePath("user.name", func(c observable.Change) {
		changes = append(changes, c)
	})

	fld.SetValue("Alice")

	if len(changes) != 1 {
		t.Fatalf("observer saw %d changes, want 1", len(changes))
	}
	if changes[0].NewValue != "Alice" || changes[0].Kind != observable.KindSet {
		t.Errorf("change = %+v, want set of Alice", changes[0])
	}
}

func TestForm_WithEngine(t *testing.T) {
	calls := 0
	f := New(WithEngine(engineFunc(func(ctx context.Context, value any, desc validator.Description, opts validator.Options) ([]validator.Result, error) {
		calls++
		return []validator.Result{{Type: validator.KindError, Message: "nope"}}, nil
	})))
	fld := f.CreateField("user.name", FieldProps{})
	fld.SetValue("x")

	fb, err := fld.Validate(context.Background(), "")
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if calls != 1 {
		t.Errorf("engine called %d times, want 1", calls)
	}
	if !reflect.DeepEqual(fb.Errors, []string{"nope"}) {
		t.Errorf("Errors = %v, want [nope]", fb.Errors)
	}
}

func TestForm_DiscardStaleResults(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int32

	f := New(
		WithDiscardStaleResults(),
		WithEngine(engineFunc(func(ctx context.Context, value any, desc validator.Description, opts validator.Options) ([]validator.Result, error) {
			if calls.Add(1) == 1 {
				close(entered)
				<-release
				return []validator.Result{{Type: validator.KindError, Message: "stale"}}, nil
			}
			return []validator.Result{{Type: validator.KindError, Message: "fresh"}}, nil
		})),
	)
	fld := f.CreateField("user.name", FieldProps{})

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = fld.Validate(context.Background(), "")
	}()

	// First run is stalled inside the engine; a newer run completes.
	<-entered
	if _, err := fld.Validate(context.Background(), ""); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	// Release the stalled run; its store write must be discarded.
	close(release)
	<-done

	if got := fld.Errors(); !reflect.DeepEqual(got, []string{"fresh"}) {
		t.Errorf("Errors() = %v, want only the fresh run's message", got)
	}
}

// engineFunc adapts a function to the Engine interface.
type engineFunc func(context.Context, any, validator.Description, validator.Options) ([]validator.Result, error)

func (fn engineFunc) Validate(ctx context.Context, value any, desc validator.Description, opts validator.Options) ([]validator.Result, error) {
	return fn(ctx, value, desc, opts)
}

func intPtr(n int) *int { return &n }

func TestForm_RemoveField(t *testing.T) {
	f := New()
	f.CreateField("user.name", FieldProps{Value: "Alice"})

	f.RemoveField("user.name")

	if f.Field("user.name") != nil {
		t.Error("field still registered after RemoveField")
	}
	// The value trees are left untouched.
	if !f.ExistValuesIn("user.name") {
		t.Error("RemoveField cleared the value tree")
	}
}

func TestForm_FieldsSorted(t *testing.T) {
	f := New()
	f.CreateField("b", FieldProps{})
	f.CreateField("a", FieldProps{})
	f.CreateField("c", FieldProps{})

	var paths []string
	for _, fld := range f.Fields("") {
		paths = append(paths, fld.Path().String())
	}
	if !sort.StringsAreSorted(paths) {
		t.Errorf("Fields(\"\") order = %v, want sorted", paths)
	}
}

func TestForm_PathTypeRoundTrip(t *testing.T) {
	f := New()
	fld := f.CreateField(fieldpath.Join("items", "0", "price"), FieldProps{Value: 9.5})

	if got := fld.Path(); got != "items.0.price" {
		t.Errorf("Path() = %q, want items.0.price", got)
	}
	if got := f.GetValuesIn("items.0.price"); got != 9.5 {
		t.Errorf("GetValuesIn = %v, want 9.5", got)
	}
}
