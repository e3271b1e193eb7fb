// Package form implements a reactive state core for form-like UI.
//
// A Form owns two parallel value trees (current and initial values,
// both addressed by fieldpath paths), a registry of fields, a feedback
// store for validation messages and a lifecycle event fan-out. A Field
// is a single addressable node: it stores UI-relevant flags and binding
// slots locally, and derives its value, ancestry, effective display and
// feedback from the form through its path - value state is never
// duplicated on the node.
//
// # Data flow
//
//	UI input -> Field.OnInput -> values tree write -> change fan-out
//	  -> dependent fields re-derive -> validation -> feedback store
//	  -> bindings re-read
//
// # Lifecycle
//
// Fields are created through Form.CreateField (exactly one field per
// path) and driven by whatever layer manages mounting: OnInit, OnMount,
// input cycles (OnInput/OnFocus/OnBlur), OnUnmount. On unmount a field
// whose path has left the value tree is dropped from the registry.
//
// Every mutator commits its writes as one observable transaction:
// observers see all writes of a mutation before any notification and
// never partial state. Lifecycle events are delivered synchronously in
// call order through Form.Subscribe, with wildcard topic patterns
// ("field.*", "form.**").
//
// # Validation
//
// Field.Validate runs the field's rule description through the form's
// engine. Results are partitioned into feedback buckets and written to
// the feedback store keyed by (path, code), so validator output and
// externally injected feedback (SetErrors/SetWarnings) coexist.
// Overlapping runs on one field are independent and race at the store
// (last write per code wins) unless the form is built with
// WithDiscardStaleResults.
package form
