// Package observable provides change notification and transactional
// batching for tracked form state.
//
// Components subscribe to state changes globally or by path. Mutators
// collect their writes into a Batch and commit it once, so observers see
// every write of one logical mutation before any notification fires and
// never observe partial state.
package observable

import (
	"sync"
)

// Kind represents the kind of state change.
type Kind int

const (
	// KindSet indicates a value was set or updated.
	KindSet Kind = iota

	// KindDelete indicates a value was deleted.
	KindDelete

	// KindReplace indicates an entire tree was replaced.
	KindReplace
)

// String returns the change kind name.
func (k Kind) String() string {
	switch k {
	case KindSet:
		return "set"
	case KindDelete:
		return "delete"
	case KindReplace:
		return "replace"
	default:
		return "unknown"
	}
}

// Change represents a single observed state change.
type Change struct {
	// Path is the dot-separated path to the changed value.
	// Empty for replace events.
	Path string

	// Kind is the kind of change.
	Kind Kind

	// OldValue is the previous value (may be nil).
	OldValue any

	// NewValue is the new value (may be nil for deletes).
	NewValue any

	// Source identifies where the change came from.
	Source string
}

// Observer is called when a tracked state change occurs.
type Observer func(change Change)

// Subscription represents an active observer registration.
type Subscription struct {
	id       uint64
	notifier *Notifier
}

// Cancel removes this subscription.
func (s *Subscription) Cancel() {
	if s.notifier != nil {
		s.notifier.unsubscribe(s.id)
	}
}

// Notifier manages state-change subscriptions and delivers changes.
// All methods are safe for concurrent use.
type Notifier struct {
	mu sync.RWMutex

	// Global observers that receive all changes
	globalObservers map[uint64]Observer

	// Path-specific observers; an observer on "user" also receives
	// changes to "user.name"
	pathObservers map[string]map[uint64]Observer

	nextID uint64
	closed bool
}

// NewNotifier creates a new Notifier.
func NewNotifier() *Notifier {
	return &Notifier{
		globalObservers: make(map[uint64]Observer),
		pathObservers:   make(map[string]map[uint64]Observer),
	}
}

// Subscribe registers an observer for all changes.
func (n *Notifier) Subscribe(observer Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	n.globalObservers[id] = observer

	return &Subscription{id: id, notifier: n}
}

// SubscribePath registers an observer for changes at or under a path.
// For example, subscribing to "user" receives changes to "user.name".
func (n *Notifier) SubscribePath(path string, observer Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++

	if n.pathObservers[path] == nil {
		n.pathObservers[path] = make(map[uint64]Observer)
	}
	n.pathObservers[path][id] = observer

	return &Subscription{id: id, notifier: n}
}

// Notify delivers a single change to all matching observers.
func (n *Notifier) Notify(change Change) {
	n.deliver([]Change{change})
}

// Close shuts down the notifier. Further notifications are dropped.
// It is safe to call Close multiple times.
func (n *Notifier) Close() {
	n.mu.Lock()
	n.closed = true
	n.mu.Unlock()
}

// unsubscribe removes an observer by ID.
func (n *Notifier) unsubscribe(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	delete(n.globalObservers, id)

	for path, observers := range n.pathObservers {
		delete(observers, id)
		if len(observers) == 0 {
			delete(n.pathObservers, path)
		}
	}
}

// deliver sends changes, in order, to all matching observers.
// Observers are invoked outside the lock.
func (n *Notifier) deliver(changes []Change) {
	if len(changes) == 0 {
		return
	}

	type delivery struct {
		observer Observer
		change   Change
	}

	n.mu.RLock()
	if n.closed {
		n.mu.RUnlock()
		return
	}

	var deliveries []delivery
	for _, change := range changes {
		for _, obs := range n.globalObservers {
			deliveries = append(deliveries, delivery{obs, change})
		}
		if change.Path == "" {
			// Replace event - every path observer is affected
			for _, pathObs := range n.pathObservers {
				for _, obs := range pathObs {
					deliveries = append(deliveries, delivery{obs, change})
				}
			}
			continue
		}
		for path, pathObs := range n.pathObservers {
			if path == change.Path || isParentPath(path, change.Path) {
				for _, obs := range pathObs {
					deliveries = append(deliveries, delivery{obs, change})
				}
			}
		}
	}
	n.mu.RUnlock()

	for _, d := range deliveries {
		d.observer(d.change)
	}
}

// isParentPath checks if parent is a parent path of child.
// e.g., "user" is parent of "user.name".
func isParentPath(parent, child string) bool {
	if len(parent) >= len(child) {
		return false
	}
	if parent == "" {
		return true
	}
	return child[:len(parent)] == parent && child[len(parent)] == '.'
}
