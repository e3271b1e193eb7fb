package observable

import "sync"

// Batch collects the changes of one logical mutation and delivers them
// as a single transaction. The mutator performs all of its writes, adds
// a change per write, and commits once: observers are notified only
// after every write is in place, in write order.
type Batch struct {
	notifier *Notifier
	mu       sync.Mutex
	changes  []Change
}

// Begin creates a new batch bound to the notifier.
func (n *Notifier) Begin() *Batch {
	return &Batch{notifier: n}
}

// Add adds a change to the batch.
func (b *Batch) Add(change Change) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.changes = append(b.changes, change)
}

// Set adds a set change to the batch.
func (b *Batch) Set(path string, oldValue, newValue any, source string) {
	b.Add(Change{Path: path, Kind: KindSet, OldValue: oldValue, NewValue: newValue, Source: source})
}

// Delete adds a delete change to the batch.
func (b *Batch) Delete(path string, oldValue any, source string) {
	b.Add(Change{Path: path, Kind: KindDelete, OldValue: oldValue, Source: source})
}

// Replace adds a whole-tree replace change to the batch.
func (b *Batch) Replace(oldValue, newValue any, source string) {
	b.Add(Change{Kind: KindReplace, OldValue: oldValue, NewValue: newValue, Source: source})
}

// Commit delivers all collected changes to observers and empties the
// batch. Delivery happens on the committing goroutine, in add order.
func (b *Batch) Commit() {
	b.mu.Lock()
	changes := b.changes
	b.changes = nil
	b.mu.Unlock()

	b.notifier.deliver(changes)
}

// Discard clears the batch without notifying observers.
func (b *Batch) Discard() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.changes = nil
}

// Len returns the number of pending changes.
func (b *Batch) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.changes)
}
