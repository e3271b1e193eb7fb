// Package vtree implements a path-addressed value tree backed by a JSON
// document. The form's values and initial-values stores are both trees;
// fields hold only a path into them, never a local copy of the value.
package vtree

import (
	"encoding/json"
	"sync"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Tree is a mutable value tree addressed by dot paths.
// The zero value is not usable; use New.
// All methods are safe for concurrent use.
type Tree struct {
	mu  sync.RWMutex
	raw string
}

// New creates an empty tree.
func New() *Tree {
	return &Tree{raw: "{}"}
}

// Raw returns the tree as a JSON document. The returned string is a
// detached snapshot; later mutations do not affect it.
func (t *Tree) Raw() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.raw
}

// Get returns the value at path. The result's Exists method reports
// whether the path is present. An empty path addresses the whole tree.
func (t *Tree) Get(path string) gjson.Result {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if path == "" {
		return gjson.Parse(t.raw)
	}
	return gjson.Get(t.raw, path)
}

// Exists reports whether a value is present at path.
func (t *Tree) Exists(path string) bool {
	return t.Get(path).Exists()
}

// Set writes v at path. A nil v removes the path: absence is the tree's
// empty/invalid marker.
func (t *Tree) Set(path string, v any) error {
	if v == nil {
		return t.Delete(path)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	raw, err := sjson.Set(t.raw, path, v)
	if err != nil {
		return err
	}
	t.raw = raw
	return nil
}

// SetRaw writes a raw JSON fragment at path. Used to restore detached
// snapshots without a decode/encode round trip.
func (t *Tree) SetRaw(path, rawValue string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	raw, err := sjson.SetRaw(t.raw, path, rawValue)
	if err != nil {
		return err
	}
	t.raw = raw
	return nil
}

// Delete removes the value at path. Deleting a missing path is a no-op.
func (t *Tree) Delete(path string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	raw, err := sjson.Delete(t.raw, path)
	if err != nil {
		return err
	}
	t.raw = raw
	return nil
}

// SetAll replaces the entire tree with v. A nil v empties the tree.
func (t *Tree) SetAll(v any) error {
	if v == nil {
		t.mu.Lock()
		t.raw = "{}"
		t.mu.Unlock()
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	t.mu.Lock()
	t.raw = string(data)
	t.mu.Unlock()
	return nil
}

// Value returns the decoded form of the whole tree.
func (t *Tree) Value() any {
	return t.Get("").Value()
}
