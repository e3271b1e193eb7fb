package feedback

import (
	"sync"

	"github.com/dshills/formstate/fieldpath"
)

// Store is a keyed collection of feedback entries.
// All methods are safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	entries []Entry
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// Update upserts the entry keyed by (path, code), replacing its message
// list. An entry with no messages is removed instead.
func (s *Store) Update(e Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.entries {
		if s.entries[i].Path == e.Path && s.entries[i].Code == e.Code {
			if len(e.Messages) == 0 {
				s.entries = append(s.entries[:i], s.entries[i+1:]...)
				return
			}
			s.entries[i] = e
			return
		}
	}
	if len(e.Messages) == 0 {
		return
	}
	s.entries = append(s.entries, e)
}

// Find returns the flattened ordered message list of all entries
// matching the query.
func (s *Store) Find(q Query) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var messages []string
	for i := range s.entries {
		if s.entries[i].matches(q) {
			messages = append(messages, s.entries[i].Messages...)
		}
	}
	return messages
}

// Entries returns copies of all entries matching the query.
func (s *Store) Entries(q Query) []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Entry
	for i := range s.entries {
		if s.entries[i].matches(q) {
			e := s.entries[i]
			e.Messages = append([]string(nil), e.Messages...)
			out = append(out, e)
		}
	}
	return out
}

// Clear removes all entries at or under path. An empty path clears the
// whole store.
func (s *Store) Clear(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if path == "" {
		s.entries = nil
		return
	}

	kept := s.entries[:0]
	for i := range s.entries {
		if !fieldpath.Path(s.entries[i].Path).HasPrefix(fieldpath.Path(path)) {
			kept = append(kept, s.entries[i])
		}
	}
	s.entries = kept
}

// Len returns the number of stored entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
