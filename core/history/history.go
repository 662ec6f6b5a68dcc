// Package history holds the bounded, index-addressed command log of a shell
// session.
package history

import (
	"errors"
	"fmt"
)

const (
	// DefaultCapacity is the number of entries a store accepts when no
	// ceiling is given.
	DefaultCapacity = 2000

	// DefaultListLimit is the number of entries ListRecent returns when no
	// limit is given.
	DefaultListLimit = 10
)

var (
	// ErrCapacityExceeded is returned by Append once the store is full.
	ErrCapacityExceeded = errors.New("history capacity exceeded")

	// ErrNotFound is returned by Get for indices with no entry.
	ErrNotFound = errors.New("event not found")
)

// Entry is one recorded command line and its 1-based position in the log.
type Entry struct {
	Index int
	Line  string
}

func (e Entry) String() string {
	return fmt.Sprintf("%d %s", e.Index, e.Line)
}

// Store is an append-only log of command lines. Indices are assigned densely
// starting at 1, index 0 never matches.
//
// A Store is not safe for concurrent use.
type Store struct {
	entries  []Entry
	capacity int
}

// New creates a store that holds at most capacity entries, capacity <= 0
// selects DefaultCapacity.
func New(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{capacity: capacity}
}

// Len returns the highest assigned index, 0 if nothing was appended.
func (s *Store) Len() int {
	return len(s.entries)
}

// Cap returns the maximum number of entries the store accepts.
func (s *Store) Cap() int {
	return s.capacity
}

// Append records line under the next index and returns that index.
func (s *Store) Append(line string) (int, error) {
	if len(s.entries) >= s.capacity {
		return 0, fmt.Errorf("%w: limit is %d entries", ErrCapacityExceeded, s.capacity)
	}

	index := len(s.entries) + 1
	s.entries = append(s.entries, Entry{Index: index, Line: line})
	return index, nil
}

// Get returns the entry at the 1-based index.
func (s *Store) Get(index int) (Entry, error) {
	if index <= 0 || index > len(s.entries) {
		return Entry{}, fmt.Errorf("!%d: %w", index, ErrNotFound)
	}
	return s.entries[index-1], nil
}

// Latest returns the most recently appended entry, ok is false if the store
// is empty.
func (s *Store) Latest() (entry Entry, ok bool) {
	if len(s.entries) == 0 {
		return Entry{}, false
	}
	return s.entries[len(s.entries)-1], true
}

// ListRecent returns up to limit entries, most recent first. A limit <= 0
// selects DefaultListLimit.
func (s *Store) ListRecent(limit int) []Entry {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > len(s.entries) {
		limit = len(s.entries)
	}

	out := make([]Entry, 0, limit)
	for i := len(s.entries) - 1; i >= len(s.entries)-limit; i-- {
		out = append(out, s.entries[i])
	}
	return out
}
