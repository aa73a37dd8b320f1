// SPDX-License-Identifier: EPL-2.0

// Package history keeps the generation and training sessions of a run.
package history

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindGeneration Kind = "generation"
	KindTraining   Kind = "training"
)

// Item is one entry in the history list.
type Item struct {
	ID          string
	Kind        Kind
	Title       string
	Description string
	CreatedAt   time.Time
	// Path of the saved clip, if any.
	Path string
}

// Store is an in-memory history, safe for concurrent use.
type Store struct {
	items []Item
	now   func() time.Time
	mtx   sync.RWMutex
}

func NewStore() *Store {
	return &Store{now: time.Now}
}

// Add stores it, filling ID and CreatedAt when unset, and returns the
// stored copy.
func (s *Store) Add(it Item) Item {
	if it.ID == "" {
		it.ID = uuid.NewString()
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	if it.CreatedAt.IsZero() {
		it.CreatedAt = s.now()
	}
	s.items = append(s.items, it)

	return it
}

func (s *Store) Get(id string) (Item, bool) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	for _, it := range s.items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// Delete removes the item with id and reports whether it existed.
func (s *Store) Delete(id string) bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	i := slices.IndexFunc(s.items, func(it Item) bool { return it.ID == id })
	if i < 0 {
		return false
	}
	s.items = slices.Delete(s.items, i, i+1)
	return true
}

// List returns items of kind, newest first. An empty kind lists everything.
func (s *Store) List(kind Kind) []Item {
	s.mtx.RLock()
	out := make([]Item, 0, len(s.items))
	for _, it := range s.items {
		if kind == "" || it.Kind == kind {
			out = append(out, it)
		}
	}
	s.mtx.RUnlock()

	// Reversed first so ties list the later insert first.
	slices.Reverse(out)
	slices.SortStableFunc(out, func(a, b Item) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	return out
}

func (s *Store) Len() int {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return len(s.items)
}

func (s *Store) Clear() {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	s.items = nil
}
