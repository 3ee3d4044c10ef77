// Package registry implements the identity registry of SPEC_FULL.md
// §4.3: a bidirectional mapping between monotonically assigned
// record-ids and the page.Link they currently occupy, so logical row
// identifiers remain stable across relocations.
package registry

import (
	"fmt"
	"sync"

	"github.com/nosqlite-go/nosqlite/internal/page"
)

// ID is a non-zero, monotonically assigned record identifier.
type ID uint64

// ErrNotFound is returned by RemoveID when the id is unknown.
type ErrNotFound struct {
	ID ID
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("registry: id %d not found", e.ID)
}

// Registry holds the forward (id -> link) and reverse (link -> id) maps
// as plain Go maps kept as synchronized inverses, per SPEC_FULL.md §9's
// direction to use the standard hash map rather than a bespoke one.
type Registry struct {
	forward map[ID]page.Link
	reverse map[page.Link]ID
	next    ID
}

// New returns an empty registry. The first id assigned by AddLink is 1.
func New() *Registry {
	return &Registry{
		forward: make(map[ID]page.Link),
		reverse: make(map[page.Link]ID),
		next:    1,
	}
}

// AddLink allocates the next id, records both mappings, and returns the
// new id.
func (r *Registry) AddLink(link page.Link) ID {
	id := r.next
	r.next++
	r.forward[id] = link
	r.reverse[link] = id
	return id
}

// GetLink returns the link currently registered for id.
func (r *Registry) GetLink(id ID) (page.Link, bool) {
	l, ok := r.forward[id]
	return l, ok
}

// GetID returns the id currently registered for link.
func (r *Registry) GetID(link page.Link) (ID, bool) {
	id, ok := r.reverse[link]
	return id, ok
}

// RemoveID deletes both mappings for id.
func (r *Registry) RemoveID(id ID) error {
	link, ok := r.forward[id]
	if !ok {
		return &ErrNotFound{ID: id}
	}
	delete(r.forward, id)
	delete(r.reverse, link)
	return nil
}

// IDCount returns the number of live ids.
func (r *Registry) IDCount() int {
	return len(r.forward)
}

// Shared wraps a Registry in a mutex-guarded handle whose clones share
// the same Registry and mutex. Unlike page.Shared it keeps no reference
// count and has no Release method.
type Shared struct {
	mu       *sync.Mutex
	registry *Registry
}

// NewShared wraps a fresh Registry.
func NewShared() *Shared {
	return &Shared{mu: &sync.Mutex{}, registry: New()}
}

// Clone returns a new handle onto the same underlying Registry.
func (s *Shared) Clone() *Shared {
	return &Shared{mu: s.mu, registry: s.registry}
}

func (s *Shared) AddLink(link page.Link) ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.AddLink(link)
}

func (s *Shared) GetLink(id ID) (page.Link, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.GetLink(id)
}

func (s *Shared) GetID(link page.Link) (ID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.GetID(link)
}

func (s *Shared) RemoveID(id ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.RemoveID(id)
}

func (s *Shared) IDCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.IDCount()
}
