package page

import (
	"sync"
	"sync/atomic"
)

// Shared is a reference-counted, mutex-guarded handle onto a Pool. The
// table controller and, per SPEC_FULL.md §9, a hypothetical future
// background flusher can each hold a clone without building a graph of
// back-references from storage into its owning tables. The mutex is
// expected to be uncontended under the single-threaded model of §5; it
// exists so the shared-handle shape already accommodates concurrent
// mutation if that is introduced later.
type Shared struct {
	mu   *sync.Mutex
	pool *Pool
	refs *int32
}

// NewShared wraps a fresh Pool in a Shared handle with one reference.
func NewShared() *Shared {
	refs := int32(1)
	return &Shared{mu: &sync.Mutex{}, pool: NewPool(), refs: &refs}
}

// Clone returns a new handle onto the same underlying Pool, incrementing
// the shared reference count.
func (s *Shared) Clone() *Shared {
	atomic.AddInt32(s.refs, 1)
	return &Shared{mu: s.mu, pool: s.pool, refs: s.refs}
}

// Release decrements the reference count and returns the count remaining
// after the release.
func (s *Shared) Release() int32 {
	return atomic.AddInt32(s.refs, -1)
}

// With runs fn with the underlying pool locked.
func (s *Shared) With(fn func(*Pool) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.pool)
}

// AddPage is a convenience wrapper around With for the common case.
func (s *Shared) AddPage() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pool.AddPage()
}

// GetPage is a convenience wrapper around With for the common case.
func (s *Shared) GetPage(i uint64) (*Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pool.GetPage(i)
}

// PageCount is a convenience wrapper around With for the common case.
func (s *Shared) PageCount() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pool.PageCount()
}
