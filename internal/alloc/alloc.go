// Package alloc implements the space allocator of SPEC_FULL.md §4.2: a
// free-list of holes plus a monotonically advancing tail, choosing
// placement by a pluggable best-fit or worst-fit strategy.
package alloc

import (
	"fmt"

	"github.com/nosqlite-go/nosqlite/internal/container"
	"github.com/nosqlite-go/nosqlite/internal/page"
)

// Strategy names the allocator's placement policy.
type Strategy string

const (
	BestFit  Strategy = "best_fit"
	WorstFit Strategy = "worst_fit"
)

// ErrKind enumerates the allocator's error taxonomy.
type ErrKind int

const (
	ErrInvalidSize ErrKind = iota + 1
	ErrLinkNotFound
)

// Error is the allocator's typed error.
type Error struct {
	Kind    ErrKind
	Message string
}

func (e *Error) Error() string { return "alloc: " + e.Message }

func errf(kind ErrKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// hole is one free page.Link ordered by (Length, PageIndex, Start)
// ascending. This single ordering serves both strategies: best-fit takes
// the first hole >= n in ascending order (smallest qualifying length,
// lowest page, lowest start); worst-fit takes the largest length found
// via the tree's Max, then the first hole of that length in ascending
// order (lowest page, lowest start).
type hole struct {
	Link page.Link
}

func holeLess(a, b hole) bool {
	if a.Link.Length != b.Link.Length {
		return a.Link.Length < b.Link.Length
	}
	if a.Link.PageIndex != b.Link.PageIndex {
		return a.Link.PageIndex < b.Link.PageIndex
	}
	return a.Link.Start < b.Link.Start
}

// Allocator places new records into a shared page pool and reclaims
// freed regions for reuse. It is not safe for concurrent use without
// external synchronization beyond what Shared already provides on the
// underlying pool (see §5 of SPEC_FULL.md: single-threaded mutation).
type Allocator struct {
	pool     *page.Shared
	strategy Strategy
	holes    *container.Tree[hole]
	tail     page.Link
}

// New creates an Allocator over pool using the given strategy and
// B-tree node size (spec.md §6's NODE_SIZE, default 16 via
// container.DefaultNodeSize).
func New(pool *page.Shared, strategy Strategy, nodeSize int) *Allocator {
	return &Allocator{
		pool:     pool,
		strategy: strategy,
		holes:    container.New(nodeSize, holeLess),
		tail:     page.Link{PageIndex: 0, Start: 0, Length: 0},
	}
}

// Allocate returns a page.Link of the requested length, drawn from an
// existing hole when one qualifies or carved from the tail otherwise. n
// must be in [1, page.Size].
func (a *Allocator) Allocate(n uint32) (page.Link, error) {
	if n == 0 || n > page.Size {
		return page.Link{}, errf(ErrInvalidSize, "allocate: size %d out of [1, %d]", n, page.Size)
	}

	if h, ok := a.pick(n); ok {
		a.holes.Delete(h)
		if h.Link.Length > n {
			leftover := hole{Link: page.Link{
				PageIndex: h.Link.PageIndex,
				Start:     h.Link.Start + n,
				Length:    h.Link.Length - n,
			}}
			a.holes.Insert(leftover)
		}
		return page.Link{PageIndex: h.Link.PageIndex, Start: h.Link.Start, Length: n}, nil
	}

	return a.carveFromTail(n)
}

// pick selects a qualifying hole without mutating the tree.
func (a *Allocator) pick(n uint32) (hole, bool) {
	switch a.strategy {
	case WorstFit:
		h, ok := a.holes.Max()
		if !ok || h.Link.Length < n {
			return hole{}, false
		}
		a.holes.AscendGreaterOrEqual(hole{Link: page.Link{Length: h.Link.Length}}, func(first hole) bool {
			h = first
			return false
		})
		return h, true
	default: // BestFit
		pivot := hole{Link: page.Link{Length: n}}
		var found hole
		ok := false
		a.holes.AscendGreaterOrEqual(pivot, func(h hole) bool {
			found = h
			ok = true
			return false
		})
		return found, ok
	}
}

// carveFromTail advances the tail to host n bytes. If the current tail
// page has fewer than n bytes remaining, the remainder is abandoned (not
// pushed to the free set) and a new page hosts the allocation in full,
// matching the source behaviour flagged as an open question in
// SPEC_FULL.md §9 / spec.md §9.
func (a *Allocator) carveFromTail(n uint32) (page.Link, error) {
	// tail.Start is 0 only before the first carve. That carve takes a
	// fresh page, so allocators sharing one pool never use the same page.
	if a.tail.Start == 0 {
		a.tail = page.Link{PageIndex: a.pool.AddPage(), Start: 0, Length: 0}
	}

	remaining := page.Size - a.tail.Start
	if remaining < n {
		newIndex := a.pool.AddPage()
		a.tail = page.Link{PageIndex: newIndex, Start: 0, Length: 0}
	}

	result := page.Link{PageIndex: a.tail.PageIndex, Start: a.tail.Start, Length: n}
	a.tail.Start += n
	return result, nil
}

// Free returns link to the free set for future reuse. Neighbour
// coalescing is not performed, matching the source (spec.md §4.2); tests
// must tolerate non-coalesced holes.
func (a *Allocator) Free(link page.Link) {
	a.holes.Insert(hole{Link: link})
}

// AllocatedSize returns the tail's raw linear position (page index times
// page.Size plus start offset). Abandoned page remainders are counted.
func (a *Allocator) AllocatedSize() uint64 {
	return a.tail.RawPosition()
}
