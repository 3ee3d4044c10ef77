// Package container provides the single ordered-tree abstraction shared
// by the allocator's free-hole set, every table's primary-key index, and
// (per SPEC_FULL.md §9) any future catalog ordering need. It is a thin
// generic wrapper over google/btree so callers never import the btree
// package directly or hand-roll a second balanced tree.
package container

import "github.com/google/btree"

// DefaultNodeSize is the B-tree branching factor used when callers don't
// load one from config. spec.md §6 calls this NODE_SIZE and specifies a
// default of 16.
const DefaultNodeSize = 16

// Less reports whether a sorts before b in the tree's total order.
type Less[T any] func(a, b T) bool

// Tree is an ordered, duplicate-free collection supporting the
// operations spec.md §9 asks for: insert, remove, find,
// find_greater_equal, find_less_equal, len, and ordered traversal.
type Tree[T any] struct {
	t *btree.BTreeG[T]
}

// New creates an empty Tree with the given branching factor and
// ordering.
func New[T any](nodeSize int, less Less[T]) *Tree[T] {
	if nodeSize <= 1 {
		nodeSize = DefaultNodeSize
	}
	return &Tree[T]{t: btree.NewG(nodeSize, btree.LessFunc[T](less))}
}

// Insert adds item, replacing any existing item that compares equal.
func (t *Tree[T]) Insert(item T) {
	t.t.ReplaceOrInsert(item)
}

// Delete removes the item equal to item, if present.
func (t *Tree[T]) Delete(item T) (T, bool) {
	return t.t.Delete(item)
}

// Find returns the item equal to item, if present.
func (t *Tree[T]) Find(item T) (T, bool) {
	return t.t.Get(item)
}

// Min returns the smallest item in the tree.
func (t *Tree[T]) Min() (T, bool) {
	return t.t.Min()
}

// Max returns the largest item in the tree.
func (t *Tree[T]) Max() (T, bool) {
	return t.t.Max()
}

// Len returns the number of items in the tree.
func (t *Tree[T]) Len() int {
	return t.t.Len()
}

// AscendGreaterOrEqual visits items in ascending order starting from the
// first item >= pivot, until fn returns false.
func (t *Tree[T]) AscendGreaterOrEqual(pivot T, fn func(T) bool) {
	t.t.AscendGreaterOrEqual(pivot, fn)
}

// DescendLessOrEqual visits items in descending order starting from the
// first item <= pivot, until fn returns false.
func (t *Tree[T]) DescendLessOrEqual(pivot T, fn func(T) bool) {
	t.t.DescendLessOrEqual(pivot, fn)
}

// Ascend visits every item in ascending order until fn returns false.
func (t *Tree[T]) Ascend(fn func(T) bool) {
	t.t.Ascend(fn)
}

// Descend visits every item in descending order until fn returns false.
func (t *Tree[T]) Descend(fn func(T) bool) {
	t.t.Descend(fn)
}
