// ============================================================================
// meinZAHLWERK (mZW) - Big-Integer Toolkit
// ============================================================================
//
// Package:     heap
// Description: Generic array-backed binary min/max heap over a comparator
// Author:      Mike Stoffels
// Created:     2026-09-18
// License:     MIT
// ============================================================================

// Package heap provides a single generic binary heap. The heap kind (Min or
// Max) is turned into a prefer predicate at construction time, so both
// variants share one implementation.
package heap

import (
	"fmt"
	"math/big"

	"github.com/msto63/mZW/foundation/core/errors"
	"github.com/msto63/mZW/foundation/utils/mathx"
	"github.com/msto63/mZW/pkg/result"
)

// Comparator is a three-way ordering returning a negative number, zero or a
// positive number
type Comparator[T any] func(a, b T) int

// Kind selects which comparator extreme sits at the root
type Kind int

const (
	// Min keeps the smallest element at the root
	Min Kind = iota
	// Max keeps the largest element at the root
	Max
)

// String returns "min" or "max"
func (k Kind) String() string {
	if k == Max {
		return "max"
	}
	return "min"
}

type options struct {
	capacity int
}

// Option configures a heap at construction
type Option func(*options)

// WithCapacity preallocates room for n elements
func WithCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.capacity = n
		}
	}
}

// Heap is a binary heap stored in a dense slice. Index 0 is the root; the
// children of i are 2i+1 and 2i+2.
type Heap[T any] struct {
	kind   Kind
	cmp    Comparator[T]
	prefer func(a, b T) bool
	values []T
}

// New creates an empty heap of the given kind
func New[T any](kind Kind, cmp Comparator[T], opts ...Option) *Heap[T] {
	o := options{}
	for _, fn := range opts {
		fn(&o)
	}
	h := &Heap[T]{
		kind:   kind,
		cmp:    cmp,
		values: make([]T, 0, o.capacity),
	}
	if kind == Max {
		h.prefer = func(a, b T) bool { return cmp(a, b) > 0 }
	} else {
		h.prefer = func(a, b T) bool { return cmp(a, b) < 0 }
	}
	return h
}

// NewMin creates an empty min-heap
func NewMin[T any](cmp Comparator[T], opts ...Option) *Heap[T] {
	return New(Min, cmp, opts...)
}

// NewMax creates an empty max-heap
func NewMax[T any](cmp Comparator[T], opts ...Option) *Heap[T] {
	return New(Max, cmp, opts...)
}

// NewBigInt creates a heap of big integers under their natural ordering
func NewBigInt(kind Kind, opts ...Option) *Heap[*big.Int] {
	return New[*big.Int](kind, mathx.Compare, opts...)
}

// Heapify bulk-loads values into a new heap by repeated push
func Heapify[T any](values []T, kind Kind, cmp Comparator[T]) *Heap[T] {
	h := New(kind, cmp, WithCapacity(len(values)))
	for _, v := range values {
		h.Push(v)
	}
	return h
}

// Kind returns the heap kind
func (h *Heap[T]) Kind() Kind { return h.kind }

// Comparator returns the ordering the heap was built with
func (h *Heap[T]) Comparator() Comparator[T] { return h.cmp }

// Size returns the number of held elements
func (h *Heap[T]) Size() int { return len(h.values) }

// IsEmpty reports whether the heap holds no elements
func (h *Heap[T]) IsEmpty() bool { return len(h.values) == 0 }

// Push inserts v and returns the index at which it settled. A panicking
// comparator leaves the heap unchanged and yields a failure.
func (h *Heap[T]) Push(v T) (res result.Result[int]) {
	n := len(h.values)
	defer func() {
		if r := recover(); r != nil {
			h.values = h.values[:n]
			res = result.Failure[int]("push failed: %v", r)
		}
	}()
	h.values = append(h.values, v)
	return result.Success(h.up(n))
}

// Pop removes and returns the root
func (h *Heap[T]) Pop() result.Result[T] {
	n := len(h.values)
	if n == 0 {
		return result.FromError[T](errors.EmptyStructure(errors.ModuleHeap, "Pop"))
	}
	root := h.values[0]
	last := n - 1
	h.values[0] = h.values[last]
	var zero T
	h.values[last] = zero
	h.values = h.values[:last]
	if last > 0 {
		h.down(0)
	}
	return result.Success(root)
}

// Peek returns the root without removing it
func (h *Heap[T]) Peek() result.Result[T] {
	if len(h.values) == 0 {
		return result.FromError[T](errors.EmptyStructure(errors.ModuleHeap, "Peek"))
	}
	return result.Success(h.values[0])
}

// Values returns a copy of the elements in array order
func (h *Heap[T]) Values() []T {
	out := make([]T, len(h.values))
	copy(out, h.values)
	return out
}

// Clear removes all elements
func (h *Heap[T]) Clear() {
	clear(h.values)
	h.values = h.values[:0]
}

// Drain pops every element and returns them in extraction order
func (h *Heap[T]) Drain() []T {
	out := make([]T, 0, len(h.values))
	for !h.IsEmpty() {
		out = append(out, h.Pop().Value)
	}
	return out
}

// Verify checks the heap property for every parent/child pair
func (h *Heap[T]) Verify() error {
	for i := 1; i < len(h.values); i++ {
		p := (i - 1) / 2
		if h.prefer(h.values[i], h.values[p]) {
			return fmt.Errorf("heap property violated at index %d (parent %d)", i, p)
		}
	}
	return nil
}

// up finds the final slot before moving anything, so a comparator panic
// cannot leave the slice half shifted
func (h *Heap[T]) up(j int) int {
	v := h.values[j]
	target := j
	for target > 0 {
		p := (target - 1) / 2
		if !h.prefer(v, h.values[p]) {
			break
		}
		target = p
	}
	for j != target {
		p := (j - 1) / 2
		h.values[j] = h.values[p]
		j = p
	}
	h.values[target] = v
	return target
}

func (h *Heap[T]) down(i int) {
	n := len(h.values)
	for {
		j := 2*i + 1
		if j >= n {
			return
		}
		if r := j + 1; r < n && h.prefer(h.values[r], h.values[j]) {
			j = r
		}
		if !h.prefer(h.values[j], h.values[i]) {
			return
		}
		h.values[i], h.values[j] = h.values[j], h.values[i]
		i = j
	}
}
