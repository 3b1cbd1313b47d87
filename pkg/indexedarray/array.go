// ============================================================================
// meinZAHLWERK (mZW) - Big-Integer Toolkit
// ============================================================================
//
// Package:     indexedarray
// Description: Growable big-integer array with a range-maximum index
// Author:      Mike Stoffels
// Created:     2026-09-21
// License:     MIT
// ============================================================================

// Package indexedarray provides a dense, amortized-growth array of big
// integers paired with a segment tree. The tree answers comparator-maximum
// queries over any index range in O(log n) and is patched along one
// root-to-leaf path on push, pop and set. Every capacity change rebuilds it.
//
// Mutators report failures through result.Result instead of error values.
package indexedarray

import (
	"math"
	"math/big"

	"github.com/msto63/mZW/foundation/core/errors"
	"github.com/msto63/mZW/foundation/core/log"
	"github.com/msto63/mZW/foundation/utils/mathx"
	"github.com/msto63/mZW/pkg/heap"
	"github.com/msto63/mZW/pkg/result"
)

const (
	// DefaultCapacity is the initial and minimum buffer capacity
	DefaultCapacity = 16
	// DefaultGrowthFactor multiplies the capacity when the buffer is full
	DefaultGrowthFactor = 2.0
)

// Array is not safe for concurrent use
type Array struct {
	data    []*big.Int
	size    int
	growth  float64
	initial int
	cmp     mathx.Comparator
	seg     segmentTree
	logger  *log.Logger
	resizes int
}

// Option configures an Array
type Option func(*Array)

// WithCapacity sets the initial capacity; values below 1 are ignored
func WithCapacity(n int) Option {
	return func(a *Array) {
		if n > 0 {
			a.initial = n
		}
	}
}

// WithGrowthFactor sets the growth factor; values <= 1 are ignored
func WithGrowthFactor(f float64) Option {
	return func(a *Array) {
		if f > 1 && !math.IsInf(f, 0) {
			a.growth = f
		}
	}
}

// WithComparator replaces the natural ordering used by range queries,
// sorting and heap conversion
func WithComparator(cmp mathx.Comparator) Option {
	return func(a *Array) {
		if cmp != nil {
			a.cmp = cmp
		}
	}
}

// WithLogger sets the logger used for resize events
func WithLogger(l *log.Logger) Option {
	return func(a *Array) {
		if l != nil {
			a.logger = l
		}
	}
}

// New creates an empty array
func New(opts ...Option) *Array {
	a := &Array{
		initial: DefaultCapacity,
		growth:  DefaultGrowthFactor,
		cmp:     mathx.Compare,
		logger:  log.Discard(),
	}
	for _, fn := range opts {
		fn(a)
	}
	a.data = make([]*big.Int, a.initial)
	a.rebuild()
	return a
}

// FromSlice creates an array holding copies of values
func FromSlice(values []*big.Int, opts ...Option) *Array {
	a := New(opts...)
	if len(values) > len(a.data) {
		a.data = make([]*big.Int, len(values))
	}
	for i, v := range values {
		a.data[i] = new(big.Int).Set(v)
	}
	a.size = len(values)
	a.rebuild()
	return a
}

// FromHeap creates an array from the heap's elements in heap array order
func FromHeap(h *heap.Heap[*big.Int], opts ...Option) *Array {
	return FromSlice(h.Values(), opts...)
}

// Size returns the number of stored values
func (a *Array) Size() int { return a.size }

// Capacity returns the current buffer capacity
func (a *Array) Capacity() int { return len(a.data) }

// GrowthFactor returns the configured growth factor
func (a *Array) GrowthFactor() float64 { return a.growth }

// IsEmpty reports whether the array holds no values
func (a *Array) IsEmpty() bool { return a.size == 0 }

// Push appends v and returns its index
func (a *Array) Push(v any) (res result.Result[int]) {
	x, err := mathx.ToBigInt(v)
	if err != nil {
		return result.FromError[int](err)
	}
	defer func() {
		if r := recover(); r != nil {
			res = result.Failure[int]("push failed: %v", r)
		}
	}()

	if a.size == len(a.data) {
		next := int(math.Ceil(float64(len(a.data)) * a.growth))
		if next <= len(a.data) {
			next = len(a.data) + 1
		}
		a.resize(next)
	}
	i := a.size
	a.data[i] = x
	a.size++
	a.seg.update(a.cmp, i, x)
	return result.Success(i)
}

// Pop removes and returns the last value. The buffer shrinks once fewer
// than capacity/(2*growth) values remain.
func (a *Array) Pop() (res result.Result[*big.Int]) {
	if a.size == 0 {
		return result.FromError[*big.Int](errors.EmptyStructure(errors.ModuleIndexedArray, "Pop"))
	}
	defer func() {
		if r := recover(); r != nil {
			res = result.Failure[*big.Int]("pop failed: %v", r)
		}
	}()

	a.size--
	v := a.data[a.size]
	a.data[a.size] = nil
	a.seg.update(a.cmp, a.size, nil)

	if float64(a.size) < float64(len(a.data))/(2*a.growth) {
		next := max(DefaultCapacity, int(float64(len(a.data))/a.growth))
		if next < len(a.data) {
			a.resize(next)
		}
	}
	return result.Success(v)
}

// Get returns a copy of the value at index i
func (a *Array) Get(i int) result.Result[*big.Int] {
	if err := a.checkIndex("Get", i); err != nil {
		return result.FromError[*big.Int](err)
	}
	return result.Success(new(big.Int).Set(a.data[i]))
}

// Set replaces the value at index i and returns the previous value
func (a *Array) Set(i int, v any) (res result.Result[*big.Int]) {
	if err := a.checkIndex("Set", i); err != nil {
		return result.FromError[*big.Int](err)
	}
	x, err := mathx.ToBigInt(v)
	if err != nil {
		return result.FromError[*big.Int](err)
	}
	defer func() {
		if r := recover(); r != nil {
			res = result.Failure[*big.Int]("set failed: %v", r)
		}
	}()

	prev := a.data[i]
	a.data[i] = x
	a.seg.update(a.cmp, i, x)
	return result.Success(prev)
}

// QueryRange returns the comparator maximum over the inclusive range
// [start, end]
func (a *Array) QueryRange(start, end int) (res result.Result[*big.Int]) {
	if start < 0 || end >= a.size || start > end {
		return result.FromError[*big.Int](
			errors.OutOfRange(errors.ModuleIndexedArray, "QueryRange", [2]int{start, end}, 0, a.size-1))
	}
	defer func() {
		if r := recover(); r != nil {
			res = result.Failure[*big.Int]("query failed: %v", r)
		}
	}()

	v := a.seg.query(a.cmp, start, end)
	if v == nil {
		return result.Failure[*big.Int]("range [%d, %d] holds no values", start, end)
	}
	return result.Success(new(big.Int).Set(v))
}

// Max returns the comparator maximum of all values
func (a *Array) Max() result.Result[*big.Int] {
	if a.size == 0 {
		return result.FromError[*big.Int](errors.EmptyStructure(errors.ModuleIndexedArray, "Max"))
	}
	return a.QueryRange(0, a.size-1)
}

// Sort orders the values through a heap. Ascending order drains a max-heap
// and fills the buffer from the back; descending order uses a min-heap.
func (a *Array) Sort(ascending bool) (res result.Result[int]) {
	defer func() {
		if r := recover(); r != nil {
			res = result.Failure[int]("sort failed: %v", r)
		}
	}()

	kind := heap.Min
	if ascending {
		kind = heap.Max
	}
	h := heap.New[*big.Int](kind, heap.Comparator[*big.Int](a.cmp), heap.WithCapacity(a.size))
	for i := 0; i < a.size; i++ {
		if r := h.Push(a.data[i]); !r.Ok {
			return result.Failure[int]("sort failed: %s", r.Err)
		}
	}
	for i := a.size - 1; i >= 0; i-- {
		a.data[i] = h.Pop().Value
	}
	a.rebuild()
	return result.Success(a.size)
}

// ToHeap copies the values into a new heap using the array's comparator
func (a *Array) ToHeap(isMin bool) *heap.Heap[*big.Int] {
	kind := heap.Max
	if isMin {
		kind = heap.Min
	}
	h := heap.New[*big.Int](kind, heap.Comparator[*big.Int](a.cmp), heap.WithCapacity(a.size))
	for i := 0; i < a.size; i++ {
		h.Push(new(big.Int).Set(a.data[i]))
	}
	return h
}

// Values returns copies of the stored values in index order
func (a *Array) Values() []*big.Int {
	out := make([]*big.Int, a.size)
	for i := range out {
		out[i] = new(big.Int).Set(a.data[i])
	}
	return out
}

// Clear removes every value and restores the initial capacity
func (a *Array) Clear() {
	a.data = make([]*big.Int, a.initial)
	a.size = 0
	a.rebuild()
}

// Resizes returns how many capacity changes happened so far
func (a *Array) Resizes() int { return a.resizes }

func (a *Array) resize(capacity int) {
	from := len(a.data)
	data := make([]*big.Int, capacity)
	copy(data, a.data[:a.size])
	a.data = data
	a.resizes++
	a.rebuild()
	a.logger.Debug("indexed array resized", log.Fields{
		"from": from,
		"to":   capacity,
		"size": a.size,
	})
}

func (a *Array) rebuild() {
	a.seg.build(a.cmp, a.data, a.size)
}

func (a *Array) checkIndex(op string, i int) error {
	if i < 0 || i >= a.size {
		return errors.OutOfRange(errors.ModuleIndexedArray, op, i, 0, a.size-1)
	}
	return nil
}

// Verify checks every segment-tree slot against a direct scan of its range
func (a *Array) Verify() error {
	return a.seg.verify(a.cmp, a.data, a.size)
}
