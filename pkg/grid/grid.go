// ============================================================================
// meinZAHLWERK (mZW) - Big-Integer Toolkit
// ============================================================================
//
// Package:     grid
// Description: Memoized Ackermann-Peter grid with growth analysis
// Author:      Mike Stoffels
// Created:     2026-09-23
// License:     MIT
// ============================================================================

// Package grid evaluates the Ackermann-Peter function
//
//	A(0, n) = n + 1
//	A(m, 0) = A(m-1, 1)
//	A(m, n) = A(m-1, A(m, n-1))
//
// memoizing every (m, n) pair it visits. Results above the ceiling are
// clamped to it, and so is every pair whose recursion would go deeper than
// the configured depth limit. Clamped nodes remember which of the two
// happened. The values are approximations once clamping kicks in.
package grid

import (
	"fmt"
	"math/big"

	"github.com/msto63/mZW/foundation/core/errors"
	"github.com/msto63/mZW/foundation/core/log"
	"github.com/msto63/mZW/foundation/utils/mathx"
	"github.com/msto63/mZW/pkg/heap"
)

// DefaultMaxDepth bounds the recursion when no limit is configured
const DefaultMaxDepth = 50000

// Grid is not safe for concurrent use
type Grid struct {
	nodes    map[key]*Node
	largest  *heap.Heap[*big.Int]
	ceiling  *big.Int
	maxDepth int
	maxM     int64
	maxN     int64
	logger   *log.Logger
}

// Option configures a Grid
type Option func(*Grid)

// WithCeiling sets the clamp ceiling; non-positive values are ignored
func WithCeiling(c *big.Int) Option {
	return func(g *Grid) {
		if c != nil && c.Sign() > 0 {
			g.ceiling = new(big.Int).Set(c)
		}
	}
}

// WithMaxDepth sets the recursion-depth limit; non-positive values are
// ignored
func WithMaxDepth(d int) Option {
	return func(g *Grid) {
		if d > 0 {
			g.maxDepth = d
		}
	}
}

// WithLogger sets the logger used for clamping events
func WithLogger(l *log.Logger) Option {
	return func(g *Grid) {
		if l != nil {
			g.logger = l
		}
	}
}

// New creates an empty grid with the safe-integer ceiling
func New(opts ...Option) *Grid {
	g := &Grid{
		nodes:    make(map[key]*Node),
		largest:  heap.NewBigInt(heap.Max),
		ceiling:  mathx.MaxSafeInteger(),
		maxDepth: DefaultMaxDepth,
		maxM:     -1,
		maxN:     -1,
		logger:   log.Discard(),
	}
	for _, fn := range opts {
		fn(g)
	}
	return g
}

// Ceiling returns a copy of the clamp ceiling
func (g *Grid) Ceiling() *big.Int { return new(big.Int).Set(g.ceiling) }

// Size returns the number of memoized pairs
func (g *Grid) Size() int { return len(g.nodes) }

// MaxM returns the largest m seen so far, -1 when empty
func (g *Grid) MaxM() int64 { return g.maxM }

// MaxN returns the largest n seen so far, -1 when empty
func (g *Grid) MaxN() int64 { return g.maxN }

// Get returns the memoized node for (m, n)
func (g *Grid) Get(m, n int64) (*Node, bool) {
	node, ok := g.nodes[key{m, n}]
	return node, ok
}

// AddNode returns the node for (m, n), computing it and every pair its
// recursion visits if needed
func (g *Grid) AddNode(m, n int64) (*Node, error) {
	if m < 0 || n < 0 {
		return nil, errors.InvalidInput(errors.ModuleGrid, "AddNode", fmt.Sprintf("(%d, %d)", m, n), "non-negative arguments")
	}
	return g.compute(m, n, 1), nil
}

// BuildRange fills every pair in [0, mMax] x [0, nMax]
func (g *Grid) BuildRange(mMax, nMax int64) error {
	if mMax < 0 || nMax < 0 {
		return errors.OutOfRange(errors.ModuleGrid, "BuildRange", [2]int64{mMax, nMax}, 0, "max int64")
	}
	for m := int64(0); m <= mMax; m++ {
		for n := int64(0); n <= nMax; n++ {
			if _, err := g.AddNode(m, n); err != nil {
				return err
			}
		}
	}
	return nil
}

func (g *Grid) compute(m, n int64, depth int) *Node {
	if node, ok := g.nodes[key{m, n}]; ok {
		return node
	}
	if depth > g.maxDepth {
		return g.insert(m, n, g.ceiling, ClampDepth)
	}

	var value *big.Int
	reason := ClampNone
	switch {
	case m == 0:
		value = new(big.Int).Add(big.NewInt(n), big.NewInt(1))
	case n == 0:
		inner := g.compute(m-1, 1, depth+1)
		value, reason = inner.value, inner.clamp
	default:
		inner := g.compute(m, n-1, depth+1)
		if arg, ok := g.argument(inner); ok {
			outer := g.compute(m-1, arg, depth+1)
			value, reason = outer.value, outer.clamp
		} else {
			// A(m-1, x) > x, so the result is past the ceiling too
			value, reason = g.ceiling, inner.clamp
			if reason == ClampNone {
				reason = ClampCeiling
			}
		}
	}

	if reason == ClampNone && value.Cmp(g.ceiling) > 0 {
		value, reason = g.ceiling, ClampCeiling
	}
	return g.insert(m, n, value, reason)
}

// argument converts an inner result into the next recursion argument. It
// fails for clamped values and values at or above the ceiling.
func (g *Grid) argument(inner *Node) (int64, bool) {
	if inner.clamp != ClampNone || inner.value.Cmp(g.ceiling) >= 0 || !inner.value.IsInt64() {
		return 0, false
	}
	return inner.value.Int64(), true
}

func (g *Grid) insert(m, n int64, value *big.Int, reason ClampReason) *Node {
	node := &Node{m: m, n: n, value: new(big.Int).Set(value), clamp: reason}
	if p, ok := g.nodes[key{m - 1, n}]; ok {
		node.prevM, p.nextM = p, node
	}
	if p, ok := g.nodes[key{m, n - 1}]; ok {
		node.prevN, p.nextN = p, node
	}
	g.nodes[key{m, n}] = node
	g.largest.Push(node.value)
	g.maxM = max(g.maxM, m)
	g.maxN = max(g.maxN, n)

	if reason != ClampNone {
		g.logger.Debug("grid value clamped", log.Fields{
			"m":      m,
			"n":      n,
			"reason": reason.String(),
		})
	}
	return node
}

// ComputationPath returns the chain of memoized pairs that (m, n) was
// derived from, in computation order and ending with (m, n). The chain
// stops early at the first pair missing from the memo table.
func (g *Grid) ComputationPath(m, n int64) []*Node {
	var path []*Node
	for {
		node, ok := g.nodes[key{m, n}]
		if !ok {
			break
		}
		path = append(path, node)
		if m == 0 {
			break
		}
		if n == 0 {
			m, n = m-1, 1
		} else {
			n--
		}
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// GrowthStep describes A(m, N) relative to A(m, N-1). The step for N = 0
// has no predecessor, so its Increase is nil and its Ratio is 0.
type GrowthStep struct {
	N        int64
	Value    *big.Int
	Increase *big.Int
	Ratio    float64
}

// AnalyzeGrowthRate walks A(m, 0), A(m, 1), ... until a pair is missing or
// a value reaches the ceiling
func (g *Grid) AnalyzeGrowthRate(m int64) []GrowthStep {
	var steps []GrowthStep
	var prev *big.Int
	for n := int64(0); ; n++ {
		node, ok := g.nodes[key{m, n}]
		if !ok || node.value.Cmp(g.ceiling) >= 0 {
			break
		}
		step := GrowthStep{N: n, Value: node.Value()}
		if prev != nil {
			step.Increase = new(big.Int).Sub(node.value, prev)
			if prev.Sign() != 0 {
				step.Ratio, _ = new(big.Rat).SetFrac(node.value, prev).Float64()
			}
		}
		steps = append(steps, step)
		prev = node.value
	}
	return steps
}

// LargestValue returns the largest value computed so far
func (g *Grid) LargestValue() (*big.Int, bool) {
	top, ok := g.largest.Peek().Get()
	if !ok {
		return nil, false
	}
	return new(big.Int).Set(top), true
}
