// ============================================================================
// meinZAHLWERK (mZW) - Big-Integer Toolkit
// ============================================================================
//
// Package:     avltree
// Description: AVL-balanced order-statistics tree over big integers
// Author:      Mike Stoffels
// Created:     2026-09-19
// License:     MIT
// ============================================================================

// Package avltree implements a self-balancing binary search tree of unique
// big integers. Every node carries its subtree height, size, sum, minimum
// and maximum, which gives O(log n) order statistics and range pruning.
package avltree

import (
	"math/big"

	mzwerror "github.com/msto63/mZW/foundation/core/error"
	"github.com/msto63/mZW/foundation/core/log"
	"github.com/msto63/mZW/foundation/utils/mathx"
)

// Tree is not safe for concurrent use
type Tree struct {
	root     *Node
	cmp      mathx.Comparator
	maxDepth int
	logger   *log.Logger
}

// Option configures a Tree
type Option func(*Tree)

// WithComparator replaces the natural big-integer ordering
func WithComparator(cmp mathx.Comparator) Option {
	return func(t *Tree) {
		if cmp != nil {
			t.cmp = cmp
		}
	}
}

// WithMaxTraverseDepth sets the default depth bound of Traverse; 0 means
// unlimited
func WithMaxTraverseDepth(d int) Option {
	return func(t *Tree) {
		if d >= 0 {
			t.maxDepth = d
		}
	}
}

// WithLogger sets the logger used for rotation traces
func WithLogger(l *log.Logger) Option {
	return func(t *Tree) {
		if l != nil {
			t.logger = l
		}
	}
}

// New creates an empty tree
func New(opts ...Option) *Tree {
	t := &Tree{
		cmp:    mathx.Compare,
		logger: log.Discard(),
	}
	for _, fn := range opts {
		fn(t)
	}
	return t
}

// Root returns the root node or nil
func (t *Tree) Root() *Node { return t.root }

// Size returns the number of values
func (t *Tree) Size() int { return size(t.root) }

// Height returns the tree height, 0 when empty
func (t *Tree) Height() int { return height(t.root) }

// IsEmpty reports whether the tree holds no values
func (t *Tree) IsEmpty() bool { return t.root == nil }

// Clear removes every value
func (t *Tree) Clear() { t.root = nil }

// Sum returns the sum of all values, 0 when empty
func (t *Tree) Sum() *big.Int {
	if t.root == nil {
		return new(big.Int)
	}
	return t.root.Sum()
}

// Min returns the smallest value
func (t *Tree) Min() (*big.Int, bool) {
	if t.root == nil {
		return nil, false
	}
	return t.root.Min(), true
}

// Max returns the largest value
func (t *Tree) Max() (*big.Int, bool) {
	if t.root == nil {
		return nil, false
	}
	return t.root.Max(), true
}

// Insert adds v and returns its node. Inserting a value already present
// changes nothing and returns the existing node.
func (t *Tree) Insert(v any) (*Node, error) {
	x, err := mathx.ToBigInt(v)
	if err != nil {
		return nil, mzwerror.Wrap(err, "avltree.Insert")
	}
	var found *Node
	t.root, found = t.insert(t.root, x)
	t.root.parent = nil
	return found, nil
}

func (t *Tree) insert(n *Node, v *big.Int) (*Node, *Node) {
	if n == nil {
		leaf := newLeaf(v)
		return leaf, leaf
	}
	var found *Node
	switch c := t.cmp(v, n.value); {
	case c < 0:
		n.left, found = t.insert(n.left, v)
		n.left.parent = n
	case c > 0:
		n.right, found = t.insert(n.right, v)
		n.right.parent = n
	default:
		return n, n
	}
	return t.rebalance(n), found
}

// Remove deletes v and reports whether it was present
func (t *Tree) Remove(v any) (bool, error) {
	x, err := mathx.ToBigInt(v)
	if err != nil {
		return false, mzwerror.Wrap(err, "avltree.Remove")
	}
	var removed bool
	t.root, removed = t.remove(t.root, x)
	if t.root != nil {
		t.root.parent = nil
	}
	return removed, nil
}

func (t *Tree) remove(n *Node, v *big.Int) (*Node, bool) {
	if n == nil {
		return nil, false
	}
	var removed bool
	switch c := t.cmp(v, n.value); {
	case c < 0:
		n.left, removed = t.remove(n.left, v)
	case c > 0:
		n.right, removed = t.remove(n.right, v)
	default:
		removed = true
		if n.left == nil || n.right == nil {
			child := n.left
			if child == nil {
				child = n.right
			}
			if child != nil {
				child.parent = n.parent
			}
			n.left, n.right, n.parent = nil, nil, nil
			return child, true
		}
		// two children: take over the in-order successor's value
		succ := n.right
		for succ.left != nil {
			succ = succ.left
		}
		n.value = succ.value
		n.right, _ = t.remove(n.right, succ.value)
	}
	if !removed {
		return n, false
	}
	if n.left != nil {
		n.left.parent = n
	}
	if n.right != nil {
		n.right.parent = n
	}
	return t.rebalance(n), true
}

func (t *Tree) rebalance(n *Node) *Node {
	root, rotated := rebalance(n)
	if rotated && t.logger.IsLevelEnabled(log.LevelTrace) {
		t.logger.Trace("rotated", log.BigInt("pivot", n.value), log.Int("height", root.height))
	}
	return root
}

// Find returns the node holding v, or nil when absent
func (t *Tree) Find(v any) (*Node, error) {
	x, err := mathx.ToBigInt(v)
	if err != nil {
		return nil, mzwerror.Wrap(err, "avltree.Find")
	}
	n := t.root
	for n != nil {
		switch c := t.cmp(x, n.value); {
		case c < 0:
			n = n.left
		case c > 0:
			n = n.right
		default:
			return n, nil
		}
	}
	return nil, nil
}

// Contains reports whether v is stored; invalid input is reported as absent
func (t *Tree) Contains(v any) bool {
	n, err := t.Find(v)
	return err == nil && n != nil
}

// NthValue returns the n-th smallest value, 1-indexed
func (t *Tree) NthValue(n int) (*big.Int, bool) {
	if n < 1 || n > t.Size() {
		return nil, false
	}
	node := t.root
	for node != nil {
		leftSize := size(node.left)
		switch {
		case n <= leftSize:
			node = node.left
		case n == leftSize+1:
			return node.Value(), true
		default:
			n -= leftSize + 1
			node = node.right
		}
	}
	return nil, false
}

// Rank returns the 1-indexed position v holds or would hold: one more than
// the number of stored values ordered before it
func (t *Tree) Rank(v any) (int, error) {
	x, err := mathx.ToBigInt(v)
	if err != nil {
		return 0, mzwerror.Wrap(err, "avltree.Rank")
	}
	rank := 0
	n := t.root
	for n != nil {
		if t.cmp(x, n.value) <= 0 {
			n = n.left
		} else {
			rank += size(n.left) + 1
			n = n.right
		}
	}
	return rank + 1, nil
}

// Range returns every stored value in [start, end] in ascending order. A
// subtree is skipped only when it provably lies outside the bounds.
func (t *Tree) Range(start, end any) ([]*big.Int, error) {
	lo, err := mathx.ToBigInt(start)
	if err != nil {
		return nil, mzwerror.Wrap(err, "avltree.Range")
	}
	hi, err := mathx.ToBigInt(end)
	if err != nil {
		return nil, mzwerror.Wrap(err, "avltree.Range")
	}
	out := []*big.Int{}
	if t.cmp(lo, hi) > 0 {
		return out, nil
	}
	var walk func(n *Node)
	walk = func(n *Node) {
		if n == nil {
			return
		}
		aboveLo := t.cmp(n.value, lo) > 0
		belowHi := t.cmp(n.value, hi) < 0
		if aboveLo {
			walk(n.left)
		}
		if t.cmp(n.value, lo) >= 0 && t.cmp(n.value, hi) <= 0 {
			out = append(out, n.Value())
		}
		if belowHi {
			walk(n.right)
		}
	}
	walk(t.root)
	return out, nil
}
