// ============================================================================
// meinZAHLWERK (mZW) - Big-Integer Toolkit
// ============================================================================
//
// Package:     avltree
// Description: Tree node with AVL height and order-statistic aggregates
// Author:      Mike Stoffels
// Created:     2026-09-19
// License:     MIT
// ============================================================================

package avltree

import "math/big"

// Node is one value in the tree. Children are owned by their parent; the
// parent pointer is a back-reference only.
type Node struct {
	value  *big.Int
	left   *Node
	right  *Node
	parent *Node

	height int
	size   int
	sum    *big.Int
	min    *big.Int
	max    *big.Int
}

func newLeaf(v *big.Int) *Node {
	n := &Node{value: v, sum: new(big.Int)}
	n.update()
	return n
}

// Value returns a copy of the node's value
func (n *Node) Value() *big.Int { return new(big.Int).Set(n.value) }

// Left returns the left child or nil
func (n *Node) Left() *Node { return n.left }

// Right returns the right child or nil
func (n *Node) Right() *Node { return n.right }

// Parent returns the parent or nil for the root
func (n *Node) Parent() *Node { return n.parent }

// Height is 1 for a leaf
func (n *Node) Height() int { return n.height }

// Size is the number of values in the subtree
func (n *Node) Size() int { return n.size }

// Sum returns a copy of the subtree sum
func (n *Node) Sum() *big.Int { return new(big.Int).Set(n.sum) }

// Min returns a copy of the leftmost value of the subtree
func (n *Node) Min() *big.Int { return new(big.Int).Set(n.min) }

// Max returns a copy of the rightmost value of the subtree
func (n *Node) Max() *big.Int { return new(big.Int).Set(n.max) }

// Balance is height(right) - height(left)
func (n *Node) Balance() int { return height(n.right) - height(n.left) }

func height(n *Node) int {
	if n == nil {
		return 0
	}
	return n.height
}

func size(n *Node) int {
	if n == nil {
		return 0
	}
	return n.size
}

// update recomputes height, size, sum, min and max from the children
func (n *Node) update() {
	n.height = 1 + max(height(n.left), height(n.right))
	n.size = 1 + size(n.left) + size(n.right)

	n.sum.Set(n.value)
	n.min, n.max = n.value, n.value
	if n.left != nil {
		n.sum.Add(n.sum, n.left.sum)
		n.min = n.left.min
	}
	if n.right != nil {
		n.sum.Add(n.sum, n.right.sum)
		n.max = n.right.max
	}
}

/*
rotateRight turns the subtree at y into the subtree at x:

	    y           x
	   / \         / \
	  x   c  =>   a   y
	 / \             / \
	a   b           b   c
*/
func rotateRight(y *Node) *Node {
	x := y.left
	y.left = x.right
	if x.right != nil {
		x.right.parent = y
	}
	x.right = y
	x.parent = y.parent
	y.parent = x
	y.update()
	x.update()
	return x
}

func rotateLeft(x *Node) *Node {
	y := x.right
	x.right = y.left
	if y.left != nil {
		y.left.parent = x
	}
	y.left = x
	y.parent = x.parent
	x.parent = y
	x.update()
	y.update()
	return y
}

// rebalance restores |balance| <= 1 at n and returns the new subtree root
func rebalance(n *Node) (*Node, bool) {
	n.update()
	switch b := n.Balance(); {
	case b < -1:
		if n.left.Balance() > 0 {
			n.left = rotateLeft(n.left)
		}
		return rotateRight(n), true
	case b > 1:
		if n.right.Balance() < 0 {
			n.right = rotateRight(n.right)
		}
		return rotateLeft(n), true
	}
	return n, false
}
