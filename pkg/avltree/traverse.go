// ============================================================================
// meinZAHLWERK (mZW) - Big-Integer Toolkit
// ============================================================================
//
// Package:     avltree
// Description: Depth-bounded traversals and structural verification
// Author:      Mike Stoffels
// Created:     2026-09-19
// License:     MIT
// ============================================================================

package avltree

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/msto63/mZW/foundation/core/errors"
	mzwerror "github.com/msto63/mZW/foundation/core/error"
)

// Order selects a traversal order
type Order int

const (
	PreOrder Order = iota
	InOrder
	PostOrder
	LevelOrder
)

// String returns the order name used by the command language
func (o Order) String() string {
	switch o {
	case PreOrder:
		return "preorder"
	case InOrder:
		return "inorder"
	case PostOrder:
		return "postorder"
	case LevelOrder:
		return "levelorder"
	default:
		return "unknown"
	}
}

// ParseOrder accepts "pre", "in", "post" and "level" with or without the
// "order" suffix
func ParseOrder(s string) (Order, error) {
	switch strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "order") {
	case "pre":
		return PreOrder, nil
	case "in", "":
		return InOrder, nil
	case "post":
		return PostOrder, nil
	case "level":
		return LevelOrder, nil
	default:
		return InOrder, errors.InvalidInput(errors.ModuleAVLTree, "ParseOrder", s, "pre, in, post or level")
	}
}

type traverseOptions struct {
	maxDepth     int
	skipSubtrees bool
}

// TraverseOption configures a single Traverse call
type TraverseOption func(*traverseOptions)

// MaxDepth limits the traversal to nodes at depth <= d; the root has depth 1
// and 0 means unlimited
func MaxDepth(d int) TraverseOption {
	return func(o *traverseOptions) { o.maxDepth = d }
}

// SkipSubtrees visits the root only
func SkipSubtrees() TraverseOption {
	return func(o *traverseOptions) { o.skipSubtrees = true }
}

// Traverse returns copies of the stored values in the requested order
func (t *Tree) Traverse(order Order, opts ...TraverseOption) []*big.Int {
	o := traverseOptions{maxDepth: t.maxDepth}
	for _, fn := range opts {
		fn(&o)
	}
	if o.skipSubtrees {
		o.maxDepth = 1
	}

	out := make([]*big.Int, 0, t.Size())
	if t.root == nil {
		return out
	}
	if order == LevelOrder {
		return t.levelOrder(out, o.maxDepth)
	}

	var walk func(n *Node, depth int)
	walk = func(n *Node, depth int) {
		if n == nil || (o.maxDepth > 0 && depth > o.maxDepth) {
			return
		}
		if order == PreOrder {
			out = append(out, n.Value())
		}
		walk(n.left, depth+1)
		if order == InOrder {
			out = append(out, n.Value())
		}
		walk(n.right, depth+1)
		if order == PostOrder {
			out = append(out, n.Value())
		}
	}
	walk(t.root, 1)
	return out
}

func (t *Tree) levelOrder(out []*big.Int, maxDepth int) []*big.Int {
	level := []*Node{t.root}
	for depth := 1; len(level) > 0; depth++ {
		if maxDepth > 0 && depth > maxDepth {
			break
		}
		var next []*Node
		for _, n := range level {
			out = append(out, n.Value())
			if n.left != nil {
				next = append(next, n.left)
			}
			if n.right != nil {
				next = append(next, n.right)
			}
		}
		level = next
	}
	return out
}

// Verify checks ordering, AVL balance, parent links and every aggregate
func (t *Tree) Verify() error {
	if t.root != nil && t.root.parent != nil {
		return verifyError("root has a parent")
	}
	_, err := t.verify(t.root)
	return err
}

func (t *Tree) verify(n *Node) (*big.Int, error) {
	if n == nil {
		return new(big.Int), nil
	}
	for _, c := range []*Node{n.left, n.right} {
		if c != nil && c.parent != n {
			return nil, verifyError(fmt.Sprintf("broken parent link below %s", n.value))
		}
	}
	if n.left != nil && t.cmp(n.left.max, n.value) >= 0 {
		return nil, verifyError(fmt.Sprintf("left subtree of %s out of order", n.value))
	}
	if n.right != nil && t.cmp(n.right.min, n.value) <= 0 {
		return nil, verifyError(fmt.Sprintf("right subtree of %s out of order", n.value))
	}

	leftSum, err := t.verify(n.left)
	if err != nil {
		return nil, err
	}
	rightSum, err := t.verify(n.right)
	if err != nil {
		return nil, err
	}

	if b := n.Balance(); b < -1 || b > 1 {
		return nil, verifyError(fmt.Sprintf("node %s has balance %d", n.value, b))
	}
	if n.height != 1+max(height(n.left), height(n.right)) {
		return nil, verifyError(fmt.Sprintf("node %s has stale height", n.value))
	}
	if n.size != 1+size(n.left)+size(n.right) {
		return nil, verifyError(fmt.Sprintf("node %s has stale size", n.value))
	}
	sum := new(big.Int).Add(leftSum, rightSum)
	sum.Add(sum, n.value)
	if sum.Cmp(n.sum) != 0 {
		return nil, verifyError(fmt.Sprintf("node %s has sum %s, want %s", n.value, n.sum, sum))
	}
	return sum, nil
}

func verifyError(msg string) error {
	return errors.NewErrorBuilder(errors.ModuleAVLTree).
		Operation("Verify").
		Code(mzwerror.CodeInternal).
		Message(msg).
		Build()
}
