// ============================================================================
// meinZAHLWERK (mZW) - Big-Integer Toolkit
// ============================================================================
//
// Package:     grid
// Description: Memo entries of the Ackermann grid
// Author:      Mike Stoffels
// Created:     2026-09-23
// License:     MIT
// ============================================================================

package grid

import "math/big"

// ClampReason records why a node holds the ceiling instead of its exact value
type ClampReason int

const (
	// ClampNone marks an exact value
	ClampNone ClampReason = iota
	// ClampCeiling marks a value that exceeded the ceiling
	ClampCeiling
	// ClampDepth marks a value cut off by the recursion-depth limit
	ClampDepth
)

// String returns "none", "ceiling" or "depth"
func (r ClampReason) String() string {
	switch r {
	case ClampCeiling:
		return "ceiling"
	case ClampDepth:
		return "depth"
	default:
		return "none"
	}
}

type key struct {
	m, n int64
}

// Node is the memo entry for one (m, n) pair. Neighbour links are set once,
// when the node is inserted, and only towards neighbours that already exist.
type Node struct {
	m, n  int64
	value *big.Int
	clamp ClampReason

	prevM, prevN *Node
	nextM, nextN *Node
}

// M returns the first argument
func (n *Node) M() int64 { return n.m }

// N returns the second argument
func (n *Node) N() int64 { return n.n }

// Value returns a copy of the computed value
func (n *Node) Value() *big.Int { return new(big.Int).Set(n.value) }

// Clamp returns why the value was clamped, ClampNone for exact values
func (n *Node) Clamp() ClampReason { return n.clamp }

// IsExact reports whether the value was computed without clamping
func (n *Node) IsExact() bool { return n.clamp == ClampNone }

// PrevM returns the node at (m-1, n) if it existed when this node was added
func (n *Node) PrevM() *Node { return n.prevM }

// PrevN returns the node at (m, n-1) if it existed when this node was added
func (n *Node) PrevN() *Node { return n.prevN }

// NextM returns the node at (m+1, n) if it was added after this one
func (n *Node) NextM() *Node { return n.nextM }

// NextN returns the node at (m, n+1) if it was added after this one
func (n *Node) NextN() *Node { return n.nextN }
