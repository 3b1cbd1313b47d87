// ============================================================================
// meinZAHLWERK (mZW) - Big-Integer Toolkit
// ============================================================================
//
// Package:     indexedarray
// Description: Segment tree over the array buffer
// Author:      Mike Stoffels
// Created:     2026-09-21
// License:     MIT
// ============================================================================

package indexedarray

import (
	"fmt"
	"math/big"

	"github.com/msto63/mZW/foundation/utils/mathx"
)

// segment covers the buffer indices [start, end]. A slot whose range holds
// no live value has set == false.
type segment struct {
	value      *big.Int
	start, end int
	set        bool
}

// segmentTree spans the whole buffer capacity in 4*capacity slots; slot i
// has children 2i+1 and 2i+2
type segmentTree struct {
	slots []segment
}

func better(cmp mathx.Comparator, a, b segment) segment {
	switch {
	case !a.set:
		return b
	case !b.set:
		return a
	case cmp(b.value, a.value) > 0:
		return b
	default:
		return a
	}
}

func (t *segmentTree) build(cmp mathx.Comparator, data []*big.Int, size int) {
	t.slots = make([]segment, 4*max(len(data), 1))
	if len(data) > 0 {
		t.buildNode(cmp, data, size, 0, 0, len(data)-1)
	}
}

func (t *segmentTree) buildNode(cmp mathx.Comparator, data []*big.Int, size, i, start, end int) {
	if start == end {
		t.slots[i] = segment{start: start, end: end}
		if start < size {
			t.slots[i].value = data[start]
			t.slots[i].set = true
		}
		return
	}
	mid := start + (end-start)/2
	t.buildNode(cmp, data, size, 2*i+1, start, mid)
	t.buildNode(cmp, data, size, 2*i+2, mid+1, end)
	t.pull(cmp, i, start, end)
}

func (t *segmentTree) pull(cmp mathx.Comparator, i, start, end int) {
	b := better(cmp, t.slots[2*i+1], t.slots[2*i+2])
	t.slots[i] = segment{value: b.value, start: start, end: end, set: b.set}
}

// update patches the path from the leaf for idx up to the root; a nil v
// marks the leaf empty
func (t *segmentTree) update(cmp mathx.Comparator, idx int, v *big.Int) {
	t.updateNode(cmp, 0, idx, v)
}

func (t *segmentTree) updateNode(cmp mathx.Comparator, i, idx int, v *big.Int) {
	s := t.slots[i]
	if s.start == s.end {
		t.slots[i].value = v
		t.slots[i].set = v != nil
		return
	}
	mid := s.start + (s.end-s.start)/2
	if idx <= mid {
		t.updateNode(cmp, 2*i+1, idx, v)
	} else {
		t.updateNode(cmp, 2*i+2, idx, v)
	}
	t.pull(cmp, i, s.start, s.end)
}

func (t *segmentTree) query(cmp mathx.Comparator, start, end int) *big.Int {
	s := t.queryNode(cmp, 0, start, end)
	if !s.set {
		return nil
	}
	return s.value
}

func (t *segmentTree) queryNode(cmp mathx.Comparator, i, start, end int) segment {
	s := t.slots[i]
	if end < s.start || s.end < start {
		return segment{}
	}
	if start <= s.start && s.end <= end {
		return s
	}
	return better(cmp, t.queryNode(cmp, 2*i+1, start, end), t.queryNode(cmp, 2*i+2, start, end))
}

func (t *segmentTree) verify(cmp mathx.Comparator, data []*big.Int, size int) error {
	if len(data) == 0 {
		return nil
	}
	return t.verifyNode(cmp, data, size, 0, 0, len(data)-1)
}

func (t *segmentTree) verifyNode(cmp mathx.Comparator, data []*big.Int, size, i, start, end int) error {
	s := t.slots[i]
	if s.start != start || s.end != end {
		return fmt.Errorf("slot %d covers [%d, %d], want [%d, %d]", i, s.start, s.end, start, end)
	}
	var want *big.Int
	for j := start; j <= end && j < size; j++ {
		if want == nil || cmp(data[j], want) > 0 {
			want = data[j]
		}
	}
	switch {
	case want == nil && s.set:
		return fmt.Errorf("slot %d [%d, %d] holds %s but its range is empty", i, start, end, s.value)
	case want != nil && (!s.set || cmp(s.value, want) != 0):
		return fmt.Errorf("slot %d [%d, %d] holds %v, want %s", i, start, end, s.value, want)
	}
	if start == end {
		return nil
	}
	mid := start + (end-start)/2
	if err := t.verifyNode(cmp, data, size, 2*i+1, start, mid); err != nil {
		return err
	}
	return t.verifyNode(cmp, data, size, 2*i+2, mid+1, end)
}
