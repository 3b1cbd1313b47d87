package indexedarray

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/msto63/mZW/pkg/heap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pushAll(t *testing.T, a *Array, values ...int64) {
	t.Helper()
	for _, v := range values {
		r := a.Push(v)
		require.True(t, r.Ok, r.Err)
	}
	require.NoError(t, a.Verify())
}

func ints(vals []*big.Int) []int64 {
	out := make([]int64, len(vals))
	for i, v := range vals {
		out[i] = v.Int64()
	}
	return out
}

func TestQueryRange(t *testing.T) {
	a := New()
	pushAll(t, a, 2, 7, 1, 9, 3)

	r := a.QueryRange(1, 3)
	require.True(t, r.Ok, r.Err)
	assert.Equal(t, int64(9), r.Value.Int64())

	r = a.QueryRange(4, 4)
	require.True(t, r.Ok)
	assert.Equal(t, int64(3), r.Value.Int64())

	for _, bad := range [][2]int{{-1, 2}, {0, 5}, {3, 1}} {
		r := a.QueryRange(bad[0], bad[1])
		assert.False(t, r.Ok, "range %v", bad)
		assert.Contains(t, r.Err, "out of range")
	}
}

func TestPushReturnsIndex(t *testing.T) {
	a := New()
	for i := 0; i < 5; i++ {
		r := a.Push(i * 10)
		require.True(t, r.Ok)
		assert.Equal(t, i, r.Value)
	}
	assert.False(t, a.Push("1e5").Ok)
	assert.False(t, a.Push(1.5).Ok)
	assert.Equal(t, 5, a.Size())
}

func TestGrowthAndShrink(t *testing.T) {
	a := New(WithCapacity(4), WithGrowthFactor(1.5))
	pushAll(t, a, 1, 2, 3, 4)
	assert.Equal(t, 4, a.Capacity())

	pushAll(t, a, 5)
	assert.Equal(t, 6, a.Capacity())
	pushAll(t, a, 6, 7)
	assert.Equal(t, 9, a.Capacity())

	arr := New()
	for i := 0; i < 64; i++ {
		require.True(t, arr.Push(i).Ok)
	}
	assert.Equal(t, 64, arr.Capacity())
	require.True(t, arr.Push(64).Ok)
	assert.Equal(t, 128, arr.Capacity())

	// shrink once size < 128/4
	for arr.Size() > 32 {
		require.True(t, arr.Pop().Ok)
	}
	assert.Equal(t, 128, arr.Capacity())
	require.True(t, arr.Pop().Ok)
	assert.Equal(t, 64, arr.Capacity())
	require.NoError(t, arr.Verify())

	for !arr.IsEmpty() {
		require.True(t, arr.Pop().Ok)
	}
	assert.Equal(t, DefaultCapacity, arr.Capacity())
	assert.False(t, arr.Pop().Ok)
}

func TestQueryAfterResize(t *testing.T) {
	a := New(WithCapacity(2))
	pushAll(t, a, 5, 1)
	pushAll(t, a, 8)
	r := a.QueryRange(0, 2)
	require.True(t, r.Ok)
	assert.Equal(t, int64(8), r.Value.Int64())
}

func TestGetSet(t *testing.T) {
	a := New()
	pushAll(t, a, 4, 6, 2)

	prev := a.Set(1, "-10")
	require.True(t, prev.Ok)
	assert.Equal(t, int64(6), prev.Value.Int64())

	got := a.Get(1)
	require.True(t, got.Ok)
	assert.Equal(t, int64(-10), got.Value.Int64())

	assert.Equal(t, int64(4), a.Max().Value.Int64())
	assert.False(t, a.Get(3).Ok)
	assert.False(t, a.Set(-1, 1).Ok)
	assert.False(t, a.Set(0, "abc").Ok)
	require.NoError(t, a.Verify())
}

func TestGetReturnsCopy(t *testing.T) {
	a := New()
	pushAll(t, a, 42)
	a.Get(0).Value.SetInt64(0)
	assert.Equal(t, int64(42), a.Get(0).Value.Int64())
}

func TestSort(t *testing.T) {
	a := New()
	pushAll(t, a, 5, -2, 9, 0, 9, 3)

	r := a.Sort(true)
	require.True(t, r.Ok)
	assert.Equal(t, []int64{-2, 0, 3, 5, 9, 9}, ints(a.Values()))
	require.NoError(t, a.Verify())

	require.True(t, a.Sort(false).Ok)
	assert.Equal(t, []int64{9, 9, 5, 3, 0, -2}, ints(a.Values()))
	assert.True(t, New().Sort(true).Ok)
}

func TestCustomComparator(t *testing.T) {
	byAbs := func(x, y *big.Int) int { return new(big.Int).Abs(x).Cmp(new(big.Int).Abs(y)) }
	a := New(WithComparator(byAbs))
	pushAll(t, a, 3, -12, 7)

	r := a.QueryRange(0, 2)
	require.True(t, r.Ok)
	assert.Equal(t, int64(-12), r.Value.Int64())
}

func TestComparatorPanicBecomesFailure(t *testing.T) {
	calls := 0
	a := New(WithComparator(func(x, y *big.Int) int {
		calls++
		if calls > 2 {
			panic("boom")
		}
		return x.Cmp(y)
	}))
	var failed bool
	for i := 0; i < 8; i++ {
		if r := a.Push(i); !r.Ok {
			assert.Contains(t, r.Err, "boom")
			failed = true
			break
		}
	}
	assert.True(t, failed)
}

func TestHeapConversion(t *testing.T) {
	h := heap.NewBigInt(heap.Min)
	for _, v := range []int64{4, 1, 3} {
		h.Push(big.NewInt(v))
	}
	a := FromHeap(h)
	assert.Equal(t, 3, a.Size())
	assert.Equal(t, int64(4), a.Max().Value.Int64())

	maxHeap := a.ToHeap(false)
	assert.Equal(t, heap.Max, maxHeap.Kind())
	assert.Equal(t, []int64{4, 3, 1}, ints(maxHeap.Drain()))

	minHeap := a.ToHeap(true)
	assert.Equal(t, int64(1), minHeap.Peek().Value.Int64())
	assert.Equal(t, 3, a.Size())
}

func TestFromSliceAndClear(t *testing.T) {
	values := make([]*big.Int, 20)
	for i := range values {
		values[i] = big.NewInt(int64(i * i))
	}
	a := FromSlice(values, WithCapacity(4))
	require.NoError(t, a.Verify())
	assert.Equal(t, 20, a.Capacity())
	assert.Equal(t, int64(361), a.Max().Value.Int64())

	values[19].SetInt64(0)
	assert.Equal(t, int64(361), a.Get(19).Value.Int64())

	a.Clear()
	assert.Equal(t, 0, a.Size())
	assert.Equal(t, 4, a.Capacity())
	assert.False(t, a.Max().Ok)
}

func TestRandomizedRangeMaximum(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	a := New(WithCapacity(3), WithGrowthFactor(1.7))
	var mirror []int64

	for step := 0; step < 2000; step++ {
		switch op := rng.Intn(10); {
		case op < 5 || len(mirror) == 0:
			v := rng.Int63n(2000) - 1000
			require.True(t, a.Push(v).Ok)
			mirror = append(mirror, v)
		case op < 7:
			r := a.Pop()
			require.True(t, r.Ok)
			require.Equal(t, mirror[len(mirror)-1], r.Value.Int64())
			mirror = mirror[:len(mirror)-1]
		default:
			i := rng.Intn(len(mirror))
			v := rng.Int63n(2000) - 1000
			require.True(t, a.Set(i, v).Ok)
			mirror[i] = v
		}

		if len(mirror) == 0 {
			continue
		}
		i := rng.Intn(len(mirror))
		j := i + rng.Intn(len(mirror)-i)
		want := mirror[i]
		for _, v := range mirror[i : j+1] {
			want = max(want, v)
		}
		r := a.QueryRange(i, j)
		require.True(t, r.Ok, r.Err)
		require.Equal(t, want, r.Value.Int64(), "step %d range [%d, %d]", step, i, j)
	}
	require.NoError(t, a.Verify())
	assert.Equal(t, mirror, ints(a.Values()))
}
