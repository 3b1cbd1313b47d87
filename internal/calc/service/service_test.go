package service

import (
	"context"
	"math"
	"math/big"
	"strings"
	"sync"
	"testing"
	"time"

	mzwerror "github.com/msto63/mZW/foundation/core/error"
	"github.com/msto63/mZW/foundation/core/log"
	"github.com/msto63/mZW/pkg/core/config"
	"github.com/msto63/mZW/pkg/core/health"
	"github.com/msto63/mZW/pkg/core/logging"
	"github.com/msto63/mZW/pkg/grid"
	"github.com/msto63/mZW/pkg/heap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, mutate ...func(*config.Config)) *Service {
	t.Helper()
	cfg := config.Default()
	for _, fn := range mutate {
		fn(cfg)
	}
	s, err := New(cfg, WithLogger(logging.Wrap(log.Discard())))
	require.NoError(t, err)
	return s
}

func bigs(vs ...int64) []*big.Int {
	out := make([]*big.Int, len(vs))
	for i, v := range vs {
		out[i] = big.NewInt(v)
	}
	return out
}

func TestNewAssignsSessionIDs(t *testing.T) {
	a := newTestService(t)
	b := newTestService(t)
	assert.NotEmpty(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Array.GrowthFactor = 0.5
	_, err := New(cfg, WithLogger(logging.Wrap(log.Discard())))
	require.Error(t, err)
	assert.True(t, mzwerror.HasCode(err, mzwerror.CodeInvalidConfig))
}

func TestHeaps(t *testing.T) {
	s := newTestService(t)
	for _, v := range []int64{5, 1, 9} {
		_, err := s.HeapPush(heap.Min, v)
		require.NoError(t, err)
		_, err = s.HeapPush(heap.Max, v)
		require.NoError(t, err)
	}

	top, err := s.HeapPeek(heap.Min)
	require.NoError(t, err)
	assert.Equal(t, "1", top.String())

	top, err = s.HeapPop(heap.Max)
	require.NoError(t, err)
	assert.Equal(t, "9", top.String())
	assert.Equal(t, 2, s.HeapSize(heap.Max))
	assert.Equal(t, 3, s.HeapSize(heap.Min))

	_, err = s.HeapPush(heap.Min, "not a number")
	assert.True(t, mzwerror.IsValidation(err))

	empty := newTestService(t)
	_, err = empty.HeapPop(heap.Min)
	assert.True(t, mzwerror.HasCode(err, mzwerror.CodeEmptyStructure))
}

func TestHeapSort(t *testing.T) {
	s := newTestService(t)
	asc, err := s.HeapSort([]any{5, 1, "9", 3}, false)
	require.NoError(t, err)
	assert.Equal(t, bigs(1, 3, 5, 9), asc)

	desc, err := s.HeapSort([]any{5, 1, 9, 3}, true)
	require.NoError(t, err)
	assert.Equal(t, bigs(9, 5, 3, 1), desc)
	assert.Equal(t, 0, s.HeapSize(heap.Min))
}

func TestTree(t *testing.T) {
	s := newTestService(t)
	require.NoError(t, s.TreeInsert(5, 3, 8, 1, 4))

	nth, err := s.TreeNth(3)
	require.NoError(t, err)
	assert.Equal(t, "4", nth.String())

	_, err = s.TreeNth(6)
	assert.True(t, mzwerror.IsValidation(err))

	rank, err := s.TreeRank(4)
	require.NoError(t, err)
	assert.Equal(t, 3, rank)

	in, err := s.TreeRange(2, 5)
	require.NoError(t, err)
	assert.Equal(t, bigs(3, 4, 5), in)

	st := s.TreeStats()
	assert.Equal(t, 5, st.Size)
	assert.Equal(t, "21", st.Sum.String())
	assert.Equal(t, "1", st.Min.String())
	assert.Equal(t, "8", st.Max.String())

	removed, err := s.TreeRemove(3)
	require.NoError(t, err)
	assert.True(t, removed)

	values, err := s.TreeTraverse("in", 0)
	require.NoError(t, err)
	assert.Equal(t, bigs(1, 4, 5, 8), values)

	_, err = s.TreeTraverse("sideways", 0)
	assert.True(t, mzwerror.IsValidation(err))
}

func TestArray(t *testing.T) {
	s := newTestService(t)
	last, err := s.ArrayPush(3, 7, 2, 9, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, last)

	m, err := s.ArrayRangeMax(0, 2)
	require.NoError(t, err)
	assert.Equal(t, "7", m.String())

	prev, err := s.ArraySet(3, 1)
	require.NoError(t, err)
	assert.Equal(t, "9", prev.String())

	m, err = s.ArrayMax()
	require.NoError(t, err)
	assert.Equal(t, "7", m.String())

	_, err = s.ArrayGet(5)
	assert.True(t, mzwerror.IsValidation(err), "index errors keep their code: %v", err)

	require.NoError(t, s.ArraySort(true))
	assert.Equal(t, bigs(1, 2, 3, 4, 7), s.ArrayValues())

	popped, err := s.ArrayPop()
	require.NoError(t, err)
	assert.Equal(t, "7", popped.String())

	require.NoError(t, s.ArrayLoad([]any{10, 20}))
	info := s.ArrayInfo()
	assert.Equal(t, 2, info.Size)
	assert.Equal(t, 16, info.Capacity)
}

func TestStatelessQueries(t *testing.T) {
	s := newTestService(t)
	m, err := s.RangeMax([]any{1, 5, 2, 4, 3}, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, "5", m.String())

	_, err = s.RangeMax([]any{1, 2}, 1, 5)
	assert.True(t, mzwerror.IsValidation(err))

	k, err := s.OrderStatistic([]any{9, 3, 7, 3, 1}, 3)
	require.NoError(t, err)
	assert.Equal(t, "7", k.String())

	_, err = s.OrderStatistic([]any{1}, 2)
	assert.True(t, mzwerror.IsValidation(err))

	assert.Equal(t, 0, s.ArrayInfo().Size)
	assert.Equal(t, 0, s.TreeStats().Size)
}

func TestAckermann(t *testing.T) {
	s := newTestService(t)
	r, err := s.Ackermann(2, 2)
	require.NoError(t, err)
	assert.Equal(t, "7", r.Value.String())
	assert.True(t, r.Exact())

	path, err := s.AckermannPath(2, 2)
	require.NoError(t, err)
	require.NotEmpty(t, path)
	assert.Equal(t, int64(2), path[len(path)-1].M)
	assert.Equal(t, int64(2), path[len(path)-1].N)

	// A(2, 2) already memoized row 1 up to A(1, 5)
	steps, err := s.AckermannGrowth(1, 4)
	require.NoError(t, err)
	require.Len(t, steps, 6)
	assert.Nil(t, steps[0].Increase)
	assert.Equal(t, "7", steps[5].Value.String())
	assert.Equal(t, "1", steps[5].Increase.String())

	largest, err := s.GridLargest()
	require.NoError(t, err)
	assert.Equal(t, "7", largest.String())

	_, err = s.Ackermann(-1, 0)
	assert.True(t, mzwerror.IsValidation(err))
}

func TestAckermannTable(t *testing.T) {
	s := newTestService(t)
	rows, err := s.AckermannTable(2, 3)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	want := [][]int64{{1, 2, 3, 4}, {2, 3, 4, 5}, {3, 5, 7, 9}}
	for m, row := range rows {
		require.Len(t, row, 4)
		for n, r := range row {
			assert.Equal(t, big.NewInt(want[m][n]).String(), r.Value.String(), "A(%d, %d)", m, n)
		}
	}

	_, err = s.AckermannTable(-1, 2)
	assert.True(t, mzwerror.IsValidation(err))
}

func TestAckermannBounds(t *testing.T) {
	s := newTestService(t)

	_, err := s.AckermannGrowth(0, MaxGridColumns+1)
	assert.True(t, mzwerror.HasCode(err, mzwerror.CodeValueOutOfRange))
	_, err = s.AckermannGrowth(0, -1)
	assert.True(t, mzwerror.IsValidation(err))

	_, err = s.AckermannTable(MaxTableSize, 1)
	assert.True(t, mzwerror.HasCode(err, mzwerror.CodeValueOutOfRange))
	_, err = s.AckermannTable(1, math.MaxInt64)
	assert.True(t, mzwerror.HasCode(err, mzwerror.CodeValueOutOfRange))

	_, err = s.Exec("grid growth 0 100000000000")
	assert.True(t, mzwerror.IsValidation(err))
	assert.Equal(t, 0, s.GridSize())
}

func TestAckermannGrowthStopsAtCeiling(t *testing.T) {
	s := newTestService(t, func(c *config.Config) { c.Grid.ValueCeiling = "100" })

	done := make(chan struct{})
	var steps []grid.GrowthStep
	var err error
	go func() {
		defer close(done)
		steps, err = s.AckermannGrowth(3, MaxGridColumns)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("AckermannGrowth did not stop at the ceiling")
	}
	require.NoError(t, err)

	// A(3, n) = 2^(n+3) - 3; A(3, 4) = 125 is past the ceiling
	require.Len(t, steps, 4)
	assert.Equal(t, "61", steps[3].Value.String())
	_, ok := s.grid.Get(3, 5)
	assert.False(t, ok)
	assert.Less(t, s.GridSize(), 500)
}

func TestAckermannClampsAtConfiguredCeiling(t *testing.T) {
	s := newTestService(t, func(c *config.Config) { c.Grid.ValueCeiling = "100" })
	r, err := s.Ackermann(3, 4)
	require.NoError(t, err)
	assert.Equal(t, grid.ClampCeiling, r.Clamp)
	assert.Equal(t, "100", r.Value.String())
}

func TestTower(t *testing.T) {
	s := newTestService(t)
	v, err := s.Tetrate(2, 3)
	require.NoError(t, err)
	assert.Equal(t, "16", v.String())
	assert.Equal(t, "2^(2^2)", s.TowerRender())

	values, flags := s.TowerLevels()
	assert.Len(t, values, 3)
	assert.Equal(t, []bool{true, true, true}, flags)

	_, err = s.Tetrate(2, 5)
	assert.True(t, mzwerror.IsOverflow(err))

	c, err := s.TowerCheck(2, 5)
	require.NoError(t, err)
	assert.False(t, c.Computable)
	assert.Equal(t, 4, c.MaxFeasibleHeight)

	_, err = s.Tetrate(-2, 3)
	assert.True(t, mzwerror.IsValidation(err))
}

func TestCalc(t *testing.T) {
	s := newTestService(t)
	tests := []struct {
		op   string
		a, b any
		want string
	}{
		{"add", 2, 3, "5"},
		{"-", 2, 3, "-1"},
		{"*", "123456789012345678901234567890", 10, "1234567890123456789012345678900"},
		{"div", -7, 2, "-3"},
		{"mod", -7, 3, "2"},
		{"^", 2, 10, "1024"},
		{"gcd", 12, 18, "6"},
		{"xor", 6, 3, "5"},
		{"shl", 1, 70, "1180591620717411303424"},
		{"fact", 5, nil, "120"},
		{"!", 0, nil, "1"},
		{"sqrt", 99, nil, "9"},
		{"neg", 4, nil, "-4"},
		{"round", 1250, 2, "1300"},
		{"round", -1249, 2, "-1200"},
		{"scale", 12, 3, "12000"},
		{"scale", 12345, -2, "123"},
		{"safe", "9007199254740991", nil, "9007199254740991"},
	}
	for _, tt := range tests {
		t.Run(tt.op, func(t *testing.T) {
			got, err := s.Calc(tt.op, tt.a, tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}

	_, err := s.Calc("div", 1, 0)
	assert.True(t, mzwerror.IsValidation(err))
	_, err = s.Calc("sqrt", -1, nil)
	assert.True(t, mzwerror.IsValidation(err))
	_, err = s.Calc("frobnicate", 1, 2)
	assert.True(t, mzwerror.IsValidation(err))
	_, err = s.Calc("pow", 10, 2000)
	assert.True(t, mzwerror.IsOverflow(err))
	_, err = s.Calc("shl", 1, -1)
	assert.True(t, mzwerror.IsValidation(err))
	_, err = s.Calc("round", 1, -1)
	assert.True(t, mzwerror.IsValidation(err))
	_, err = s.Calc("scale", 1, MaxShift+1)
	assert.True(t, mzwerror.IsValidation(err))
	_, err = s.Calc("safe", "9007199254740992", nil)
	assert.True(t, mzwerror.HasCode(err, mzwerror.CodeOverflow))
	_, err = s.Calc("safe", "-9007199254740992", nil)
	assert.True(t, mzwerror.HasCode(err, mzwerror.CodeUnderflow))
}

func TestCalcOpNames(t *testing.T) {
	assert.True(t, IsCalcOp("ADD"))
	assert.True(t, IsCalcOp("**"))
	assert.True(t, IsCalcOp("fact"))
	assert.False(t, IsCalcOp("tree"))
	assert.True(t, IsUnary("!"))
	assert.False(t, IsUnary("pow"))
	assert.Contains(t, CalcOps(), "pow")
}

func TestFormat(t *testing.T) {
	s := newTestService(t)
	out, err := s.Format("grouped", 1234567)
	require.NoError(t, err)
	assert.Equal(t, "1,234,567", out)

	out, err = s.Format("roman", 1994)
	require.NoError(t, err)
	assert.Equal(t, "MCMXCIV", out)

	_, err = s.Format("klingon", 1)
	assert.True(t, mzwerror.IsValidation(err))
}

func TestExec(t *testing.T) {
	s := newTestService(t)
	steps := []struct {
		line string
		want string
	}{
		{"", ""},
		{"# comment", ""},
		{"heap push min 5 1 9", "min-heap size 3"},
		{"heap peek min", "1"},
		{"heap sort desc 3 1 2", "[3 2 1]"},
		{"tree insert 5 3 8", "size 3, height 2"},
		{"tree show", "[3 5 8]"},
		{"tree show pre", "[5 3 8]"},
		{"tree nth 2", "5"},
		{"array push 3 7 2", "index 2"},
		{"array max 0 1", "7"},
		{"array set 0 10", "previous 3"},
		{"array sort desc", "[10 7 2]"},
		{"grid ack 2 3", "A(2, 3) = 9"},
		{"tower eval 3 3", "7625597484987"},
		{"tower show", "3^(3^3)"},
		{"calc + 2 3", "5"},
		{"calc fact 5", "120"},
		{"calc + 0x10 1_000", "1016"},
		{"fmt hex 255", "ff"},
		{"roman MCMXCIV", "1994"},
		{"calc round 1250 2", "1300"},
		{"TREE STATS", "size=3 height=2 sum=16 min=3 max=8"},
	}
	for _, st := range steps {
		got, err := s.Exec(st.line)
		require.NoError(t, err, st.line)
		assert.Equal(t, st.want, got, st.line)
	}
}

func TestExecErrors(t *testing.T) {
	s := newTestService(t)
	for _, line := range []string{
		"bogus",
		"heap pop",
		"heap pop sideways",
		"tree nth x",
		"calc add 1",
		"grid ack 1",
		"array sort sideways",
		"roman ABC",
	} {
		_, err := s.Exec(line)
		require.Error(t, err, line)
		assert.True(t, mzwerror.IsValidation(err), "%s: %v", line, err)
	}

	_, err := s.Exec("heap pop min")
	assert.True(t, mzwerror.HasCode(err, mzwerror.CodeEmptyStructure))

	_, err = s.Exec("tower eval 10 4")
	assert.True(t, mzwerror.IsOverflow(err))
}

func TestExecHelpAndHealth(t *testing.T) {
	s := newTestService(t)
	help, err := s.Exec("help")
	require.NoError(t, err)
	assert.Contains(t, help, "tree insert <v>...")
	assert.Contains(t, help, "grid growth <m> [upto]")

	out, err := s.Exec("health")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "status: healthy"), out)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 6)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(lines[1]), "array"), lines[1])
	assert.True(t, strings.HasPrefix(lines[5], "uptime: "), lines[5])
}

func TestHealth(t *testing.T) {
	s := newTestService(t)
	_, err := s.ArrayPush(1, 2, 3)
	require.NoError(t, err)
	require.NoError(t, s.TreeInsert(1, 2, 3))

	report := s.Health(context.Background())
	assert.Equal(t, health.StatusHealthy, report.Status)
	require.Len(t, report.Checks, 4)
	assert.Equal(t, "array", report.Checks[0].Name)
	assert.Equal(t, "tree", report.Checks[3].Name)
	assert.Equal(t, "calc", report.Service)
}

func TestReset(t *testing.T) {
	s := newTestService(t)
	require.NoError(t, s.TreeInsert(1, 2))
	_, err := s.ArrayPush(1)
	require.NoError(t, err)

	out, err := s.Exec("reset")
	require.NoError(t, err)
	assert.Equal(t, "workspace reset", out)
	assert.Equal(t, 0, s.TreeStats().Size)
	assert.Equal(t, 0, s.ArrayInfo().Size)
}

func TestConcurrentUse(t *testing.T) {
	s := newTestService(t)
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				v := w*1000 + i
				_, _ = s.ArrayPush(v)
				_ = s.TreeInsert(v)
				_, _ = s.HeapPush(heap.Max, v)
				_, _ = s.Ackermann(1, int64(i%10))
			}
		}(w)
	}
	wg.Wait()

	info := s.ArrayInfo()
	assert.Equal(t, 400, info.Size)
	// 16 -> 32 -> 64 -> 128 -> 256 -> 512
	assert.Equal(t, 5, info.Resizes)
	assert.Equal(t, 400, s.TreeStats().Size)
	assert.Equal(t, 400, s.HeapSize(heap.Max))
	assert.Equal(t, health.StatusHealthy, s.Health(context.Background()).Status)
}
