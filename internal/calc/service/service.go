package service

import (
	"context"
	"math/big"
	"sync"

	"github.com/google/uuid"
	"github.com/msto63/mZW/foundation/core/errors"
	"github.com/msto63/mZW/foundation/utils/mathx"
	"github.com/msto63/mZW/foundation/utils/numfmt"
	"github.com/msto63/mZW/pkg/avltree"
	"github.com/msto63/mZW/pkg/core/config"
	"github.com/msto63/mZW/pkg/core/health"
	"github.com/msto63/mZW/pkg/core/logging"
	"github.com/msto63/mZW/pkg/core/version"
	"github.com/msto63/mZW/pkg/grid"
	"github.com/msto63/mZW/pkg/heap"
	"github.com/msto63/mZW/pkg/indexedarray"
	"github.com/msto63/mZW/pkg/result"
	"github.com/msto63/mZW/pkg/tower"
)

// GridNodeLimit is the memo size above which the grid check reports degraded
const GridNodeLimit = 100000

// Service owns one workspace of big-integer structures. All methods are
// safe for concurrent use; calls are serialized on a single mutex.
type Service struct {
	mu     sync.Mutex
	id     string
	cfg    *config.Config
	logger *logging.Logger

	minHeap *heap.Heap[*big.Int]
	maxHeap *heap.Heap[*big.Int]
	tree    *avltree.Tree
	array   *indexedarray.Array
	grid    *grid.Grid
	tower   *tower.Tower

	health *health.Registry
}

// Option configures a Service
type Option func(*Service)

// WithLogger sets the service logger; the core structures log through it
// at debug level
func WithLogger(l *logging.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a workspace sized and bounded by cfg. A nil cfg uses the
// defaults.
func New(cfg *config.Config, opts ...Option) (*Service, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Service{
		id:  uuid.New().String(),
		cfg: cfg,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.Wrap(logging.NewLogger(logging.FromConfig("calc", cfg)))
	}
	s.logger = logging.Wrap(s.logger.Logger.WithSessionID(s.id))

	if err := s.reset(); err != nil {
		return nil, err
	}

	s.health = health.NewRegistry("calc", version.Library)
	s.health.Register(health.VerifyCheck("heap", s.verifyHeaps))
	s.health.Register(health.VerifyCheck("tree", s.locked(func() error { return s.tree.Verify() })))
	s.health.Register(health.VerifyCheck("array", s.locked(func() error { return s.array.Verify() })))
	s.health.Register(health.ThresholdCheck("grid", s.GridSize, GridNodeLimit))

	s.logger.Info("workspace created",
		"grid_ceiling", cfg.Grid.ValueCeiling,
		"tower_max_height", cfg.Tower.MaxHeight,
	)
	return s, nil
}

// reset builds fresh structures from the configuration
func (s *Service) reset() error {
	ceiling, err := s.cfg.GridCeiling()
	if err != nil {
		return errors.OperationFailed(errors.ModuleService, "New", err)
	}
	core := s.logger.Logger

	s.minHeap = heap.NewBigInt(heap.Min)
	s.maxHeap = heap.NewBigInt(heap.Max)
	s.tree = avltree.New(
		avltree.WithMaxTraverseDepth(s.cfg.Tree.MaxTraverseDepth),
		avltree.WithLogger(core),
	)
	s.array = s.newArray()
	s.grid = grid.New(
		grid.WithCeiling(ceiling),
		grid.WithMaxDepth(s.cfg.Grid.MaxDepth),
		grid.WithLogger(core),
	)
	s.tower = tower.New(
		tower.WithMaxHeight(s.cfg.Tower.MaxHeight),
		tower.WithMaxValue(s.cfg.TowerMaxValue()),
		tower.WithLogger(core),
	)
	return nil
}

func (s *Service) newArray(values ...*big.Int) *indexedarray.Array {
	opts := []indexedarray.Option{
		indexedarray.WithCapacity(s.cfg.Array.InitialCapacity),
		indexedarray.WithGrowthFactor(s.cfg.Array.GrowthFactor),
		indexedarray.WithLogger(s.logger.Logger),
	}
	if len(values) > 0 {
		return indexedarray.FromSlice(values, opts...)
	}
	return indexedarray.New(opts...)
}

func (s *Service) locked(fn func() error) func() error {
	return func() error {
		s.mu.Lock()
		defer s.mu.Unlock()
		return fn()
	}
}

func (s *Service) verifyHeaps() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.minHeap.Verify(); err != nil {
		return err
	}
	return s.maxHeap.Verify()
}

// ID returns the session identifier of this workspace
func (s *Service) ID() string { return s.id }

// Config returns the configuration the workspace was built from
func (s *Service) Config() *config.Config { return s.cfg }

// Reset discards every structure and starts over with empty ones
func (s *Service) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logger.Info("workspace reset")
	return s.reset()
}

// Health runs the structural checks of every component
func (s *Service) Health(ctx context.Context) *health.Report {
	return s.health.Check(ctx)
}

// Heap operations

func (s *Service) heapOf(kind heap.Kind) *heap.Heap[*big.Int] {
	if kind == heap.Max {
		return s.maxHeap
	}
	return s.minHeap
}

// HeapPush inserts v into the heap of the given kind and returns the index
// it settled at
func (s *Service) HeapPush(kind heap.Kind, v any) (int, error) {
	x, err := mathx.ToBigInt(v)
	if err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return unwrap(s.heapOf(kind).Push(x))
}

// HeapPop removes and returns the root of the heap of the given kind
func (s *Service) HeapPop(kind heap.Kind) (*big.Int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return unwrap(s.heapOf(kind).Pop())
}

// HeapPeek returns the root of the heap of the given kind
func (s *Service) HeapPeek(kind heap.Kind) (*big.Int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, err := unwrap(s.heapOf(kind).Peek())
	if err != nil {
		return nil, err
	}
	return new(big.Int).Set(v), nil
}

// HeapSize returns the number of elements in the heap of the given kind
func (s *Service) HeapSize(kind heap.Kind) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.heapOf(kind).Size()
}

// HeapSort sorts values by heapifying and draining them; the workspace
// heaps are not touched
func (s *Service) HeapSort(values []any, descending bool) ([]*big.Int, error) {
	xs, err := toBigInts(values)
	if err != nil {
		return nil, err
	}
	kind := heap.Min
	if descending {
		kind = heap.Max
	}
	return heap.Heapify(xs, kind, mathx.Compare).Drain(), nil
}

// RangeMax returns the maximum of values[start..end] using a transient
// indexed array; the workspace is not touched
func (s *Service) RangeMax(values []any, start, end int) (*big.Int, error) {
	xs, err := toBigInts(values)
	if err != nil {
		return nil, err
	}
	arr := indexedarray.FromSlice(xs, indexedarray.WithLogger(s.logger.Logger))
	return unwrap(arr.QueryRange(start, end))
}

// OrderStatistic returns the k-th smallest distinct value, 1-indexed, using
// a transient tree. Duplicates collapse into one entry.
func (s *Service) OrderStatistic(values []any, k int) (*big.Int, error) {
	t := avltree.New(avltree.WithLogger(s.logger.Logger))
	for _, v := range values {
		if _, err := t.Insert(v); err != nil {
			return nil, err
		}
	}
	v, ok := t.NthValue(k)
	if !ok {
		return nil, errors.OutOfRange(errors.ModuleService, "OrderStatistic", k, 1, t.Size())
	}
	return v, nil
}

// Tree operations

// TreeStats summarizes the tree aggregates
type TreeStats struct {
	Size   int
	Height int
	Sum    *big.Int
	Min    *big.Int
	Max    *big.Int
}

// TreeInsert inserts every value, stopping at the first invalid one
func (s *Service) TreeInsert(values ...any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range values {
		if _, err := s.tree.Insert(v); err != nil {
			return err
		}
	}
	return nil
}

// TreeRemove removes v and reports whether it was present
func (s *Service) TreeRemove(v any) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree.Remove(v)
}

// TreeTraverse lists the values in the named order; depth 0 uses the
// configured limit
func (s *Service) TreeTraverse(order string, depth int) ([]*big.Int, error) {
	o, err := avltree.ParseOrder(order)
	if err != nil {
		return nil, err
	}
	var opts []avltree.TraverseOption
	if depth > 0 {
		opts = append(opts, avltree.MaxDepth(depth))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree.Traverse(o, opts...), nil
}

// TreeNth returns the n-th smallest value, 1-indexed
func (s *Service) TreeNth(n int) (*big.Int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.tree.NthValue(n)
	if !ok {
		return nil, errors.OutOfRange(errors.ModuleService, "TreeNth", n, 1, s.tree.Size())
	}
	return v, nil
}

// TreeRank returns the 1-indexed position v holds or would hold
func (s *Service) TreeRank(v any) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree.Rank(v)
}

// TreeRange returns the stored values within [start, end] in order
func (s *Service) TreeRange(start, end any) ([]*big.Int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree.Range(start, end)
}

// TreeStats returns size, height and the aggregates of the tree
func (s *Service) TreeStats() TreeStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := TreeStats{
		Size:   s.tree.Size(),
		Height: s.tree.Height(),
		Sum:    s.tree.Sum(),
	}
	st.Min, _ = s.tree.Min()
	st.Max, _ = s.tree.Max()
	return st
}

// Array operations

// ArrayPush appends every value and returns the index of the last one
func (s *Service) ArrayPush(values ...any) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := -1
	for _, v := range values {
		i, err := unwrap(s.array.Push(v))
		if err != nil {
			return idx, err
		}
		idx = i
	}
	return idx, nil
}

// ArrayPop removes and returns the last element
func (s *Service) ArrayPop() (*big.Int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return unwrap(s.array.Pop())
}

// ArrayGet returns the element at i
func (s *Service) ArrayGet(i int) (*big.Int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return unwrap(s.array.Get(i))
}

// ArraySet replaces the element at i and returns the previous one
func (s *Service) ArraySet(i int, v any) (*big.Int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return unwrap(s.array.Set(i, v))
}

// ArrayMax returns the largest element
func (s *Service) ArrayMax() (*big.Int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return unwrap(s.array.Max())
}

// ArrayRangeMax returns the largest element in [start, end]
func (s *Service) ArrayRangeMax(start, end int) (*big.Int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return unwrap(s.array.QueryRange(start, end))
}

// ArraySort sorts the array in place
func (s *Service) ArraySort(ascending bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := unwrap(s.array.Sort(ascending))
	return err
}

// ArrayLoad replaces the array contents with values
func (s *Service) ArrayLoad(values []any) error {
	xs, err := toBigInts(values)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.array = s.newArray(xs...)
	return nil
}

// ArrayValues returns a copy of the array contents
func (s *Service) ArrayValues() []*big.Int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.array.Values()
}

// ArrayStats summarizes the array buffer
type ArrayStats struct {
	Size     int
	Capacity int
	Resizes  int
}

// ArrayInfo returns size, capacity and the number of buffer resizes
func (s *Service) ArrayInfo() ArrayStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ArrayStats{Size: s.array.Size(), Capacity: s.array.Capacity(), Resizes: s.array.Resizes()}
}

// Grid operations

const (
	// MaxGridColumns bounds the columns AckermannGrowth fills in one call
	MaxGridColumns = 4096
	// MaxTableSize bounds both dimensions of AckermannTable
	MaxTableSize = 64
)

// AckermannResult is one memoized grid value
type AckermannResult struct {
	M     int64
	N     int64
	Value *big.Int
	Clamp grid.ClampReason
}

// Exact reports whether the value is the true Ackermann value
func (r AckermannResult) Exact() bool { return r.Clamp == grid.ClampNone }

func resultOf(n *grid.Node) AckermannResult {
	return AckermannResult{M: n.M(), N: n.N(), Value: n.Value(), Clamp: n.Clamp()}
}

// Ackermann computes A(m, n) through the memoized grid
func (s *Service) Ackermann(m, n int64) (AckermannResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	node, err := s.grid.AddNode(m, n)
	if err != nil {
		return AckermannResult{}, err
	}
	return resultOf(node), nil
}

// AckermannPath computes A(m, n) and returns the memoized pairs leading to it
func (s *Service) AckermannPath(m, n int64) ([]AckermannResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.grid.AddNode(m, n); err != nil {
		return nil, err
	}
	path := s.grid.ComputationPath(m, n)
	out := make([]AckermannResult, len(path))
	for i, node := range path {
		out[i] = resultOf(node)
	}
	return out, nil
}

// AckermannGrowth fills row m from column 0 up to column upTo, stopping at
// the first value that is clamped or reaches the ceiling, and analyzes the
// growth of the row
func (s *Service) AckermannGrowth(m, upTo int64) ([]grid.GrowthStep, error) {
	if upTo < 0 || upTo > MaxGridColumns {
		return nil, errors.OutOfRange(errors.ModuleService, "AckermannGrowth", upTo, 0, MaxGridColumns)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	ceiling := s.grid.Ceiling()
	for n := int64(0); n <= upTo; n++ {
		node, err := s.grid.AddNode(m, n)
		if err != nil {
			return nil, err
		}
		if node.Clamp() != grid.ClampNone || node.Value().Cmp(ceiling) >= 0 {
			break
		}
	}
	return s.grid.AnalyzeGrowthRate(m), nil
}

// AckermannTable memoizes every pair with m <= mMax and n <= nMax and
// returns them row by row. Both bounds must be below MaxTableSize.
func (s *Service) AckermannTable(mMax, nMax int64) ([][]AckermannResult, error) {
	for _, bound := range []int64{mMax, nMax} {
		if bound < 0 || bound >= MaxTableSize {
			return nil, errors.OutOfRange(errors.ModuleService, "AckermannTable", bound, 0, MaxTableSize-1)
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.grid.BuildRange(mMax, nMax); err != nil {
		return nil, err
	}
	rows := make([][]AckermannResult, mMax+1)
	for m := int64(0); m <= mMax; m++ {
		rows[m] = make([]AckermannResult, nMax+1)
		for n := int64(0); n <= nMax; n++ {
			node, _ := s.grid.Get(m, n)
			rows[m][n] = resultOf(node)
		}
	}
	return rows, nil
}

// GridLargest returns the largest value memoized so far
func (s *Service) GridLargest() (*big.Int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.grid.LargestValue()
	if !ok {
		return nil, errors.EmptyStructure(errors.ModuleService, "GridLargest")
	}
	return v, nil
}

// GridSize returns the number of memoized pairs
func (s *Service) GridSize() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.grid.Size()
}

// Tower operations

// TowerCheck reports whether a tower would evaluate under the ceiling
type TowerCheck struct {
	Computable        bool
	MaxFeasibleHeight int
	Expression        string
}

// Tetrate builds base^^height in the workspace tower and evaluates it
func (s *Service) Tetrate(base any, height int) (*big.Int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.tower.Build(base, height); err != nil {
		return nil, err
	}
	return s.tower.Evaluate()
}

// TowerCheck builds base^^height and tests it without evaluating fully
func (s *Service) TowerCheck(base any, height int) (TowerCheck, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.tower.Build(base, height); err != nil {
		return TowerCheck{}, err
	}
	return TowerCheck{
		Computable:        s.tower.IsComputable(),
		MaxFeasibleHeight: s.tower.MaxFeasibleHeight(base),
		Expression:        s.tower.String(),
	}, nil
}

// TowerRender returns the current tower as nested powers
func (s *Service) TowerRender() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tower.String()
}

// TowerLevels returns the values of the current tower levels and whether
// each has been evaluated
func (s *Service) TowerLevels() ([]*big.Int, []bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	nodes := s.tower.Nodes()
	values := make([]*big.Int, len(nodes))
	flags := make([]bool, len(nodes))
	for i, n := range nodes {
		values[i] = n.Value()
		flags[i] = n.Evaluated()
	}
	return values, flags
}

// Formatting

// Format renders v in the named numfmt style
func (s *Service) Format(style string, v any) (string, error) {
	x, err := mathx.ToBigInt(v)
	if err != nil {
		return "", err
	}
	return numfmt.Format(x, numfmt.Style(style))
}

// helpers

func unwrap[T any](r result.Result[T]) (T, error) {
	v, ok := r.Get()
	if !ok {
		var zero T
		return zero, r.Error()
	}
	return v, nil
}

func toBigInts(values []any) ([]*big.Int, error) {
	out := make([]*big.Int, len(values))
	for i, v := range values {
		x, err := mathx.ToBigInt(v)
		if err != nil {
			return nil, err
		}
		out[i] = x
	}
	return out, nil
}
