// ============================================================================
// meinZAHLWERK (mZW) - Big-Integer Toolkit
// ============================================================================
//
// Package:     tower
// Description: Power tower (tetration) evaluator with overflow checks
// Author:      Mike Stoffels
// Created:     2026-09-25
// License:     MIT
// ============================================================================

// Package tower evaluates power towers b^(b^(...^b)) held as a doubly
// linked list of levels, bottom level first. Evaluation combines upward
// from the bottom, raising each next level to the running result, and
// aborts with an overflow error as soon as a partial product passes the
// value ceiling. Levels combined before the abort stay marked evaluated.
package tower

import (
	"fmt"
	"math/big"
	"strings"

	mzwerror "github.com/msto63/mZW/foundation/core/error"
	"github.com/msto63/mZW/foundation/core/errors"
	"github.com/msto63/mZW/foundation/core/log"
	"github.com/msto63/mZW/foundation/utils/mathx"
)

const (
	// DefaultMaxHeight is the largest height Build accepts by default
	DefaultMaxHeight = 100
	// DefaultMaxValueDigits sets the default ceiling to 10^1000
	DefaultMaxValueDigits = 1000
	// structuralLimit is the level above which bases larger than it are
	// rejected without a trial evaluation
	structuralLimit = 4
)

// Node is one level of the tower
type Node struct {
	value     *big.Int
	height    int
	evaluated bool
	prev      *Node
	next      *Node
}

// Value returns a copy of the level's value
func (n *Node) Value() *big.Int { return new(big.Int).Set(n.value) }

// Height returns the 1-indexed position from the bottom
func (n *Node) Height() int { return n.height }

// Evaluated reports whether the last evaluation combined this level
func (n *Node) Evaluated() bool { return n.evaluated }

// Prev returns the level below
func (n *Node) Prev() *Node { return n.prev }

// Next returns the level above
func (n *Node) Next() *Node { return n.next }

// Tower is not safe for concurrent use
type Tower struct {
	head, tail *Node
	height     int
	maxHeight  int
	maxValue   *big.Int
	logger     *log.Logger
}

// Option configures a Tower
type Option func(*Tower)

// WithMaxHeight sets the largest accepted height; values below 1 are ignored
func WithMaxHeight(h int) Option {
	return func(t *Tower) {
		if h > 0 {
			t.maxHeight = h
		}
	}
}

// WithMaxValue sets the overflow ceiling; non-positive values are ignored
func WithMaxValue(v *big.Int) Option {
	return func(t *Tower) {
		if v != nil && v.Sign() > 0 {
			t.maxValue = new(big.Int).Set(v)
		}
	}
}

// WithLogger sets the logger used for overflow aborts
func WithLogger(l *log.Logger) Option {
	return func(t *Tower) {
		if l != nil {
			t.logger = l
		}
	}
}

// New creates an empty tower
func New(opts ...Option) *Tower {
	t := &Tower{
		maxHeight: DefaultMaxHeight,
		maxValue:  mathx.PowerOfTen(DefaultMaxValueDigits),
		logger:    log.Discard(),
	}
	for _, fn := range opts {
		fn(t)
	}
	return t
}

// MaxHeight returns the largest accepted height
func (t *Tower) MaxHeight() int { return t.maxHeight }

// MaxValue returns a copy of the overflow ceiling
func (t *Tower) MaxValue() *big.Int { return new(big.Int).Set(t.maxValue) }

// Height returns the number of levels
func (t *Tower) Height() int { return t.height }

// Base returns a copy of the base, nil for an empty tower
func (t *Tower) Base() *big.Int {
	if t.head == nil {
		return nil
	}
	return t.head.Value()
}

// Head returns the bottom level
func (t *Tower) Head() *Node { return t.head }

// Nodes returns the levels bottom-up
func (t *Tower) Nodes() []*Node {
	out := make([]*Node, 0, t.height)
	for n := t.head; n != nil; n = n.next {
		out = append(out, n)
	}
	return out
}

// Reset removes every level
func (t *Tower) Reset() {
	t.head, t.tail, t.height = nil, nil, 0
}

// Build replaces the tower with height levels of base
func (t *Tower) Build(base any, height int) error {
	if height < 0 || height > t.maxHeight {
		return errors.OutOfRange(errors.ModuleTower, "Build", height, 0, t.maxHeight)
	}
	b, err := mathx.ToBigInt(base)
	if err != nil {
		return mzwerror.Wrap(err, "tower.Build")
	}
	if b.Sign() < 0 {
		return errors.InvalidInput(errors.ModuleTower, "Build", b.String(), "non-negative base")
	}
	if b.Cmp(t.maxValue) > 0 {
		return t.overflow("Build", 1)
	}

	t.Reset()
	for i := 1; i <= height; i++ {
		n := &Node{value: b, height: i, prev: t.tail}
		if t.tail == nil {
			t.head = n
		} else {
			t.tail.next = n
		}
		t.tail = n
	}
	t.height = height
	return nil
}

// Evaluate evaluates the whole tower
func (t *Tower) Evaluate() (*big.Int, error) {
	return t.EvaluateHeight(t.height)
}

// EvaluateHeight evaluates the lowest h levels. An empty tower, or h = 0,
// evaluates to 1.
func (t *Tower) EvaluateHeight(h int) (*big.Int, error) {
	if h < 0 || h > t.height {
		return nil, errors.OutOfRange(errors.ModuleTower, "Evaluate", h, 0, t.height)
	}
	for n := t.head; n != nil; n = n.next {
		n.evaluated = false
	}
	v, err := t.evaluate(h, t.maxValue, true)
	if err != nil {
		t.logger.Debug("tower evaluation aborted", log.Fields{
			"height": h,
			"level":  levelOf(err),
		})
		return nil, err
	}
	return v, nil
}

// evaluate walks the lowest h levels. With mark set, every level that was
// combined is flagged evaluated, including those before an overflow.
func (t *Tower) evaluate(h int, ceiling *big.Int, mark bool) (*big.Int, error) {
	if h == 0 || t.head == nil {
		return big.NewInt(1), nil
	}
	result := new(big.Int).Set(t.head.value)
	if result.Cmp(ceiling) > 0 {
		return nil, t.overflow("Evaluate", 1)
	}
	if mark {
		t.head.evaluated = true
	}
	for n := t.head.next; n != nil && n.height <= h; n = n.next {
		next, err := mathx.CheckedPow(n.value, result, ceiling)
		if err != nil {
			return nil, t.overflow("Evaluate", n.height)
		}
		result = next
		if mark {
			n.evaluated = true
		}
	}
	return result, nil
}

func (t *Tower) overflow(op string, level int) *mzwerror.Error {
	return errors.NewErrorBuilder(errors.ModuleTower).
		Operation(op).
		Code(mzwerror.CodeOverflow).
		Messagef("overflow: power tower exceeds the value ceiling %s at level %d", ceilingText(t.maxValue), level).
		Detail("level", level).
		Build()
}

// ceilingText renders a ceiling as 10^k when it is a power of ten, as the
// plain value when short, and by digit count otherwise
func ceilingText(c *big.Int) string {
	s := c.String()
	if k := len(s) - 1; k > 0 && c.Cmp(mathx.PowerOfTen(k)) == 0 {
		return fmt.Sprintf("10^%d", k)
	}
	if len(s) <= 20 {
		return s
	}
	return fmt.Sprintf("of %d digits", len(s))
}

func levelOf(err error) int {
	if lvl, ok := errors.ExtractDetails(err)["level"].(int); ok {
		return lvl
	}
	return 0
}

// IsComputable reports whether Evaluate would succeed
func (t *Tower) IsComputable() bool {
	return t.IsComputableHeight(t.height)
}

// IsComputableHeight rejects towers taller than four levels whose base is
// above four, then tries an evaluation against half the ceiling. It never
// fails; any error means false.
func (t *Tower) IsComputableHeight(h int) bool {
	if h < 0 || h > t.height {
		return false
	}
	limit := big.NewInt(structuralLimit)
	for n := t.head; n != nil && n.height <= h; n = n.next {
		if n.height > structuralLimit && n.value.Cmp(limit) > 0 {
			return false
		}
	}
	half := new(big.Int).Rsh(t.maxValue, 1)
	_, err := t.evaluate(h, half, false)
	return err == nil
}

// MaxFeasibleHeight returns the tallest tower of base that is known to
// evaluate under the default ceiling. Invalid or negative bases yield 0.
func (t *Tower) MaxFeasibleHeight(base any) int {
	b, err := mathx.ToBigInt(base)
	if err != nil || b.Sign() < 0 {
		return 0
	}
	if !b.IsInt64() {
		return 1
	}
	switch b.Int64() {
	case 0, 1:
		return t.maxHeight
	case 2:
		return 4
	case 3, 4:
		return 3
	default:
		return 1
	}
}

// String renders the tower as nested powers, e.g. 2^(2^2)
func (t *Tower) String() string {
	if t.head == nil {
		return "1"
	}
	b := t.head.value.String()
	expr := b
	for i := 2; i <= t.height; i++ {
		if strings.Contains(expr, "^") {
			expr = b + "^(" + expr + ")"
		} else {
			expr = b + "^" + expr
		}
	}
	return expr
}
