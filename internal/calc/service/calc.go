package service

import (
	"math/big"
	"sort"
	"strings"

	"github.com/msto63/mZW/foundation/core/errors"
	"github.com/msto63/mZW/foundation/utils/mathx"
)

// MaxShift bounds the shift distance accepted by Calc
const MaxShift = 1 << 16

type binaryOp func(a, b *big.Int) (*big.Int, error)
type unaryOp func(a *big.Int) (*big.Int, error)

func total(fn func(a, b *big.Int) *big.Int) binaryOp {
	return func(a, b *big.Int) (*big.Int, error) { return fn(a, b), nil }
}

func totalUnary(fn func(a *big.Int) *big.Int) unaryOp {
	return func(a *big.Int) (*big.Int, error) { return fn(a), nil }
}

// decimal converts b into a power-of-ten exponent within [lo, MaxShift]
func decimal(op string, b *big.Int, lo int64) (int, error) {
	if !b.IsInt64() || b.Int64() < lo || b.Int64() > MaxShift {
		return 0, errors.OutOfRange(errors.ModuleService, "Calc."+op, b, lo, MaxShift)
	}
	return int(b.Int64()), nil
}

func shift(op string, fn func(a *big.Int, n uint) *big.Int) binaryOp {
	return func(a, b *big.Int) (*big.Int, error) {
		if b.Sign() < 0 || b.Cmp(big.NewInt(MaxShift)) > 0 {
			return nil, errors.OutOfRange(errors.ModuleService, "Calc."+op, b, 0, MaxShift)
		}
		return fn(a, uint(b.Int64())), nil
	}
}

var binaryOps = map[string]binaryOp{
	"add": total(mathx.Add),
	"sub": total(mathx.Subtract),
	"mul": total(mathx.Multiply),
	"div": mathx.Divide,
	"mod": mathx.Mod,
	"gcd": total(mathx.GCD),
	"and": total(mathx.And),
	"or":  total(mathx.Or),
	"xor": total(mathx.Xor),
	"shl": shift("shl", mathx.ShiftLeft),
	"shr": shift("shr", mathx.ShiftRight),
	"round": func(a, b *big.Int) (*big.Int, error) {
		places, err := decimal("round", b, 0)
		if err != nil {
			return nil, err
		}
		return mathx.Round(a, places, mathx.RoundingModeHalfUp), nil
	},
	"scale": func(a, b *big.Int) (*big.Int, error) {
		places, err := decimal("scale", b, -MaxShift)
		if err != nil {
			return nil, err
		}
		return mathx.Scale(a, places), nil
	},
}

var unaryOps = map[string]unaryOp{
	"abs":  totalUnary(mathx.Abs),
	"neg":  totalUnary(mathx.Negate),
	"not":  totalUnary(mathx.Not),
	"sqrt": mathx.Sqrt,
	"safe": func(a *big.Int) (*big.Int, error) {
		if err := mathx.CheckSafe(a); err != nil {
			return nil, err
		}
		return a, nil
	},
	"fact": func(a *big.Int) (*big.Int, error) {
		n, err := mathx.ToInt64(a)
		if err != nil {
			return nil, err
		}
		return mathx.Factorial(n)
	},
}

var opAliases = map[string]string{
	"+": "add", "-": "sub", "*": "mul", "/": "div", "%": "mod",
	"^": "pow", "**": "pow", "!": "fact", "<<": "shl", ">>": "shr",
}

// CalcOps lists the operator names Calc accepts
func CalcOps() []string {
	ops := []string{"pow"}
	for op := range binaryOps {
		ops = append(ops, op)
	}
	for op := range unaryOps {
		ops = append(ops, op)
	}
	sort.Strings(ops)
	return ops
}

// IsCalcOp reports whether op names an operator or alias Calc accepts
func IsCalcOp(op string) bool {
	name := canonicalOp(op)
	if name == "pow" {
		return true
	}
	_, binary := binaryOps[name]
	_, unary := unaryOps[name]
	return binary || unary
}

// IsUnary reports whether op takes a single operand
func IsUnary(op string) bool {
	_, ok := unaryOps[canonicalOp(op)]
	return ok
}

func canonicalOp(op string) string {
	op = strings.ToLower(strings.TrimSpace(op))
	if alias, ok := opAliases[op]; ok {
		return alias
	}
	return op
}

// Calc applies op to a and b. Unary operators ignore b. pow is bounded by
// the tower value ceiling.
func (s *Service) Calc(op string, a, b any) (*big.Int, error) {
	name := canonicalOp(op)
	x, err := mathx.ToBigInt(a)
	if err != nil {
		return nil, err
	}

	if fn, ok := unaryOps[name]; ok {
		return fn(x)
	}

	if _, ok := binaryOps[name]; !ok && name != "pow" {
		return nil, errors.InvalidInput(errors.ModuleService, "Calc", op, strings.Join(CalcOps(), ", "))
	}

	y, err := mathx.ToBigInt(b)
	if err != nil {
		return nil, err
	}
	if name == "pow" {
		return mathx.Pow(x, y, s.cfg.TowerMaxValue())
	}
	return binaryOps[name](x, y)
}
