package bulk

import (
	"context"

	"github.com/Daniel-Alievsky/algart-sub004/array"
	"github.com/Daniel-Alievsky/algart-sub004/arrayerr"
	"github.com/Daniel-Alievsky/algart-sub004/bitops"
	"github.com/Daniel-Alievsky/algart-sub004/kind"
	"github.com/Daniel-Alievsky/algart-sub004/parallel"
)

// Summator sums every element of a, widened to float64. Per the
// determinism rule, it always runs as a single task, in blocks, so the
// result is the strict left-to-right reduction of block partials
// regardless of how many CPUs are available. Bit arrays sum as their
// cardinality; 8/16-bit unsigned kinds accumulate a 32-bit block
// partial, 32-bit integers a 64-bit partial, and 64-bit integers/floats
// a float64 partial.
func Summator(ctx context.Context, a array.Array) (float64, error) {
	k := a.ElementKind()
	if k == kind.Bit {
		return bitCardinality(a)
	}
	n := a.Length()
	e := newExecutor(ctx, n, blockSizeFor(k, true), true)
	var total float64
	pool := parallel.NewBufferPool()
	err := e.Process(ctx, func(position, count int64, threadIndex int) error {
		buf := sliceN(pool.Get(threadIndex, func() any { return newBuffer(k, e.BlockSize) }), count)
		if err := a.GetData(position, buf, 0, count); err != nil {
			return err
		}
		total += blockSum(k, buf, count)
		return nil
	}, func() error {
		pool.Release()
		return nil
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

func blockSum(k kind.Kind, buf any, n int64) float64 {
	switch k {
	case kind.U8Byte, kind.U16Char, kind.U16Short:
		var s int32
		for i := int64(0); i < n; i++ {
			s += int32(toFloat64(elemAt(buf, i)))
		}
		return float64(s)
	case kind.I32:
		var s int64
		for i := int64(0); i < n; i++ {
			s += int64(toFloat64(elemAt(buf, i)))
		}
		return float64(s)
	default: // I64, F32, F64
		var s float64
		for i := int64(0); i < n; i++ {
			s += toFloat64(elemAt(buf, i))
		}
		return s
	}
}

func bitCardinality(a array.Array) (float64, error) {
	if ba, ok := a.(array.BitAccess); ok {
		words, bitOffset := ba.Words()
		return float64(bitops.Cardinality(words, bitOffset, bitOffset+a.Length())), nil
	}
	var count int64
	for i := int64(0); i < a.Length(); i++ {
		v, err := a.Get(i)
		if err != nil {
			return 0, err
		}
		if v.(bool) {
			count++
		}
	}
	return float64(count), nil
}

// PreciseSummator sums the integer elements of a as a single 64-bit
// accumulator, detecting overflow with the standard sign-based test
// both within a block and at merge, and failing with ArithmeticOverflow
// rather than silently wrapping.
func PreciseSummator(ctx context.Context, a array.Array) (int64, error) {
	const op = "bulk.PreciseSummator"
	k := a.ElementKind()
	if !k.IsNumeric() || k.IsFloat() {
		return 0, arrayerr.Newf(op, arrayerr.KindTypeMismatch, "kind %s is not an integer kind", k)
	}
	n := a.Length()
	e := newExecutor(ctx, n, blockSizeFor(k, true), true)
	var total int64
	pool := parallel.NewBufferPool()
	err := e.Process(ctx, func(position, count int64, threadIndex int) error {
		buf := sliceN(pool.Get(threadIndex, func() any { return newBuffer(k, e.BlockSize) }), count)
		if err := a.GetData(position, buf, 0, count); err != nil {
			return err
		}
		blockTotal, err := preciseBlockSum(op, buf, count)
		if err != nil {
			return err
		}
		next := total + blockTotal
		if signedAddOverflows(total, blockTotal, next) {
			return arrayerr.New(op, arrayerr.KindArithmeticOverflow)
		}
		total = next
		return nil
	}, func() error {
		pool.Release()
		return nil
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

func signedAddOverflows(a, b, sum int64) bool {
	return (a >= 0) == (b >= 0) && (sum >= 0) != (a >= 0)
}

func preciseBlockSum(op string, buf any, n int64) (int64, error) {
	var s int64
	for i := int64(0); i < n; i++ {
		var iv int64
		switch x := elemAt(buf, i).(type) {
		case uint8:
			iv = int64(x)
		case uint16:
			iv = int64(x)
		case int32:
			iv = int64(x)
		case int64:
			iv = x
		default:
			return 0, arrayerr.New(op, arrayerr.KindAssertionViolation)
		}
		next := s + iv
		if signedAddOverflows(s, iv, next) {
			return 0, arrayerr.New(op, arrayerr.KindArithmeticOverflow)
		}
		s = next
	}
	return s, nil
}
