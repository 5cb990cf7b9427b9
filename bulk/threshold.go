package bulk

import (
	"context"
	"math"

	"github.com/Daniel-Alievsky/algart-sub004/array"
	"github.com/Daniel-Alievsky/algart-sub004/arrayerr"
	"github.com/Daniel-Alievsky/algart-sub004/bitops"
	"github.com/Daniel-Alievsky/algart-sub004/kind"
	"github.com/Daniel-Alievsky/algart-sub004/parallel"
)

type compareOp int

const (
	opGreater compareOp = iota
	opLess
	opGreaterOrEqual
	opLessOrEqual
)

// BitsGreater packs dst[i] = src[i] > threshold for every i.
func BitsGreater(ctx context.Context, dst array.BitAccess, src array.Array, threshold float64) error {
	return packThreshold(ctx, dst, src, threshold, opGreater)
}

// BitsLess packs dst[i] = src[i] < threshold for every i.
func BitsLess(ctx context.Context, dst array.BitAccess, src array.Array, threshold float64) error {
	return packThreshold(ctx, dst, src, threshold, opLess)
}

// BitsGreaterOrEqual packs dst[i] = src[i] >= threshold for every i.
func BitsGreaterOrEqual(ctx context.Context, dst array.BitAccess, src array.Array, threshold float64) error {
	return packThreshold(ctx, dst, src, threshold, opGreaterOrEqual)
}

// BitsLessOrEqual packs dst[i] = src[i] <= threshold for every i.
func BitsLessOrEqual(ctx context.Context, dst array.BitAccess, src array.Array, threshold float64) error {
	return packThreshold(ctx, dst, src, threshold, opLessOrEqual)
}

// saturationDecision reports whether threshold already decides every
// element of a kind ranging over [minV, maxV], and if so what the
// constant outcome is.
func saturationDecision(op compareOp, threshold, minV, maxV float64) (saturated, allTrue bool) {
	switch op {
	case opGreater:
		if threshold >= maxV {
			return true, false
		}
		if threshold < minV {
			return true, true
		}
	case opGreaterOrEqual:
		if threshold > maxV {
			return true, false
		}
		if threshold <= minV {
			return true, true
		}
	case opLess:
		if threshold <= minV {
			return true, false
		}
		if threshold > maxV {
			return true, true
		}
	case opLessOrEqual:
		if threshold < minV {
			return true, false
		}
		if threshold >= maxV {
			return true, true
		}
	}
	return false, false
}

// roundThreshold converts threshold to the half-open cut appropriate
// for an integer element domain: floor for '>' and '<=', ceil for '<'
// and '>=', so that e.g. "x > 2.5" and "x >= 3" agree over integers.
// Float kinds compare the threshold as given.
func roundThreshold(op compareOp, threshold float64, isFloatKind bool) float64 {
	if isFloatKind {
		return threshold
	}
	switch op {
	case opGreater, opLessOrEqual:
		return math.Floor(threshold)
	default:
		return math.Ceil(threshold)
	}
}

// packThreshold runs single-task (packed-bit writes into the same
// destination word from concurrent blocks would race unless every
// block boundary were 64-bit-word-aligned, which is not guaranteed
// here) but still processes the source in cache-sized blocks.
func packThreshold(ctx context.Context, dst array.BitAccess, src array.Array, threshold float64, op compareOp) error {
	const errOp = "bulk.packThreshold"
	k := src.ElementKind()
	if !k.IsNumeric() {
		return arrayerr.Newf(errOp, arrayerr.KindTypeMismatch, "kind %s is not numeric", k)
	}
	if dst.Length() != src.Length() {
		return arrayerr.Newf(errOp, arrayerr.KindIllegalArgument, "length mismatch: %d vs %d", dst.Length(), src.Length())
	}
	n := src.Length()
	words, bitOffset := dst.Words()

	maxV, _ := k.MaxValue()
	minV, _ := k.MinValue()
	if saturated, allTrue := saturationDecision(op, threshold, minV, maxV); saturated {
		bitops.PackPredicate(words, bitOffset, n, func(i int64) bool { return allTrue })
		return nil
	}

	rounded := roundThreshold(op, threshold, k.IsFloat())
	e := newExecutor(ctx, n, blockSizeFor(k, false), true)
	pool := parallel.NewBufferPool()
	return e.Process(ctx, func(position, count int64, threadIndex int) error {
		buf := sliceN(pool.Get(threadIndex, func() any { return newBuffer(k, e.BlockSize) }), count)
		if err := src.GetData(position, buf, 0, count); err != nil {
			return err
		}
		bitops.PackPredicate(words, bitOffset+position, count, func(i int64) bool {
			v := toFloat64(elemAt(buf, i))
			switch op {
			case opGreater:
				return v > rounded
			case opLess:
				return v < rounded
			case opGreaterOrEqual:
				return v >= rounded
			default:
				return v <= rounded
			}
		})
		return nil
	}, func() error {
		pool.Release()
		return nil
	})
}
