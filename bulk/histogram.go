package bulk

import (
	"context"
	"math"
	"sync"

	"github.com/Daniel-Alievsky/algart-sub004/array"
	"github.com/Daniel-Alievsky/algart-sub004/arrayerr"
	"github.com/Daniel-Alievsky/algart-sub004/kind"
	"github.com/Daniel-Alievsky/algart-sub004/parallel"
)

// HistogramResult holds nBins per-bin counts plus whether every element
// fell inside [from, to).
type HistogramResult struct {
	Bins      []int64
	AllInside bool
}

// HistogramCalculator bins every element of a into nBins equal-width
// bins spanning [from, to), accumulating a per-block histogram and
// merging by element-wise addition. Values outside the range are
// dropped from the count and clear AllInside.
func HistogramCalculator(ctx context.Context, a array.Array, from, to float64, nBins int) (HistogramResult, error) {
	const op = "bulk.HistogramCalculator"
	if nBins <= 0 {
		return HistogramResult{}, arrayerr.New(op, arrayerr.KindIllegalArgument)
	}
	if to <= from {
		return HistogramResult{}, arrayerr.New(op, arrayerr.KindIllegalArgument)
	}
	k := a.ElementKind()
	if k == kind.Bit {
		return bitHistogram(a, from, to, nBins)
	}

	n := a.Length()
	scale := float64(nBins) / (to - from)
	e := newExecutor(ctx, n, blockSizeFor(k, false), false)
	var mu sync.Mutex
	global := make([]int64, nBins)
	allInside := true
	pool := parallel.NewBufferPool()
	err := e.Process(ctx, func(position, count int64, threadIndex int) error {
		buf := sliceN(pool.Get(threadIndex, func() any { return newBuffer(k, e.BlockSize) }), count)
		if err := a.GetData(position, buf, 0, count); err != nil {
			return err
		}
		local := make([]int64, nBins)
		localInside := true
		for i := int64(0); i < count; i++ {
			v := toFloat64(elemAt(buf, i))
			bin := int(math.Floor((v - from) * scale))
			if bin < 0 || bin >= nBins {
				localInside = false
				continue
			}
			local[bin]++
		}
		mu.Lock()
		for b := 0; b < nBins; b++ {
			global[b] += local[b]
		}
		if !localInside {
			allInside = false
		}
		mu.Unlock()
		return nil
	}, func() error {
		pool.Release()
		return nil
	})
	if err != nil {
		return HistogramResult{}, err
	}
	return HistogramResult{Bins: global, AllInside: allInside}, nil
}

// bitHistogram computes the two affected bins once from 0.0 and 1.0 and
// bulk-adds the cardinality counts, rather than visiting every bit.
func bitHistogram(a array.Array, from, to float64, nBins int) (HistogramResult, error) {
	n := a.Length()
	cardinality, err := bitCardinality(a)
	if err != nil {
		return HistogramResult{}, err
	}
	ones := int64(cardinality)
	zeros := n - ones
	scale := float64(nBins) / (to - from)
	bin0 := int(math.Floor((0 - from) * scale))
	bin1 := int(math.Floor((1 - from) * scale))
	bins := make([]int64, nBins)
	allInside := true
	if bin0 >= 0 && bin0 < nBins {
		bins[bin0] += zeros
	} else if zeros > 0 {
		allInside = false
	}
	if bin1 >= 0 && bin1 < nBins {
		bins[bin1] += ones
	} else if ones > 0 {
		allInside = false
	}
	return HistogramResult{Bins: bins, AllInside: allInside}, nil
}
