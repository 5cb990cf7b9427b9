package bulk

import (
	"context"
	"sync"

	"github.com/Daniel-Alievsky/algart-sub004/array"
	"github.com/Daniel-Alievsky/algart-sub004/kind"
	"github.com/Daniel-Alievsky/algart-sub004/parallel"
)

// RangeResult reports the per-index minimum and maximum found by
// RangeCalculator. Ties are broken toward the lowest index.
type RangeResult struct {
	Empty    bool
	MinValue float64
	MinIndex int64
	MaxValue float64
	MaxIndex int64
}

type rangePartial struct {
	has            bool
	minV, maxV     float64
	minIdx, maxIdx int64
}

func mergeRangePartial(g *rangePartial, l rangePartial) {
	if !l.has {
		return
	}
	if !g.has {
		*g = l
		return
	}
	if l.minV < g.minV || (l.minV == g.minV && l.minIdx < g.minIdx) {
		g.minV, g.minIdx = l.minV, l.minIdx
	}
	if l.maxV > g.maxV || (l.maxV == g.maxV && l.maxIdx < g.maxIdx) {
		g.maxV, g.maxIdx = l.maxV, l.maxIdx
	}
}

func blockRangePartial(buf any, base, n int64) rangePartial {
	var p rangePartial
	for i := int64(0); i < n; i++ {
		v := toFloat64(elemAt(buf, i))
		idx := base + i
		if !p.has {
			p = rangePartial{has: true, minV: v, maxV: v, minIdx: idx, maxIdx: idx}
			continue
		}
		if v < p.minV || (v == p.minV && idx < p.minIdx) {
			p.minV, p.minIdx = v, idx
		}
		if v > p.maxV || (v == p.maxV && idx < p.maxIdx) {
			p.maxV, p.maxIdx = v, idx
		}
	}
	return p
}

// RangeCalculator finds the minimum and maximum element of a, with the
// lowest index among ties. Bit arrays use a fast first-difference scan
// against bit 0 instead of a generic per-element comparison, since a
// two-valued domain only needs to locate where (if anywhere) the value
// changes.
func RangeCalculator(ctx context.Context, a array.Array) (RangeResult, error) {
	n := a.Length()
	if n == 0 {
		return RangeResult{Empty: true}, nil
	}
	k := a.ElementKind()
	if k == kind.Bit {
		return bitRange(a)
	}

	e := newExecutor(ctx, n, blockSizeFor(k, false), false)
	var mu sync.Mutex
	var global rangePartial
	pool := parallel.NewBufferPool()
	err := e.Process(ctx, func(position, count int64, threadIndex int) error {
		buf := sliceN(pool.Get(threadIndex, func() any { return newBuffer(k, e.BlockSize) }), count)
		if err := a.GetData(position, buf, 0, count); err != nil {
			return err
		}
		local := blockRangePartial(buf, position, count)
		mu.Lock()
		mergeRangePartial(&global, local)
		mu.Unlock()
		return nil
	}, func() error {
		pool.Release()
		return nil
	})
	if err != nil {
		return RangeResult{}, err
	}
	return RangeResult{MinValue: global.minV, MinIndex: global.minIdx, MaxValue: global.maxV, MaxIndex: global.maxIdx}, nil
}

func bitRange(a array.Array) (RangeResult, error) {
	n := a.Length()
	b0v, err := a.Get(0)
	if err != nil {
		return RangeResult{}, err
	}
	b0 := b0v.(bool)
	diffIdx := int64(-1)
	for i := int64(1); i < n; i++ {
		v, err := a.Get(i)
		if err != nil {
			return RangeResult{}, err
		}
		if v.(bool) != b0 {
			diffIdx = i
			break
		}
	}
	if diffIdx < 0 {
		v := 0.0
		if b0 {
			v = 1
		}
		return RangeResult{MinValue: v, MinIndex: 0, MaxValue: v, MaxIndex: 0}, nil
	}
	if !b0 {
		return RangeResult{MinValue: 0, MinIndex: 0, MaxValue: 1, MaxIndex: diffIdx}, nil
	}
	return RangeResult{MinValue: 0, MinIndex: diffIdx, MaxValue: 1, MaxIndex: 0}, nil
}
