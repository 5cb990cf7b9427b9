package bulk

import (
	"context"
	"sync/atomic"

	"github.com/Daniel-Alievsky/algart-sub004/array"
	"github.com/Daniel-Alievsky/algart-sub004/parallel"
)

// CopyResult reports how ComparingCopier completed.
type CopyResult struct {
	UsedAlgorithm string // "bulk": every block moved via GetData/SetData
	Strict        bool   // true when src and dst share the same element kind
	Changed       bool   // true if any copied block differed from dst's prior content
}

// ComparingCopier copies src into dst block by block. For each block it
// first reads src into a scratch buffer, reads dst's current content
// into a second buffer for comparison, then writes the scratch into
// dst — so a copy that would be a no-op is still detected as such via
// Changed, without a separate read-compare-then-write pass.
func ComparingCopier(ctx context.Context, dst, src array.Array) (CopyResult, error) {
	const op = "bulk.ComparingCopier"
	if err := checkSameKindAndLength(op, dst, src); err != nil {
		return CopyResult{}, err
	}
	k := dst.ElementKind()
	n := dst.Length()
	var changed int32

	e := newExecutor(ctx, n, blockSizeFor(k, false), false)
	pool := parallel.NewBufferPool()
	err := e.Process(ctx, func(position, count int64, threadIndex int) error {
		scratchBuf := pool.Get(threadIndex, func() any { return newBuffer(k, e.BlockSize) })
		scratch := sliceN(scratchBuf, count)
		if err := src.GetData(position, scratch, 0, count); err != nil {
			return err
		}
		prior := newBuffer(k, count)
		if err := dst.GetData(position, prior, 0, count); err != nil {
			return err
		}
		if !buffersEqual(scratch, prior, count) {
			atomic.StoreInt32(&changed, 1)
		}
		return dst.SetData(position, scratch, 0, count)
	}, func() error {
		pool.Release()
		return nil
	})
	if err != nil {
		return CopyResult{}, err
	}
	return CopyResult{UsedAlgorithm: "bulk", Strict: true, Changed: changed != 0}, nil
}
