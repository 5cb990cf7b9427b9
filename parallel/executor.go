// Package parallel implements the reusable block-decomposition scheduler
// (C6): slice a logical range [0, N) into blocks, dispatch each block to
// a worker goroutine, and run a finish hook exactly once on the caller's
// goroutine after every block completes.
package parallel

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/Daniel-Alievsky/algart-sub004/arrayerr"
	"github.com/Daniel-Alievsky/algart-sub004/config"
	"github.com/Daniel-Alievsky/algart-sub004/telemetry"
)

// MaxBlockSize is the default per-block element cap most operators use.
const MaxBlockSize = 65536

// MaxBlockSizeInt32Sum is the tighter cap package bulk uses when summing
// 16-bit unsigned and 32-bit integer kinds: 32768 elements of at most
// 65535 each still fit the int32 block partial of the 16-bit kinds.
const MaxBlockSizeInt32Sum = 32768

// SubArrProcessor processes one block [position, position+count) on the
// goroutine identified by threadIndex (in [0, NumberOfTasks)).
type SubArrProcessor func(position, count int64, threadIndex int) error

// Executor owns the range size, worker count, and block size for one
// parallel run; it holds no state between runs and may be reused.
type Executor struct {
	N             int64
	NumberOfTasks int
	BlockSize     int64

	// Tracer, when non-nil, receives a TraceBlockStart/TraceBlockDone pair
	// around every block and a TraceFinish after the finish hook runs;
	// nothing is published when N is 0. NewExecutorFromConfig sets it only
	// when EnableProfiling is on; package bulk sets it from the tracer
	// attached to the operator's context with bulk.WithTracer.
	Tracer *telemetry.Broadcaster
	// Clock supplies the monotonic time source for trace timestamps and
	// elapsed durations; defaults to time.Now when nil.
	Clock func() time.Time
}

// NewExecutor builds an Executor over [0, n). numberOfTasks is taken
// from GOMAXPROCS unless forceSingleTask is set (the determinism rule
// for floating-point summation forces this). blockSize is capped at
// maxBlockSize, falling back to MaxBlockSize when maxBlockSize <= 0.
func NewExecutor(n int64, maxBlockSize int64, forceSingleTask bool) *Executor {
	tasks := runtime.GOMAXPROCS(0)
	if forceSingleTask || tasks < 1 {
		tasks = 1
	}
	blockSize := maxBlockSize
	if blockSize <= 0 {
		blockSize = MaxBlockSize
	}
	return &Executor{N: n, NumberOfTasks: tasks, BlockSize: blockSize}
}

// NewExecutorFromConfig builds an Executor whose worker count and block
// size are taken from cfg.Executor (nil falls back to config.DefaultConfig's
// values), attaching tracer as the Tracer only when cfg.Executor.EnableProfiling
// is set. This is the "executor policy source" boundary: library callers in
// package bulk construct their own Executors directly and are unaffected.
func NewExecutorFromConfig(n int64, cfg *config.Config, tracer *telemetry.Broadcaster, forceSingleTask bool) *Executor {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	tasks := cfg.Executor.MaxWorkers
	if tasks <= 0 {
		tasks = runtime.GOMAXPROCS(0)
	}
	if forceSingleTask || tasks < 1 {
		tasks = 1
	}
	blockSize := int64(cfg.Executor.BlockSizeCap)
	if blockSize <= 0 {
		blockSize = MaxBlockSize
	}
	e := &Executor{N: n, NumberOfTasks: tasks, BlockSize: blockSize}
	if cfg.Executor.EnableProfiling {
		e.Tracer = tracer
	}
	return e
}

// Process dispatches blocks of at most BlockSize elements, in strictly
// increasing position order, to NumberOfTasks worker goroutines, then
// calls finish exactly once on the calling goroutine. ctx is polled
// between blocks only — a block that has already started always runs
// to completion. The first error observed from process or from ctx is
// returned after all in-flight blocks finish; finish does not run if an
// error occurred.
func (e *Executor) Process(ctx context.Context, process SubArrProcessor, finish func() error) error {
	const op = "Executor.Process"
	if e.N < 0 {
		return arrayerr.New(op, arrayerr.KindIllegalArgument)
	}
	if e.N == 0 {
		if finish != nil {
			return finish()
		}
		return nil
	}
	blockSize := e.BlockSize
	if blockSize <= 0 {
		blockSize = MaxBlockSize
	}
	numberOfTasks := e.NumberOfTasks
	if numberOfTasks < 1 {
		numberOfTasks = 1
	}
	clock := e.Clock
	if clock == nil {
		clock = time.Now
	}

	var cursor int64
	var mu sync.Mutex
	var firstErr error

	nextBlock := func() (position, count int64, ok bool) {
		mu.Lock()
		defer mu.Unlock()
		if cursor >= e.N {
			return 0, 0, false
		}
		position = cursor
		count = blockSize
		if count > e.N-position {
			count = e.N - position
		}
		cursor += count
		return position, count, true
	}

	recordErr := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	var wg sync.WaitGroup
	wg.Add(numberOfTasks)
	for t := 0; t < numberOfTasks; t++ {
		go func(threadIndex int) {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					recordErr(ctx.Err())
					return
				default:
				}
				pos, count, ok := nextBlock()
				if !ok {
					return
				}
				start := clock()
				if e.Tracer != nil {
					e.Tracer.Publish(telemetry.TraceEvent{
						Kind: telemetry.TraceBlockStart, Tasks: numberOfTasks,
						BlockSize: count, Timestamp: start,
					})
				}
				err := process(pos, count, threadIndex)
				if e.Tracer != nil {
					e.Tracer.Publish(telemetry.TraceEvent{
						Kind: telemetry.TraceBlockDone, Tasks: numberOfTasks,
						BlockSize: count, Elapsed: clock().Sub(start), Timestamp: clock(),
					})
				}
				if err != nil {
					recordErr(err)
					return
				}
			}
		}(t)
	}
	wg.Wait()

	if firstErr != nil {
		return firstErr
	}
	var err error
	if finish != nil {
		err = finish()
	}
	if e.Tracer != nil {
		e.Tracer.Publish(telemetry.TraceEvent{Kind: telemetry.TraceFinish, Tasks: numberOfTasks, Timestamp: clock()})
	}
	return err
}
