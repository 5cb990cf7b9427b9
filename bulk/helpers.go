// Package bulk implements the block-parallel bulk operators (C7): copy
// with change detection, range (min/max) and sum reductions,
// histogramming, threshold-to-bit packing, and bit-to-numeric
// unpacking. The copy, sum, range, histogram and threshold operators
// drive the parallel package's Executor; the unpackers, DefaultComparator
// and the bit-array paths of the sum, range and histogram operators run
// on the calling goroutine.
package bulk

import (
	"context"
	"math"

	"github.com/Daniel-Alievsky/algart-sub004/array"
	"github.com/Daniel-Alievsky/algart-sub004/arrayerr"
	"github.com/Daniel-Alievsky/algart-sub004/kind"
	"github.com/Daniel-Alievsky/algart-sub004/parallel"
	"github.com/Daniel-Alievsky/algart-sub004/telemetry"
)

type tracerContextKey struct{}

// WithTracer attaches a trace broadcaster to ctx: every Executor-driven
// bulk operator invoked with the returned context publishes
// TraceBlockStart/TraceBlockDone/TraceFinish events through tracer as it
// runs, instead of running silently (the bit-array paths of Summator,
// RangeCalculator and HistogramCalculator use no Executor and publish
// nothing). Callers that don't care about tracing can keep passing
// context.Background() unchanged.
func WithTracer(ctx context.Context, tracer *telemetry.Broadcaster) context.Context {
	return context.WithValue(ctx, tracerContextKey{}, tracer)
}

func tracerFromContext(ctx context.Context) *telemetry.Broadcaster {
	t, _ := ctx.Value(tracerContextKey{}).(*telemetry.Broadcaster)
	return t
}

// newExecutor builds a parallel.Executor the way every bulk operator
// does, additionally attaching whatever tracer ctx carries.
func newExecutor(ctx context.Context, n, maxBlockSize int64, forceSingleTask bool) *parallel.Executor {
	e := parallel.NewExecutor(n, maxBlockSize, forceSingleTask)
	e.Tracer = tracerFromContext(ctx)
	return e
}

// toFloat64 widens any accessor value this module produces (bool,
// int32, int64, float32, float64) to float64 for kind-agnostic
// arithmetic and comparison.
func toFloat64(v any) float64 {
	switch x := v.(type) {
	case bool:
		if x {
			return 1
		}
		return 0
	case uint8:
		return float64(x)
	case uint16:
		return float64(x)
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	case float32:
		return float64(x)
	case float64:
		return x
	default:
		return math.NaN()
	}
}

// fromFloat64 narrows f back to the widened accessor type for k,
// rounding toward zero for integer kinds (callers needing floor/ceil
// rounding apply it before calling this).
func fromFloat64(k kind.Kind, f float64) any {
	switch k {
	case kind.Bit:
		return f != 0
	case kind.U8Byte, kind.U16Char, kind.U16Short, kind.I32:
		return int32(f)
	case kind.I64:
		return int64(f)
	case kind.F32:
		return float32(f)
	case kind.F64:
		return f
	default:
		return f
	}
}

// blockSizeFor returns the per-block element cap for bulk operators
// over kind k, tightening to parallel.MaxBlockSizeInt32Sum on the
// summation path for the 16-bit unsigned kinds, whose block partial is
// an int32 (32768*65535 fits in it, 65536*65535 does not), and for I32.
func blockSizeFor(k kind.Kind, sumPath bool) int64 {
	if sumPath && (k == kind.I32 || k == kind.U16Char || k == kind.U16Short) {
		return 32768
	}
	return 65536
}

func checkSameKindAndLength(op string, a, b array.Array) error {
	if a.ElementKind() != b.ElementKind() {
		return arrayerr.Newf(op, arrayerr.KindTypeMismatch, "kind mismatch: %s vs %s", a.ElementKind(), b.ElementKind())
	}
	if a.Length() != b.Length() {
		return arrayerr.Newf(op, arrayerr.KindIllegalArgument, "length mismatch: %d vs %d", a.Length(), b.Length())
	}
	return nil
}
