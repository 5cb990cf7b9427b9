package bulk_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/Daniel-Alievsky/algart-sub004/array"
	"github.com/Daniel-Alievsky/algart-sub004/bulk"
	"github.com/Daniel-Alievsky/algart-sub004/kind"
	"github.com/Daniel-Alievsky/algart-sub004/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkI32(vals ...int32) array.Array {
	a := array.NewNumericArray[int32](kind.I32, int64(len(vals)), false)
	for i, v := range vals {
		if err := a.Set(int64(i), v); err != nil {
			panic(err)
		}
	}
	return a
}

func mkF64(vals ...float64) array.Array {
	a := array.NewNumericArray[float64](kind.F64, int64(len(vals)), false)
	for i, v := range vals {
		if err := a.Set(int64(i), v); err != nil {
			panic(err)
		}
	}
	return a
}

func mkBits(bits ...bool) *array.BitArray {
	a := array.NewBitArray(int64(len(bits)), false)
	for i, b := range bits {
		if err := a.Set(int64(i), b); err != nil {
			panic(err)
		}
	}
	return a
}

func TestComparingCopierDetectsChange(t *testing.T) {
	src := mkI32(1, 2, 3, 4, 5)
	dst := mkI32(0, 0, 0, 0, 0)
	res, err := bulk.ComparingCopier(context.Background(), dst, src)
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Equal(t, "bulk", res.UsedAlgorithm)
	for i := int64(0); i < 5; i++ {
		v, _ := dst.Get(i)
		ev, _ := src.Get(i)
		assert.Equal(t, ev, v)
	}
}

func TestComparingCopierNoChange(t *testing.T) {
	src := mkI32(7, 7, 7)
	dst := mkI32(7, 7, 7)
	res, err := bulk.ComparingCopier(context.Background(), dst, src)
	require.NoError(t, err)
	assert.False(t, res.Changed)
}

func TestComparingCopierKindMismatch(t *testing.T) {
	src := mkF64(1, 2)
	dst := mkI32(1, 2)
	_, err := bulk.ComparingCopier(context.Background(), dst, src)
	assert.Error(t, err)
}

func TestSummatorFloat(t *testing.T) {
	a := mkF64(1.5, 2.5, 3.0)
	total, err := bulk.Summator(context.Background(), a)
	require.NoError(t, err)
	assert.Equal(t, 7.0, total)
}

func TestSummatorBitCardinality(t *testing.T) {
	a := mkBits(true, false, true, true, false)
	total, err := bulk.Summator(context.Background(), a)
	require.NoError(t, err)
	assert.Equal(t, 3.0, total)
}

func TestPreciseSummatorOverflow(t *testing.T) {
	a := array.NewNumericArray[int64](kind.I64, 2, false)
	require.NoError(t, a.Set(0, int64(math.MaxInt64)))
	require.NoError(t, a.Set(1, int64(1)))
	_, err := bulk.PreciseSummator(context.Background(), a)
	assert.Error(t, err)
}

func TestPreciseSummatorExact(t *testing.T) {
	a := mkI32(10, 20, 30, 40)
	total, err := bulk.PreciseSummator(context.Background(), a)
	require.NoError(t, err)
	assert.Equal(t, int64(100), total)
}

func TestPreciseSummatorRejectsFloat(t *testing.T) {
	a := mkF64(1, 2)
	_, err := bulk.PreciseSummator(context.Background(), a)
	assert.Error(t, err)
}

func TestRangeCalculatorTiesLowestIndex(t *testing.T) {
	a := mkI32(5, 1, 9, 1, 9)
	res, err := bulk.RangeCalculator(context.Background(), a)
	require.NoError(t, err)
	assert.False(t, res.Empty)
	assert.Equal(t, 1.0, res.MinValue)
	assert.Equal(t, int64(1), res.MinIndex)
	assert.Equal(t, 9.0, res.MaxValue)
	assert.Equal(t, int64(2), res.MaxIndex)
}

func TestRangeCalculatorEmpty(t *testing.T) {
	a := mkI32()
	res, err := bulk.RangeCalculator(context.Background(), a)
	require.NoError(t, err)
	assert.True(t, res.Empty)
}

func TestRangeCalculatorBits(t *testing.T) {
	a := mkBits(true, true, true, false, true)
	res, err := bulk.RangeCalculator(context.Background(), a)
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.MinValue)
	assert.Equal(t, int64(3), res.MinIndex)
	assert.Equal(t, 1.0, res.MaxValue)
	assert.Equal(t, int64(0), res.MaxIndex)
}

func TestRangeCalculatorBitsAllSame(t *testing.T) {
	a := mkBits(true, true, true)
	res, err := bulk.RangeCalculator(context.Background(), a)
	require.NoError(t, err)
	assert.Equal(t, 1.0, res.MinValue)
	assert.Equal(t, 1.0, res.MaxValue)
	assert.Equal(t, int64(0), res.MinIndex)
	assert.Equal(t, int64(0), res.MaxIndex)
}

func TestHistogramCalculatorBasic(t *testing.T) {
	a := mkF64(0.0, 0.25, 0.5, 0.75, 0.99)
	res, err := bulk.HistogramCalculator(context.Background(), a, 0, 1, 4)
	require.NoError(t, err)
	require.Len(t, res.Bins, 4)
	assert.True(t, res.AllInside)
	var total int64
	for _, c := range res.Bins {
		total += c
	}
	assert.Equal(t, int64(5), total)
}

func TestHistogramCalculatorOutsideRange(t *testing.T) {
	a := mkF64(-1, 0.5, 2)
	res, err := bulk.HistogramCalculator(context.Background(), a, 0, 1, 2)
	require.NoError(t, err)
	assert.False(t, res.AllInside)
	var total int64
	for _, c := range res.Bins {
		total += c
	}
	assert.Equal(t, int64(1), total)
}

func TestHistogramCalculatorBits(t *testing.T) {
	a := mkBits(true, false, true, true, false)
	res, err := bulk.HistogramCalculator(context.Background(), a, 0, 2, 2)
	require.NoError(t, err)
	assert.True(t, res.AllInside)
	assert.Equal(t, int64(2), res.Bins[0])
	assert.Equal(t, int64(3), res.Bins[1])
}

func TestHistogramCalculatorInvalidBins(t *testing.T) {
	a := mkF64(1, 2)
	_, err := bulk.HistogramCalculator(context.Background(), a, 0, 1, 0)
	assert.Error(t, err)
}

func TestBitsGreaterBasic(t *testing.T) {
	src := mkI32(1, 5, 10, 15, 20)
	dst := array.NewBitArray(5, false)
	err := bulk.BitsGreater(context.Background(), dst, src, 10)
	require.NoError(t, err)
	want := []bool{false, false, false, true, true}
	for i, w := range want {
		v, _ := dst.Get(int64(i))
		assert.Equal(t, w, v, "index %d", i)
	}
}

func TestBitsLessOrEqual(t *testing.T) {
	src := mkI32(1, 5, 10, 15, 20)
	dst := array.NewBitArray(5, false)
	err := bulk.BitsLessOrEqual(context.Background(), dst, src, 10)
	require.NoError(t, err)
	want := []bool{true, true, true, false, false}
	for i, w := range want {
		v, _ := dst.Get(int64(i))
		assert.Equal(t, w, v, "index %d", i)
	}
}

func TestBitsGreaterSaturatesAllTrue(t *testing.T) {
	src := array.NewNumericArray[uint8](kind.U8Byte, 3, false)
	require.NoError(t, src.Set(0, int32(1)))
	require.NoError(t, src.Set(1, int32(2)))
	require.NoError(t, src.Set(2, int32(3)))
	dst := array.NewBitArray(3, false)
	err := bulk.BitsGreater(context.Background(), dst, src, -5)
	require.NoError(t, err)
	for i := int64(0); i < 3; i++ {
		v, _ := dst.Get(i)
		assert.True(t, v.(bool))
	}
}

func TestBitsGreaterSaturatesAllFalse(t *testing.T) {
	src := array.NewNumericArray[uint8](kind.U8Byte, 3, false)
	dst := array.NewBitArray(3, false)
	err := bulk.BitsGreater(context.Background(), dst, src, 1000)
	require.NoError(t, err)
	for i := int64(0); i < 3; i++ {
		v, _ := dst.Get(i)
		assert.False(t, v.(bool))
	}
}

func TestBitsGreaterLengthMismatch(t *testing.T) {
	src := mkI32(1, 2, 3)
	dst := array.NewBitArray(2, false)
	err := bulk.BitsGreater(context.Background(), dst, src, 0)
	assert.Error(t, err)
}

func TestUnpackUnitBits(t *testing.T) {
	src := mkBits(true, false, true, false, true)
	dst := mkI32(0, 0, 0, 0, 0)
	err := bulk.UnpackUnitBits(src, dst, int32(9))
	require.NoError(t, err)
	want := []int32{9, 0, 9, 0, 9}
	for i, w := range want {
		v, _ := dst.Get(int64(i))
		assert.Equal(t, w, v)
	}
}

func TestUnpackZeroBits(t *testing.T) {
	src := mkBits(true, false, true, false)
	dst := mkI32(1, 1, 1, 1)
	err := bulk.UnpackZeroBits(src, dst, int32(-1))
	require.NoError(t, err)
	want := []int32{1, -1, 1, -1}
	for i, w := range want {
		v, _ := dst.Get(int64(i))
		assert.Equal(t, w, v)
	}
}

func TestUnpackBitsBothFillers(t *testing.T) {
	src := mkBits(true, false, true, false)
	dst := mkI32(0, 0, 0, 0)
	err := bulk.UnpackBits(src, dst, int32(-1), int32(1))
	require.NoError(t, err)
	want := []int32{1, -1, 1, -1}
	for i, w := range want {
		v, _ := dst.Get(int64(i))
		assert.Equal(t, w, v)
	}
}

func TestUnpackBitsToBitConstantFill(t *testing.T) {
	src := mkBits(true, false, true)
	dst := mkBits(false, false, false)
	err := bulk.UnpackBits(src, dst, false, false)
	require.NoError(t, err)
	for i := int64(0); i < 3; i++ {
		v, _ := dst.Get(i)
		assert.False(t, v.(bool))
	}
}

func TestUnpackBitsToBitNegate(t *testing.T) {
	src := mkBits(true, false, true, false)
	dst := mkBits(false, false, false, false)
	err := bulk.UnpackBits(src, dst, true, false)
	require.NoError(t, err)
	want := []bool{false, true, false, true}
	for i, w := range want {
		v, _ := dst.Get(int64(i))
		assert.Equal(t, w, v)
	}
}

func TestUnpackLengthMismatch(t *testing.T) {
	src := mkBits(true, false)
	dst := mkI32(1, 2, 3)
	err := bulk.UnpackUnitBits(src, dst, int32(1))
	assert.Error(t, err)
}

func TestDefaultComparatorNumericAscending(t *testing.T) {
	a := mkI32(5, 1, 9, 3)
	cmp, err := bulk.DefaultComparator(a, nil, false)
	require.NoError(t, err)
	assert.True(t, cmp(1, 0))
	assert.False(t, cmp(0, 1))
}

func TestDefaultComparatorReverse(t *testing.T) {
	a := mkI32(5, 1, 9, 3)
	cmp, err := bulk.DefaultComparator(a, nil, true)
	require.NoError(t, err)
	assert.True(t, cmp(0, 1))
	assert.False(t, cmp(1, 0))
}

func TestDefaultComparatorBit(t *testing.T) {
	a := mkBits(true, false)
	cmp, err := bulk.DefaultComparator(a, nil, false)
	require.NoError(t, err)
	assert.True(t, cmp(1, 0))
	assert.False(t, cmp(0, 1))
}

func TestDefaultComparatorFloatNaNAboveInf(t *testing.T) {
	a := mkF64(math.NaN(), math.Inf(1), 1.0)
	cmp, err := bulk.DefaultComparator(a, nil, false)
	require.NoError(t, err)
	assert.True(t, cmp(1, 0))
	assert.False(t, cmp(0, 1))
	assert.True(t, cmp(2, 1))
}

func TestDefaultComparatorObjectRequiresLess(t *testing.T) {
	a := array.NewObjectArray(2, false)
	_, err := bulk.DefaultComparator(a, nil, false)
	assert.Error(t, err)
}

func TestDefaultComparatorObjectWithLess(t *testing.T) {
	a := array.NewObjectArray(2, false)
	require.NoError(t, a.Set(0, "b"))
	require.NoError(t, a.Set(1, "a"))
	less := func(x, y any) bool { return x.(string) < y.(string) }
	cmp, err := bulk.DefaultComparator(a, less, false)
	require.NoError(t, err)
	assert.True(t, cmp(1, 0))
	assert.False(t, cmp(0, 1))
}

func TestWithTracerEmitsBlockEvents(t *testing.T) {
	tracer := telemetry.NewBroadcaster()
	defer tracer.Close()
	sub := tracer.Subscribe()
	defer tracer.Unsubscribe(sub)

	a := mkF64(1, 2, 3, 4)
	ctx := bulk.WithTracer(context.Background(), tracer)
	_, err := bulk.Summator(ctx, a)
	require.NoError(t, err)

	var sawStart, sawFinish bool
	timeout := time.After(time.Second)
	for !sawFinish {
		select {
		case ev := <-sub:
			if ev.Kind == telemetry.TraceBlockStart {
				sawStart = true
			}
			if ev.Kind == telemetry.TraceFinish {
				sawFinish = true
			}
		case <-timeout:
			t.Fatal("timed out waiting for trace events")
		}
	}
	assert.True(t, sawStart)
}

func TestWithoutTracerLeavesExecutorUntraced(t *testing.T) {
	a := mkF64(1, 2, 3)
	total, err := bulk.Summator(context.Background(), a)
	require.NoError(t, err)
	assert.Equal(t, 6.0, total)
}
