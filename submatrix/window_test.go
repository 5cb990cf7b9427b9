package submatrix_test

import (
	"testing"

	"github.com/Daniel-Alievsky/algart-sub004/array"
	"github.com/Daniel-Alievsky/algart-sub004/kind"
	"github.com/Daniel-Alievsky/algart-sub004/matrix"
	"github.com/Daniel-Alievsky/algart-sub004/submatrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkVec(vals ...int32) *matrix.Matrix {
	a := array.New(kind.I32, int64(len(vals)), false)
	for i, v := range vals {
		_ = a.Set(int64(i), v)
	}
	m, _ := matrix.NewMatrix(a, []int64{int64(len(vals))})
	return m
}

func TestConstantWindow1D(t *testing.T) {
	// base = [10,20,30,40,50], pos=[-2], dim=[8], outsideValue=0.
	base := mkVec(10, 20, 30, 40, 50)
	w, err := submatrix.NewWindow(base, []int64{-2}, []int64{8}, submatrix.ModeConstant, int32(0))
	require.NoError(t, err)
	want := []int32{0, 0, 10, 20, 30, 40, 50, 0}
	for i, v := range want {
		got, err := w.Get(int64(i))
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestConstantWindowGetData(t *testing.T) {
	base := mkVec(10, 20, 30, 40, 50)
	w, err := submatrix.NewWindow(base, []int64{-2}, []int64{8}, submatrix.ModeConstant, int32(0))
	require.NoError(t, err)
	dst := make([]int32, 8)
	require.NoError(t, w.GetData(0, dst, 0, 8))
	assert.Equal(t, []int32{0, 0, 10, 20, 30, 40, 50, 0}, dst)
}

func TestConstantWindowWritesDropOutside(t *testing.T) {
	baseArr := array.New(kind.I32, 3, false)
	m, err := matrix.NewMatrix(baseArr, []int64{3})
	require.NoError(t, err)
	w, err := submatrix.NewWindow(m, []int64{-1}, []int64{5}, submatrix.ModeConstant, int32(-1))
	require.NoError(t, err)
	require.NoError(t, w.Set(0, int32(99))) // outside, dropped
	require.NoError(t, w.Set(1, int32(7)))  // base[0]
	v, err := baseArr.Get(0)
	require.NoError(t, err)
	assert.Equal(t, int32(7), v)
}

// translateMirror mirrors the Window.translate algorithm directly for
// an independent expected-value computation in tests.
func translateMirror(baseCoord, baseDim int64) int64 {
	period := 2 * baseDim
	t := baseCoord % period
	if t < 0 {
		t += period
	}
	if t < baseDim {
		return t
	}
	return period - 1 - t
}

func TestMirrorWindowMatchesTranslateFormula(t *testing.T) {
	base := mkVec(100, 200, 300)
	w, err := submatrix.NewWindow(base, []int64{-4}, []int64{10}, submatrix.ModeMirrorCyclic, nil)
	require.NoError(t, err)
	for i := int64(0); i < 10; i++ {
		baseCoord := -4 + i
		wantCoord := translateMirror(baseCoord, 3)
		want, _ := base.Array.Get(wantCoord)
		got, err := w.Get(i)
		require.NoError(t, err)
		assert.Equalf(t, want, got, "i=%d", i)
	}
}

func TestMirrorWindowGetDataMatchesGet(t *testing.T) {
	base := mkVec(1, 2, 3, 4, 5, 6, 7)
	w, err := submatrix.NewWindow(base, []int64{-9}, []int64{23}, submatrix.ModeMirrorCyclic, nil)
	require.NoError(t, err)
	dst := make([]int32, 23)
	require.NoError(t, w.GetData(0, dst, 0, 23))
	for i := int64(0); i < 23; i++ {
		want, _ := w.Get(i)
		assert.Equalf(t, want, dst[i], "i=%d", i)
	}
}

func TestMirrorWindowEveryWriteLandsOnBase(t *testing.T) {
	baseArr := array.New(kind.I32, 4, false)
	m, err := matrix.NewMatrix(baseArr, []int64{4})
	require.NoError(t, err)
	w, err := submatrix.NewWindow(m, []int64{-6}, []int64{16}, submatrix.ModeMirrorCyclic, nil)
	require.NoError(t, err)
	src := make([]int32, 16)
	for i := range src {
		src[i] = int32(i + 1)
	}
	require.NoError(t, w.SetData(0, src, 0, 16))
	// Every base element must have been overwritten by some window write.
	for i := int64(0); i < 4; i++ {
		v, err := baseArr.Get(i)
		require.NoError(t, err)
		assert.NotEqual(t, int32(0), v)
	}
}

func TestMirrorIndexOfUnsupported(t *testing.T) {
	base := mkVec(1, 2, 3)
	w, err := submatrix.NewWindow(base, []int64{0}, []int64{3}, submatrix.ModeMirrorCyclic, nil)
	require.NoError(t, err)
	_, err = w.IndexOf(0, int32(2))
	require.Error(t, err)
}

func TestConstantIndexOfOutsideLine2D(t *testing.T) {
	// 2x2 base, window covers a row entirely outside on axis 1.
	baseArr := array.New(kind.I32, 4, false)
	for i := int64(0); i < 4; i++ {
		_ = baseArr.Set(i, int32(i+1))
	}
	m, err := matrix.NewMatrix(baseArr, []int64{2, 2})
	require.NoError(t, err)
	w, err := submatrix.NewWindow(m, []int64{0, 5}, []int64{2, 1}, submatrix.ModeConstant, int32(-1))
	require.NoError(t, err)
	idx, err := w.IndexOf(0, int32(-1))
	require.NoError(t, err)
	assert.Equal(t, int64(0), idx) // first window index of the full-outside line
}

func TestDebugModeAgreesWithProductionMirrorPath(t *testing.T) {
	submatrix.DebugMode = true
	defer func() { submatrix.DebugMode = false }()

	base := mkVec(1, 2, 3, 4, 5, 6, 7)
	w, err := submatrix.NewWindow(base, []int64{-9}, []int64{23}, submatrix.ModeMirrorCyclic, nil)
	require.NoError(t, err)

	for i := int64(0); i < 23; i++ {
		_, err := w.Get(i)
		require.NoError(t, err)
	}
	dst := make([]int32, 23)
	require.NoError(t, w.GetData(0, dst, 0, 23))
}

func TestConstantWindowFill(t *testing.T) {
	baseArr := array.New(kind.I32, 5, false)
	m, err := matrix.NewMatrix(baseArr, []int64{5})
	require.NoError(t, err)
	w, err := submatrix.NewWindow(m, []int64{-2}, []int64{9}, submatrix.ModeConstant, int32(0))
	require.NoError(t, err)
	require.NoError(t, w.Fill(0, 9, int32(42)))
	for i := int64(0); i < 5; i++ {
		v, err := baseArr.Get(i)
		require.NoError(t, err)
		assert.Equal(t, int32(42), v)
	}
}
