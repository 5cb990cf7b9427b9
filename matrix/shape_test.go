package matrix_test

import (
	"testing"

	"github.com/Daniel-Alievsky/algart-sub004/array"
	"github.com/Daniel-Alievsky/algart-sub004/kind"
	"github.com/Daniel-Alievsky/algart-sub004/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShapeStrides(t *testing.T) {
	s, err := matrix.NewShape([]int64{3, 4, 2}) // dim0=3, dim1=4, dim2=2
	require.NoError(t, err)
	assert.Equal(t, int64(1), s.Stride(0))
	assert.Equal(t, int64(3), s.Stride(1))
	assert.Equal(t, int64(12), s.Stride(2))
	assert.Equal(t, int64(24), s.Size())
}

func TestShapeIndexAndCoordsRoundTrip(t *testing.T) {
	s, err := matrix.NewShape([]int64{5, 7})
	require.NoError(t, err)
	for x := int64(0); x < 5; x++ {
		for y := int64(0); y < 7; y++ {
			idx, err := s.Index([]int64{x, y})
			require.NoError(t, err)
			coords := s.Coords(idx)
			assert.Equal(t, []int64{x, y}, coords)
		}
	}
}

func TestShapeIndexOutOfBounds(t *testing.T) {
	s, err := matrix.NewShape([]int64{3, 3})
	require.NoError(t, err)
	_, err = s.Index([]int64{3, 0})
	require.Error(t, err)
}

func TestShapeWrongCoordCount(t *testing.T) {
	s, err := matrix.NewShape([]int64{3, 3})
	require.NoError(t, err)
	_, err = s.Index([]int64{0})
	require.Error(t, err)
}

func TestMatrixGetSet(t *testing.T) {
	base := array.New(kind.I32, 12, false)
	m, err := matrix.NewMatrix(base, []int64{4, 3})
	require.NoError(t, err)
	require.NoError(t, m.Set([]int64{2, 1}, int32(99)))
	v, err := m.Get([]int64{2, 1})
	require.NoError(t, err)
	assert.Equal(t, int32(99), v)

	idx, err := m.Shape.Index([]int64{2, 1})
	require.NoError(t, err)
	raw, err := base.Get(idx)
	require.NoError(t, err)
	assert.Equal(t, int32(99), raw)
}

func TestMatrixSizeMismatch(t *testing.T) {
	base := array.New(kind.I32, 10, false)
	_, err := matrix.NewMatrix(base, []int64{4, 3})
	require.Error(t, err)
}

func TestShapeZeroDimension(t *testing.T) {
	s, err := matrix.NewShape([]int64{0, 5})
	require.NoError(t, err)
	assert.Equal(t, int64(0), s.Size())
}
