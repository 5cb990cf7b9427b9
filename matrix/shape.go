// Package matrix implements the d-dimensional shape and coordinate-to-
// linear-offset mapping (C4): a Matrix pairs an Array with an immutable
// dimension vector whose product equals the array's length, and
// delegates all element storage to the wrapped Array.
package matrix

import (
	"github.com/Daniel-Alievsky/algart-sub004/array"
	"github.com/Daniel-Alievsky/algart-sub004/arrayerr"
	"github.com/Daniel-Alievsky/algart-sub004/kind"
)

// Shape precomputes the strides M[] of a d-dimensional dimension vector:
// M[0]=1, M[k]=M[k-1]*dim[k-1]. Linear offset of coordinate c is
// sum(c[k]*M[k]).
type Shape struct {
	dim []int64
	m   []int64
	size int64
}

// NewShape validates dim (all entries non-negative, product fits signed
// 64-bit) and precomputes strides.
func NewShape(dim []int64) (*Shape, error) {
	const op = "matrix.NewShape"
	m := make([]int64, len(dim))
	var size int64 = 1
	for k, d := range dim {
		if d < 0 {
			return nil, arrayerr.Newf(op, arrayerr.KindIllegalArgument, "dim[%d]=%d is negative", k, d)
		}
		m[k] = size
		if d != 0 {
			next := size * d
			if size != 0 && next/d != size {
				return nil, arrayerr.Newf(op, arrayerr.KindTooLargeArray, "shape product overflows at dim %d", k)
			}
			size = next
		} else {
			size = 0
		}
	}
	return &Shape{dim: append([]int64(nil), dim...), m: m, size: size}, nil
}

// DimCount returns d, the number of dimensions.
func (s *Shape) DimCount() int { return len(s.dim) }

// Dim returns dim[k].
func (s *Shape) Dim(k int) int64 { return s.dim[k] }

// Dims returns a copy of the full dimension vector.
func (s *Shape) Dims() []int64 { return append([]int64(nil), s.dim...) }

// Stride returns M[k].
func (s *Shape) Stride(k int) int64 { return s.m[k] }

// Size returns the product of all dimensions (the array length this
// shape addresses).
func (s *Shape) Size() int64 { return s.size }

// Index computes the linear offset of coordinate c.
func (s *Shape) Index(c []int64) (int64, error) {
	const op = "Shape.Index"
	if len(c) != len(s.dim) {
		return 0, arrayerr.Newf(op, arrayerr.KindIllegalArgument, "coordinate has %d components, shape has %d", len(c), len(s.dim))
	}
	var idx int64
	for k, ck := range c {
		if ck < 0 || ck >= s.dim[k] {
			return 0, arrayerr.Newf(op, arrayerr.KindIndexOutOfBounds, "coord[%d]=%d out of [0,%d)", k, ck, s.dim[k])
		}
		idx += ck * s.m[k]
	}
	return idx, nil
}

// Coords computes the coordinate vector for a linear offset, the inverse
// of Index.
func (s *Shape) Coords(index int64) []int64 {
	c := make([]int64, len(s.dim))
	for k := len(s.dim) - 1; k >= 0; k-- {
		if s.m[k] == 0 {
			c[k] = 0
			continue
		}
		c[k] = index / s.m[k]
		index -= c[k] * s.m[k]
	}
	return c
}

// Matrix pairs an Array with a Shape over it; it owns no storage of its
// own and delegates to the wrapped Array for every element access.
type Matrix struct {
	Array array.Array
	Shape *Shape
}

// NewMatrix wraps base with dim, failing if the shape's size does not
// equal base's length.
func NewMatrix(base array.Array, dim []int64) (*Matrix, error) {
	const op = "matrix.NewMatrix"
	shape, err := NewShape(dim)
	if err != nil {
		return nil, err
	}
	if shape.Size() != base.Length() {
		return nil, arrayerr.Newf(op, arrayerr.KindIllegalArgument, "shape size %d does not match array length %d", shape.Size(), base.Length())
	}
	return &Matrix{Array: base, Shape: shape}, nil
}

func (m *Matrix) ElementKind() kind.Kind { return m.Array.ElementKind() }

// Get returns the element at coordinate c.
func (m *Matrix) Get(c []int64) (any, error) {
	idx, err := m.Shape.Index(c)
	if err != nil {
		return nil, err
	}
	return m.Array.Get(idx)
}

// Set assigns the element at coordinate c.
func (m *Matrix) Set(c []int64, v any) error {
	idx, err := m.Shape.Index(c)
	if err != nil {
		return err
	}
	return m.Array.Set(idx, v)
}
