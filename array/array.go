// Package array implements the element-storage contract (C2): uniform
// random and bulk access to a linear, length-up-to-2^63-1 array of one
// element kind, plus the read-only/resizable flags and sub-range views
// every other package in this module builds on.
//
// Rather than a deep abstract-array class hierarchy, this collapses to
// a flat Array interface with one generic implementation per storage
// family (numeric, bit, object).
package array

import (
	"github.com/Daniel-Alievsky/algart-sub004/arrayerr"
	"github.com/Daniel-Alievsky/algart-sub004/kind"
)

// MaxLength is the largest length this module will allocate: 2^63-1.
const MaxLength = int64(1)<<63 - 1

// Array is the element-storage contract every backing store, view, and
// submatrix indexer in this module satisfies. Random access is typed per
// kind via the widened accessor type (see kind.Kind doc); bulk access
// moves whole native Go slices to avoid per-element interface overhead
// where the concrete type is known.
type Array interface {
	// Length returns the number of elements, always >= 0.
	Length() int64
	// ElementKind returns the fixed element kind of this array.
	ElementKind() kind.Kind
	// IsMutable reports whether Set/SetData/Fill are permitted.
	IsMutable() bool
	// IsResizable reports whether the array was created growable; this
	// interface has no method that grows an array. Growable is a strict
	// superset of mutable: a growable array is always mutable.
	IsResizable() bool

	// Get returns the widened value of element i.
	Get(i int64) (any, error)
	// Set assigns the widened value v to element i.
	Set(i int64, v any) error

	// GetData copies count elements starting at pos into dst (a native Go
	// slice matching this array's kind) starting at dstOff.
	GetData(pos int64, dst any, dstOff int64, count int64) error
	// SetData copies count elements from src (a native Go slice matching
	// this array's kind) starting at srcOff into this array starting at
	// pos.
	SetData(pos int64, src any, srcOff int64, count int64) error
	// Fill broadcasts v into count elements starting at from.
	Fill(from int64, count int64, v any) error

	// SubArr returns a non-owning window of count elements starting at
	// pos. The window borrows this array's storage.
	SubArr(pos int64, count int64) (Array, error)
	// SubArray returns a non-owning window of elements in [from, to).
	SubArray(from int64, to int64) (Array, error)
	// AsImmutable returns a read-only view over the same storage; writes
	// through it fail with ReadOnlyViolation.
	AsImmutable() Array
}

// BitAccess is implemented by arrays whose element kind is kind.Bit; it
// adds word-granular bulk access matching C1's packed-bit contract.
type BitAccess interface {
	Array
	// GetBits copies count bits starting at arrayPos into dst (a slice of
	// 64-bit words) starting at bit offset dstOff.
	GetBits(arrayPos int64, dst []uint64, dstOff int64, count int64) error
	// SetBits copies count bits from src (a slice of 64-bit words)
	// starting at bit offset srcOff into this array starting at
	// arrayPos.
	SetBits(arrayPos int64, src []uint64, srcOff int64, count int64) error
	// Words exposes the raw backing words and a bit offset for direct
	// access, per the "direct access" escape hatch in §6.
	Words() (words []uint64, bitOffset int64)
}

// DirectAccess is implemented by arrays that can expose a raw host
// buffer plus an offset for a given kind, letting bulk operators skip an
// indirection. Not every array need implement it.
type DirectAccess interface {
	// DirectBuffer returns the backing slice (one of []byte, []uint16,
	// []int32, []int64, []float32, []float64, []any) and the element
	// offset of index 0 within it, or ok=false if direct access is not
	// available (e.g. for a lazy view).
	DirectBuffer() (buf any, offset int64, ok bool)
}

func checkRange(op string, pos, count, length int64) error {
	if count < 0 {
		return arrayerr.Newf(op, arrayerr.KindIllegalArgument, "negative count %d", count)
	}
	if pos < 0 || count > length-pos || pos > length {
		return arrayerr.Newf(op, arrayerr.KindIndexOutOfBounds, "range [%d, %d) out of [0, %d)", pos, pos+count, length)
	}
	return nil
}

func checkIndex(op string, i, length int64) error {
	if i < 0 || i >= length {
		return arrayerr.Newf(op, arrayerr.KindIndexOutOfBounds, "index %d out of [0, %d)", i, length)
	}
	return nil
}

func checkMutable(op string, mutable bool) error {
	if !mutable {
		return arrayerr.New(op, arrayerr.KindReadOnlyViolation)
	}
	return nil
}
