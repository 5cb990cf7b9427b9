package array

import (
	"github.com/Daniel-Alievsky/algart-sub004/arrayerr"
	"github.com/Daniel-Alievsky/algart-sub004/kind"
)

// Numeric is the set of Go storage types backing a fixed-width numeric
// element kind. One generic NumericArray[T] monomorphization exists per
// storage width, avoiding a boxed-per-element representation.
type Numeric interface {
	~uint8 | ~uint16 | ~int32 | ~int64 | ~float32 | ~float64
}

// NumericArray is the Array implementation for U8Byte, U16Char,
// U16Short, I32, I64, F32, and F64. The storage type T determines the
// physical width; the separate k field distinguishes U16Char from
// U16Short, which share storage (uint16) but are different kinds.
type NumericArray[T Numeric] struct {
	data       []T
	k          kind.Kind
	mutable    bool
	resizable  bool
}

// NewNumericArray allocates a new, zero-filled numeric array of the
// given kind and length.
func NewNumericArray[T Numeric](k kind.Kind, length int64, resizable bool) *NumericArray[T] {
	return &NumericArray[T]{
		data:      make([]T, length),
		k:         k,
		mutable:   true,
		resizable: resizable,
	}
}

// WrapNumericArray adapts an existing Go slice as a NumericArray without
// copying; the array borrows data and observes later mutations to it.
func WrapNumericArray[T Numeric](k kind.Kind, data []T, mutable bool) *NumericArray[T] {
	return &NumericArray[T]{data: data, k: k, mutable: mutable}
}

func (a *NumericArray[T]) Length() int64          { return int64(len(a.data)) }
func (a *NumericArray[T]) ElementKind() kind.Kind { return a.k }
func (a *NumericArray[T]) IsMutable() bool        { return a.mutable }
func (a *NumericArray[T]) IsResizable() bool      { return a.resizable }

// widen converts a raw stored value to this kind's widened accessor
// type: 8/16-bit unsigned kinds widen to int32, 32-bit kinds keep their
// width, and float kinds keep their own width.
func (a *NumericArray[T]) widen(v T) any {
	switch a.k {
	case kind.U8Byte, kind.U16Char, kind.U16Short:
		return int32(v)
	case kind.I32:
		return int32(v)
	case kind.I64:
		return int64(v)
	case kind.F32:
		return float32(v)
	case kind.F64:
		return float64(v)
	default:
		return v
	}
}

// narrow converts a widened accessor value back to the storage type T,
// failing with TypeMismatch if v's dynamic type does not match the
// widened accessor type for this kind.
func (a *NumericArray[T]) narrow(op string, v any) (T, error) {
	var zero T
	switch a.k {
	case kind.U8Byte, kind.U16Char, kind.U16Short, kind.I32:
		iv, ok := v.(int32)
		if !ok {
			return zero, arrayerr.Newf(op, arrayerr.KindTypeMismatch, "expected int32, got %T", v)
		}
		return T(iv), nil
	case kind.I64:
		iv, ok := v.(int64)
		if !ok {
			return zero, arrayerr.Newf(op, arrayerr.KindTypeMismatch, "expected int64, got %T", v)
		}
		return T(iv), nil
	case kind.F32:
		fv, ok := v.(float32)
		if !ok {
			return zero, arrayerr.Newf(op, arrayerr.KindTypeMismatch, "expected float32, got %T", v)
		}
		return T(fv), nil
	case kind.F64:
		fv, ok := v.(float64)
		if !ok {
			return zero, arrayerr.Newf(op, arrayerr.KindTypeMismatch, "expected float64, got %T", v)
		}
		return T(fv), nil
	default:
		return zero, arrayerr.New(op, arrayerr.KindAssertionViolation)
	}
}

func (a *NumericArray[T]) Get(i int64) (any, error) {
	if err := checkIndex("NumericArray.Get", i, a.Length()); err != nil {
		return nil, err
	}
	return a.widen(a.data[i]), nil
}

func (a *NumericArray[T]) Set(i int64, v any) error {
	if err := checkMutable("NumericArray.Set", a.mutable); err != nil {
		return err
	}
	if err := checkIndex("NumericArray.Set", i, a.Length()); err != nil {
		return err
	}
	nv, err := a.narrow("NumericArray.Set", v)
	if err != nil {
		return err
	}
	a.data[i] = nv
	return nil
}

func (a *NumericArray[T]) GetData(pos int64, dst any, dstOff int64, count int64) error {
	const op = "NumericArray.GetData"
	if err := checkRange(op, pos, count, a.Length()); err != nil {
		return err
	}
	d, ok := dst.([]T)
	if !ok {
		return arrayerr.Newf(op, arrayerr.KindTypeMismatch, "expected %T, got %T", a.data, dst)
	}
	if err := checkRange(op, dstOff, count, int64(len(d))); err != nil {
		return err
	}
	copy(d[dstOff:dstOff+count], a.data[pos:pos+count])
	return nil
}

func (a *NumericArray[T]) SetData(pos int64, src any, srcOff int64, count int64) error {
	const op = "NumericArray.SetData"
	if err := checkMutable(op, a.mutable); err != nil {
		return err
	}
	if err := checkRange(op, pos, count, a.Length()); err != nil {
		return err
	}
	s, ok := src.([]T)
	if !ok {
		return arrayerr.Newf(op, arrayerr.KindTypeMismatch, "expected %T, got %T", a.data, src)
	}
	if err := checkRange(op, srcOff, count, int64(len(s))); err != nil {
		return err
	}
	copy(a.data[pos:pos+count], s[srcOff:srcOff+count])
	return nil
}

func (a *NumericArray[T]) Fill(from int64, count int64, v any) error {
	const op = "NumericArray.Fill"
	if err := checkMutable(op, a.mutable); err != nil {
		return err
	}
	if err := checkRange(op, from, count, a.Length()); err != nil {
		return err
	}
	nv, err := a.narrow(op, v)
	if err != nil {
		return err
	}
	for i := from; i < from+count; i++ {
		a.data[i] = nv
	}
	return nil
}

func (a *NumericArray[T]) SubArr(pos int64, count int64) (Array, error) {
	const op = "NumericArray.SubArr"
	if err := checkRange(op, pos, count, a.Length()); err != nil {
		return nil, err
	}
	return &NumericArray[T]{data: a.data[pos : pos+count], k: a.k, mutable: a.mutable}, nil
}

func (a *NumericArray[T]) SubArray(from int64, to int64) (Array, error) {
	if to < from {
		return nil, arrayerr.Newf("NumericArray.SubArray", arrayerr.KindIllegalArgument, "to %d < from %d", to, from)
	}
	return a.SubArr(from, to-from)
}

func (a *NumericArray[T]) AsImmutable() Array {
	return &NumericArray[T]{data: a.data, k: a.k, mutable: false}
}

// DirectBuffer implements DirectAccess: bulk operators can read a.data
// directly without going through Get/Set.
func (a *NumericArray[T]) DirectBuffer() (any, int64, bool) {
	return a.data, 0, true
}

// RawSlice returns the backing storage directly (used by bulk operators
// that already know the concrete type, avoiding the DirectAccess type
// switch).
func (a *NumericArray[T]) RawSlice() []T { return a.data }
