package array

import (
	"github.com/Daniel-Alievsky/algart-sub004/arrayerr"
	"github.com/Daniel-Alievsky/algart-sub004/kind"
)

// ObjectArray is the Array implementation for kind.Object: an opaque
// reference element whose widened accessor type is caller-defined.
type ObjectArray struct {
	data      []any
	mutable   bool
	resizable bool
}

// NewObjectArray allocates a new object array of the given length, every
// element initialized to nil.
func NewObjectArray(length int64, resizable bool) *ObjectArray {
	return &ObjectArray{data: make([]any, length), mutable: true, resizable: resizable}
}

// WrapObjectArray adapts an existing slice as an ObjectArray without
// copying.
func WrapObjectArray(data []any, mutable bool) *ObjectArray {
	return &ObjectArray{data: data, mutable: mutable}
}

func (a *ObjectArray) Length() int64          { return int64(len(a.data)) }
func (a *ObjectArray) ElementKind() kind.Kind { return kind.Object }
func (a *ObjectArray) IsMutable() bool        { return a.mutable }
func (a *ObjectArray) IsResizable() bool      { return a.resizable }

func (a *ObjectArray) Get(i int64) (any, error) {
	if err := checkIndex("ObjectArray.Get", i, a.Length()); err != nil {
		return nil, err
	}
	return a.data[i], nil
}

func (a *ObjectArray) Set(i int64, v any) error {
	if err := checkMutable("ObjectArray.Set", a.mutable); err != nil {
		return err
	}
	if err := checkIndex("ObjectArray.Set", i, a.Length()); err != nil {
		return err
	}
	a.data[i] = v
	return nil
}

func (a *ObjectArray) GetData(pos int64, dst any, dstOff int64, count int64) error {
	const op = "ObjectArray.GetData"
	if err := checkRange(op, pos, count, a.Length()); err != nil {
		return err
	}
	d, ok := dst.([]any)
	if !ok {
		return arrayerr.Newf(op, arrayerr.KindTypeMismatch, "expected []any, got %T", dst)
	}
	if err := checkRange(op, dstOff, count, int64(len(d))); err != nil {
		return err
	}
	copy(d[dstOff:dstOff+count], a.data[pos:pos+count])
	return nil
}

func (a *ObjectArray) SetData(pos int64, src any, srcOff int64, count int64) error {
	const op = "ObjectArray.SetData"
	if err := checkMutable(op, a.mutable); err != nil {
		return err
	}
	if err := checkRange(op, pos, count, a.Length()); err != nil {
		return err
	}
	s, ok := src.([]any)
	if !ok {
		return arrayerr.Newf(op, arrayerr.KindTypeMismatch, "expected []any, got %T", src)
	}
	if err := checkRange(op, srcOff, count, int64(len(s))); err != nil {
		return err
	}
	copy(a.data[pos:pos+count], s[srcOff:srcOff+count])
	return nil
}

func (a *ObjectArray) Fill(from int64, count int64, v any) error {
	const op = "ObjectArray.Fill"
	if err := checkMutable(op, a.mutable); err != nil {
		return err
	}
	if err := checkRange(op, from, count, a.Length()); err != nil {
		return err
	}
	for i := from; i < from+count; i++ {
		a.data[i] = v
	}
	return nil
}

func (a *ObjectArray) SubArr(pos int64, count int64) (Array, error) {
	const op = "ObjectArray.SubArr"
	if err := checkRange(op, pos, count, a.Length()); err != nil {
		return nil, err
	}
	return &ObjectArray{data: a.data[pos : pos+count], mutable: a.mutable}, nil
}

func (a *ObjectArray) SubArray(from int64, to int64) (Array, error) {
	if to < from {
		return nil, arrayerr.Newf("ObjectArray.SubArray", arrayerr.KindIllegalArgument, "to %d < from %d", to, from)
	}
	return a.SubArr(from, to-from)
}

func (a *ObjectArray) AsImmutable() Array {
	return &ObjectArray{data: a.data, mutable: false}
}

func (a *ObjectArray) DirectBuffer() (any, int64, bool) {
	return a.data, 0, true
}
