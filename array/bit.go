package array

import (
	"github.com/Daniel-Alievsky/algart-sub004/arrayerr"
	"github.com/Daniel-Alievsky/algart-sub004/bitops"
	"github.com/Daniel-Alievsky/algart-sub004/kind"
)

// BitArray is the Array/BitAccess implementation for kind.Bit. Storage is
// a slice of 64-bit words shared with a bit offset, so that SubArr/
// SubArray can return true non-owning windows (per §3 "Ownership")
// without copying even when the window does not start on a word
// boundary; word count for an owning array is ceil(length/64).
type BitArray struct {
	words     []uint64
	bitOffset int64 // logical index 0 of this view is bit bitOffset of words
	length    int64
	mutable   bool
	resizable bool
}

// NewBitArray allocates a new, zero-filled bit array of the given length.
func NewBitArray(length int64, resizable bool) *BitArray {
	return &BitArray{
		words:     make([]uint64, bitops.WordsForBits(length)),
		length:    length,
		mutable:   true,
		resizable: resizable,
	}
}

// WrapBitArray adapts existing backing words as a BitArray without
// copying; bitOffset lets the wrapped view start mid-word.
func WrapBitArray(words []uint64, bitOffset int64, length int64, mutable bool) *BitArray {
	return &BitArray{words: words, bitOffset: bitOffset, length: length, mutable: mutable}
}

func (a *BitArray) Length() int64          { return a.length }
func (a *BitArray) ElementKind() kind.Kind { return kind.Bit }
func (a *BitArray) IsMutable() bool        { return a.mutable }
func (a *BitArray) IsResizable() bool      { return a.resizable }

func (a *BitArray) Get(i int64) (any, error) {
	if err := checkIndex("BitArray.Get", i, a.length); err != nil {
		return nil, err
	}
	return bitops.GetBit(a.words, a.bitOffset+i), nil
}

func (a *BitArray) Set(i int64, v any) error {
	if err := checkMutable("BitArray.Set", a.mutable); err != nil {
		return err
	}
	if err := checkIndex("BitArray.Set", i, a.length); err != nil {
		return err
	}
	b, ok := v.(bool)
	if !ok {
		return arrayerr.Newf("BitArray.Set", arrayerr.KindTypeMismatch, "expected bool, got %T", v)
	}
	bitops.SetBit(a.words, a.bitOffset+i, b)
	return nil
}

func (a *BitArray) GetData(pos int64, dst any, dstOff int64, count int64) error {
	d, ok := dst.([]bool)
	if !ok {
		return arrayerr.Newf("BitArray.GetData", arrayerr.KindTypeMismatch, "expected []bool, got %T", dst)
	}
	if err := checkRange("BitArray.GetData", pos, count, a.length); err != nil {
		return err
	}
	if err := checkRange("BitArray.GetData", dstOff, count, int64(len(d))); err != nil {
		return err
	}
	for i := int64(0); i < count; i++ {
		d[dstOff+i] = bitops.GetBit(a.words, a.bitOffset+pos+i)
	}
	return nil
}

func (a *BitArray) SetData(pos int64, src any, srcOff int64, count int64) error {
	if err := checkMutable("BitArray.SetData", a.mutable); err != nil {
		return err
	}
	s, ok := src.([]bool)
	if !ok {
		return arrayerr.Newf("BitArray.SetData", arrayerr.KindTypeMismatch, "expected []bool, got %T", src)
	}
	if err := checkRange("BitArray.SetData", pos, count, a.length); err != nil {
		return err
	}
	if err := checkRange("BitArray.SetData", srcOff, count, int64(len(s))); err != nil {
		return err
	}
	for i := int64(0); i < count; i++ {
		bitops.SetBitNoSync(a.words, a.bitOffset+pos+i, s[srcOff+i])
	}
	return nil
}

func (a *BitArray) Fill(from int64, count int64, v any) error {
	if err := checkMutable("BitArray.Fill", a.mutable); err != nil {
		return err
	}
	b, ok := v.(bool)
	if !ok {
		return arrayerr.Newf("BitArray.Fill", arrayerr.KindTypeMismatch, "expected bool, got %T", v)
	}
	if err := checkRange("BitArray.Fill", from, count, a.length); err != nil {
		return err
	}
	bitops.FillBits(a.words, a.bitOffset+from, count, b)
	return nil
}

// GetBits implements BitAccess: word-granular bulk read.
func (a *BitArray) GetBits(arrayPos int64, dst []uint64, dstOff int64, count int64) error {
	if err := checkRange("BitArray.GetBits", arrayPos, count, a.length); err != nil {
		return err
	}
	bitops.CopyBits(dst, dstOff, a.words, a.bitOffset+arrayPos, count)
	return nil
}

// SetBits implements BitAccess: word-granular bulk write.
func (a *BitArray) SetBits(arrayPos int64, src []uint64, srcOff int64, count int64) error {
	if err := checkMutable("BitArray.SetBits", a.mutable); err != nil {
		return err
	}
	if err := checkRange("BitArray.SetBits", arrayPos, count, a.length); err != nil {
		return err
	}
	bitops.CopyBits(a.words, a.bitOffset+arrayPos, src, srcOff, count)
	return nil
}

// Words implements BitAccess direct access, exposing the shared backing
// words and this view's bit offset into them.
func (a *BitArray) Words() ([]uint64, int64) { return a.words, a.bitOffset }

func (a *BitArray) SubArr(pos int64, count int64) (Array, error) {
	const op = "BitArray.SubArr"
	if err := checkRange(op, pos, count, a.length); err != nil {
		return nil, err
	}
	return &BitArray{words: a.words, bitOffset: a.bitOffset + pos, length: count, mutable: a.mutable}, nil
}

func (a *BitArray) SubArray(from int64, to int64) (Array, error) {
	if to < from {
		return nil, arrayerr.Newf("BitArray.SubArray", arrayerr.KindIllegalArgument, "to %d < from %d", to, from)
	}
	return a.SubArr(from, to-from)
}

func (a *BitArray) AsImmutable() Array {
	return &BitArray{words: a.words, bitOffset: a.bitOffset, length: a.length, mutable: false}
}
