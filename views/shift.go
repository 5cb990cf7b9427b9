package views

import (
	"github.com/Daniel-Alievsky/algart-sub004/array"
	"github.com/Daniel-Alievsky/algart-sub004/arrayerr"
	"github.com/Daniel-Alievsky/algart-sub004/kind"
)

// Shift is an immutable logical array formed by cyclically rotating one
// non-resizable base array by a canonicalized shift s in [0, length):
// view.Get(i) == base.Get((i - s + length) mod length).
type Shift struct {
	base   array.Array
	shift  int64
	length int64
}

// NewShift builds a cyclic shift view of base by s, canonicalizing s into
// [0, length).
func NewShift(base array.Array, s int64) (*Shift, error) {
	const op = "views.NewShift"
	if base.IsResizable() {
		return nil, arrayerr.New(op, arrayerr.KindIllegalArgument)
	}
	length := base.Length()
	var canon int64
	if length > 0 {
		canon = ((s % length) + length) % length
	}
	return &Shift{base: base, shift: canon, length: length}, nil
}

func (s *Shift) Length() int64          { return s.length }
func (s *Shift) ElementKind() kind.Kind { return s.base.ElementKind() }
func (s *Shift) IsMutable() bool        { return false }
func (s *Shift) IsResizable() bool      { return false }

func (s *Shift) sourceIndex(i int64) int64 {
	return ((i-s.shift)%s.length + s.length) % s.length
}

func (s *Shift) Get(i int64) (any, error) {
	if i < 0 || i >= s.length {
		return nil, arrayerr.Newf("Shift.Get", arrayerr.KindIndexOutOfBounds, "index %d out of [0,%d)", i, s.length)
	}
	return s.base.Get(s.sourceIndex(i))
}

func (s *Shift) Set(i int64, v any) error {
	return arrayerr.New("Shift.Set", arrayerr.KindReadOnlyViolation)
}

// splitRuns decomposes [pos, pos+count) of the shifted view into at most
// two contiguous runs of the source array: a tail run ending at
// length-1, then (if the requested range wraps) a head run starting at
// 0. Per §4.3, bulk read never needs more than one split.
func (s *Shift) splitRuns(pos, count int64) [][2]int64 {
	if count == 0 {
		return nil
	}
	start := s.sourceIndex(pos)
	if start+count <= s.length {
		return [][2]int64{{start, count}}
	}
	firstLen := s.length - start
	return [][2]int64{{start, firstLen}, {0, count - firstLen}}
}

func (s *Shift) GetData(pos int64, dst any, dstOff int64, count int64) error {
	const op = "Shift.GetData"
	if count < 0 || pos < 0 || pos+count > s.length {
		return arrayerr.Newf(op, arrayerr.KindIndexOutOfBounds, "range [%d,%d) out of [0,%d)", pos, pos+count, s.length)
	}
	destOff := dstOff
	for _, run := range s.splitRuns(pos, count) {
		if run[1] == 0 {
			continue
		}
		if err := s.base.GetData(run[0], dst, destOff, run[1]); err != nil {
			return err
		}
		destOff += run[1]
	}
	return nil
}

func (s *Shift) SetData(pos int64, src any, srcOff int64, count int64) error {
	return arrayerr.New("Shift.SetData", arrayerr.KindReadOnlyViolation)
}

func (s *Shift) Fill(from int64, count int64, v any) error {
	return arrayerr.New("Shift.Fill", arrayerr.KindReadOnlyViolation)
}

// SubArr returns the base array's own sub-view when the shifted image of
// [pos, pos+count) lies in a single contiguous source range; otherwise it
// returns a two-component Concat of the tail run followed by the head
// run.
func (s *Shift) SubArr(pos int64, count int64) (array.Array, error) {
	return s.SubArray(pos, pos+count)
}

func (s *Shift) SubArray(from int64, to int64) (array.Array, error) {
	const op = "Shift.SubArray"
	if to < from || from < 0 || to > s.length {
		return nil, arrayerr.Newf(op, arrayerr.KindIllegalArgument, "range [%d,%d) invalid for length %d", from, to, s.length)
	}
	count := to - from
	runs := s.splitRuns(from, count)
	if len(runs) == 1 {
		return s.base.SubArr(runs[0][0], runs[0][1])
	}
	// Wraps: build a concatenation of the tail then head runs, which is
	// logically equal to this sub-range (it no longer needs to track a
	// shift amount since both pieces are already materialized as plain
	// sub-views in source order).
	tail, err := s.base.SubArr(runs[0][0], runs[0][1])
	if err != nil {
		return nil, err
	}
	head, err := s.base.SubArr(runs[1][0], runs[1][1])
	if err != nil {
		return nil, err
	}
	return NewConcat(tail, head)
}

func (s *Shift) AsImmutable() array.Array { return s }

// Compose returns the shift view equivalent to shifting the same base by
// s1 then by s2: per §8's double-shift composition law, this equals a
// single shift by (s1+s2) mod length.
func Compose(s1, s2 *Shift) (*Shift, error) {
	const op = "views.Compose"
	if s1.base != s2.base {
		return nil, arrayerr.New(op, arrayerr.KindIllegalArgument)
	}
	return NewShift(s1.base, s1.shift+s2.shift)
}
