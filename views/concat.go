// Package views implements the lazy immutable array views this module
// defines beyond submatrix windows: concatenation of several arrays of
// the same element kind, and cyclic shift of one array. Both borrow
// their sources rather than copying (see §3 "Ownership"): no view ever
// mutates a source implicitly, and a view must not outlive the arrays it
// borrows.
package views

import (
	"sort"

	"github.com/Daniel-Alievsky/algart-sub004/array"
	"github.com/Daniel-Alievsky/algart-sub004/arrayerr"
	"github.com/Daniel-Alievsky/algart-sub004/kind"
)

// Concat is an immutable logical array formed by laying k>=1 source
// arrays of the same element kind end to end. startPositions[j] is the
// logical index at which component j begins; it is a strictly
// non-decreasing prefix sum (ties happen when a component is empty).
type Concat struct {
	components     []array.Array
	startPositions []int64 // len == len(components)+1, last entry == total length
	k              kind.Kind
}

// NewConcat builds a concatenation of the given non-resizable arrays, all
// of the same element kind. Fails with TypeMismatch if kinds differ, or
// TooLargeArray if the total length would exceed array.MaxLength.
func NewConcat(components ...array.Array) (*Concat, error) {
	const op = "views.NewConcat"
	if len(components) == 0 {
		return nil, arrayerr.New(op, arrayerr.KindIllegalArgument)
	}
	k := components[0].ElementKind()
	starts := make([]int64, len(components)+1)
	var total int64
	for i, c := range components {
		if c.ElementKind() != k {
			return nil, arrayerr.Newf(op, arrayerr.KindTypeMismatch, "component %d has kind %s, expected %s", i, c.ElementKind(), k)
		}
		if c.IsResizable() {
			return nil, arrayerr.Newf(op, arrayerr.KindIllegalArgument, "component %d is resizable", i)
		}
		starts[i] = total
		next := total + c.Length()
		if next < total || next > array.MaxLength {
			return nil, arrayerr.Newf(op, arrayerr.KindTooLargeArray, "total length overflows at component %d", i)
		}
		total = next
	}
	starts[len(components)] = total
	return &Concat{components: components, startPositions: starts, k: k}, nil
}

func (c *Concat) Length() int64          { return c.startPositions[len(c.startPositions)-1] }
func (c *Concat) ElementKind() kind.Kind { return c.k }
func (c *Concat) IsMutable() bool        { return false }
func (c *Concat) IsResizable() bool      { return false }

// componentOf returns the component index owning logical index i, and
// the offset of i within that component. When several trailing
// components are empty and tie on startPositions, the *last* tied index
// is returned (per §4.3 and the scenario in §8).
func (c *Concat) componentOf(i int64) (compIdx int, localOffset int64) {
	// sort.Search finds the first index j such that startPositions[j] > i;
	// the owning component is j-1. Because ties (empty components) share
	// a startPositions value, j-1 naturally lands on the *last* component
	// whose start is <= i.
	j := sort.Search(len(c.startPositions), func(j int) bool {
		return c.startPositions[j] > i
	})
	compIdx = j - 1
	localOffset = i - c.startPositions[compIdx]
	return
}

func (c *Concat) Get(i int64) (any, error) {
	const op = "Concat.Get"
	if i < 0 || i >= c.Length() {
		return nil, arrayerr.Newf(op, arrayerr.KindIndexOutOfBounds, "index %d out of [0, %d)", i, c.Length())
	}
	compIdx, local := c.componentOf(i)
	return c.components[compIdx].Get(local)
}

func (c *Concat) Set(i int64, v any) error {
	return arrayerr.New("Concat.Set", arrayerr.KindReadOnlyViolation)
}

// GetData walks components, clipping each call to the shorter of count
// and the distance to the next component boundary, per §4.3.
func (c *Concat) GetData(pos int64, dst any, dstOff int64, count int64) error {
	const op = "Concat.GetData"
	if count < 0 || pos < 0 || pos+count > c.Length() {
		return arrayerr.Newf(op, arrayerr.KindIndexOutOfBounds, "range [%d,%d) out of [0,%d)", pos, pos+count, c.Length())
	}
	remaining := count
	cur := pos
	destOff := dstOff
	for remaining > 0 {
		compIdx, local := c.componentOf(cur)
		avail := c.components[compIdx].Length() - local
		n := remaining
		if n > avail {
			n = avail
		}
		if n <= 0 {
			// Empty component at this position; advance past it.
			cur = c.startPositions[compIdx+1]
			continue
		}
		if err := c.components[compIdx].GetData(local, dst, destOff, n); err != nil {
			return err
		}
		cur += n
		destOff += n
		remaining -= n
	}
	return nil
}

func (c *Concat) SetData(pos int64, src any, srcOff int64, count int64) error {
	return arrayerr.New("Concat.SetData", arrayerr.KindReadOnlyViolation)
}

func (c *Concat) Fill(from int64, count int64, v any) error {
	return arrayerr.New("Concat.Fill", arrayerr.KindReadOnlyViolation)
}

// SubArr returns the owning component's own sub-view when [pos,
// pos+count) falls entirely inside one component; otherwise it returns a
// fresh Concat of the clipped prefix, full middle components, and
// clipped suffix.
func (c *Concat) SubArr(pos int64, count int64) (array.Array, error) {
	return c.SubArray(pos, pos+count)
}

func (c *Concat) SubArray(from int64, to int64) (array.Array, error) {
	const op = "Concat.SubArray"
	if to < from || from < 0 || to > c.Length() {
		return nil, arrayerr.Newf(op, arrayerr.KindIllegalArgument, "range [%d,%d) invalid for length %d", from, to, c.Length())
	}
	if from == to {
		return array.New(c.k, 0, false), nil
	}
	startComp, startLocal := c.componentOf(from)
	endComp, endLocal := c.componentOf(to - 1)
	if startComp == endComp {
		return c.components[startComp].SubArr(startLocal, endLocal-startLocal+1)
	}
	var parts []array.Array
	firstLen := c.components[startComp].Length() - startLocal
	first, err := c.components[startComp].SubArr(startLocal, firstLen)
	if err != nil {
		return nil, err
	}
	parts = append(parts, first)
	for i := startComp + 1; i < endComp; i++ {
		parts = append(parts, c.components[i])
	}
	last, err := c.components[endComp].SubArr(0, endLocal+1)
	if err != nil {
		return nil, err
	}
	parts = append(parts, last)
	return NewConcat(parts...)
}

func (c *Concat) AsImmutable() array.Array { return c }
