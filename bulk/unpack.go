package bulk

import (
	"github.com/Daniel-Alievsky/algart-sub004/array"
	"github.com/Daniel-Alievsky/algart-sub004/arrayerr"
	"github.com/Daniel-Alievsky/algart-sub004/bitops"
	"github.com/Daniel-Alievsky/algart-sub004/kind"
)

func checkUnpackLengths(op string, src array.BitAccess, dst array.Array) error {
	if dst.Length() != src.Length() {
		return arrayerr.Newf(op, arrayerr.KindIllegalArgument, "length mismatch: %d vs %d", dst.Length(), src.Length())
	}
	return nil
}

// UnpackUnitBits writes filler into dst wherever the corresponding
// source bit is 1; 0-bits leave dst unchanged. For a bit destination
// this ORs the source into dst when filler is true and clears those bits
// (dst AND NOT src) when filler is false.
func UnpackUnitBits(src array.BitAccess, dst array.Array, filler any) error {
	const op = "bulk.UnpackUnitBits"
	if err := checkUnpackLengths(op, src, dst); err != nil {
		return err
	}
	isBitDst := dst.ElementKind() == kind.Bit
	bitFiller, _ := filler.(bool)
	words, sOff := src.Words()
	var outerErr error
	bitops.UnpackVisit(words, sOff, src.Length(), func(i int64, bit bool) {
		if outerErr != nil || !bit {
			return
		}
		if isBitDst {
			cur, err := dst.Get(i)
			if err != nil {
				outerErr = err
				return
			}
			if cur.(bool) != bitFiller {
				outerErr = dst.Set(i, bitFiller)
			}
			return
		}
		outerErr = dst.Set(i, filler)
	})
	return outerErr
}

// UnpackZeroBits is the dual of UnpackUnitBits: filler is written where
// the source bit is 0, and 1-bits leave dst unchanged. For a bit
// destination this ORs NOT src into dst when filler is true and ANDs dst
// with src when filler is false.
func UnpackZeroBits(src array.BitAccess, dst array.Array, filler any) error {
	const op = "bulk.UnpackZeroBits"
	if err := checkUnpackLengths(op, src, dst); err != nil {
		return err
	}
	isBitDst := dst.ElementKind() == kind.Bit
	bitFiller, _ := filler.(bool)
	words, sOff := src.Words()
	var outerErr error
	bitops.UnpackVisit(words, sOff, src.Length(), func(i int64, bit bool) {
		if outerErr != nil || bit {
			return
		}
		if isBitDst {
			cur, err := dst.Get(i)
			if err != nil {
				outerErr = err
				return
			}
			if cur.(bool) != bitFiller {
				outerErr = dst.Set(i, bitFiller)
			}
			return
		}
		outerErr = dst.Set(i, filler)
	})
	return outerErr
}

// UnpackBits writes filler0 for 0-bits and filler1 for 1-bits. For a
// bit destination with both fillers false or both true, this collapses
// to a constant fill; with exactly one of them set, it collapses to a
// straight copy or a logical negation of the source.
func UnpackBits(src array.BitAccess, dst array.Array, filler0, filler1 any) error {
	const op = "bulk.UnpackBits"
	if err := checkUnpackLengths(op, src, dst); err != nil {
		return err
	}
	n := src.Length()
	if dst.ElementKind() == kind.Bit {
		f0, _ := filler0.(bool)
		f1, _ := filler1.(bool)
		if !f0 && !f1 {
			return dst.Fill(0, n, false)
		}
		if f0 && f1 {
			return dst.Fill(0, n, true)
		}
	}
	words, sOff := src.Words()
	var outerErr error
	bitops.UnpackVisit(words, sOff, n, func(i int64, bit bool) {
		if outerErr != nil {
			return
		}
		v := filler0
		if bit {
			v = filler1
		}
		outerErr = dst.Set(i, v)
	})
	return outerErr
}
