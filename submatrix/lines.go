package submatrix

import (
	"fmt"

	"github.com/Daniel-Alievsky/algart-sub004/array"
	"github.com/Daniel-Alievsky/algart-sub004/arrayerr"
)

// scratchBlock bounds how many elements a single reversed write chunk
// buffers before handing off to the base array's bulk write.
const scratchBlock = 8192

// dim0 returns the line stride along axis 0: the number of window
// elements that share the same coordinates on every axis >= 1.
func (w *Window) dim0() int64 {
	if len(w.dim) == 0 {
		return w.size
	}
	return w.dim[0]
}

// axisAboveInfo translates the axes >= 1 of a given line index (the
// window linear index divided by dim0) once, returning the contribution
// to the base index from those axes and, in constant mode, whether the
// entire line falls outside the base (some axis >= 1 is out of range).
func (w *Window) axisAboveInfo(lineIndex int64) (indexInBase int64, fullOutside bool) {
	rem := lineIndex
	for kx := 1; kx < len(w.dim); kx++ {
		var sub int64
		if w.dim[kx] > 0 {
			sub = rem % w.dim[kx]
			rem /= w.dim[kx]
		}
		baseCoord := w.pos[kx] + sub
		switch w.mode {
		case ModeConstant:
			if baseCoord < 0 || baseCoord >= w.baseDim[kx] {
				fullOutside = true
			} else if !fullOutside {
				indexInBase += baseCoord * w.baseM[kx]
			}
		case ModeMirrorCyclic:
			c := reflectCoord(baseCoord, w.baseDim[kx])
			indexInBase += c * w.baseM[kx]
		}
	}
	return indexInBase, fullOutside
}

func (w *Window) checkRange(op string, pos, count int64) error {
	if count < 0 {
		return arrayerr.Newf(op, arrayerr.KindIllegalArgument, "negative count %d", count)
	}
	if pos < 0 || count > w.size-pos || pos > w.size {
		return arrayerr.Newf(op, arrayerr.KindIndexOutOfBounds, "range [%d,%d) out of [0,%d)", pos, pos+count, w.size)
	}
	return nil
}

// outsideArray builds, on each call, a fresh array of n elements filled
// with outsideValue, used to answer constant-mode reads that fall outside
// the base via the existing Array.GetData machinery instead of a
// bespoke per-kind fill loop.
func (w *Window) outsideArray(n int64) (array.Array, error) {
	a := array.New(w.k, n, true)
	if err := a.Fill(0, n, w.outsideValue); err != nil {
		return nil, err
	}
	return a, nil
}

func (w *Window) fillOutsideToDst(dst any, destOff, n int64) error {
	if n == 0 {
		return nil
	}
	a, err := w.outsideArray(n)
	if err != nil {
		return err
	}
	return a.GetData(0, dst, destOff, n)
}

// GetData decomposes [pos, pos+count) into line runs along axis 0 and
// delegates each to the appropriate mode-specific line handler.
func (w *Window) GetData(pos int64, dst any, dstOff int64, count int64) error {
	const op = "Window.GetData"
	if err := w.checkRange(op, pos, count); err != nil {
		return err
	}
	lineLen := w.dim0()
	cur, destOff, remaining := pos, dstOff, count
	for remaining > 0 {
		lineIdx := cur / lineLen
		offInLine := cur % lineLen
		n := remaining
		if avail := lineLen - offInLine; n > avail {
			n = avail
		}
		if err := w.getLine(lineIdx, offInLine, n, dst, destOff); err != nil {
			return err
		}
		cur += n
		destOff += n
		remaining -= n
	}
	return nil
}

func (w *Window) getLine(lineIdx, offInLine, n int64, dst any, destOff int64) error {
	indexAbove, fullOutside := w.axisAboveInfo(lineIdx)
	if w.mode == ModeConstant && fullOutside {
		return w.fillOutsideToDst(dst, destOff, n)
	}
	s, remaining, destCur := offInLine, n, destOff
	for remaining > 0 {
		switch w.mode {
		case ModeConstant:
			baseCoord0 := w.pos[0] + s
			switch {
			case baseCoord0 < 0:
				segLen := clamp(-baseCoord0, remaining)
				if err := w.fillOutsideToDst(dst, destCur, segLen); err != nil {
					return err
				}
				s, destCur, remaining = s+segLen, destCur+segLen, remaining-segLen
			case baseCoord0 >= w.baseDim[0]:
				segLen := remaining
				if err := w.fillOutsideToDst(dst, destCur, segLen); err != nil {
					return err
				}
				s, destCur, remaining = s+segLen, destCur+segLen, remaining-segLen
			default:
				segLen := clamp(w.baseDim[0]-baseCoord0, remaining)
				baseIdx := indexAbove + baseCoord0*w.baseM[0]
				if err := w.base.GetData(baseIdx, dst, destCur, segLen); err != nil {
					return err
				}
				s, destCur, remaining = s+segLen, destCur+segLen, remaining-segLen
			}
		case ModeMirrorCyclic:
			coord0, inMirror, maxSeg := w.mirrorStep(s)
			segLen := clamp(maxSeg, remaining)
			if !inMirror {
				baseIdx := indexAbove + coord0*w.baseM[0]
				if err := w.base.GetData(baseIdx, dst, destCur, segLen); err != nil {
					return err
				}
			} else {
				startIdx := indexAbove + (coord0-segLen+1)*w.baseM[0]
				if err := w.base.GetData(startIdx, dst, destCur, segLen); err != nil {
					return err
				}
				reverseAny(dst, destCur, segLen)
			}
			s, destCur, remaining = s+segLen, destCur+segLen, remaining-segLen
		}
	}
	return nil
}

// mirrorStep resolves the normalized base coordinate at window-axis-0
// offset s, whether this run is traversing a reflected ("in-mirror")
// segment, and how many further elements remain before the segment
// boundary (where in-mirror toggles).
func (w *Window) mirrorStep(s int64) (coord0 int64, inMirror bool, maxSeg int64) {
	period := 2 * w.baseDim[0]
	raw := w.pos[0] + s
	m := raw % period
	if m < 0 {
		m += period
	}
	if m < w.baseDim[0] {
		coord0, inMirror, maxSeg = m, false, w.baseDim[0]-m
	} else {
		coord0 = period - 1 - m
		inMirror, maxSeg = true, coord0+1
	}
	if DebugMode {
		if check := reflectCoordViaDivision(raw, w.baseDim[0]); check != coord0 {
			panic(fmt.Sprintf("submatrix: DebugMode mismatch in mirrorStep: period-mod=%d division=%d", coord0, check))
		}
	}
	return coord0, inMirror, maxSeg
}

func clamp(avail, want int64) int64 {
	if want > avail {
		return avail
	}
	return want
}

// SetData is the write dual of GetData. In constant mode, segments that
// fall outside the base are silently dropped (the phantom-padding
// write policy); in mirror-cyclic mode every segment lands on a real
// base element, with in-mirror segments reversed into a scratch buffer
// before the base write.
func (w *Window) SetData(pos int64, src any, srcOff int64, count int64) error {
	const op = "Window.SetData"
	if !w.IsMutable() {
		return arrayerr.New(op, arrayerr.KindReadOnlyViolation)
	}
	if err := w.checkRange(op, pos, count); err != nil {
		return err
	}
	lineLen := w.dim0()
	cur, srcOffCur, remaining := pos, srcOff, count
	for remaining > 0 {
		lineIdx := cur / lineLen
		offInLine := cur % lineLen
		n := remaining
		if avail := lineLen - offInLine; n > avail {
			n = avail
		}
		if err := w.setLine(lineIdx, offInLine, n, src, srcOffCur); err != nil {
			return err
		}
		cur += n
		srcOffCur += n
		remaining -= n
	}
	return nil
}

func (w *Window) setLine(lineIdx, offInLine, n int64, src any, srcOff int64) error {
	indexAbove, fullOutside := w.axisAboveInfo(lineIdx)
	if w.mode == ModeConstant && fullOutside {
		return nil // whole line is phantom padding; writes are dropped
	}
	s, remaining, srcCur := offInLine, n, srcOff
	for remaining > 0 {
		switch w.mode {
		case ModeConstant:
			baseCoord0 := w.pos[0] + s
			switch {
			case baseCoord0 < 0:
				segLen := clamp(-baseCoord0, remaining)
				s, srcCur, remaining = s+segLen, srcCur+segLen, remaining-segLen
			case baseCoord0 >= w.baseDim[0]:
				segLen := remaining
				s, srcCur, remaining = s+segLen, srcCur+segLen, remaining-segLen
			default:
				segLen := clamp(w.baseDim[0]-baseCoord0, remaining)
				baseIdx := indexAbove + baseCoord0*w.baseM[0]
				if err := w.base.SetData(baseIdx, src, srcCur, segLen); err != nil {
					return err
				}
				s, srcCur, remaining = s+segLen, srcCur+segLen, remaining-segLen
			}
		case ModeMirrorCyclic:
			coord0, inMirror, maxSeg := w.mirrorStep(s)
			segLen := clamp(maxSeg, remaining)
			if segLen > scratchBlock {
				segLen = scratchBlock
			}
			if !inMirror {
				baseIdx := indexAbove + coord0*w.baseM[0]
				if err := w.base.SetData(baseIdx, src, srcCur, segLen); err != nil {
					return err
				}
			} else {
				scratch := newBuffer(w.k, segLen)
				copyAny(scratch, 0, src, srcCur, segLen)
				reverseAny(scratch, 0, segLen)
				startIdx := indexAbove + (coord0-segLen+1)*w.baseM[0]
				if err := w.base.SetData(startIdx, scratch, 0, segLen); err != nil {
					return err
				}
			}
			s, srcCur, remaining = s+segLen, srcCur+segLen, remaining-segLen
		}
	}
	return nil
}

// Fill broadcasts v across [from, from+count). Order does not matter
// (every position takes the same value), so mirror-mode reversal is a
// no-op here; constant-mode outside segments are dropped as usual.
func (w *Window) Fill(from int64, count int64, v any) error {
	const op = "Window.Fill"
	if !w.IsMutable() {
		return arrayerr.New(op, arrayerr.KindReadOnlyViolation)
	}
	if err := w.checkRange(op, from, count); err != nil {
		return err
	}
	lineLen := w.dim0()
	cur, remaining := from, count
	for remaining > 0 {
		lineIdx := cur / lineLen
		offInLine := cur % lineLen
		n := remaining
		if avail := lineLen - offInLine; n > avail {
			n = avail
		}
		if err := w.fillLine(lineIdx, offInLine, n, v); err != nil {
			return err
		}
		cur += n
		remaining -= n
	}
	return nil
}

func (w *Window) fillLine(lineIdx, offInLine, n int64, v any) error {
	indexAbove, fullOutside := w.axisAboveInfo(lineIdx)
	if w.mode == ModeConstant && fullOutside {
		return nil
	}
	s, remaining := offInLine, n
	for remaining > 0 {
		switch w.mode {
		case ModeConstant:
			baseCoord0 := w.pos[0] + s
			switch {
			case baseCoord0 < 0:
				segLen := clamp(-baseCoord0, remaining)
				s, remaining = s+segLen, remaining-segLen
			case baseCoord0 >= w.baseDim[0]:
				segLen := remaining
				s, remaining = s+segLen, remaining-segLen
			default:
				segLen := clamp(w.baseDim[0]-baseCoord0, remaining)
				baseIdx := indexAbove + baseCoord0*w.baseM[0]
				if err := w.base.Fill(baseIdx, segLen, v); err != nil {
					return err
				}
				s, remaining = s+segLen, remaining-segLen
			}
		case ModeMirrorCyclic:
			coord0, inMirror, maxSeg := w.mirrorStep(s)
			segLen := clamp(maxSeg, remaining)
			var baseIdx int64
			if !inMirror {
				baseIdx = indexAbove + coord0*w.baseM[0]
			} else {
				baseIdx = indexAbove + (coord0-segLen+1)*w.baseM[0]
			}
			if err := w.base.Fill(baseIdx, segLen, v); err != nil {
				return err
			}
			s, remaining = s+segLen, remaining-segLen
		}
	}
	return nil
}

// SubArr and SubArray are not supported: a window sub-range is not in
// general expressible as another non-owning Array view without
// re-deriving pos/dim, which callers can do directly via NewWindow.
func (w *Window) SubArr(pos int64, count int64) (array.Array, error) {
	return nil, arrayerr.New("Window.SubArr", arrayerr.KindUnsupported)
}

func (w *Window) SubArray(from int64, to int64) (array.Array, error) {
	return nil, arrayerr.New("Window.SubArray", arrayerr.KindUnsupported)
}
