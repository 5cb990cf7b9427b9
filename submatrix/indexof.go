package submatrix

import "github.com/Daniel-Alievsky/algart-sub004/arrayerr"

// IndexOf returns the least window index >= from whose element equals
// value, walking line by line so that a full-line-outside line can be
// skipped (or resolved) without touching the base array. Not supported
// in mirror-cyclic mode: reflection breaks the linear monotonic scan
// that index-of assumes, so callers must materialize the window first.
//
// In constant mode, when a full-line-outside line is encountered and
// value equals the window's outsideValue, this returns the first
// window index of that line — a documented quirk inherited unchanged:
// that returned value is a window index, not a base index, since the
// whole line has no corresponding base position.
func (w *Window) IndexOf(from int64, value any) (int64, error) {
	const op = "Window.IndexOf"
	if w.mode == ModeMirrorCyclic {
		return -1, arrayerr.New(op, arrayerr.KindUnsupported)
	}
	if from < 0 {
		from = 0
	}
	lineLen := w.dim0()
	if lineLen == 0 {
		return -1, nil
	}
	for cur := from; cur < w.size; {
		lineIdx := cur / lineLen
		lineStart := lineIdx * lineLen
		offInLine := cur - lineStart
		_, fullOutside := w.axisAboveInfo(lineIdx)
		if fullOutside {
			if valuesEqual(value, w.outsideValue) {
				return lineStart, nil
			}
			cur = lineStart + lineLen
			continue
		}
		for s := offInLine; s < lineLen; s++ {
			v, err := w.Get(lineIdx*lineLen + s)
			if err != nil {
				return -1, err
			}
			if valuesEqual(v, value) {
				return lineIdx*lineLen + s, nil
			}
		}
		cur = lineStart + lineLen
	}
	return -1, nil
}

// LastIndexOf is the descending dual of IndexOf, also unsupported in
// mirror-cyclic mode.
func (w *Window) LastIndexOf(from int64, value any) (int64, error) {
	const op = "Window.LastIndexOf"
	if w.mode == ModeMirrorCyclic {
		return -1, arrayerr.New(op, arrayerr.KindUnsupported)
	}
	if from >= w.size {
		from = w.size - 1
	}
	lineLen := w.dim0()
	if lineLen == 0 {
		return -1, nil
	}
	for cur := from; cur >= 0; {
		lineIdx := cur / lineLen
		lineStart := lineIdx * lineLen
		offInLine := cur - lineStart
		_, fullOutside := w.axisAboveInfo(lineIdx)
		if fullOutside {
			if valuesEqual(value, w.outsideValue) {
				return lineStart, nil
			}
			cur = lineStart - 1
			continue
		}
		for s := offInLine; s >= 0; s-- {
			v, err := w.Get(lineIdx*lineLen + s)
			if err != nil {
				return -1, err
			}
			if valuesEqual(v, value) {
				return lineIdx*lineLen + s, nil
			}
		}
		cur = lineStart - 1
	}
	return -1, nil
}

func valuesEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a == b
}
