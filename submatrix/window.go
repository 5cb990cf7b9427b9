// Package submatrix implements the multi-dimensional window indexer
// (C5): a virtual d-dimensional view of shape dim[] at origin pos[] over
// a base array of shape baseDim[], translating window indices into base
// indices under one of two boundary-continuation policies.
//
// The window is the hardest piece of this module: per-element
// translation is a division/remainder walk along dim[] from the inner
// axis outward. GetData, SetData and Fill decompose a request into runs
// that lie on a single base "line" along axis 0 rather than calling
// translate once per element; IndexOf and LastIndexOf skip lines that
// lie wholly outside the base and read the other elements one at a time
// through Get.
package submatrix

import (
	"fmt"

	"github.com/Daniel-Alievsky/algart-sub004/array"
	"github.com/Daniel-Alievsky/algart-sub004/arrayerr"
	"github.com/Daniel-Alievsky/algart-sub004/kind"
	"github.com/Daniel-Alievsky/algart-sub004/matrix"
)

// Mode selects the boundary continuation policy.
type Mode int

const (
	// ModeConstant returns OutsideValue for window coordinates that fall
	// outside the base; writes to such coordinates are dropped.
	ModeConstant Mode = iota
	// ModeMirrorCyclic reflects the base across each axis with period
	// 2*baseDim[k]; every window coordinate lands on a real base element.
	ModeMirrorCyclic
)

// DebugMode, when true, makes the mirror-cyclic coordinate reflection
// (in both Window.translate and the line-run indexer's mirrorStep)
// recompute each reflected coordinate a second way — dividing by
// baseDim directly rather than reducing modulo the period first — and
// panic if the two derivations disagree. Production code always takes
// the single-division period-mod path; DebugMode exists to assert
// that the shortcut is equivalent to the more literal derivation, and
// should only be toggled on for test runs.
var DebugMode = false

// Window is the immutable (base, pos, dim, mode, outsideValue) tuple.
// It owns no element storage; Get/Set and the bulk methods delegate to
// the wrapped base array.
type Window struct {
	base         array.Array
	baseDim      []int64
	baseM        []int64
	pos          []int64
	dim          []int64
	mode         Mode
	outsideValue any
	size         int64
	k            kind.Kind

	// mergeCount >= 2 means axes [0, mergeCount) are collapsed: each is
	// trivial (pos[i]==0, dim[i]==baseDim[i]) and contiguous in the base,
	// so their combined contribution to translate is a single mod/div by
	// mergedSize with base stride 1, instead of mergeCount separate steps.
	mergeCount int
	mergedSize int64

	immutable bool
}

// NewWindow builds a window over base with the given origin, shape, and
// continuation mode. outsideValue is the constant-mode padding value:
// required for ModeConstant and ignored for ModeMirrorCyclic.
func NewWindow(base *matrix.Matrix, pos []int64, dim []int64, mode Mode, outsideValue any) (*Window, error) {
	const op = "submatrix.NewWindow"
	d := base.Shape.DimCount()
	if len(pos) != d || len(dim) != d {
		return nil, arrayerr.Newf(op, arrayerr.KindIllegalArgument, "pos/dim length must equal base dim count %d", d)
	}
	if mode == ModeConstant && outsideValue == nil {
		return nil, arrayerr.Newf(op, arrayerr.KindIllegalArgument, "constant mode requires an outsideValue")
	}
	baseDim := base.Shape.Dims()
	baseM := make([]int64, d)
	for i := 0; i < d; i++ {
		baseM[i] = base.Shape.Stride(i)
	}
	var size int64 = 1
	for kx := 0; kx < d; kx++ {
		if dim[kx] < 0 {
			return nil, arrayerr.Newf(op, arrayerr.KindIllegalArgument, "dim[%d]=%d is negative", kx, dim[kx])
		}
		sum := pos[kx] + dim[kx]
		if dim[kx] > 0 && sum < pos[kx] {
			return nil, arrayerr.Newf(op, arrayerr.KindTooLargeArray, "pos[%d]+dim[%d] overflows", kx, kx)
		}
		if dim[kx] == 0 {
			size = 0
		} else if size != 0 {
			next := size * dim[kx]
			if next/dim[kx] != size {
				return nil, arrayerr.Newf(op, arrayerr.KindTooLargeArray, "window size overflows")
			}
			size = next
		}
	}

	w := &Window{
		base:         base.Array,
		baseDim:      baseDim,
		baseM:        baseM,
		pos:          append([]int64(nil), pos...),
		dim:          append([]int64(nil), dim...),
		mode:         mode,
		outsideValue: outsideValue,
		size:         size,
		k:            base.Array.ElementKind(),
	}
	if mode == ModeConstant {
		w.collapseTrivialPrefix()
	}
	return w, nil
}

// collapseTrivialPrefix finds the longest prefix of axes, never including
// the last axis, that fully span the base (pos[k]==0,
// dim[k]==baseDim[k]) and, if at least two, folds
// them into a single merged stride-1 region for translate's fast path.
func (w *Window) collapseTrivialPrefix() {
	d := len(w.dim)
	c := 0
	for c < d-1 && w.pos[c] == 0 && w.dim[c] == w.baseDim[c] {
		c++
	}
	if c < 2 {
		return
	}
	merged := int64(1)
	for i := 0; i < c; i++ {
		merged *= w.dim[i]
	}
	w.mergeCount = c
	w.mergedSize = merged
}

func (w *Window) Length() int64          { return w.size }
func (w *Window) ElementKind() kind.Kind { return w.k }
func (w *Window) IsMutable() bool        { return !w.immutable && w.base.IsMutable() }
func (w *Window) IsResizable() bool      { return false }

// DimCount returns d.
func (w *Window) DimCount() int { return len(w.dim) }

// Dim returns dim[k].
func (w *Window) Dim(k int) int64 { return w.dim[k] }

// reflectCoord maps an arbitrary signed base coordinate into [0,
// baseDim) by reflecting it with period 2*baseDim, per §4.5.2.
func reflectCoord(coord, baseDim int64) int64 {
	period := 2 * baseDim
	t := coord % period
	if t < 0 {
		t += period
	}
	if t < baseDim {
		return t
	}
	return period - 1 - t
}

// floorDivMod is division/remainder rounding the quotient toward -inf,
// so r always has the same sign as b (here, always nonnegative since
// baseDim > 0).
func floorDivMod(a, b int64) (q, r int64) {
	q = a / b
	r = a % b
	if r < 0 {
		q--
		r += b
	}
	return
}

// reflectCoordViaDivision re-derives reflectCoord's result by dividing
// by baseDim directly (the quotient's parity selects direct vs.
// mirrored) instead of reducing modulo the period first. It exists
// only to cross-check reflectCoord under DebugMode.
func reflectCoordViaDivision(coord, baseDim int64) int64 {
	q, r := floorDivMod(coord, baseDim)
	if q%2 == 0 {
		return r
	}
	return baseDim - 1 - r
}

// translate converts a window linear index into a base index. ok is
// false (constant mode only) when the coordinate falls entirely outside
// the base along some axis.
func (w *Window) translate(index int64) (base int64, ok bool) {
	rem := index
	var idx int64
	start := 0
	if w.mode == ModeConstant && w.mergeCount >= 2 {
		sub := rem % w.mergedSize
		rem /= w.mergedSize
		idx += sub
		start = w.mergeCount
	}
	for kx := start; kx < len(w.dim); kx++ {
		var sub int64
		if w.dim[kx] > 0 {
			sub = rem % w.dim[kx]
			rem /= w.dim[kx]
		}
		baseCoord := w.pos[kx] + sub
		switch w.mode {
		case ModeConstant:
			if baseCoord < 0 || baseCoord >= w.baseDim[kx] {
				return 0, false
			}
			idx += baseCoord * w.baseM[kx]
		case ModeMirrorCyclic:
			c := reflectCoord(baseCoord, w.baseDim[kx])
			if DebugMode {
				if check := reflectCoordViaDivision(baseCoord, w.baseDim[kx]); check != c {
					panic(fmt.Sprintf("submatrix: DebugMode mismatch at axis %d: period-mod=%d division=%d", kx, c, check))
				}
			}
			idx += c * w.baseM[kx]
		}
	}
	return idx, true
}

func (w *Window) Get(i int64) (any, error) {
	const op = "Window.Get"
	if i < 0 || i >= w.size {
		return nil, arrayerr.Newf(op, arrayerr.KindIndexOutOfBounds, "index %d out of [0,%d)", i, w.size)
	}
	baseIdx, ok := w.translate(i)
	if !ok {
		return w.outsideValue, nil
	}
	return w.base.Get(baseIdx)
}

func (w *Window) Set(i int64, v any) error {
	const op = "Window.Set"
	if !w.IsMutable() {
		return arrayerr.New(op, arrayerr.KindReadOnlyViolation)
	}
	if i < 0 || i >= w.size {
		return arrayerr.Newf(op, arrayerr.KindIndexOutOfBounds, "index %d out of [0,%d)", i, w.size)
	}
	baseIdx, ok := w.translate(i)
	if !ok {
		// Constant mode: writes to phantom padding are silently dropped.
		return nil
	}
	return w.base.Set(baseIdx, v)
}

func (w *Window) AsImmutable() array.Array {
	clone := *w
	clone.immutable = true
	return &clone
}
