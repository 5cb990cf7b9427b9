package bulk

import (
	"math"

	"github.com/Daniel-Alievsky/algart-sub004/array"
	"github.com/Daniel-Alievsky/algart-sub004/arrayerr"
	"github.com/Daniel-Alievsky/algart-sub004/kind"
)

// Comparator reports whether the element at index a orders strictly
// before the element at index b.
type Comparator func(a, b int64) bool

// totalOrderLess orders float64 values with NaN sorting above +Inf, so
// that every pair of values (including NaNs) has a defined order.
func totalOrderLess(a, b float64) bool {
	if math.IsNaN(a) {
		return false
	}
	if math.IsNaN(b) {
		return true
	}
	return a < b
}

// DefaultComparator builds a Comparator over arr's natural order: bit
// arrays order false before true, numeric arrays order by value with
// NaN-above-+Inf for float kinds, and object arrays require a
// caller-supplied less function. If reverse is true, the comparator's
// operand order is swapped, producing a descending order.
func DefaultComparator(arr array.Array, less func(a, b any) bool, reverse bool) (Comparator, error) {
	const op = "bulk.DefaultComparator"
	k := arr.ElementKind()

	var base Comparator
	switch {
	case k == kind.Bit:
		base = func(i, j int64) bool {
			vi, _ := arr.Get(i)
			vj, _ := arr.Get(j)
			return !vi.(bool) && vj.(bool)
		}
	case k.IsNumeric() && k.IsFloat():
		base = func(i, j int64) bool {
			vi, _ := arr.Get(i)
			vj, _ := arr.Get(j)
			return totalOrderLess(toFloat64(vi), toFloat64(vj))
		}
	case k.IsNumeric():
		base = func(i, j int64) bool {
			vi, _ := arr.Get(i)
			vj, _ := arr.Get(j)
			return toFloat64(vi) < toFloat64(vj)
		}
	default:
		if less == nil {
			return nil, arrayerr.Newf(op, arrayerr.KindIllegalArgument, "kind %s requires an explicit less function", k)
		}
		base = func(i, j int64) bool {
			vi, _ := arr.Get(i)
			vj, _ := arr.Get(j)
			return less(vi, vj)
		}
	}

	if !reverse {
		return base, nil
	}
	return func(i, j int64) bool { return base(j, i) }, nil
}
