package bulk

import "github.com/Daniel-Alievsky/algart-sub004/kind"

// newBuffer allocates a native Go slice of the type array.Array.GetData/
// SetData expect for elements of kind k.
func newBuffer(k kind.Kind, n int64) any {
	switch k {
	case kind.Bit:
		return make([]bool, n)
	case kind.U8Byte:
		return make([]uint8, n)
	case kind.U16Char, kind.U16Short:
		return make([]uint16, n)
	case kind.I32:
		return make([]int32, n)
	case kind.I64:
		return make([]int64, n)
	case kind.F32:
		return make([]float32, n)
	case kind.F64:
		return make([]float64, n)
	default:
		return make([]any, n)
	}
}

// sliceN returns buf[:n], used to cap a reused scratch buffer down to
// the current (possibly shorter, final) block's element count.
func sliceN(buf any, n int64) any {
	switch s := buf.(type) {
	case []bool:
		return s[:n]
	case []uint8:
		return s[:n]
	case []uint16:
		return s[:n]
	case []int32:
		return s[:n]
	case []int64:
		return s[:n]
	case []float32:
		return s[:n]
	case []float64:
		return s[:n]
	case []any:
		return s[:n]
	default:
		return buf
	}
}

// elemAt returns buf[i] boxed as any, for a buffer produced by newBuffer.
func elemAt(buf any, i int64) any {
	switch s := buf.(type) {
	case []bool:
		return s[i]
	case []uint8:
		return s[i]
	case []uint16:
		return s[i]
	case []int32:
		return s[i]
	case []int64:
		return s[i]
	case []float32:
		return s[i]
	case []float64:
		return s[i]
	case []any:
		return s[i]
	default:
		return nil
	}
}

// buffersEqual compares the first n elements of two same-typed buffers
// produced by newBuffer.
func buffersEqual(a, b any, n int64) bool {
	switch x := a.(type) {
	case []bool:
		y := b.([]bool)
		for i := int64(0); i < n; i++ {
			if x[i] != y[i] {
				return false
			}
		}
	case []uint8:
		y := b.([]uint8)
		for i := int64(0); i < n; i++ {
			if x[i] != y[i] {
				return false
			}
		}
	case []uint16:
		y := b.([]uint16)
		for i := int64(0); i < n; i++ {
			if x[i] != y[i] {
				return false
			}
		}
	case []int32:
		y := b.([]int32)
		for i := int64(0); i < n; i++ {
			if x[i] != y[i] {
				return false
			}
		}
	case []int64:
		y := b.([]int64)
		for i := int64(0); i < n; i++ {
			if x[i] != y[i] {
				return false
			}
		}
	case []float32:
		y := b.([]float32)
		for i := int64(0); i < n; i++ {
			if x[i] != y[i] {
				return false
			}
		}
	case []float64:
		y := b.([]float64)
		for i := int64(0); i < n; i++ {
			if x[i] != y[i] {
				return false
			}
		}
	case []any:
		y := b.([]any)
		for i := int64(0); i < n; i++ {
			if x[i] != y[i] {
				return false
			}
		}
	}
	return true
}
