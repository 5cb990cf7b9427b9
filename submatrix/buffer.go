package submatrix

import "github.com/Daniel-Alievsky/algart-sub004/kind"

// newBuffer allocates a native Go slice of the type array.Array.GetData/
// SetData expect for elements of kind k, which is the kind's storage
// type rather than its widened accessor type: bool for Bit, the matching
// unsigned/signed/float width for numeric kinds, any for Object.
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

// reverseAny reverses n elements of buf starting at off in place. buf
// must be one of the slice types newBuffer can produce.
func reverseAny(buf any, off, n int64) {
	switch s := buf.(type) {
	case []bool:
		reverseSlice(s, off, n)
	case []uint8:
		reverseSlice(s, off, n)
	case []uint16:
		reverseSlice(s, off, n)
	case []int32:
		reverseSlice(s, off, n)
	case []int64:
		reverseSlice(s, off, n)
	case []float32:
		reverseSlice(s, off, n)
	case []float64:
		reverseSlice(s, off, n)
	case []any:
		reverseSlice(s, off, n)
	}
}

func reverseSlice[T any](s []T, off, n int64) {
	i, j := off, off+n-1
	for i < j {
		s[i], s[j] = s[j], s[i]
		i++
		j--
	}
}

// copyAny copies n elements from src[srcOff:] to dst[dstOff:]; both must
// be the same concrete slice type produced by newBuffer.
func copyAny(dst any, dstOff int64, src any, srcOff int64, n int64) {
	switch d := dst.(type) {
	case []bool:
		copy(d[dstOff:dstOff+n], src.([]bool)[srcOff:srcOff+n])
	case []uint8:
		copy(d[dstOff:dstOff+n], src.([]uint8)[srcOff:srcOff+n])
	case []uint16:
		copy(d[dstOff:dstOff+n], src.([]uint16)[srcOff:srcOff+n])
	case []int32:
		copy(d[dstOff:dstOff+n], src.([]int32)[srcOff:srcOff+n])
	case []int64:
		copy(d[dstOff:dstOff+n], src.([]int64)[srcOff:srcOff+n])
	case []float32:
		copy(d[dstOff:dstOff+n], src.([]float32)[srcOff:srcOff+n])
	case []float64:
		copy(d[dstOff:dstOff+n], src.([]float64)[srcOff:srcOff+n])
	case []any:
		copy(d[dstOff:dstOff+n], src.([]any)[srcOff:srcOff+n])
	}
}
